package system

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/strmbox/strmbox/internal/provisioning"
)

// DefaultBootstrapURL is the vendor's convenience install script for the
// container runtime.
const DefaultBootstrapURL = "https://get.docker.com"

// RuntimeStage installs the container runtime via the vendor bootstrap
// script and enables it to start on boot. Skipped when docker is already
// on PATH.
type RuntimeStage struct {
	// BootstrapURL overrides the install script location in tests.
	BootstrapURL string
}

// Name implements provisioning.Stage.
func (RuntimeStage) Name() string { return "container runtime" }

// Provision implements provisioning.Stage.
func (s RuntimeStage) Provision(ctx *provisioning.Context) (provisioning.Result, error) {
	if _, err := ctx.Sys.LookPath("docker"); err == nil {
		return provisioning.Skipped("docker already installed"), nil
	}

	script, err := s.fetchBootstrap(ctx)
	if err != nil {
		return provisioning.Result{}, err
	}
	defer os.Remove(script)

	ctx.Observer.Info("running container runtime bootstrap script")
	if err := ctx.Sys.Run(ctx, "sh", script); err != nil {
		return provisioning.Result{}, fmt.Errorf("container runtime bootstrap: %w", err)
	}

	if err := ctx.Services.EnableNow(ctx, "docker"); err != nil {
		return provisioning.Result{}, err
	}

	if _, err := ctx.Sys.Output(ctx, "docker", "version"); err != nil {
		return provisioning.Result{}, fmt.Errorf("docker not functional after install: %w", err)
	}
	return provisioning.Applied("container runtime installed and enabled"), nil
}

// fetchBootstrap downloads the install script to a temp file and returns
// its path. The caller removes the file.
func (s RuntimeStage) fetchBootstrap(ctx *provisioning.Context) (string, error) {
	url := s.BootstrapURL
	if url == "" {
		url = DefaultBootstrapURL
	}

	client := ctx.HTTP
	if client == nil {
		client = &http.Client{Timeout: 60 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", err
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download bootstrap script: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download bootstrap script: unexpected status %d", resp.StatusCode)
	}

	f, err := os.CreateTemp("", "get-docker-*.sh")
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("write bootstrap script: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", err
	}
	return f.Name(), nil
}
