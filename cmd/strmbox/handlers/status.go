package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/strmbox/strmbox/internal/config"
	"github.com/strmbox/strmbox/internal/platform/dockerapi"
	"github.com/strmbox/strmbox/internal/provisioning/kernel"
)

// Paths a provisioning run leaves behind, checked by the status command.
const (
	sitesAvailableDir = "/etc/nginx/sites-available"
	letsencryptLive   = "/etc/letsencrypt/live"
)

// StatusReport describes what a previous provisioning run left on the host.
type StatusReport struct {
	Domain         string `json:"domain"`
	ContainerState string `json:"containerState"`
	ComposeFile    bool   `json:"composeFile"`
	ProxySite      bool   `json:"proxySite"`
	Certificate    bool   `json:"certificate"`
	KernelTuning   bool   `json:"kernelTuning"`
}

// Status reports the post-install state of this host.
func Status(ctx context.Context, configPath string, jsonOutput bool) error {
	cfg, err := loadOptionalConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cfg == nil {
		return fmt.Errorf("no configuration found: run 'strmbox init' or pass --config")
	}

	report := buildStatusReport(ctx, cfg)

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	printStatusReport(report)
	return nil
}

func buildStatusReport(ctx context.Context, cfg *config.Config) StatusReport {
	report := StatusReport{
		Domain:         cfg.Domain,
		ContainerState: "unknown",
	}

	if cli, err := newDockerClient(); err == nil {
		if state, err := dockerapi.ContainerState(ctx, cli, config.ServiceName); err == nil {
			if state == "" {
				state = "absent"
			}
			report.ContainerState = state
		}
	}

	report.ComposeFile = pathExists(cfg.ComposeFilePath())
	report.ProxySite = pathExists(filepath.Join(sitesAvailableDir, cfg.Domain))
	report.Certificate = pathExists(filepath.Join(letsencryptLive, cfg.Domain, "fullchain.pem"))

	if data, err := readFilePath(kernel.DefaultSysctlPath); err == nil {
		report.KernelTuning = strings.Contains(string(data), kernel.Marker)
	}

	return report
}

func pathExists(path string) bool {
	_, err := statPath(path)
	return err == nil
}

func printStatusReport(report StatusReport) {
	fmt.Printf("Status for %s\n", report.Domain)
	fmt.Println("----------" + strings.Repeat("-", len(report.Domain)+5))
	fmt.Printf("  Container:      %s\n", report.ContainerState)
	fmt.Printf("  %s service definition\n", mark(report.ComposeFile))
	fmt.Printf("  %s proxy site\n", mark(report.ProxySite))
	fmt.Printf("  %s certificate\n", mark(report.Certificate))
	fmt.Printf("  %s kernel tuning\n", mark(report.KernelTuning))
}
