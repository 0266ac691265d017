package system

import (
	"fmt"

	"github.com/strmbox/strmbox/internal/provisioning"
)

// ComposeStage installs the compose plugin for the container runtime.
// Skipped when `docker compose` already answers.
type ComposeStage struct{}

// Name implements provisioning.Stage.
func (ComposeStage) Name() string { return "compose plugin" }

// Provision implements provisioning.Stage.
func (ComposeStage) Provision(ctx *provisioning.Context) (provisioning.Result, error) {
	if _, err := ctx.Sys.Output(ctx, "docker", "compose", "version"); err == nil {
		return provisioning.Skipped("compose plugin already installed"), nil
	}

	if err := ctx.Sys.RunEnv(ctx, aptEnv, "apt-get", "install", "-y", "docker-compose-plugin"); err != nil {
		return provisioning.Result{}, err
	}

	if _, err := ctx.Sys.Output(ctx, "docker", "compose", "version"); err != nil {
		return provisioning.Result{}, fmt.Errorf("compose plugin not functional after install: %w", err)
	}
	return provisioning.Applied("compose plugin installed"), nil
}
