// Package system provides the base-system stages: package update,
// container runtime install, and compose plugin install.
package system

import (
	"github.com/strmbox/strmbox/internal/provisioning"
)

// aptEnv suppresses interactive dpkg/apt prompts; the provisioner owns
// the terminal and cannot answer them.
var aptEnv = []string{"DEBIAN_FRONTEND=noninteractive"}

// UpdateStage refreshes the package index and applies pending upgrades.
// It has no guard and runs on every pass.
type UpdateStage struct{}

// Name implements provisioning.Stage.
func (UpdateStage) Name() string { return "system update" }

// Provision implements provisioning.Stage.
func (UpdateStage) Provision(ctx *provisioning.Context) (provisioning.Result, error) {
	if err := ctx.Sys.RunEnv(ctx, aptEnv, "apt-get", "update"); err != nil {
		return provisioning.Result{}, err
	}
	if err := ctx.Sys.RunEnv(ctx, aptEnv, "apt-get", "upgrade", "-y"); err != nil {
		return provisioning.Result{}, err
	}
	return provisioning.Applied("packages up to date"), nil
}
