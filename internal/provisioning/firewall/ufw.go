// Package firewall enables the host firewall and opens the administrative
// and proxy ports.
package firewall

import (
	"strings"

	"github.com/strmbox/strmbox/internal/provisioning"
)

// Stage enables ufw if inactive and ensures the allow rules for SSH and
// the reverse proxy. The service's own port is never allowed: it is bound
// to loopback and unreachable from outside by construction.
type Stage struct{}

// Name implements provisioning.Stage.
func (Stage) Name() string { return "firewall" }

// Provision implements provisioning.Stage.
func (Stage) Provision(ctx *provisioning.Context) (provisioning.Result, error) {
	out, err := ctx.Sys.Output(ctx, "ufw", "status")
	active := err == nil && strings.Contains(string(out), "Status: active")

	if active {
		ctx.Observer.Warn("firewall already active, skipping enable")
	} else {
		// --force: ufw's own confirmation prompt would block this
		// non-interactive path.
		if err := ctx.Sys.Run(ctx, "ufw", "--force", "enable"); err != nil {
			return provisioning.Result{}, err
		}
	}

	// Allow rules are idempotent in ufw; re-adding is a no-op.
	if err := ctx.Sys.Run(ctx, "ufw", "allow", "OpenSSH"); err != nil {
		return provisioning.Result{}, err
	}
	if err := ctx.Sys.Run(ctx, "ufw", "allow", "Nginx Full"); err != nil {
		return provisioning.Result{}, err
	}

	detail := "firewall enabled, SSH and proxy ports allowed"
	if active {
		detail = "allow rules ensured (firewall already active)"
	}
	return provisioning.Applied(detail), nil
}
