// Package proxy installs the reverse proxy and writes the per-domain
// site configuration.
package proxy

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/strmbox/strmbox/internal/provisioning"
)

// ErrConfigTest is returned when the merged nginx configuration fails
// syntax validation. The reload is never attempted in that case, so a
// broken configuration cannot take the proxy down.
var ErrConfigTest = errors.New("nginx configuration test failed")

var aptEnv = []string{"DEBIAN_FRONTEND=noninteractive"}

// Stage installs nginx if absent and always (re)writes and enables the
// site for the configured domain.
type Stage struct {
	// SitesAvailable and SitesEnabled override the nginx config
	// directories in tests.
	SitesAvailable string
	SitesEnabled   string
}

// Name implements provisioning.Stage.
func (Stage) Name() string { return "reverse proxy" }

// Provision implements provisioning.Stage.
func (s Stage) Provision(ctx *provisioning.Context) (provisioning.Result, error) {
	sitesAvailable := s.SitesAvailable
	if sitesAvailable == "" {
		sitesAvailable = "/etc/nginx/sites-available"
	}
	sitesEnabled := s.SitesEnabled
	if sitesEnabled == "" {
		sitesEnabled = "/etc/nginx/sites-enabled"
	}

	if _, err := ctx.Sys.LookPath("nginx"); err != nil {
		ctx.Observer.Info("installing nginx")
		if err := ctx.Sys.RunEnv(ctx, aptEnv, "apt-get", "install", "-y", "nginx"); err != nil {
			return provisioning.Result{}, err
		}
		if err := ctx.Services.EnableNow(ctx, "nginx"); err != nil {
			return provisioning.Result{}, err
		}
	} else {
		ctx.Observer.Warn("nginx already installed, skipping install")
	}

	domain := ctx.Config.Domain
	site, err := RenderSite(domain, ctx.Config.Upstream())
	if err != nil {
		return provisioning.Result{}, err
	}

	sitePath := filepath.Join(sitesAvailable, domain)
	if err := os.WriteFile(sitePath, site, 0o644); err != nil {
		return provisioning.Result{}, fmt.Errorf("write site config: %w", err)
	}

	enabledPath := filepath.Join(sitesEnabled, domain)
	if err := os.Remove(enabledPath); err != nil && !os.IsNotExist(err) {
		return provisioning.Result{}, fmt.Errorf("replace enabled site: %w", err)
	}
	if err := os.Symlink(sitePath, enabledPath); err != nil {
		return provisioning.Result{}, fmt.Errorf("enable site: %w", err)
	}

	// The distribution's default site would shadow ours on the bare IP.
	if err := os.Remove(filepath.Join(sitesEnabled, "default")); err != nil && !os.IsNotExist(err) {
		return provisioning.Result{}, fmt.Errorf("disable default site: %w", err)
	}

	// Validate before reload so a bad merged config never goes live.
	if err := ctx.Sys.Run(ctx, "nginx", "-t"); err != nil {
		return provisioning.Result{}, fmt.Errorf("%w: %v", ErrConfigTest, err)
	}

	if err := ctx.Services.Reload(ctx, "nginx"); err != nil {
		return provisioning.Result{}, err
	}

	return provisioning.Applied(fmt.Sprintf("site %s proxying to %s", domain, ctx.Config.Upstream())), nil
}
