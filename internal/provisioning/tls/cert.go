// Package tls performs the DNS pre-checks and obtains the Let's Encrypt
// certificate for the configured domain.
package tls

import (
	"errors"
	"fmt"
	"strings"

	"github.com/strmbox/strmbox/internal/netutil"
	"github.com/strmbox/strmbox/internal/provisioning"
)

var (
	// ErrDomainNotResolvable aborts the run before any issuance command:
	// issuance against an unresolvable domain cannot succeed.
	ErrDomainNotResolvable = errors.New("domain does not resolve")

	// ErrDNSMismatch aborts a non-interactive run when the domain points
	// at a different host.
	ErrDNSMismatch = errors.New("domain does not point at this host")

	// ErrDNSMismatchDeclined aborts the run when the operator declines
	// the mismatch override.
	ErrDNSMismatchDeclined = errors.New("aborted on DNS mismatch")
)

var aptEnv = []string{"DEBIAN_FRONTEND=noninteractive"}

// CertStage requests a certificate for the domain and lets the issuance
// client rewrite the proxy config to redirect plain HTTP to HTTPS.
// Issuance failure degrades to a warning: the proxy stays usable over
// plain text and the operator can retry manually.
type CertStage struct{}

// Name implements provisioning.Stage.
func (CertStage) Name() string { return "tls certificate" }

// Provision implements provisioning.Stage.
func (CertStage) Provision(ctx *provisioning.Context) (provisioning.Result, error) {
	cfg := ctx.Config

	ips, err := ctx.Resolver.LookupHost(ctx, cfg.Domain)
	if err != nil || len(ips) == 0 {
		return provisioning.Result{}, fmt.Errorf("%w: %s", ErrDomainNotResolvable, cfg.Domain)
	}
	ctx.State.ResolvedIPs = ips

	if err := checkMismatch(ctx, ips); err != nil {
		return provisioning.Result{}, err
	}

	if _, err := ctx.Sys.LookPath("certbot"); err != nil {
		ctx.Observer.Info("installing certbot")
		if err := ctx.Sys.RunEnv(ctx, aptEnv, "apt-get", "install", "-y", "certbot", "python3-certbot-nginx"); err != nil {
			return provisioning.Result{}, err
		}
	} else {
		ctx.Observer.Warn("certbot already installed, skipping install")
	}

	issueErr := ctx.Sys.Run(ctx, "certbot", "--nginx",
		"-d", cfg.Domain,
		"--non-interactive",
		"--agree-tos",
		"-m", cfg.Email,
		"--redirect")
	ctx.State.CertIssued = issueErr == nil

	// Validate the renewal path even when issuance failed: it tells the
	// operator whether a manual retry will auto-renew afterwards.
	renewErr := ctx.Sys.Run(ctx, "certbot", "renew", "--dry-run")

	if issueErr != nil {
		return provisioning.Warned(fmt.Sprintf(
			"certificate issuance failed (%v); the proxy stays on plain HTTP, retry with: certbot --nginx -d %s",
			issueErr, cfg.Domain)), nil
	}
	if renewErr != nil {
		return provisioning.Warned(fmt.Sprintf("certificate issued but renewal dry-run failed: %v", renewErr)), nil
	}

	return provisioning.Applied("certificate issued for " + cfg.Domain), nil
}

// checkMismatch compares the host's public IP against the domain's
// records. A mismatch needs an explicit operator override, since issuance
// will likely fail but a DNS change may still be propagating.
func checkMismatch(ctx *provisioning.Context, resolved []string) error {
	publicIP, err := netutil.PublicIP(ctx, ctx.HTTP)
	if err != nil {
		// Cannot verify; proceed and let issuance decide.
		ctx.Observer.Warn("could not determine public IP: %v", err)
		return nil
	}
	ctx.State.PublicIP = publicIP

	for _, ip := range resolved {
		if ip == publicIP {
			return nil
		}
	}

	detail := fmt.Sprintf("%s resolves to %s but this host's public IP is %s",
		ctx.Config.Domain, strings.Join(resolved, ", "), publicIP)

	if ctx.Config.AutoApprove {
		return fmt.Errorf("%w: %s", ErrDNSMismatch, detail)
	}

	ok, err := ctx.Confirm(ctx, "DNS mismatch",
		detail+". Certificate issuance will likely fail. Proceed anyway?")
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("%w: %s", ErrDNSMismatchDeclined, detail)
	}

	ctx.Observer.Warn("proceeding despite DNS mismatch")
	return nil
}
