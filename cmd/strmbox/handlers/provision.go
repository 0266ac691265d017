package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/strmbox/strmbox/internal/config"
	"github.com/strmbox/strmbox/internal/provisioning"
	"github.com/strmbox/strmbox/internal/provisioning/firewall"
	"github.com/strmbox/strmbox/internal/provisioning/kernel"
	"github.com/strmbox/strmbox/internal/provisioning/proxy"
	"github.com/strmbox/strmbox/internal/provisioning/service"
	"github.com/strmbox/strmbox/internal/provisioning/system"
	"github.com/strmbox/strmbox/internal/provisioning/tls"
	"github.com/strmbox/strmbox/internal/ui"
)

// ProvisionOptions are the provision command's inputs. Flag values
// override the config file; AutoApprove skips the confirmation prompts.
type ProvisionOptions struct {
	ConfigPath  string
	Domain      string
	Email       string
	InstallDir  string
	AutoApprove bool
}

// Provision sets up the streaming server on this host.
//
// The workflow:
//  1. Verifies root privileges (every stage writes system paths).
//  2. Resolves the run configuration (file, flags, or wizard).
//  3. Asks for confirmation unless --yes was given.
//  4. Runs the nine provisioning stages sequentially, fail-fast.
//  5. Prints the summary with the service URL and follow-up commands.
func Provision(ctx context.Context, opts ProvisionOptions) error {
	if geteuid() != 0 {
		return fmt.Errorf("%w: provisioning installs packages and writes system configuration", ErrNotRoot)
	}

	cfg, err := resolveConfig(ctx, opts)
	if err != nil {
		return err
	}

	if !cfg.AutoApprove {
		ok, err := confirm(ctx, "Provision streaming server",
			fmt.Sprintf("Set up %s on this host (install dir %s)?", cfg.Domain, cfg.InstallDir))
		if err != nil {
			return err
		}
		if !ok {
			return ErrDeclined
		}
	}

	logger := newLogger()
	runner := newRunner(logger)
	pCtx := newProvisioningContext(ctx, cfg, runner, logger)

	if err := runStages(pCtx, defaultStages()); err != nil {
		return err
	}

	printSummary(pCtx, cfg)
	return nil
}

// defaultStages returns the full provisioning sequence in run order.
func defaultStages() []provisioning.Stage {
	return []provisioning.Stage{
		system.UpdateStage{},
		system.RuntimeStage{},
		system.ComposeStage{},
		service.DefinitionStage{},
		service.StartStage{},
		proxy.Stage{},
		firewall.Stage{},
		tls.CertStage{},
		kernel.SysctlStage{},
	}
}

// printSummary renders the final report. The firewall listing is best
// effort; a failure there must not taint a successful run.
func printSummary(pCtx *provisioning.Context, cfg *config.Config) {
	summary := ui.Summary{
		Domain:     cfg.Domain,
		InstallDir: cfg.InstallDir,
		CertIssued: pCtx.State.CertIssued,
	}

	for _, o := range pCtx.State.Warnings() {
		summary.Warnings = append(summary.Warnings, fmt.Sprintf("%s: %s", o.Stage, o.Result.Detail))
	}

	if out, err := pCtx.Sys.Output(pCtx, "ufw", "status"); err == nil {
		summary.FirewallStatus = strings.TrimSpace(string(out))
	}

	fmt.Println(ui.RenderSummary(summary, isInteractive()))
}
