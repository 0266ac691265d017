package commands

import (
	"github.com/spf13/cobra"

	"github.com/strmbox/strmbox/cmd/strmbox/handlers"
)

// Provision returns the command that sets up the streaming server.
//
// Optional flags:
//
//	--config, -c: Path to configuration file (default: auto-detect strmbox.yaml)
//	--domain: Public hostname, overrides the config file
//	--email: Contact email, overrides the config file
//	--install-dir: Install directory, overrides the config file
//	--yes, -y: Skip confirmation prompts (DNS mismatch then aborts)
func Provision() *cobra.Command {
	var opts handlers.ProvisionOptions

	cmd := &cobra.Command{
		Use:   "provision",
		Short: "Provision the streaming server on this host",
		Long: `Provision the streaming server on this host.

Runs the full setup sequence: system update, Docker and the compose
plugin, the streaming service container (API bound to loopback only),
nginx reverse proxy, ufw firewall, Let's Encrypt certificate, and
kernel network tuning.

Configuration comes from strmbox.yaml (see 'strmbox init'), flags, or
an interactive wizard when neither is present. Must run as root.

Examples:
  # Provision using strmbox.yaml in the current directory
  strmbox provision

  # Fully non-interactive
  strmbox provision --domain media.example.org --email ops@example.org --yes`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Provision(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to configuration file (default: strmbox.yaml)")
	cmd.Flags().StringVar(&opts.Domain, "domain", "", "Public hostname for the streaming server")
	cmd.Flags().StringVar(&opts.Email, "email", "", "Contact email for certificate issuance")
	cmd.Flags().StringVar(&opts.InstallDir, "install-dir", "", "Install directory for the service")
	cmd.Flags().BoolVarP(&opts.AutoApprove, "yes", "y", false, "Skip confirmation prompts")

	return cmd
}
