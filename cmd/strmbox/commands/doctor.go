package commands

import (
	"github.com/spf13/cobra"

	"github.com/strmbox/strmbox/cmd/strmbox/handlers"
)

// Doctor returns the read-only pre-flight diagnosis command.
//
// Optional flags:
//
//	--config, -c: Path to configuration file (default: auto-detect strmbox.yaml)
//	--json: Output in JSON format
func Doctor() *cobra.Command {
	var configPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose host readiness without changing anything",
		Long: `Diagnose host readiness for provisioning.

Checks, without modifying the host:
  - Privileges (provision requires root)
  - Required and optional tools on PATH
  - DNS: the configured domain against this host's public IP
  - Container state via the Docker API (if the daemon is up)
  - Firewall state

Examples:
  # Human-readable report
  strmbox doctor

  # Machine-readable
  strmbox doctor --json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Doctor(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: strmbox.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
