package commands

import (
	"github.com/spf13/cobra"

	"github.com/strmbox/strmbox/cmd/strmbox/handlers"
)

// Status returns the post-install status command.
//
// Optional flags:
//
//	--config, -c: Path to configuration file (default: auto-detect strmbox.yaml)
//	--json: Output in JSON format
func Status() *cobra.Command {
	var configPath string
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Show the state of a provisioned server",
		Long: `Show what a previous provisioning run left on this host:
the container state, the service definition, the proxy site, the
certificate, and the kernel tuning marker.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Status(cmd.Context(), configPath, jsonOutput)
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to configuration file (default: strmbox.yaml)")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")

	return cmd
}
