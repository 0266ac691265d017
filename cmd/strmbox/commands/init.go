package commands

import (
	"github.com/spf13/cobra"

	"github.com/strmbox/strmbox/cmd/strmbox/handlers"
	"github.com/strmbox/strmbox/internal/config"
)

// Init returns the command for interactively creating a run configuration.
//
// Flags:
//
//	--output, -o: Path to output file (default "strmbox.yaml")
func Init() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Interactively create a configuration file",
		Long: `Interactively create a strmbox configuration file.

The wizard asks for:

  - Domain (the public hostname the server answers on)
  - Contact email (for certificate expiry notices)
  - Install directory (service definition and media cache)

The result is written as YAML and picked up automatically by
'strmbox provision' when run from the same directory.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return handlers.Init(cmd.Context(), outputPath)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", config.DefaultConfigFilename, "Output file path")

	return cmd
}
