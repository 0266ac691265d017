package config

import (
	"context"

	"github.com/charmbracelet/huh"
)

// RunWizard collects the run configuration interactively. It is the input
// path used by `strmbox init` and by `strmbox provision` when neither a
// config file nor flags supply the required values.
func RunWizard(ctx context.Context) (*Config, error) {
	cfg := &Config{InstallDir: DefaultInstallDir}

	form := huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Domain").
				Description("Public hostname for the streaming server (must already point at this host for TLS)").
				Placeholder("media.example.org").
				Value(&cfg.Domain).
				Validate(ValidateDomain),
			huh.NewInput().
				Title("Contact Email").
				Description("Used by the certificate authority for expiry notices").
				Placeholder("ops@example.org").
				Value(&cfg.Email).
				Validate(ValidateEmail),
			huh.NewInput().
				Title("Install Directory").
				Description("Holds the service definition and media cache").
				Value(&cfg.InstallDir),
		).Title("Streaming Server Setup"),
	)

	if err := form.RunWithContext(ctx); err != nil {
		return nil, err
	}

	cfg.ApplyDefaults()
	return cfg, nil
}

// Confirm asks a yes/no question and reports the answer.
func Confirm(ctx context.Context, title, description string) (bool, error) {
	confirmed := false
	form := huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Description(description).
				Affirmative("Yes").
				Negative("No").
				Value(&confirmed),
		),
	)
	if err := form.RunWithContext(ctx); err != nil {
		return false, err
	}
	return confirmed, nil
}
