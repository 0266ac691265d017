// Package handlers implements the business logic for CLI commands.
//
// This package contains handler functions that are called by command
// definitions in the commands package. Handlers are framework-agnostic and
// can be tested independently of the CLI framework.
package handlers

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"

	"github.com/strmbox/strmbox/internal/config"
	"github.com/strmbox/strmbox/internal/netutil"
	"github.com/strmbox/strmbox/internal/platform/dockerapi"
	"github.com/strmbox/strmbox/internal/platform/host"
	"github.com/strmbox/strmbox/internal/provisioning"
	"github.com/strmbox/strmbox/internal/ui"
	"github.com/strmbox/strmbox/internal/util/prerequisites"
)

// ErrNotRoot is returned when a mutating command runs without root
// privileges. Every stage writes system paths or drives privileged tools.
var ErrNotRoot = errors.New("must be run as root")

// ErrDeclined is returned when the operator answers no at the
// pre-provisioning confirmation.
var ErrDeclined = errors.New("provisioning declined")

// Factory function variables - can be replaced in tests for dependency
// injection.
var (
	// geteuid reports the effective user id.
	geteuid = os.Geteuid

	// isInteractive reports whether stdout is a terminal.
	isInteractive = ui.IsInteractive

	// findConfigFile locates the default config file.
	findConfigFile = config.FindConfigFile

	// loadConfigFile loads and validates a config file.
	loadConfigFile = config.Load

	// runWizard collects the configuration interactively.
	runWizard = config.RunWizard

	// writeConfigFile writes a configuration to disk.
	writeConfigFile = config.WriteYAML

	// confirm asks the operator a yes/no question.
	confirm = config.Confirm

	// newRunner creates the command executor for a run.
	newRunner = func(logger zerolog.Logger) host.Runner {
		return host.NewExecRunner(logger, ui.IsInteractive())
	}

	// newProvisioningContext assembles the stage dependencies.
	newProvisioningContext = provisioning.NewContext

	// runStages executes the provisioning pipeline.
	runStages = provisioning.RunStages

	// newDockerClient connects to the Docker daemon.
	newDockerClient = func() (dockerapi.Lister, error) {
		return dockerapi.NewClient()
	}

	// resolveDomain looks up the domain's addresses.
	resolveDomain = func(ctx context.Context, domain string) ([]string, error) {
		return netutil.NetResolver{}.LookupHost(ctx, domain)
	}

	// fetchPublicIP discovers this host's public address.
	fetchPublicIP = func(ctx context.Context) (string, error) {
		return netutil.PublicIP(ctx, nil)
	}

	// checkHostTools runs the PATH pre-flight checks.
	checkHostTools = prerequisites.CheckHost

	// statPath checks a filesystem path.
	statPath = os.Stat

	// readFilePath reads a file.
	readFilePath = os.ReadFile
)

// newLogger builds the structured logger backing the operator console
// output. Human-readable on a terminal, plain JSON lines otherwise; debug
// detail only with STRMBOX_DEBUG set.
func newLogger() zerolog.Logger {
	level := zerolog.WarnLevel
	if os.Getenv("STRMBOX_DEBUG") != "" {
		level = zerolog.DebugLevel
	}

	var logger zerolog.Logger
	if isInteractive() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr})
	} else {
		logger = zerolog.New(os.Stderr)
	}
	return logger.Level(level).With().Timestamp().Logger()
}

// resolveConfig builds the run configuration from, in precedence order:
// explicit flags, a config file (given or auto-detected), and finally the
// interactive wizard when nothing else supplies the required values.
func resolveConfig(ctx context.Context, opts ProvisionOptions) (*config.Config, error) {
	cfg, err := loadBaseConfig(opts)
	if err != nil {
		return nil, err
	}

	if cfg == nil && opts.Domain == "" && opts.Email == "" {
		if !isInteractive() {
			return nil, fmt.Errorf("no configuration found: run 'strmbox init' or pass --domain and --email")
		}
		cfg, err = runWizard(ctx)
		if err != nil {
			return nil, fmt.Errorf("wizard canceled: %w", err)
		}
	}
	if cfg == nil {
		cfg = &config.Config{}
	}

	if opts.Domain != "" {
		cfg.Domain = opts.Domain
	}
	if opts.Email != "" {
		cfg.Email = opts.Email
	}
	if opts.InstallDir != "" {
		cfg.InstallDir = opts.InstallDir
	}
	if opts.AutoApprove {
		cfg.AutoApprove = true
	}

	cfg.ApplyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// loadBaseConfig loads the config file if one is given or discoverable.
// A missing default file is not an error; a given path that fails is.
func loadBaseConfig(opts ProvisionOptions) (*config.Config, error) {
	if opts.ConfigPath != "" {
		cfg, err := loadConfigFile(opts.ConfigPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		return cfg, nil
	}

	path, err := findConfigFile()
	if err != nil {
		return nil, nil
	}
	cfg, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// loadOptionalConfig is the read-only commands' config resolution: flags
// and wizard do not apply, and having no config at all is acceptable.
func loadOptionalConfig(configPath string) (*config.Config, error) {
	if configPath != "" {
		return loadConfigFile(configPath)
	}
	path, err := findConfigFile()
	if err != nil {
		return nil, nil
	}
	return loadConfigFile(path)
}
