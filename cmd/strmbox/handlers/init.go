package handlers

import (
	"context"
	"fmt"

	"github.com/strmbox/strmbox/internal/config"
)

// Init runs the configuration wizard and writes the result to a file.
func Init(ctx context.Context, outputPath string) error {
	if _, err := statPath(outputPath); err == nil {
		fmt.Printf("Warning: %s already exists and will be overwritten.\n\n", outputPath)
	}

	printWelcome()

	cfg, err := runWizard(ctx)
	if err != nil {
		return fmt.Errorf("wizard canceled: %w", err)
	}

	if err := writeConfigFile(cfg, outputPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	printInitSuccess(outputPath, cfg)
	return nil
}

func printWelcome() {
	fmt.Println()
	fmt.Println("strmbox - self-hosted streaming server")
	fmt.Println("======================================")
	fmt.Println()
	fmt.Println("This wizard creates the configuration for a provisioning run.")
	fmt.Println("Three questions; everything else has fixed, streaming-tuned defaults.")
	fmt.Println()
}

func printInitSuccess(outputPath string, cfg *config.Config) {
	fmt.Println()
	fmt.Println("Configuration saved!")
	fmt.Println()
	fmt.Printf("  File: %s\n", outputPath)
	fmt.Println()

	fmt.Println("Summary")
	fmt.Println("-------")
	fmt.Printf("  Domain:      %s\n", cfg.Domain)
	fmt.Printf("  Email:       %s\n", cfg.Email)
	fmt.Printf("  Install dir: %s\n", cfg.InstallDir)
	fmt.Println()

	fmt.Println("Next Steps")
	fmt.Println("----------")
	fmt.Printf("  1. Make sure %s points at this host's public IP\n", cfg.Domain)
	fmt.Println()
	fmt.Println("  2. Provision the server (as root):")
	fmt.Println("     strmbox provision")
	fmt.Println()
}
