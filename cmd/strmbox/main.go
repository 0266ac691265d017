// Package main is the entry point for the strmbox CLI.
//
// strmbox provisions a self-hosted media streaming backend on a fresh
// Debian or Ubuntu host: container runtime, the streaming service behind
// an nginx reverse proxy with Let's Encrypt TLS, firewall rules, and
// kernel network tuning for high-bitrate streams.
//
// Commands: init, provision, doctor, status, version, completion.
//
// For detailed usage information, run:
//
//	strmbox --help
package main

import (
	"fmt"
	"os"

	"github.com/strmbox/strmbox/cmd/strmbox/commands"
)

// Version information set by goreleaser at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	commands.SetVersionInfo(version, commit, date)
	if err := commands.Root().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
