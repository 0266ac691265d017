// Package config defines the provisioner's run configuration: the target
// domain, the contact email for certificate issuance, and the install
// directory for the streaming service. Configuration is read from
// strmbox.yaml, overridden by flags, or collected interactively.
package config

import (
	"fmt"
	"path/filepath"
)

// DefaultConfigFilename is the default configuration filename.
const DefaultConfigFilename = "strmbox.yaml"

// DefaultInstallDir is where the service definition and its data volume
// live when the operator does not choose a directory.
const DefaultInstallDir = "/root/stremio-server"

// Fixed service parameters. The streaming server's API port is only ever
// bound to loopback; the reverse proxy is the sole public entry point.
const (
	ServiceName  = "stremio"
	ServiceImage = "stremio/server:latest"
	ServicePort  = 11470
	LoopbackAddr = "127.0.0.1"
)

// Config is the run configuration for a single provisioning pass.
type Config struct {
	// Domain is the public hostname the reverse proxy answers on.
	Domain string `yaml:"domain" validate:"required,fqdn"`

	// Email is the contact address passed to certificate issuance.
	Email string `yaml:"email" validate:"required,email"`

	// InstallDir holds the service definition and the bind-mounted data
	// directory. Defaults to /root/stremio-server.
	InstallDir string `yaml:"installDir,omitempty"`

	// AutoApprove skips the confirmation prompt before mutation and the
	// DNS-mismatch override prompt (a mismatch then aborts the run).
	AutoApprove bool `yaml:"autoApprove,omitempty"`
}

// ApplyDefaults fills unset optional fields.
func (c *Config) ApplyDefaults() {
	if c.InstallDir == "" {
		c.InstallDir = DefaultInstallDir
	}
}

// ComposeFilePath returns the path of the service definition file.
func (c *Config) ComposeFilePath() string {
	return filepath.Join(c.InstallDir, "docker-compose.yml")
}

// DataDir returns the path of the bind-mounted data directory.
func (c *Config) DataDir() string {
	return filepath.Join(c.InstallDir, "data")
}

// Upstream returns the loopback address the reverse proxy forwards to.
func (c *Config) Upstream() string {
	return fmt.Sprintf("%s:%d", LoopbackAddr, ServicePort)
}
