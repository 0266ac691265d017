// Package service materializes the streaming service's declarative
// definition and brings the container up.
package service

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/strmbox/strmbox/internal/config"
	"github.com/strmbox/strmbox/internal/provisioning"
)

// composeFile models the subset of the compose schema the service needs.
// Generating the file from typed structs (instead of string templating)
// makes the loopback-only port binding impossible to get wrong.
type composeFile struct {
	Services map[string]composeService `yaml:"services"`
}

type composeService struct {
	Image         string         `yaml:"image"`
	ContainerName string         `yaml:"container_name"`
	Restart       string         `yaml:"restart"`
	Ports         []string       `yaml:"ports"`
	Environment   []string       `yaml:"environment,omitempty"`
	Volumes       []string       `yaml:"volumes"`
	Logging       composeLogging `yaml:"logging"`
}

type composeLogging struct {
	Driver  string            `yaml:"driver"`
	Options map[string]string `yaml:"options"`
}

// RenderDefinition produces the docker-compose.yml content for the
// streaming service. The API port is bound to loopback only; the reverse
// proxy is the sole public entry point. Log rotation is capped so a noisy
// container cannot fill the disk.
func RenderDefinition(cfg *config.Config) ([]byte, error) {
	def := composeFile{
		Services: map[string]composeService{
			config.ServiceName: {
				Image:         config.ServiceImage,
				ContainerName: config.ServiceName,
				Restart:       "unless-stopped",
				Ports: []string{
					fmt.Sprintf("%s:%d:%d", config.LoopbackAddr, config.ServicePort, config.ServicePort),
				},
				Environment: []string{"NO_CORS=1"},
				Volumes:     []string{"./data:/root/.stremio-server"},
				Logging: composeLogging{
					Driver: "json-file",
					Options: map[string]string{
						"max-size": "10m",
						"max-file": "3",
					},
				},
			},
		},
	}

	data, err := yaml.Marshal(def)
	if err != nil {
		return nil, fmt.Errorf("marshal service definition: %w", err)
	}
	return data, nil
}

// DefinitionStage writes the service definition file and creates the data
// directory. It has no guard: the file is unconditionally overwritten so
// the definition always matches this provisioner version (last write wins).
type DefinitionStage struct{}

// Name implements provisioning.Stage.
func (DefinitionStage) Name() string { return "service definition" }

// Provision implements provisioning.Stage.
func (DefinitionStage) Provision(ctx *provisioning.Context) (provisioning.Result, error) {
	cfg := ctx.Config

	if err := os.MkdirAll(cfg.DataDir(), 0o755); err != nil {
		return provisioning.Result{}, fmt.Errorf("create data directory: %w", err)
	}

	data, err := RenderDefinition(cfg)
	if err != nil {
		return provisioning.Result{}, err
	}

	if err := os.WriteFile(cfg.ComposeFilePath(), data, 0o644); err != nil {
		return provisioning.Result{}, fmt.Errorf("write service definition: %w", err)
	}

	return provisioning.Applied("service definition written to " + cfg.ComposeFilePath()), nil
}
