// Package dockerapi wraps the small slice of the Docker Engine API the
// provisioner consumes: verifying that the streaming service container is
// actually running after `docker compose up`.
package dockerapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/filters"
	"github.com/docker/docker/client"
)

// Lister is the subset of client.APIClient used by the provisioner.
// Tests substitute a fake.
type Lister interface {
	ContainerList(ctx context.Context, options container.ListOptions) ([]container.Summary, error)
}

// NewClient connects to the local Docker daemon using the standard
// environment configuration (DOCKER_HOST etc.).
func NewClient() (*client.Client, error) {
	cli, err := client.NewClientWithOpts(client.FromEnv, client.WithAPIVersionNegotiation())
	if err != nil {
		return nil, fmt.Errorf("connect to docker daemon: %w", err)
	}
	return cli, nil
}

// ContainerState reports the state of the named container ("running",
// "exited", ...), or an empty string if no such container exists.
func ContainerState(ctx context.Context, cli Lister, name string) (string, error) {
	containers, err := cli.ContainerList(ctx, container.ListOptions{
		All:     true,
		Filters: filters.NewArgs(filters.Arg("name", name)),
	})
	if err != nil {
		return "", fmt.Errorf("list containers: %w", err)
	}

	// The name filter matches substrings; require an exact match.
	for _, c := range containers {
		for _, n := range c.Names {
			if strings.TrimPrefix(n, "/") == name {
				return c.State, nil
			}
		}
	}
	return "", nil
}

// Running reports whether the named container exists and is running.
func Running(ctx context.Context, cli Lister, name string) (bool, error) {
	state, err := ContainerState(ctx, cli, name)
	if err != nil {
		return false, err
	}
	return state == "running", nil
}
