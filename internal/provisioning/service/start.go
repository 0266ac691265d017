package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/strmbox/strmbox/internal/config"
	"github.com/strmbox/strmbox/internal/netutil"
	"github.com/strmbox/strmbox/internal/platform/dockerapi"
	"github.com/strmbox/strmbox/internal/provisioning"
	"github.com/strmbox/strmbox/internal/util/retry"
)

// ErrNotRunning is returned when the service container is not listed as
// running after start; it aborts the whole run.
var ErrNotRunning = errors.New("service container is not running")

// StartStage brings the service up in detached mode and verifies via the
// Docker API that the container reaches the running state.
type StartStage struct {
	// Grace is how long to wait before the first liveness poll.
	// Zero means the 10s default; tests set a tiny value.
	Grace time.Duration

	// PortWait bounds the loopback port probe after the container is up.
	PortWait time.Duration

	// Retries and RetryDelay tune the liveness poll. Zero values mean
	// the production defaults (4 retries, 3s apart).
	Retries    int
	RetryDelay time.Duration
}

// Name implements provisioning.Stage.
func (StartStage) Name() string { return "service start" }

// Provision implements provisioning.Stage.
func (s StartStage) Provision(ctx *provisioning.Context) (provisioning.Result, error) {
	composeFile := ctx.Config.ComposeFilePath()
	if err := ctx.Sys.Run(ctx, "docker", "compose", "-f", composeFile, "up", "-d"); err != nil {
		return provisioning.Result{}, err
	}

	grace := s.Grace
	if grace == 0 {
		grace = 10 * time.Second
	}
	select {
	case <-ctx.Done():
		return provisioning.Result{}, ctx.Err()
	case <-time.After(grace):
	}

	cli, err := ctx.Docker()
	if err != nil {
		return provisioning.Result{}, err
	}

	retries := s.Retries
	if retries == 0 {
		retries = 4
	}
	retryDelay := s.RetryDelay
	if retryDelay == 0 {
		retryDelay = 3 * time.Second
	}

	err = retry.WithBackoff(ctx, func() error {
		running, err := dockerapi.Running(ctx, cli, config.ServiceName)
		if err != nil {
			return retry.Fatal(err)
		}
		if !running {
			return ErrNotRunning
		}
		return nil
	}, retry.WithMaxRetries(retries), retry.WithInitialDelay(retryDelay))
	if err != nil {
		return provisioning.Result{}, fmt.Errorf("%s did not come up: %w", config.ServiceName, err)
	}

	portWait := s.PortWait
	if portWait == 0 {
		portWait = 30 * time.Second
	}
	if err := netutil.WaitForPort(ctx, config.LoopbackAddr, config.ServicePort, portWait); err != nil {
		// Container is running, the API just is not answering yet. The
		// operator can check logs; this does not abort the run.
		return provisioning.Warned(fmt.Sprintf("container running but API port not answering: %v", err)), nil
	}

	return provisioning.Applied(fmt.Sprintf("%s running on %s", config.ServiceName, ctx.Config.Upstream())), nil
}
