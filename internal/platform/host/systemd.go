package host

import "context"

// ServiceManager controls systemd units through the command runner.
type ServiceManager struct {
	run Runner
}

// NewServiceManager creates a ServiceManager backed by systemctl.
func NewServiceManager(r Runner) *ServiceManager {
	return &ServiceManager{run: r}
}

// EnableNow enables a unit to start on boot and starts it immediately.
func (s *ServiceManager) EnableNow(ctx context.Context, unit string) error {
	return s.run.Run(ctx, "systemctl", "enable", "--now", unit)
}

// Reload asks a unit to re-read its configuration.
func (s *ServiceManager) Reload(ctx context.Context, unit string) error {
	return s.run.Run(ctx, "systemctl", "reload", unit)
}

// Restart fully stops and starts a unit.
func (s *ServiceManager) Restart(ctx context.Context, unit string) error {
	return s.run.Run(ctx, "systemctl", "restart", unit)
}
