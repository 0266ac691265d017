// Package kernel appends the persistent network tuning block and applies
// it to the running kernel.
package kernel

import (
	"fmt"
	"os"
	"strings"

	"github.com/strmbox/strmbox/internal/provisioning"
)

// Marker guards the tuning block: its presence in the sysctl file means a
// previous run already applied the tuning, so the stage is a no-op.
const Marker = "# strmbox streaming network tuning"

// DefaultSysctlPath is the system's persistent sysctl configuration.
const DefaultSysctlPath = "/etc/sysctl.conf"

// tuningBlock raises the network buffer ceilings for high-bitrate
// streams and switches to BBR with fair queueing, which holds throughput
// on lossy residential links far better than cubic.
const tuningBlock = Marker + `
net.core.rmem_max = 16777216
net.core.wmem_max = 16777216
net.ipv4.tcp_rmem = 4096 87380 16777216
net.ipv4.tcp_wmem = 4096 65536 16777216
net.core.default_qdisc = fq
net.ipv4.tcp_congestion_control = bbr
net.ipv4.tcp_mtu_probing = 1
`

// SysctlStage appends the tuning block at most once across any number of
// runs and applies it live.
type SysctlStage struct {
	// Path overrides the sysctl file location in tests.
	Path string
}

// Name implements provisioning.Stage.
func (SysctlStage) Name() string { return "kernel tuning" }

// Provision implements provisioning.Stage.
func (s SysctlStage) Provision(ctx *provisioning.Context) (provisioning.Result, error) {
	path := s.Path
	if path == "" {
		path = DefaultSysctlPath
	}

	existing, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return provisioning.Result{}, fmt.Errorf("read %s: %w", path, err)
	}
	if strings.Contains(string(existing), Marker) {
		return provisioning.Skipped("kernel tuning already applied"), nil
	}

	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return provisioning.Result{}, fmt.Errorf("open %s: %w", path, err)
	}
	if _, err := f.WriteString("\n" + tuningBlock); err != nil {
		f.Close()
		return provisioning.Result{}, fmt.Errorf("append tuning block: %w", err)
	}
	if err := f.Close(); err != nil {
		return provisioning.Result{}, err
	}

	if err := ctx.Sys.Run(ctx, "sysctl", "-p"); err != nil {
		return provisioning.Result{}, err
	}

	return provisioning.Applied("kernel network tuning applied"), nil
}
