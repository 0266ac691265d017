// Package provisioning provides the stage engine for host provisioning.
//
// The provisioning domain is organized into focused subpackages:
//   - system/: package update, container runtime, compose plugin
//   - service/: service definition materialization and startup
//   - proxy/: reverse proxy install and site configuration
//   - firewall/: firewall enablement and allow rules
//   - tls/: DNS pre-checks and certificate issuance
//   - kernel/: persistent sysctl network tuning
//
// This root package contains the Stage contract, the run loop, and the
// shared context passed between stages.
package provisioning

// Status classifies how a stage concluded.
type Status string

const (
	// StatusApplied means the stage performed its mutation.
	StatusApplied Status = "applied"

	// StatusSkipped means the stage's guard found the target state
	// already in place and no mutation was performed.
	StatusSkipped Status = "skipped"

	// StatusWarned means the stage completed but a non-fatal step failed;
	// the run continues and exits zero.
	StatusWarned Status = "warned"
)

// Result is the outcome of a stage that did not abort the run.
type Result struct {
	Status Status
	Detail string
}

// Applied builds an applied result.
func Applied(detail string) Result { return Result{Status: StatusApplied, Detail: detail} }

// Skipped builds a skipped result.
func Skipped(detail string) Result { return Result{Status: StatusSkipped, Detail: detail} }

// Warned builds a warned result.
func Warned(detail string) Result { return Result{Status: StatusWarned, Detail: detail} }

// Stage is one provisioning step: guard, apply, verify. A returned error
// aborts the whole run; recoverable conditions surface as Skipped or
// Warned results instead.
type Stage interface {
	// Name returns the human-readable name of this stage.
	Name() string

	// Provision executes the stage against the host.
	Provision(ctx *Context) (Result, error)
}
