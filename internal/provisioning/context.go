package provisioning

import (
	"context"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/strmbox/strmbox/internal/config"
	"github.com/strmbox/strmbox/internal/netutil"
	"github.com/strmbox/strmbox/internal/platform/dockerapi"
	"github.com/strmbox/strmbox/internal/platform/host"
)

// Outcome pairs a stage name with its result, for the final summary.
type Outcome struct {
	Stage  string
	Result Result
}

// State holds results that stages share and the summary reports.
// It is progressively populated as stages complete.
type State struct {
	// PublicIP is this host's public address, populated by the TLS stage.
	PublicIP string

	// ResolvedIPs are the addresses the target domain resolves to.
	ResolvedIPs []string

	// CertIssued reports whether certificate issuance succeeded; when
	// false the proxy stays on plain HTTP and the summary says so.
	CertIssued bool

	// Outcomes records every completed stage in run order.
	Outcomes []Outcome
}

// Context wraps the dependencies and state a stage needs. Every external
// touchpoint (command execution, DNS, HTTP, the Docker API, interactive
// confirmation) is an injectable field so stage tests never reach the
// real host.
type Context struct {
	context.Context

	Config   *config.Config
	Sys      host.Runner
	Services *host.ServiceManager
	Resolver netutil.Resolver
	HTTP     *http.Client

	// Docker lazily connects to the Docker daemon. Deferred because the
	// daemon does not exist until the runtime stage has installed it.
	Docker func() (dockerapi.Lister, error)

	// Confirm asks the operator a yes/no question. Replaced by a canned
	// answer when the run is non-interactive.
	Confirm func(ctx context.Context, title, description string) (bool, error)

	Observer Observer
	State    *State
}

// NewContext creates a provisioning context with production defaults.
func NewContext(ctx context.Context, cfg *config.Config, runner host.Runner, logger zerolog.Logger) *Context {
	return &Context{
		Context:  ctx,
		Config:   cfg,
		Sys:      runner,
		Services: host.NewServiceManager(runner),
		Resolver: netutil.NetResolver{},
		HTTP:     nil, // netutil.PublicIP falls back to a default client
		Docker: func() (dockerapi.Lister, error) {
			return dockerapi.NewClient()
		},
		Confirm:  config.Confirm,
		Observer: NewConsoleObserver(logger),
		State:    &State{},
	}
}
