package testing

import (
	"context"
	"net/http"

	"github.com/strmbox/strmbox/internal/config"
	"github.com/strmbox/strmbox/internal/platform/host"
	"github.com/strmbox/strmbox/internal/provisioning"
)

// NopObserver discards all status lines.
type NopObserver struct{}

func (NopObserver) Info(string, ...any)    {}
func (NopObserver) Success(string, ...any) {}
func (NopObserver) Warn(string, ...any)    {}
func (NopObserver) Error(string, ...any)   {}

// Config returns a valid run configuration rooted in the given directory.
func Config(installDir string) *config.Config {
	return &config.Config{
		Domain:     "media.example.org",
		Email:      "ops@example.org",
		InstallDir: installDir,
	}
}

// StageContext builds a provisioning context wired to the fake runner,
// with the remaining collaborators left nil for the test to fill in.
func StageContext(r *FakeRunner, cfg *config.Config) *provisioning.Context {
	return &provisioning.Context{
		Context:  context.Background(),
		Config:   cfg,
		Sys:      r,
		Services: host.NewServiceManager(r),
		Observer: NopObserver{},
		State:    &provisioning.State{},
	}
}

// RoundTripFunc adapts a function to http.RoundTripper, so tests can
// serve canned HTTP responses without a listener.
type RoundTripFunc func(*http.Request) (*http.Response, error)

// RoundTrip implements http.RoundTripper.
func (f RoundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

// FakeResolver answers domain lookups from a canned table.
type FakeResolver struct {
	Hosts map[string][]string
	Err   error
}

// LookupHost implements netutil.Resolver.
func (f FakeResolver) LookupHost(_ context.Context, host string) ([]string, error) {
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Hosts[host], nil
}
