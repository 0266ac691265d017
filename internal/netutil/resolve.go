package netutil

import (
	"context"
	"net"
)

// Resolver looks up host addresses. The production implementation wraps
// net.DefaultResolver; tests substitute a fake with canned answers.
type Resolver interface {
	LookupHost(ctx context.Context, host string) ([]string, error)
}

// NetResolver resolves through the system resolver.
type NetResolver struct{}

// LookupHost implements Resolver.
func (NetResolver) LookupHost(ctx context.Context, host string) ([]string, error) {
	return net.DefaultResolver.LookupHost(ctx, host)
}
