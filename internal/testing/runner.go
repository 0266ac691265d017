// Package testing provides shared test doubles for the provisioner.
//
// The central one is FakeRunner, a scripted implementation of host.Runner
// that records every command a stage executes and answers from canned
// tables keyed by command prefix.
package testing

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// FakeRunner is a scripted host.Runner for tests.
//
// Commands are matched by the longest configured prefix of the
// space-joined invocation ("apt-get install -y nginx"). Unconfigured
// commands succeed with empty output.
type FakeRunner struct {
	mu sync.Mutex

	// Commands records every Run/RunEnv/Output invocation in order.
	Commands []string

	// Errs maps command prefixes to the error the invocation returns.
	Errs map[string]error

	// ErrsOnce maps command prefixes to an error returned only for the
	// first matching invocation, for guard-then-verify sequences.
	ErrsOnce map[string]error

	// Outputs maps command prefixes to canned combined output.
	Outputs map[string]string

	// Missing holds binary names LookPath reports as not installed.
	Missing map[string]bool
}

// NewFakeRunner creates an empty FakeRunner where every command succeeds.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		Errs:     make(map[string]error),
		ErrsOnce: make(map[string]error),
		Outputs:  make(map[string]string),
		Missing:  make(map[string]bool),
	}
}

// Run implements host.Runner.
func (f *FakeRunner) Run(_ context.Context, name string, args ...string) error {
	_, err := f.record(name, args)
	return err
}

// RunEnv implements host.Runner. The environment is not recorded; stages
// assert on commands, not on environment plumbing.
func (f *FakeRunner) RunEnv(_ context.Context, _ []string, name string, args ...string) error {
	_, err := f.record(name, args)
	return err
}

// Output implements host.Runner.
func (f *FakeRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	out, err := f.record(name, args)
	return []byte(out), err
}

// LookPath implements host.Runner.
func (f *FakeRunner) LookPath(name string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.Missing[name] {
		return "", fmt.Errorf("exec: %q: executable file not found in $PATH", name)
	}
	return "/usr/bin/" + name, nil
}

// Ran reports whether any recorded command starts with the given prefix.
func (f *FakeRunner) Ran(prefix string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.Commands {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}

// CallCount returns how many recorded commands start with the prefix.
func (f *FakeRunner) CallCount(prefix string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.Commands {
		if strings.HasPrefix(c, prefix) {
			n++
		}
	}
	return n
}

func (f *FakeRunner) record(name string, args []string) (string, error) {
	cmd := strings.Join(append([]string{name}, args...), " ")

	f.mu.Lock()
	defer f.mu.Unlock()
	f.Commands = append(f.Commands, cmd)

	for k, err := range f.ErrsOnce {
		if strings.HasPrefix(cmd, k) {
			delete(f.ErrsOnce, k)
			return "", err
		}
	}

	key := f.longestPrefix(cmd)
	if key == "" {
		return "", nil
	}
	return f.Outputs[key], f.Errs[key]
}

// longestPrefix finds the most specific configured prefix for a command so
// that "ufw status" and "ufw allow" can be scripted independently.
func (f *FakeRunner) longestPrefix(cmd string) string {
	best := ""
	for k := range f.Errs {
		if strings.HasPrefix(cmd, k) && len(k) > len(best) {
			best = k
		}
	}
	for k := range f.Outputs {
		if strings.HasPrefix(cmd, k) && len(k) > len(best) {
			best = k
		}
	}
	return best
}
