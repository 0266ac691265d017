package handlers

import (
	"context"
	"errors"
	"testing"

	"github.com/docker/docker/api/types/container"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strmbox/strmbox/internal/config"
	"github.com/strmbox/strmbox/internal/platform/dockerapi"
	"github.com/strmbox/strmbox/internal/platform/host"
	testutil "github.com/strmbox/strmbox/internal/testing"
	"github.com/strmbox/strmbox/internal/util/prerequisites"
)

type fakeLister struct {
	containers []container.Summary
	err        error
}

func (f fakeLister) ContainerList(context.Context, container.ListOptions) ([]container.Summary, error) {
	return f.containers, f.err
}

func stubDoctorProbes(t *testing.T) *testutil.FakeRunner {
	t.Helper()
	geteuid = func() int { return 0 }
	isInteractive = func() bool { return false }
	checkHostTools = func() *prerequisites.CheckResults {
		return prerequisites.Check(func(string) (string, error) {
			return "/usr/bin/tool", nil
		}, prerequisites.HostTools())
	}
	newDockerClient = func() (dockerapi.Lister, error) {
		return fakeLister{containers: []container.Summary{
			{Names: []string{"/stremio"}, State: "running"},
		}}, nil
	}

	fake := testutil.NewFakeRunner()
	fake.Outputs["ufw status"] = "Status: active\n"
	newRunner = func(zerolog.Logger) host.Runner { return fake }
	return fake
}

func TestBuildDoctorReport_DNSMatch(t *testing.T) {
	saveAndRestoreFactories(t)
	stubDoctorProbes(t)
	resolveDomain = func(context.Context, string) ([]string, error) {
		return []string{"203.0.113.10"}, nil
	}
	fetchPublicIP = func(context.Context) (string, error) {
		return "203.0.113.10", nil
	}

	cfg := &config.Config{Domain: "media.example.org", Email: "ops@example.org"}
	report := buildDoctorReport(context.Background(), cfg)

	assert.True(t, report.Root)
	assert.Equal(t, "ok", report.DNSMatch)
	assert.Equal(t, "203.0.113.10", report.PublicIP)
	assert.Equal(t, "running", report.ContainerState)
	assert.True(t, report.FirewallActive)
	require.Len(t, report.Tools, len(prerequisites.HostTools()))
	for _, tool := range report.Tools {
		assert.True(t, tool.Found, tool.Name)
	}
}

func TestBuildDoctorReport_DNSMismatch(t *testing.T) {
	saveAndRestoreFactories(t)
	stubDoctorProbes(t)
	resolveDomain = func(context.Context, string) ([]string, error) {
		return []string{"198.51.100.7"}, nil
	}
	fetchPublicIP = func(context.Context) (string, error) {
		return "203.0.113.10", nil
	}

	report := buildDoctorReport(context.Background(),
		&config.Config{Domain: "media.example.org", Email: "ops@example.org"})
	assert.Equal(t, "mismatch", report.DNSMatch)
}

func TestBuildDoctorReport_Unresolvable(t *testing.T) {
	saveAndRestoreFactories(t)
	stubDoctorProbes(t)
	resolveDomain = func(context.Context, string) ([]string, error) {
		return nil, errors.New("NXDOMAIN")
	}

	report := buildDoctorReport(context.Background(),
		&config.Config{Domain: "media.example.org", Email: "ops@example.org"})
	assert.Equal(t, "unresolvable", report.DNSMatch)
	assert.Empty(t, report.PublicIP)
}

func TestBuildDoctorReport_NoConfigSkipsDNS(t *testing.T) {
	saveAndRestoreFactories(t)
	stubDoctorProbes(t)
	resolveDomain = func(context.Context, string) ([]string, error) {
		t.Fatal("must not resolve without a configured domain")
		return nil, nil
	}

	report := buildDoctorReport(context.Background(), nil)
	assert.Empty(t, report.Domain)
	assert.Empty(t, report.DNSMatch)
}

func TestBuildDoctorReport_DaemonUnreachable(t *testing.T) {
	saveAndRestoreFactories(t)
	stubDoctorProbes(t)
	newDockerClient = func() (dockerapi.Lister, error) {
		return nil, errors.New("cannot connect")
	}

	report := buildDoctorReport(context.Background(), nil)
	assert.Empty(t, report.ContainerState)
}

func TestBuildDoctorReport_AbsentContainer(t *testing.T) {
	saveAndRestoreFactories(t)
	stubDoctorProbes(t)
	newDockerClient = func() (dockerapi.Lister, error) {
		return fakeLister{}, nil
	}

	report := buildDoctorReport(context.Background(), nil)
	assert.Equal(t, "absent", report.ContainerState)
}

func TestDoctor_MissingRequiredToolFails(t *testing.T) {
	saveAndRestoreFactories(t)
	stubDoctorProbes(t)
	findConfigFile = func() (string, error) { return "", errors.New("not found") }
	checkHostTools = func() *prerequisites.CheckResults {
		return prerequisites.Check(func(string) (string, error) {
			return "", errors.New("not found")
		}, prerequisites.HostTools())
	}

	err := Doctor(context.Background(), "", true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required tools")
}
