package service

import (
	"context"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/docker/docker/api/types/container"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strmbox/strmbox/internal/platform/dockerapi"
	"github.com/strmbox/strmbox/internal/provisioning"
	testutil "github.com/strmbox/strmbox/internal/testing"
)

type fakeLister struct {
	containers []container.Summary
	err        error
}

func (f fakeLister) ContainerList(context.Context, container.ListOptions) ([]container.Summary, error) {
	return f.containers, f.err
}

func fastStart() StartStage {
	return StartStage{
		Grace:      time.Millisecond,
		PortWait:   50 * time.Millisecond,
		Retries:    1,
		RetryDelay: time.Millisecond,
	}
}

func startContext(t *testing.T, r *testutil.FakeRunner, lister dockerapi.Lister) *provisioning.Context {
	t.Helper()
	ctx := testutil.StageContext(r, testutil.Config(t.TempDir()))
	ctx.Docker = func() (dockerapi.Lister, error) { return lister, nil }
	return ctx
}

func TestStartStage_ComposeUpFailure(t *testing.T) {
	r := testutil.NewFakeRunner()
	r.Errs["docker compose"] = errors.New("no such file")
	ctx := startContext(t, r, fakeLister{})

	_, err := fastStart().Provision(ctx)
	require.Error(t, err)
}

func TestStartStage_ContainerNeverRuns(t *testing.T) {
	r := testutil.NewFakeRunner()
	lister := fakeLister{containers: []container.Summary{
		{Names: []string{"/stremio"}, State: "exited"},
	}}
	ctx := startContext(t, r, lister)

	_, err := fastStart().Provision(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNotRunning)
}

func TestStartStage_APIErrorIsFatal(t *testing.T) {
	r := testutil.NewFakeRunner()
	ctx := startContext(t, r, fakeLister{err: errors.New("daemon unreachable")})

	_, err := StartStage{
		Grace:      time.Millisecond,
		PortWait:   50 * time.Millisecond,
		Retries:    3,
		RetryDelay: time.Millisecond,
	}.Provision(ctx)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotRunning)
}

func TestStartStage_PortNotAnsweringWarns(t *testing.T) {
	r := testutil.NewFakeRunner()
	lister := fakeLister{containers: []container.Summary{
		{Names: []string{"/stremio"}, State: "running"},
	}}
	ctx := startContext(t, r, lister)

	result, err := fastStart().Provision(ctx)
	require.NoError(t, err)
	assert.Equal(t, provisioning.StatusWarned, result.Status)
	assert.True(t, r.Ran("docker compose -f"))
}

func TestStartStage_AppliedWhenPortAnswers(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:11470")
	if err != nil {
		t.Skipf("cannot bind service port: %v", err)
	}
	defer ln.Close()
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			conn.Close()
		}
	}()

	r := testutil.NewFakeRunner()
	lister := fakeLister{containers: []container.Summary{
		{Names: []string{"/stremio"}, State: "running"},
	}}
	ctx := startContext(t, r, lister)

	result, err := fastStart().Provision(ctx)
	require.NoError(t, err)
	assert.Equal(t, provisioning.StatusApplied, result.Status)
}
