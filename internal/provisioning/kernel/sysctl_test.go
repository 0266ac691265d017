package kernel

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/strmbox/strmbox/internal/provisioning"
	testutil "github.com/strmbox/strmbox/internal/testing"
)

func TestSysctlStage_AppendsTuning(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sysctl.conf")
	require.NoError(t, os.WriteFile(path, []byte("vm.swappiness = 10\n"), 0o644))

	r := testutil.NewFakeRunner()
	ctx := testutil.StageContext(r, testutil.Config(t.TempDir()))

	result, err := SysctlStage{Path: path}.Provision(ctx)
	require.NoError(t, err)
	assert.Equal(t, provisioning.StatusApplied, result.Status)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "vm.swappiness = 10")
	assert.Contains(t, content, Marker)
	assert.Contains(t, content, "net.ipv4.tcp_congestion_control = bbr")
	assert.Contains(t, content, "net.core.default_qdisc = fq")
	assert.Contains(t, content, "net.core.rmem_max = 16777216")
	assert.True(t, r.Ran("sysctl -p"))
}

func TestSysctlStage_CreatesMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sysctl.conf")
	r := testutil.NewFakeRunner()
	ctx := testutil.StageContext(r, testutil.Config(t.TempDir()))

	_, err := SysctlStage{Path: path}.Provision(ctx)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), Marker)
}

func TestSysctlStage_IdempotentAcrossRuns(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sysctl.conf")
	ctx := testutil.StageContext(testutil.NewFakeRunner(), testutil.Config(t.TempDir()))

	first, err := SysctlStage{Path: path}.Provision(ctx)
	require.NoError(t, err)
	assert.Equal(t, provisioning.StatusApplied, first.Status)

	r2 := testutil.NewFakeRunner()
	ctx2 := testutil.StageContext(r2, testutil.Config(t.TempDir()))
	second, err := SysctlStage{Path: path}.Provision(ctx2)
	require.NoError(t, err)
	assert.Equal(t, provisioning.StatusSkipped, second.Status)
	assert.False(t, r2.Ran("sysctl"))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(data), Marker))
}

func TestSysctlStage_ApplyFailureAborts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sysctl.conf")
	r := testutil.NewFakeRunner()
	r.Errs["sysctl -p"] = errors.New("unknown key")
	ctx := testutil.StageContext(r, testutil.Config(t.TempDir()))

	_, err := SysctlStage{Path: path}.Provision(ctx)
	require.Error(t, err)
}
