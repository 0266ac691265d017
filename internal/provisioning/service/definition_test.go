package service

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/strmbox/strmbox/internal/provisioning"
	testutil "github.com/strmbox/strmbox/internal/testing"
)

func TestRenderDefinition_LoopbackOnlyBinding(t *testing.T) {
	data, err := RenderDefinition(testutil.Config(t.TempDir()))
	require.NoError(t, err)

	var parsed composeFile
	require.NoError(t, yaml.Unmarshal(data, &parsed))

	svc, ok := parsed.Services["stremio"]
	require.True(t, ok, "service entry missing")
	assert.Equal(t, "stremio/server:latest", svc.Image)
	assert.Equal(t, "unless-stopped", svc.Restart)
	assert.Equal(t, []string{"127.0.0.1:11470:11470"}, svc.Ports)
	assert.Contains(t, svc.Environment, "NO_CORS=1")
	assert.Contains(t, svc.Volumes, "./data:/root/.stremio-server")
	assert.Equal(t, "json-file", svc.Logging.Driver)
	assert.Equal(t, "10m", svc.Logging.Options["max-size"])
}

func TestDefinitionStage_WritesFileAndDataDir(t *testing.T) {
	dir := t.TempDir()
	cfg := testutil.Config(dir)
	ctx := testutil.StageContext(testutil.NewFakeRunner(), cfg)

	result, err := DefinitionStage{}.Provision(ctx)
	require.NoError(t, err)
	assert.Equal(t, provisioning.StatusApplied, result.Status)

	info, err := os.Stat(filepath.Join(dir, "data"))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	data, err := os.ReadFile(cfg.ComposeFilePath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "127.0.0.1:11470:11470")
}

func TestDefinitionStage_OverwritesStaleDefinition(t *testing.T) {
	dir := t.TempDir()
	cfg := testutil.Config(dir)
	require.NoError(t, os.WriteFile(cfg.ComposeFilePath(), []byte("services: {}\n"), 0o644))

	ctx := testutil.StageContext(testutil.NewFakeRunner(), cfg)
	_, err := DefinitionStage{}.Provision(ctx)
	require.NoError(t, err)

	data, err := os.ReadFile(cfg.ComposeFilePath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "stremio/server:latest")
}
