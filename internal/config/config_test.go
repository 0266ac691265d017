package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Domain:     "media.example.org",
		Email:      "ops@example.org",
		InstallDir: "/root/stremio-server",
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{Domain: "media.example.org", Email: "ops@example.org"}
	cfg.ApplyDefaults()
	assert.Equal(t, DefaultInstallDir, cfg.InstallDir)
}

func TestApplyDefaults_KeepsExplicitInstallDir(t *testing.T) {
	cfg := &Config{InstallDir: "/srv/media"}
	cfg.ApplyDefaults()
	assert.Equal(t, "/srv/media", cfg.InstallDir)
}

func TestDerivedPaths(t *testing.T) {
	cfg := validConfig()
	assert.Equal(t, "/root/stremio-server/docker-compose.yml", cfg.ComposeFilePath())
	assert.Equal(t, "/root/stremio-server/data", cfg.DataDir())
	assert.Equal(t, "127.0.0.1:11470", cfg.Upstream())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "valid", mutate: func(*Config) {}},
		{
			name:    "missing domain",
			mutate:  func(c *Config) { c.Domain = "" },
			wantErr: "not a fully qualified domain name",
		},
		{
			name:    "bare hostname",
			mutate:  func(c *Config) { c.Domain = "media" },
			wantErr: "not a fully qualified domain name",
		},
		{
			name:    "bad email",
			mutate:  func(c *Config) { c.Email = "not-an-email" },
			wantErr: "not a valid address",
		},
		{
			name:    "relative install dir",
			mutate:  func(c *Config) { c.InstallDir = "stremio-server" },
			wantErr: "absolute path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadFromBytes(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("domain: media.example.org\nemail: ops@example.org\n"))
	require.NoError(t, err)
	assert.Equal(t, "media.example.org", cfg.Domain)
	assert.Equal(t, DefaultInstallDir, cfg.InstallDir)
}

func TestLoadFromBytes_InvalidYAML(t *testing.T) {
	_, err := LoadFromBytes([]byte("domain: [unterminated"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse YAML")
}

func TestLoadFromBytes_ValidationFailure(t *testing.T) {
	_, err := LoadFromBytes([]byte("domain: media.example.org\nemail: nope\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config file")
}

func TestWriteYAML_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultConfigFilename)
	require.NoError(t, WriteYAML(validConfig(), path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, validConfig(), loaded)
}

func TestValidateDomain(t *testing.T) {
	assert.NoError(t, ValidateDomain("media.example.org"))
	assert.Error(t, ValidateDomain(""))
	assert.Error(t, ValidateDomain("not a domain"))
}

func TestValidateEmail(t *testing.T) {
	assert.NoError(t, ValidateEmail("ops@example.org"))
	assert.Error(t, ValidateEmail("ops@"))
}
