package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, EnvDevelopment, cfg.Env)
	assert.Equal(t, StorageLocal, cfg.Storage.Type)
	assert.False(t, cfg.IsProd())
}

func TestLoadYAMLWithEnvOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(`
port: 3000
env: Production
base_url: https://example.com/
storage:
  type: s3
  s3:
    bucket: media
`), 0o644))
	t.Setenv("PORT", "9090")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, EnvProduction, cfg.Env)
	assert.True(t, cfg.IsProd())
	assert.Equal(t, "https://example.com", cfg.BaseURL)
	assert.Equal(t, StorageS3, cfg.Storage.Type)
	assert.Equal(t, "media", cfg.Storage.S3.Bucket)
}

func TestLoadRejectsUnknownStorageType(t *testing.T) {
	t.Setenv("STORAGE_TYPE", "ftp")

	_, err := Load("")
	assert.Error(t, err)
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	t.Setenv("PORT", "70000")

	_, err := Load("")
	assert.Error(t, err)
}

func TestAIProviderSynthesizedFromEnv(t *testing.T) {
	t.Setenv("AI_API_KEY", "sk-test")
	t.Setenv("AI_MODEL", "gpt-4o-mini")

	cfg, err := Load("")
	require.NoError(t, err)

	require.Len(t, cfg.AI.Providers, 1)
	assert.Equal(t, "openai", cfg.AI.Providers[0].Type)
	assert.Equal(t, "sk-test", cfg.AI.Providers[0].APIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.AI.Providers[0].Model)
}

func TestHostedPlatformDetection(t *testing.T) {
	assert.Equal(t, "", HostedConfig{}.Platform())
	assert.Equal(t, "vercel", HostedConfig{Vercel: "1"}.Platform())
	assert.Equal(t, "netlify", HostedConfig{Netlify: "true"}.Platform())
	assert.Equal(t, "railway", HostedConfig{RailwayEnv: "production"}.Platform())
}
