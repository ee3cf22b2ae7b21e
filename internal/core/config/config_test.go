package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.App.HTTP.Port)
	assert.Equal(t, "your-secret-key", cfg.JWT.Secret)
	assert.Equal(t, 24*60, cfg.JWT.AccessTokenTTLMin)
	assert.Equal(t, "recruitment-files", cfg.Storage.Buckets.Default)
	assert.Equal(t, "company-logos", cfg.Storage.Buckets.Logos)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.LLM.Model)
	assert.InDelta(t, 0.3, cfg.LLM.Temperature, 1e-9)
	assert.Equal(t, 8192, cfg.LLM.MaxTokens)
	assert.Equal(t, 10, cfg.Upload.MaxFileMB)
	assert.Equal(t, 5, cfg.Upload.MaxFiles)
	assert.Equal(t, []string{"*"}, cfg.App.HTTP.CORSOrigins)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.yaml")
	yaml := []byte("app:\n  http:\n    port: 9999\ndb:\n  driver: sqlite\nllm:\n  provider: gemini\n")
	require.NoError(t, os.WriteFile(path, yaml, 0o600))

	t.Setenv("APP_JWT_ISSUER", "from-env")
	t.Setenv("MINIO_ENDPOINT", "minio.internal")
	t.Setenv("GROQ_API_KEY", "gsk_test")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9999, cfg.App.HTTP.Port)
	assert.Equal(t, "sqlite", cfg.DB.Driver)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "from-env", cfg.JWT.Issuer)
	assert.Equal(t, "minio.internal", cfg.Storage.Endpoint)
	assert.Equal(t, "gsk_test", cfg.LLM.APIKey)
}

func TestLoadBrokenYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("app: [\n"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}
