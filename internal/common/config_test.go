package common

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, 8090, config.Server.Port)
	assert.Equal(t, 1000, config.Ingest.ChunkSize)
	assert.Equal(t, 5, config.Retrieval.TopK)
	assert.InDelta(t, 0.15, config.Retrieval.GroundingThreshold, 0.0001)
	assert.InDelta(t, 0.5, config.Retrieval.ConfidenceHigh, 0.0001)
	assert.InDelta(t, 0.3, config.Retrieval.ConfidenceMedium, 0.0001)
	assert.Equal(t, 10, config.Retrieval.ContextChunks)
	assert.Equal(t, "gemini", config.LLM.Provider)

	require.NoError(t, config.Validate())
}

func TestLoadFromFiles_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vedam.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
environment = "production"

[server]
port = 9999

[retrieval]
top_k = 7
`), 0644))

	config, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.Equal(t, "production", config.Environment)
	assert.Equal(t, 9999, config.Server.Port)
	assert.Equal(t, 7, config.Retrieval.TopK)
	// Untouched values keep their defaults.
	assert.Equal(t, 1000, config.Ingest.ChunkSize)
}

func TestLoadFromFiles_LaterFileWins(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.toml")
	second := filepath.Join(dir, "second.toml")
	require.NoError(t, os.WriteFile(first, []byte("[server]\nport = 7000\n"), 0644))
	require.NoError(t, os.WriteFile(second, []byte("[server]\nport = 8000\n"), 0644))

	config, err := LoadFromFiles(first, second)
	require.NoError(t, err)

	assert.Equal(t, 8000, config.Server.Port)
}

func TestLoadFromFiles_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vedam.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nport = 7000\n"), 0644))

	t.Setenv("VEDAM_SERVER_PORT", "7500")
	t.Setenv("VEDAM_LOG_LEVEL", "debug")

	config, err := LoadFromFiles(path)
	require.NoError(t, err)

	assert.Equal(t, 7500, config.Server.Port)
	assert.Equal(t, "debug", config.Logging.Level)
}

func TestLoadFromFiles_MissingFile(t *testing.T) {
	_, err := LoadFromFiles("/nonexistent/vedam.toml")
	assert.Error(t, err)
}

func TestApplyFlagOverrides(t *testing.T) {
	config := DefaultConfig()

	ApplyFlagOverrides(config, 9001, "0.0.0.0")
	assert.Equal(t, 9001, config.Server.Port)
	assert.Equal(t, "0.0.0.0", config.Server.Host)

	// Zero values leave the config untouched.
	ApplyFlagOverrides(config, 0, "")
	assert.Equal(t, 9001, config.Server.Port)
	assert.Equal(t, "0.0.0.0", config.Server.Host)
}

func TestValidate_RejectsBadValues(t *testing.T) {
	config := DefaultConfig()
	config.Logging.Level = "verbose"
	assert.Error(t, config.Validate())

	config = DefaultConfig()
	config.LLM.Provider = "openai"
	assert.Error(t, config.Validate())

	config = DefaultConfig()
	config.Retrieval.TopK = 0
	assert.Error(t, config.Validate())
}

func TestAPIKeyEnvOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "gem-key")
	t.Setenv("ANTHROPIC_API_KEY", "ant-key")

	config := DefaultConfig()
	applyEnvOverrides(config)

	assert.Equal(t, "gem-key", config.LLM.Gemini.APIKey)
	assert.Equal(t, "ant-key", config.LLM.Claude.APIKey)
}
