package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pelletier/go-toml/v2"
)

// Config represents the application configuration
type Config struct {
	Environment string          `toml:"environment"` // "development" or "production"
	Server      ServerConfig    `toml:"server"`
	Storage     StorageConfig   `toml:"storage"`
	Logging     LoggingConfig   `toml:"logging"`
	Ingest      IngestConfig    `toml:"ingest"`
	Retrieval   RetrievalConfig `toml:"retrieval"`
	LLM         LLMConfig       `toml:"llm"`
}

type ServerConfig struct {
	Port int    `toml:"port" validate:"min=1,max=65535"`
	Host string `toml:"host" validate:"required"`
}

type StorageConfig struct {
	Badger BadgerConfig `toml:"badger"`
}

// BadgerConfig represents BadgerDB-specific configuration
type BadgerConfig struct {
	Path           string `toml:"path" validate:"required"`
	ResetOnStartup bool   `toml:"reset_on_startup"` // Delete database on startup for clean test runs
	GCSchedule     string `toml:"gc_schedule"`      // Cron schedule for value-log GC
}

type LoggingConfig struct {
	Level  string   `toml:"level" validate:"oneof=debug info warn error"`
	Output []string `toml:"output"` // "stdout", "file"
}

// IngestConfig controls document ingestion.
type IngestConfig struct {
	ChunkSize      int   `toml:"chunk_size" validate:"min=1"`  // Characters per chunk
	MaxUploadBytes int64 `toml:"max_upload_bytes" validate:"min=1"`
}

// RetrievalConfig holds the retrieval and grounding constants. The defaults
// match the original tuning; treat them as configuration, not code.
type RetrievalConfig struct {
	TopK               int     `toml:"top_k" validate:"min=1"`
	GroundingThreshold float64 `toml:"grounding_threshold" validate:"min=0,max=1"` // Top-score gate below which the answer is "not found"
	ConfidenceHigh     float64 `toml:"confidence_high" validate:"min=0,max=1"`     // Mean score above which confidence is High
	ConfidenceMedium   float64 `toml:"confidence_medium" validate:"min=0,max=1"`   // Mean score above which confidence is Medium
	ContextChunks      int     `toml:"context_chunks" validate:"min=1"`            // Chunks sampled for question generation
}

// LLMConfig selects and configures the generation provider.
type LLMConfig struct {
	Provider          string       `toml:"provider" validate:"oneof=gemini claude"`
	Timeout           string       `toml:"timeout"`             // e.g. "60s" - per-call timeout
	RequestsPerMinute int          `toml:"requests_per_minute"` // Shared client-side rate limit, 0 disables
	Gemini            GeminiConfig `toml:"gemini"`
	Claude            ClaudeConfig `toml:"claude"`
}

type GeminiConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	Temperature float32 `toml:"temperature"`
}

type ClaudeConfig struct {
	APIKey      string  `toml:"api_key"`
	Model       string  `toml:"model"`
	MaxTokens   int     `toml:"max_tokens"`
	Temperature float32 `toml:"temperature"`
}

// DefaultConfig returns the built-in defaults. Later layers (files, env,
// flags) override these.
func DefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Server: ServerConfig{
			Port: 8090,
			Host: "localhost",
		},
		Storage: StorageConfig{
			Badger: BadgerConfig{
				Path:       "./data/vedam",
				GCSchedule: "@every 10m",
			},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Output: []string{"stdout"},
		},
		Ingest: IngestConfig{
			ChunkSize:      1000,
			MaxUploadBytes: 25 * 1024 * 1024,
		},
		Retrieval: RetrievalConfig{
			TopK:               5,
			GroundingThreshold: 0.15,
			ConfidenceHigh:     0.5,
			ConfidenceMedium:   0.3,
			ContextChunks:      10,
		},
		LLM: LLMConfig{
			Provider:          "gemini",
			Timeout:           "60s",
			RequestsPerMinute: 30,
			Gemini: GeminiConfig{
				Model:       "gemini-2.5-flash",
				Temperature: 0.2,
			},
			Claude: ClaudeConfig{
				Model:       "claude-sonnet-4-20250514",
				MaxTokens:   4096,
				Temperature: 0.2,
			},
		},
	}
}

// LoadFromFiles loads configuration in layers: defaults, then each file in
// order (later files override earlier ones), then environment variables.
func LoadFromFiles(paths ...string) (*Config, error) {
	config := DefaultConfig()

	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// applyEnvOverrides applies VEDAM_* environment variables over the loaded
// configuration. Environment wins over files; CLI flags win over both.
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("VEDAM_ENV"); env != "" {
		config.Environment = env
	}
	if port := os.Getenv("VEDAM_SERVER_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}
	if host := os.Getenv("VEDAM_SERVER_HOST"); host != "" {
		config.Server.Host = host
	}
	if badgerPath := os.Getenv("VEDAM_BADGER_PATH"); badgerPath != "" {
		config.Storage.Badger.Path = badgerPath
	}
	if level := os.Getenv("VEDAM_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}
	if output := os.Getenv("VEDAM_LOG_OUTPUT"); output != "" {
		config.Logging.Output = strings.Split(output, ",")
	}
	if provider := os.Getenv("VEDAM_LLM_PROVIDER"); provider != "" {
		config.LLM.Provider = provider
	}
	if key := os.Getenv("GEMINI_API_KEY"); key != "" {
		config.LLM.Gemini.APIKey = key
	}
	if key := os.Getenv("ANTHROPIC_API_KEY"); key != "" {
		config.LLM.Claude.APIKey = key
	}
}

// ApplyFlagOverrides applies command-line flag values (highest priority).
// Zero values mean the flag was not set.
func ApplyFlagOverrides(config *Config, port int, host string) {
	if port != 0 {
		config.Server.Port = port
	}
	if host != "" {
		config.Server.Host = host
	}
}

// Validate checks the configuration using go-playground/validator tags.
func (c *Config) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
