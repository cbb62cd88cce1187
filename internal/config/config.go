package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/abhisek/aptiz/internal/llm"
)

// ErrNoProvider is returned when no usable model provider is configured.
var ErrNoProvider = errors.New("no LLM provider configured")

// DefaultAddr is the listen address for aptiz serve.
const DefaultAddr = ":8080"

// Config is the optional YAML file. Environment variables take precedence
// over file values, and command-line flags over both.
type Config struct {
	Server struct {
		Addr           string   `yaml:"addr"`
		AllowedOrigins []string `yaml:"allowed_origins"`
	} `yaml:"server"`
	LLM struct {
		Provider string `yaml:"provider"`
		Model    string `yaml:"model"`
		Timeout  string `yaml:"timeout"`
	} `yaml:"llm"`
	Store struct {
		Path string `yaml:"path"`
	} `yaml:"store"`
}

// LoadEnvFile loads KEY=value pairs from path into the environment.
// Variables already set are left alone. A missing file is not an error.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// Load reads YAML config from path. An empty path falls back to
// APTIZ_CONFIG; if that is empty too, defaults are returned.
func Load(path string) (Config, error) {
	cfg := Config{}
	cfg.Server.Addr = DefaultAddr

	if path == "" {
		path = os.Getenv("APTIZ_CONFIG")
	}
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = DefaultAddr
	}
	if _, err := parseDuration(cfg.LLM.Timeout); err != nil {
		return cfg, fmt.Errorf("llm.timeout: %w", err)
	}
	return cfg, nil
}

// Duration parses a duration string or returns the fallback if empty or invalid.
func Duration(raw string, fallback time.Duration) time.Duration {
	d, err := parseDuration(raw)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}

func parseDuration(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	return time.ParseDuration(raw)
}

// LLMConfig builds the model provider configuration: APTIZ_* environment
// variables first, then file values for anything the environment leaves
// unset, then key discovery. It returns ErrNoProvider when no provider has
// a key.
func (c Config) LLMConfig() (llm.Config, error) {
	cfg := llm.ConfigFromEnv()

	if os.Getenv("APTIZ_LLM_PROVIDER") == "" && c.LLM.Provider != "" {
		cfg.Provider = c.LLM.Provider
	}
	if c.LLM.Model != "" && os.Getenv(modelEnv(cfg.Provider)) == "" {
		cfg.SetModel(c.LLM.Model)
	}
	if os.Getenv("APTIZ_LLM_TIMEOUT") == "" {
		cfg.Timeout = Duration(c.LLM.Timeout, cfg.Timeout)
	}

	resolved, err := llm.Resolve(cfg)
	if err != nil {
		return llm.Config{}, fmt.Errorf("%w: %v", ErrNoProvider, err)
	}
	return resolved, nil
}

// modelEnv names the model override variable for provider.
func modelEnv(provider string) string {
	switch provider {
	case llm.ProviderGemini:
		return "APTIZ_GEMINI_MODEL"
	case llm.ProviderOpenAI:
		return "APTIZ_OPENAI_MODEL"
	case llm.ProviderAnthropic:
		return "APTIZ_ANTHROPIC_MODEL"
	case llm.ProviderOpenRouter:
		return "APTIZ_OPENROUTER_MODEL"
	}
	return "APTIZ_MODEL"
}
