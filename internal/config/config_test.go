package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/aptiz/internal/llm"
)

// clearEnv blanks every variable the loader consults.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"APTIZ_CONFIG", "APTIZ_LLM_PROVIDER", "APTIZ_LLM_TIMEOUT",
		"APTIZ_GEMINI_API_KEY", "APTIZ_GEMINI_MODEL",
		"APTIZ_OPENAI_API_KEY", "APTIZ_OPENAI_MODEL", "APTIZ_OPENAI_BASE_URL",
		"APTIZ_ANTHROPIC_API_KEY", "APTIZ_ANTHROPIC_MODEL",
		"APTIZ_OPENROUTER_API_KEY", "APTIZ_OPENROUTER_MODEL",
		"GEMINI_API_KEY", "API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))
	return p
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, DefaultAddr, cfg.Server.Addr)
	assert.Empty(t, cfg.LLM.Provider)
}

func TestLoad_YAML(t *testing.T) {
	clearEnv(t)
	p := writeFile(t, "aptiz.yaml", `
server:
  addr: ":9090"
  allowed_origins: ["http://localhost:5173"]
llm:
  provider: openai
  model: gpt-4o
  timeout: 20s
store:
  path: /tmp/aptiz.db
`)
	cfg, err := Load(p)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "gpt-4o", cfg.LLM.Model)
	assert.Equal(t, "/tmp/aptiz.db", cfg.Store.Path)
}

func TestLoad_FromEnvPath(t *testing.T) {
	clearEnv(t)
	p := writeFile(t, "aptiz.yaml", "llm:\n  provider: mock\n")
	t.Setenv("APTIZ_CONFIG", p)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "mock", cfg.LLM.Provider)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "bad.yaml", "server: [unclosed"))
	assert.Error(t, err)

	_, err = Load(writeFile(t, "timeout.yaml", "llm:\n  timeout: soon\n"))
	assert.Error(t, err)
}

func TestDuration(t *testing.T) {
	assert.Equal(t, 5*time.Second, Duration("", 5*time.Second))
	assert.Equal(t, 5*time.Second, Duration("nope", 5*time.Second))
	assert.Equal(t, 5*time.Second, Duration("-1s", 5*time.Second))
	assert.Equal(t, 2*time.Minute, Duration("2m", 5*time.Second))
}

func TestLLMConfig_FileValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("OPENAI_API_KEY", "sk-test")

	var cfg Config
	cfg.LLM.Provider = "openai"
	cfg.LLM.Model = "gpt-4o"
	cfg.LLM.Timeout = "10s"

	got, err := cfg.LLMConfig()
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderOpenAI, got.Provider)
	assert.Equal(t, "sk-test", got.OpenAI.APIKey)
	assert.Equal(t, "gpt-4o", got.OpenAI.Model)
	assert.Equal(t, 10*time.Second, got.Timeout)
}

func TestLLMConfig_EnvWinsOverFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("APTIZ_LLM_PROVIDER", "gemini")
	t.Setenv("APTIZ_GEMINI_API_KEY", "g-key")
	t.Setenv("APTIZ_GEMINI_MODEL", "gemini-pro")

	var cfg Config
	cfg.LLM.Provider = "openai"
	cfg.LLM.Model = "gemini-flash-lite"

	got, err := cfg.LLMConfig()
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderGemini, got.Provider)
	assert.Equal(t, "gemini-pro", got.Gemini.Model)
}

func TestLLMConfig_DiscoversLegacyKey(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_KEY", "legacy")

	got, err := Config{}.LLMConfig()
	require.NoError(t, err)
	assert.Equal(t, llm.ProviderGemini, got.Provider)
	assert.Equal(t, "gemini-2.5-flash", got.Gemini.Model)
}

func TestLLMConfig_NoProvider(t *testing.T) {
	clearEnv(t)
	_, err := Config{}.LLMConfig()
	assert.True(t, errors.Is(err, ErrNoProvider), "got %v", err)
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("APTIZ_LLM_PROVIDER", "anthropic")
	// An empty variable still counts as set, so remove it entirely.
	os.Unsetenv("APTIZ_GEMINI_API_KEY")
	p := writeFile(t, ".env", "APTIZ_GEMINI_API_KEY=from-file\nAPTIZ_LLM_PROVIDER=mock\n")

	require.NoError(t, LoadEnvFile(p))
	assert.Equal(t, "from-file", os.Getenv("APTIZ_GEMINI_API_KEY"))
	assert.Equal(t, "anthropic", os.Getenv("APTIZ_LLM_PROVIDER"), "existing env must win")

	require.NoError(t, LoadEnvFile(filepath.Join(t.TempDir(), "missing.env")))
}
