package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("COINFLOW_CONFIG", "/nonexistent/config.toml")

	cfg, err := Load()
	require.NoError(t, err)
	require.NotEmpty(t, cfg.Database.Path)
	require.Equal(t, "keyword", cfg.LLM.Provider)
	require.Equal(t, ":8123", cfg.Server.Addr)
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("COINFLOW_CONFIG", "/nonexistent/config.toml")
	t.Setenv("COINFLOW_DATABASE_PATH", "/tmp/override.db")
	t.Setenv("COINFLOW_LLM_PROVIDER", "gemini")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/override.db", cfg.Database.Path)
	require.Equal(t, "gemini", cfg.LLM.Provider)
}

func TestResolveAPIKeyPrefersEnv(t *testing.T) {
	t.Setenv("TEST_COINFLOW_KEY", "from-env")

	cfg := Config{LLM: LLMConfig{APIKeyEnv: "TEST_COINFLOW_KEY", APIKey: "from-file"}}
	require.Equal(t, "from-env", cfg.ResolveAPIKey())

	cfg.LLM.APIKeyEnv = "TEST_COINFLOW_KEY_UNSET"
	require.Equal(t, "from-file", cfg.ResolveAPIKey())
}
