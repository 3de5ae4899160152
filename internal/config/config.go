// Package config loads application configuration from file and environment.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	LLM      LLMConfig
	Server   ServerConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// LLMConfig holds classification provider settings. Provider "keyword"
// selects the offline heuristic; "gemini" calls the API.
type LLMConfig struct {
	Provider  string
	APIKeyEnv string `mapstructure:"api_key_env"`
	APIKey    string `mapstructure:"api_key"`
	Model     string
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Addr string
}

// UIConfig holds presentation settings returned through the API.
type UIConfig struct {
	Timezone       string
	CurrencySymbol string `mapstructure:"currency_symbol"`
}

// Load reads configuration from file and env. Env var overrides use prefix
// COINFLOW_, e.g. COINFLOW_DATABASE_PATH.
func Load() (Config, error) {
	v := viper.New()

	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "coinflow", "coinflow.db"))
	v.SetDefault("llm.provider", "keyword")
	v.SetDefault("llm.api_key_env", "GEMINI_API_KEY")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "gemini-2.0-flash")
	v.SetDefault("server.addr", ":8123")
	v.SetDefault("ui.timezone", "America/Toronto")
	v.SetDefault("ui.currency_symbol", "$")

	v.SetConfigType("toml")

	if cfgPath := os.Getenv("COINFLOW_CONFIG"); cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "coinflow"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("COINFLOW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// config file is optional
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// ResolveAPIKey returns the classification API key: the named env var wins,
// then the value stored in the config file.
func (c Config) ResolveAPIKey() string {
	if env := strings.TrimSpace(c.LLM.APIKeyEnv); env != "" {
		if v := os.Getenv(env); v != "" {
			return v
		}
	}
	return strings.TrimSpace(c.LLM.APIKey)
}
