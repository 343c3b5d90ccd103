package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	// Output format for query results: "table" or "json"
	// Default: "table"
	OutputFormat string

	// Column width for table output (in display columns)
	OutputWidth int

	// Log level: debug, info, warn, error
	LogLevel string

	// Default genre name used when a command gets no name argument
	Genre string

	// EchoNest API settings
	EchoNest EchoNestConfig

	// Local query history
	History HistoryConfig
}

// EchoNestConfig holds EchoNest specific configuration
type EchoNestConfig struct {
	APIKey  string
	BaseURL string
	Timeout time.Duration
}

// HistoryConfig controls the local query history database
type HistoryConfig struct {
	Enabled bool
	Path    string
}

const envPrefix = "ECHONEST"

// Load reads configuration from file and environment
func Load() (*Config, error) {
	return load(getConfigDir())
}

func load(configDir string) (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// Config file locations (in order of precedence)
	v.AddConfigPath(configDir)
	v.AddConfigPath(".")

	// Set defaults
	v.SetDefault("output_format", "table")
	v.SetDefault("output_width", 32)
	v.SetDefault("log_level", "warn")
	v.SetDefault("genre", "")
	v.SetDefault("api_key", "")
	v.SetDefault("base_url", "")
	v.SetDefault("timeout", 10)
	v.SetDefault("history.enabled", true)
	v.SetDefault("history.path", filepath.Join(configDir, "history.db"))

	// Read config file (optional - don't fail if missing)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	// Read from environment variables: ECHONEST_API_KEY, ECHONEST_HISTORY_ENABLED, ...
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Map config to struct
	cfg := &Config{
		OutputFormat: v.GetString("output_format"),
		OutputWidth:  v.GetInt("output_width"),
		LogLevel:     v.GetString("log_level"),
		Genre:        v.GetString("genre"),
		EchoNest: EchoNestConfig{
			APIKey:  v.GetString("api_key"),
			BaseURL: v.GetString("base_url"),
			Timeout: time.Duration(v.GetInt("timeout")) * time.Second,
		},
		History: HistoryConfig{
			Enabled: v.GetBool("history.enabled"),
			Path:    v.GetString("history.path"),
		},
	}

	return cfg, nil
}

// getConfigDir returns the configuration directory path
// Creates the directory if it doesn't exist
func getConfigDir() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "."
	}

	configDir := filepath.Join(homeDir, ".config", "echonest")

	// Create config directory if it doesn't exist
	_ = os.MkdirAll(configDir, 0755)

	return configDir
}

// GetConfigDir returns the configuration directory path (public helper)
func GetConfigDir() string {
	return getConfigDir()
}

// Save writes configuration to file
func (c *Config) Save() error {
	return c.saveTo(getConfigDir())
}

func (c *Config) saveTo(configDir string) error {
	v := viper.New()

	// Set config file path
	configFile := filepath.Join(configDir, "config.yaml")

	// Set values in viper
	v.Set("output_format", c.OutputFormat)
	v.Set("output_width", c.OutputWidth)
	v.Set("log_level", c.LogLevel)
	v.Set("genre", c.Genre)
	v.Set("api_key", c.EchoNest.APIKey)
	v.Set("base_url", c.EchoNest.BaseURL)
	v.Set("timeout", int(c.EchoNest.Timeout/time.Second))
	v.Set("history.enabled", c.History.Enabled)
	v.Set("history.path", c.History.Path)

	// Write to file
	return v.WriteConfigAs(configFile)
}
