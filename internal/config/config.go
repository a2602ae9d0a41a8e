package config

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/viper"
)

// Config holds the configuration for the FridgeKeep server.
type Config struct {
	// Listen is the address the FridgeKeep server will listen on.
	Listen string `yaml:"listen" mapstructure:"listen"`
	// ServerURL is the base URL of the FridgeKeep server.
	ServerURL string `yaml:"server_url" mapstructure:"server_url"`
	// LogLevel is the log level (debug, info, warn, error).
	LogLevel string `yaml:"log_level" mapstructure:"log_level"`
	// Database holds the database configuration.
	Database *DatabaseConfig `yaml:"database" mapstructure:"database"`
	// SessionKey is the key used to sign and encrypt session data.
	// It must be provided per deployment, there is no default.
	SessionKey string `yaml:"session_key" mapstructure:"session_key"`
	// SessionMaxAge is the maximum age of a session in seconds.
	SessionMaxAge int `yaml:"session_max_age" mapstructure:"session_max_age"`
	// FridgeName is the display name of the default fridge created at startup.
	FridgeName string `yaml:"fridge_name" mapstructure:"fridge_name"`
	// Categories is an optional allow-list of product categories.
	// When empty, any category is accepted as free text.
	Categories []string `yaml:"categories" mapstructure:"categories"`
	// IssueTypes is an optional allow-list of issue report types.
	// When empty, any issue type is accepted as free text.
	IssueTypes []string `yaml:"issue_types" mapstructure:"issue_types"`
	// BootstrapAdmin is an optional username that is granted admin rights
	// at startup, in addition to the first registered user.
	BootstrapAdmin string `yaml:"bootstrap_admin" mapstructure:"bootstrap_admin"`
}

// DatabaseConfig holds the database configuration.
type DatabaseConfig struct {
	// Path is the path to the database file.
	Path string `yaml:"path" mapstructure:"path"`
}

// Load reads the configuration from the specified path and returns a Config struct.
// If path is empty, it will use default search paths for config files.
func Load(path string) (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigType("yaml")
	v.SetEnvPrefix("FRIDGEKEEP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.fridgekeep")
		v.AddConfigPath("/etc/fridgekeep")
	}

	if err := v.ReadInConfig(); err != nil {
		// If no config file is found, use defaults and env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		log.Debug("Using config file", "file", v.ConfigFileUsed())
		log.Debug("Environment variables with FRIDGEKEEP_ prefix will override config file values")
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&c); err != nil {
		return nil, err
	}

	return &c, nil
}

// setDefaults sets default values for the configuration.
func setDefaults(v *viper.Viper) {
	v.SetDefault("listen", "0.0.0.0:3003")
	v.SetDefault("server_url", "http://localhost:3003")
	v.SetDefault("log_level", "info")
	v.SetDefault("database.path", "./data/fridgekeep.db")
	v.SetDefault("session_max_age", 172800) // 48 hours
	v.SetDefault("fridge_name", "Default Fridge")

	// Registered without a value so the FRIDGEKEEP_ env override is picked
	// up even when no config file exists.
	v.SetDefault("session_key", "")
	v.SetDefault("bootstrap_admin", "")
}

// validateConfig validates the configuration.
func validateConfig(c *Config) error {
	if c == nil {
		return fmt.Errorf("missing fridgekeep config")
	}

	if c.SessionKey == "" {
		return fmt.Errorf("session_key is required, generate one with e.g. `openssl rand -hex 32`")
	}

	if c.Database == nil || c.Database.Path == "" {
		return fmt.Errorf("database path is required")
	}

	if c.FridgeName == "" {
		return fmt.Errorf("fridge_name must not be empty")
	}

	return nil
}
