// Package config handles configuration management using Viper
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bnema/inputgate/internal/input"
	"github.com/spf13/viper"
)

// Config represents the application configuration
type Config struct {
	// Bridge configuration
	Bridge BridgeConfig `mapstructure:"bridge"`

	// Unsaved-work guard configuration
	Guard GuardConfig `mapstructure:"guard"`

	// Logging configuration
	Logging LoggingConfig `mapstructure:"logging"`
}

// BridgeConfig contains the host socket and backend stream settings
type BridgeConfig struct {
	SocketPath string `mapstructure:"socket_path"` // Unix socket the host connects to
	// BackendAddress is where commands are streamed: "stdout",
	// "unix:/path/to.sock" or "tcp:host:port"
	BackendAddress string `mapstructure:"backend_address"`
}

// GuardConfig contains the tab-close prompt settings
type GuardConfig struct {
	UnsavedMessage string `mapstructure:"unsaved_message"`
}

// LoggingConfig contains logging settings
type LoggingConfig struct {
	LogLevel string `mapstructure:"log_level"` // Override LOG_LEVEL env var
}

var (
	// DefaultConfig provides sensible defaults
	DefaultConfig = Config{
		Bridge: BridgeConfig{
			SocketPath:     defaultSocketPath(),
			BackendAddress: "stdout",
		},
		Guard: GuardConfig{
			UnsavedMessage: input.DefaultUnsavedMessage,
		},
		Logging: LoggingConfig{
			LogLevel: "", // Empty means use LOG_LEVEL env var
		},
	}

	// Global config instance
	cfg *Config

	// Override config path if set
	configPathOverride string
)

// SetConfigPath allows overriding the config path
func SetConfigPath(path string) {
	configPathOverride = path
}

// Init initializes the configuration system
func Init() error {
	viper.SetConfigName("inputgate")
	viper.SetConfigType("toml")

	if configPathOverride != "" {
		viper.SetConfigFile(configPathOverride)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "inputgate"))
		}
		viper.AddConfigPath(".") // Current directory (lowest priority)
	}

	viper.SetEnvPrefix("INPUTGATE")
	viper.AutomaticEnv()

	// Set defaults - need to set individual fields for proper merging
	viper.SetDefault("bridge.socket_path", DefaultConfig.Bridge.SocketPath)
	viper.SetDefault("bridge.backend_address", DefaultConfig.Bridge.BackendAddress)
	viper.SetDefault("guard.unsaved_message", DefaultConfig.Guard.UnsavedMessage)
	viper.SetDefault("logging.log_level", DefaultConfig.Logging.LogLevel)

	// Read config file if it exists
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, use defaults
	}

	c := &Config{}
	if err := viper.Unmarshal(c); err != nil {
		return fmt.Errorf("unable to unmarshal config: %w", err)
	}
	cfg = c

	return nil
}

// Get returns the current configuration
func Get() *Config {
	if cfg == nil {
		// Return defaults if not initialized
		return &DefaultConfig
	}
	return cfg
}

// Set sets the current configuration (for testing)
func Set(c *Config) {
	cfg = c
}

// Save writes the current configuration to file
func Save() error {
	configPath := GetConfigPath()

	if err := os.MkdirAll(filepath.Dir(configPath), 0750); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	c := Get()
	viper.Set("bridge.socket_path", c.Bridge.SocketPath)
	viper.Set("bridge.backend_address", c.Bridge.BackendAddress)
	viper.Set("guard.unsaved_message", c.Guard.UnsavedMessage)
	viper.Set("logging.log_level", c.Logging.LogLevel)

	if err := viper.WriteConfigAs(configPath); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

// GetConfigPath returns the path to the config file
func GetConfigPath() string {
	if configPathOverride != "" {
		return configPathOverride
	}

	if viper.ConfigFileUsed() != "" {
		return viper.ConfigFileUsed()
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "inputgate.toml"
	}
	return filepath.Join(home, ".config", "inputgate", "inputgate.toml")
}

// defaultSocketPath returns a per-user socket under the runtime dir
func defaultSocketPath() string {
	if dir := os.Getenv("XDG_RUNTIME_DIR"); dir != "" {
		return filepath.Join(dir, "inputgate.sock")
	}
	return filepath.Join(os.TempDir(), fmt.Sprintf("inputgate-%d.sock", os.Getuid()))
}
