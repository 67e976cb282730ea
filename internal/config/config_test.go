package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/bnema/inputgate/internal/input"
	"github.com/spf13/viper"
)

func resetState(t *testing.T) {
	t.Helper()
	viper.Reset()
	cfg = nil
	configPathOverride = ""
	t.Cleanup(func() {
		viper.Reset()
		cfg = nil
		configPathOverride = ""
	})
}

func TestInit(t *testing.T) {
	t.Run("initializes with defaults when no config exists", func(t *testing.T) {
		resetState(t)
		SetConfigPath(filepath.Join(t.TempDir(), "missing.toml"))

		if err := Init(); err != nil {
			t.Fatalf("Init() failed: %v", err)
		}

		config := Get()
		if config.Bridge.BackendAddress != "stdout" {
			t.Errorf("Expected default backend address stdout, got %q", config.Bridge.BackendAddress)
		}
		if config.Bridge.SocketPath == "" {
			t.Error("Expected a default socket path")
		}
		if config.Guard.UnsavedMessage != DefaultConfig.Guard.UnsavedMessage {
			t.Errorf("Unexpected unsaved message %q", config.Guard.UnsavedMessage)
		}
	})

	t.Run("reads values from file", func(t *testing.T) {
		resetState(t)
		path := filepath.Join(t.TempDir(), "inputgate.toml")
		content := `[bridge]
socket_path = "/run/test/inputgate.sock"
backend_address = "tcp:127.0.0.1:9000"

[guard]
unsaved_message = "Really close?"

[logging]
log_level = "debug"
`
		if err := os.WriteFile(path, []byte(content), 0600); err != nil {
			t.Fatal(err)
		}
		SetConfigPath(path)

		if err := Init(); err != nil {
			t.Fatalf("Init() failed: %v", err)
		}

		config := Get()
		if config.Bridge.SocketPath != "/run/test/inputgate.sock" {
			t.Errorf("SocketPath = %q", config.Bridge.SocketPath)
		}
		if config.Bridge.BackendAddress != "tcp:127.0.0.1:9000" {
			t.Errorf("BackendAddress = %q", config.Bridge.BackendAddress)
		}
		if config.Guard.UnsavedMessage != "Really close?" {
			t.Errorf("UnsavedMessage = %q", config.Guard.UnsavedMessage)
		}
		if config.Logging.LogLevel != "debug" {
			t.Errorf("LogLevel = %q", config.Logging.LogLevel)
		}
	})

	t.Run("rejects invalid TOML", func(t *testing.T) {
		resetState(t)
		path := filepath.Join(t.TempDir(), "inputgate.toml")
		if err := os.WriteFile(path, []byte("[bridge\nsocket_path = 1"), 0600); err != nil {
			t.Fatal(err)
		}
		SetConfigPath(path)

		if err := Init(); err == nil {
			t.Error("Expected an error for invalid TOML")
		}
	})
}

func TestGetReturnsDefaultsBeforeInit(t *testing.T) {
	resetState(t)
	if Get() != &DefaultConfig {
		t.Error("Expected Get() to return DefaultConfig before Init")
	}
}

func TestSaveRoundTrip(t *testing.T) {
	resetState(t)
	path := filepath.Join(t.TempDir(), "nested", "inputgate.toml")
	SetConfigPath(path)
	if err := Init(); err != nil {
		t.Fatalf("Init() failed: %v", err)
	}

	Get().Bridge.BackendAddress = "unix:/tmp/editor.sock"
	if err := Save(); err != nil {
		t.Fatalf("Save() failed: %v", err)
	}

	viper.Reset()
	cfg = nil
	if err := Init(); err != nil {
		t.Fatalf("Init() after save failed: %v", err)
	}
	if got := Get().Bridge.BackendAddress; got != "unix:/tmp/editor.sock" {
		t.Errorf("BackendAddress = %q after reload", got)
	}
}

func TestGetConfigPath(t *testing.T) {
	resetState(t)

	t.Setenv("HOME", "/home/testuser")
	if got, want := GetConfigPath(), "/home/testuser/.config/inputgate/inputgate.toml"; got != want {
		t.Errorf("GetConfigPath() = %q, want %q", got, want)
	}

	SetConfigPath("/etc/custom.toml")
	if got := GetConfigPath(); got != "/etc/custom.toml" {
		t.Errorf("GetConfigPath() = %q with override", got)
	}
}

func TestDefaultUnsavedMessageMatchesGuard(t *testing.T) {
	if DefaultConfig.Guard.UnsavedMessage != input.DefaultUnsavedMessage {
		t.Errorf("default unsaved message %q differs from the guard default %q",
			DefaultConfig.Guard.UnsavedMessage, input.DefaultUnsavedMessage)
	}
}
