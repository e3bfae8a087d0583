package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		config := DefaultConfig()

		if config.Database.Path != "muselib.db" {
			t.Errorf("expected database path muselib.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 8080 {
			t.Errorf("expected server port 8080, got %d", config.Server.Port)
		}

		if config.Server.RateLimitPerSec != 50.0 {
			t.Errorf("expected rate limit 50.0, got %f", config.Server.RateLimitPerSec)
		}

		if config.Auth.BcryptCost != 0 {
			t.Errorf("expected default bcrypt cost 0, got %d", config.Auth.BcryptCost)
		}
	})

	t.Run("Addr", func(t *testing.T) {
		config := DefaultConfig()
		if config.Server.Addr() != "127.0.0.1:8080" {
			t.Errorf("expected 127.0.0.1:8080, got %s", config.Server.Addr())
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[server]
host = "0.0.0.0"
port = 9000
rate_limit_per_sec = 10.0
rate_limit_burst = 20

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10

[auth]
bcrypt_cost = 12
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Server.Port != 9000 {
			t.Errorf("expected server port 9000, got %d", config.Server.Port)
		}

		if config.Auth.BcryptCost != 12 {
			t.Errorf("expected bcrypt cost 12, got %d", config.Auth.BcryptCost)
		}
	})

	t.Run("LoadConfigPartialFile", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")

		partialConfig := `[server]
host = "0.0.0.0"
port = 9000
`
		if err := os.WriteFile(configPath, []byte(partialConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Server.Host != "0.0.0.0" || config.Server.Port != 9000 {
			t.Errorf("expected overridden server address, got %s", config.Server.Addr())
		}

		defaults := DefaultConfig()
		if config.Server.RateLimitPerSec != defaults.Server.RateLimitPerSec {
			t.Errorf("expected default rate limit %f, got %f", defaults.Server.RateLimitPerSec, config.Server.RateLimitPerSec)
		}
		if config.Server.RateLimitBurst != defaults.Server.RateLimitBurst {
			t.Errorf("expected default rate limit burst %d, got %d", defaults.Server.RateLimitBurst, config.Server.RateLimitBurst)
		}
		if config.Database.Path != defaults.Database.Path {
			t.Errorf("expected default database path %s, got %s", defaults.Database.Path, config.Database.Path)
		}
	})

	t.Run("LoadConfigMissingFile", func(t *testing.T) {
		if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
			t.Error("expected error for missing config file")
		}
	})

	t.Run("LoadConfigInvalidTOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("not [valid toml"), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected error for invalid TOML")
		}
	})
}
