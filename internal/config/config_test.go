package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		DataBackend:     "sqlite",
		SQLiteDBPath:    "./test.db",
		DefaultActivity: "Workout",
		LogLevel:        "warn",
		EventBuffer:     16,
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(c *Config)
		wantErr     bool
		errorString string
	}{
		{
			name:    "valid sqlite backend config",
			mutate:  func(c *Config) {},
			wantErr: false,
		},
		{
			name: "valid memory backend without database path",
			mutate: func(c *Config) {
				c.DataBackend = "memory"
				c.SQLiteDBPath = ""
			},
			wantErr: false,
		},
		{
			name:        "invalid data backend",
			mutate:      func(c *Config) { c.DataBackend = "sheets" },
			wantErr:     true,
			errorString: "invalid data backend 'sheets': must be one of [memory sqlite]",
		},
		{
			name:        "sqlite backend missing database path",
			mutate:      func(c *Config) { c.SQLiteDBPath = "" },
			wantErr:     true,
			errorString: "SQLite database path cannot be empty when using sqlite backend",
		},
		{
			name:        "missing catalog file",
			mutate:      func(c *Config) { c.CatalogFile = "/non/existent/catalog.yaml" },
			wantErr:     true,
			errorString: "catalog file does not exist: /non/existent/catalog.yaml",
		},
		{
			name:        "blank default activity",
			mutate:      func(c *Config) { c.DefaultActivity = "  " },
			wantErr:     true,
			errorString: "default activity cannot be empty",
		},
		{
			name:        "invalid log level",
			mutate:      func(c *Config) { c.LogLevel = "loud" },
			wantErr:     true,
			errorString: "invalid log level 'loud'",
		},
		{
			name:    "log level is case insensitive",
			mutate:  func(c *Config) { c.LogLevel = "DEBUG" },
			wantErr: false,
		},
		{
			name:        "invalid event buffer - too small",
			mutate:      func(c *Config) { c.EventBuffer = 0 },
			wantErr:     true,
			errorString: "invalid event buffer 0: must be at least 1",
		},
		{
			name:        "invalid event buffer - too large",
			mutate:      func(c *Config) { c.EventBuffer = 4096 },
			wantErr:     true,
			errorString: "invalid event buffer 4096: must be at most 1024",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Config.Validate() error = nil, wantErr %v", tt.wantErr)
					return
				}
				if tt.errorString != "" && !strings.Contains(err.Error(), tt.errorString) {
					t.Errorf("Config.Validate() error = %v, want error containing %v", err.Error(), tt.errorString)
				}
			} else {
				if err != nil {
					t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
				}
			}
		})
	}
}

func TestConfig_ValidateCollectsAllProblems(t *testing.T) {
	cfg := Config{DataBackend: "nope", LogLevel: "loud"}

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Config.Validate() error = nil, want error")
	}
	for _, want := range []string{"invalid data backend", "default activity", "invalid log level", "invalid event buffer"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("Config.Validate() error = %v, want it to mention %q", err, want)
		}
	}
}

func TestConfig_ValidateWithCatalogFile(t *testing.T) {
	catalogFile := filepath.Join(t.TempDir(), "catalog.yaml")
	if err := os.WriteFile(catalogFile, []byte("categories: []\n"), 0644); err != nil {
		t.Fatalf("Failed to create test catalog file: %v", err)
	}

	cfg := validConfig()
	cfg.CatalogFile = catalogFile
	if err := cfg.Validate(); err != nil {
		t.Errorf("Config.Validate() error = %v, want nil", err)
	}
}

func TestConfig_ValidateCreatesDatabaseDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "data")

	cfg := validConfig()
	cfg.SQLiteDBPath = filepath.Join(dir, "muscu.db")
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Config.Validate() error = %v, want nil", err)
	}
	if _, err := os.Stat(dir); err != nil {
		t.Errorf("database directory was not created: %v", err)
	}
}

func TestLoad(t *testing.T) {
	keys := []string{"DATA_BACKEND", "SQLITE_DB_PATH", "MUSCU_CATALOG_FILE", "DEFAULT_ACTIVITY", "LOG_LEVEL", "EVENT_BUFFER"}
	for _, key := range keys {
		t.Setenv(key, "")
	}

	t.Run("default values", func(t *testing.T) {
		cfg := Load()

		if cfg.DataBackend != "sqlite" {
			t.Errorf("Load() DataBackend = %v, want sqlite", cfg.DataBackend)
		}
		if cfg.SQLiteDBPath != "./data/muscu.db" {
			t.Errorf("Load() SQLiteDBPath = %v, want ./data/muscu.db", cfg.SQLiteDBPath)
		}
		if cfg.CatalogFile != "" {
			t.Errorf("Load() CatalogFile = %v, want empty", cfg.CatalogFile)
		}
		if cfg.DefaultActivity != "Workout" {
			t.Errorf("Load() DefaultActivity = %v, want Workout", cfg.DefaultActivity)
		}
		if cfg.LogLevel != "warn" {
			t.Errorf("Load() LogLevel = %v, want warn", cfg.LogLevel)
		}
		if cfg.EventBuffer != 16 {
			t.Errorf("Load() EventBuffer = %v, want 16", cfg.EventBuffer)
		}
	})

	t.Run("environment variables", func(t *testing.T) {
		t.Setenv("DATA_BACKEND", "memory")
		t.Setenv("SQLITE_DB_PATH", "/tmp/test.db")
		t.Setenv("MUSCU_CATALOG_FILE", "/tmp/catalog.yaml")
		t.Setenv("DEFAULT_ACTIVITY", "Running")
		t.Setenv("LOG_LEVEL", "debug")
		t.Setenv("EVENT_BUFFER", "32")

		cfg := Load()

		if cfg.DataBackend != "memory" {
			t.Errorf("Load() DataBackend = %v, want memory", cfg.DataBackend)
		}
		if cfg.SQLiteDBPath != "/tmp/test.db" {
			t.Errorf("Load() SQLiteDBPath = %v, want /tmp/test.db", cfg.SQLiteDBPath)
		}
		if cfg.CatalogFile != "/tmp/catalog.yaml" {
			t.Errorf("Load() CatalogFile = %v, want /tmp/catalog.yaml", cfg.CatalogFile)
		}
		if cfg.DefaultActivity != "Running" {
			t.Errorf("Load() DefaultActivity = %v, want Running", cfg.DefaultActivity)
		}
		if cfg.LogLevel != "debug" {
			t.Errorf("Load() LogLevel = %v, want debug", cfg.LogLevel)
		}
		if cfg.EventBuffer != 32 {
			t.Errorf("Load() EventBuffer = %v, want 32", cfg.EventBuffer)
		}
	})

	t.Run("invalid environment variables use defaults", func(t *testing.T) {
		t.Setenv("EVENT_BUFFER", "invalid")

		cfg := Load()

		if cfg.EventBuffer != 16 {
			t.Errorf("Load() EventBuffer = %v, want 16 (default for invalid input)", cfg.EventBuffer)
		}
	})
}
