package common

import (
	"errors"
	"testing"
	"time"
)

// clearConfigEnv pins every config variable to empty so the test sees
// the built-in defaults regardless of the host environment.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"HTTP_ADDR", "MAX_UPLOAD_BYTES", "SHUTDOWN_TIMEOUT",
		"DEFAULT_TOLERANCE", "INCLUDE_PAGE_REF", "SHOW_PREVIEW",
		"MAX_COLUMN_WIDTH",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	clearConfigEnv(t)
	cfg := LoadConfig()
	if cfg.Server.Addr != ":8080" || cfg.Server.MaxUploadBytes != 25<<20 || cfg.Server.ShutdownTimeout != 10*time.Second {
		t.Fatalf("server defaults = %+v", cfg.Server)
	}
	if cfg.Extract.DefaultTolerance != "±0.10" || !cfg.Extract.IncludePageRef || !cfg.Extract.ShowPreview {
		t.Fatalf("extract defaults = %+v", cfg.Extract)
	}
	if cfg.Export.MaxColumnWidth != 20 {
		t.Fatalf("export defaults = %+v", cfg.Export)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults must validate: %v", err)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("HTTP_ADDR", ":9090")
	t.Setenv("MAX_UPLOAD_BYTES", "1048576")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("DEFAULT_TOLERANCE", "±0.25")
	t.Setenv("INCLUDE_PAGE_REF", "false")
	t.Setenv("SHOW_PREVIEW", "false")
	t.Setenv("MAX_COLUMN_WIDTH", "32.5")

	cfg := LoadConfig()
	if cfg.Server.Addr != ":9090" || cfg.Server.MaxUploadBytes != 1<<20 || cfg.Server.ShutdownTimeout != 5*time.Second {
		t.Fatalf("server overrides = %+v", cfg.Server)
	}
	if cfg.Extract.DefaultTolerance != "±0.25" || cfg.Extract.IncludePageRef || cfg.Extract.ShowPreview {
		t.Fatalf("extract overrides = %+v", cfg.Extract)
	}
	if cfg.Export.MaxColumnWidth != 32.5 {
		t.Fatalf("export overrides = %+v", cfg.Export)
	}
}

func TestLoadConfigIgnoresMalformedValues(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("MAX_UPLOAD_BYTES", "a lot")
	t.Setenv("SHUTDOWN_TIMEOUT", "soon")
	t.Setenv("INCLUDE_PAGE_REF", "yep")

	cfg := LoadConfig()
	if cfg.Server.MaxUploadBytes != 25<<20 || cfg.Server.ShutdownTimeout != 10*time.Second || !cfg.Extract.IncludePageRef {
		t.Fatalf("malformed values must fall back to defaults: %+v", cfg)
	}
}

func TestConfigValidate(t *testing.T) {
	clearConfigEnv(t)
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults pass", func(*Config) {}, false},
		{"missing addr", func(c *Config) { c.Server.Addr = "" }, true},
		{"non-positive upload limit", func(c *Config) { c.Server.MaxUploadBytes = 0 }, true},
		{"empty tolerance", func(c *Config) { c.Extract.DefaultTolerance = "" }, true},
		{"non-positive column width", func(c *Config) { c.Export.MaxColumnWidth = -1 }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := LoadConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidInput) {
				t.Fatalf("validation error should carry ErrInvalidInput, got %v", err)
			}
		})
	}
}
