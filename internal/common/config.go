package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Server  ServerConfig
	Extract ExtractConfig
	Export  ExportConfig
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Addr            string
	MaxUploadBytes  int64
	ShutdownTimeout time.Duration
}

// ExtractConfig holds extraction and classification configuration
type ExtractConfig struct {
	DefaultTolerance string
	IncludePageRef   bool
	ShowPreview      bool
}

// ExportConfig holds spreadsheet export configuration
type ExportConfig struct {
	MaxColumnWidth float64
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            getEnv("HTTP_ADDR", ":8080"),
			MaxUploadBytes:  getEnvAsInt64("MAX_UPLOAD_BYTES", 25<<20),
			ShutdownTimeout: getEnvAsDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Extract: ExtractConfig{
			DefaultTolerance: getEnv("DEFAULT_TOLERANCE", "±0.10"),
			IncludePageRef:   getEnvAsBool("INCLUDE_PAGE_REF", true),
			ShowPreview:      getEnvAsBool("SHOW_PREVIEW", true),
		},
		Export: ExportConfig{
			MaxColumnWidth: getEnvAsFloat64("MAX_COLUMN_WIDTH", 20),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// ValidateConfig validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return NewAppError("CONFIG_ERROR", "HTTP_ADDR is required", ErrInvalidInput)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return NewAppError("CONFIG_ERROR", "MAX_UPLOAD_BYTES must be positive", ErrInvalidInput)
	}
	if c.Extract.DefaultTolerance == "" {
		return NewAppError("CONFIG_ERROR", "DEFAULT_TOLERANCE is required", ErrInvalidInput)
	}
	if c.Export.MaxColumnWidth <= 0 {
		return NewAppError("CONFIG_ERROR", "MAX_COLUMN_WIDTH must be positive", ErrInvalidInput)
	}
	return nil
}
