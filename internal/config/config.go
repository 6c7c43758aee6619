package config

import (
	"os"
	"strconv"

	"legal-ocr-server/internal/domain"
)

// AppConfig implements the domain.Config interface
type AppConfig struct {
	ServerPort       string
	MaxFileSize      int64
	LogLevel         string
	SupabaseURL      string
	SupabaseKey      string
	JWTSecret        string
	TessdataPrefix   string
	OCRLanguages     string
	RenderDPI        float64
	SchemaConfigPath string
}

// NewConfig creates a new configuration instance with default values
func NewConfig() domain.Config {
	return &AppConfig{
		// Cloud Run (and many PaaS) provide the listening port via PORT.
		// Keep SERVER_PORT for local/dev compatibility.
		ServerPort:       getEnvOrDefault("PORT", getEnvOrDefault("SERVER_PORT", "8080")),
		MaxFileSize:      getEnvInt64OrDefault("MAX_FILE_SIZE", 50*1024*1024), // 50MB default
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
		SupabaseURL:      getEnvOrDefault("SUPABASE_URL", ""),
		SupabaseKey:      getEnvOrDefault("SUPABASE_ANON_KEY", ""),
		JWTSecret:        getEnvOrDefault("JWT_SECRET", "your-secret-key-change-in-production"),
		TessdataPrefix:   getEnvOrDefault("TESSDATA_PREFIX", ""),
		OCRLanguages:     getEnvOrDefault("OCR_LANGUAGES", "ara+fra"),
		RenderDPI:        getEnvFloatOrDefault("OCR_RENDER_DPI", 220),
		SchemaConfigPath: getEnvOrDefault("SCHEMA_CONFIG_PATH", ""),
	}
}

// GetServerPort returns the server port
func (c *AppConfig) GetServerPort() string {
	return c.ServerPort
}

// GetMaxFileSize returns the maximum allowed file size
func (c *AppConfig) GetMaxFileSize() int64 {
	return c.MaxFileSize
}

// GetLogLevel returns the logging level
func (c *AppConfig) GetLogLevel() string {
	return c.LogLevel
}

// GetSupabaseURL returns the Supabase URL
func (c *AppConfig) GetSupabaseURL() string {
	return c.SupabaseURL
}

// GetSupabaseKey returns the Supabase anon key
func (c *AppConfig) GetSupabaseKey() string {
	return c.SupabaseKey
}

// GetJWTSecret returns the JWT secret key
func (c *AppConfig) GetJWTSecret() string {
	return c.JWTSecret
}

// GetTessdataPrefix returns the tesseract data directory override
func (c *AppConfig) GetTessdataPrefix() string {
	return c.TessdataPrefix
}

// GetOCRLanguages returns the default recognition language codes
func (c *AppConfig) GetOCRLanguages() string {
	return c.OCRLanguages
}

// GetRenderDPI returns the PDF rasterization resolution
func (c *AppConfig) GetRenderDPI() float64 {
	return c.RenderDPI
}

// GetSchemaConfigPath returns the optional form schema YAML path
func (c *AppConfig) GetSchemaConfigPath() string {
	return c.SchemaConfigPath
}

// Helper functions for environment variable handling
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
