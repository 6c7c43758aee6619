package config

import "testing"

const defaultMaxFileSize int64 = 50 * 1024 * 1024

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("MAX_FILE_SIZE", "")
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("SUPABASE_URL", "")
	t.Setenv("SUPABASE_ANON_KEY", "")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("TESSDATA_PREFIX", "")
	t.Setenv("OCR_LANGUAGES", "")
	t.Setenv("OCR_RENDER_DPI", "")
	t.Setenv("SCHEMA_CONFIG_PATH", "")

	cfg := NewConfig()

	if cfg.GetServerPort() != "8080" {
		t.Fatalf("expected default server port 8080, got %s", cfg.GetServerPort())
	}
	if cfg.GetMaxFileSize() != defaultMaxFileSize {
		t.Fatalf("expected default max file size %d, got %d", defaultMaxFileSize, cfg.GetMaxFileSize())
	}
	if cfg.GetLogLevel() != "info" {
		t.Fatalf("expected default log level info, got %s", cfg.GetLogLevel())
	}
	if cfg.GetOCRLanguages() != "ara+fra" {
		t.Fatalf("expected default languages ara+fra, got %s", cfg.GetOCRLanguages())
	}
	if cfg.GetRenderDPI() != 220 {
		t.Fatalf("expected default render dpi 220, got %f", cfg.GetRenderDPI())
	}
	if cfg.GetSchemaConfigPath() != "" {
		t.Fatalf("expected default schema config path empty, got %s", cfg.GetSchemaConfigPath())
	}
}

func TestNewConfig_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SERVER_PORT", "7070")
	t.Setenv("MAX_FILE_SIZE", "12345")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("TESSDATA_PREFIX", "/usr/share/tessdata")
	t.Setenv("OCR_LANGUAGES", "ara")
	t.Setenv("OCR_RENDER_DPI", "300")
	t.Setenv("SCHEMA_CONFIG_PATH", "/etc/schemas.yaml")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9090" {
		t.Fatalf("expected server port 9090, got %s", cfg.GetServerPort())
	}
	if cfg.GetMaxFileSize() != 12345 {
		t.Fatalf("expected max file size 12345, got %d", cfg.GetMaxFileSize())
	}
	if cfg.GetTessdataPrefix() != "/usr/share/tessdata" {
		t.Fatalf("expected tessdata prefix /usr/share/tessdata, got %s", cfg.GetTessdataPrefix())
	}
	if cfg.GetOCRLanguages() != "ara" {
		t.Fatalf("expected languages ara, got %s", cfg.GetOCRLanguages())
	}
	if cfg.GetRenderDPI() != 300 {
		t.Fatalf("expected render dpi 300, got %f", cfg.GetRenderDPI())
	}
	if cfg.GetSchemaConfigPath() != "/etc/schemas.yaml" {
		t.Fatalf("expected schema config path /etc/schemas.yaml, got %s", cfg.GetSchemaConfigPath())
	}
}

func TestNewConfig_Fallbacks(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("SERVER_PORT", "9091")
	t.Setenv("MAX_FILE_SIZE", "not-a-number")
	t.Setenv("OCR_RENDER_DPI", "not-a-number")

	cfg := NewConfig()

	if cfg.GetServerPort() != "9091" {
		t.Fatalf("expected server port 9091, got %s", cfg.GetServerPort())
	}
	if cfg.GetMaxFileSize() != defaultMaxFileSize {
		t.Fatalf("expected default max file size %d, got %d", defaultMaxFileSize, cfg.GetMaxFileSize())
	}
	if cfg.GetRenderDPI() != 220 {
		t.Fatalf("expected default render dpi 220, got %f", cfg.GetRenderDPI())
	}
}
