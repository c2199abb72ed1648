package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "DATA_PATH", "DB_PATH", "DEFAULT_PROVIDER",
		"CHUNK_SIZE", "CHUNK_OVERLAP", "CORS_ORIGINS", "CONFIG_FILE"} {
		t.Setenv(key, "")
	}

	cfg := Load()
	if cfg.Port != 8080 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.DBPath != "./data/summaries.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.DefaultProvider != "gemini" {
		t.Errorf("DefaultProvider = %q", cfg.DefaultProvider)
	}
	if cfg.ChunkSize != 7000 || cfg.ChunkOverlap != 1000 {
		t.Errorf("chunking = %d/%d", cfg.ChunkSize, cfg.ChunkOverlap)
	}
	if len(cfg.CORSOrigins) != 1 || cfg.CORSOrigins[0] != "*" {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("DEFAULT_PROVIDER", "claude")
	t.Setenv("CHUNK_SIZE", "5000")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("CONFIG_FILE", "")

	cfg := Load()
	if cfg.Port != 9000 {
		t.Errorf("Port = %d", cfg.Port)
	}
	if cfg.DefaultProvider != "claude" {
		t.Errorf("DefaultProvider = %q", cfg.DefaultProvider)
	}
	if cfg.ChunkSize != 5000 {
		t.Errorf("ChunkSize = %d", cfg.ChunkSize)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.CORSOrigins) != 2 || cfg.CORSOrigins[0] != want[0] || cfg.CORSOrigins[1] != want[1] {
		t.Errorf("CORSOrigins = %v", cfg.CORSOrigins)
	}
}

func TestConfigFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	overlay := []byte("port: 9999\ndefault_provider: openai\nchunk_overlap: 500\n")
	if err := os.WriteFile(path, overlay, 0644); err != nil {
		t.Fatal(err)
	}

	t.Setenv("PORT", "9000")
	t.Setenv("CHUNK_SIZE", "5000")
	t.Setenv("CONFIG_FILE", path)

	cfg := Load()
	// file overrides env
	if cfg.Port != 9999 {
		t.Errorf("Port = %d, want file value", cfg.Port)
	}
	if cfg.DefaultProvider != "openai" {
		t.Errorf("DefaultProvider = %q", cfg.DefaultProvider)
	}
	if cfg.ChunkOverlap != 500 {
		t.Errorf("ChunkOverlap = %d", cfg.ChunkOverlap)
	}
	// fields absent from the file keep their env values
	if cfg.ChunkSize != 5000 {
		t.Errorf("ChunkSize = %d", cfg.ChunkSize)
	}
}
