package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIURL != "https://api.agendesk.app" {
		t.Errorf("APIURL = %q", cfg.APIURL)
	}
	if cfg.Locale != "en-US" {
		t.Errorf("Locale = %q", cfg.Locale)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q", cfg.LogLevel)
	}
	if cfg.LogFile != filepath.Join(dir, "agendesk.log") {
		t.Errorf("LogFile = %q", cfg.LogFile)
	}
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	yaml := "API_URL: http://localhost:3333/\nLOCALE: pt-BR\nTIMEZONE: America/Sao_Paulo\n"
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIURL != "http://localhost:3333" {
		t.Errorf("APIURL = %q, want trailing slash trimmed", cfg.APIURL)
	}
	if cfg.Locale != "pt-BR" {
		t.Errorf("Locale = %q", cfg.Locale)
	}
	if cfg.Timezone != "America/Sao_Paulo" {
		t.Errorf("Timezone = %q", cfg.Timezone)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("AGENDESK_API_URL", "http://staging.example.com")
	t.Setenv("AGENDESK_LOG_LEVEL", "debug")

	cfg, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.APIURL != "http://staging.example.com" {
		t.Errorf("APIURL = %q, want env override", cfg.APIURL)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want env override", cfg.LogLevel)
	}
}
