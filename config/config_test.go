package config

import (
	"os"
	"path/filepath"
	"testing"
)

func setTempHome(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Setenv("USERPROFILE", dir)
	t.Setenv("GRIDCAL_BASE_URL", "")
	t.Setenv("GRIDCAL_ANON_KEY", "")
	return dir
}

func TestLoadDefaultsWhenMissing(t *testing.T) {
	setTempHome(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.CacheTTLMinutes != defaultCacheTTLMinutes || cfg.Theme != defaultTheme {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if cfg.BaseURL != "" {
		t.Fatalf("unexpected base url: %q", cfg.BaseURL)
	}
}

func TestSaveThenLoad(t *testing.T) {
	setTempHome(t)

	cfg := DefaultConfig()
	cfg.BaseURL = "https://proj.example.co"
	cfg.AnonKey = "anon"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.BaseURL != "https://proj.example.co" || loaded.AnonKey != "anon" {
		t.Fatalf("unexpected config: %+v", loaded)
	}
}

func TestZeroValuesGetDefaults(t *testing.T) {
	dir := setTempHome(t)

	configPath := filepath.Join(dir, ".config", "gridcal", configFileName)
	if err := os.MkdirAll(filepath.Dir(configPath), 0700); err != nil {
		t.Fatalf("mkdir error: %v", err)
	}
	if err := os.WriteFile(configPath, []byte("base_url: https://proj.example.co\n"), 0600); err != nil {
		t.Fatalf("write error: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.CacheTTLMinutes != defaultCacheTTLMinutes || cfg.Theme != defaultTheme {
		t.Fatalf("zero values not defaulted: %+v", cfg)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	setTempHome(t)

	cfg := DefaultConfig()
	cfg.BaseURL = "https://from-file.example.co"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Save error: %v", err)
	}

	t.Setenv("GRIDCAL_BASE_URL", "https://from-env.example.co")

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if loaded.BaseURL != "https://from-env.example.co" {
		t.Fatalf("env override not applied: %q", loaded.BaseURL)
	}
}
