package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg, err := loadFrom(nil)
	if err != nil {
		t.Fatalf("loadFrom() error: %v", err)
	}

	if cfg.AppName != "qutebrowser" {
		t.Errorf("AppName = %q, want %q", cfg.AppName, "qutebrowser")
	}
	if cfg.AppIcon != "qutebrowser" {
		t.Errorf("AppIcon = %q, want %q", cfg.AppIcon, "qutebrowser")
	}
	if cfg.OriginHintKey != "x-qutebrowser-origin" {
		t.Errorf("OriginHintKey = %q, want %q", cfg.OriginHintKey, "x-qutebrowser-origin")
	}
	if cfg.ExpireTimeout != -1 {
		t.Errorf("ExpireTimeout = %d, want -1", cfg.ExpireTimeout)
	}
	if cfg.MaxImageSize != 0 {
		t.Errorf("MaxImageSize = %d, want 0", cfg.MaxImageSize)
	}
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
app_name = "mybrowser"
expire_timeout = 5000
max_image_size = 96
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadFrom([]string{path})
	if err != nil {
		t.Fatalf("loadFrom() error: %v", err)
	}

	if cfg.AppName != "mybrowser" {
		t.Errorf("AppName = %q, want %q", cfg.AppName, "mybrowser")
	}
	if cfg.ExpireTimeout != 5000 {
		t.Errorf("ExpireTimeout = %d, want 5000", cfg.ExpireTimeout)
	}
	if cfg.MaxImageSize != 96 {
		t.Errorf("MaxImageSize = %d, want 96", cfg.MaxImageSize)
	}
	// Untouched keys keep their defaults.
	if cfg.AppIcon != "qutebrowser" {
		t.Errorf("AppIcon = %q, want default", cfg.AppIcon)
	}
}

func TestLaterFileWins(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.toml")
	second := filepath.Join(dir, "second.toml")
	if err := os.WriteFile(first, []byte(`app_name = "first"`), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(second, []byte(`app_name = "second"`), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := loadFrom([]string{first, second})
	if err != nil {
		t.Fatalf("loadFrom() error: %v", err)
	}
	if cfg.AppName != "second" {
		t.Errorf("AppName = %q, want %q (last file wins)", cfg.AppName, "second")
	}
}

func TestMissingFilesAreSkipped(t *testing.T) {
	cfg, err := loadFrom([]string{"/does/not/exist/config.toml"})
	if err != nil {
		t.Fatalf("loadFrom() error: %v", err)
	}
	if cfg.AppName != "qutebrowser" {
		t.Errorf("AppName = %q, want default", cfg.AppName)
	}
}

func TestInvalidTomlFails(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(`app_name = [broken`), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := loadFrom([]string{path}); err == nil {
		t.Error("loadFrom() should fail on invalid TOML")
	}
}

func TestGetConfigPaths(t *testing.T) {
	paths := getConfigPaths()

	if len(paths) == 0 {
		t.Fatal("getConfigPaths() returned empty slice")
	}
	// Last path should be local config.toml (highest priority)
	if paths[len(paths)-1] != "config.toml" {
		t.Errorf("last config path = %q, want %q", paths[len(paths)-1], "config.toml")
	}
}
