package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	oldWd, _ := os.Getwd()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { os.Chdir(oldWd) })
}

func TestLoad(t *testing.T) {
	// Test loading with no config file (should use defaults)
	chdir(t, t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading defaults, got %v", err)
	}

	if cfg.Registry.Path != "resources/data/resources.json" {
		t.Errorf("expected default registry path, got %s", cfg.Registry.Path)
	}
	if cfg.Registry.UsePackagePath {
		t.Error("expected use_package_path to default to false")
	}
	if len(cfg.Registry.ExtraPaths) != 0 {
		t.Errorf("expected no extra paths, got %v", cfg.Registry.ExtraPaths)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("expected default log level 'info', got %s", cfg.Log.Level)
	}
	if cfg.Watch.Debounce != 200*time.Millisecond {
		t.Errorf("expected default debounce 200ms, got %s", cfg.Watch.Debounce)
	}
	if cfg.File != "" {
		t.Errorf("expected no config file to be recorded, got %q", cfg.File)
	}
}

func TestLoadWithConfigFile(t *testing.T) {
	chdir(t, t.TempDir())

	configContent := `
registry:
  path: data/omnipath.yaml
  use_package_path: true
  extra_paths:
    - local/resources.json
    - local/private.yaml
log:
  level: debug
  development: true
watch:
  debounce: 1s
`
	if err := os.WriteFile("resctl.yml", []byte(configContent), 0644); err != nil {
		t.Fatal(err)
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error loading config, got %v", err)
	}

	if filepath.Base(cfg.File) != "resctl.yml" {
		t.Errorf("expected config file resctl.yml to be recorded, got %q", cfg.File)
	}

	if cfg.Registry.Path != "data/omnipath.yaml" {
		t.Errorf("expected registry path 'data/omnipath.yaml', got %s", cfg.Registry.Path)
	}
	if !cfg.Registry.UsePackagePath {
		t.Error("expected use_package_path to be true")
	}
	want := []string{"local/resources.json", "local/private.yaml"}
	if !reflect.DeepEqual(cfg.Registry.ExtraPaths, want) {
		t.Errorf("expected extra paths %v, got %v", want, cfg.Registry.ExtraPaths)
	}
	if cfg.Log.Level != "debug" || !cfg.Log.Development {
		t.Errorf("unexpected log config %+v", cfg.Log)
	}
	if cfg.Watch.Debounce != time.Second {
		t.Errorf("expected debounce 1s, got %s", cfg.Watch.Debounce)
	}
}

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	chdir(t, t.TempDir())

	file := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(file, []byte("log:\n  level: warn\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(file)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("expected log level 'warn', got %s", cfg.Log.Level)
	}
	if cfg.File != file {
		t.Errorf("expected config file %s, got %q", file, cfg.File)
	}

	if _, err := LoadFile(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("expected error for an explicit missing config file")
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("RESCTL_REGISTRY_PATH", "/srv/resources.json")
	t.Setenv("RESCTL_LOG_LEVEL", "error")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if cfg.Registry.Path != "/srv/resources.json" {
		t.Errorf("expected registry path from env, got %s", cfg.Registry.Path)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("expected log level from env, got %s", cfg.Log.Level)
	}
}

func TestValidateConfig(t *testing.T) {
	valid := Config{
		Registry: RegistryConfig{Path: "resources.json"},
		Log:      LogConfig{Level: "info"},
		Watch:    WatchConfig{Debounce: time.Second},
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(*Config) {}, false},
		{"empty path", func(c *Config) { c.Registry.Path = " " }, true},
		{"bad level", func(c *Config) { c.Log.Level = "chatty" }, true},
		{"zero debounce", func(c *Config) { c.Watch.Debounce = 0 }, true},
		{"negative debounce", func(c *Config) { c.Watch.Debounce = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid
			tt.mutate(&cfg)
			err := validateConfig(&cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateConfig() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadInvalidConfig(t *testing.T) {
	chdir(t, t.TempDir())
	if err := os.WriteFile("resctl.yaml", []byte("watch:\n  debounce: 0s\n"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(); err == nil {
		t.Error("expected validation error")
	}
}

func TestPathElements(t *testing.T) {
	cfg := &Config{Registry: RegistryConfig{Path: "resources/data/resources.json"}}
	want := []string{"resources", "data", "resources.json"}
	if got := cfg.PathElements(); !reflect.DeepEqual(got, want) {
		t.Errorf("PathElements() = %v, want %v", got, want)
	}

	abs := filepath.Join(t.TempDir(), "resources.json")
	cfg.Registry.Path = abs
	if got := cfg.PathElements(); !reflect.DeepEqual(got, []string{abs}) {
		t.Errorf("PathElements() = %v, want [%s]", got, abs)
	}
}
