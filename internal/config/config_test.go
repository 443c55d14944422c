package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv(EnvConfig, "")
	t.Setenv(EnvLog, "")
	t.Setenv(EnvDebug, "")
	t.Setenv(EnvKubectl, "")
	t.Setenv(EnvUnsafeCommands, "")
	os.Unsetenv(EnvUnsafeCommands)
	return home
}

func TestLoad_Defaults(t *testing.T) {
	home := isolate(t)

	cfg, err := Load(Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ConfigDir != filepath.Join(home, DefaultConfigDir) {
		t.Errorf("ConfigDir = %q", cfg.ConfigDir)
	}
	if cfg.SettingsPath != filepath.Join(home, DefaultConfigDir, DefaultSettingsFile) {
		t.Errorf("SettingsPath = %q", cfg.SettingsPath)
	}
	if cfg.LogPath != filepath.Join(home, DefaultConfigDir, DefaultLogFile) {
		t.Errorf("LogPath = %q", cfg.LogPath)
	}
	if cfg.KubectlPath != DefaultKubectl {
		t.Errorf("KubectlPath = %q, want %q", cfg.KubectlPath, DefaultKubectl)
	}
	if cfg.Debug {
		t.Error("Debug should default to false")
	}
	if !reflect.DeepEqual(cfg.Settings.UnsafeCommands, DefaultUnsafeCommands) {
		t.Errorf("UnsafeCommands = %v", cfg.Settings.UnsafeCommands)
	}
	if _, err := os.Stat(cfg.ConfigDir); !os.IsNotExist(err) {
		t.Errorf("Load should not touch the filesystem, stat err = %v", err)
	}
}

func TestLoad_SettingsFile(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "kubeguard.yaml")
	content := `unsafe_commands: [delete, drain]
protected_contexts: ["prod-*"]
kubectl: /usr/local/bin/kubectl
`
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(Options{SettingsPath: path})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if !reflect.DeepEqual(cfg.Settings.UnsafeCommands, []string{"delete", "drain"}) {
		t.Errorf("UnsafeCommands = %v", cfg.Settings.UnsafeCommands)
	}
	if !reflect.DeepEqual(cfg.Settings.ProtectedContexts, []string{"prod-*"}) {
		t.Errorf("ProtectedContexts = %v", cfg.Settings.ProtectedContexts)
	}
	if cfg.KubectlPath != "/usr/local/bin/kubectl" {
		t.Errorf("KubectlPath = %q", cfg.KubectlPath)
	}
}

func TestLoad_SettingsFromEnv(t *testing.T) {
	isolate(t)
	path := filepath.Join(t.TempDir(), "env.yaml")
	if err := os.WriteFile(path, []byte("unsafe_commands: [scale]\n"), 0600); err != nil {
		t.Fatal(err)
	}
	t.Setenv(EnvConfig, path)

	cfg, err := Load(Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.SettingsPath != path {
		t.Errorf("SettingsPath = %q, want %q", cfg.SettingsPath, path)
	}
	if !reflect.DeepEqual(cfg.Settings.UnsafeCommands, []string{"scale"}) {
		t.Errorf("UnsafeCommands = %v", cfg.Settings.UnsafeCommands)
	}
}

func TestLoad_UnsafeCommandsEnvOverride(t *testing.T) {
	isolate(t)
	t.Setenv(EnvUnsafeCommands, " delete , apply,,rollout ")

	cfg, err := Load(Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	want := []string{"delete", "apply", "rollout"}
	if !reflect.DeepEqual(cfg.Settings.UnsafeCommands, want) {
		t.Errorf("UnsafeCommands = %v, want %v", cfg.Settings.UnsafeCommands, want)
	}
}

func TestLoad_EmptyUnsafeCommandsEnvDisablesGate(t *testing.T) {
	isolate(t)
	t.Setenv(EnvUnsafeCommands, "")

	cfg, err := Load(Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.Settings.UnsafeCommands) != 0 {
		t.Errorf("expected no unsafe commands, got %v", cfg.Settings.UnsafeCommands)
	}
}

func TestLoad_PathOverrides(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	t.Setenv(EnvLog, filepath.Join(dir, "env.jsonl"))
	t.Setenv(EnvKubectl, "/opt/kubectl")
	t.Setenv(EnvDebug, "true")

	cfg, err := Load(Options{})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogPath != filepath.Join(dir, "env.jsonl") {
		t.Errorf("LogPath = %q", cfg.LogPath)
	}
	if cfg.KubectlPath != "/opt/kubectl" {
		t.Errorf("KubectlPath = %q", cfg.KubectlPath)
	}
	if !cfg.Debug {
		t.Error("expected Debug from environment")
	}

	flagLog := filepath.Join(dir, "nested", "flag.jsonl")
	cfg, err = Load(Options{LogPath: flagLog})
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.LogPath != flagLog {
		t.Errorf("explicit LogPath should win, got %q", cfg.LogPath)
	}
	if _, err := os.Stat(filepath.Dir(flagLog)); !os.IsNotExist(err) {
		t.Errorf("log dir should be left to the audit logger, stat err = %v", err)
	}
}

func TestLoadSettings_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("unsafe_commands: {"), 0600); err != nil {
		t.Fatal(err)
	}

	if _, err := LoadSettings(path); err == nil {
		t.Fatal("expected error for invalid settings file")
	}
}

func TestLoadSettings_EmptyListKept(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	if err := os.WriteFile(path, []byte("unsafe_commands: []\n"), 0600); err != nil {
		t.Fatal(err)
	}

	settings, err := LoadSettings(path)
	if err != nil {
		t.Fatalf("LoadSettings failed: %v", err)
	}
	if settings.UnsafeCommands == nil || len(settings.UnsafeCommands) != 0 {
		t.Errorf("explicit empty list should be kept, got %#v", settings.UnsafeCommands)
	}
}
