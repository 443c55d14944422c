package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gzhole/kubeguard/internal/kubeconfig"
)

const (
	DefaultConfigDir    = ".kubeguard"
	DefaultSettingsFile = "config.yaml"
	DefaultLogFile      = "audit.jsonl"
	DefaultKubectl      = "kubectl"
)

// Environment variables read by kubeguard. The wrapper path cannot take its
// own flags since every flag belongs to kubectl.
const (
	EnvConfig         = "KUBEGUARD_CONFIG"
	EnvLog            = "KUBEGUARD_LOG"
	EnvDebug          = "KUBEGUARD_DEBUG"
	EnvUnsafeCommands = "KUBEGUARD_UNSAFE_COMMANDS"
	EnvKubectl        = "KUBEGUARD_KUBECTL"
)

// DefaultUnsafeCommands are kubectl verbs that change cluster state.
var DefaultUnsafeCommands = []string{
	"delete", "apply", "edit", "patch", "replace", "scale",
	"drain", "cordon", "uncordon", "taint", "rollout",
	"annotate", "label", "create", "set", "exec",
}

type Config struct {
	ConfigDir      string
	SettingsPath   string
	LogPath        string
	KubeconfigPath string
	KubectlPath    string
	Debug          bool
	Settings       Settings
}

// Settings is the on-disk part of the configuration.
type Settings struct {
	UnsafeCommands []string `yaml:"unsafe_commands"`
	// ProtectedContexts are wildcard patterns; every command against a
	// matching context needs confirmation.
	ProtectedContexts []string `yaml:"protected_contexts"`
	Kubectl           string   `yaml:"kubectl"`
	LogPath           string   `yaml:"log_path"`
}

// Options carries explicit overrides, usually from command line flags.
// Empty fields fall back to the environment, then to defaults.
type Options struct {
	SettingsPath string
	LogPath      string
	Debug        bool
}

func Load(opts Options) (*Config, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}

	configDir := filepath.Join(homeDir, DefaultConfigDir)

	cfg := &Config{
		ConfigDir:      configDir,
		KubeconfigPath: kubeconfig.DefaultPath(),
		Debug:          opts.Debug || envBool(EnvDebug),
	}

	cfg.SettingsPath = firstNonEmpty(opts.SettingsPath, os.Getenv(EnvConfig), filepath.Join(configDir, DefaultSettingsFile))

	settings, err := LoadSettings(cfg.SettingsPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if v, ok := os.LookupEnv(EnvUnsafeCommands); ok {
		settings.UnsafeCommands = splitList(v)
	}
	cfg.Settings = *settings

	cfg.KubectlPath = firstNonEmpty(os.Getenv(EnvKubectl), settings.Kubectl, DefaultKubectl)
	cfg.LogPath = firstNonEmpty(opts.LogPath, os.Getenv(EnvLog), settings.LogPath, filepath.Join(configDir, DefaultLogFile))

	return cfg, nil
}

// LoadSettings reads the settings file. A missing file yields defaults.
func LoadSettings(path string) (*Settings, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultSettings(), nil
		}
		return nil, err
	}

	var settings Settings
	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("invalid settings file %s: %w", path, err)
	}

	if settings.UnsafeCommands == nil {
		settings.UnsafeCommands = append([]string(nil), DefaultUnsafeCommands...)
	}

	return &settings, nil
}

func DefaultSettings() *Settings {
	return &Settings{
		UnsafeCommands: append([]string(nil), DefaultUnsafeCommands...),
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envBool(name string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(name))) {
	case "1", "true", "yes", "on":
		return true
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
