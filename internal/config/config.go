// Package config handles the taco settings file and store path resolution.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultShell is used when neither TACO_SHELL nor the settings file picks one.
const DefaultShell = "zsh"

// Settings is the per-user configuration, separate from the store document.
type Settings struct {
	Shell string `yaml:"shell"` // shell binary invoked with -c
	Store string `yaml:"store"` // store file location override
}

// Default returns Settings populated with defaults.
func Default() *Settings {
	return &Settings{Shell: DefaultShell}
}

// Load reads the settings file at path. If the file does not exist it returns
// Default() with no error. Missing keys retain their default values.
func Load(path string) (*Settings, error) {
	settings := Default()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return settings, nil
	}
	if err != nil {
		return nil, fmt.Errorf("config.Load: %w", err)
	}

	// Unmarshal into a plain map so only present keys are applied.
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("config.Load: parse %s: %w", path, err)
	}

	if v, ok := raw["shell"].(string); ok && v != "" {
		settings.Shell = v
	}
	if v, ok := raw["store"].(string); ok && v != "" {
		normalized, err := normalizePath(v)
		if err != nil {
			return nil, fmt.Errorf("config.Load: store path: %w", err)
		}
		settings.Store = normalized
	}

	return settings, nil
}

// SettingsPath returns the path of the settings file, ~/.config/taco/config.yaml.
func SettingsPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "taco", "config.yaml"), nil
}

// DefaultStorePath returns the default store location, ~/.config/taco/taco.json.
func DefaultStorePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "taco", "taco.json"), nil
}

// normalizePath expands ~ and makes the path absolute.
func normalizePath(path string) (string, error) {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		path = filepath.Join(home, path[2:])
	}
	return filepath.Abs(os.ExpandEnv(path))
}

// ResolveStorePath returns the store file path and the source of the
// resolution. Priority: flag → TACO_CONFIG env → settings file → default.
// source is one of "flag", "env", "settings", or "default".
func ResolveStorePath(flagValue string, settings *Settings) (path, source string, err error) {
	if flagValue != "" {
		p, err := normalizePath(flagValue)
		if err != nil {
			return "", "", err
		}
		return p, "flag", nil
	}

	if env := os.Getenv("TACO_CONFIG"); env != "" {
		p, err := normalizePath(env)
		if err != nil {
			return "", "", err
		}
		return p, "env", nil
	}

	if settings != nil && settings.Store != "" {
		return settings.Store, "settings", nil
	}

	p, err := DefaultStorePath()
	if err != nil {
		return "", "", err
	}
	return p, "default", nil
}

// ResolveShell returns the shell binary to invoke.
// Priority: TACO_SHELL env → settings file → zsh.
func ResolveShell(settings *Settings) string {
	if env := os.Getenv("TACO_SHELL"); env != "" {
		return env
	}
	if settings != nil && settings.Shell != "" {
		return settings.Shell
	}
	return DefaultShell
}

// Set persists key in the settings file, preserving any other keys.
func Set(key, value string) error {
	path, err := SettingsPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	var raw map[string]any
	if data, err := os.ReadFile(path); err == nil {
		_ = yaml.Unmarshal(data, &raw)
	}
	if raw == nil {
		raw = make(map[string]any)
	}
	raw[key] = value

	out, err := yaml.Marshal(raw)
	if err != nil {
		return err
	}
	return os.WriteFile(path, out, 0o600)
}

// Unset removes key from the settings file. Returns true if the key was
// present. If the file becomes empty after removal it is deleted.
func Unset(key string) (bool, error) {
	path, err := SettingsPath()
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return false, nil
	}

	if _, ok := raw[key]; !ok {
		return false, nil
	}
	delete(raw, key)

	if len(raw) == 0 {
		_ = os.Remove(path)
		return true, nil
	}

	out, err := yaml.Marshal(raw)
	if err != nil {
		return false, err
	}
	return true, os.WriteFile(path, out, 0o600)
}
