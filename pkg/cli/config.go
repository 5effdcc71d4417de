package cli

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// configDirEnv overrides every other source of the configuration directory
const configDirEnv = "NSFLOW_CONFIG_DIR"

// Config holds the global configuration for the nsflow CLI
type Config struct {
	ConfigDir string
	Verbose   bool
}

// GlobalConfig is the shared configuration instance
var GlobalConfig = &Config{}

// Settings is the content of config.yaml
type Settings struct {
	Version string `yaml:"version"`
	// Preferences names the parser preferences file, relative to the
	// configuration directory. Empty means auto-detect.
	Preferences string `yaml:"preferences,omitempty"`
	// Negator is used when --negator is not given.
	Negator string `yaml:"negator,omitempty"`
}

func defaultSettings() Settings {
	return Settings{Version: "1.0", Negator: "logical"}
}

// GetConfigDir returns the configuration directory: $NSFLOW_CONFIG_DIR,
// then --config-dir, then ~/.nsflow.
func GetConfigDir() string {
	if dir := os.Getenv(configDirEnv); dir != "" {
		return dir
	}
	if GlobalConfig.ConfigDir != "" {
		return GlobalConfig.ConfigDir
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".nsflow"
	}
	return filepath.Join(home, ".nsflow")
}

// GetDiagramsDir returns the directory of the diagram repository
func GetDiagramsDir() string { return filepath.Join(GetConfigDir(), "diagrams") }

// GetArchivePath returns the path of the SQLite diagram archive
func GetArchivePath() string { return filepath.Join(GetConfigDir(), "archive.db") }

func settingsPath() string { return filepath.Join(GetConfigDir(), "config.yaml") }

// GetPreferencesPath returns the parser preferences file. A file named in
// config.yaml wins; otherwise preferences.toml is used when it exists and
// preferences.yaml when it does not.
func GetPreferencesPath() string {
	dir := GetConfigDir()
	if s, err := LoadSettings(); err == nil && s.Preferences != "" {
		if filepath.IsAbs(s.Preferences) {
			return s.Preferences
		}
		return filepath.Join(dir, s.Preferences)
	}
	if p := filepath.Join(dir, "preferences.toml"); fileExists(p) {
		return p
	}
	return filepath.Join(dir, "preferences.yaml")
}

// LoadSettings reads config.yaml. A missing file yields the defaults.
func LoadSettings() (Settings, error) {
	s := defaultSettings()
	data, err := os.ReadFile(settingsPath())
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return s, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("failed to parse %s: %w", settingsPath(), err)
	}
	return s, nil
}

// initConfig creates the configuration directory layout and writes a
// default config.yaml on first use
func initConfig() error {
	if os.Getenv(configDirEnv) == "" && GlobalConfig.ConfigDir == "" {
		if _, err := os.UserHomeDir(); err != nil {
			return fmt.Errorf("failed to get user home directory: %w", err)
		}
	}
	GlobalConfig.ConfigDir = GetConfigDir()

	for _, dir := range []string{GlobalConfig.ConfigDir, GetDiagramsDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}

	if fileExists(settingsPath()) {
		_, err := LoadSettings()
		return err
	}
	data, err := yaml.Marshal(defaultSettings())
	if err != nil {
		return fmt.Errorf("failed to marshal default config: %w", err)
	}
	if err := os.WriteFile(settingsPath(), data, 0644); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}
	return nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
