package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the config file looked up in the user and local config dirs.
const FileName = "topdeck.yaml"

// EmbeddedSource names the built-in configuration in Resolve results.
const EmbeddedSource = "embedded"

// Load returns the configuration; see Resolve for the search order.
func Load(customPath string) (Config, error) {
	cfg, _, err := Resolve(customPath)
	return cfg, err
}

// Resolve finds and decodes the configuration, returning where it came from.
//
// An explicit customPath must exist and parse. Otherwise the first readable
// and valid file among ~/.topdeck/configs/topdeck.yaml and
// ./configs/topdeck.yaml wins, and the embedded copy is the last resort.
// Files are decoded over the defaults, so a partial file only overrides what
// it names.
func Resolve(customPath string) (Config, string, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return DefaultConfig(), customPath, err
		}
		return cfg, customPath, nil
	}

	for _, path := range searchPaths() {
		if cfg, err := loadFile(path); err == nil {
			return cfg, path, nil
		}
	}

	cfg, err := Parse(defaultTopdeckYAML)
	if err != nil {
		// Only a broken build gets here; the hardcoded defaults still work.
		return DefaultConfig(), EmbeddedSource, nil
	}
	return cfg, EmbeddedSource, nil
}

func searchPaths() []string {
	paths := make([]string, 0, 2)
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".topdeck", "configs", FileName))
	}
	return append(paths, filepath.Join("configs", FileName))
}

func loadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes YAML over the hardcoded defaults.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// Marshal encodes the configuration as YAML.
func Marshal(cfg Config) ([]byte, error) {
	return yaml.Marshal(cfg)
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	rest, ok := strings.CutPrefix(path, "~/")
	if !ok {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, rest)
}
