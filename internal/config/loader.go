package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file name looked up in the search path.
const FileName = "config.yaml"

// Load loads the configuration.
// Search order: customPath -> ~/.parkshot/config.yaml -> ./configs/parkshot.yaml -> embedded default
//
// Files are decoded over DefaultConfig, so a file only needs the keys it
// changes. A custom path that cannot be read or parsed is an error; the
// other locations are skipped when missing or broken.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		cfg, err := loadFile(customPath)
		if err != nil {
			return cfg, err
		}
		return cfg, cfg.Validate()
	}

	// Try user config directory
	if userCfgPath := userConfigPath(FileName); userCfgPath != "" {
		if cfg, err := loadFile(userCfgPath); err == nil {
			return cfg, cfg.Validate()
		}
	}

	// Try local configs directory
	if cfg, err := loadFile(filepath.Join("configs", "parkshot.yaml")); err == nil {
		return cfg, cfg.Validate()
	}

	// Use embedded default YAML
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

func loadFile(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	return cfg, nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".parkshot", filename)
}
