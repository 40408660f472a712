// Package project persists the application configuration.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/ShapePack/internal/model"
)

// DefaultConfigDir returns the default directory for application configuration.
// On all platforms this is ~/.shapepack/
func DefaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".shapepack")
}

// DefaultConfigPath returns the default path for the application config file.
func DefaultConfigPath() string {
	return filepath.Join(DefaultConfigDir(), "config.json")
}

// SaveAppConfig persists an AppConfig to the given path as JSON.
// It creates any missing parent directories automatically.
func SaveAppConfig(path string, config model.AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(config, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadAppConfig reads an AppConfig from the given path. Keys missing from the
// file keep their DefaultAppConfig value. If the file does not exist, it
// returns DefaultAppConfig with no error.
func LoadAppConfig(path string) (model.AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return model.DefaultAppConfig(), nil
		}
		return model.AppConfig{}, err
	}

	config := model.DefaultAppConfig()
	if err := json.Unmarshal(data, &config); err != nil {
		return model.AppConfig{}, fmt.Errorf("%s: %w", path, err)
	}

	if config.RecentInputs == nil {
		config.RecentInputs = []string{}
	}
	if len(config.Algorithms) == 0 {
		config.Algorithms = append([]model.Algorithm(nil), model.Algorithms...)
	}
	for i, a := range config.Algorithms {
		parsed, err := model.ParseAlgorithm(string(a))
		if err != nil {
			return model.AppConfig{}, fmt.Errorf("%s: %w", path, err)
		}
		config.Algorithms[i] = parsed
	}
	config.Algorithms = model.UniqueAlgorithms(config.Algorithms)
	if config.DefaultAlgorithm != "" {
		parsed, err := model.ParseAlgorithm(string(config.DefaultAlgorithm))
		if err != nil {
			return model.AppConfig{}, fmt.Errorf("%s: default_algorithm: %w", path, err)
		}
		config.DefaultAlgorithm = parsed
	}
	return config, nil
}
