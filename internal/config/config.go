package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds defaults for an extraction run. Command-line flags override
// whatever the file sets.
type Config struct {
	OutputDir  string `yaml:"output_dir"`
	Subfolders bool   `yaml:"subfolders"`
	KeepTimes  bool   `yaml:"keep_times"`
	LogLevel   string `yaml:"log_level"`
	LogFile    string `yaml:"log_file"`
}

type fileConfig struct {
	OutputDir  *string `yaml:"output_dir"`
	Subfolders *bool   `yaml:"subfolders"`
	KeepTimes  *bool   `yaml:"keep_times"`
	LogLevel   *string `yaml:"log_level"`
	LogFile    *string `yaml:"log_file"`
}

func Default() Config {
	return Config{
		Subfolders: true,
		LogLevel:   "info",
	}
}

// Load reads a YAML config file over the defaults. An empty path returns
// the defaults unchanged.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	var stored fileConfig
	if err := yaml.Unmarshal(data, &stored); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return merge(cfg, stored), nil
}

func merge(base Config, stored fileConfig) Config {
	merged := base
	if stored.OutputDir != nil {
		merged.OutputDir = *stored.OutputDir
	}
	if stored.Subfolders != nil {
		merged.Subfolders = *stored.Subfolders
	}
	if stored.KeepTimes != nil {
		merged.KeepTimes = *stored.KeepTimes
	}
	if stored.LogLevel != nil {
		merged.LogLevel = *stored.LogLevel
	}
	if stored.LogFile != nil {
		merged.LogFile = *stored.LogFile
	}
	return merged
}
