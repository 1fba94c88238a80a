package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
)

// Config represents the complete application configuration
type Config struct {
	Logging    LoggingConfig    `yaml:"logging" envconfig:"LOGGING"`
	Paths      PathsConfig      `yaml:"paths" envconfig:"PATHS"`
	Processing ProcessingConfig `yaml:"processing" envconfig:"PROCESSING"`
}

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level    string `yaml:"level" envconfig:"LEVEL" default:"info"`
	Output   string `yaml:"output" envconfig:"OUTPUT" default:"console"`
	FilePath string `yaml:"file_path" envconfig:"FILE_PATH" default:"logs/dtacli.log"`
}

// PathsConfig contains file system paths configuration
type PathsConfig struct {
	DataDir string `yaml:"data_dir" envconfig:"DATA_DIR" default:"data"`
}

// ProcessingConfig contains batch parsing configuration
type ProcessingConfig struct {
	// Workers bounds the number of files parsed concurrently.
	// Zero means one worker per CPU.
	Workers int `yaml:"workers" envconfig:"WORKERS" default:"0"`
}

// Load loads configuration from environment variables and an optional
// config file. Environment variables (prefix DTA) take precedence.
func Load() (*Config, error) {
	return LoadFrom("dtacli.yaml")
}

// LoadFrom loads configuration using the given YAML file path.
func LoadFrom(configFile string) (*Config, error) {
	var cfg Config

	if err := envconfig.Process("DTA", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	if _, err := os.Stat(configFile); err == nil {
		fileConfig, err := loadFromFile(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
		cfg = mergeConfigs(*fileConfig, cfg)
	}

	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return &cfg, nil
}

// loadFromFile loads configuration from YAML file
func loadFromFile(filePath string) (*Config, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// mergeConfigs merges file config with env config (env takes precedence)
func mergeConfigs(fileConfig, envConfig Config) Config {
	if envConfig.Logging.Level == "" || envConfig.Logging.Level == "info" {
		if fileConfig.Logging.Level != "" {
			envConfig.Logging.Level = fileConfig.Logging.Level
		}
	}
	if envConfig.Logging.Output == "" || envConfig.Logging.Output == "console" {
		if fileConfig.Logging.Output != "" {
			envConfig.Logging.Output = fileConfig.Logging.Output
		}
	}
	if fileConfig.Logging.FilePath != "" && envConfig.Logging.FilePath == "logs/dtacli.log" {
		envConfig.Logging.FilePath = fileConfig.Logging.FilePath
	}
	if fileConfig.Paths.DataDir != "" && envConfig.Paths.DataDir == "data" {
		envConfig.Paths.DataDir = fileConfig.Paths.DataDir
	}
	if envConfig.Processing.Workers == 0 {
		envConfig.Processing.Workers = fileConfig.Processing.Workers
	}

	return envConfig
}

// validate checks configuration consistency
func (c *Config) validate() error {
	switch c.Logging.Output {
	case "", "console", "file", "both":
	default:
		return fmt.Errorf("invalid logging output %q", c.Logging.Output)
	}
	if c.Processing.Workers < 0 {
		return fmt.Errorf("processing workers must be non-negative, got %d", c.Processing.Workers)
	}
	return nil
}
