package config

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the configuration of the derive command.
type Config struct {
	LogLevel  string `yaml:"log_level"`
	LogFormat string `yaml:"log_format"`
	// BatchLimit bounds the executions running at once in batch mode.
	BatchLimit int           `yaml:"batch_limit"`
	Metrics    MetricsConfig `yaml:"metrics"`
}

type MetricsConfig struct {
	Enabled   bool   `yaml:"enabled"`
	Namespace string `yaml:"namespace"`
}

func defaults() *Config {
	return &Config{
		LogLevel:   "info",
		LogFormat:  "text",
		BatchLimit: 4,
		Metrics: MetricsConfig{
			Namespace: "derive",
		},
	}
}

// Validate checks that the fields hold supported values.
func (c *Config) Validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return errors.Errorf("log_level %q is not supported", c.LogLevel)
	}

	switch c.LogFormat {
	case "text", "json":
	default:
		return errors.Errorf("log_format %q is not supported", c.LogFormat)
	}

	if c.BatchLimit < 1 {
		return errors.Errorf("batch_limit must be positive, got %d", c.BatchLimit)
	}

	if c.Metrics.Enabled && c.Metrics.Namespace == "" {
		return errors.New("metrics.namespace is required when metrics are enabled")
	}

	return nil
}

// Load returns the defaults overridden by the file at path, if any. An empty path
// gives the defaults.
func Load(path string) (*Config, error) {
	cfg := defaults()

	if path != "" {
		err := mergeFile(cfg, path)
		if err != nil {
			return nil, errors.Wrapf(err, "loading config %s", path)
		}
	}

	err := cfg.Validate()
	if err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	return cfg, nil
}

func mergeFile(dst *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, dst)
}
