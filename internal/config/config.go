package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"ticketgen/internal/models"

	"github.com/goccy/go-yaml"
)

const (
	// CredentialEnv holds the completion API key
	CredentialEnv = "XAI_API_KEY"

	DefaultEndpoint     = "https://api.x.ai/v1/completions"
	DefaultTimeout      = 2 * time.Minute
	DefaultOutputDir    = "."
	DefaultMaxFiles     = 100
	DefaultMaxFileBytes = 1 << 20
)

type Config struct {
	Completion CompletionConfig `yaml:"completion"`
	Output     OutputConfig     `yaml:"output"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type CompletionConfig struct {
	Endpoint string        `yaml:"endpoint"`
	APIKey   string        `yaml:"-"`
	Timeout  time.Duration `yaml:"timeout"`
}

type OutputConfig struct {
	Dir          string `yaml:"dir"`
	MaxFiles     int    `yaml:"max_files"`
	MaxFileBytes int64  `yaml:"max_file_bytes"`
	MinFreeBytes int64  `yaml:"min_free_bytes"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// LookupFunc resolves environment variables. os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// Default returns the configuration used when no config file is present.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// Load builds the configuration from an optional YAML file and the environment.
// An empty configPath skips the file. The file is expanded with lookupEnv before
// parsing. The credential is read only from CredentialEnv; the file cannot supply it.
func Load(configPath string, lookupEnv LookupFunc) (*Config, error) {
	if lookupEnv == nil {
		lookupEnv = os.LookupEnv
	}

	cfg := &Config{}
	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, models.Errorf(models.ErrorKindConfig, "failed to read config file: %w", err)
		}

		content := os.Expand(string(data), func(key string) string {
			value, _ := lookupEnv(key)
			return value
		})

		if err := yaml.Unmarshal([]byte(content), cfg); err != nil {
			return nil, models.Errorf(models.ErrorKindConfig, "failed to unmarshal config: %w", err)
		}
	}

	cfg.applyDefaults()

	key, _ := lookupEnv(CredentialEnv)
	cfg.Completion.APIKey = key

	if err := cfg.validate(); err != nil {
		return nil, models.Errorf(models.ErrorKindConfig, "%w", err)
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Completion.Endpoint == "" {
		c.Completion.Endpoint = DefaultEndpoint
	}
	if c.Completion.Timeout == 0 {
		c.Completion.Timeout = DefaultTimeout
	}
	if c.Output.Dir == "" {
		c.Output.Dir = DefaultOutputDir
	}
	if c.Output.MaxFiles == 0 {
		c.Output.MaxFiles = DefaultMaxFiles
	}
	if c.Output.MaxFileBytes == 0 {
		c.Output.MaxFileBytes = DefaultMaxFileBytes
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "text"
	}
}

func (c *Config) validate() error {
	if strings.TrimSpace(c.Completion.APIKey) == "" {
		return fmt.Errorf("missing credential: %s is not set", CredentialEnv)
	}

	if !strings.HasPrefix(c.Completion.Endpoint, "http://") && !strings.HasPrefix(c.Completion.Endpoint, "https://") {
		return fmt.Errorf("invalid completion endpoint: %q", c.Completion.Endpoint)
	}

	if c.Completion.Timeout < 0 {
		return fmt.Errorf("completion timeout cannot be negative")
	}

	if c.Output.MaxFiles < 0 {
		return fmt.Errorf("max_files cannot be negative")
	}

	if c.Output.MaxFileBytes < 0 {
		return fmt.Errorf("max_file_bytes cannot be negative")
	}

	if c.Output.MinFreeBytes < 0 {
		return fmt.Errorf("min_free_bytes cannot be negative")
	}

	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("invalid logging level: %q", c.Logging.Level)
	}

	switch c.Logging.Format {
	case "text", "json":
	default:
		return fmt.Errorf("invalid logging format: %q", c.Logging.Format)
	}

	return nil
}
