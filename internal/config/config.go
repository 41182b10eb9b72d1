package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Environment string `envconfig:"ENVIRONMENT" default:"local"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	Backend     string `envconfig:"HONYAKU_BACKEND" default:"openai"`
	OpenAIModel string `envconfig:"HONYAKU_OPENAI_MODEL" default:"gpt-4.1-nano"`
	GeminiModel string `envconfig:"HONYAKU_GEMINI_MODEL" default:"gemini-2.0-flash-lite"`
	GeminiAuth  string `envconfig:"HONYAKU_GEMINI_AUTH" default:"header"`

	APITimeoutSeconds   int `envconfig:"HONYAKU_API_TIMEOUT_SECONDS" default:"30"`
	PlamoTimeoutSeconds int `envconfig:"HONYAKU_PLAMO_TIMEOUT_SECONDS" default:"60"`
	ShellTimeoutSeconds int `envconfig:"HONYAKU_SHELL_TIMEOUT_SECONDS" default:"3"`

	// PlamoWarmupSeconds is how long the benchmark waits after spawning the
	// plamo inference server before prestart trials run.
	PlamoWarmupSeconds int `envconfig:"HONYAKU_PLAMO_WARMUP_SECONDS" default:"20"`

	// Shell is the user's login shell, inherited from the session even in
	// Quick Action processes.
	Shell string `envconfig:"SHELL" default:""`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.GeminiAuth)) {
	case "", "header", "query":
	default:
		return fmt.Errorf("HONYAKU_GEMINI_AUTH must be \"header\" or \"query\"")
	}
	if c.APITimeoutSeconds < 1 {
		return fmt.Errorf("HONYAKU_API_TIMEOUT_SECONDS must be >= 1")
	}
	if c.PlamoTimeoutSeconds < 1 {
		return fmt.Errorf("HONYAKU_PLAMO_TIMEOUT_SECONDS must be >= 1")
	}
	if c.ShellTimeoutSeconds < 1 {
		return fmt.Errorf("HONYAKU_SHELL_TIMEOUT_SECONDS must be >= 1")
	}
	if c.PlamoWarmupSeconds < 1 {
		return fmt.Errorf("HONYAKU_PLAMO_WARMUP_SECONDS must be >= 1")
	}
	return nil
}

func (c *Config) APITimeout() time.Duration {
	return time.Duration(c.APITimeoutSeconds) * time.Second
}

func (c *Config) PlamoTimeout() time.Duration {
	return time.Duration(c.PlamoTimeoutSeconds) * time.Second
}

func (c *Config) ShellTimeout() time.Duration {
	return time.Duration(c.ShellTimeoutSeconds) * time.Second
}

func (c *Config) PlamoWarmup() time.Duration {
	return time.Duration(c.PlamoWarmupSeconds) * time.Second
}
