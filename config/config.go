package config

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed config.yaml
var defaults []byte

const (
	ModeZip  = "zip"
	ModeCity = "city"

	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
)

// Config holds all bot settings. Defaults come from the embedded config.yaml,
// credentials and overrides from the environment.
type Config struct {
	Mode    string `yaml:"mode"`
	Country string `yaml:"country"`

	Weather struct {
		APIKey  string        `yaml:"-"`
		BaseURL string        `yaml:"baseURL"`
		Timeout time.Duration `yaml:"timeout"`
	} `yaml:"weather"`

	Enrichment struct {
		Enabled  bool          `yaml:"enabled"`
		Provider string        `yaml:"provider"`
		Model    string        `yaml:"model"`
		BaseURL  string        `yaml:"baseURL"`
		Timeout  time.Duration `yaml:"timeout"`
		APIKey   string        `yaml:"-"`
	} `yaml:"enrichment"`

	Telegram struct {
		Token       string `yaml:"-"`
		Username    string `yaml:"-"`
		PollTimeout int    `yaml:"pollTimeout"`
	} `yaml:"telegram"`

	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`

	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`

	MessageTimeout  time.Duration `yaml:"messageTimeout"`
	ShutdownTimeout time.Duration `yaml:"shutdownTimeout"`
}

// Load decodes the embedded defaults, applies environment overrides and validates the result.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaults, cfg); err != nil {
		return nil, fmt.Errorf("decode default config: %w", err)
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() error {
	c.Mode = strings.ToLower(envOrDefault("LOOKUP_MODE", c.Mode))
	c.Country = envOrDefault("COUNTRY_CODE", c.Country)

	c.Weather.APIKey = os.Getenv("WEATHER_API_KEY")
	c.Weather.BaseURL = envOrDefault("WEATHER_BASE_URL", c.Weather.BaseURL)

	c.Enrichment.Provider = strings.ToLower(envOrDefault("ENRICHMENT_PROVIDER", c.Enrichment.Provider))
	c.Enrichment.Model = envOrDefault("ENRICHMENT_MODEL", c.Enrichment.Model)
	c.Enrichment.BaseURL = envOrDefault("ENRICHMENT_BASE_URL", c.Enrichment.BaseURL)
	if v := os.Getenv("ENRICHMENT_ENABLED"); v != "" {
		enabled, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New("invalid ENRICHMENT_ENABLED")
		}
		c.Enrichment.Enabled = enabled
	}
	switch c.Enrichment.Provider {
	case ProviderGemini:
		c.Enrichment.APIKey = os.Getenv("GEMINI_API_KEY")
	case ProviderOpenAI:
		c.Enrichment.APIKey = os.Getenv("OPENAI_API_KEY")
	}

	c.Telegram.Token = os.Getenv("TOKEN")
	c.Telegram.Username = strings.TrimPrefix(os.Getenv("BOT_USERNAME"), "@")

	c.Log.Level = envOrDefault("LOG_LEVEL", c.Log.Level)
	c.Log.Format = envOrDefault("LOG_FORMAT", c.Log.Format)
	c.HTTP.Addr = envOrDefault("HTTP_ADDR", c.HTTP.Addr)

	durations := []struct {
		env string
		dst *time.Duration
	}{
		{"WEATHER_TIMEOUT", &c.Weather.Timeout},
		{"ENRICHMENT_TIMEOUT", &c.Enrichment.Timeout},
		{"MESSAGE_TIMEOUT", &c.MessageTimeout},
		{"SHUTDOWN_TIMEOUT", &c.ShutdownTimeout},
	}
	for _, d := range durations {
		v := os.Getenv(d.env)
		if v == "" {
			continue
		}
		parsed, err := time.ParseDuration(v)
		if err != nil || parsed <= 0 {
			return fmt.Errorf("invalid %s", d.env)
		}
		*d.dst = parsed
	}
	return nil
}

func (c *Config) validate() error {
	if c.Mode != ModeZip && c.Mode != ModeCity {
		return fmt.Errorf("LOOKUP_MODE must be %q or %q, got %q", ModeZip, ModeCity, c.Mode)
	}
	if c.Mode == ModeZip && c.Country == "" {
		return errors.New("COUNTRY_CODE is required in zip mode")
	}
	if c.Weather.APIKey == "" {
		return errors.New("WEATHER_API_KEY is required")
	}
	if c.Weather.Timeout <= 0 || c.Enrichment.Timeout <= 0 || c.MessageTimeout <= 0 || c.ShutdownTimeout <= 0 {
		return errors.New("timeouts must be positive")
	}

	if !c.Enrichment.Enabled {
		return nil
	}
	if c.Mode != ModeZip {
		return errors.New("ENRICHMENT_ENABLED requires LOOKUP_MODE=zip")
	}
	switch c.Enrichment.Provider {
	case ProviderGemini:
		if c.Enrichment.APIKey == "" {
			return errors.New("GEMINI_API_KEY is required when enrichment uses gemini")
		}
	case ProviderOpenAI:
		if c.Enrichment.APIKey == "" {
			return errors.New("OPENAI_API_KEY is required when enrichment uses openai")
		}
	default:
		return fmt.Errorf("unknown ENRICHMENT_PROVIDER %q", c.Enrichment.Provider)
	}
	return nil
}

func envOrDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
