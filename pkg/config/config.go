package config

import (
	"fmt"
	"os"
	"time"

	"TickLens/pkg/util"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Environment string `yaml:"environment"`
	Server      struct {
		Port            int           `yaml:"port"`
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
	} `yaml:"server"`
	Metrics struct {
		Enabled bool   `yaml:"enabled"`
		Path    string `yaml:"path"`
	} `yaml:"metrics"`
	Logging struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
		Output string `yaml:"output"`
	} `yaml:"logging"`
	Alpaca struct {
		BaseURL        string        `yaml:"base_url"`
		KeyID          string        `yaml:"key_id"`
		SecretKey      string        `yaml:"secret_key"`
		TradePageLimit int           `yaml:"trade_page_limit"`
		BarLimit       int           `yaml:"bar_limit"`
		BarTimeframe   string        `yaml:"bar_timeframe"`
		MaxPages       int           `yaml:"max_pages"`
		RequestTimeout time.Duration `yaml:"request_timeout"`
		RateCapacity   float64       `yaml:"rate_capacity"`
		RateRefill     float64       `yaml:"rate_refill"`
	} `yaml:"alpaca"`
}

// Load reads and parses a YAML configuration file.
func Load(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var c Config
	if err := yaml.Unmarshal(b, &c); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	c.applyDefaults()

	// Validate required fields
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return &c, nil
}

// LoadWithEnv loads config from YAML and overrides with environment variables.
func LoadWithEnv(path string) (*Config, error) {
	c, err := Load(path)
	if err != nil {
		return nil, err
	}

	// Override with environment variables
	if v := os.Getenv("ALPACA_KEY_ID"); v != "" {
		c.Alpaca.KeyID = v
	}
	if v := os.Getenv("ALPACA_SECRET_KEY"); v != "" {
		c.Alpaca.SecretKey = v
	}
	if v := os.Getenv("ALPACA_BASE_URL"); v != "" {
		c.Alpaca.BaseURL = v
	}
	if v := os.Getenv("PORT"); v != "" {
		c.Server.Port = util.ParseIntDefault(v, c.Server.Port)
	}

	return c, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 7777
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10 * time.Second
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Logging.Format == "" {
		c.Logging.Format = "console"
	}
	if c.Logging.Output == "" {
		c.Logging.Output = "stdout"
	}
	if c.Alpaca.BaseURL == "" {
		c.Alpaca.BaseURL = "https://data.alpaca.markets/v2"
	}
	if c.Alpaca.TradePageLimit == 0 {
		c.Alpaca.TradePageLimit = 10000
	}
	if c.Alpaca.BarLimit == 0 {
		c.Alpaca.BarLimit = 1000
	}
	if c.Alpaca.BarTimeframe == "" {
		c.Alpaca.BarTimeframe = "1Min"
	}
	if c.Alpaca.MaxPages == 0 {
		c.Alpaca.MaxPages = 50
	}
	if c.Alpaca.RequestTimeout == 0 {
		c.Alpaca.RequestTimeout = 10 * time.Second
	}
	if c.Alpaca.RateCapacity == 0 {
		c.Alpaca.RateCapacity = 10
	}
	if c.Alpaca.RateRefill == 0 {
		c.Alpaca.RateRefill = 3
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Environment == "" {
		return fmt.Errorf("environment is required")
	}
	if c.Alpaca.BaseURL == "" {
		return fmt.Errorf("alpaca.base_url is required")
	}
	if c.Alpaca.TradePageLimit <= 0 {
		return fmt.Errorf("alpaca.trade_page_limit must be positive")
	}
	if c.Alpaca.MaxPages <= 0 {
		return fmt.Errorf("alpaca.max_pages must be positive")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("server.port must be positive")
	}
	return nil
}
