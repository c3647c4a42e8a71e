package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"SynthChart/internal/model"
)

// Pair is a configured base/quote pair to keep charted.
type Pair struct {
	Base  string `yaml:"base"`
	Quote string `yaml:"quote"`
}

// Config holds all application configuration.
type Config struct {
	DataSource struct {
		SubgraphURL string `yaml:"subgraph_url"`
		Proxy       string `yaml:"proxy"`
	} `yaml:"data_source"`
	Pairs    []Pair   `yaml:"pairs"`
	Periods  []string `yaml:"periods"`
	Schedule struct {
		RefreshCron string `yaml:"refresh_cron"`
	} `yaml:"schedule"`
	Database struct {
		SQLitePath string `yaml:"sqlite_path"`
	} `yaml:"database"`
	HTTP struct {
		Addr string `yaml:"addr"`
	} `yaml:"http"`
	Log struct {
		Level  string `yaml:"level"`
		Format string `yaml:"format"`
	} `yaml:"log"`
}

// Load reads config from a YAML file, then applies environment variable overrides.
// A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("SUBGRAPH_URL"); v != "" {
		cfg.DataSource.SubgraphURL = v
	}
	if v := os.Getenv("HTTPS_PROXY"); v != "" {
		cfg.DataSource.Proxy = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Database.SQLitePath = v
	}
	if v := os.Getenv("HTTP_ADDR"); v != "" {
		cfg.HTTP.Addr = v
	}
	if v := os.Getenv("CRON_REFRESH"); v != "" {
		cfg.Schedule.RefreshCron = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}

	// Defaults
	if len(cfg.Periods) == 0 {
		cfg.Periods = []string{model.OneDay.Label}
	}
	if cfg.Schedule.RefreshCron == "" {
		cfg.Schedule.RefreshCron = "0 */15 * * * *"
	}
	if cfg.Database.SQLitePath == "" {
		cfg.Database.SQLitePath = "data/synthchart.db"
	}
	if cfg.HTTP.Addr == "" {
		cfg.HTTP.Addr = ":8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}

	return cfg, nil
}

// Validate checks that all required fields are set.
func (c *Config) Validate() error {
	if c.DataSource.SubgraphURL == "" {
		return fmt.Errorf("data_source.subgraph_url is required")
	}
	for i, p := range c.Pairs {
		if p.Base == "" || p.Quote == "" {
			return fmt.Errorf("pairs[%d]: base and quote are required", i)
		}
		if p.Base == p.Quote {
			return fmt.Errorf("pairs[%d]: base and quote must differ", i)
		}
	}
	if _, err := c.ChartPeriods(); err != nil {
		return err
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json")
	}
	return nil
}

// ChartPeriods resolves the configured period labels.
func (c *Config) ChartPeriods() ([]model.Period, error) {
	periods := make([]model.Period, 0, len(c.Periods))
	for _, label := range c.Periods {
		p, err := model.ParsePeriod(label)
		if err != nil {
			return nil, fmt.Errorf("periods: %w", err)
		}
		periods = append(periods, p)
	}
	return periods, nil
}
