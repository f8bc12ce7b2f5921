package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Sink kinds.
const (
	SinkInfluxDB  = "influxdb"
	SinkTimescale = "timescale"
	SinkStdout    = "stdout"
)

// DefaultSourcePath is where macOS keeps the Knowledge store for the current user.
const DefaultSourcePath = "~/Library/Application Support/Knowledge/knowledgeC.db"

type Config struct {
	Source    SourceConfig    `yaml:"source"`
	Sink      string          `yaml:"sink"`
	InfluxDB  InfluxDBConfig  `yaml:"influxdb"`
	Timescale TimescaleConfig `yaml:"timescale"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	Log       LogConfig       `yaml:"log"`
}

type SourceConfig struct {
	Path   string `yaml:"path"`
	Stream string `yaml:"stream"`
}

type InfluxDBConfig struct {
	URL     string        `yaml:"url"`
	Token   string        `yaml:"token"`
	Org     string        `yaml:"org"`
	Bucket  string        `yaml:"bucket"`
	Timeout time.Duration `yaml:"timeout"`
}

type TimescaleConfig struct {
	ConnString string `yaml:"conn_string"`
	Table      string `yaml:"table"`
}

type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Override adjusts a freshly parsed Config before defaults and validation run.
type Override func(*Config)

// Load reads a YAML config file; an empty path yields the built-in defaults.
func Load(path string, overrides ...Override) (*Config, error) {
	var cfg Config
	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, err
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return nil, err
		}
	}
	for _, o := range overrides {
		if o != nil {
			o(&cfg)
		}
	}

	if err := cfg.applyDefaults(); err != nil {
		return nil, err
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() error {
	if c.Source.Path == "" {
		c.Source.Path = DefaultSourcePath
	}
	path, err := expandHome(c.Source.Path)
	if err != nil {
		return err
	}
	c.Source.Path = path
	if c.Source.Stream == "" {
		c.Source.Stream = "/app/usage"
	}
	if c.Sink == "" {
		c.Sink = SinkInfluxDB
	}
	if c.InfluxDB.URL == "" {
		c.InfluxDB.URL = "https://influxdb.psiox.de"
	}
	if c.InfluxDB.Org == "" {
		c.InfluxDB.Org = "psio"
	}
	if c.InfluxDB.Bucket == "" {
		c.InfluxDB.Bucket = "psio"
	}
	if c.InfluxDB.Timeout == 0 {
		c.InfluxDB.Timeout = 30 * time.Second
	}
	if c.Timescale.Table == "" {
		c.Timescale.Table = "usage"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	return nil
}

func (c *Config) validate() error {
	switch c.Sink {
	case SinkInfluxDB:
		if c.InfluxDB.Token == "" {
			return fmt.Errorf("influxdb.token is required")
		}
		if c.InfluxDB.Timeout < time.Second {
			return fmt.Errorf("influxdb.timeout must be at least 1s, got %s", c.InfluxDB.Timeout)
		}
	case SinkTimescale:
		if c.Timescale.ConnString == "" {
			return fmt.Errorf("timescale.conn_string is required")
		}
	case SinkStdout:
	default:
		return fmt.Errorf("unknown sink %q (want influxdb, timescale or stdout)", c.Sink)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

func expandHome(path string) (string, error) {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve home directory: %w", err)
	}
	return filepath.Join(home, strings.TrimPrefix(path, "~")), nil
}
