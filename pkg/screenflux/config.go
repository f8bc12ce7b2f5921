package screenflux

import "github.com/ghalamif/screenflux/internal/app/config"

// Config re-exports the root configuration struct so downstream projects can
// construct or modify it programmatically.
type Config = config.Config

type (
	// SourceConfig points at the knowledgeC.db file.
	SourceConfig = config.SourceConfig
	// InfluxDBConfig holds the static InfluxDB credential and target.
	InfluxDBConfig = config.InfluxDBConfig
	// TimescaleConfig configures the Postgres/Timescale sink.
	TimescaleConfig = config.TimescaleConfig
	// MetricsConfig configures the optional Prometheus textfile.
	MetricsConfig = config.MetricsConfig
	// LogConfig configures the logrus logger.
	LogConfig = config.LogConfig
	// ConfigOverride adjusts a parsed Config before validation.
	ConfigOverride = config.Override
)

// Sink kinds accepted in Config.Sink.
const (
	SinkInfluxDB  = config.SinkInfluxDB
	SinkTimescale = config.SinkTimescale
	SinkStdout    = config.SinkStdout
)

// LoadConfig loads YAML from disk using the internal config reader.
// An empty path returns the built-in defaults.
func LoadConfig(path string, overrides ...ConfigOverride) (*Config, error) {
	return config.Load(path, overrides...)
}
