package screenflux

import (
	"io"

	base "github.com/ghalamif/screenflux/pkg/screenflux"
)

// Re-exported errors for convenience.
var (
	ErrSourceNotFound   = base.ErrSourceNotFound
	ErrSourceUnreadable = base.ErrSourceUnreadable
)

// Type aliases so consumers can import github.com/ghalamif/screenflux directly.
type (
	Config          = base.Config
	ConfigOverride  = base.ConfigOverride
	SourceConfig    = base.SourceConfig
	InfluxDBConfig  = base.InfluxDBConfig
	TimescaleConfig = base.TimescaleConfig
	MetricsConfig   = base.MetricsConfig
	LogConfig       = base.LogConfig
	Flow            = base.Flow
	FlowOption      = base.FlowOption
	StreamInOption  = base.StreamInOption
	StreamOutOption = base.StreamOutOption
	Runtime         = base.Runtime
	RuntimeOption   = base.RuntimeOption
	Report          = base.Report
	RawUsageRow     = base.RawUsageRow
	UsagePoint      = base.UsagePoint
	UsageBatchSink  = base.UsageBatchSink
	Source          = base.Source
	Sink            = base.Sink
	Transformer     = base.Transformer
	Observability   = base.Observability
	Field           = base.Field
	SourceError     = base.SourceError
	StageError      = base.StageError
)

const (
	SinkInfluxDB  = base.SinkInfluxDB
	SinkTimescale = base.SinkTimescale
	SinkStdout    = base.SinkStdout
)

// Config helpers.
func LoadConfig(path string, overrides ...ConfigOverride) (*Config, error) {
	return base.LoadConfig(path, overrides...)
}

// Flow builder helpers.
func Conf(path string, opts ...FlowOption) (*Flow, error) {
	return base.Conf(path, opts...)
}

func ConfFromConfig(cfg *Config, opts ...FlowOption) (*Flow, error) {
	return base.ConfFromConfig(cfg, opts...)
}

func WithFlowOptions(opts ...RuntimeOption) FlowOption {
	return base.WithFlowOptions(opts...)
}

func StreamInSource(src Source) StreamInOption {
	return base.StreamInSource(src)
}

func StreamInObservability(obs Observability) StreamInOption {
	return base.StreamInObservability(obs)
}

func StreamOutSink(s Sink) StreamOutOption {
	return base.StreamOutSink(s)
}

func StreamOutTransformer(tr Transformer) StreamOutOption {
	return base.StreamOutTransformer(tr)
}

func StreamOutCallback(name string, fn UsageBatchSink) StreamOutOption {
	return base.StreamOutCallback(name, fn)
}

// Runtime helpers.
func NewRuntime(cfg *Config, opts ...RuntimeOption) (*Runtime, error) {
	return base.NewRuntime(cfg, opts...)
}

func WithSource(src Source) RuntimeOption               { return base.WithSource(src) }
func WithSink(s Sink) RuntimeOption                     { return base.WithSink(s) }
func WithTransformer(t Transformer) RuntimeOption       { return base.WithTransformer(t) }
func WithObservability(obs Observability) RuntimeOption { return base.WithObservability(obs) }
func WithLogOutput(w io.Writer) RuntimeOption           { return base.WithLogOutput(w) }
func WithStdout(w io.Writer) RuntimeOption              { return base.WithStdout(w) }

// Sink helpers.
func NewCallbackSink(name string, fn UsageBatchSink) Sink {
	return base.NewCallbackSink(name, fn)
}
