package screenflux

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/ghalamif/screenflux/internal/adapters/knowledge"
	"github.com/ghalamif/screenflux/internal/adapters/observability"
	"github.com/ghalamif/screenflux/internal/adapters/sink"
	"github.com/ghalamif/screenflux/internal/app/config"
	"github.com/ghalamif/screenflux/internal/app/pipeline"
	"github.com/ghalamif/screenflux/internal/ports"
	"github.com/ghalamif/screenflux/internal/transform"
)

// RuntimeOption customizes the dependencies used by Runtime.
type RuntimeOption func(*runtimeOverrides)

type runtimeOverrides struct {
	source        Source
	sink          Sink
	transformer   Transformer
	observability Observability
	logOut        io.Writer
	stdout        io.Writer
}

// WithSource replaces the knowledgeC.db reader.
func WithSource(src Source) RuntimeOption {
	return func(o *runtimeOverrides) {
		o.source = src
	}
}

// WithSink injects a custom sink so points can be sent to any database or API.
func WithSink(s Sink) RuntimeOption {
	return func(o *runtimeOverrides) {
		o.sink = s
	}
}

// WithTransformer overrides the default usage transformer.
func WithTransformer(t Transformer) RuntimeOption {
	return func(o *runtimeOverrides) {
		o.transformer = t
	}
}

// WithObservability plugs in a custom observability backend.
func WithObservability(obs Observability) RuntimeOption {
	return func(o *runtimeOverrides) {
		o.observability = obs
	}
}

// WithLogOutput sends logs somewhere other than stderr.
func WithLogOutput(w io.Writer) RuntimeOption {
	return func(o *runtimeOverrides) {
		o.logOut = w
	}
}

// WithStdout sets where the stdout sink prints line protocol.
func WithStdout(w io.Writer) RuntimeOption {
	return func(o *runtimeOverrides) {
		o.stdout = w
	}
}

// Runtime wires the reader → transformer → sink pipeline for a single run.
type Runtime struct {
	cfg         *Config
	runID       string
	obs         ports.Observability
	prom        *observability.PromObs
	source      ports.Source
	transformer ports.Transformer
	sink        ports.Sink
}

// NewRuntime bootstraps the default adapters (knowledgeC reader, usage
// transformer, configured sink, logrus + Prometheus observability). Any of
// them can be replaced through RuntimeOption values.
func NewRuntime(cfg *Config, opts ...RuntimeOption) (*Runtime, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	overrides := runtimeOverrides{logOut: os.Stderr, stdout: os.Stdout}
	for _, opt := range opts {
		if opt != nil {
			opt(&overrides)
		}
	}

	rt := &Runtime{cfg: cfg, runID: uuid.NewString()}

	rt.obs = overrides.observability
	if rt.obs == nil {
		logger, err := observability.NewLogger(overrides.logOut, cfg.Log.Level, cfg.Log.Format)
		if err != nil {
			return nil, fmt.Errorf("logger: %w", err)
		}
		rt.prom = observability.NewPromObs(logger.WithFields(logrus.Fields{"run_id": rt.runID}))
		rt.obs = rt.prom
	}

	rt.source = overrides.source
	if rt.source == nil {
		rt.source = knowledge.NewReader(cfg.Source.Path, knowledge.WithStream(cfg.Source.Stream))
	}

	rt.transformer = overrides.transformer
	if rt.transformer == nil {
		rt.transformer = transform.Usage{}
	}

	rt.sink = overrides.sink
	if rt.sink == nil {
		snk, err := newSink(cfg, overrides.stdout)
		if err != nil {
			return nil, err
		}
		rt.sink = snk
	}

	return rt, nil
}

func newSink(cfg *Config, stdout io.Writer) (ports.Sink, error) {
	switch cfg.Sink {
	case config.SinkInfluxDB:
		return sink.NewInfluxSink(sink.InfluxConfig{
			URL:     cfg.InfluxDB.URL,
			Token:   cfg.InfluxDB.Token,
			Org:     cfg.InfluxDB.Org,
			Bucket:  cfg.InfluxDB.Bucket,
			Timeout: cfg.InfluxDB.Timeout,
		}), nil
	case config.SinkTimescale:
		db, err := sql.Open("postgres", cfg.Timescale.ConnString)
		if err != nil {
			return nil, err
		}
		return sink.NewTimescaleSink(db, cfg.Timescale.Table), nil
	case config.SinkStdout:
		return sink.NewLineProtocolSink(stdout), nil
	default:
		return nil, fmt.Errorf("unknown sink %q", cfg.Sink)
	}
}

// RunID identifies this run in logs.
func (r *Runtime) RunID() string { return r.runID }

// Run executes the pipeline once and releases the sink. The returned error is
// a *SourceError, a *StageError or a close failure; nothing is retried.
func (r *Runtime) Run(ctx context.Context) (Report, error) {
	if r == nil {
		return Report{}, fmt.Errorf("runtime is nil")
	}

	rep, err := pipeline.RunSync(ctx, r.source, r.transformer, r.sink, r.obs)

	var errs []error
	if err != nil {
		errs = append(errs, err)
	}
	if cerr := r.sink.Close(); cerr != nil {
		errs = append(errs, fmt.Errorf("close sink: %w", cerr))
	}
	if r.prom != nil {
		if werr := r.prom.WriteTextfile(r.cfg.Metrics.Textfile); werr != nil {
			r.obs.LogError("metrics_textfile_failed", werr, ports.Field{Key: "path", Value: r.cfg.Metrics.Textfile})
		}
	}
	return rep, errors.Join(errs...)
}
