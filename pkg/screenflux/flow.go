package screenflux

import (
	"context"
	"fmt"
)

// Flow builds a one-shot knowledgeC.db → time-series run in three steps:
// Conf picks the config, StreamIN swaps the usage source, StreamOUT picks
// where the usage points go and returns the Runtime.
type Flow struct {
	cfg  *Config
	opts []RuntimeOption
}

// FlowOption adjusts a Flow right after its config is loaded.
type FlowOption func(*Flow)

// StreamInOption configures where raw usage rows are read from.
type StreamInOption func(*Flow)

// StreamOutOption configures how rows become usage points and where they are written.
type StreamOutOption func(*Flow)

// Conf loads a screenflux YAML file (empty path: built-in defaults) and starts a Flow.
func Conf(path string, opts ...FlowOption) (*Flow, error) {
	cfg, err := LoadConfig(path)
	if err != nil {
		return nil, err
	}
	return ConfFromConfig(cfg, opts...)
}

// ConfFromConfig bootstraps a Flow from an in-memory Config.
func ConfFromConfig(cfg *Config, opts ...FlowOption) (*Flow, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	f := &Flow{cfg: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f, nil
}

// Config returns the underlying configuration.
func (f *Flow) Config() *Config {
	if f == nil {
		return nil
	}
	return f.cfg
}

// StreamIN records the source overrides; without any the configured knowledgeC.db is read.
func (f *Flow) StreamIN(opts ...StreamInOption) *Flow {
	if f == nil {
		return nil
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return f
}

// StreamOUT records the sink overrides and builds a Runtime whose Run performs
// one full read, transform and write.
func (f *Flow) StreamOUT(opts ...StreamOutOption) (*Runtime, error) {
	if f == nil {
		return nil, fmt.Errorf("flow is nil")
	}
	for _, opt := range opts {
		if opt != nil {
			opt(f)
		}
	}
	return NewRuntime(f.cfg, f.opts...)
}

// Run builds the Runtime and syncs the whole usage history once.
func (f *Flow) Run(ctx context.Context, opts ...StreamOutOption) (Report, error) {
	rt, err := f.StreamOUT(opts...)
	if err != nil {
		return Report{}, err
	}
	return rt.Run(ctx)
}

// WithFlowOptions appends RuntimeOption values during Conf.
func WithFlowOptions(opts ...RuntimeOption) FlowOption {
	return func(f *Flow) {
		if f != nil {
			f.appendOptions(opts...)
		}
	}
}

// StreamInSource reads usage rows from src instead of the configured knowledgeC.db,
// e.g. a copy taken off another Mac.
func StreamInSource(src Source) StreamInOption {
	return func(f *Flow) {
		if f != nil && src != nil {
			f.appendOptions(WithSource(src))
		}
	}
}

// StreamInObservability overrides the default logrus/Prometheus stack.
func StreamInObservability(obs Observability) StreamInOption {
	return func(f *Flow) {
		if f != nil && obs != nil {
			f.appendOptions(WithObservability(obs))
		}
	}
}

// StreamOutSink writes the usage points to s instead of the configured sink kind.
func StreamOutSink(s Sink) StreamOutOption {
	return func(f *Flow) {
		if f != nil && s != nil {
			f.appendOptions(WithSink(s))
		}
	}
}

// StreamOutTransformer replaces the row → usage point mapping.
func StreamOutTransformer(tr Transformer) StreamOutOption {
	return func(f *Flow) {
		if f != nil && tr != nil {
			f.appendOptions(WithTransformer(tr))
		}
	}
}

// StreamOutCallback hands the usage points of the run to fn.
func StreamOutCallback(name string, fn UsageBatchSink) StreamOutOption {
	return func(f *Flow) {
		if f != nil {
			f.appendOptions(WithSink(NewCallbackSink(name, fn)))
		}
	}
}

func (f *Flow) appendOptions(opts ...RuntimeOption) {
	for _, opt := range opts {
		if opt != nil {
			f.opts = append(f.opts, opt)
		}
	}
}
