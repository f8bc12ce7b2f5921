package screenflux

import (
	"context"
	"fmt"

	"github.com/ghalamif/screenflux/internal/domain"
)

// UsageBatchSink is invoked with the full, ordered batch of a run.
type UsageBatchSink func([]UsagePoint) error

// NewCallbackSink adapts a UsageBatchSink into a full Sink implementation so callers
// can plug arbitrary functions without defining structs.
func NewCallbackSink(name string, fn UsageBatchSink) Sink {
	if name == "" {
		name = "callback"
	}
	return &callbackSink{name: name, fn: fn}
}

type callbackSink struct {
	name string
	fn   UsageBatchSink
}

func (s *callbackSink) WriteBatch(_ context.Context, points []domain.UsagePoint) error {
	if s.fn == nil {
		return fmt.Errorf("callback sink %q: nil handler", s.name)
	}
	return s.fn(points)
}

func (s *callbackSink) Name() string { return s.name }

func (s *callbackSink) Close() error { return nil }
