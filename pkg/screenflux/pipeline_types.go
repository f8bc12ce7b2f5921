package screenflux

import (
	"github.com/ghalamif/screenflux/internal/app/pipeline"
	"github.com/ghalamif/screenflux/internal/domain"
	"github.com/ghalamif/screenflux/internal/ports"
)

// RawUsageRow is one usage interval as read from the knowledge database.
type RawUsageRow = domain.RawUsageRow

// UsagePoint is the time-series record written to the sink.
type UsagePoint = domain.UsagePoint

// Source reads usage rows (knowledgeC.db by default).
type Source = ports.Source

// Transformer reshapes rows into points.
type Transformer = ports.Transformer

// Sink writes a batch of points as a unit.
type Sink = ports.Sink

// Observability emits logs and run metrics.
type Observability = ports.Observability

// Field is a structured log/metric field used by Observability implementations.
type Field = ports.Field

// Report summarizes a completed run.
type Report = pipeline.Report

// SourceError is returned when the database file is missing or unreadable.
type SourceError = domain.SourceError

// StageError wraps a query or sink failure.
type StageError = domain.StageError

var (
	ErrSourceNotFound   = domain.ErrSourceNotFound
	ErrSourceUnreadable = domain.ErrSourceUnreadable
)
