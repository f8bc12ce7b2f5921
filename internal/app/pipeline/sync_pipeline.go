package pipeline

import (
	"context"
	"time"

	"github.com/ghalamif/screenflux/internal/domain"
	"github.com/ghalamif/screenflux/internal/ports"
)

// Report summarizes one completed run.
type Report struct {
	RowsRead      int
	PointsWritten int
	Sink          string
	Duration      time.Duration
}

// RunSync reads the full usage history, reshapes it and writes it as one batch.
// Stages run strictly in order and a failed stage is never retried.
func RunSync(ctx context.Context, src ports.Source, tr ports.Transformer, sink ports.Sink, obs ports.Observability) (Report, error) {
	start := time.Now()
	rep := Report{Sink: sink.Name()}

	rows, err := src.ReadUsageEvents(ctx)
	if err != nil {
		obs.LogError("source_read_failed", err, ports.Field{Key: "path", Value: src.Path()})
		return rep, err
	}
	rep.RowsRead = len(rows)
	obs.IncCounter("screenflux_rows_read_total", float64(len(rows)))
	obs.LogInfo("source_read",
		ports.Field{Key: "rows", Value: len(rows)},
		ports.Field{Key: "path", Value: src.Path()})

	points := tr.Transform(rows)

	writeStart := time.Now()
	if err := sink.WriteBatch(ctx, points); err != nil {
		obs.LogError("sink_write_failed", err,
			ports.Field{Key: "sink", Value: sink.Name()},
			ports.Field{Key: "points", Value: len(points)})
		return rep, &domain.StageError{Stage: domain.StageSink, Err: err}
	}
	obs.ObserveLatency("screenflux_sink_write_seconds", time.Since(writeStart).Seconds())
	obs.IncCounter("screenflux_points_written_total", float64(len(points)))
	rep.PointsWritten = len(points)

	rep.Duration = time.Since(start)
	obs.SetGauge("screenflux_run_duration_seconds", rep.Duration.Seconds())
	obs.SetGauge("screenflux_last_success_timestamp_seconds", float64(time.Now().Unix()))
	obs.LogInfo("sync_complete",
		ports.Field{Key: "rows", Value: rep.RowsRead},
		ports.Field{Key: "points", Value: rep.PointsWritten},
		ports.Field{Key: "sink", Value: rep.Sink},
		ports.Field{Key: "transform_ver", Value: tr.Version()},
		ports.Field{Key: "duration", Value: rep.Duration.String()})
	return rep, nil
}
