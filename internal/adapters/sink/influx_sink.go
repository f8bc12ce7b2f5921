package sink

import (
	"context"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/ghalamif/screenflux/internal/domain"
	"github.com/ghalamif/screenflux/internal/ports"
)

// InfluxConfig holds the static connection details for an InfluxDB v2 bucket.
type InfluxConfig struct {
	URL     string
	Token   string
	Org     string
	Bucket  string
	Timeout time.Duration
}

// InfluxSink writes each batch with one blocking call at second precision.
type InfluxSink struct {
	client influxdb2.Client
	writer api.WriteAPIBlocking
}

func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	opts := influxdb2.DefaultOptions().SetPrecision(time.Second)
	if cfg.Timeout > 0 {
		opts.SetHTTPRequestTimeout(timeoutSeconds(cfg.Timeout))
	}
	client := influxdb2.NewClientWithOptions(cfg.URL, cfg.Token, opts)
	return &InfluxSink{
		client: client,
		writer: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
	}
}

func (s *InfluxSink) Name() string { return "influxdb" }

func (s *InfluxSink) WriteBatch(ctx context.Context, points []domain.UsagePoint) error {
	if len(points) == 0 {
		return nil
	}
	return s.writer.WritePoint(ctx, toInfluxPoints(points)...)
}

func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}

// timeoutSeconds rounds up; the client takes whole seconds and treats 0 as no timeout.
func timeoutSeconds(d time.Duration) uint {
	return uint((d + time.Second - 1) / time.Second)
}

func toInfluxPoints(points []domain.UsagePoint) []*write.Point {
	out := make([]*write.Point, len(points))
	for i, p := range points {
		out[i] = influxdb2.NewPoint(domain.Measurement, p.Tags(), p.Fields(), p.Timestamp)
	}
	return out
}

var _ ports.Sink = (*InfluxSink)(nil)
