package sink

import (
	"bufio"
	"context"
	"io"
	"time"

	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/ghalamif/screenflux/internal/domain"
	"github.com/ghalamif/screenflux/internal/ports"
)

// LineProtocolSink prints points as InfluxDB line protocol; used for dry runs.
type LineProtocolSink struct {
	w io.Writer
}

func NewLineProtocolSink(w io.Writer) *LineProtocolSink {
	return &LineProtocolSink{w: w}
}

func (s *LineProtocolSink) Name() string { return "stdout" }

func (s *LineProtocolSink) WriteBatch(_ context.Context, points []domain.UsagePoint) error {
	if len(points) == 0 {
		return nil
	}
	bw := bufio.NewWriter(s.w)
	for _, p := range toInfluxPoints(points) {
		if _, err := bw.WriteString(write.PointToLineProtocol(p, time.Second)); err != nil {
			return err
		}
	}
	return bw.Flush()
}

func (s *LineProtocolSink) Close() error { return nil }

var _ ports.Sink = (*LineProtocolSink)(nil)
