package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"github.com/ghalamif/screenflux/internal/ports"
)

// PromObs logs through logrus and records run metrics on its own registry.
type PromObs struct {
	log      *logrus.Entry
	registry *prometheus.Registry
	counters map[string]prometheus.Counter
	gauges   map[string]prometheus.Gauge
	histos   map[string]prometheus.Observer
}

func NewPromObs(log *logrus.Entry) *PromObs {
	rowsRead := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "screenflux_rows_read_total",
		Help: "Usage rows read from the knowledge database.",
	})
	written := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "screenflux_points_written_total",
		Help: "Usage points acknowledged by the sink.",
	})
	runDuration := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "screenflux_run_duration_seconds",
		Help: "Wall time of the last run.",
	})
	lastSuccess := prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "screenflux_last_success_timestamp_seconds",
		Help: "UNIX time of the last run that wrote its batch.",
	})
	latency := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "screenflux_sink_write_seconds",
		Help:    "Duration of the batch write call.",
		Buckets: prometheus.ExponentialBuckets(0.01, 2, 12),
	})

	reg := prometheus.NewRegistry()
	reg.MustRegister(rowsRead, written, runDuration, lastSuccess, latency)

	return &PromObs{
		log:      log,
		registry: reg,
		counters: map[string]prometheus.Counter{
			"screenflux_rows_read_total":      rowsRead,
			"screenflux_points_written_total": written,
		},
		gauges: map[string]prometheus.Gauge{
			"screenflux_run_duration_seconds":           runDuration,
			"screenflux_last_success_timestamp_seconds": lastSuccess,
		},
		histos: map[string]prometheus.Observer{
			"screenflux_sink_write_seconds": latency,
		},
	}
}

func (p *PromObs) LogInfo(msg string, fields ...ports.Field) {
	p.log.WithFields(toLogrus(fields)).Info(msg)
}

func (p *PromObs) LogError(msg string, err error, fields ...ports.Field) {
	p.log.WithFields(toLogrus(fields)).WithError(err).Error(msg)
}

func (p *PromObs) IncCounter(name string, v float64) {
	if c, ok := p.counters[name]; ok {
		c.Add(v)
	}
}

func (p *PromObs) ObserveLatency(name string, seconds float64) {
	if h, ok := p.histos[name]; ok {
		h.Observe(seconds)
	}
}

func (p *PromObs) SetGauge(name string, v float64) {
	if g, ok := p.gauges[name]; ok {
		g.Set(v)
	}
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
// A blank path is a no-op.
func (p *PromObs) WriteTextfile(path string) error {
	if path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, p.registry)
}

func toLogrus(fields []ports.Field) logrus.Fields {
	out := make(logrus.Fields, len(fields))
	for _, f := range fields {
		out[f.Key] = f.Value
	}
	return out
}

var _ ports.Observability = (*PromObs)(nil)
