package transform

import (
	"time"

	"github.com/ghalamif/screenflux/internal/domain"
	"github.com/ghalamif/screenflux/internal/ports"
)

// UsagePoints maps each row to exactly one point, preserving order.
// Rows are never dropped or validated; a zero or negative duration passes through.
func UsagePoints(rows []domain.RawUsageRow) []domain.UsagePoint {
	out := make([]domain.UsagePoint, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.UsagePoint{
			App:         r.App,
			DeviceID:    orUnknown(r.DeviceID),
			DeviceModel: orUnknown(r.DeviceModel),
			Usage:       r.Usage,
			Timestamp:   time.Unix(r.EndTime, 0).UTC(),
		})
	}
	return out
}

func orUnknown(s *string) string {
	if s == nil || *s == "" {
		return domain.UnknownTag
	}
	return *s
}

// Usage is the default ports.Transformer.
type Usage struct{}

func (Usage) Transform(rows []domain.RawUsageRow) []domain.UsagePoint { return UsagePoints(rows) }
func (Usage) Version() uint16                                         { return 1 }

var _ ports.Transformer = Usage{}
