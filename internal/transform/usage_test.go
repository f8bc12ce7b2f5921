package transform

import (
	"testing"
	"time"

	"github.com/ghalamif/screenflux/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestUsagePointsSafariExample(t *testing.T) {
	rows := []domain.RawUsageRow{{
		App:         "Safari",
		Usage:       120,
		StartTime:   700000000,
		EndTime:     700000120,
		CreatedAt:   700000000,
		TZOffset:    -25200,
		DeviceID:    strPtr("dev-1"),
		DeviceModel: strPtr("MacBookPro"),
	}}
	// The reader hands over corrected epoch seconds.
	rows[0].EndTime += domain.CoreDataEpochOffset

	points := UsagePoints(rows)
	if len(points) != 1 {
		t.Fatalf("expected 1 point, got %d", len(points))
	}
	p := points[0]
	tags := p.Tags()
	if tags["app"] != "Safari" || tags["device_id"] != "dev-1" || tags["device_model"] != "MacBookPro" {
		t.Fatalf("unexpected tags %v", tags)
	}
	if p.Fields()["usage"] != int64(120) {
		t.Fatalf("expected usage field 120, got %v", p.Fields()["usage"])
	}
	want := time.Unix(700000120+978307200, 0).UTC()
	if !p.Timestamp.Equal(want) || p.Timestamp.Location() != time.UTC {
		t.Fatalf("expected timestamp %s, got %s", want, p.Timestamp)
	}
}

func TestUsagePointsPreservesOrderAndLength(t *testing.T) {
	rows := []domain.RawUsageRow{
		{App: "c", Usage: 3, EndTime: 300},
		{App: "a", Usage: 0, EndTime: 100},
		{App: "b", Usage: -5, EndTime: 200},
		{App: "a", Usage: 7, EndTime: 100},
	}

	points := UsagePoints(rows)
	if len(points) != len(rows) {
		t.Fatalf("expected %d points, got %d", len(rows), len(points))
	}
	for i := range rows {
		if points[i].App != rows[i].App || points[i].Usage != rows[i].Usage {
			t.Fatalf("point %d does not derive from row %d: %+v vs %+v", i, i, points[i], rows[i])
		}
		if points[i].Timestamp.Unix() != rows[i].EndTime {
			t.Fatalf("point %d timestamp %d, expected %d", i, points[i].Timestamp.Unix(), rows[i].EndTime)
		}
	}
}

func TestUsagePointsUnknownDefaultsAreIndependent(t *testing.T) {
	rows := []domain.RawUsageRow{
		{App: "x", DeviceID: nil, DeviceModel: strPtr("iPhone14,2")},
		{App: "y", DeviceID: strPtr("dev-2"), DeviceModel: nil},
		{App: "z"},
	}

	points := UsagePoints(rows)
	cases := []struct{ id, model string }{
		{domain.UnknownTag, "iPhone14,2"},
		{"dev-2", domain.UnknownTag},
		{domain.UnknownTag, domain.UnknownTag},
	}
	for i, c := range cases {
		if points[i].DeviceID != c.id || points[i].DeviceModel != c.model {
			t.Fatalf("row %d: expected (%s, %s), got (%s, %s)", i, c.id, c.model, points[i].DeviceID, points[i].DeviceModel)
		}
	}
}

func TestUsagePointsTimestampsAreInjective(t *testing.T) {
	seen := make(map[time.Time]int64)
	for end := int64(-3); end < 1000; end++ {
		p := UsagePoints([]domain.RawUsageRow{{EndTime: end}})[0]
		if p.Timestamp.Nanosecond() != 0 {
			t.Fatalf("expected whole-second timestamp, got %s", p.Timestamp)
		}
		if prev, ok := seen[p.Timestamp]; ok {
			t.Fatalf("end times %d and %d collapsed to %s", prev, end, p.Timestamp)
		}
		seen[p.Timestamp] = end
	}
}

func TestUsagePointsEpochCorrectedZero(t *testing.T) {
	p := UsagePoints([]domain.RawUsageRow{{EndTime: 0 + domain.CoreDataEpochOffset}})[0]
	want := time.Date(2001, 1, 1, 0, 0, 0, 0, time.UTC)
	if !p.Timestamp.Equal(want) {
		t.Fatalf("expected %s, got %s", want, p.Timestamp)
	}
}

func TestUsagePointsEmpty(t *testing.T) {
	points := Usage{}.Transform(nil)
	if points == nil || len(points) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", points)
	}
}
