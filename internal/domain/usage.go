package domain

import "time"

// CoreDataEpochOffset is the number of seconds between the UNIX epoch and
// 2001-01-01T00:00:00Z, the reference date the Knowledge store counts from.
const CoreDataEpochOffset int64 = 978307200

// Measurement is the name every usage point is written under.
const Measurement = "usage"

// UnknownTag replaces a missing device identifier or model.
const UnknownTag = "Unknown"

// RawUsageRow is one application-usage interval as read from knowledgeC.db.
// All timestamps are UNIX seconds (epoch correction already applied).
type RawUsageRow struct {
	App         string
	Usage       int64
	StartTime   int64
	EndTime     int64
	CreatedAt   int64
	TZOffset    int64
	DeviceID    *string
	DeviceModel *string
}

// UsagePoint is the normalized time-series record handed to a sink.
type UsagePoint struct {
	App         string
	DeviceID    string
	DeviceModel string
	Usage       int64
	Timestamp   time.Time
}

// Tags returns the point's tag set keyed by line-protocol tag name.
func (p UsagePoint) Tags() map[string]string {
	return map[string]string{
		"app":          p.App,
		"device_id":    p.DeviceID,
		"device_model": p.DeviceModel,
	}
}

// Fields returns the point's field set.
func (p UsagePoint) Fields() map[string]any {
	return map[string]any{"usage": p.Usage}
}
