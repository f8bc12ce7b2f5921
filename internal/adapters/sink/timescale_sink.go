package sink

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/lib/pq"

	"github.com/ghalamif/screenflux/internal/domain"
	"github.com/ghalamif/screenflux/internal/ports"
)

// maxRowsPerInsert keeps each statement under PostgreSQL's 65535 bind
// parameter limit (5 parameters per row).
const maxRowsPerInsert = 13000

// TimescaleSink stores usage points in a hypertable. A batch is split into
// multi-row INSERTs that share one transaction, so it commits or fails as a unit.
// Rows are appended as-is; every run re-inserts the full history.
type TimescaleSink struct {
	db        *sql.DB
	tableName string
}

func NewTimescaleSink(db *sql.DB, table string) *TimescaleSink {
	return &TimescaleSink{db: db, tableName: table}
}

func (t *TimescaleSink) Name() string { return "timescaledb" }

func (t *TimescaleSink) WriteBatch(ctx context.Context, points []domain.UsagePoint) error {
	if len(points) == 0 {
		return nil
	}

	tx, err := t.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	for start := 0; start < len(points); start += maxRowsPerInsert {
		end := min(start+maxRowsPerInsert, len(points))
		query, args := t.insertStatement(points[start:end])
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			_ = tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}

func (t *TimescaleSink) insertStatement(points []domain.UsagePoint) (string, []any) {
	var b strings.Builder
	b.WriteString("INSERT INTO ")
	b.WriteString(pq.QuoteIdentifier(t.tableName))
	b.WriteString(" (ts, app, device_id, device_model, usage) VALUES ")

	args := make([]any, 0, len(points)*5)
	for i, p := range points {
		if i > 0 {
			b.WriteString(",")
		}
		b.WriteString(fmt.Sprintf("($%d,$%d,$%d,$%d,$%d)",
			len(args)+1, len(args)+2, len(args)+3, len(args)+4, len(args)+5))
		args = append(args,
			p.Timestamp,
			p.App,
			p.DeviceID,
			p.DeviceModel,
			p.Usage,
		)
	}
	return b.String(), args
}

func (t *TimescaleSink) Close() error { return t.db.Close() }

var _ ports.Sink = (*TimescaleSink)(nil)
