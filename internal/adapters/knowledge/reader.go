package knowledge

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/sys/unix"

	"github.com/ghalamif/screenflux/internal/domain"
	"github.com/ghalamif/screenflux/internal/ports"
)

// DefaultStream is the Knowledge stream that records foreground app usage.
const DefaultStream = "/app/usage"

// usageQuery joins usage objects to their source device and sync peer.
// All joins are LEFT so an event without metadata or source is kept.
const usageQuery = `
SELECT
	ZOBJECT.ZVALUESTRING,
	CAST(ZOBJECT.ZENDDATE - ZOBJECT.ZSTARTDATE AS INTEGER),
	CAST(ZOBJECT.ZSTARTDATE + ? AS INTEGER),
	CAST(ZOBJECT.ZENDDATE + ? AS INTEGER),
	CAST(ZOBJECT.ZCREATIONDATE + ? AS INTEGER),
	ZOBJECT.ZSECONDSFROMGMT,
	ZSOURCE.ZDEVICEID,
	ZSYNCPEER.ZMODEL
FROM ZOBJECT
	LEFT JOIN ZSTRUCTUREDMETADATA ON ZOBJECT.ZSTRUCTUREDMETADATA = ZSTRUCTUREDMETADATA.Z_PK
	LEFT JOIN ZSOURCE ON ZOBJECT.ZSOURCE = ZSOURCE.Z_PK
	LEFT JOIN ZSYNCPEER ON ZSOURCE.ZDEVICEID = ZSYNCPEER.ZDEVICEID
WHERE ZOBJECT.ZSTREAMNAME = ?
ORDER BY ZOBJECT.ZSTARTDATE DESC`

// Opener opens a database handle; it matches sql.Open.
type Opener func(driverName, dataSourceName string) (*sql.DB, error)

type Option func(*Reader)

// WithOpener replaces sql.Open, mainly so tests can hand out a sqlmock handle.
func WithOpener(open Opener) Option {
	return func(r *Reader) {
		if open != nil {
			r.open = open
		}
	}
}

// WithStream overrides the stream name the query filters on.
func WithStream(stream string) Option {
	return func(r *Reader) {
		if stream != "" {
			r.stream = stream
		}
	}
}

// Reader extracts usage intervals from a knowledgeC.db file.
type Reader struct {
	path   string
	stream string
	open   Opener
	access func(path string) error
}

func NewReader(path string, opts ...Option) *Reader {
	r := &Reader{
		path:   path,
		stream: DefaultStream,
		open:   sql.Open,
		access: func(p string) error { return unix.Access(p, unix.R_OK) },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

func (r *Reader) Path() string { return r.path }

// ReadUsageEvents checks the database file, then runs the usage query once.
// Rows come back most recent start first; an empty result is not an error.
func (r *Reader) ReadUsageEvents(ctx context.Context) ([]domain.RawUsageRow, error) {
	if err := r.checkSource(); err != nil {
		return nil, err
	}

	dsn, err := readOnlyDSN(r.path)
	if err != nil {
		return nil, &domain.StageError{Stage: domain.StageQuery, Err: err}
	}
	db, err := r.open("sqlite3", dsn)
	if err != nil {
		return nil, &domain.StageError{Stage: domain.StageQuery, Err: fmt.Errorf("open %s: %w", r.path, err)}
	}
	defer db.Close()

	rows, err := r.query(ctx, db)
	if err != nil {
		return nil, &domain.StageError{Stage: domain.StageQuery, Err: err}
	}
	return rows, nil
}

func (r *Reader) checkSource() error {
	if _, err := os.Stat(r.path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return &domain.SourceError{Path: r.path, Err: domain.ErrSourceNotFound}
		}
		return &domain.SourceError{Path: r.path, Err: fmt.Errorf("%w: %v", domain.ErrSourceUnreadable, err)}
	}
	if err := r.access(r.path); err != nil {
		return &domain.SourceError{Path: r.path, Err: domain.ErrSourceUnreadable}
	}
	return nil
}

func (r *Reader) query(ctx context.Context, db *sql.DB) ([]domain.RawUsageRow, error) {
	off := domain.CoreDataEpochOffset
	rs, err := db.QueryContext(ctx, usageQuery, off, off, off, r.stream)
	if err != nil {
		return nil, fmt.Errorf("query usage events: %w", err)
	}
	defer rs.Close()

	out := make([]domain.RawUsageRow, 0)
	for rs.Next() {
		var (
			row                   domain.RawUsageRow
			app, deviceID, model  sql.NullString
			usage, start, created sql.NullInt64
			tz                    sql.NullInt64
		)
		if err := rs.Scan(&app, &usage, &start, &row.EndTime, &created, &tz, &deviceID, &model); err != nil {
			return nil, fmt.Errorf("scan usage row: %w", err)
		}
		row.App = app.String
		row.Usage = usage.Int64
		row.StartTime = start.Int64
		row.CreatedAt = created.Int64
		row.TZOffset = tz.Int64
		if deviceID.Valid {
			row.DeviceID = &deviceID.String
		}
		if model.Valid {
			row.DeviceModel = &model.String
		}
		out = append(out, row)
	}
	if err := rs.Err(); err != nil {
		return nil, fmt.Errorf("iterate usage rows: %w", err)
	}
	return out, nil
}

// readOnlyDSN builds a SQLite URI for path. The path is made absolute so a
// relative directory is never read as the URI authority, and escaped since it
// may contain spaces ("Application Support").
func readOnlyDSN(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}
	return "file:" + (&url.URL{Path: filepath.ToSlash(abs)}).EscapedPath() + "?mode=ro", nil
}

var _ ports.Source = (*Reader)(nil)
