package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrSourceNotFound means the knowledge database does not exist at the configured path.
	ErrSourceNotFound = errors.New("source database not found")
	// ErrSourceUnreadable means the database exists but the process may not read it.
	ErrSourceUnreadable = errors.New("source database not readable")
)

// SourceError reports a failed precondition on the source database file.
type SourceError struct {
	Path string
	Err  error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Path)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Stage names the pipeline step an error came from.
type Stage string

const (
	StageQuery Stage = "query"
	StageSink  Stage = "sink"
)

// StageError wraps a query or sink failure. Failed stages are never retried.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// StageOf returns the stage of a wrapped StageError, or "" when err has none.
func StageOf(err error) Stage {
	var se *StageError
	if errors.As(err, &se) {
		return se.Stage
	}
	return ""
}
