package ports

import (
	"context"

	"github.com/ghalamif/screenflux/internal/domain"
)

// Source reads every application-usage interval from the activity store.
type Source interface {
	ReadUsageEvents(ctx context.Context) ([]domain.RawUsageRow, error)
	Path() string
}
