package ports

import (
	"context"

	"github.com/ghalamif/screenflux/internal/domain"
)

// Sink writes one batch of usage points as a unit. Implementations do not retry.
type Sink interface {
	WriteBatch(ctx context.Context, points []domain.UsagePoint) error
	Name() string
	Close() error
}
