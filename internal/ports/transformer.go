package ports

import "github.com/ghalamif/screenflux/internal/domain"

type Transformer interface {
	Transform(rows []domain.RawUsageRow) []domain.UsagePoint
	Version() uint16
}
