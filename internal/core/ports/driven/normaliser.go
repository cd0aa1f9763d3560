package driven

import (
	"context"

	"github.com/custodia-labs/sercha-recall/internal/core/domain"
)

// Normaliser transforms a raw item into a storable document.
// It performs no persistence and no MIME-specific parsing.
type Normaliser interface {
	// Normalise validates item and derives its StoredDoc for owner.
	// Returns domain.ErrInvalidInput for empty or malformed content and
	// domain.ErrInvalidArgument for an empty owner.
	Normalise(ctx context.Context, item domain.RawItem, owner string) (*domain.StoredDoc, error)
}
