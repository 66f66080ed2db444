package intel

import (
	"context"

	"github.com/brandpulse/creatorsearch/internal/domain"
)

// Analyzer extracts structured search parameters from free text.
type Analyzer interface {
	Extract(ctx context.Context, rawQuery string) (domain.Extraction, error)
}
