package providers

import (
	"context"

	"github.com/zatekoja/facilityqualityinsights/internal/domain/entities"
)

// NarrativeProvider turns a quality report into an executive-readable
// narrative. Implementations call an external text-generation service.
type NarrativeProvider interface {
	GenerateNarrative(ctx context.Context, report *entities.QualityReport) (string, error)
}
