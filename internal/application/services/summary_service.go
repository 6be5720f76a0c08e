package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zatekoja/facilityqualityinsights/internal/adapters/dataset"
	"github.com/zatekoja/facilityqualityinsights/internal/domain/entities"
	"github.com/zatekoja/facilityqualityinsights/internal/domain/providers"
	"github.com/zatekoja/facilityqualityinsights/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/facilityqualityinsights/pkg/errors"
)

// SummaryService resolves a facility, extracts its quality report, and asks
// the narrative provider for an executive summary. Every outcome the caller
// can display (resolution note, configuration problem, downstream failure,
// narrative) is returned as a plain string; only schema errors are real
// errors, since they mean the service is misdeployed.
type SummaryService struct {
	resolver  *ResolverService
	extractor *ExtractorService
	narrative providers.NarrativeProvider
	cache     providers.CacheProvider
	cacheTTL  int
	metrics   *observability.Metrics
}

// NewSummaryService creates a summary service. cache and metrics may be nil;
// cacheTTL is in seconds and zero disables caching.
func NewSummaryService(
	resolver *ResolverService,
	extractor *ExtractorService,
	narrative providers.NarrativeProvider,
	cache providers.CacheProvider,
	cacheTTL int,
	metrics *observability.Metrics,
) *SummaryService {
	return &SummaryService{
		resolver:  resolver,
		extractor: extractor,
		narrative: narrative,
		cache:     cache,
		cacheTTL:  cacheTTL,
		metrics:   metrics,
	}
}

// DashboardSummary produces the display string for one facility name: the
// resolution note alone when resolution fails, otherwise the generated
// narrative, prefixed by the note and a blank line when the name was only
// fuzzily resolved.
func (s *SummaryService) DashboardSummary(ctx context.Context, facilityName string) (string, error) {
	start := time.Now()
	resolved, note := s.resolver.Resolve(facilityName)
	defer func() {
		if s.metrics != nil {
			observability.RecordSummaryMetric(ctx, s.metrics, resolved != "", time.Since(start))
		}
	}()

	if resolved == "" {
		return note, nil
	}

	report, err := s.BuildReport(ctx, resolved)
	if err != nil {
		return "", err
	}

	if cached := s.cachedNarrative(ctx, resolved); cached != "" {
		return withNote(note, cached), nil
	}

	text, err := s.narrative.GenerateNarrative(ctx, report)
	if err != nil {
		var appErr *apperrors.AppError
		if errors.As(err, &appErr) && appErr.Type == apperrors.ErrorTypeConfiguration {
			return fmt.Sprintf("[Configuration error] %s.\nSet it and restart the service.", appErr.Message), nil
		}
		observability.LoggerFromContext(ctx).Error().Err(err).Str("facility", resolved).Msg("narrative generation failed")
		return fmt.Sprintf("[Narrative error] %s", err), nil
	}

	if text == "" {
		text = "[The model returned an empty response.]"
	} else {
		s.storeNarrative(ctx, resolved, text)
	}

	return withNote(note, text), nil
}

// BuildReport runs the five extractors against the resolved facility and
// assembles the compact payload.
func (s *SummaryService) BuildReport(ctx context.Context, facility string) (*entities.QualityReport, error) {
	px, err := s.extractor.PatientExperience(facility)
	if err != nil {
		return nil, err
	}
	infections, err := s.extractor.Infections(facility)
	if err != nil {
		return nil, err
	}
	readmissions, err := s.extractor.Readmissions(facility)
	if err != nil {
		return nil, err
	}
	outcomes, err := s.extractor.MortalityComplications(facility)
	if err != nil {
		return nil, err
	}
	timely, err := s.extractor.TimelyCare(facility)
	if err != nil {
		return nil, err
	}

	observability.LoggerFromContext(ctx).Debug().
		Str("facility", facility).
		Int("patient_experience", len(px)).
		Int("infections", len(infections)).
		Int("readmissions", len(readmissions)).
		Int("mortality_complications", len(outcomes)).
		Int("timely_care", len(timely)).
		Msg("quality report assembled")

	return &entities.QualityReport{
		Facility:               facility,
		PatientExperience:      px,
		Infections:             infections,
		Readmissions:           readmissions,
		MortalityComplications: outcomes,
		TimelyCare:             timely,
	}, nil
}

func (s *SummaryService) cachedNarrative(ctx context.Context, facility string) string {
	if s.cache == nil || s.cacheTTL <= 0 {
		return ""
	}
	data, err := s.cache.Get(ctx, summaryCacheKey(facility))
	if err != nil {
		return ""
	}
	return string(data)
}

func (s *SummaryService) storeNarrative(ctx context.Context, facility, text string) {
	if s.cache == nil || s.cacheTTL <= 0 {
		return
	}
	if err := s.cache.Set(ctx, summaryCacheKey(facility), []byte(text), s.cacheTTL); err != nil {
		observability.LoggerFromContext(ctx).Debug().Err(err).Str("facility", facility).Msg("failed to cache narrative")
	}
}

func summaryCacheKey(facility string) string {
	return "summary:" + dataset.Normalize(facility)
}

func withNote(note, text string) string {
	if note == "" {
		return text
	}
	return note + "\n\n" + text
}
