package services

import (
	"sort"

	"github.com/zatekoja/facilityqualityinsights/internal/adapters/dataset"
	"github.com/zatekoja/facilityqualityinsights/internal/domain/entities"
	"github.com/zatekoja/facilityqualityinsights/pkg/config"
)

// Infection measures (SIR; lower is better).
var infectionIDs = whitelist(
	"HAI_1_SIR", "HAI_2_SIR", "HAI_3_SIR", "HAI_4_SIR", "HAI_5_SIR", "HAI_6_SIR",
)

// Mortality and complication measures (rates; lower is better).
var outcomeIDs = whitelist(
	"MORT_30_AMI", "MORT_30_CABG", "MORT_30_COPD", "MORT_30_HF", "MORT_30_PN", "MORT_30_STK",
	"COMP_HIP_KNEE", "PSI_03", "PSI_04", "PSI_06", "PSI_08", "PSI_09", "PSI_10",
	"PSI_11", "PSI_12", "PSI_13", "PSI_14", "PSI_15", "PSI_90",
)

// Timely care measures: ED flow, sepsis, prevention and safety.
var timelyCareIDs = whitelist(
	"EDV",
	"ED_2_Strata_1", "ED_2_Strata_2",
	"IMM_3", "OP_18b", "OP_18c", "HCP_COVID_19",
	"SEP_1", "SEP_SH_3HR", "SEP_SH_6HR", "SEV_SEP_3HR", "SEV_SEP_6HR",
	"VTE_1", "VTE_2",
	"OP_22", "OP_23", "OP_29", "OP_31", "OP_40",
)

// HCAHPS linear mean composites kept for patient experience.
var experienceIDs = whitelist(
	"H_COMP_1_LINEAR_SCORE", "H_COMP_2_LINEAR_SCORE", "H_COMP_3_LINEAR_SCORE",
	"H_COMP_5_LINEAR_SCORE", "H_COMP_6_LINEAR_SCORE", "H_COMP_7_LINEAR_SCORE",
	"H_CLEAN_LINEAR_SCORE", "H_QUIET_LINEAR_SCORE",
	"H_HSP_RATING_LINEAR_SCORE", "H_RECMND_LINEAR_SCORE",
)

func whitelist(ids ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// categoryConfig parameterizes the shared row-selection step: which columns
// a category requires, which column identifies the measure, and which
// measures it keeps.
type categoryConfig struct {
	required []string
	idColumn string
	keep     map[string]struct{}
}

// ExtractorService filters dataset rows to one facility and reshapes them
// into the per-category report entries. Missing required columns are fatal;
// unparseable cell values are absorbed row by row.
type ExtractorService struct {
	store           *dataset.Store
	readmissionTopN int
}

// NewExtractorService creates an extractor over the loaded datasets.
func NewExtractorService(store *dataset.Store, cfg config.ResolverConfig) *ExtractorService {
	topN := cfg.ReadmissionTopN
	if topN <= 0 {
		topN = 3
	}
	return &ExtractorService{
		store:           store,
		readmissionTopN: topN,
	}
}

// selectRows verifies the category's schema and returns the facility's row
// indices, restricted to the category's measure whitelist when one is set.
func selectRows(t *dataset.Table, cfg categoryConfig, facility string) ([]int, error) {
	if err := t.EnsureColumns(cfg.required...); err != nil {
		return nil, err
	}

	rows := t.FacilityRows(facility)
	if cfg.keep == nil {
		return rows, nil
	}

	var kept []int
	for _, i := range rows {
		if _, ok := cfg.keep[t.Cell(i, cfg.idColumn)]; ok {
			kept = append(kept, i)
		}
	}
	return kept, nil
}

// Infections returns the facility's standardized infection ratios. Rows
// without a parseable score are dropped entirely.
func (s *ExtractorService) Infections(facility string) ([]entities.InfectionEntry, error) {
	rows, err := selectRows(s.store.Infections, categoryConfig{
		required: []string{dataset.FacilityColumn, "Measure ID", "Score"},
		idColumn: "Measure ID",
		keep:     infectionIDs,
	}, facility)
	if err != nil {
		return nil, err
	}

	entries := []entities.InfectionEntry{}
	for _, i := range rows {
		v, ok := dataset.ToNum(s.store.Infections.Cell(i, "Score"))
		if !ok {
			continue
		}
		entries = append(entries, entities.InfectionEntry{
			Name:   s.store.Infections.Cell(i, "Measure ID"),
			Value:  dataset.Round(v, 3),
			Unit:   entities.UnitSIR,
			Better: entities.BetterLower,
		})
	}
	return entries, nil
}

// MortalityComplications returns mortality and complication rates. Entries
// stay in the report even when the score is unparseable, and the national
// comparison label is attached when present.
func (s *ExtractorService) MortalityComplications(facility string) ([]entities.OutcomeEntry, error) {
	t := s.store.MortalityComplications
	rows, err := selectRows(t, categoryConfig{
		required: []string{dataset.FacilityColumn, "Measure ID", "Score", "Compared to National"},
		idColumn: "Measure ID",
		keep:     outcomeIDs,
	}, facility)
	if err != nil {
		return nil, err
	}

	entries := []entities.OutcomeEntry{}
	for _, i := range rows {
		entry := entities.OutcomeEntry{
			Name:   t.Cell(i, "Measure ID"),
			Unit:   entities.UnitRate,
			Better: entities.BetterLower,
		}
		if v, ok := dataset.ToNum(t.Cell(i, "Score")); ok {
			rounded := dataset.Round(v, 3)
			entry.Value = &rounded
		}
		if ctn := t.Cell(i, "Compared to National"); ctn != "" {
			entry.ComparedToNational = ctn
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// Readmissions computes predicted minus expected per measure, keeps only
// fully parseable rows, and retains the worst offenders: the top N by
// descending difference.
func (s *ExtractorService) Readmissions(facility string) ([]entities.ReadmissionEntry, error) {
	t := s.store.Readmissions
	rows, err := selectRows(t, categoryConfig{
		required: []string{
			dataset.FacilityColumn, "Measure Name",
			"Predicted Readmission Rate", "Expected Readmission Rate",
		},
	}, facility)
	if err != nil {
		return nil, err
	}

	entries := []entities.ReadmissionEntry{}
	for _, i := range rows {
		pred, okP := dataset.ToNum(t.Cell(i, "Predicted Readmission Rate"))
		exp, okE := dataset.ToNum(t.Cell(i, "Expected Readmission Rate"))
		if !okP || !okE {
			continue
		}
		entries = append(entries, entities.ReadmissionEntry{
			Name:       t.Cell(i, "Measure Name"),
			Predicted:  dataset.Round(pred, 3),
			Expected:   dataset.Round(exp, 3),
			Difference: dataset.Round(pred-exp, 3),
			Better:     entities.BetterLower,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Difference > entries[j].Difference
	})
	if len(entries) > s.readmissionTopN {
		entries = entries[:s.readmissionTopN]
	}
	return entries, nil
}

// TimelyCare returns ED flow, sepsis, and prevention measures. Numeric scores
// are reported as values; non-sentinel text such as ED volume tiers is kept
// as text.
func (s *ExtractorService) TimelyCare(facility string) ([]entities.TimelyCareEntry, error) {
	t := s.store.TimelyCare
	rows, err := selectRows(t, categoryConfig{
		required: []string{dataset.FacilityColumn, "Measure ID", "Score"},
		idColumn: "Measure ID",
		keep:     timelyCareIDs,
	}, facility)
	if err != nil {
		return nil, err
	}

	entries := []entities.TimelyCareEntry{}
	for _, i := range rows {
		id := t.Cell(i, "Measure ID")
		raw := t.Cell(i, "Score")
		meta := entities.MetaFor(id)

		entry := entities.TimelyCareEntry{
			Name:   meta.Name,
			Unit:   meta.Unit,
			Better: meta.Better,
			ID:     id,
		}

		if v, ok := dataset.ToNum(raw); ok {
			rounded := dataset.Round(v, 3)
			entry.Value = &rounded
		} else if raw != "" && !dataset.IsSentinel(raw) {
			entry.ValueText = raw
		} else {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// PatientExperience returns the HCAHPS linear mean composites. Only rows with
// a parseable score are kept; there is deliberately no national comparison
// for this category.
func (s *ExtractorService) PatientExperience(facility string) ([]entities.ExperienceEntry, error) {
	t := s.store.PatientExperience
	rows, err := selectRows(t, categoryConfig{
		required: []string{dataset.FacilityColumn, "HCAHPS Measure ID", "HCAHPS Linear Mean Value"},
		idColumn: "HCAHPS Measure ID",
		keep:     experienceIDs,
	}, facility)
	if err != nil {
		return nil, err
	}

	entries := []entities.ExperienceEntry{}
	for _, i := range rows {
		v, ok := dataset.ToNum(t.Cell(i, "HCAHPS Linear Mean Value"))
		if !ok {
			continue
		}
		entries = append(entries, entities.ExperienceEntry{
			ID:     t.Cell(i, "HCAHPS Measure ID"),
			Value:  dataset.Round(v, 2),
			Unit:   entities.UnitLinearMean,
			Better: entities.BetterHigher,
		})
	}
	return entries, nil
}
