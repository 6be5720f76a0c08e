package entities

// InfectionEntry is a standardized infection ratio measurement.
// Entries with no parseable score are never emitted.
type InfectionEntry struct {
	Name   string  `json:"name"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
	Better string  `json:"better"`
}

// OutcomeEntry is a mortality or complication rate. Value stays null when the
// score is not parseable; the entry is still reported so the narrative can
// see which measures exist for the facility.
type OutcomeEntry struct {
	Name               string   `json:"name"`
	Value              *float64 `json:"value"`
	Unit               string   `json:"unit"`
	Better             string   `json:"better"`
	ComparedToNational string   `json:"compared_to_national,omitempty"`
}

// ReadmissionEntry carries predicted vs expected readmission rates for one
// measure. Difference is predicted minus expected, so higher means more
// readmissions than expected.
type ReadmissionEntry struct {
	Name       string  `json:"name"`
	Predicted  float64 `json:"predicted"`
	Expected   float64 `json:"expected"`
	Difference float64 `json:"difference"`
	Better     string  `json:"better"`
}

// TimelyCareEntry is an ED flow, sepsis, or prevention measurement. Scores
// that are not numeric but carry meaning (such as ED volume tiers) are kept
// as ValueText instead of Value.
type TimelyCareEntry struct {
	Name      string   `json:"name"`
	Value     *float64 `json:"value,omitempty"`
	ValueText string   `json:"value_text,omitempty"`
	Unit      string   `json:"unit"`
	Better    string   `json:"better"`
	ID        string   `json:"id"`
}

// ExperienceEntry is an HCAHPS linear mean score.
type ExperienceEntry struct {
	ID     string  `json:"id"`
	Value  float64 `json:"value"`
	Unit   string  `json:"unit"`
	Better string  `json:"better"`
}

// QualityReport is the compact payload handed to the narrative generator.
// It exists only for the duration of one request.
type QualityReport struct {
	Facility               string             `json:"facility"`
	PatientExperience      []ExperienceEntry  `json:"patient_experience"`
	Infections             []InfectionEntry   `json:"infections"`
	Readmissions           []ReadmissionEntry `json:"readmissions"`
	MortalityComplications []OutcomeEntry     `json:"mortality_complications"`
	TimelyCare             []TimelyCareEntry  `json:"timely_care"`
}
