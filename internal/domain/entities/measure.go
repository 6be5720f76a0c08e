package entities

import "strings"

// MeasureMeta describes how a quality measure should be read: its display
// name, the unit its score is expressed in, and whether a lower or higher
// score is better.
type MeasureMeta struct {
	Name   string `json:"name"`
	Unit   string `json:"unit"`
	Better string `json:"better"`
}

// Measure units.
const (
	UnitPercent    = "percent"
	UnitMinutes    = "minutes"
	UnitSIR        = "sir"
	UnitRate       = "rate"
	UnitLinearMean = "linear_mean"
	UnitCategory   = "category"
	UnitUnknown    = "unknown"
)

// Directionality values.
const (
	BetterLower   = "lower"
	BetterHigher  = "higher"
	BetterContext = "context"
	BetterUnknown = "unknown"
)

// measureMeta covers only the measures we are confident about; everything
// else falls back to MetaFor's unknown meta.
var measureMeta = map[string]MeasureMeta{
	// ED flow (minutes; lower is better)
	"OP_18b": {Name: "ED throughput time (median)", Unit: UnitMinutes, Better: BetterLower},
	"OP_18c": {Name: "ED throughput time (median) - psych/mental health", Unit: UnitMinutes, Better: BetterLower},
	"OP_22":  {Name: "ED access measure (OP_22)", Unit: UnitPercent, Better: BetterLower},

	// Sepsis (percent; higher is better)
	"SEP_1":       {Name: "Sepsis bundle (SEP-1)", Unit: UnitPercent, Better: BetterHigher},
	"SEP_SH_3HR":  {Name: "Septic shock care within 3 hours", Unit: UnitPercent, Better: BetterHigher},
	"SEP_SH_6HR":  {Name: "Septic shock care within 6 hours", Unit: UnitPercent, Better: BetterHigher},
	"SEV_SEP_3HR": {Name: "Severe sepsis care within 3 hours", Unit: UnitPercent, Better: BetterHigher},
	"SEV_SEP_6HR": {Name: "Severe sepsis care within 6 hours", Unit: UnitPercent, Better: BetterHigher},

	// Prevention and safety (percent; higher is better)
	"IMM_3":        {Name: "Healthcare personnel influenza vaccination", Unit: UnitPercent, Better: BetterHigher},
	"VTE_1":        {Name: "VTE prophylaxis", Unit: UnitPercent, Better: BetterHigher},
	"VTE_2":        {Name: "VTE prophylaxis (additional)", Unit: UnitPercent, Better: BetterHigher},
	"HCP_COVID_19": {Name: "Healthcare personnel COVID-19 vaccination", Unit: UnitPercent, Better: BetterHigher},

	// ED volume is categorical context, not good/bad
	"EDV": {Name: "Emergency department volume", Unit: UnitCategory, Better: BetterContext},
}

// MetaFor returns the display metadata for a measure ID. Unknown IDs get a
// fallback meta whose name is the ID itself.
func MetaFor(id string) MeasureMeta {
	id = strings.TrimSpace(id)
	if m, ok := measureMeta[id]; ok {
		return m
	}
	return MeasureMeta{Name: id, Unit: UnitUnknown, Better: BetterUnknown}
}
