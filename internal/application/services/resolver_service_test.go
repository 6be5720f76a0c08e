package services_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zatekoja/facilityqualityinsights/internal/adapters/dataset"
	"github.com/zatekoja/facilityqualityinsights/internal/application/services"
	"github.com/zatekoja/facilityqualityinsights/pkg/config"
)

func defaultResolverConfig() config.ResolverConfig {
	return config.ResolverConfig{
		ExactishCutoff:  0.88,
		SuggestCutoff:   0.6,
		MaxSuggestions:  5,
		ReadmissionTopN: 3,
	}
}

func resolverStore(facilities ...string) *dataset.Store {
	header := []string{"Facility Name", "Measure ID", "Score"}
	var rows [][]string
	for _, f := range facilities {
		rows = append(rows, []string{f, "HAI_1_SIR", "1.0"})
	}
	t := dataset.NewTable("Infections", header, rows)
	empty := dataset.NewTable("empty", header, nil)
	return &dataset.Store{
		PatientExperience:      empty,
		Infections:             t,
		Readmissions:           empty,
		MortalityComplications: empty,
		TimelyCare:             empty,
	}
}

func TestResolve_ExactNormalizedMatch(t *testing.T) {
	resolver := services.NewResolverService(
		resolverStore("Mercy General Hospital", "St. Jude Medical Center"),
		defaultResolverConfig(),
	)

	for _, input := range []string{
		"Mercy General Hospital",
		"mercy general hospital ",
		"  MERCY GENERAL HOSPITAL",
	} {
		resolved, note := resolver.Resolve(input)
		assert.Equal(t, "Mercy General Hospital", resolved, "input %q", input)
		assert.Empty(t, note, "input %q", input)
	}
}

func TestResolve_EmptyInput(t *testing.T) {
	resolver := services.NewResolverService(resolverStore("Mercy General Hospital"), defaultResolverConfig())

	resolved, note := resolver.Resolve("   ")
	assert.Empty(t, resolved)
	assert.Equal(t, "No facility selected.", note)
}

func TestResolve_OneTypoResolvesToClosestMatch(t *testing.T) {
	resolver := services.NewResolverService(
		resolverStore("Mercy General Hospital", "St. Jude Medical Center"),
		defaultResolverConfig(),
	)

	resolved, note := resolver.Resolve("Mercy Generl Hospital")
	assert.Equal(t, "Mercy General Hospital", resolved)
	assert.Equal(t, "(Resolved to closest match: Mercy General Hospital)", note)
}

func TestResolve_LowSimilarityYieldsSuggestions(t *testing.T) {
	resolver := services.NewResolverService(
		resolverStore("Mercy General Hospital", "St. Jude Medical Center"),
		defaultResolverConfig(),
	)

	// "Mercy Hospital" is too far for auto-resolution but close enough to
	// suggest.
	resolved, note := resolver.Resolve("Mercy Hospital")
	assert.Empty(t, resolved)
	assert.Contains(t, note, "Facility not found: 'Mercy Hospital'")
	assert.Contains(t, note, "Did you mean one of:")
	assert.Contains(t, note, "Mercy General Hospital")
}

func TestResolve_NoMatchNoSuggestions(t *testing.T) {
	resolver := services.NewResolverService(
		resolverStore("Mercy General Hospital", "St. Jude Medical Center"),
		defaultResolverConfig(),
	)

	resolved, note := resolver.Resolve("Unknown Clinic XYZ")
	assert.Empty(t, resolved)
	assert.Equal(t, "Facility not found: 'Unknown Clinic XYZ'.", note)
}

func TestResolve_FirstSeenSpellingIsCanonical(t *testing.T) {
	header := []string{"Facility Name", "Measure ID", "Score"}
	first := dataset.NewTable("Infections", header, [][]string{
		{"MERCY GENERAL HOSPITAL", "HAI_1_SIR", "1.0"},
	})
	second := dataset.NewTable("Timely Care", header, [][]string{
		{"Mercy General Hospital", "OP_18b", "200"},
	})
	store := &dataset.Store{
		PatientExperience:      dataset.NewTable("empty", header, nil),
		Infections:             first,
		Readmissions:           dataset.NewTable("empty", header, nil),
		MortalityComplications: dataset.NewTable("empty", header, nil),
		TimelyCare:             second,
	}

	resolver := services.NewResolverService(store, defaultResolverConfig())
	require.Equal(t, 1, resolver.FacilityCount())

	resolved, note := resolver.Resolve("mercy general hospital")
	assert.Equal(t, "MERCY GENERAL HOSPITAL", resolved)
	assert.Empty(t, note)
}

func TestSuggest_RankedBestFirst(t *testing.T) {
	resolver := services.NewResolverService(
		resolverStore("Riverside Community Hospital", "Riverside County Hospital", "St. Jude Medical Center"),
		defaultResolverConfig(),
	)

	suggestions := resolver.Suggest("Riverside Comunity Hospital")
	require.NotEmpty(t, suggestions)
	assert.Equal(t, "Riverside Community Hospital", suggestions[0])
}

func TestSuggest_EmptyInput(t *testing.T) {
	resolver := services.NewResolverService(resolverStore("Mercy General Hospital"), defaultResolverConfig())
	assert.Empty(t, resolver.Suggest("  "))
}
