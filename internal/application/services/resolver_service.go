package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/rs/zerolog/log"

	"github.com/zatekoja/facilityqualityinsights/internal/adapters/dataset"
	"github.com/zatekoja/facilityqualityinsights/pkg/config"
)

// ResolverService maps free-text facility names to the canonical spelling
// found in the datasets. The index is built once at startup and is immutable
// afterwards, so it is safe to share across request goroutines.
type ResolverService struct {
	index          map[string]string // normalized key -> canonical spelling
	names          []string          // canonical spellings, sorted
	exactishCutoff float64
	suggestCutoff  float64
	maxSuggestions int
}

// NewResolverService scans every dataset's facility column and builds the
// lookup. The first-seen raw spelling of a normalized key becomes canonical;
// names are scanned in sorted order per table so the choice is deterministic.
func NewResolverService(store *dataset.Store, cfg config.ResolverConfig) *ResolverService {
	index := make(map[string]string)
	var names []string

	for _, table := range store.Tables() {
		for _, name := range table.FacilityNames() {
			key := dataset.Normalize(name)
			if key == "" {
				continue
			}
			if _, seen := index[key]; !seen {
				index[key] = name
				names = append(names, name)
			}
		}
	}
	sort.Strings(names)

	log.Info().
		Int("facilities", len(names)).
		Float64("exactish_cutoff", cfg.ExactishCutoff).
		Float64("suggest_cutoff", cfg.SuggestCutoff).
		Msg("facility index built")

	return &ResolverService{
		index:          index,
		names:          names,
		exactishCutoff: cfg.ExactishCutoff,
		suggestCutoff:  cfg.SuggestCutoff,
		maxSuggestions: cfg.MaxSuggestions,
	}
}

// FacilityCount returns the number of distinct canonical facilities.
func (s *ResolverService) FacilityCount() int {
	return len(s.names)
}

// Resolve maps the input to a canonical facility name.
//
// Tiers: an exact normalized match wins outright with an empty note; a single
// candidate above the tight cutoff resolves with a note saying so; otherwise
// candidates above the loose cutoff are offered as suggestions without
// resolving, since auto-resolving at low confidence would silently report the
// wrong facility.
func (s *ResolverService) Resolve(input string) (string, string) {
	input = strings.TrimSpace(input)
	if input == "" {
		return "", "No facility selected."
	}

	if canonical, ok := s.index[dataset.Normalize(input)]; ok {
		return canonical, ""
	}

	if candidates := s.closeMatches(input, 1, s.exactishCutoff); len(candidates) > 0 {
		chosen := candidates[0]
		return chosen, fmt.Sprintf("(Resolved to closest match: %s)", chosen)
	}

	if suggestions := s.closeMatches(input, s.maxSuggestions, s.suggestCutoff); len(suggestions) > 0 {
		return "", fmt.Sprintf(
			"Facility not found: '%s'. Did you mean one of: %s?",
			input, strings.Join(suggestions, " | "),
		)
	}

	return "", fmt.Sprintf("Facility not found: '%s'.", input)
}

// Suggest returns the loose-cutoff candidates for the input, best first.
func (s *ResolverService) Suggest(input string) []string {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil
	}
	return s.closeMatches(input, s.maxSuggestions, s.suggestCutoff)
}

// closeMatches scores the input against every canonical name and returns up
// to n names at or above the cutoff, ordered by descending similarity. Ties
// fall back to lexical order because names is sorted and the sort is stable.
func (s *ResolverService) closeMatches(input string, n int, cutoff float64) []string {
	type scored struct {
		name  string
		score float64
	}

	key := dataset.Normalize(input)
	var matches []scored
	for _, name := range s.names {
		score := similarity(key, dataset.Normalize(name))
		if score >= cutoff {
			matches = append(matches, scored{name: name, score: score})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].score > matches[j].score
	})

	if len(matches) > n {
		matches = matches[:n]
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = m.name
	}
	return out
}

// similarity is the Levenshtein ratio: 1 - distance/maxLen over runes.
// Identical strings score 1, disjoint strings approach 0.
func similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	if a == "" || b == "" {
		return 0.0
	}

	dist := levenshtein.ComputeDistance(a, b)
	maxLen := len([]rune(a))
	if lb := len([]rune(b)); lb > maxLen {
		maxLen = lb
	}
	return 1.0 - float64(dist)/float64(maxLen)
}
