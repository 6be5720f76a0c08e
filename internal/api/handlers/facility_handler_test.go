package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubResolver struct {
	resolved    string
	note        string
	suggestions []string
}

func (s *stubResolver) Resolve(string) (string, string) {
	return s.resolved, s.note
}

func (s *stubResolver) Suggest(string) []string {
	return s.suggestions
}

func TestResolveFacility(t *testing.T) {
	handler := NewFacilityHandler(&stubResolver{
		resolved: "Mercy General Hospital",
		note:     "(Resolved to closest match: Mercy General Hospital)",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/facilities/resolve?name=Mercy+Generl+Hospital", nil)
	rec := httptest.NewRecorder()
	handler.ResolveFacility(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Mercy General Hospital", body["resolved"])
	assert.Contains(t, body["note"], "closest match")
}

func TestSuggestFacilities(t *testing.T) {
	handler := NewFacilityHandler(&stubResolver{
		suggestions: []string{"Mercy General Hospital", "Mercy West Hospital"},
	})

	req := httptest.NewRequest(http.MethodGet, "/api/facilities/suggest?name=mercy", nil)
	rec := httptest.NewRecorder()
	handler.SuggestFacilities(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Suggestions []string `json:"suggestions"`
		Count       int      `json:"count"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, 2, body.Count)
	assert.Equal(t, "Mercy General Hospital", body.Suggestions[0])
}

func TestSuggestFacilities_RequiresName(t *testing.T) {
	handler := NewFacilityHandler(&stubResolver{})

	req := httptest.NewRequest(http.MethodGet, "/api/facilities/suggest", nil)
	rec := httptest.NewRecorder()
	handler.SuggestFacilities(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSuggestFacilities_EmptyListNotNull(t *testing.T) {
	handler := NewFacilityHandler(&stubResolver{})

	req := httptest.NewRequest(http.MethodGet, "/api/facilities/suggest?name=zzz", nil)
	rec := httptest.NewRecorder()
	handler.SuggestFacilities(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"suggestions":[]`)
}
