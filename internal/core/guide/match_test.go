// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guide_test

import (
	"context"
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/voyara/internal/core/guide"
)

// # Helpers

func ids(guides []*guide.Guide) []string {
	result := make([]string, len(guides))
	for i, g := range guides {
		result[i] = g.ID
	}
	return result
}

func catalogue(t *testing.T) []*guide.Guide {
	t.Helper()
	repository, err := guide.NewFixtureRepository()
	require.NoError(t, err)

	guides, err := repository.List(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, guides)
	return guides
}

func withFilter(t *testing.T, filters guide.Filters, field guide.Field, value any) guide.Filters {
	t.Helper()
	next, err := filters.With(field, value)
	require.NoError(t, err)
	return next
}

// # Predicates

func TestFilter_PriceRangeAndVerified(t *testing.T) {
	guides := []*guide.Guide{
		{ID: "verified", PricePerHour: 45, Verified: true},
		{ID: "unverified", PricePerHour: 45, Verified: false},
	}

	filters := guide.DefaultFilters()
	filters.MinPrice = 40
	filters.MaxPrice = 60
	filters.Verified = guide.Required

	assert.Equal(t, []string{"verified"}, ids(guide.Filter(guides, filters)))
}

func TestFilter_PriceBoundsAreInclusive(t *testing.T) {
	guides := []*guide.Guide{
		{ID: "low", PricePerHour: 40},
		{ID: "mid", PricePerHour: 50},
		{ID: "high", PricePerHour: 60},
		{ID: "over", PricePerHour: 60.01},
	}

	filters := guide.DefaultFilters()
	filters.MinPrice = 40
	filters.MaxPrice = 60

	assert.Equal(t, []string{"low", "mid", "high"}, ids(guide.Filter(guides, filters)))
}

func TestFilter_DisabledFlagsDoNotExclude(t *testing.T) {
	guides := []*guide.Guide{
		{ID: "a", Verified: false, Availability: false},
		{ID: "b", Verified: true, Availability: true},
	}

	filters := guide.DefaultFilters()
	assert.Equal(t, []string{"a", "b"}, ids(guide.Filter(guides, filters)))

	filters.Availability = guide.Required
	assert.Equal(t, []string{"b"}, ids(guide.Filter(guides, filters)))
}

func TestFilter_TextIsCaseInsensitiveSubstring(t *testing.T) {
	guides := []*guide.Guide{
		{ID: "name", Name: "Lan Nguyen", Location: "Hanoi"},
		{ID: "location", Name: "Anna", Location: "Zürich, Switzerland"},
		{ID: "experience", Name: "Kofi", Experience: "Former ZURICH tram driver"},
		{ID: "specialty", Name: "Mia", Specialties: []string{"Street Food"}},
		{ID: "none", Name: "Bob", Location: "Oslo"},
	}

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"name", "NGUYEN", []string{"name"}},
		{"folded_umlaut", "ZÜRICH", []string{"location"}},
		{"experience", "tram", []string{"experience"}},
		{"specialty", "food", []string{"specialty"}},
		{"padded_query", "  food  ", []string{"specialty"}},
		{"whitespace_only_matches_all", "   ", []string{"name", "location", "experience", "specialty", "none"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filters := withFilter(t, guide.DefaultFilters(), guide.FieldQuery, tt.query)
			assert.Equal(t, tt.want, ids(guide.Filter(guides, filters)))
		})
	}
}

func TestFilter_LocationAndSpecialty(t *testing.T) {
	guides := []*guide.Guide{
		{ID: "kyoto", Location: "Kyoto, Japan", Specialties: []string{"Temples", "Tea Ceremony"}},
		{ID: "tokyo", Location: "Tokyo, Japan", Specialties: []string{"Nightlife"}},
		{ID: "paris", Location: "Paris, France", Specialties: []string{"Wine Tasting"}},
	}

	filters := withFilter(t, guide.DefaultFilters(), guide.FieldLocation, "japan")
	assert.Equal(t, []string{"kyoto", "tokyo"}, ids(guide.Filter(guides, filters)))

	filters = withFilter(t, filters, guide.FieldSpecialty, "tea")
	assert.Equal(t, []string{"kyoto"}, ids(guide.Filter(guides, filters)))
}

func TestFilter_MinRating(t *testing.T) {
	guides := []*guide.Guide{
		{ID: "unrated", Rating: 0},
		{ID: "good", Rating: 4.5},
		{ID: "great", Rating: 4.9},
	}

	filters := guide.DefaultFilters()
	assert.Len(t, guide.Filter(guides, filters), 3)

	filters.MinRating = 4.5
	assert.Equal(t, []string{"good", "great"}, ids(guide.Filter(guides, filters)))
}

func TestFilter_NaNRecordsNeverMatch(t *testing.T) {
	guides := []*guide.Guide{
		{ID: "nan-price", PricePerHour: math.NaN(), Rating: 4.8},
		{ID: "nan-rating", PricePerHour: 50, Rating: math.NaN()},
		{ID: "ok", PricePerHour: 50, Rating: 4.8},
	}

	assert.Equal(t, []string{"ok"}, ids(guide.Filter(guides, guide.DefaultFilters())))

	filters := guide.DefaultFilters()
	filters.MinPrice, filters.MaxPrice, filters.MinRating = 40, 60, 4.5
	assert.Equal(t, []string{"ok"}, ids(guide.Filter(guides, filters)))
}

func TestFilter_LanguagesMatchAny(t *testing.T) {
	guides := []*guide.Guide{
		{ID: "fr", Languages: []string{"French"}},
		{ID: "en_ja", Languages: []string{"English", "Japanese"}},
		{ID: "none"},
	}

	filters := withFilter(t, guide.DefaultFilters(), guide.FieldLanguages, []string{"japan", "FRENCH"})
	assert.Equal(t, []string{"fr", "en_ja"}, ids(guide.Filter(guides, filters)))
}

// # Edge Cases

func TestFilter_EmptyAndNilInput(t *testing.T) {
	filters := guide.DefaultFilters()

	result := guide.Filter(nil, filters)
	assert.NotNil(t, result)
	assert.Empty(t, result)

	result = guide.Filter([]*guide.Guide{}, filters)
	assert.NotNil(t, result)
	assert.Empty(t, result)
}

func TestFilter_SkipsNilRecords(t *testing.T) {
	guides := []*guide.Guide{nil, {ID: "a"}, nil, {ID: "b"}}

	assert.Equal(t, []string{"a", "b"}, ids(guide.Filter(guides, guide.DefaultFilters())))
}

func TestFilter_ToleratesMissingFields(t *testing.T) {
	guides := []*guide.Guide{{ID: "bare"}}

	filters := withFilter(t, guide.DefaultFilters(), guide.FieldQuery, "anything")
	assert.Empty(t, guide.Filter(guides, filters))

	filters = withFilter(t, guide.DefaultFilters(), guide.FieldLanguages, []string{"English"})
	assert.Empty(t, guide.Filter(guides, filters))
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	guides := catalogue(t)
	before := slices.Clone(guides)

	filters := withFilter(t, guide.DefaultFilters(), guide.FieldVerified, true)
	_ = guide.Filter(guides, filters)

	assert.Equal(t, before, guides)
}

// # Properties

func TestFilter_Monotonicity(t *testing.T) {
	guides := catalogue(t)

	base := []guide.Filters{
		guide.DefaultFilters(),
		withFilter(t, guide.DefaultFilters(), guide.FieldQuery, "history"),
		withFilter(t, guide.DefaultFilters(), guide.FieldMaxPrice, 100),
	}

	constraints := []struct {
		field guide.Field
		value any
	}{
		{guide.FieldVerified, true},
		{guide.FieldAvailability, true},
		{guide.FieldMinRating, 4.5},
		{guide.FieldMinPrice, 40},
		{guide.FieldMaxPrice, 60},
		{guide.FieldLocation, "japan"},
		{guide.FieldSpecialty, "food"},
		{guide.FieldLanguages, []string{"English"}},
		{guide.FieldQuery, "tour"},
	}

	for _, loose := range base {
		looser := ids(guide.Filter(guides, loose))

		for _, constraint := range constraints {
			strict := withFilter(t, loose, constraint.field, constraint.value)
			stricter := ids(guide.Filter(guides, strict))

			assert.Subset(t, looser, stricter, "adding %s=%v widened the result", constraint.field, constraint.value)
		}
	}
}

func TestFilter_PreservesRelativeOrder(t *testing.T) {
	guides := catalogue(t)

	filters := withFilter(t, guide.DefaultFilters(), guide.FieldAvailability, true)
	result := guide.Filter(guides, filters)

	previous := -1
	for _, g := range result {
		position := slices.Index(guides, g)
		assert.Greater(t, position, previous)
		previous = position
	}
}
