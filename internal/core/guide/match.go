// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guide

import (
	"log/slog"
	"math"
	"strings"

	"golang.org/x/text/cases"

	"github.com/taibuivan/voyara/pkg/slice"
)

// # Text Folding

// folder applies Unicode case folding so that "ZÜRICH" and "Zürich" compare
// equal under substring matching.
//
// A folder is not safe for concurrent use; each pipeline run builds its own.
type folder struct {
	caser cases.Caser
}

func newFolder() *folder {
	return &folder{caser: cases.Fold()}
}

func (f *folder) fold(s string) string {
	if s == "" {
		return ""
	}
	return f.caser.String(s)
}

// contains reports whether needle (already folded) occurs in haystack.
func (f *folder) contains(haystack, foldedNeedle string) bool {
	return strings.Contains(f.fold(haystack), foldedNeedle)
}

// # Predicate Set

// matcher evaluates every active filter predicate against a guide.
// All needles are folded once up front.
type matcher struct {
	folder    *folder
	query     string
	location  string
	specialty string
	languages []string
	filters   Filters
	logger    *slog.Logger
}

func newMatcher(filters Filters, logger *slog.Logger) *matcher {
	f := newFolder()

	needle := func(s string) string { return f.fold(strings.TrimSpace(s)) }

	return &matcher{
		folder:    f,
		query:     needle(filters.Query),
		location:  needle(filters.Location),
		specialty: needle(filters.Specialty),
		languages: slice.Filter(slice.Map(filters.Languages, needle), isNotBlank),
		filters:   filters,
		logger:    logger,
	}
}

/*
Filter returns the guides matching every active constraint of filters, in
their original relative order.

Description: Predicates compose with AND across fields and with OR inside
the languages list. Nil records and records whose evaluation panics are
treated as non-matching.

Parameters:
  - guides: []*Guide (never modified)
  - filters: Filters

Returns:
  - []*Guide: A new slice referencing the matching records
*/
func Filter(guides []*Guide, filters Filters) []*Guide {
	return filterGuides(guides, filters, slog.Default())
}

func filterGuides(guides []*Guide, filters Filters, logger *slog.Logger) []*Guide {
	matched := slice.Filter(guides, newMatcher(filters, logger).safeMatch)
	if matched == nil {
		return []*Guide{}
	}
	return matched
}

// safeMatch absorbs any panic raised by a malformed record.
func (m *matcher) safeMatch(guide *Guide) (ok bool) {
	defer func() {
		if recovered := recover(); recovered != nil {
			m.logger.Debug("guide_match_recovered",
				slog.String("guide_id", guideID(guide)),
				slog.Any("panic", recovered),
			)
			ok = false
		}
	}()

	if guide == nil {
		return false
	}
	return m.match(guide)
}

func (m *matcher) match(guide *Guide) bool {
	if m.query != "" && !m.matchesQuery(guide) {
		return false
	}

	if m.location != "" && !m.folder.contains(guide.Location, m.location) {
		return false
	}

	if m.specialty != "" && !m.anyContains(guide.Specialties, m.specialty) {
		return false
	}

	// NaN compares false both ways.
	if math.IsNaN(guide.PricePerHour) || math.IsNaN(guide.Rating) {
		return false
	}

	if guide.PricePerHour < m.filters.MinPrice || guide.PricePerHour > m.filters.MaxPrice {
		return false
	}

	if m.filters.MinRating > 0 && guide.Rating < m.filters.MinRating {
		return false
	}

	if !m.filters.Verified.Allows(guide.Verified) || !m.filters.Availability.Allows(guide.Availability) {
		return false
	}

	if len(m.languages) > 0 && !m.speaksAny(guide.Languages) {
		return false
	}

	return true
}

// matchesQuery checks the free-text query against name, location, experience, and specialties.
func (m *matcher) matchesQuery(guide *Guide) bool {
	return m.folder.contains(guide.Name, m.query) ||
		m.folder.contains(guide.Location, m.query) ||
		m.folder.contains(guide.Experience, m.query) ||
		m.anyContains(guide.Specialties, m.query)
}

// speaksAny reports whether any requested language occurs in any guide language.
func (m *matcher) speaksAny(spoken []string) bool {
	for _, requested := range m.languages {
		if m.anyContains(spoken, requested) {
			return true
		}
	}
	return false
}

func (m *matcher) anyContains(values []string, foldedNeedle string) bool {
	for _, value := range values {
		if m.folder.contains(value, foldedNeedle) {
			return true
		}
	}
	return false
}

func isNotBlank(s string) bool {
	return s != ""
}

func guideID(guide *Guide) string {
	if guide == nil {
		return ""
	}
	return guide.ID
}
