// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guide

import (
	"cmp"
	"log/slog"
	"slices"
	"strings"
)

// # Relevance Weights

// Each weight is applied once when the query occurs in the field, regardless
// of how many times it occurs. The guide rating is added as a tiebreak term.
const (
	weightName       = 10
	weightSpecialty  = 5
	weightLocation   = 3
	weightExperience = 1
)

// # Sort Strategy Selector

// keyed pairs a guide with its precomputed sort key.
type keyed struct {
	guide *Guide
	key   float64
}

/*
Sort returns a new slice holding guides ordered by strategy.

Description: Sort keys are computed once per record, then a stable sort runs,
so records with equal keys keep their input order. An unknown strategy falls
back to [SortRelevance]; relevance with an empty query ranks by rating.

Parameters:
  - guides: []*Guide (never modified)
  - strategy: SortStrategy
  - query: string (only used by relevance)

Returns:
  - []*Guide: The ordered records; records whose key computation panicked are dropped
*/
func Sort(guides []*Guide, strategy SortStrategy, query string) []*Guide {
	return sortGuides(guides, strategy, query, slog.Default())
}

func sortGuides(guides []*Guide, strategy SortStrategy, query string, logger *slog.Logger) []*Guide {
	key, descending := keyFor(strategy, query)

	entries := make([]keyed, 0, len(guides))
	for _, guide := range guides {
		value, ok := safeKey(key, guide, logger)
		if !ok {
			continue
		}
		entries = append(entries, keyed{guide: guide, key: value})
	}

	slices.SortStableFunc(entries, func(a, b keyed) int {
		if descending {
			return cmp.Compare(b.key, a.key)
		}
		return cmp.Compare(a.key, b.key)
	})

	ordered := make([]*Guide, len(entries))
	for i, entry := range entries {
		ordered[i] = entry.guide
	}
	return ordered
}

// keyFor selects the key function and direction of a strategy.
func keyFor(strategy SortStrategy, query string) (func(*Guide) float64, bool) {
	switch strategy {
	case SortRating:
		return byRating, true
	case SortPriceLow:
		return byPrice, false
	case SortPriceHigh:
		return byPrice, true
	case SortNewest:
		return byVerification, true
	}

	query = strings.TrimSpace(query)
	if query == "" {
		return byRating, true
	}
	return relevanceScorer(query), true
}

func byRating(guide *Guide) float64 {
	return guide.Rating
}

func byPrice(guide *Guide) float64 {
	return guide.PricePerHour
}

func byVerification(guide *Guide) float64 {
	return float64(guide.VerifiedAt().UnixMilli())
}

// relevanceScorer builds the composite score function for a non-empty query.
func relevanceScorer(query string) func(*Guide) float64 {
	f := newFolder()
	needle := f.fold(query)

	return func(guide *Guide) float64 {
		score := guide.Rating

		if f.contains(guide.Name, needle) {
			score += weightName
		}
		for _, specialty := range guide.Specialties {
			if f.contains(specialty, needle) {
				score += weightSpecialty
				break
			}
		}
		if f.contains(guide.Location, needle) {
			score += weightLocation
		}
		if f.contains(guide.Experience, needle) {
			score += weightExperience
		}

		return score
	}
}

// RelevanceScore exposes the composite relevance score of a guide for a query.
func RelevanceScore(guide *Guide, query string) float64 {
	return relevanceScorer(query)(guide)
}

// safeKey evaluates key, treating nil records and panics as "drop this record".
func safeKey(key func(*Guide) float64, guide *Guide, logger *slog.Logger) (value float64, ok bool) {
	defer func() {
		if recovered := recover(); recovered != nil {
			logger.Debug("guide_sort_key_recovered",
				slog.String("guide_id", guideID(guide)),
				slog.Any("panic", recovered),
			)
			value, ok = 0, false
		}
	}()

	if guide == nil {
		return 0, false
	}
	return key(guide), true
}
