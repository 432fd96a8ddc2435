// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guide

import (
	"encoding/json"
	"log/slog"
	"time"
)

// # Search Result

// Result is the output of one pipeline run over a guide collection.
type Result struct {
	// Guides holds the filtered and sorted records.
	Guides []*Guide

	// Total is len(Guides), before pagination.
	Total int

	// Elapsed is the wall-clock time spent in filtering and sorting only.
	Elapsed time.Duration

	// Query is the text query the run used.
	Query string

	Facets  Facets
	History []string
}

// ElapsedMillis returns [Result.Elapsed] as fractional milliseconds.
func (r Result) ElapsedMillis() float64 {
	return float64(r.Elapsed) / float64(time.Millisecond)
}

// MarshalJSON renders the result with elapsed time as "elapsed_ms".
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Guides    []*Guide `json:"guides"`
		Total     int      `json:"total"`
		ElapsedMS float64  `json:"elapsed_ms"`
		Query     string   `json:"query"`
		Facets    Facets   `json:"facets"`
		History   []string `json:"history"`
	}{
		Guides:    r.Guides,
		Total:     r.Total,
		ElapsedMS: r.ElapsedMillis(),
		Query:     r.Query,
		Facets:    r.Facets,
		History:   r.History,
	})
}

/*
Run filters and sorts guides under filters and wraps the outcome with metadata.

Description: Run is a pure function of its inputs. The returned History is
always empty; [Searcher.Result] attaches the searcher's history.

Parameters:
  - guides: []*Guide (never modified)
  - filters: Filters

Returns:
  - Result: The ordered collection, its size, timing, and facets
*/
func Run(guides []*Guide, filters Filters) Result {
	return run(guides, filters, slog.Default())
}

func run(guides []*Guide, filters Filters, logger *slog.Logger) Result {
	start := time.Now()
	filtered := filterGuides(guides, filters, logger)
	ordered := sortGuides(filtered, filters.SortBy, filters.Query, logger)
	elapsed := time.Since(start)

	return Result{
		Guides:  ordered,
		Total:   len(ordered),
		Elapsed: elapsed,
		Query:   filters.Query,
		Facets:  computeFacets(ordered),
		History: []string{},
	}
}

// # Searcher

// Searcher ties a guide collection, the active filter state, and the search
// history together.
//
// # Concurrency
//
// Searcher is not safe for concurrent use. The HTTP layer builds one per request.
type Searcher struct {
	guides  []*Guide
	filters Filters
	history *History
	logger  *slog.Logger
}

// Option configures a [Searcher].
type Option func(*Searcher)

// WithLogger sets the logger used for recovered record failures.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithHistory seeds the search history, most recent first.
func WithHistory(entries []string) Option {
	return func(s *Searcher) {
		s.history = NewHistory(entries)
	}
}

// WithFilters sets the initial filter state instead of [DefaultFilters].
func WithFilters(filters Filters) Option {
	return func(s *Searcher) {
		s.filters = filters.Clone()
	}
}

// NewSearcher creates a Searcher over guides with default filters and an empty history.
func NewSearcher(guides []*Guide, opts ...Option) *Searcher {
	searcher := &Searcher{
		guides:  guides,
		filters: DefaultFilters(),
		history: &History{},
		logger:  slog.Default(),
	}

	for _, opt := range opts {
		opt(searcher)
	}

	return searcher
}

// Search sets the text query and records it in the history.
//
// Empty or whitespace-only queries clear the text filter and are not recorded.
func (s *Searcher) Search(query string) {
	next := s.filters.Clone()
	next.Query = query
	s.filters = next

	s.history.Record(query)
}

// UpdateFilter replaces exactly one field of the filter state.
//
// On error the filter state is unchanged.
func (s *Searcher) UpdateFilter(field Field, value any) error {
	next, err := s.filters.With(field, value)
	if err != nil {
		return err
	}
	s.filters = next
	return nil
}

// ResetFilters restores the default filter state. The history is kept.
func (s *Searcher) ResetFilters() {
	s.filters = DefaultFilters()
}

// SetGuides replaces the candidate collection.
func (s *Searcher) SetGuides(guides []*Guide) {
	s.guides = guides
}

// Filters returns a copy of the active filter state.
func (s *Searcher) Filters() Filters {
	return s.filters.Clone()
}

// History returns the search history, most recent first.
func (s *Searcher) History() []string {
	return s.history.Entries()
}

// Result runs the pipeline over the current collection and filter state.
func (s *Searcher) Result() Result {
	result := run(s.guides, s.filters, s.logger)
	result.History = s.history.Entries()
	return result
}
