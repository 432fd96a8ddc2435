// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guide

import (
	"slices"
	"strings"
)

// HistoryLimit is the maximum number of remembered search queries.
const HistoryLimit = 10

// History is a de-duplicated, most-recent-first list of search queries.
//
// The zero value is an empty history ready for use.
type History struct {
	entries []string
}

// NewHistory seeds a history from persisted entries (most recent first).
// Blank entries and duplicates are dropped and the cap is enforced.
func NewHistory(entries []string) *History {
	history := &History{}
	for i := len(entries) - 1; i >= 0; i-- {
		history.Record(entries[i])
	}
	return history
}

// Record moves query to the front of the history.
//
// Blank queries are ignored. An existing entry is moved rather than
// duplicated, and entries beyond [HistoryLimit] are evicted oldest first.
// It reports whether the history changed.
func (h *History) Record(query string) bool {
	query = strings.TrimSpace(query)
	if query == "" {
		return false
	}

	if len(h.entries) > 0 && h.entries[0] == query {
		return false
	}

	entries := make([]string, 0, HistoryLimit)
	entries = append(entries, query)
	for _, entry := range h.entries {
		if entry != query && len(entries) < HistoryLimit {
			entries = append(entries, entry)
		}
	}

	h.entries = entries
	return true
}

// Entries returns a copy of the history, most recent first.
func (h *History) Entries() []string {
	entries := slices.Clone(h.entries)
	if entries == nil {
		return []string{}
	}
	return entries
}

// Len returns the number of remembered queries.
func (h *History) Len() int {
	return len(h.entries)
}
