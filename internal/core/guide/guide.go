// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package guide implements discovery of local tour guides in the Voyara marketplace.

Guide records are supplied by a [Repository] (embedded fixtures or the indexed
PostgreSQL catalogue) and narrowed, ranked, and paginated entirely in memory.

Pipeline:

  - Filter: conjunctive predicates over text, location, price, rating, flags, and languages.
  - Sort: a named strategy (relevance, rating, price, newest), always stable.
  - Search: the [Searcher] owns filter state, search history, and timing metadata.
  - Paginate: the generic [pagination.Paginator] slices the ordered result.

The pipeline never mutates the guide records it receives.
*/
package guide

import (
	"strings"
	"time"

	"github.com/taibuivan/voyara/internal/platform/validate"
	"github.com/taibuivan/voyara/pkg/wallet"
)

// # Domain Entity

// Guide is a tour guide listing as published on-chain and indexed off-chain.
//
// ID is the guide's wallet address (or a generated UUID for off-chain drafts).
type Guide struct {
	ID           string   `json:"id" toml:"id"`
	Name         string   `json:"name" toml:"name"`
	Location     string   `json:"location" toml:"location"`
	Experience   string   `json:"experience" toml:"experience"`
	Specialties  []string `json:"specialties" toml:"specialties"`
	Languages    []string `json:"languages" toml:"languages"`
	PricePerHour float64  `json:"price_per_hour" toml:"price_per_hour"`
	Rating       float64  `json:"rating" toml:"rating"`
	Verified     bool     `json:"verified" toml:"verified"`
	Availability bool     `json:"availability" toml:"availability"`

	// VerificationDate is an ISO-8601 date or timestamp; it only feeds the
	// "newest" sort and may be empty.
	VerificationDate string `json:"verification_date,omitempty" toml:"verification_date"`
}

// verificationLayouts are tried in order when parsing [Guide.VerificationDate].
var verificationLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	time.DateOnly,
}

// VerifiedAt parses the verification date.
//
// Missing or unparseable dates resolve to the Unix epoch so that they sort
// as the oldest records.
func (g *Guide) VerifiedAt() time.Time {
	if g.VerificationDate == "" {
		return time.Unix(0, 0).UTC()
	}

	for _, layout := range verificationLayouts {
		if parsed, err := time.Parse(layout, g.VerificationDate); err == nil {
			return parsed
		}
	}

	return time.Unix(0, 0).UTC()
}

// CanonicalID returns the stored form of a guide id.
//
// Wallet addresses are converted to their EIP-55 checksum form so that
// lookups are case-insensitive; any other id is only trimmed.
func CanonicalID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if !wallet.IsAddress(id) {
		return id, nil
	}

	normalized, err := wallet.Normalize(id)
	if err != nil {
		return "", validate.RequiredError("id", "Wallet address checksum does not match")
	}
	return normalized, nil
}
