// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guide

import (
	"encoding/json"
	"fmt"
	"math"
	"slices"

	"github.com/taibuivan/voyara/internal/platform/apperr"
	"github.com/taibuivan/voyara/internal/platform/validate"
)

// # Flag Requirements

// Requirement is the constraint a boolean guide flag filter applies.
//
// There is no "require false" state: disabling a flag filter means no
// constraint, never "only guides without the flag".
type Requirement uint8

const (
	// Any applies no constraint on the flag.
	Any Requirement = iota

	// Required keeps only guides whose flag is true.
	Required
)

// RequirementOf maps the boolean UI toggle onto a [Requirement].
func RequirementOf(enabled bool) Requirement {
	if enabled {
		return Required
	}
	return Any
}

// Allows reports whether a guide flag value satisfies the requirement.
func (r Requirement) Allows(flag bool) bool {
	return r != Required || flag
}

// MarshalJSON renders the requirement as the boolean toggle the UI sends.
func (r Requirement) MarshalJSON() ([]byte, error) {
	return json.Marshal(r == Required)
}

// # Sort Strategies

// SortStrategy names an ordering of the filtered collection.
type SortStrategy string

const (
	SortRelevance SortStrategy = "relevance"
	SortRating    SortStrategy = "rating"
	SortPriceLow  SortStrategy = "price_low"
	SortPriceHigh SortStrategy = "price_high"
	SortNewest    SortStrategy = "newest"
)

// SortStrategies lists every supported strategy, in UI order.
var SortStrategies = []SortStrategy{SortRelevance, SortRating, SortPriceLow, SortPriceHigh, SortNewest}

// IsValid reports whether s is a recognised [SortStrategy].
func (s SortStrategy) IsValid() bool {
	return slices.Contains(SortStrategies, s)
}

// # Filter State

// Default price bounds of the closed [DefaultMinPrice, DefaultMaxPrice] range.
const (
	DefaultMinPrice = 0
	DefaultMaxPrice = 1000
	MaxRating       = 5
)

// Filters is the complete filter and sort state of a guide search.
//
// Filters is a value type: every mutation goes through [Filters.With], which
// returns a new value and never touches slices shared with older copies.
type Filters struct {
	Query        string       `json:"query"`
	Location     string       `json:"location"`
	Specialty    string       `json:"specialty"`
	MinPrice     float64      `json:"min_price"`
	MaxPrice     float64      `json:"max_price"`
	MinRating    float64      `json:"min_rating"`
	Verified     Requirement  `json:"verified"`
	Availability Requirement  `json:"availability"`
	Languages    []string     `json:"languages"`
	SortBy       SortStrategy `json:"sort_by"`
}

// DefaultFilters returns the reset state. Each call returns an independent value.
func DefaultFilters() Filters {
	return Filters{
		MinPrice:  DefaultMinPrice,
		MaxPrice:  DefaultMaxPrice,
		Languages: []string{},
		SortBy:    SortRelevance,
	}
}

// Clone returns a deep copy of f.
func (f Filters) Clone() Filters {
	clone := f
	clone.Languages = slices.Clone(f.Languages)
	if clone.Languages == nil {
		clone.Languages = []string{}
	}
	return clone
}

// Field names a single member of [Filters] for incremental updates.
type Field string

const (
	FieldQuery        Field = "query"
	FieldLocation     Field = "location"
	FieldSpecialty    Field = "specialty"
	FieldMinPrice     Field = "minPrice"
	FieldMaxPrice     Field = "maxPrice"
	FieldMinRating    Field = "minRating"
	FieldVerified     Field = "verified"
	FieldAvailability Field = "availability"
	FieldLanguages    Field = "languages"
	FieldSortBy       Field = "sortBy"
)

/*
With returns a copy of f with exactly one field replaced.

Description: The receiver is left untouched, so callers holding an older
[Filters] value never observe the update.

Parameters:
  - field: Field
  - value: any (string, SortStrategy, float64, int, bool, Requirement, []string)

Returns:
  - Filters: The updated copy
  - error: VALIDATION_ERROR if the field is unknown or the value has the wrong type
*/
func (f Filters) With(field Field, value any) (Filters, error) {
	next := f.Clone()

	switch field {
	case FieldQuery, FieldLocation, FieldSpecialty:
		text, ok := value.(string)
		if !ok {
			return f, invalidValue(field, value)
		}
		switch field {
		case FieldQuery:
			next.Query = text
		case FieldLocation:
			next.Location = text
		default:
			next.Specialty = text
		}

	case FieldMinPrice, FieldMaxPrice, FieldMinRating:
		number, ok := toFloat(value)
		if !ok {
			return f, invalidValue(field, value)
		}
		if !isFinite(number) {
			return f, validate.RequiredError(string(field), "Must be a finite number")
		}
		switch field {
		case FieldMinPrice:
			next.MinPrice = number
		case FieldMaxPrice:
			next.MaxPrice = number
		default:
			next.MinRating = number
		}

	case FieldVerified, FieldAvailability:
		requirement, ok := toRequirement(value)
		if !ok {
			return f, invalidValue(field, value)
		}
		if field == FieldVerified {
			next.Verified = requirement
		} else {
			next.Availability = requirement
		}

	case FieldLanguages:
		languages, ok := value.([]string)
		if !ok {
			return f, invalidValue(field, value)
		}
		next.Languages = slices.Clone(languages)
		if next.Languages == nil {
			next.Languages = []string{}
		}

	case FieldSortBy:
		switch strategy := value.(type) {
		case SortStrategy:
			next.SortBy = strategy
		case string:
			next.SortBy = SortStrategy(strategy)
		default:
			return f, invalidValue(field, value)
		}

	default:
		return f, validate.RequiredError(string(field), "Unknown filter field")
	}

	return next, nil
}

/*
Validate checks the filter bounds accepted at the API boundary.

Returns:
  - error: VALIDATION_ERROR listing every failed rule, or nil
*/
func (f Filters) Validate() error {
	validator := &validate.Validator{}

	validator.
		Custom("min_price", !isFinite(f.MinPrice), "Must be a finite number").
		Custom("min_price", f.MinPrice < 0, "Must not be negative").
		Custom("max_price", !isFinite(f.MaxPrice), "Must be a finite number").
		Custom("max_price", f.MaxPrice < 0, "Must not be negative").
		Custom("min_rating", math.IsNaN(f.MinRating), "Must be a number").
		FloatRange("min_rating", f.MinRating, 0, MaxRating).
		OneOf("sort", string(f.SortBy), sortNames()...)

	return validator.Err()
}

// # Helpers

// sortNames returns the string form of [SortStrategies].
func sortNames() []string {
	names := make([]string, len(SortStrategies))
	for i, strategy := range SortStrategies {
		names[i] = string(strategy)
	}
	return names
}

func toFloat(value any) (float64, bool) {
	switch number := value.(type) {
	case float64:
		return number, true
	case float32:
		return float64(number), true
	case int:
		return float64(number), true
	case int64:
		return float64(number), true
	}
	return 0, false
}

func isFinite(number float64) bool {
	return !math.IsNaN(number) && !math.IsInf(number, 0)
}

func toRequirement(value any) (Requirement, bool) {
	switch flag := value.(type) {
	case bool:
		return RequirementOf(flag), true
	case Requirement:
		if flag != Any && flag != Required {
			return Any, false
		}
		return flag, true
	}
	return Any, false
}

func invalidValue(field Field, value any) *apperr.AppError {
	return validate.RequiredError(string(field), fmt.Sprintf("Unsupported value type %T", value))
}
