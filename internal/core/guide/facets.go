// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package guide

import (
	"cmp"
	"math"
	"slices"
	"strings"

	"github.com/taibuivan/voyara/pkg/slug"
)

// # Facet Types

// FacetCount is the number of matching guides sharing one facet value.
type FacetCount struct {
	Key   string `json:"key"`
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Facets summarises the filtered result set along each filter dimension.
//
// Every slice is non-nil so clients can render facet panels without
// presence checks.
type Facets struct {
	Locations   []FacetCount `json:"locations"`
	Specialties []FacetCount `json:"specialties"`
	PriceRanges []FacetCount `json:"price_ranges"`
	Ratings     []FacetCount `json:"ratings"`
}

// EmptyFacets returns facets with every dimension present and empty.
func EmptyFacets() Facets {
	return Facets{
		Locations:   []FacetCount{},
		Specialties: []FacetCount{},
		PriceRanges: []FacetCount{},
		Ratings:     []FacetCount{},
	}
}

// # Buckets

type priceBucket struct {
	key   string
	label string
	lower float64
	upper float64
}

// priceBuckets are half-open [lower, upper) hourly price ranges.
var priceBuckets = []priceBucket{
	{key: "0-50", label: "Under 50", lower: 0, upper: 50},
	{key: "50-100", label: "50 to 100", lower: 50, upper: 100},
	{key: "100-200", label: "100 to 200", lower: 100, upper: 200},
	{key: "200+", label: "200 and above", lower: 200, upper: math.Inf(1)},
}

type ratingBucket struct {
	key   string
	label string
	floor float64
}

// ratingBuckets are cumulative: a 4.7 guide counts towards all three.
var ratingBuckets = []ratingBucket{
	{key: "4.5+", label: "4.5 and up", floor: 4.5},
	{key: "4+", label: "4 and up", floor: 4},
	{key: "3+", label: "3 and up", floor: 3},
}

// # Computation

// computeFacets counts the filtered guides per facet value.
func computeFacets(guides []*Guide) Facets {
	facets := EmptyFacets()

	folder := newFolder()
	locations := newCounter(folder)
	specialties := newCounter(folder)
	prices := make([]int, len(priceBuckets))
	ratings := make([]int, len(ratingBuckets))

	for _, guide := range guides {
		locations.add(guide.Location)

		// A guide listing a specialty twice is counted once.
		seen := make(map[string]struct{}, len(guide.Specialties))
		for _, specialty := range guide.Specialties {
			key := specialties.keyOf(specialty)
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			specialties.add(specialty)
		}

		for i, bucket := range priceBuckets {
			if guide.PricePerHour >= bucket.lower && guide.PricePerHour < bucket.upper {
				prices[i]++
				break
			}
		}

		for i, bucket := range ratingBuckets {
			if guide.Rating >= bucket.floor {
				ratings[i]++
			}
		}
	}

	facets.Locations = locations.sorted()
	facets.Specialties = specialties.sorted()

	for i, bucket := range priceBuckets {
		if prices[i] > 0 {
			facets.PriceRanges = append(facets.PriceRanges, FacetCount{Key: bucket.key, Label: bucket.label, Count: prices[i]})
		}
	}

	for i, bucket := range ratingBuckets {
		if ratings[i] > 0 {
			facets.Ratings = append(facets.Ratings, FacetCount{Key: bucket.key, Label: bucket.label, Count: ratings[i]})
		}
	}

	return facets
}

// counter groups free-text values by slug, keeping the first spelling seen as label.
type counter struct {
	folder *folder
	order  []string
	counts map[string]*FacetCount
}

func newCounter(folder *folder) *counter {
	return &counter{folder: folder, counts: make(map[string]*FacetCount)}
}

// keyOf returns the ASCII slug of value, or its case-folded trimmed form when
// the value has no ASCII letters or digits ("Москва", "東京").
func (c *counter) keyOf(value string) string {
	if key := slug.From(value); key != "" {
		return key
	}
	return c.folder.fold(strings.Join(strings.Fields(value), " "))
}

func (c *counter) add(value string) {
	key := c.keyOf(value)
	if key == "" {
		return
	}

	if existing, ok := c.counts[key]; ok {
		existing.Count++
		return
	}

	c.counts[key] = &FacetCount{Key: key, Label: value, Count: 1}
	c.order = append(c.order, key)
}

// sorted returns counts by descending count, then ascending key.
func (c *counter) sorted() []FacetCount {
	result := make([]FacetCount, 0, len(c.order))
	for _, key := range c.order {
		result = append(result, *c.counts[key])
	}

	slices.SortStableFunc(result, func(a, b FacetCount) int {
		if byCount := cmp.Compare(b.Count, a.Count); byCount != 0 {
			return byCount
		}
		return cmp.Compare(a.Key, b.Key)
	})

	return result
}
