// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package slug generates ASCII URL slugs from arbitrary Unicode strings.
//
// # Usage
//
// Slugs key the search facets, so "Zürich, Switzerland" and "zurich switzerland"
// fall into the same "zurich-switzerland" bucket.
package slug

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// From converts an arbitrary Unicode string into a URL-safe ASCII slug.
//
// # Transformation Pipeline
//
//  1. Decompose (NFD) and drop combining marks: "é" becomes "e".
//  2. Lowercase and keep ASCII letters and digits.
//  3. Every other run of characters becomes a single hyphen, never leading or trailing.
//
// Letters with no ASCII base (e.g. "ß", kana) act as separators.
func From(s string) string {
	stripMarks := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)))
	decomposed, _, err := transform.String(stripMarks, s)
	if err != nil {
		decomposed = s
	}

	var builder strings.Builder
	builder.Grow(len(decomposed))

	pendingHyphen := false
	for _, r := range decomposed {
		r = unicode.ToLower(r)
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			if pendingHyphen && builder.Len() > 0 {
				builder.WriteByte('-')
			}
			builder.WriteRune(r)
			pendingHyphen = false
			continue
		}
		pendingHyphen = true
	}

	return builder.String()
}
