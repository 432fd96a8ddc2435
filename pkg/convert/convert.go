// Copyright (c) 2026 Voyara. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package convert provides fault-tolerant conversions for query parameters.

Malformed input never fails a request: it resolves to a default instead.
Do not use this package where a malformed value must be reported to the client.
*/
package convert

import (
	"math"
	"strconv"
)

// ToBool parses a boolean string ("true", "1", "false", "0").
// It returns false on empty string or parse error.
func ToBool(s string) bool {
	if s == "" {
		return false
	}

	v, _ := strconv.ParseBool(s)
	return v
}

// ToFloat64D converts a string to a float64, returning def if parsing fails
// or the string is empty. NaN and infinities are treated as parse failures.
func ToFloat64D(s string, def float64) float64 {
	if s == "" {
		return def
	}

	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}
