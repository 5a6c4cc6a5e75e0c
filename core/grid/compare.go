/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Hospadmin Authors

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    https://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package grid

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/spf13/cast"
	"golang.org/x/text/cases"
)

// Type classes in ascending sort order. Values of different classes in
// the same column are ordered by class.
const (
	classNumber = iota
	classTime
	classString
	classBool
	classOther
)

// Compare orders two raw values.
// Returns -1 if a < b, 0 if equal, 1 if a > b.
//
// Numbers compare numerically, times chronologically, strings by their
// case-folded form (ties broken by byte order), bools false before true.
// Any other type compares by its fmt representation. nil sorts after
// every other value.
func Compare(a, b any) int {
	if a == nil || b == nil {
		return compareMissing(a == nil, b == nil)
	}

	ca, cb := classOf(a), classOf(b)
	if ca != cb {
		return compareInts(ca, cb)
	}

	switch ca {
	case classNumber:
		return compareNumbers(a, b)
	case classTime:
		return compareTimes(a.(time.Time), b.(time.Time))
	case classString:
		return compareStrings(a.(string), b.(string))
	case classBool:
		return compareBools(a.(bool), b.(bool))
	default:
		return compareStrings(fmt.Sprint(a), fmt.Sprint(b))
	}
}

// classOf returns the type class of a non-nil value.
func classOf(v any) int {
	switch v.(type) {
	case int, int8, int16, int32, int64,
		uint, uint8, uint16, uint32, uint64,
		float32, float64, json.Number, time.Duration:
		return classNumber
	case time.Time:
		return classTime
	case string:
		return classString
	case bool:
		return classBool
	default:
		return classOther
	}
}

// compareNumbers compares two values of the number class. Pairs of
// signed integers compare exactly; everything else goes through float64.
func compareNumbers(a, b any) int {
	if ia, ok := asInt64(a); ok {
		if ib, ok := asInt64(b); ok {
			return compareInts(ia, ib)
		}
	}
	fa, errA := cast.ToFloat64E(a)
	fb, errB := cast.ToFloat64E(b)
	if errA != nil || errB != nil {
		return compareMissing(errA != nil, errB != nil)
	}
	return compareFloat64s(fa, fb)
}

func asInt64(v any) (int64, bool) {
	switch x := v.(type) {
	case int:
		return int64(x), true
	case int8:
		return int64(x), true
	case int16:
		return int64(x), true
	case int32:
		return int64(x), true
	case int64:
		return x, true
	case time.Duration:
		return int64(x), true
	case json.Number:
		i, err := x.Int64()
		return i, err == nil
	}
	return 0, false
}

// sequenceNumber coerces the value of the reserved sequence column.
func sequenceNumber(v any) (float64, bool) {
	if v == nil {
		return 0, false
	}
	f, err := cast.ToFloat64E(v)
	if err != nil || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}

func compareInts[T int | int64](a, b T) int {
	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// compareStrings compares case-insensitively, falling back to byte order
// so that distinct strings never compare equal.
func compareStrings(a, b string) int {
	if c := strings.Compare(fold(a), fold(b)); c != 0 {
		return c
	}
	return strings.Compare(a, b)
}

// fold returns the Unicode case-folded form of s.
// A Caser is stateful, so each call gets its own.
func fold(s string) string {
	return cases.Fold().String(s)
}

// compareTimes compares two time.Time values
func compareTimes(a, b time.Time) int {
	if a.Before(b) {
		return -1
	}
	if a.After(b) {
		return 1
	}
	return 0
}

// compareBools compares two bool values (false < true)
func compareBools(a, b bool) int {
	if a == b {
		return 0
	}
	if !a && b {
		return -1
	}
	return 1
}

// compareFloat64s compares two float64 values with NaN handling.
// NaN values are considered greater than all other values (sort to end).
func compareFloat64s(a, b float64) int {
	aNaN := math.IsNaN(a)
	bNaN := math.IsNaN(b)

	if aNaN && bNaN {
		return 0
	}
	if aNaN {
		return 1
	}
	if bNaN {
		return -1
	}

	if a < b {
		return -1
	}
	if a > b {
		return 1
	}
	return 0
}

// compareMissing orders missing values after present ones.
func compareMissing(aMissing, bMissing bool) int {
	if aMissing && bMissing {
		return 0
	}
	if aMissing {
		return 1
	}
	if bMissing {
		return -1
	}
	return 0
}
