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
	"math"
	"slices"
	"strings"
)

// SequenceKey is the reserved key of the row sequence-number column.
// Its values are compared numerically even when stored as strings.
const SequenceKey = "seq"

// Direction is a sort direction.
type Direction int

const (
	Ascending Direction = iota
	Descending
)

// String returns "asc" or "desc".
func (d Direction) String() string {
	if d == Descending {
		return "desc"
	}
	return "asc"
}

// ParseDirection parses "desc" (any case) as Descending and everything
// else as Ascending.
func ParseDirection(s string) Direction {
	if strings.EqualFold(s, "desc") {
		return Descending
	}
	return Ascending
}

// SortState is the column a grid is ordered by and in which direction.
// The zero value means unsorted.
type SortState struct {
	OrderBy   string
	Direction Direction
}

// IsZero reports whether no sort is applied.
func (s SortState) IsZero() bool {
	return s.OrderBy == ""
}

// Toggle returns the state after the header of column key is activated:
// the same column flips direction, a different column starts ascending.
func (s SortState) Toggle(key string) SortState {
	if s.OrderBy == key {
		if s.Direction == Ascending {
			return SortState{OrderBy: key, Direction: Descending}
		}
		return SortState{OrderBy: key, Direction: Ascending}
	}
	return SortState{OrderBy: key, Direction: Ascending}
}

// SortRecords returns a copy of data ordered by state. The sort is stable
// and always starts from data itself, so it is a pure function of
// (data, state.OrderBy, state.Direction).
//
// Missing values sort last in both directions.
func SortRecords[R Record](data []R, state SortState) []R {
	out := slices.Clone(data)
	if out == nil {
		out = []R{}
	}
	if state.IsZero() || len(out) < 2 {
		return out
	}

	key := state.OrderBy
	descending := state.Direction == Descending

	var cmp func(a, b any) (int, bool)
	if key == SequenceKey {
		cmp = compareSequence
	} else {
		cmp = comparePresent
	}

	slices.SortStableFunc(out, func(a, b R) int {
		va, _ := a.Field(key)
		vb, _ := b.Field(key)
		c, present := cmp(va, vb)
		if !present {
			// Missing values are not subject to the direction.
			return c
		}
		if descending {
			return -c
		}
		return c
	})
	return out
}

// comparePresent compares two raw values. The boolean is false when at
// least one of them is missing, in which case the result must not be
// reversed. NaN counts as missing.
func comparePresent(a, b any) (int, bool) {
	missingA, missingB := isMissing(a), isMissing(b)
	if missingA || missingB {
		return compareMissing(missingA, missingB), false
	}
	return Compare(a, b), true
}

func isMissing(v any) bool {
	switch x := v.(type) {
	case nil:
		return true
	case float64:
		return math.IsNaN(x)
	case float32:
		return math.IsNaN(float64(x))
	}
	return false
}

// compareSequence compares sequence numbers numerically. Values that are
// not numbers are treated as missing.
func compareSequence(a, b any) (int, bool) {
	fa, okA := sequenceNumber(a)
	fb, okB := sequenceNumber(b)
	if !okA || !okB {
		return compareMissing(!okA, !okB), false
	}
	return compareFloat64s(fa, fb), true
}
