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
	"math"
	"testing"
	"time"
)

func TestCompare(t *testing.T) {
	t1 := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)

	tests := []struct {
		name string
		a, b any
		want int
	}{
		{"ints", 1, 2, -1},
		{"int vs float", 2, 1.5, 1},
		{"json number", json.Number("10"), 9, 1},
		{"large ints exact", int64(1<<62 + 1), int64(1 << 62), 1},
		{"nan last", math.NaN(), 1.0, 1},
		{"times", t1, t2, -1},
		{"strings ignore case", "apple", "Banana", -1},
		{"strings tie broken by bytes", "a", "A", 1},
		{"equal strings", "x", "x", 0},
		{"bools", false, true, -1},
		{"number before string", 5, "5", -1},
		{"string before bool", "z", false, -1},
		{"nil last", nil, 0, 1},
		{"both nil", nil, nil, 0},
		{"other types by fmt", []int{1}, []int{2}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestRawText(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"text", "text"},
		{42, "42"},
		{3.5, "3.5"},
		{true, "true"},
		{time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC), "2024-01-02 03:04:05"},
		{time.Time{}, ""},
	}
	for _, tt := range tests {
		if got := RawText(tt.in); got != tt.want {
			t.Errorf("RawText(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
