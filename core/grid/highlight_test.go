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
	"slices"
	"testing"
)

func TestHighlight(t *testing.T) {
	tests := []struct {
		name string
		text string
		term string
		want []Segment
	}{
		{
			name: "whole cell",
			text: "Amy",
			term: "Amy",
			want: []Segment{{Text: "Amy", Match: true}},
		},
		{
			name: "case insensitive",
			text: "Amy",
			term: "am",
			want: []Segment{{Text: "Am", Match: true}, {Text: "y"}},
		},
		{
			name: "multiple matches",
			text: "Banana",
			term: "an",
			want: []Segment{{Text: "B"}, {Text: "an", Match: true}, {Text: "an", Match: true}, {Text: "a"}},
		},
		{
			name: "no match",
			text: "Ward",
			term: "icu",
			want: []Segment{{Text: "Ward"}},
		},
		{
			name: "regex metacharacters are literal",
			text: "Room (A.1)",
			term: "(a.1)",
			want: []Segment{{Text: "Room "}, {Text: "(A.1)", Match: true}},
		},
		{
			name: "empty term",
			text: "Ward",
			term: "",
			want: []Segment{{Text: "Ward"}},
		},
		{
			name: "empty text",
			text: "",
			term: "x",
			want: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Highlight(tt.text, tt.term)
			if !slices.Equal(got, tt.want) {
				t.Errorf("Highlight(%q, %q) = %v, want %v", tt.text, tt.term, got, tt.want)
			}
		})
	}
}

func TestResolveCell_ExactTermIsOneSegment(t *testing.T) {
	col := Column[Fields]{Key: "name", Visible: true}
	cell := ResolveCell(col, Fields{"name": "Amy"}, 0, 0, "Amy")
	if cell.Kind != CellHighlighted {
		t.Fatalf("expected highlighted cell, got %d", cell.Kind)
	}
	if len(cell.Segments) != 1 || !cell.Segments[0].Match || cell.Segments[0].Text != "Amy" {
		t.Errorf("expected one highlighted segment spanning the text, got %v", cell.Segments)
	}
}
