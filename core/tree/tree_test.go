/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Hospadmin Authors
*/

package tree

import (
	"testing"

	"github.com/hospadmin/console/core/grid"
)

func beds() []grid.Fields {
	return []grid.Fields{
		{"room": "101", "ward": "North", "bed": "A"},
		{"room": "102", "ward": "South", "bed": "A"},
		{"room": "101", "ward": "North", "bed": "B"},
		{"room": "101", "ward": "East", "bed": "C"},
		{"room": "102", "ward": "South", "bed": "B"},
	}
}

func TestBuild_TwoLevels(t *testing.T) {
	tr := Build(beds(), []Level{{Key: "room", Label: "Room"}, {Key: "ward", Label: "Ward"}})

	if len(tr.Roots) != 2 {
		t.Fatalf("expected 2 rooms, got %d", len(tr.Roots))
	}
	room101 := tr.Roots[0]
	if room101.Value != "101" || room101.Count() != 3 {
		t.Errorf("unexpected first room %v with %d records", room101.Value, room101.Count())
	}
	if len(room101.Children) != 2 {
		t.Fatalf("expected 2 wards in room 101, got %d", len(room101.Children))
	}
	north := room101.Children[0]
	if north.Value != "North" || north.Count() != 2 || north.Path != "room=101/ward=North" {
		t.Errorf("unexpected ward node %+v", north)
	}
	if north.Parent != room101 || north.Depth != 1 || !north.IsLeaf() {
		t.Errorf("unexpected ward linkage depth=%d leaf=%v", north.Depth, north.IsLeaf())
	}
	if room101.Height() != 2 {
		t.Errorf("expected height 2, got %d", room101.Height())
	}
}

func TestBuild_NoLevels(t *testing.T) {
	tr := Build(beds(), nil)
	if len(tr.Roots) != 0 {
		t.Errorf("expected no roots, got %d", len(tr.Roots))
	}
}

func TestBuild_MissingField(t *testing.T) {
	records := []grid.Fields{{"room": "101"}, {"bed": "X"}}
	tr := Build(records, []Level{{Key: "room"}})
	if len(tr.Roots) != 2 || tr.Roots[1].Path != "room=" {
		t.Errorf("expected empty-value group, got %+v", tr.Roots)
	}
}

func TestFlatten(t *testing.T) {
	tr := Build(beds(), []Level{{Key: "room"}, {Key: "ward"}})

	lines := tr.Flatten(nil)
	if len(lines) != 2 {
		t.Fatalf("collapsed tree: expected 2 lines, got %d", len(lines))
	}

	lines = tr.Flatten(map[string]bool{"room=101": true})
	if len(lines) != 4 {
		t.Fatalf("expanded 101: expected 4 lines, got %d", len(lines))
	}
	want := []string{"room=101", "room=101/ward=North", "room=101/ward=East", "room=102"}
	for i, path := range want {
		if lines[i].Node.Path != path {
			t.Errorf("line %d: expected %s, got %s", i, path, lines[i].Node.Path)
		}
	}
	if !lines[0].Expanded || lines[1].Expanded {
		t.Error("unexpected expansion flags")
	}
}

func TestFind(t *testing.T) {
	tr := Build(beds(), []Level{{Key: "room"}, {Key: "ward"}})
	if n := tr.Find("room=102/ward=South"); n == nil || n.Count() != 2 {
		t.Errorf("expected South ward with 2 beds, got %+v", n)
	}
	if n := tr.Find("room=103"); n != nil {
		t.Errorf("expected nil, got %+v", n)
	}
}
