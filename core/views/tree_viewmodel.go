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

package views

import (
	"strings"

	"github.com/google/safehtml"
	"github.com/hospadmin/console/core/grid"
	"github.com/hospadmin/console/core/query"
	"github.com/hospadmin/console/core/screens"
	"github.com/hospadmin/console/core/tree"
)

// TreeViewModel contains a screen's tree view formatted for template consumption
type TreeViewModel struct {
	Title          string
	Screen         string
	Levels         []string // Level labels, outermost first
	Lines          []TreeLine
	Search         string
	FormAction     safehtml.URL
	GridURL        safehtml.URL
	ErrorMessage   string
	ContainerStyle safehtml.Style
	TotalRows      int // Number of records before filtering
	MatchedRows    int
}

// TreeLine is one visible node of the tree
type TreeLine struct {
	Label     string
	Segments  []grid.Segment // Node value, with search matches marked
	Depth     int
	Count     int
	Leaf      bool
	Expanded  bool
	ToggleURL safehtml.URL
	Records   []string // Record summaries of an expanded leaf
}

// BuildTreeViewModel groups the records of s that match q by the
// screen's tree levels. Records are sorted and filtered exactly like the
// grid of the same URL.
func BuildTreeViewModel(s *screens.Screen, records []grid.Fields, q *query.Query) (TreeViewModel, error) {
	vm := TreeViewModel{
		Title:          s.Title,
		Screen:         s.Name,
		Search:         q.Search,
		FormAction:     safehtml.URLSanitized(q.Path),
		ContainerStyle: ContainerStyle(s.MinHeight, s.MaxHeight),
		TotalRows:      len(records),
	}
	gq := q.Clone()
	gq.Path = strings.TrimSuffix(q.Path, "/tree")
	gq.Expanded = nil
	vm.GridURL = gq.ToSafeURL()

	g, err := NewGrid(s, records, q)
	if err != nil {
		return vm, err
	}
	rows := g.Rows()
	vm.MatchedRows = len(rows)

	levels := s.Levels()
	for _, l := range levels {
		label := l.Label
		if label == "" {
			label = l.Key
		}
		vm.Levels = append(vm.Levels, label)
	}

	t := tree.Build(rows, levels)
	visible := g.VisibleColumns()
	for _, line := range t.Flatten(q.ExpandedSet()) {
		n := line.Node
		label := n.Label
		if label == "" {
			label = n.Key
		}
		tl := TreeLine{
			Label:     label,
			Segments:  grid.Highlight(grid.RawText(n.Value), q.Search),
			Depth:     n.Depth,
			Count:     n.Count(),
			Leaf:      n.IsLeaf(),
			Expanded:  line.Expanded,
			ToggleURL: q.WithExpandedToggled(n.Path),
		}
		if tl.Leaf && q.IsPathExpanded(n.Path) {
			tl.Expanded = true
			for i, r := range n.Records {
				tl.Records = append(tl.Records, summary(visible, r, i, q.Search))
			}
		}
		vm.Lines = append(vm.Lines, tl)
	}
	return vm, nil
}

func summary(columns []grid.Column[grid.Fields], record grid.Fields, rowIndex int, term string) string {
	parts := make([]string, 0, len(columns))
	for j, c := range columns {
		if text := grid.ResolveCell(c, record, rowIndex, j, term).Text; text != "" {
			parts = append(parts, text)
		}
	}
	return strings.Join(parts, " · ")
}
