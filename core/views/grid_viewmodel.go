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
	"regexp"
	"strings"

	"github.com/google/safehtml"
	"github.com/hospadmin/console/core/grid"
	"github.com/hospadmin/console/core/query"
	"github.com/hospadmin/console/core/screens"
)

// GridViewModel contains a screen's grid formatted for template consumption
type GridViewModel struct {
	Title             string
	Description       string
	Screen            string
	SearchPlaceholder string

	Headers    []HeaderInfo
	Rows       []RowInfo
	AllColumns []ColumnInfo // Column chooser entries, in declaration order
	Filters    []FilterInfo // Advanced search fields, one per visible column

	// Search form state
	Search         string
	FormAction     safehtml.URL
	SortKey        string
	SortDir        string
	ColumnsParam   string
	HasFilters     bool
	ClearURL       safehtml.URL // Removes the search term and every filter
	ClearSortURL   safehtml.URL
	CurrentURL     safehtml.URL
	TreeURL        safehtml.URL
	HasTree        bool
	ErrorMessage   string // Set when the records could not be loaded
	ContainerStyle safehtml.Style

	TotalRows     int // Number of records before filtering
	DisplayedRows int
}

// HeaderInfo describes one visible column header
type HeaderInfo struct {
	Key       string
	Title     string
	Sortable  bool
	Sorted    bool
	Indicator string       // "▲" ascending, "▼" descending, empty when not sorted
	AriaSort  string       // Value of the aria-sort attribute
	ToggleURL safehtml.URL // URL applying the next sort state of this column
}

// RowInfo is one displayed row
type RowInfo struct {
	Index int
	ID    string
	Cells []CellInfo
}

// CellInfo is the content of one cell. Exactly one of Segments, HTML or
// Text is used by the templates, in that order.
type CellInfo struct {
	Text     string
	Segments []grid.Segment
	HTML     safehtml.HTML
	HasHTML  bool
}

// ColumnInfo contains information about a column for the column chooser
type ColumnInfo struct {
	Key             string
	Header          string
	IsVisible       bool
	ToggleColumnURL safehtml.URL // URL to toggle column visibility (preserves all query params)
}

// FilterInfo is one advanced search field
type FilterInfo struct {
	Key    string
	Header string
	Name   safehtml.Identifier // Form field name
	Value  string
}

// htmlFragment is implemented by render fragments that carry markup.
type htmlFragment interface {
	HTML() safehtml.HTML
}

// NewGrid builds the grid of screen s over records, applying the sort,
// search term, visible columns and filters of q.
func NewGrid(s *screens.Screen, records []grid.Fields, q *query.Query) (*grid.Grid[grid.Fields], error) {
	return grid.New(screens.Columns(s, q.Columns), records,
		grid.WithSort(q.Sort),
		grid.WithSearchTerm(q.Search),
		grid.WithColumnFilters(q.Filters),
		grid.WithHeights(s.MinHeight, s.MaxHeight),
	)
}

// BuildGridViewModel creates a GridViewModel from a built grid view
func BuildGridViewModel(s *screens.Screen, view grid.View[grid.Fields], q *query.Query) GridViewModel {
	// Toggle URLs must carry the effective visible columns
	cq := q.WithDefaultColumns(s.DefaultColumns())
	cq.Sort = view.Sort

	vm := GridViewModel{
		Title:             s.Title,
		Description:       s.Description,
		Screen:            s.Name,
		SearchPlaceholder: s.SearchPlaceholder,
		Headers:           make([]HeaderInfo, 0, len(view.Headers)),
		Rows:              make([]RowInfo, 0, len(view.Rows)),
		Search:            view.SearchTerm,
		FormAction:        safehtml.URLSanitized(q.Path),
		HasFilters:        q.HasFilters(),
		ClearURL:          cq.WithoutFilters(),
		ClearSortURL:      cq.WithoutSort(),
		CurrentURL:        cq.ToSafeURL(),
		HasTree:           s.HasTree(),
		ContainerStyle:    ContainerStyle(view.MinHeight, view.MaxHeight),
		TotalRows:         view.TotalRows,
		DisplayedRows:     len(view.Rows),
	}
	if !view.Sort.IsZero() {
		vm.SortKey = view.Sort.OrderBy
		vm.SortDir = view.Sort.Direction.String()
	}
	if len(q.Columns) > 0 {
		vm.ColumnsParam = strings.Join(q.Columns, ",")
	}
	if s.HasTree() {
		tq := q.Clone()
		tq.Path = q.Path + "/tree"
		vm.TreeURL = tq.ToSafeURL()
	}

	for _, h := range view.Headers {
		info := HeaderInfo{
			Key:      h.Key,
			Title:    h.Title,
			Sortable: h.Sortable,
			Sorted:   h.Sorted,
			AriaSort: "none",
		}
		if h.Sorted {
			info.Indicator, info.AriaSort = "▲", "ascending"
			if h.Direction == grid.Descending {
				info.Indicator, info.AriaSort = "▼", "descending"
			}
		}
		if h.Sortable {
			info.ToggleURL = cq.WithSortToggled(h.Key)
		}
		vm.Headers = append(vm.Headers, info)
	}

	for _, r := range view.Rows {
		row := RowInfo{Index: r.Index, ID: r.Record.ID(), Cells: make([]CellInfo, len(r.Cells))}
		for i, c := range r.Cells {
			row.Cells[i] = cellInfo(c)
		}
		vm.Rows = append(vm.Rows, row)
	}

	visible := make(map[string]bool, len(view.Headers))
	for _, h := range view.Headers {
		visible[h.Key] = true
	}
	for _, c := range s.Columns {
		header := c.Header
		if header == "" {
			header = c.Key
		}
		vm.AllColumns = append(vm.AllColumns, ColumnInfo{
			Key:             c.Key,
			Header:          header,
			IsVisible:       visible[c.Key],
			ToggleColumnURL: cq.WithColumnToggled(c.Key),
		})
		if visible[c.Key] && c.Render == "" && formFieldKey.MatchString(c.Key) {
			vm.Filters = append(vm.Filters, FilterInfo{
				Key:    c.Key,
				Header: header,
				Name:   safehtml.IdentifierFromConstantPrefix(query.FormFilterPrefix, c.Key),
				Value:  q.Filters[c.Key],
			})
		}
	}

	return vm
}

// formFieldKey matches the column keys usable in a form field name.
var formFieldKey = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)

func cellInfo(c grid.Cell) CellInfo {
	switch c.Kind {
	case grid.CellHighlighted:
		return CellInfo{Text: c.Text, Segments: c.Segments}
	case grid.CellRendered:
		if f, ok := c.Fragment.(htmlFragment); ok {
			return CellInfo{Text: c.Text, HTML: f.HTML(), HasHTML: true}
		}
	}
	return CellInfo{Text: c.Text}
}
