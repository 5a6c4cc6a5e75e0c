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
	"errors"
	"fmt"
	"maps"
)

var (
	// ErrNoColumns is returned when a grid is declared without columns.
	ErrNoColumns = errors.New("grid: at least one column is required")
	// ErrDuplicateKey is returned when two columns without a render
	// override share a key.
	ErrDuplicateKey = errors.New("grid: duplicate column key")
)

// Option configures a Grid at construction.
type Option func(*config)

type config struct {
	sort      SortState
	term      string
	filters   map[string]string
	minHeight string
	maxHeight string
}

// WithSearchTerm sets the initial search term.
func WithSearchTerm(term string) Option {
	return func(c *config) { c.term = term }
}

// WithSort sets the initial sort state. States naming an unknown or
// non-sortable column are ignored.
func WithSort(state SortState) Option {
	return func(c *config) { c.sort = state }
}

// WithColumnFilters sets advanced-search filters keyed by column key.
func WithColumnFilters(filters map[string]string) Option {
	return func(c *config) { c.filters = cloneFilters(filters) }
}

// WithHeights sets the display bounds of the scroll container. They are
// passed through to the view and do not affect rows.
func WithHeights(minHeight, maxHeight string) Option {
	return func(c *config) {
		c.minHeight = minHeight
		c.maxHeight = maxHeight
	}
}

// Grid is a sortable, searchable view over a slice of records.
//
// Sort state is private to the Grid and starts unsorted unless WithSort
// is given. Derived row slices are memoized against the sort state, the
// search term and the column filters. A Grid is not safe for concurrent
// use.
type Grid[R Record] struct {
	columns []Column[R]
	visible []Column[R]
	data    []R

	sort      SortState
	term      string
	filters   map[string]string
	minHeight string
	maxHeight string

	sortedValid bool
	sortedFor   SortState
	sorted      []R

	rowsValid bool
	rows      []R
}

// New creates a grid over data. The column slice must be non-empty and
// keys must be unique among columns that have no Render override.
func New[R Record](columns []Column[R], data []R, opts ...Option) (*Grid[R], error) {
	if len(columns) == 0 {
		return nil, ErrNoColumns
	}
	seen := make(map[string]bool, len(columns))
	for _, c := range columns {
		if c.Render != nil {
			continue
		}
		if seen[c.Key] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateKey, c.Key)
		}
		seen[c.Key] = true
	}

	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	g := &Grid[R]{
		columns:   columns,
		visible:   visibleColumns(columns),
		data:      data,
		term:      cfg.term,
		filters:   cfg.filters,
		minHeight: cfg.minHeight,
		maxHeight: cfg.maxHeight,
	}
	g.SetSort(cfg.sort)
	return g, nil
}

// Columns returns all column declarations, visible or not.
func (g *Grid[R]) Columns() []Column[R] {
	return g.columns
}

// VisibleColumns returns the visible columns in declaration order.
func (g *Grid[R]) VisibleColumns() []Column[R] {
	return g.visible
}

// Data returns the records the grid was created with.
func (g *Grid[R]) Data() []R {
	return g.data
}

// Sort returns the current sort state.
func (g *Grid[R]) Sort() SortState {
	return g.sort
}

// SearchTerm returns the current search term.
func (g *Grid[R]) SearchTerm() string {
	return g.term
}

// ColumnFilters returns a copy of the advanced-search filters.
func (g *Grid[R]) ColumnFilters() map[string]string {
	return maps.Clone(g.filters)
}

// sortableColumn returns the first sortable column declared with key.
func (g *Grid[R]) sortableColumn(key string) (Column[R], bool) {
	for _, c := range g.columns {
		if c.Key == key && c.Sortable {
			return c, true
		}
	}
	return Column[R]{}, false
}

// ToggleSort activates the header of column key. It reports false and
// leaves the state alone when key names no sortable column.
func (g *Grid[R]) ToggleSort(key string) bool {
	if _, ok := g.sortableColumn(key); !ok {
		return false
	}
	g.setSort(g.sort.Toggle(key))
	return true
}

// SetSort replaces the sort state. A state naming an unknown or
// non-sortable column resets the grid to unsorted and reports false.
func (g *Grid[R]) SetSort(state SortState) bool {
	if state.IsZero() {
		g.setSort(SortState{})
		return true
	}
	if _, ok := g.sortableColumn(state.OrderBy); !ok {
		g.setSort(SortState{})
		return false
	}
	g.setSort(state)
	return true
}

func (g *Grid[R]) setSort(state SortState) {
	if state != g.sort {
		g.rowsValid = false
	}
	g.sort = state
}

// SetSearchTerm replaces the search term.
func (g *Grid[R]) SetSearchTerm(term string) {
	if term != g.term {
		g.rowsValid = false
	}
	g.term = term
}

// SetColumnFilters replaces the advanced-search filters.
func (g *Grid[R]) SetColumnFilters(filters map[string]string) {
	g.filters = cloneFilters(filters)
	g.rowsValid = false
}

// sortedRows returns data ordered by the current sort state.
func (g *Grid[R]) sortedRows() []R {
	if g.sortedValid && g.sortedFor == g.sort {
		return g.sorted
	}
	g.sorted = SortRecords(g.data, g.sort)
	g.sortedFor = g.sort
	g.sortedValid = true
	return g.sorted
}

// Rows returns the records to display: sorted first, then filtered by
// the search term, then by the column filters. The returned slice must
// not be modified.
func (g *Grid[R]) Rows() []R {
	if g.rowsValid {
		return g.rows
	}
	rows := g.sortedRows()
	rows = FilterRecords(rows, g.columns, g.term)
	rows = FilterByColumns(rows, g.columns, g.filters)
	g.rows = rows
	g.rowsValid = true
	return g.rows
}

// Header describes one visible column header.
type Header struct {
	Key       string
	Title     string
	Sortable  bool
	Sorted    bool
	Direction Direction
}

// Row is one displayed record with its resolved cells.
type Row[R Record] struct {
	// Index is the position of the row among the displayed rows.
	Index  int
	Record R
	Cells  []Cell
}

// View is a fully resolved grid, ready for a renderer.
type View[R Record] struct {
	Headers    []Header
	Rows       []Row[R]
	Sort       SortState
	SearchTerm string
	// TotalRows is the number of records before filtering.
	TotalRows int
	MinHeight string
	MaxHeight string
}

// Build resolves every visible cell of every displayed row.
func (g *Grid[R]) Build() View[R] {
	view := View[R]{
		Headers:    make([]Header, 0, len(g.visible)),
		Sort:       g.sort,
		SearchTerm: g.term,
		TotalRows:  len(g.data),
		MinHeight:  g.minHeight,
		MaxHeight:  g.maxHeight,
	}

	for _, c := range g.visible {
		h := Header{Key: c.Key, Title: c.Header, Sortable: c.Sortable}
		if c.Sortable && g.sort.OrderBy == c.Key {
			h.Sorted = true
			h.Direction = g.sort.Direction
		}
		view.Headers = append(view.Headers, h)
	}

	hl := newHighlighter(g.term)
	rows := g.Rows()
	view.Rows = make([]Row[R], 0, len(rows))
	for i, record := range rows {
		cells := make([]Cell, len(g.visible))
		for j, c := range g.visible {
			cells[j] = resolveCell(c, record, i, j, hl)
		}
		view.Rows = append(view.Rows, Row[R]{Index: i, Record: record, Cells: cells})
	}
	return view
}
