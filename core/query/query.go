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

package query

import (
	"maps"
	"net/url"
	"slices"
	"strings"

	"github.com/google/safehtml"
	"github.com/hospadmin/console/core/grid"
)

// FormFilterPrefix is the prefix of advanced search form field names.
const FormFilterPrefix = "filter"

// Query represents the parsed state of a screen URL
type Query struct {
	// Base path (e.g., "/screens/users")
	Path string

	Screen   string            // The screen being viewed
	Sort     grid.SortState    // Current sort (zero when unsorted)
	Search   string            // Search term
	Columns  []string          // Visible column override (empty = screen defaults)
	Filters  map[string]string // Advanced search (columnKey -> expression)
	Expanded []string          // Expanded tree paths
}

// NewQuery creates a Query from a URL
func NewQuery(u *url.URL) *Query {
	state := &Query{
		Path:    u.Path,
		Filters: make(map[string]string),
	}

	q := u.Query()

	state.Screen = q.Get("screen")
	state.Search = q.Get("q")

	if key := q.Get("sort"); key != "" {
		state.Sort = grid.SortState{OrderBy: key, Direction: grid.ParseDirection(q.Get("dir"))}
	}

	// Extract columns parameter (format: col1,col2,col3)
	state.Columns = []string{}
	if columnsStr := q.Get("columns"); columnsStr != "" {
		for _, col := range strings.Split(columnsStr, ",") {
			if col != "" && !slices.Contains(state.Columns, col) {
				state.Columns = append(state.Columns, col)
			}
		}
	}

	// Expanded paths may contain commas, so each one is its own parameter
	state.Expanded = []string{}
	for _, path := range q["expanded"] {
		if path != "" && !slices.Contains(state.Expanded, path) {
			state.Expanded = append(state.Expanded, path)
		}
	}

	// Extract filter parameters (format: filter:columnKey=expression).
	// HTML forms submit them as filter-columnKey since field names must be
	// identifiers.
	for key, values := range q {
		if len(values) == 0 || values[0] == "" {
			continue
		}
		for _, prefix := range []string{"filter:", FormFilterPrefix + "-"} {
			if strings.HasPrefix(key, prefix) {
				state.Filters[strings.TrimPrefix(key, prefix)] = values[0]
			}
		}
	}

	return state
}

// Clone creates a deep copy of the Query
func (s *Query) Clone() *Query {
	return &Query{
		Path:     s.Path,
		Screen:   s.Screen,
		Sort:     s.Sort,
		Search:   s.Search,
		Columns:  slices.Clone(s.Columns),
		Filters:  maps.Clone(s.Filters),
		Expanded: slices.Clone(s.Expanded),
	}
}

// WithDefaultColumns returns a copy whose Columns is defaults when no
// override is present in the URL.
func (s *Query) WithDefaultColumns(defaults []string) *Query {
	clone := s.Clone()
	if len(clone.Columns) == 0 {
		clone.Columns = slices.Clone(defaults)
	}
	return clone
}

// WithSortToggled returns a URL with the sort toggled on column: the
// sorted column flips direction, any other column starts ascending
func (s *Query) WithSortToggled(column string) safehtml.URL {
	newState := s.Clone()
	newState.Sort = s.Sort.Toggle(column)
	return newState.ToSafeURL()
}

// WithoutSort returns a URL with the sort removed
func (s *Query) WithoutSort() safehtml.URL {
	newState := s.Clone()
	newState.Sort = grid.SortState{}
	return newState.ToSafeURL()
}

// WithColumnToggled returns a URL with the column toggled (added if not present, removed if present)
func (s *Query) WithColumnToggled(column string) safehtml.URL {
	newState := s.Clone()
	if i := slices.Index(newState.Columns, column); i >= 0 {
		newState.Columns = slices.Delete(newState.Columns, i, i+1)
	} else {
		newState.Columns = append(newState.Columns, column)
	}
	return newState.ToSafeURL()
}

// WithSearch returns a URL with the search term replaced
func (s *Query) WithSearch(term string) safehtml.URL {
	newState := s.Clone()
	newState.Search = term
	return newState.ToSafeURL()
}

// WithFilter returns a URL with the advanced search expression of column
// replaced. An empty expression removes the filter.
func (s *Query) WithFilter(column, expression string) safehtml.URL {
	newState := s.Clone()
	if expression == "" {
		delete(newState.Filters, column)
	} else {
		newState.Filters[column] = expression
	}
	return newState.ToSafeURL()
}

// WithoutFilters returns a URL with every advanced search filter and the
// search term removed
func (s *Query) WithoutFilters() safehtml.URL {
	newState := s.Clone()
	newState.Filters = make(map[string]string)
	newState.Search = ""
	return newState.ToSafeURL()
}

// WithExpandedToggled returns a URL with the expanded path toggled
func (s *Query) WithExpandedToggled(path string) safehtml.URL {
	newState := s.Clone()
	if i := slices.Index(newState.Expanded, path); i >= 0 {
		newState.Expanded = slices.Delete(newState.Expanded, i, i+1)
	} else {
		newState.Expanded = append(newState.Expanded, path)
	}
	return newState.ToSafeURL()
}

// ToURL converts the Query back to a URL string
func (s *Query) ToURL() string {
	u := &url.URL{
		Path: s.Path,
	}

	q := url.Values{}
	if s.Screen != "" {
		q.Set("screen", s.Screen)
	}
	if !s.Sort.IsZero() {
		q.Set("sort", s.Sort.OrderBy)
		q.Set("dir", s.Sort.Direction.String())
	}
	if s.Search != "" {
		q.Set("q", s.Search)
	}
	if len(s.Columns) > 0 {
		q.Set("columns", strings.Join(s.Columns, ","))
	}
	for _, path := range s.Expanded {
		q.Add("expanded", path)
	}
	for colName, filterValue := range s.Filters {
		if filterValue != "" {
			q.Set("filter:"+colName, filterValue)
		}
	}

	u.RawQuery = q.Encode()
	return u.String()
}

// ToSafeURL converts the Query to a safehtml.URL
func (s *Query) ToSafeURL() safehtml.URL {
	return safehtml.URLSanitized(s.ToURL())
}

// IsColumnVisible checks if a column is in the visible columns list
func (s *Query) IsColumnVisible(column string) bool {
	return slices.Contains(s.Columns, column)
}

// IsPathExpanded checks if a path is in the expanded list
func (s *Query) IsPathExpanded(path string) bool {
	return slices.Contains(s.Expanded, path)
}

// ExpandedSet returns the expanded paths as a set
func (s *Query) ExpandedSet() map[string]bool {
	set := make(map[string]bool, len(s.Expanded))
	for _, path := range s.Expanded {
		set[path] = true
	}
	return set
}

// HasFilters reports whether a search term or any advanced filter is set
func (s *Query) HasFilters() bool {
	return s.Search != "" || len(s.Filters) > 0
}
