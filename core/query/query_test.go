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
	"net/url"
	"slices"
	"testing"

	"github.com/hospadmin/console/core/grid"
)

func parse(t *testing.T, raw string) *Query {
	t.Helper()
	u, err := url.Parse(raw)
	if err != nil {
		t.Fatalf("Failed to parse %q: %v", raw, err)
	}
	return NewQuery(u)
}

func TestNewQuery(t *testing.T) {
	q := parse(t, "/screens/users?sort=name&dir=desc&q=bo&columns=name,email,name&filter:role=%27admin%27&expanded=room%3D101&expanded=room%3D102")

	if q.Path != "/screens/users" {
		t.Errorf("Expected path /screens/users, got %s", q.Path)
	}
	if q.Sort != (grid.SortState{OrderBy: "name", Direction: grid.Descending}) {
		t.Errorf("Expected name desc, got %+v", q.Sort)
	}
	if q.Search != "bo" {
		t.Errorf("Expected search bo, got %q", q.Search)
	}
	if !slices.Equal(q.Columns, []string{"name", "email"}) {
		t.Errorf("Expected deduplicated columns, got %v", q.Columns)
	}
	if q.Filters["role"] != "'admin'" {
		t.Errorf("Expected role filter, got %v", q.Filters)
	}
	if !slices.Equal(q.Expanded, []string{"room=101", "room=102"}) {
		t.Errorf("Expected two expanded paths, got %v", q.Expanded)
	}
}

func TestNewQuery_Empty(t *testing.T) {
	q := parse(t, "/screens/users")
	if !q.Sort.IsZero() || q.Search != "" || len(q.Columns) != 0 || len(q.Filters) != 0 || q.HasFilters() {
		t.Errorf("Expected empty state, got %+v", q)
	}
}

func TestWithSortToggled(t *testing.T) {
	q := parse(t, "/screens/users")

	step1 := parse(t, q.WithSortToggled("name").String())
	if step1.Sort != (grid.SortState{OrderBy: "name", Direction: grid.Ascending}) {
		t.Fatalf("Expected name asc, got %+v", step1.Sort)
	}

	step2 := parse(t, step1.WithSortToggled("name").String())
	if step2.Sort != (grid.SortState{OrderBy: "name", Direction: grid.Descending}) {
		t.Fatalf("Expected name desc, got %+v", step2.Sort)
	}

	step3 := parse(t, step2.WithSortToggled("email").String())
	if step3.Sort != (grid.SortState{OrderBy: "email", Direction: grid.Ascending}) {
		t.Fatalf("Expected email asc, got %+v", step3.Sort)
	}

	cleared := parse(t, step3.WithoutSort().String())
	if !cleared.Sort.IsZero() {
		t.Errorf("Expected no sort, got %+v", cleared.Sort)
	}
}

func TestWithColumnToggled(t *testing.T) {
	q := parse(t, "/screens/users").WithDefaultColumns([]string{"name", "email"})

	hidden := parse(t, q.WithColumnToggled("email").String())
	if !slices.Equal(hidden.Columns, []string{"name"}) {
		t.Errorf("Expected [name], got %v", hidden.Columns)
	}

	shown := parse(t, hidden.WithColumnToggled("role").String())
	if !slices.Equal(shown.Columns, []string{"name", "role"}) {
		t.Errorf("Expected [name role], got %v", shown.Columns)
	}

	if len(q.Columns) != 2 {
		t.Errorf("Toggle must not modify the receiver, got %v", q.Columns)
	}
}

func TestWithSearchAndFilters(t *testing.T) {
	q := parse(t, "/screens/users?sort=name")

	searched := parse(t, q.WithSearch("amy").String())
	if searched.Search != "amy" || searched.Sort.OrderBy != "name" {
		t.Errorf("Expected search to keep sort, got %+v", searched)
	}

	filtered := parse(t, searched.WithFilter("role", "admin|nurse").String())
	if filtered.Filters["role"] != "admin|nurse" {
		t.Errorf("Expected role filter, got %v", filtered.Filters)
	}

	removed := parse(t, filtered.WithFilter("role", "").String())
	if _, ok := removed.Filters["role"]; ok {
		t.Errorf("Expected role filter removed, got %v", removed.Filters)
	}

	cleared := parse(t, filtered.WithoutFilters().String())
	if cleared.HasFilters() {
		t.Errorf("Expected no filters, got %+v", cleared)
	}
	if cleared.Sort.OrderBy != "name" {
		t.Errorf("Expected sort kept, got %+v", cleared.Sort)
	}
}

func TestWithExpandedToggled(t *testing.T) {
	q := parse(t, "/screens/beds/tree")

	opened := parse(t, q.WithExpandedToggled("room=101").String())
	if !opened.IsPathExpanded("room=101") {
		t.Fatalf("Expected room=101 expanded, got %v", opened.Expanded)
	}
	closed := parse(t, opened.WithExpandedToggled("room=101").String())
	if closed.IsPathExpanded("room=101") {
		t.Errorf("Expected room=101 collapsed, got %v", closed.Expanded)
	}
}

func TestNewQuery_FormFilterFields(t *testing.T) {
	q := parse(t, "/screens/users?filter-role=admin&filter-name=")
	if q.Filters["role"] != "admin" {
		t.Errorf("Expected role filter from form field, got %v", q.Filters)
	}
	if _, ok := q.Filters["name"]; ok {
		t.Errorf("Expected empty form field to be ignored, got %v", q.Filters)
	}
}
