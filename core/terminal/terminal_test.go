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

package terminal

import (
	"regexp"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/hospadmin/console/core/grid"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripANSI(s string) string {
	return ansi.ReplaceAllString(s, "")
}

func newGrid(t *testing.T, opts ...grid.Option) *grid.Grid[grid.Fields] {
	t.Helper()
	columns := []grid.Column[grid.Fields]{
		{Key: "name", Header: "Name", Visible: true, Sortable: true},
		{Key: "age", Header: "Age", Visible: true, Sortable: true},
	}
	data := []grid.Fields{
		{"name": "Bob", "age": 30},
		{"name": "Amy", "age": 25},
	}
	g, err := grid.New(columns, data, opts...)
	if err != nil {
		t.Fatalf("grid.New failed: %v", err)
	}
	return g
}

func TestRender_Plain(t *testing.T) {
	g := newGrid(t)
	opts := DefaultOptions()
	opts.Plain = true
	got := Render(g.Build(), opts)

	want := "" +
		"+------+-----+\n" +
		"| Name | Age |\n" +
		"+------+-----+\n" +
		"| Bob  | 30  |\n" +
		"| Amy  | 25  |\n" +
		"+------+-----+\n"
	if got != want {
		t.Errorf("Expected:\n%s\ngot:\n%s", want, got)
	}
}

func TestRender_SortedAndEmpty(t *testing.T) {
	g := newGrid(t, grid.WithSort(grid.SortState{OrderBy: "name"}), grid.WithSearchTerm("zzz"))
	opts := DefaultOptions()
	opts.Plain = true
	got := Render(g.Build(), opts)

	if !strings.Contains(got, "Name ▲") {
		t.Errorf("Expected sort arrow, got:\n%s", got)
	}
	if lines := strings.Count(got, "\n"); lines != 3 {
		t.Errorf("Expected header only (3 lines), got %d:\n%s", lines, got)
	}
}

func TestRender_Window(t *testing.T) {
	g := newGrid(t)
	opts := Options{Plain: true, ActiveColumn: -1, ActiveRow: -1, Offset: 1, Limit: 1}
	got := Render(g.Build(), opts)
	if strings.Contains(got, "Bob") || !strings.Contains(got, "Amy") {
		t.Errorf("Expected only the second row, got:\n%s", got)
	}
}

func TestRender_StyledKeepsText(t *testing.T) {
	g := newGrid(t, grid.WithSearchTerm("am"))
	got := stripANSI(Render(g.Build(), DefaultOptions()))
	if !strings.Contains(got, "| Amy  |") {
		t.Errorf("Expected highlighted cell text intact, got:\n%s", got)
	}
	if strings.Contains(got, "Bob") {
		t.Errorf("Expected Bob filtered out, got:\n%s", got)
	}
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestBrowser_SortToggle(t *testing.T) {
	g := newGrid(t)
	b := NewBrowser("People", g, true)

	b.Update(key("enter"))
	if g.Sort() != (grid.SortState{OrderBy: "name", Direction: grid.Ascending}) {
		t.Fatalf("Expected name asc, got %+v", g.Sort())
	}
	b.Update(key("s"))
	if g.Sort().Direction != grid.Descending {
		t.Fatalf("Expected name desc, got %+v", g.Sort())
	}
	b.Update(key("right"))
	b.Update(key("enter"))
	if g.Sort() != (grid.SortState{OrderBy: "age", Direction: grid.Ascending}) {
		t.Fatalf("Expected age asc, got %+v", g.Sort())
	}

	view := b.View()
	if !strings.Contains(view, "Age ▲") || !strings.Contains(view, "sorted by age asc") {
		t.Errorf("Unexpected view:\n%s", view)
	}
}

func TestBrowser_Search(t *testing.T) {
	g := newGrid(t)
	b := NewBrowser("People", g, true)

	b.Update(key("/"))
	b.Update(key("a"))
	b.Update(key("m"))
	if g.SearchTerm() != "am" {
		t.Fatalf("Expected live search term am, got %q", g.SearchTerm())
	}
	b.Update(key("enter"))
	if len(g.Rows()) != 1 {
		t.Errorf("Expected one row, got %d", len(g.Rows()))
	}

	b.Update(key("/"))
	b.Update(key("x"))
	b.Update(key("esc"))
	if g.SearchTerm() != "am" {
		t.Errorf("Expected cancelled edit to restore am, got %q", g.SearchTerm())
	}

	b.Update(key("esc"))
	if g.SearchTerm() != "" {
		t.Errorf("Expected search cleared, got %q", g.SearchTerm())
	}
}

func TestBrowser_CursorClamp(t *testing.T) {
	g := newGrid(t)
	b := NewBrowser("People", g, true)
	for i := 0; i < 5; i++ {
		b.Update(key("down"))
		b.Update(key("right"))
	}
	if b.row != 1 || b.col != 1 {
		t.Errorf("Expected cursor clamped to (1,1), got (%d,%d)", b.row, b.col)
	}
	if _, cmd := b.Update(key("q")); cmd == nil {
		t.Error("Expected quit command")
	}
}
