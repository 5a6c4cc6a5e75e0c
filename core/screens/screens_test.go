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

package screens

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/hospadmin/console/core/grid"
)

const usersYAML = `
screens:
  - name: users
    title: Users
    entity: users
    search_placeholder: Search users
    max_height: 480px
    columns:
      - {key: seq, header: "#", sortable: true}
      - {key: name, header: Name, sortable: true}
      - {key: email, header: Email, hidden: true}
      - {key: created_at, header: Created, format: date}
      - {key: active, header: Status, render: status}
      - {key: actions, header: Actions, render: actions}
  - name: beds
    entity: beds
    columns:
      - {key: room, header: Room}
      - {key: bed, header: Bed}
    tree:
      - {key: room, label: Room}
`

func TestLoad(t *testing.T) {
	r, err := LoadBytes([]byte(usersYAML))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	all := r.All()
	if len(all) != 2 || all[0].Name != "users" || all[1].Name != "beds" {
		t.Fatalf("Expected users then beds, got %v", all)
	}

	users, err := r.Get("users")
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if users.MaxHeight != "480px" || users.SearchPlaceholder != "Search users" {
		t.Errorf("Unexpected users screen %+v", users)
	}
	want := []string{"seq", "name", "created_at", "active", "actions"}
	if !slices.Equal(users.DefaultColumns(), want) {
		t.Errorf("Expected default columns %v, got %v", want, users.DefaultColumns())
	}

	beds, _ := r.Get("beds")
	if beds.Title != "beds" {
		t.Errorf("Expected title to default to name, got %q", beds.Title)
	}
	if !beds.HasTree() || beds.Levels()[0].Key != "room" {
		t.Errorf("Expected room tree level, got %+v", beds.Tree)
	}

	if !slices.Equal(r.Entities(), []string{"users", "beds"}) {
		t.Errorf("Unexpected entities %v", r.Entities())
	}
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want error
	}{
		{"unknown formatter", "screens:\n  - {name: a, columns: [{key: x, format: roman}]}\n", ErrUnknownFormatter},
		{"unknown renderer", "screens:\n  - {name: a, columns: [{key: x, render: chart}]}\n", ErrUnknownRenderer},
		{"no columns", "screens:\n  - {name: a}\n", ErrInvalidScreen},
		{"duplicate", "screens:\n  - {name: a, columns: [{key: x}]}\n  - {name: a, columns: [{key: y}]}\n", ErrInvalidScreen},
		{"missing name", "screens:\n  - {columns: [{key: x}]}\n", ErrInvalidScreen},
		{"duplicate column", "screens:\n  - {name: a, columns: [{key: x}, {key: x, format: upper}]}\n", ErrInvalidScreen},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadBytes([]byte(tt.yaml))
			if !errors.Is(err, tt.want) {
				t.Errorf("Expected %v, got %v", tt.want, err)
			}
		})
	}

	shared := "screens:\n  - {name: a, columns: [{key: active, format: yesno}, {key: active, render: actions}]}\n"
	if _, err := LoadBytes([]byte(shared)); err != nil {
		t.Errorf("Expected a render column to share a data key, got %v", err)
	}

	if _, err := LoadBytes([]byte("screens:\n  - {name: a, colums: []}\n")); err == nil {
		t.Error("Expected unknown field to be rejected")
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "screens.yaml")
	if err := os.WriteFile(path, []byte(usersYAML), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile failed: %v", err)
	}
	if len(r.All()) != 2 {
		t.Errorf("Expected 2 screens, got %d", len(r.All()))
	}
}

func TestGet_Unknown(t *testing.T) {
	r, _ := LoadBytes([]byte(usersYAML))
	if _, err := r.Get("wards"); !errors.Is(err, ErrUnknownScreen) {
		t.Errorf("Expected ErrUnknownScreen, got %v", err)
	}
}

func TestColumns(t *testing.T) {
	r, _ := LoadBytes([]byte(usersYAML))
	users, _ := r.Get("users")

	cols := Columns(users, nil)
	if len(cols) != 6 {
		t.Fatalf("Expected 6 columns, got %d", len(cols))
	}
	if cols[2].Visible {
		t.Error("Expected email hidden by default")
	}
	if cols[3].Formatter == nil || cols[4].Render == nil || cols[5].Render == nil {
		t.Error("Expected formatter and renderers to be resolved")
	}

	override := Columns(users, []string{"email", "name", "nope"})
	var visible []string
	for _, c := range override {
		if c.Visible {
			visible = append(visible, c.Key)
		}
	}
	if !slices.Equal(visible, []string{"name", "email"}) {
		t.Errorf("Expected declaration order [name email], got %v", visible)
	}

	if _, err := grid.New(cols, []grid.Fields{}); err != nil {
		t.Errorf("Expected a valid grid, got %v", err)
	}
}

func TestActionsRenderer(t *testing.T) {
	r, _ := LoadBytes([]byte(usersYAML))
	users, _ := r.Get("users")
	render := Columns(users, nil)[5].Render

	frag := render(grid.Fields{"id": "u-1", "active": true}, 0, 5)
	if frag.Text() != "Deactivate" {
		t.Errorf("Expected Deactivate, got %q", frag.Text())
	}
	html := frag.(HTMLFragment).HTML().String()
	if !strings.Contains(html, `action="/screens/users/rows/u-1/active"`) || !strings.Contains(html, `value="false"`) {
		t.Errorf("Unexpected actions markup %s", html)
	}

	if got := render(grid.Fields{"active": false}, 0, 5).Text(); got != "" {
		t.Errorf("Expected empty fragment without id, got %q", got)
	}
}

func TestStatusRenderer(t *testing.T) {
	r, _ := LoadBytes([]byte(usersYAML))
	users, _ := r.Get("users")
	render := Columns(users, nil)[4].Render

	tests := []struct {
		raw  any
		want string
	}{
		{true, "Active"},
		{"false", "Inactive"},
		{"pending", "pending"},
		{nil, ""},
	}
	for _, tt := range tests {
		if got := render(grid.Fields{"active": tt.raw}, 0, 4).Text(); got != tt.want {
			t.Errorf("status(%v): expected %q, got %q", tt.raw, tt.want, got)
		}
	}
}
