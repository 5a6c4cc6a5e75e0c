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

// Package screens describes the console's grid screens: which entity a
// screen lists, its columns and how each one is formatted or rendered.
// Definitions are loaded from YAML and kept in a Registry.
package screens

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"

	"github.com/hospadmin/console/core/tree"
	"gopkg.in/yaml.v3"
)

var (
	// ErrUnknownScreen is returned when no screen has the requested name.
	ErrUnknownScreen = errors.New("screens: unknown screen")
	// ErrUnknownFormatter is returned when a column names a formatter
	// that is not in the catalog.
	ErrUnknownFormatter = errors.New("screens: unknown formatter")
	// ErrUnknownRenderer is returned when a column names a renderer that
	// is not in the catalog.
	ErrUnknownRenderer = errors.New("screens: unknown renderer")
	// ErrInvalidScreen is returned for structurally invalid definitions.
	ErrInvalidScreen = errors.New("screens: invalid screen")
)

// ColumnDef is one column of a screen.
type ColumnDef struct {
	Key      string `yaml:"key"`
	Header   string `yaml:"header"`
	Hidden   bool   `yaml:"hidden,omitempty"`
	Sortable bool   `yaml:"sortable,omitempty"`
	// Format names an entry of the formatter catalog.
	Format string `yaml:"format,omitempty"`
	// Render names an entry of the renderer catalog.
	Render string `yaml:"render,omitempty"`
}

// LevelDef is one grouping level of a screen's tree view.
type LevelDef struct {
	Key   string `yaml:"key"`
	Label string `yaml:"label"`
}

// Screen is the definition of one grid screen.
type Screen struct {
	Name              string      `yaml:"name"`
	Title             string      `yaml:"title"`
	Description       string      `yaml:"description,omitempty"`
	Entity            string      `yaml:"entity"`
	SearchPlaceholder string      `yaml:"search_placeholder,omitempty"`
	MinHeight         string      `yaml:"min_height,omitempty"`
	MaxHeight         string      `yaml:"max_height,omitempty"`
	Columns           []ColumnDef `yaml:"columns"`
	Tree              []LevelDef  `yaml:"tree,omitempty"`
}

// DefaultColumns returns the keys of the columns visible by default.
func (s *Screen) DefaultColumns() []string {
	keys := make([]string, 0, len(s.Columns))
	for _, c := range s.Columns {
		if !c.Hidden {
			keys = append(keys, c.Key)
		}
	}
	return keys
}

// HasTree reports whether the screen defines a tree view.
func (s *Screen) HasTree() bool {
	return len(s.Tree) > 0
}

// Levels returns the tree levels of the screen.
func (s *Screen) Levels() []tree.Level {
	levels := make([]tree.Level, len(s.Tree))
	for i, l := range s.Tree {
		levels[i] = tree.Level{Key: l.Key, Label: l.Label}
	}
	return levels
}

// ActivePath returns the path the row action form of record id posts to.
func ActivePath(screen, id string) string {
	return "/screens/" + url.PathEscape(screen) + "/rows/" + url.PathEscape(id) + "/active"
}

func (s *Screen) validate() error {
	if s.Name == "" {
		return fmt.Errorf("%w: missing name", ErrInvalidScreen)
	}
	if s.Entity == "" {
		s.Entity = s.Name
	}
	if s.Title == "" {
		s.Title = s.Name
	}
	if len(s.Columns) == 0 {
		return fmt.Errorf("%w: %q has no columns", ErrInvalidScreen, s.Name)
	}
	keys := make(map[string]bool, len(s.Columns))
	for _, c := range s.Columns {
		if c.Key == "" {
			return fmt.Errorf("%w: %q has a column without key", ErrInvalidScreen, s.Name)
		}
		// Render columns may share a key, data columns may not.
		if c.Render == "" {
			if keys[c.Key] {
				return fmt.Errorf("%w: %q has duplicate column %q", ErrInvalidScreen, s.Name, c.Key)
			}
			keys[c.Key] = true
		}
		if c.Format != "" {
			if _, ok := formatters[c.Format]; !ok {
				return fmt.Errorf("%w: %q in screen %q", ErrUnknownFormatter, c.Format, s.Name)
			}
		}
		if c.Render != "" {
			if _, ok := renderers[c.Render]; !ok {
				return fmt.Errorf("%w: %q in screen %q", ErrUnknownRenderer, c.Render, s.Name)
			}
		}
	}
	for _, l := range s.Tree {
		if l.Key == "" {
			return fmt.Errorf("%w: %q has a tree level without key", ErrInvalidScreen, s.Name)
		}
	}
	return nil
}

// Registry holds screens by name, in definition order.
type Registry struct {
	screens []*Screen
	byName  map[string]*Screen
}

// NewRegistry validates defs and indexes them by name.
func NewRegistry(defs []*Screen) (*Registry, error) {
	r := &Registry{byName: make(map[string]*Screen, len(defs))}
	for _, s := range defs {
		if err := s.validate(); err != nil {
			return nil, err
		}
		if _, dup := r.byName[s.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate screen %q", ErrInvalidScreen, s.Name)
		}
		r.byName[s.Name] = s
		r.screens = append(r.screens, s)
	}
	return r, nil
}

type document struct {
	Screens []*Screen `yaml:"screens"`
}

// Load reads a YAML document with a top-level "screens" list.
func Load(r io.Reader) (*Registry, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decoding screens: %w", err)
	}
	return NewRegistry(doc.Screens)
}

// LoadBytes is Load over an in-memory document.
func LoadBytes(data []byte) (*Registry, error) {
	return Load(bytes.NewReader(data))
}

// LoadFile reads screen definitions from path.
func LoadFile(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening screens file: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Get returns the screen called name.
func (r *Registry) Get(name string) (*Screen, error) {
	s, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScreen, name)
	}
	return s, nil
}

// All returns every screen in definition order.
func (r *Registry) All() []*Screen {
	return r.screens
}

// Entities returns the distinct entities listed by the screens, in
// definition order.
func (r *Registry) Entities() []string {
	seen := make(map[string]bool)
	var entities []string
	for _, s := range r.screens {
		if !seen[s.Entity] {
			seen[s.Entity] = true
			entities = append(entities, s.Entity)
		}
	}
	return entities
}
