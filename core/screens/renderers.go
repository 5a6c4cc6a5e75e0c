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
	"github.com/google/safehtml"
	"github.com/google/safehtml/template"
	"github.com/hospadmin/console/core/grid"
	"github.com/spf13/cast"
)

// HTMLFragment is a rendered cell carrying safe HTML for the web console
// and plain text for every other output.
type HTMLFragment struct {
	text string
	html safehtml.HTML
}

// NewHTMLFragment returns a fragment showing html in the browser and text
// elsewhere.
func NewHTMLFragment(text string, html safehtml.HTML) HTMLFragment {
	return HTMLFragment{text: text, html: html}
}

// Text implements grid.Fragment.
func (f HTMLFragment) Text() string { return f.text }

// HTML returns the fragment's markup.
func (f HTMLFragment) HTML() safehtml.HTML { return f.html }

// rendererFactory builds the render function of one column of screen s.
type rendererFactory func(s *Screen, col ColumnDef) grid.RenderFunc[grid.Fields]

// renderers is the catalog of named renderers a column may reference.
var renderers = map[string]rendererFactory{
	"actions": actionsRenderer,
	"status":  statusRenderer,
}

var actionsTemplate = template.Must(template.New("actions").Parse(
	`<form method="post" action="{{.Action}}" class="row-action">` +
		`<input type="hidden" name="active" value="{{.Next}}">` +
		`<button type="submit" class="{{.Class}}">{{.Label}}</button></form>`))

// actionsRenderer renders the activate/deactivate button of a row. The
// form posts to ActivePath, which toggles the record's "active" field.
func actionsRenderer(s *Screen, _ ColumnDef) grid.RenderFunc[grid.Fields] {
	return func(record grid.Fields, _, _ int) grid.Fragment {
		id := record.ID()
		if id == "" {
			return grid.Text("")
		}
		active := isActive(record)
		data := struct {
			Action string
			Next   bool
			Label  string
			Class  string
		}{
			Action: ActivePath(s.Name, id),
			Next:   !active,
			Label:  "Activate",
			Class:  "activate",
		}
		if active {
			data.Label = "Deactivate"
			data.Class = "deactivate"
		}
		html, err := actionsTemplate.ExecuteToHTML(data)
		if err != nil {
			return grid.Text(data.Label)
		}
		return NewHTMLFragment(data.Label, html)
	}
}

var statusTemplate = template.Must(template.New("status").Parse(
	`<span class="status {{.Class}}">{{.Label}}</span>`))

// statusRenderer renders a badge for the column's value. Boolean values
// read as Active/Inactive.
func statusRenderer(_ *Screen, col ColumnDef) grid.RenderFunc[grid.Fields] {
	return func(record grid.Fields, _, _ int) grid.Fragment {
		raw, _ := record.Field(col.Key)
		label := grid.RawText(raw)
		class := "status-other"
		if b, err := cast.ToBoolE(raw); err == nil && raw != nil {
			label, class = "Inactive", "status-inactive"
			if b {
				label, class = "Active", "status-active"
			}
		}
		html, err := statusTemplate.ExecuteToHTML(struct{ Label, Class string }{label, class})
		if err != nil {
			return grid.Text(label)
		}
		return NewHTMLFragment(label, html)
	}
}

func isActive(record grid.Fields) bool {
	raw, ok := record.Field("active")
	if !ok {
		return false
	}
	return cast.ToBool(raw)
}
