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

// Package terminal renders grids for the command line: a static table
// for scripts and an interactive browser.
package terminal

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/hospadmin/console/core/grid"
)

// Options controls how a grid view is drawn.
type Options struct {
	// Plain disables every style, for output that is not a terminal.
	Plain bool
	// ActiveColumn and ActiveRow mark the browser cursor. Negative
	// values mark nothing.
	ActiveColumn int
	ActiveRow    int
	// Offset and Limit select a window of rows. Limit 0 means all rows.
	Offset int
	Limit  int
}

// DefaultOptions draws every row without a cursor.
func DefaultOptions() Options {
	return Options{ActiveColumn: -1, ActiveRow: -1}
}

type painter func(string) string

// render adapts a style's variadic Render to a painter.
func render(st lipgloss.Style) painter {
	return func(s string) string { return st.Render(s) }
}

type styles struct {
	header, activeHeader, match, selected, border painter
}

func newStyles(plain bool) styles {
	if plain {
		same := func(s string) string { return s }
		return styles{same, same, same, same, same}
	}
	base := lipgloss.NewStyle()
	return styles{
		header:       render(base.Copy().Bold(true)),
		activeHeader: render(base.Copy().Bold(true).Underline(true).Foreground(lipgloss.Color("39"))),
		match:        render(base.Copy().Bold(true).Background(lipgloss.Color("229")).Foreground(lipgloss.Color("0"))),
		selected:     render(base.Copy().Reverse(true)),
		border:       render(base.Copy().Foreground(lipgloss.Color("241"))),
	}
}

// Arrow returns the sort indicator of a header.
func Arrow(h grid.Header) string {
	if !h.Sorted {
		return ""
	}
	if h.Direction == grid.Descending {
		return "▼"
	}
	return "▲"
}

func headerText(h grid.Header) string {
	if arrow := Arrow(h); arrow != "" {
		return h.Title + " " + arrow
	}
	return h.Title
}

// Render returns view as a bordered text table.
func Render[R grid.Record](view grid.View[R], opts Options) string {
	st := newStyles(opts.Plain)

	widths := make([]int, len(view.Headers))
	for i, h := range view.Headers {
		widths[i] = max(1, lipgloss.Width(headerText(h)))
	}
	rows := window(view.Rows, opts.Offset, opts.Limit)
	for _, r := range rows {
		for i, c := range r.Cells {
			widths[i] = max(widths[i], lipgloss.Width(cellText(c)))
		}
	}

	var sb strings.Builder
	line := borderLine(widths)
	sb.WriteString(st.border(line))
	sb.WriteString("\n")

	sb.WriteString(st.border("|"))
	for i, h := range view.Headers {
		text := headerText(h)
		paint := st.header
		if i == opts.ActiveColumn {
			paint = st.activeHeader
		}
		sb.WriteString(" " + paint(text) + pad(widths[i]-lipgloss.Width(text)) + " ")
		sb.WriteString(st.border("|"))
	}
	sb.WriteString("\n")
	sb.WriteString(st.border(line))
	sb.WriteString("\n")

	for _, r := range rows {
		sb.WriteString(st.border("|"))
		for i, c := range r.Cells {
			text := cellText(c)
			content := paintCell(c, st, r.Index == opts.ActiveRow)
			sb.WriteString(" " + content + pad(widths[i]-lipgloss.Width(text)) + " ")
			sb.WriteString(st.border("|"))
		}
		sb.WriteString("\n")
	}
	if len(rows) > 0 {
		sb.WriteString(st.border(line))
		sb.WriteString("\n")
	}
	return sb.String()
}

func window[R grid.Record](rows []grid.Row[R], offset, limit int) []grid.Row[R] {
	if offset < 0 {
		offset = 0
	}
	if offset > len(rows) {
		offset = len(rows)
	}
	rows = rows[offset:]
	if limit > 0 && limit < len(rows) {
		rows = rows[:limit]
	}
	return rows
}

// cellText is the single-line text of a cell.
func cellText(c grid.Cell) string {
	return strings.ReplaceAll(c.Text, "\n", " ")
}

func paintCell(c grid.Cell, st styles, selected bool) string {
	if c.Kind != grid.CellHighlighted {
		if selected {
			return st.selected(cellText(c))
		}
		return cellText(c)
	}
	var sb strings.Builder
	for _, seg := range c.Segments {
		text := strings.ReplaceAll(seg.Text, "\n", " ")
		switch {
		case seg.Match:
			sb.WriteString(st.match(text))
		case selected:
			sb.WriteString(st.selected(text))
		default:
			sb.WriteString(text)
		}
	}
	return sb.String()
}

func borderLine(widths []int) string {
	var sb strings.Builder
	sb.WriteString("+")
	for _, w := range widths {
		sb.WriteString(strings.Repeat("-", w+2))
		sb.WriteString("+")
	}
	return sb.String()
}

func pad(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(" ", n)
}
