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

import "strings"

// CellKind tells which resolution rule produced a cell.
type CellKind int

const (
	CellRaw CellKind = iota
	CellHighlighted
	CellRendered
	CellFormatted
)

// Cell is the display content of one grid cell.
type Cell struct {
	Kind CellKind
	// Raw is the value read from the record (nil when missing).
	Raw any
	// Text is the plain-text content of the cell whatever its kind.
	Text string
	// Segments is set for CellHighlighted.
	Segments []Segment
	// Fragment is set for CellRendered.
	Fragment Fragment
}

// ResolveCell computes the content of the cell at (rowIndex, columnIndex).
//
// Precedence:
//  1. a non-empty term and a string raw value give the highlighted raw value
//  2. otherwise Render, when the column has one
//  3. otherwise Formatter, when the column has one
//  4. otherwise the raw value as-is
func ResolveCell[R Record](col Column[R], record R, rowIndex, columnIndex int, term string) Cell {
	return resolveCell(col, record, rowIndex, columnIndex, newHighlighter(term))
}

func resolveCell[R Record](col Column[R], record R, rowIndex, columnIndex int, h highlighter) Cell {
	raw, _ := record.Field(col.Key)

	if s, ok := raw.(string); ok && h.re != nil {
		segments := h.split(s)
		return Cell{Kind: CellHighlighted, Raw: raw, Text: joinSegments(segments), Segments: segments}
	}

	if col.Render != nil {
		frag := col.Render(record, rowIndex, columnIndex)
		text := ""
		if frag != nil {
			text = frag.Text()
		}
		return Cell{Kind: CellRendered, Raw: raw, Text: text, Fragment: frag}
	}

	if col.Formatter != nil {
		return Cell{Kind: CellFormatted, Raw: raw, Text: col.Formatter(raw)}
	}

	return Cell{Kind: CellRaw, Raw: raw, Text: RawText(raw)}
}

func joinSegments(segments []Segment) string {
	var sb strings.Builder
	for _, s := range segments {
		sb.WriteString(s.Text)
	}
	return sb.String()
}
