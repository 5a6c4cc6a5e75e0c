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

// Fragment is the content produced by a column's render override.
// Renderers that understand richer fragments (HTML, ANSI) type-assert for
// them; every fragment can at least be shown as plain text.
type Fragment interface {
	Text() string
}

// Text is a plain-text Fragment.
type Text string

// Text implements Fragment.
func (t Text) Text() string { return string(t) }

// RenderFunc produces the content of one cell. rowIndex is the position
// of the record among the displayed rows and columnIndex its position
// among the visible columns.
type RenderFunc[R Record] func(record R, rowIndex, columnIndex int) Fragment

// FormatFunc turns a raw value into its display string.
type FormatFunc func(raw any) string

// Column declares how one field of a record maps to a grid column.
// Key may name a field that does not exist on the records (for example
// "actions"); such columns are usually paired with Render.
type Column[R Record] struct {
	Key       string
	Header    string
	Visible   bool
	Sortable  bool
	Render    RenderFunc[R]
	Formatter FormatFunc
}

// visibleColumns returns the visible columns in declaration order.
func visibleColumns[R Record](columns []Column[R]) []Column[R] {
	result := make([]Column[R], 0, len(columns))
	for _, c := range columns {
		if c.Visible {
			result = append(result, c)
		}
	}
	return result
}
