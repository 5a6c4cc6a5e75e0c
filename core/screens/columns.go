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
	"slices"

	"github.com/hospadmin/console/core/grid"
)

// Columns turns the definition of s into grid columns. When visible is
// non-empty it replaces the default visibility: a column is shown iff its
// key is listed. Unknown keys in visible are ignored.
func Columns(s *Screen, visible []string) []grid.Column[grid.Fields] {
	cols := make([]grid.Column[grid.Fields], 0, len(s.Columns))
	for _, def := range s.Columns {
		c := grid.Column[grid.Fields]{
			Key:      def.Key,
			Header:   def.Header,
			Visible:  !def.Hidden,
			Sortable: def.Sortable,
		}
		if c.Header == "" {
			c.Header = def.Key
		}
		if len(visible) > 0 {
			c.Visible = slices.Contains(visible, def.Key)
		}
		if def.Format != "" {
			c.Formatter = formatters[def.Format]
		}
		if def.Render != "" {
			c.Render = renderers[def.Render](s, def)
		}
		cols = append(cols, c)
	}
	return cols
}
