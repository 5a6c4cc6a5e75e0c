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

// MatchesSearch reports whether at least one visible column of record
// holds a string raw value containing term, ignoring case. Formatted and
// rendered output is not consulted. An empty term matches every record.
//
// Matching uses the same pattern as Highlight, so every retained record
// has at least one highlighted segment.
func MatchesSearch[R Record](record R, columns []Column[R], term string) bool {
	if term == "" {
		return true
	}
	return matchesSearch(record, columns, newHighlighter(term))
}

func matchesSearch[R Record](record R, columns []Column[R], hl highlighter) bool {
	for _, c := range columns {
		if !c.Visible {
			continue
		}
		raw, ok := record.Field(c.Key)
		if !ok {
			continue
		}
		s, isString := raw.(string)
		if !isString {
			continue
		}
		if hl.matches(s) {
			return true
		}
	}
	return false
}

// FilterRecords returns the records of rows matching term, in their
// original order. An empty term returns rows unchanged.
func FilterRecords[R Record](rows []R, columns []Column[R], term string) []R {
	if term == "" {
		return rows
	}
	hl := newHighlighter(term)
	result := make([]R, 0, len(rows))
	for _, r := range rows {
		if matchesSearch(r, columns, hl) {
			result = append(result, r)
		}
	}
	return result
}
