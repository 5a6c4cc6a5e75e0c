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

import (
	"maps"
	"strings"
)

// MatchExpression reports whether value satisfies a column filter
// expression.
//
// Syntax:
//
//	"text"  exact match
//	'text'  contains, ignoring case
//	text    contains, ignoring case (bare string)
//	!term   negation of a single term
//	a&b     both; binds tighter than |
//	a|b     either
//
// No parentheses. An empty expression matches everything.
func MatchExpression(expr, value string) bool {
	if strings.TrimSpace(expr) == "" {
		return true
	}
	foldedValue := fold(value)
	for _, or := range strings.Split(expr, "|") {
		andMatch := true
		for _, and := range strings.Split(or, "&") {
			if !matchTerm(strings.TrimSpace(and), value, foldedValue) {
				andMatch = false
				break
			}
		}
		if andMatch {
			return true
		}
	}
	return false
}

func matchTerm(term, value, foldedValue string) bool {
	not := false
	if strings.HasPrefix(term, "!") {
		not = true
		term = strings.TrimSpace(term[1:])
	}

	var match bool
	switch {
	case term == "":
		match = true
	case isQuoted(term, '"'):
		match = value == term[1:len(term)-1]
	case isQuoted(term, '\''):
		match = strings.Contains(foldedValue, fold(term[1:len(term)-1]))
	default:
		match = strings.Contains(foldedValue, fold(term))
	}

	if not {
		return !match
	}
	return match
}

func isQuoted(s string, q byte) bool {
	return len(s) >= 2 && s[0] == q && s[len(s)-1] == q
}

// FilterByColumns keeps the records whose raw values, in display form,
// satisfy every column filter. Filters on keys that none of the columns
// declare are ignored.
func FilterByColumns[R Record](rows []R, columns []Column[R], filters map[string]string) []R {
	active := make(map[string]string, len(filters))
	for key, expr := range filters {
		if strings.TrimSpace(expr) == "" || !hasColumn(columns, key) {
			continue
		}
		active[key] = expr
	}
	if len(active) == 0 {
		return rows
	}

	result := make([]R, 0, len(rows))
	for _, r := range rows {
		keep := true
		for key, expr := range active {
			raw, _ := r.Field(key)
			if !MatchExpression(expr, RawText(raw)) {
				keep = false
				break
			}
		}
		if keep {
			result = append(result, r)
		}
	}
	return result
}

func hasColumn[R Record](columns []Column[R], key string) bool {
	for _, c := range columns {
		if c.Key == key {
			return true
		}
	}
	return false
}

func cloneFilters(filters map[string]string) map[string]string {
	if len(filters) == 0 {
		return nil
	}
	return maps.Clone(filters)
}
