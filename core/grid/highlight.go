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

import "regexp"

// Segment is a run of cell text. Match is set on runs that matched the
// search term.
type Segment struct {
	Text  string
	Match bool
}

// Highlight splits text around every case-insensitive, non-overlapping
// occurrence of term. Case is compared with Unicode simple folding, the
// same rule the search filter applies. With an empty term the whole text is a single
// unmatched segment. Empty text yields no segments.
func Highlight(text, term string) []Segment {
	return newHighlighter(term).split(text)
}

// highlighter holds the compiled pattern for one search term so that a
// grid compiles it once per build rather than once per cell.
type highlighter struct {
	re *regexp.Regexp
}

func newHighlighter(term string) highlighter {
	if term == "" {
		return highlighter{}
	}
	return highlighter{re: regexp.MustCompile("(?i)" + regexp.QuoteMeta(term))}
}

// matches reports whether text contains the term. An empty term matches.
func (h highlighter) matches(text string) bool {
	return h.re == nil || h.re.MatchString(text)
}

func (h highlighter) split(text string) []Segment {
	if text == "" {
		return nil
	}
	if h.re == nil {
		return []Segment{{Text: text}}
	}

	locs := h.re.FindAllStringIndex(text, -1)
	if len(locs) == 0 {
		return []Segment{{Text: text}}
	}

	segments := make([]Segment, 0, 2*len(locs)+1)
	last := 0
	for _, loc := range locs {
		if loc[0] > last {
			segments = append(segments, Segment{Text: text[last:loc[0]]})
		}
		segments = append(segments, Segment{Text: text[loc[0]:loc[1]], Match: true})
		last = loc[1]
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}
	return segments
}
