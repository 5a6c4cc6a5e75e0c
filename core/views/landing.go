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

package views

import (
	"net/url"

	"github.com/google/safehtml"
	"github.com/hospadmin/console/core/screens"
)

// LandingViewModel contains the data for the landing page
type LandingViewModel struct {
	Title    string
	Subtitle string
	Screens  []ScreenInfo
}

// ScreenInfo contains information about a screen for the landing page
type ScreenInfo struct {
	Name        string
	Title       string
	Description string
	Entity      string
	URL         safehtml.URL
	TreeURL     safehtml.URL
	HasTree     bool
	RecordCount int
	HasCount    bool // False when the entity could not be counted
}

// BuildLandingViewModel lists every screen with the record count of its
// entity. Entities missing from counts are shown without a count.
func BuildLandingViewModel(title, subtitle string, all []*screens.Screen, counts map[string]int) LandingViewModel {
	vm := LandingViewModel{Title: title, Subtitle: subtitle}
	for _, s := range all {
		info := ScreenInfo{
			Name:        s.Name,
			Title:       s.Title,
			Description: s.Description,
			Entity:      s.Entity,
			URL:         safehtml.URLSanitized("/screens/" + url.PathEscape(s.Name)),
			HasTree:     s.HasTree(),
		}
		if info.HasTree {
			info.TreeURL = safehtml.URLSanitized("/screens/" + url.PathEscape(s.Name) + "/tree")
		}
		if n, ok := counts[s.Entity]; ok {
			info.RecordCount = n
			info.HasCount = true
		}
		vm.Screens = append(vm.Screens, info)
	}
	return vm
}
