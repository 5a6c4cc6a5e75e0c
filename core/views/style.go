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
	"regexp"
	"strings"

	"github.com/google/safehtml"
	"github.com/google/safehtml/uncheckedconversions"
)

// cssLength matches the lengths accepted for container heights.
var cssLength = regexp.MustCompile(`^(0|\d+(\.\d+)?(px|em|rem|vh|vw|%))$`)

// ValidLength reports whether s is an accepted CSS length.
func ValidLength(s string) bool {
	return cssLength.MatchString(s)
}

// ContainerStyle returns the style of a grid's scroll container. Invalid
// or empty heights are left out.
func ContainerStyle(minHeight, maxHeight string) safehtml.Style {
	var decls []string
	if ValidLength(minHeight) {
		decls = append(decls, "min-height: "+minHeight+";")
	}
	if ValidLength(maxHeight) {
		decls = append(decls, "max-height: "+maxHeight+";", "overflow-y: auto;")
	}
	// Both values were matched against cssLength above.
	return uncheckedconversions.StyleFromStringKnownToSatisfyTypeContract(strings.Join(decls, " "))
}
