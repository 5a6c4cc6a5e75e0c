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
	"sort"
	"strings"
	"time"

	"github.com/hospadmin/console/core/grid"
	"github.com/spf13/cast"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// formatters is the catalog of named formatters a column may reference.
var formatters = map[string]grid.FormatFunc{
	"date":     formatDate,
	"datetime": formatDateTime,
	"yesno":    formatYesNo,
	"currency": formatCurrency,
	"upper":    formatUpper,
	"title":    formatTitle,
	"phone":    formatPhone,
}

// Formatter returns the named formatter.
func Formatter(name string) (grid.FormatFunc, bool) {
	f, ok := formatters[name]
	return f, ok
}

// FormatterNames returns the catalog names in lexical order.
func FormatterNames() []string {
	names := make([]string, 0, len(formatters))
	for name := range formatters {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

var timeLayouts = []string{
	time.RFC3339,
	time.DateTime,
	time.DateOnly,
	"2006-01-02T15:04",
	"02/01/2006",
}

func parseTime(raw any) (time.Time, bool) {
	switch v := raw.(type) {
	case time.Time:
		return v, !v.IsZero()
	case string:
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, strings.TrimSpace(v)); err == nil {
				return t, true
			}
		}
	}
	return time.Time{}, false
}

func formatDate(raw any) string {
	if t, ok := parseTime(raw); ok {
		return t.Format("Jan 2, 2006")
	}
	return grid.RawText(raw)
}

func formatDateTime(raw any) string {
	if t, ok := parseTime(raw); ok {
		return t.Format("Jan 2, 2006 15:04")
	}
	return grid.RawText(raw)
}

func formatYesNo(raw any) string {
	if raw == nil {
		return ""
	}
	b, err := cast.ToBoolE(raw)
	if err != nil {
		return grid.RawText(raw)
	}
	if b {
		return "Yes"
	}
	return "No"
}

var currencyPrinter = message.NewPrinter(language.English)

func formatCurrency(raw any) string {
	if raw == nil || raw == "" {
		return ""
	}
	v, err := cast.ToFloat64E(raw)
	if err != nil {
		return grid.RawText(raw)
	}
	if v < 0 {
		return currencyPrinter.Sprintf("-$%.2f", -v)
	}
	return currencyPrinter.Sprintf("$%.2f", v)
}

func formatUpper(raw any) string {
	return cases.Upper(language.Und).String(grid.RawText(raw))
}

func formatTitle(raw any) string {
	return cases.Title(language.English).String(strings.ToLower(grid.RawText(raw)))
}

func formatPhone(raw any) string {
	text := grid.RawText(raw)
	var digits []byte
	for i := 0; i < len(text); i++ {
		if text[i] >= '0' && text[i] <= '9' {
			digits = append(digits, text[i])
		}
	}
	switch len(digits) {
	case 10:
		return "(" + string(digits[:3]) + ") " + string(digits[3:6]) + "-" + string(digits[6:])
	case 7:
		return string(digits[:3]) + "-" + string(digits[3:])
	}
	return text
}
