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

// Package grid implements a generic data grid: an ordered set of column
// declarations over a slice of homogeneous records, with client-side
// sorting, search filtering, match highlighting and per-cell formatting.
//
// A Grid never modifies the records it is given. Sorting and filtering
// produce new slices that share the original records.
package grid

import (
	"fmt"
	"time"

	"github.com/spf13/cast"
)

// Record is a single row of a grid. Field returns the raw value stored
// under key and whether the record has such a field at all.
type Record interface {
	Field(key string) (any, bool)
}

// Fields is the schemaless record used by screens backed by a data store.
type Fields map[string]any

// Field implements Record.
func (f Fields) Field(key string) (any, bool) {
	v, ok := f[key]
	return v, ok
}

// Clone returns a shallow copy of the record.
func (f Fields) Clone() Fields {
	c := make(Fields, len(f))
	for k, v := range f {
		c[k] = v
	}
	return c
}

// ID returns the "id" field in string form, or "" when there is none.
func (f Fields) ID() string {
	v, ok := f["id"]
	if !ok || v == nil {
		return ""
	}
	return RawText(v)
}

// RawText returns the as-is display form of a raw value.
// nil and missing values display as the empty string.
func RawText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case time.Time:
		if x.IsZero() {
			return ""
		}
		return x.Format(time.DateTime)
	case fmt.Stringer:
		return x.String()
	}
	if s, err := cast.ToStringE(v); err == nil {
		return s
	}
	return fmt.Sprint(v)
}
