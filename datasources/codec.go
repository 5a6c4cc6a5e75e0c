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

package datasources

import (
	"bytes"
	"encoding/json"
	"fmt"
	"maps"

	"github.com/google/uuid"
	"github.com/hospadmin/console/core/grid"
)

// encodeRecord returns the id and JSON body of record, assigning a random
// id to records without one.
func encodeRecord(record grid.Fields) (string, []byte, error) {
	record = maps.Clone(record)
	id := record.ID()
	if id == "" {
		id = uuid.NewString()
		record["id"] = id
	}
	body, err := json.Marshal(record)
	if err != nil {
		return "", nil, fmt.Errorf("encoding record %s: %w", id, err)
	}
	return id, body, nil
}

// decodeRecord parses a JSON body. Whole numbers decode as int64 and
// other numbers as float64.
func decodeRecord(body []byte) (grid.Fields, error) {
	dec := json.NewDecoder(bytes.NewReader(body))
	dec.UseNumber()

	var fields grid.Fields
	if err := dec.Decode(&fields); err != nil {
		return nil, fmt.Errorf("decoding record: %w", err)
	}
	for k, v := range fields {
		n, ok := v.(json.Number)
		if !ok {
			continue
		}
		if i, err := n.Int64(); err == nil {
			fields[k] = i
		} else if f, err := n.Float64(); err == nil {
			fields[k] = f
		}
	}
	return fields, nil
}
