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
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/hospadmin/console/core/grid"
)

// ColumnType represents the data type inferred for a CSV column.
type ColumnType int

const (
	TypeString ColumnType = iota
	TypeInt64
	TypeFloat64
	TypeBool
)

// String returns the string representation of the column type.
func (t ColumnType) String() string {
	switch t {
	case TypeString:
		return "string"
	case TypeInt64:
		return "int64"
	case TypeFloat64:
		return "float64"
	case TypeBool:
		return "bool"
	default:
		return "unknown"
	}
}

// recordNamespace derives the ids of CSV rows that have none.
var recordNamespace = uuid.MustParse("6f1c1a4e-3f0b-4b8e-9d55-2f7a8c1e0b42")

// CSVLoader reads records from CSV files with a header row. Column types
// are inferred from the data; dates are kept as strings so they stay
// searchable. Empty cells are left out of the record.
//
// Rows without an "id" column get a deterministic UUID and rows without
// a "seq" column get their 1-based position.
type CSVLoader struct {
	// Delimiter is the field delimiter (default ',').
	Delimiter rune
	// SampleSize is the number of rows inspected per column (default 100).
	SampleSize int
}

// NewCSVLoader creates a CSV loader with the default settings.
func NewCSVLoader() *CSVLoader {
	return &CSVLoader{Delimiter: ',', SampleSize: 100}
}

// Load reads the records of entity from r.
func (l *CSVLoader) Load(r io.Reader, entity string) ([]grid.Fields, error) {
	reader := csv.NewReader(r)
	reader.Comma = l.Delimiter
	reader.TrimLeadingSpace = true

	// Read all records
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("CSV file is empty")
	}

	header := records[0]
	dataRecords := records[1:]
	types := l.inferColumnTypes(header, dataRecords)

	hasID, hasSeq := false, false
	for _, name := range header {
		hasID = hasID || name == "id"
		hasSeq = hasSeq || name == grid.SequenceKey
	}

	result := make([]grid.Fields, 0, len(dataRecords))
	for n, record := range dataRecords {
		fields := make(grid.Fields, len(header)+2)
		for i, name := range header {
			if i >= len(record) || record[i] == "" {
				continue
			}
			fields[name] = parseValue(record[i], types[i])
		}
		if !hasID {
			fields["id"] = uuid.NewSHA1(recordNamespace, []byte(entity+"/"+strconv.Itoa(n))).String()
		}
		if !hasSeq {
			fields[grid.SequenceKey] = int64(n + 1)
		}
		result = append(result, fields)
	}
	return result, nil
}

// LoadFile reads the records of entity from path.
func (l *CSVLoader) LoadFile(path, entity string) ([]grid.Fields, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer file.Close()
	return l.Load(file, entity)
}

// LoadDir reads every <entity>.csv file of dir.
func (l *CSVLoader) LoadDir(dir string) (map[string][]grid.Fields, error) {
	if dir == "" {
		return nil, errors.New("csv directory is required")
	}
	paths, err := filepath.Glob(filepath.Join(dir, "*.csv"))
	if err != nil {
		return nil, err
	}
	result := make(map[string][]grid.Fields, len(paths))
	for _, path := range paths {
		entity := strings.TrimSuffix(filepath.Base(path), ".csv")
		records, err := l.LoadFile(path, entity)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		result[entity] = records
	}
	return result, nil
}

func parseValue(s string, t ColumnType) any {
	switch t {
	case TypeInt64:
		if v, err := strconv.ParseInt(s, 10, 64); err == nil {
			return v
		}
	case TypeFloat64:
		if v, err := strconv.ParseFloat(s, 64); err == nil {
			return v
		}
	case TypeBool:
		if v, err := strconv.ParseBool(s); err == nil {
			return v
		}
	}
	return s
}

// inferColumnTypes samples data to determine column types.
func (l *CSVLoader) inferColumnTypes(columnNames []string, records [][]string) []ColumnType {
	types := make([]ColumnType, len(columnNames))
	for i := range columnNames {
		types[i] = l.inferColumnType(i, records)
	}
	return types
}

func (l *CSVLoader) inferColumnType(colIdx int, records [][]string) ColumnType {
	sampleSize := len(records)
	if l.SampleSize > 0 && sampleSize > l.SampleSize {
		sampleSize = l.SampleSize
	}

	isInt, isFloat, isBool := true, true, true
	seen := 0
	for _, record := range records[:sampleSize] {
		if colIdx >= len(record) || record[colIdx] == "" {
			continue
		}
		val := record[colIdx]
		seen++
		if _, err := strconv.ParseInt(val, 10, 64); err != nil {
			isInt = false
		}
		if _, err := strconv.ParseFloat(val, 64); err != nil || !strings.ContainsAny(val, "0123456789") {
			isFloat = false
		}
		// Codes such as "0041" keep their leading zeros.
		if len(val) > 1 && val[0] == '0' && val[1] != '.' {
			isInt, isFloat = false, false
		}
		if val != "true" && val != "false" {
			isBool = false
		}
	}

	switch {
	case seen == 0:
		return TypeString
	case isInt:
		return TypeInt64
	case isFloat:
		return TypeFloat64
	case isBool:
		return TypeBool
	}
	return TypeString
}
