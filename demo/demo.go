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

// Package demo provides the built-in hospital screens and sample records.
package demo

import (
	"context"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"strings"

	"github.com/hospadmin/console/core/grid"
	"github.com/hospadmin/console/core/screens"
	"github.com/hospadmin/console/datasources"
)

//go:embed screens.yaml
var screensYAML []byte

//go:embed data/*.csv
var dataFS embed.FS

// Product holds the landing page settings of the demo.
type Product struct {
	// Title is displayed on the landing page.
	Title string

	// Subtitle is displayed below the title.
	Subtitle string
}

// DefaultProduct is the demo hospital.
var DefaultProduct = Product{
	Title:    "St. Mary's Hospital Administration",
	Subtitle: "Rooms, beds, insurance, visits, users and profiles",
}

// Screens returns the built-in screen definitions.
func Screens() (*screens.Registry, error) {
	return screens.LoadBytes(screensYAML)
}

// Data returns the sample records of every entity, keyed by entity.
func Data() (map[string][]grid.Fields, error) {
	entries, err := fs.ReadDir(dataFS, "data")
	if err != nil {
		return nil, err
	}

	loader := datasources.NewCSVLoader()
	result := make(map[string][]grid.Fields, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || path.Ext(name) != ".csv" {
			continue
		}
		f, err := dataFS.Open(path.Join("data", name))
		if err != nil {
			return nil, err
		}
		entity := strings.TrimSuffix(name, ".csv")
		records, err := loader.Load(f, entity)
		f.Close()
		if err != nil {
			return nil, fmt.Errorf("loading %s: %w", name, err)
		}
		result[entity] = records
	}
	return result, nil
}

// Seed copies the sample records into s.
func Seed(ctx context.Context, s datasources.Seeder) error {
	data, err := Data()
	if err != nil {
		return err
	}
	return datasources.SeedAll(ctx, s, data)
}
