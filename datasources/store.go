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

// Package datasources provides the record stores behind the console's
// screens. Every store keeps schemaless records per entity (for example
// "rooms" or "users") in insertion order.
package datasources

import (
	"context"
	"errors"
	"fmt"
	"maps"

	"github.com/hospadmin/console/core/grid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

// ErrNotFound is returned when an entity has no record with the given id.
var ErrNotFound = errors.New("datasources: record not found")

// ErrUnknownDriver is returned by Open for an unsupported driver name.
var ErrUnknownDriver = errors.New("datasources: unknown driver")

var errNotSeeder = errors.New("datasources: store does not support seeding")

// Store reads and updates records.
type Store interface {
	// List returns the records of entity in insertion order. An entity
	// without records yields an empty slice.
	List(ctx context.Context, entity string) ([]grid.Fields, error)
	// Get returns the record of entity whose "id" field is id.
	Get(ctx context.Context, entity, id string) (grid.Fields, error)
	// SetActive sets the "active" field of a record and returns the
	// updated record.
	SetActive(ctx context.Context, entity, id string, active bool) (grid.Fields, error)
	// Close releases the store's resources.
	Close() error
}

// Seeder replaces the records of an entity.
type Seeder interface {
	Seed(ctx context.Context, entity string, records []grid.Fields) error
}

// Pinger is implemented by stores backed by a server.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Config selects and configures a store.
type Config struct {
	// Driver is one of "memory", "csv", "sqlite" or "postgres".
	Driver string
	// DSN is the SQLite file path or the Postgres connection URL.
	DSN string
	// CSVDir is the directory read by the "csv" driver, one file per
	// entity named <entity>.csv.
	CSVDir string
}

// Open returns the store described by cfg.
func Open(ctx context.Context, cfg Config, logger zerolog.Logger) (Store, error) {
	logger = logger.With().Str("driver", cfg.Driver).Logger()

	switch cfg.Driver {
	case "", "memory":
		logger.Debug().Msg("using in-memory store")
		return NewMemoryStore(), nil
	case "csv":
		data, err := NewCSVLoader().LoadDir(cfg.CSVDir)
		if err != nil {
			return nil, err
		}
		store := NewMemoryStore()
		for entity, records := range data {
			if err := store.Seed(ctx, entity, records); err != nil {
				return nil, err
			}
			logger.Info().Str("entity", entity).Int("records", len(records)).Msg("loaded csv")
		}
		return store, nil
	case "sqlite":
		store, err := OpenSQLite(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		logger.Info().Str("path", cfg.DSN).Msg("opened sqlite store")
		return store, nil
	case "postgres":
		store, err := OpenPostgres(ctx, cfg.DSN)
		if err != nil {
			return nil, err
		}
		logger.Info().Msg("connected to postgres store")
		return store, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
}

// SeedAll replaces the records of every entity of data.
func SeedAll(ctx context.Context, s Seeder, data map[string][]grid.Fields) error {
	for entity, records := range data {
		if err := s.Seed(ctx, entity, records); err != nil {
			return fmt.Errorf("seeding %s: %w", entity, err)
		}
	}
	return nil
}

// Counts lists every entity concurrently and returns the number of
// records of each. The first error cancels the remaining lists.
func Counts(ctx context.Context, s Store, entities []string) (map[string]int, error) {
	counts := make([]int, len(entities))
	g, ctx := errgroup.WithContext(ctx)
	for i, entity := range entities {
		g.Go(func() error {
			records, err := s.List(ctx, entity)
			if err != nil {
				return fmt.Errorf("counting %s: %w", entity, err)
			}
			counts[i] = len(records)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := make(map[string]int, len(entities))
	for i, entity := range entities {
		result[entity] = counts[i]
	}
	return result, nil
}

func cloneRecords(records []grid.Fields) []grid.Fields {
	out := make([]grid.Fields, len(records))
	for i, r := range records {
		out[i] = maps.Clone(r)
	}
	return out
}
