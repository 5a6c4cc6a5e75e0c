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
	"context"
	"errors"
	"fmt"

	"github.com/hospadmin/console/core/grid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const postgresSchema = `CREATE TABLE IF NOT EXISTS hospadmin_records (
	entity   TEXT    NOT NULL,
	id       TEXT    NOT NULL,
	position INTEGER NOT NULL,
	body     JSONB   NOT NULL,
	PRIMARY KEY (entity, id)
)`

// PostgresStore keeps records as JSONB documents in PostgreSQL.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// OpenPostgres connects to databaseURL and creates the records table.
func OpenPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if _, err := pool.Exec(ctx, postgresSchema); err != nil {
		pool.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	return &PostgresStore{pool: pool}, nil
}

// List implements Store.
func (s *PostgresStore) List(ctx context.Context, entity string) ([]grid.Fields, error) {
	rows, err := s.pool.Query(ctx, `SELECT body FROM hospadmin_records WHERE entity = $1 ORDER BY position`, entity)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", entity, err)
	}
	bodies, err := pgx.CollectRows(rows, pgx.RowTo[[]byte])
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", entity, err)
	}

	result := make([]grid.Fields, 0, len(bodies))
	for _, body := range bodies {
		record, err := decodeRecord(body)
		if err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, nil
}

// Get implements Store.
func (s *PostgresStore) Get(ctx context.Context, entity, id string) (grid.Fields, error) {
	var body []byte
	err := s.pool.QueryRow(ctx, `SELECT body FROM hospadmin_records WHERE entity = $1 AND id = $2`, entity, id).Scan(&body)
	return s.scanned(body, err, entity, id)
}

// SetActive implements Store.
func (s *PostgresStore) SetActive(ctx context.Context, entity, id string, active bool) (grid.Fields, error) {
	var body []byte
	err := s.pool.QueryRow(ctx,
		`UPDATE hospadmin_records SET body = jsonb_set(body, '{active}', to_jsonb($3::boolean))
		 WHERE entity = $1 AND id = $2 RETURNING body`,
		entity, id, active).Scan(&body)
	return s.scanned(body, err, entity, id)
}

func (s *PostgresStore) scanned(body []byte, err error, entity, id string) (grid.Fields, error) {
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, entity, id)
	}
	if err != nil {
		return nil, fmt.Errorf("%s/%s: %w", entity, id, err)
	}
	return decodeRecord(body)
}

// Seed implements Seeder.
func (s *PostgresStore) Seed(ctx context.Context, entity string, records []grid.Fields) error {
	rows := make([][]any, 0, len(records))
	for i, record := range records {
		id, body, err := encodeRecord(record)
		if err != nil {
			return err
		}
		rows = append(rows, []any{entity, id, i, body})
	}

	return pgx.BeginFunc(ctx, s.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM hospadmin_records WHERE entity = $1`, entity); err != nil {
			return fmt.Errorf("clear %s: %w", entity, err)
		}
		_, err := tx.CopyFrom(ctx,
			pgx.Identifier{"hospadmin_records"},
			[]string{"entity", "id", "position", "body"},
			pgx.CopyFromRows(rows))
		if err != nil {
			return fmt.Errorf("copy %s: %w", entity, err)
		}
		return nil
	})
}

// Ping implements Pinger.
func (s *PostgresStore) Ping(ctx context.Context) error {
	return s.pool.Ping(ctx)
}

// Close implements Store.
func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}
