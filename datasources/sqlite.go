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
	"database/sql"
	"errors"
	"fmt"

	"github.com/hospadmin/console/core/grid"
	_ "modernc.org/sqlite"
)

const sqliteSchema = `CREATE TABLE IF NOT EXISTS records (
	entity   TEXT    NOT NULL,
	id       TEXT    NOT NULL,
	position INTEGER NOT NULL,
	body     TEXT    NOT NULL,
	PRIMARY KEY (entity, id)
)`

// SQLiteStore keeps records as JSON documents in a SQLite database.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if needed) the database at path.
func OpenSQLite(ctx context.Context, path string) (*SQLiteStore, error) {
	if path == "" {
		return nil, errors.New("sqlite path is required")
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// A single connection serializes writers.
	db.SetMaxOpenConns(1)

	if _, err := db.ExecContext(ctx, sqliteSchema); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

// List implements Store.
func (s *SQLiteStore) List(ctx context.Context, entity string) ([]grid.Fields, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT body FROM records WHERE entity = ? ORDER BY position`, entity)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", entity, err)
	}
	defer rows.Close()

	result := []grid.Fields{}
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, fmt.Errorf("list %s: %w", entity, err)
		}
		record, err := decodeRecord(body)
		if err != nil {
			return nil, err
		}
		result = append(result, record)
	}
	return result, rows.Err()
}

// Get implements Store.
func (s *SQLiteStore) Get(ctx context.Context, entity, id string) (grid.Fields, error) {
	return s.get(ctx, s.db, entity, id)
}

type queryRower interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

func (s *SQLiteStore) get(ctx context.Context, q queryRower, entity, id string) (grid.Fields, error) {
	var body []byte
	err := q.QueryRowContext(ctx, `SELECT body FROM records WHERE entity = ? AND id = ?`, entity, id).Scan(&body)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, entity, id)
	}
	if err != nil {
		return nil, fmt.Errorf("get %s/%s: %w", entity, id, err)
	}
	return decodeRecord(body)
}

// SetActive implements Store.
func (s *SQLiteStore) SetActive(ctx context.Context, entity, id string, active bool) (grid.Fields, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	record, err := s.get(ctx, tx, entity, id)
	if err != nil {
		return nil, err
	}
	record["active"] = active
	_, body, err := encodeRecord(record)
	if err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `UPDATE records SET body = ? WHERE entity = ? AND id = ?`, string(body), entity, id); err != nil {
		return nil, fmt.Errorf("update %s/%s: %w", entity, id, err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return record, nil
}

// Seed implements Seeder.
func (s *SQLiteStore) Seed(ctx context.Context, entity string, records []grid.Fields) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM records WHERE entity = ?`, entity); err != nil {
		return fmt.Errorf("clear %s: %w", entity, err)
	}
	stmt, err := tx.PrepareContext(ctx, `INSERT INTO records (entity, id, position, body) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return err
	}
	defer stmt.Close()

	for i, record := range records {
		id, body, err := encodeRecord(record)
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, entity, id, i, string(body)); err != nil {
			return fmt.Errorf("insert %s/%s: %w", entity, id, err)
		}
	}
	return tx.Commit()
}

// Ping implements Pinger.
func (s *SQLiteStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Close implements Store.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
