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
	"fmt"
	"maps"
	"sync"

	"github.com/hospadmin/console/core/grid"
)

// MemoryStore keeps records in memory. Records are copied on the way in
// and out, so callers never share them with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	entities map[string][]grid.Fields
}

// NewMemoryStore returns an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entities: make(map[string][]grid.Fields)}
}

// List implements Store.
func (s *MemoryStore) List(_ context.Context, entity string) ([]grid.Fields, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return cloneRecords(s.entities[entity]), nil
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, entity, id string) (grid.Fields, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i := s.index(entity, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, entity, id)
	}
	return maps.Clone(s.entities[entity][i]), nil
}

// SetActive implements Store.
func (s *MemoryStore) SetActive(_ context.Context, entity, id string, active bool) (grid.Fields, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.index(entity, id)
	if i < 0 {
		return nil, fmt.Errorf("%w: %s/%s", ErrNotFound, entity, id)
	}
	updated := maps.Clone(s.entities[entity][i])
	updated["active"] = active
	s.entities[entity][i] = updated
	return maps.Clone(updated), nil
}

// Seed implements Seeder.
func (s *MemoryStore) Seed(_ context.Context, entity string, records []grid.Fields) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entities[entity] = cloneRecords(records)
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	return nil
}

func (s *MemoryStore) index(entity, id string) int {
	for i, r := range s.entities[entity] {
		if r.ID() == id {
			return i
		}
	}
	return -1
}
