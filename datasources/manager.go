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
	"sort"
	"sync"

	"github.com/hospadmin/console/core/grid"
)

// Manager is a Store that caches entity lists of an underlying store.
// Lists are loaded lazily on first access and invalidated by every write
// made through the Manager.
type Manager struct {
	mu sync.RWMutex

	store Store

	// Cached lists indexed by entity - populated lazily
	lists map[string][]grid.Fields

	// generations counts invalidations per entity and epoch counts
	// invalidations of the whole cache. A list loaded while either
	// changed is not cached.
	generations map[string]uint64
	epoch       uint64
}

// NewManager creates a manager over store.
func NewManager(store Store) *Manager {
	return &Manager{
		store:       store,
		lists:       make(map[string][]grid.Fields),
		generations: make(map[string]uint64),
	}
}

// Store returns the underlying store.
func (m *Manager) Store() Store {
	return m.store
}

// List implements Store. Cached data is returned if already loaded;
// otherwise it is loaded from the store.
func (m *Manager) List(ctx context.Context, entity string) ([]grid.Fields, error) {
	// Check cache first (with read lock)
	m.mu.RLock()
	if records, ok := m.lists[entity]; ok {
		m.mu.RUnlock()
		return cloneRecords(records), nil
	}
	generation, epoch := m.generations[entity], m.epoch
	m.mu.RUnlock()

	records, err := m.store.List(ctx, entity)
	if err != nil {
		return nil, err
	}

	// Cache the result unless a write invalidated the entity meanwhile
	m.mu.Lock()
	if m.generations[entity] == generation && m.epoch == epoch {
		m.lists[entity] = cloneRecords(records)
	}
	m.mu.Unlock()

	return records, nil
}

// Get implements Store.
func (m *Manager) Get(ctx context.Context, entity, id string) (grid.Fields, error) {
	return m.store.Get(ctx, entity, id)
}

// SetActive implements Store.
func (m *Manager) SetActive(ctx context.Context, entity, id string, active bool) (grid.Fields, error) {
	defer m.InvalidateCache(entity)
	return m.store.SetActive(ctx, entity, id, active)
}

// Seed implements Seeder when the underlying store does.
func (m *Manager) Seed(ctx context.Context, entity string, records []grid.Fields) error {
	seeder, ok := m.store.(Seeder)
	if !ok {
		return errNotSeeder
	}
	defer m.InvalidateCache(entity)
	return seeder.Seed(ctx, entity, records)
}

// Ping implements Pinger. Stores that are not backed by a server are
// always reachable.
func (m *Manager) Ping(ctx context.Context) error {
	if p, ok := m.store.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Close implements Store.
func (m *Manager) Close() error {
	m.InvalidateAllCaches()
	return m.store.Close()
}

// InvalidateCache removes an entity from the cache, forcing reload on next access.
func (m *Manager) InvalidateCache(entity string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.lists, entity)
	m.generations[entity]++
}

// InvalidateAllCaches removes all entities from the cache.
func (m *Manager) InvalidateAllCaches() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.epoch++
	m.lists = make(map[string][]grid.Fields)
}

// IsLoaded returns whether the list of an entity is currently cached.
func (m *Manager) IsLoaded(entity string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.lists[entity]
	return ok
}

// GetLoadedEntities returns the names of all currently cached entities, sorted.
func (m *Manager) GetLoadedEntities() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	names := make([]string, 0, len(m.lists))
	for name := range m.lists {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
