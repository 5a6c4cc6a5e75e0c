/*
SPDX-License-Identifier: Apache-2.0

Copyright 2024 The Hospadmin Authors
*/

package datasources

import (
	"context"
	"testing"

	"github.com/hospadmin/console/core/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingStore counts the List calls reaching the wrapped store.
type countingStore struct {
	*MemoryStore
	lists int
}

func (s *countingStore) List(ctx context.Context, entity string) ([]grid.Fields, error) {
	s.lists++
	return s.MemoryStore.List(ctx, entity)
}

func TestManager_CachesLists(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{MemoryStore: NewMemoryStore()}
	require.NoError(t, inner.Seed(ctx, "users", sampleUsers()))

	manager := NewManager(inner)
	assert.False(t, manager.IsLoaded("users"))

	_, err := manager.List(ctx, "users")
	require.NoError(t, err)
	_, err = manager.List(ctx, "users")
	require.NoError(t, err)

	assert.Equal(t, 1, inner.lists)
	assert.True(t, manager.IsLoaded("users"))
	assert.Equal(t, []string{"users"}, manager.GetLoadedEntities())
}

func TestManager_CopiesCachedRecords(t *testing.T) {
	ctx := context.Background()
	inner := NewMemoryStore()
	require.NoError(t, inner.Seed(ctx, "users", sampleUsers()))
	manager := NewManager(inner)

	first, err := manager.List(ctx, "users")
	require.NoError(t, err)
	first[0]["name"] = "changed"

	second, err := manager.List(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, "Amy", second[0]["name"])
}

func TestManager_WritesInvalidate(t *testing.T) {
	ctx := context.Background()
	inner := &countingStore{MemoryStore: NewMemoryStore()}
	require.NoError(t, inner.Seed(ctx, "users", sampleUsers()))
	manager := NewManager(inner)

	_, err := manager.List(ctx, "users")
	require.NoError(t, err)

	_, err = manager.SetActive(ctx, "users", "u3", true)
	require.NoError(t, err)
	assert.False(t, manager.IsLoaded("users"))

	records, err := manager.List(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, true, records[2]["active"])
	assert.Equal(t, 2, inner.lists)

	require.NoError(t, manager.Seed(ctx, "users", nil))
	assert.False(t, manager.IsLoaded("users"))
	records, err = manager.List(ctx, "users")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestManager_InvalidateAll(t *testing.T) {
	ctx := context.Background()
	manager := NewManager(NewMemoryStore())
	_, _ = manager.List(ctx, "users")
	_, _ = manager.List(ctx, "rooms")
	assert.Len(t, manager.GetLoadedEntities(), 2)

	manager.InvalidateCache("rooms")
	assert.Equal(t, []string{"users"}, manager.GetLoadedEntities())

	manager.InvalidateAllCaches()
	assert.Empty(t, manager.GetLoadedEntities())
}

func TestManager_PingWithoutServer(t *testing.T) {
	manager := NewManager(NewMemoryStore())
	assert.NoError(t, manager.Ping(context.Background()))
}

// blockingStore holds List open after reading until release is closed.
type blockingStore struct {
	*MemoryStore
	loaded  chan struct{}
	release chan struct{}
}

func (s *blockingStore) List(ctx context.Context, entity string) ([]grid.Fields, error) {
	records, err := s.MemoryStore.List(ctx, entity)
	s.loaded <- struct{}{}
	<-s.release
	return records, err
}

func TestManager_WriteDuringListIsNotCachedStale(t *testing.T) {
	ctx := context.Background()
	inner := &blockingStore{
		MemoryStore: NewMemoryStore(),
		loaded:      make(chan struct{}, 1),
		release:     make(chan struct{}),
	}
	require.NoError(t, inner.MemoryStore.Seed(ctx, "users", sampleUsers()))
	manager := NewManager(inner)

	done := make(chan error, 1)
	go func() {
		_, err := manager.List(ctx, "users")
		done <- err
	}()
	<-inner.loaded

	_, err := manager.SetActive(ctx, "users", "u2", true)
	require.NoError(t, err)
	close(inner.release)
	require.NoError(t, <-done)

	assert.False(t, manager.IsLoaded("users"))

	records, err := manager.List(ctx, "users")
	require.NoError(t, err)
	assert.Equal(t, true, records[1]["active"])
	assert.True(t, manager.IsLoaded("users"))
}

func TestManager_InvalidateAllDuringList(t *testing.T) {
	ctx := context.Background()
	inner := &blockingStore{
		MemoryStore: NewMemoryStore(),
		loaded:      make(chan struct{}, 1),
		release:     make(chan struct{}),
	}
	require.NoError(t, inner.MemoryStore.Seed(ctx, "users", sampleUsers()))
	manager := NewManager(inner)

	done := make(chan error, 1)
	go func() {
		_, err := manager.List(ctx, "users")
		done <- err
	}()
	<-inner.loaded
	manager.InvalidateAllCaches()
	close(inner.release)
	require.NoError(t, <-done)

	assert.False(t, manager.IsLoaded("users"))
}
