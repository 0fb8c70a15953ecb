// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is a non-durable Store partitioned by widget id.
// It backs --ephemeral sessions and tests.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string][]Entry // oldest first
	seq     int64
	now     func() time.Time
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string][]Entry), now: time.Now}
}

// SetClock overrides the timestamp source.
func (m *MemoryStore) SetClock(now func() time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.now = now
}

// AddEntry implements Store.
func (m *MemoryStore) AddEntry(_ context.Context, widgetID, content string) (Entry, error) {
	if err := validate(widgetID, content); err != nil {
		return Entry{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	e := Entry{
		ID:        uuid.NewString(),
		Seq:       m.seq,
		WidgetID:  widgetID,
		Timestamp: FormatTimestamp(m.now()),
		Content:   content,
	}
	m.entries[widgetID] = append(m.entries[widgetID], e)
	return e, nil
}

// Entries implements Store.
func (m *MemoryStore) Entries(_ context.Context, widgetID string) ([]Entry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	list := m.entries[widgetID]
	out := make([]Entry, len(list))
	for i, e := range list {
		out[len(list)-1-i] = e
	}
	return out, nil
}

// Close implements Store.
func (m *MemoryStore) Close() error { return nil }
