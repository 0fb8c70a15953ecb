// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// MEMORY STORE TESTS
// =============================================================================

func TestMemoryStore_Contract(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	store.SetClock(func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 6e6, time.UTC) })

	for _, c := range []string{"a", "b", "c"} {
		_, err := store.AddEntry(ctx, "w7", c)
		require.NoError(t, err)
	}
	_, err := store.AddEntry(ctx, "w11", "x")
	require.NoError(t, err)

	entries, err := store.Entries(ctx, "w7")
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []string{"c", "b", "a"}, contents(entries))
	assert.Equal(t, "2024-01-02T03:04:05.006Z", entries[0].Timestamp)

	ts, err := entries[0].Time()
	require.NoError(t, err)
	assert.Equal(t, 2024, ts.Year())

	empty, err := store.Entries(ctx, "unknown-widget")
	require.NoError(t, err)
	assert.Empty(t, empty)

	_, err = store.AddEntry(ctx, "w7", "")
	assert.ErrorIs(t, err, ErrInvalidEntry)
}

func TestUnavailable(t *testing.T) {
	ctx := context.Background()
	u := Unavailable{Cause: errors.New("permission denied")}

	_, err := u.AddEntry(ctx, "w7", "x")
	assert.ErrorIs(t, err, ErrStoreUnavailable)
	assert.Contains(t, err.Error(), "permission denied")

	entries, err := u.Entries(ctx, "w7")
	require.NoError(t, err)
	assert.Empty(t, entries)

	_, err = Unavailable{}.AddEntry(ctx, "w7", "x")
	assert.Equal(t, ErrStoreUnavailable, err)
}

// =============================================================================
// ASYNC TESTS
// =============================================================================

// gatedStore blocks writes for one widget until released.
type gatedStore struct {
	*MemoryStore
	gateID string
	gate   chan struct{}
	calls  atomic.Int32
}

func (g *gatedStore) AddEntry(ctx context.Context, widgetID, content string) (Entry, error) {
	g.calls.Add(1)
	if widgetID == g.gateID {
		<-g.gate
	}
	return g.MemoryStore.AddEntry(ctx, widgetID, content)
}

func TestAsync_PreservesIssueOrderPerWidget(t *testing.T) {
	ctx := context.Background()
	async := NewAsync(NewMemoryStore())

	var results []<-chan Result
	for _, c := range []string{"a", "b", "c", "d", "e"} {
		results = append(results, async.AddEntryAsync(ctx, "w7", c))
	}
	read := async.EntriesAsync(ctx, "w7")

	for _, ch := range results {
		require.NoError(t, (<-ch).Err)
	}
	got := <-read
	require.NoError(t, got.Err)
	assert.Equal(t, "w7", got.WidgetID)
	assert.Equal(t, []string{"e", "d", "c", "b", "a"}, contents(got.Entries))

	async.Wait()
	assert.Zero(t, async.pending())
}

func TestAsync_WidgetsIndependent(t *testing.T) {
	ctx := context.Background()
	store := &gatedStore{MemoryStore: NewMemoryStore(), gateID: "slow", gate: make(chan struct{})}
	async := NewAsync(store)

	slow := async.AddEntryAsync(ctx, "slow", "blocked")

	select {
	case r := <-async.AddEntryAsync(ctx, "fast", "through"):
		require.NoError(t, r.Err)
		assert.Equal(t, "through", r.Entry.Content)
	case <-time.After(5 * time.Second):
		t.Fatal("write to another widget was blocked")
	}

	select {
	case <-slow:
		t.Fatal("gated write completed early")
	default:
	}

	close(store.gate)
	r := <-slow
	require.NoError(t, r.Err)
	async.Wait()
	assert.Equal(t, int32(2), store.calls.Load())
}

func TestAsync_DeliversErrors(t *testing.T) {
	async := NewAsync(Unavailable{})
	r := <-async.AddEntryAsync(context.Background(), "w7", "x")
	assert.ErrorIs(t, r.Err, ErrStoreUnavailable)

	r = <-async.EntriesAsync(context.Background(), "w7")
	assert.NoError(t, r.Err)
	assert.Empty(t, r.Entries)
}

// =============================================================================
// KEY LOCK TESTS
// =============================================================================

func TestKeyLock_SerializesSameKey(t *testing.T) {
	locks := newKeyLock()
	var inside atomic.Int32
	var wg sync.WaitGroup

	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unlock := locks.lock("k")
			if inside.Add(1) != 1 {
				t.Error("two holders inside the same key lock")
			}
			time.Sleep(time.Millisecond)
			inside.Add(-1)
			unlock()
		}()
	}
	wg.Wait()
	assert.Zero(t, locks.size())
}

func TestKeyLock_DifferentKeysDoNotBlock(t *testing.T) {
	locks := newKeyLock()
	unlockA := locks.lock("a")
	defer unlockA()

	done := make(chan struct{})
	go func() {
		unlock := locks.lock("b")
		unlock()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("lock on b waited for a")
	}
}

func contents(entries []Entry) []string {
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.Content
	}
	return out
}
