// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"sync"
)

// =============================================================================
// ASYNC FRONT
// =============================================================================

// Result is the outcome of an asynchronous store operation.
type Result struct {
	WidgetID string
	Entry    Entry   // AddEntry
	Entries  []Entry // Entries
	Err      error
}

// Async runs store operations off the caller's goroutine.
//
// Operations on one widget id run strictly in the order they were issued,
// reads included, so a read issued after a write observes it. Operations on
// different widget ids run independently.
type Async struct {
	store Store

	mu    sync.Mutex
	tails map[string]chan struct{} // completion of the last op issued per widget
	wg    sync.WaitGroup
}

// NewAsync wraps store.
func NewAsync(store Store) *Async {
	return &Async{store: store, tails: make(map[string]chan struct{})}
}

// Store returns the wrapped store.
func (a *Async) Store() Store { return a.store }

// AddEntryAsync issues a write and returns immediately. The result is
// delivered exactly once on the returned channel.
func (a *Async) AddEntryAsync(ctx context.Context, widgetID, content string) <-chan Result {
	out := make(chan Result, 1)
	a.enqueue(widgetID, func() {
		e, err := a.store.AddEntry(ctx, widgetID, content)
		out <- Result{WidgetID: widgetID, Entry: e, Err: err}
	})
	return out
}

// EntriesAsync issues a read and returns immediately.
func (a *Async) EntriesAsync(ctx context.Context, widgetID string) <-chan Result {
	out := make(chan Result, 1)
	a.enqueue(widgetID, func() {
		es, err := a.store.Entries(ctx, widgetID)
		out <- Result{WidgetID: widgetID, Entries: es, Err: err}
	})
	return out
}

// Wait blocks until every issued operation has finished.
func (a *Async) Wait() {
	a.wg.Wait()
}

// pending returns the number of widgets with queued or running work.
func (a *Async) pending() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.tails)
}

func (a *Async) enqueue(widgetID string, fn func()) {
	a.mu.Lock()
	prev := a.tails[widgetID]
	done := make(chan struct{})
	a.tails[widgetID] = done
	a.mu.Unlock()

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()
		if prev != nil {
			<-prev
		}
		fn()
		close(done)

		a.mu.Lock()
		if a.tails[widgetID] == done {
			delete(a.tails, widgetID)
		}
		a.mu.Unlock()
	}()
}
