// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package viewport

import (
	"fmt"
	"sync"
)

// =============================================================================
// SIZE
// =============================================================================

// Size is a viewport measured in layout units.
type Size struct {
	Width  float64
	Height float64

	// Cols and Rows are the terminal cells the size was derived from.
	Cols int
	Rows int
}

// String returns "WxH" in layout units.
func (s Size) String() string {
	return fmt.Sprintf("%gx%g", s.Width, s.Height)
}

// =============================================================================
// TRACKER
// =============================================================================

type subscriber struct {
	id int
	fn func(Size)
}

// Tracker publishes viewport sizes to subscribers.
// Callbacks run synchronously on the publishing goroutine in subscription
// order, so a subscriber must not call back into the tracker.
type Tracker struct {
	mu      sync.Mutex
	subs    []subscriber
	nextID  int
	current Size
	known   bool
}

// NewTracker creates a tracker with no size yet.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Subscribe registers fn and returns a function that removes it.
// The unsubscribe function is safe to call more than once.
func (t *Tracker) Subscribe(fn func(Size)) (unsubscribe func()) {
	t.mu.Lock()
	id := t.nextID
	t.nextID++
	t.subs = append(t.subs, subscriber{id: id, fn: fn})
	t.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			t.mu.Lock()
			defer t.mu.Unlock()
			for i, s := range t.subs {
				if s.id == id {
					t.subs = append(t.subs[:i:i], t.subs[i+1:]...)
					return
				}
			}
		})
	}
}

// Publish records s and notifies subscribers. A size equal to the current
// one is dropped. It reports whether subscribers were notified.
func (t *Tracker) Publish(s Size) bool {
	t.mu.Lock()
	if t.known && t.current.Width == s.Width && t.current.Height == s.Height {
		t.mu.Unlock()
		return false
	}
	t.current = s
	t.known = true
	subs := make([]subscriber, len(t.subs))
	copy(subs, t.subs)
	t.mu.Unlock()

	for _, sub := range subs {
		sub.fn(s)
	}
	return true
}

// Current returns the last published size and whether one exists.
func (t *Tracker) Current() (Size, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.current, t.known
}

// Subscribers returns the number of registered callbacks.
func (t *Tracker) Subscribers() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.subs)
}
