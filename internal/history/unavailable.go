// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"fmt"
)

// Unavailable is the degraded Store used when persistence could not be
// initialized. Reads return empty history; writes fail.
type Unavailable struct {
	Cause error
}

// AddEntry always fails with ErrStoreUnavailable.
func (u Unavailable) AddEntry(context.Context, string, string) (Entry, error) {
	if u.Cause != nil {
		return Entry{}, fmt.Errorf("%w: %v", ErrStoreUnavailable, u.Cause)
	}
	return Entry{}, ErrStoreUnavailable
}

// Entries always returns an empty history.
func (u Unavailable) Entries(context.Context, string) ([]Entry, error) {
	return []Entry{}, nil
}

// Close implements Store.
func (u Unavailable) Close() error { return nil }
