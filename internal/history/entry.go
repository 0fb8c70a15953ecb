// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package history

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrStoreUnavailable = errors.New("history store unavailable")
	ErrWriteFailed      = errors.New("history write failed")
	ErrReadFailed       = errors.New("history read failed")
	ErrInvalidEntry     = errors.New("invalid history entry")
)

// =============================================================================
// ENTRY
// =============================================================================

// TimestampFormat is the ISO-8601 layout used for entry timestamps (UTC, ms).
const TimestampFormat = "2006-01-02T15:04:05.000Z"

// Entry is one submitted value. Entries are immutable once written.
type Entry struct {
	ID        string `json:"id"`
	Seq       int64  `json:"seq"`
	WidgetID  string `json:"widget_id"`
	Timestamp string `json:"timestamp"`
	Content   string `json:"content"`
}

// Time parses the entry timestamp.
func (e Entry) Time() (time.Time, error) {
	return time.Parse(TimestampFormat, e.Timestamp)
}

// FormatTimestamp renders t in TimestampFormat.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(TimestampFormat)
}

// =============================================================================
// STORE INTERFACE
// =============================================================================

// Store is a per-widget append-only journal.
type Store interface {
	// AddEntry stamps and durably writes an entry, returning what was written.
	AddEntry(ctx context.Context, widgetID, content string) (Entry, error)

	// Entries returns the widget's entries, most recently added first.
	// Unknown widget ids yield an empty slice.
	Entries(ctx context.Context, widgetID string) ([]Entry, error)

	// Close releases the store.
	Close() error
}

func validate(widgetID, content string) error {
	if widgetID == "" {
		return fmt.Errorf("%w: empty widget id", ErrInvalidEntry)
	}
	if content == "" {
		return fmt.Errorf("%w: empty content", ErrInvalidEntry)
	}
	return nil
}
