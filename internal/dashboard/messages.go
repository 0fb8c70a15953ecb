// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"time"

	"github.com/wellium/wellium-tui/internal/history"
)

// =============================================================================
// STORAGE MESSAGES
// =============================================================================

// HistoryLoadedMsg delivers a widget's entries, newest first.
type HistoryLoadedMsg struct {
	WidgetID   string
	Generation uint64
	Entries    []history.Entry
	Err        error
	Preload    bool // issued by Preload, not by Select
}

// EntryAddedMsg reports the outcome of a Submit.
type EntryAddedMsg struct {
	WidgetID string
	Content  string // as submitted, so a failed write can be retried
	Entry    history.Entry
	Err      error
}

// =============================================================================
// NOTICES
// =============================================================================

// NoticeKind classifies a notice for styling.
type NoticeKind int

const (
	NoticeInfo NoticeKind = iota
	NoticeWarning
	NoticeError
)

// String returns the notice kind name.
func (k NoticeKind) String() string {
	switch k {
	case NoticeInfo:
		return "info"
	case NoticeWarning:
		return "warning"
	case NoticeError:
		return "error"
	default:
		return "unknown"
	}
}

// Notice is a non-blocking message for the user.
type Notice struct {
	Kind NoticeKind
	Text string
	At   time.Time
}

// Duration returns how long the notice stays on screen.
func (n Notice) Duration() time.Duration {
	switch n.Kind {
	case NoticeError:
		return 8 * time.Second
	case NoticeWarning:
		return 6 * time.Second
	default:
		return 4 * time.Second
	}
}
