// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history provides the per-widget entry journal for wellium.
//
// Every interactive widget accumulates timestamped entries. Entries are
// append-only: they are never edited, deleted or expired.
//
// # Key Types
//
//   - Entry: one submitted value (widget id, ISO-8601 timestamp, content)
//   - Store: the synchronous store interface
//   - SQLiteStore: durable store backed by modernc.org/sqlite
//   - Opener: idempotent provisioning of a SQLiteStore
//   - Async: non-blocking front that keeps per-widget issue order
//   - Unavailable: degraded store used when storage cannot be opened
//
// # Usage
//
//	opener := history.NewOpener(path)
//	store, err := opener.Open(ctx)
//	if err != nil {
//		// errors.Is(err, history.ErrStoreUnavailable)
//		fallback := history.Unavailable{Cause: err}
//	}
//
//	entry, err := store.AddEntry(ctx, "widget-widget-7", "hello")
//	entries, err := store.Entries(ctx, "widget-widget-7") // newest first
//
// # Storage Location
//
// The database lives at ~/.wellium/history.db unless configured otherwise.
// Its schema is managed by golang-migrate from the embedded migrations.
package history
