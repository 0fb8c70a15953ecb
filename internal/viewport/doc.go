// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package viewport tracks the size of the drawing surface and tells
// subscribers when it changes.
//
// Terminal sizes arrive in cells. Layout works in square units, so rows are
// scaled by the cell aspect (cell height over cell width) before publishing.
//
// # Usage
//
//	t := viewport.NewTracker()
//	unsubscribe := t.Subscribe(func(s viewport.Size) { ctrl.Resize(s.Width, s.Height) })
//	defer unsubscribe()
//
//	if s, err := viewport.Measure(int(os.Stdout.Fd()), 2.0); err == nil {
//	    t.Publish(s)
//	}
package viewport
