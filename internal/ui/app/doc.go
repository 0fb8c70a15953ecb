// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package app is the bubbletea front end of the dashboard.
//
// The Model owns only presentation state: focus, scroll offsets, the text
// input and the detail viewport. Everything else is asked of the
// dashboard.Controller, which receives storage results through Apply.
//
// Terminal sizes go through a viewport.Tracker; its subscriber recomputes
// the controller's layout plan, and the View turns that plan into boxes
// measured in terminal cells.
//
// # Keys
//
//	tab/j/down    next widget         enter   open history
//	shift+tab/k   previous widget     i       type into an input widget
//	h/l           previous/next column
//	esc/q         close history       ?       toggle help
package app
