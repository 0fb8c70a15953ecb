// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package dashboard is the state machine behind the widget screen.
//
// A Controller owns the current layout plan, the Idle/DetailOpen state, and
// a per-widget cache of what is on screen. Storage work is issued through
// history.Async at call time and handed back as a tea.Cmd whose message is
// folded in with Apply. The Controller is not safe for concurrent use; it
// lives on the bubbletea update goroutine.
//
// # States
//
//	Idle --Select(id)--> DetailOpen(id) --Close()--> Idle
//
// Every Select and Close bumps a generation counter. A HistoryLoadedMsg
// carries the generation it was issued under, so a load that finishes after
// its detail view closed is not shown in a later one.
package dashboard
