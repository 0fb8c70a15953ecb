// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import "github.com/charmbracelet/bubbles/key"

// =============================================================================
// KEY MAP DEFINITION
// =============================================================================

// KeyMap defines all keyboard bindings for the dashboard.
type KeyMap struct {
	Next       key.Binding
	Prev       key.Binding
	NextColumn key.Binding
	PrevColumn key.Binding
	Open       key.Binding
	Edit       key.Binding
	Help       key.Binding
	Quit       key.Binding
	ForceQuit  key.Binding

	// Detail view
	Close      key.Binding
	ScrollUp   key.Binding
	ScrollDown key.Binding

	// Editing
	Submit key.Binding
	Cancel key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Next: key.NewBinding(
			key.WithKeys("tab", "down", "j"),
			key.WithHelp("tab/j", "next"),
		),
		Prev: key.NewBinding(
			key.WithKeys("shift+tab", "up", "k"),
			key.WithHelp("S-tab/k", "previous"),
		),
		NextColumn: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("l", "next column"),
		),
		PrevColumn: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("h", "previous column"),
		),
		Open: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "history"),
		),
		Edit: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "type"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q"),
			key.WithHelp("q", "quit"),
		),
		ForceQuit: key.NewBinding(
			key.WithKeys("ctrl+c"),
			key.WithHelp("C-c", "quit"),
		),
		Close: key.NewBinding(
			key.WithKeys("esc", "q"),
			key.WithHelp("esc/q", "close"),
		),
		ScrollUp: key.NewBinding(
			key.WithKeys("up", "k", "pgup"),
			key.WithHelp("k", "scroll up"),
		),
		ScrollDown: key.NewBinding(
			key.WithKeys("down", "j", "pgdown"),
			key.WithHelp("j", "scroll down"),
		),
		Submit: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "save"),
		),
		Cancel: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "stop typing"),
		),
	}
}

// =============================================================================
// CONTEXTUAL HELP
// =============================================================================

// dashboardHelp, detailHelp and editHelp present the bindings that apply in
// each mode to bubbles/help.
type dashboardHelp KeyMap

func (k dashboardHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Open, k.Edit, k.Help, k.Quit}
}

func (k dashboardHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev},
		{k.NextColumn, k.PrevColumn},
		{k.Open, k.Edit},
		{k.Help, k.Quit},
	}
}

type detailHelp KeyMap

func (k detailHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.ScrollUp, k.ScrollDown, k.Close}
}

func (k detailHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

type editHelp KeyMap

func (k editHelp) ShortHelp() []key.Binding {
	return []key.Binding{k.Submit, k.Cancel}
}

func (k editHelp) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}
