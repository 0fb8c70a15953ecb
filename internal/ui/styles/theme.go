// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
)

// Theme holds all the styled components for the dashboard.
type Theme struct {
	// Name is the configured theme: "dark", "light" or "auto".
	Name string

	// Terminal capabilities
	IsDark       bool
	HasTrueColor bool
	ColorProfile termenv.Profile

	// ==========================================================================
	// DASHBOARD
	// ==========================================================================

	App        lipgloss.Style
	Title      lipgloss.Style
	Header     lipgloss.Style
	Widget     lipgloss.Style
	Focused    lipgloss.Style
	WidgetName lipgloss.Style
	WidgetDesc lipgloss.Style
	WidgetBody lipgloss.Style
	Label      lipgloss.Style
	Latest     lipgloss.Style
	Empty      lipgloss.Style

	// ==========================================================================
	// DETAIL VIEW
	// ==========================================================================

	DetailBox   lipgloss.Style
	DetailTitle lipgloss.Style
	EntryTime   lipgloss.Style
	EntryText   lipgloss.Style

	// ==========================================================================
	// STATUS BAR
	// ==========================================================================

	StatusBar    lipgloss.Style
	ShortcutKey  lipgloss.Style
	ShortcutDesc lipgloss.Style
	ModeBadge    lipgloss.Style

	NoticeInfo    lipgloss.Style
	NoticeWarning lipgloss.Style
	NoticeError   lipgloss.Style
}

// NewTheme creates a theme. "dark" and "light" force the palette; anything
// else follows the terminal background.
func NewTheme(name string) *Theme {
	name = strings.ToLower(strings.TrimSpace(name))
	profile := termenv.ColorProfile()

	var isDark bool
	switch name {
	case "dark":
		isDark = true
	case "light":
		isDark = false
	default:
		name = "auto"
		isDark = termenv.HasDarkBackground()
	}

	t := &Theme{
		Name:         name,
		IsDark:       isDark,
		HasTrueColor: profile == termenv.TrueColor,
		ColorProfile: profile,
	}
	t.initStyles()
	return t
}

// Apply makes lipgloss resolve adaptive colors for this theme.
// The setting is process-wide.
func (t *Theme) Apply() {
	lipgloss.SetHasDarkBackground(t.IsDark)
}

// initStyles initializes all the lip gloss styles.
func (t *Theme) initStyles() {
	t.App = lipgloss.NewStyle()

	t.Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple).
		Align(lipgloss.Center)

	t.Header = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan).
		Background(SurfaceDim).
		Padding(0, 1)

	t.Widget = lipgloss.NewStyle().
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(OverlayDim).
		Padding(0, 1)

	t.Focused = t.Widget.
		BorderForeground(FocusRing)

	t.WidgetName = lipgloss.NewStyle().
		Bold(true).
		Foreground(TextPrimary)

	t.WidgetDesc = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Italic(true)

	t.WidgetBody = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.Label = lipgloss.NewStyle().
		Foreground(TextSecondary)

	t.Latest = lipgloss.NewStyle().
		Foreground(Emerald)

	t.Empty = lipgloss.NewStyle().
		Foreground(TextMuted).
		Italic(true)

	t.DetailBox = lipgloss.NewStyle().
		BorderStyle(lipgloss.DoubleBorder()).
		BorderForeground(Purple).
		Padding(0, 1)

	t.DetailTitle = lipgloss.NewStyle().
		Bold(true).
		Foreground(Purple)

	t.EntryTime = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.EntryText = lipgloss.NewStyle().
		Foreground(TextPrimary)

	t.StatusBar = lipgloss.NewStyle().
		Foreground(TextSecondary).
		Background(SurfaceDim)

	t.ShortcutKey = lipgloss.NewStyle().
		Bold(true).
		Foreground(Cyan)

	t.ShortcutDesc = lipgloss.NewStyle().
		Foreground(TextMuted)

	t.ModeBadge = lipgloss.NewStyle().
		Bold(true).
		Foreground(Surface).
		Background(Cyan).
		Padding(0, 1)

	t.NoticeInfo = lipgloss.NewStyle().Foreground(InfoHighContrast)
	t.NoticeWarning = lipgloss.NewStyle().Foreground(WarningHighContrast).Bold(true)
	t.NoticeError = lipgloss.NewStyle().Foreground(ErrorHighContrast).Bold(true)
}

// WidgetBox returns the border style for a widget.
func (t *Theme) WidgetBox(focused bool) lipgloss.Style {
	if focused {
		return t.Focused
	}
	return t.Widget
}
