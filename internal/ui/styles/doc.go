// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

/*
Package styles provides the visual styling system for the wellium dashboard.

# Color System (colors.go)

All colors are Lip Gloss AdaptiveColor values, so one palette serves light and
dark terminals:

  - Purple: title, focused widget border
  - Cyan: headers and links
  - Emerald: progress fill, success notices
  - Amber: warnings
  - Rose: errors

Surface and text tokens layer on top (Surface, SurfaceDim, TextPrimary,
TextSecondary, TextMuted).

# Theme System (theme.go)

A Theme resolves the configured name ("dark", "light", "auto") against the
terminal and builds every style the dashboard draws with:

	theme := styles.NewTheme("auto")
	box := theme.WidgetBox(focused).Width(w).Render(body)
*/
package styles
