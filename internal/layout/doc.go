// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package layout implements the adaptive layout engine for the wellium dashboard.
//
// The engine is a pair of pure functions. SelectMode decides whether the
// viewport is wide enough for a multi-column landscape layout, and
// Dimensions sizes a single widget for that mode. Compute runs both over
// the whole registry and flows the widgets into columns.
//
// # Key Types
//
//   - Mode: Landscape or Portrait
//   - Plan: the mode plus per-widget cells and columns
//
// # Usage
//
//	mode, err := layout.SelectMode(width, height, len(widgets))
//	w, h, err := layout.Dimensions(mode, width, height, len(widgets), 1.0/3.0)
//
//	plan, err := layout.Compute(width, height, ratios)
//
// Threshold and column width are count sensitive: both clamp the widget
// count into [MinWidgets, MaxWidgets] before use.
package layout
