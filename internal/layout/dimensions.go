// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import "fmt"

// =============================================================================
// DIMENSION CALCULATOR
// =============================================================================

// ColumnWidth returns the shared landscape column width for a viewport height.
func ColumnWidth(height float64, totalWidgets int) float64 {
	return height / (clampCount(totalWidgets) / columnDivisor)
}

// Dimensions returns the width and height of one widget.
//
// In landscape every widget shares the column width and only the height
// follows its aspect ratio. In portrait the widget spans the viewport width.
func Dimensions(mode Mode, width, height float64, totalWidgets int, aspectRatio float64) (float64, float64, error) {
	if !positiveFinite(aspectRatio) {
		return 0, 0, fmt.Errorf("%w: aspect ratio %g", ErrInvalidViewport, aspectRatio)
	}

	switch mode {
	case Landscape:
		if !positiveFinite(height) || totalWidgets < 1 {
			return 0, 0, fmt.Errorf("%w: height %g", ErrInvalidViewport, height)
		}
		col := ColumnWidth(height, totalWidgets)
		return col, col * aspectRatio, nil
	case Portrait:
		if !positiveFinite(width) {
			return 0, 0, fmt.Errorf("%w: width %g", ErrInvalidViewport, width)
		}
		return width, width * aspectRatio, nil
	default:
		return 0, 0, fmt.Errorf("unknown layout mode %d", int(mode))
	}
}
