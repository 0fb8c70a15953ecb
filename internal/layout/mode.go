// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import (
	"errors"
	"fmt"
	"math"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	// ErrInvalidViewport is returned when a layout function is called before a
	// usable (positive, finite) viewport measurement exists.
	ErrInvalidViewport = errors.New("invalid viewport")
)

// =============================================================================
// MODE
// =============================================================================

// Mode is the orientation-driven layout strategy.
type Mode int

const (
	Portrait  Mode = iota // Single full-width column
	Landscape             // Fixed-width columns sized from the viewport height
)

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case Landscape:
		return "landscape"
	case Portrait:
		return "portrait"
	default:
		return "unknown"
	}
}

// Widget count bounds used by the threshold and column-width formulas.
const (
	MinWidgets = 12
	MaxWidgets = 24

	thresholdSlope     = -0.0558
	thresholdIntercept = 2.0
	columnDivisor      = 16.0
)

// clampCount clamps the widget count into [MinWidgets, MaxWidgets].
func clampCount(totalWidgets int) float64 {
	n := totalWidgets
	if n < MinWidgets {
		n = MinWidgets
	}
	if n > MaxWidgets {
		n = MaxWidgets
	}
	return float64(n)
}

// Threshold returns the width/height ratio above which the dashboard switches
// to landscape. It falls from ~1.33 at 12 widgets to ~0.66 at 24, so larger
// dashboards go multi-column sooner.
func Threshold(totalWidgets int) float64 {
	return clampCount(totalWidgets)*thresholdSlope + thresholdIntercept
}

// SelectMode picks the layout mode for a viewport.
// Returns ErrInvalidViewport when either dimension is not a positive finite
// number or totalWidgets is below one.
func SelectMode(width, height float64, totalWidgets int) (Mode, error) {
	if err := checkViewport(width, height, totalWidgets); err != nil {
		return Portrait, err
	}
	if width/height > Threshold(totalWidgets) {
		return Landscape, nil
	}
	return Portrait, nil
}

func checkViewport(width, height float64, totalWidgets int) error {
	if !positiveFinite(width) || !positiveFinite(height) {
		return fmt.Errorf("%w: %gx%g", ErrInvalidViewport, width, height)
	}
	if totalWidgets < 1 {
		return fmt.Errorf("%w: widget count %d", ErrInvalidViewport, totalWidgets)
	}
	return nil
}

func positiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
