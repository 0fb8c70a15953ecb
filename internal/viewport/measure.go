// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package viewport

import (
	"errors"
	"fmt"

	"golang.org/x/term"
)

// DefaultCellAspect is the usual height-to-width ratio of a terminal cell.
const DefaultCellAspect = 2.0

// ErrNotTerminal is returned by Measure when fd is not a terminal.
var ErrNotTerminal = errors.New("not a terminal")

// FromCells converts a terminal size in cells to layout units.
// A non-positive cellAspect falls back to DefaultCellAspect.
func FromCells(cols, rows int, cellAspect float64) Size {
	if cellAspect <= 0 {
		cellAspect = DefaultCellAspect
	}
	return Size{
		Width:  float64(cols),
		Height: float64(rows) * cellAspect,
		Cols:   cols,
		Rows:   rows,
	}
}

// Measure reads the current size of the terminal on fd.
func Measure(fd int, cellAspect float64) (Size, error) {
	if !term.IsTerminal(fd) {
		return Size{}, ErrNotTerminal
	}
	cols, rows, err := term.GetSize(fd)
	if err != nil {
		return Size{}, fmt.Errorf("get terminal size: %w", err)
	}
	return FromCells(cols, rows, cellAspect), nil
}

// IsTerminal reports whether fd is a terminal.
func IsTerminal(fd int) bool {
	return term.IsTerminal(fd)
}
