// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"math"

	"github.com/wellium/wellium-tui/internal/layout"
)

const (
	minBoxRows = 3  // border plus one line
	minColCols = 12 // narrowest usable landscape column
)

// placed is a widget box in terminal cells, relative to the full content.
type placed struct {
	index int // registry position
	x, y  int
	w, h  int
}

// grid is a layout plan converted to terminal cells.
type grid struct {
	mode    layout.Mode
	boxes   []placed // in registry order
	columns [][]int  // indexes into boxes, per column
	colX    []int
	colW    []int
	height  int // tallest column in rows
}

// buildGrid converts plan geometry to cells. Heights in layout units are
// divided by the cell aspect; boxes within a column are stacked without
// gaps so rounding never overlaps them.
func buildGrid(plan layout.Plan, aspect float64) grid {
	if aspect <= 0 {
		aspect = 1
	}
	g := grid{mode: plan.Mode, boxes: make([]placed, len(plan.Cells))}

	x := 0
	for _, col := range plan.Columns {
		w := int(math.Round(col.Width))
		if plan.Mode == layout.Landscape && w < minColCols {
			w = minColCols
		}
		if w < 1 {
			w = 1
		}

		members := make([]int, 0, len(col.Cells))
		y := 0
		for _, ci := range col.Cells {
			cell := plan.Cells[ci]
			h := int(math.Round(cell.H / aspect))
			if h < minBoxRows {
				h = minBoxRows
			}
			g.boxes[ci] = placed{index: cell.Index, x: x, y: y, w: w, h: h}
			members = append(members, ci)
			y += h
		}
		if y > g.height {
			g.height = y
		}

		g.columns = append(g.columns, members)
		g.colX = append(g.colX, x)
		g.colW = append(g.colW, w)
		x += w
	}
	return g
}

// columnOf returns the column holding box i, or -1.
func (g grid) columnOf(i int) int {
	for c, members := range g.columns {
		for _, b := range members {
			if b == i {
				return c
			}
		}
	}
	return -1
}

// visibleColumns returns the range [first, end) of columns that fit in
// width cells starting at first. At least one column is always included.
func (g grid) visibleColumns(first, width int) (int, int) {
	if first < 0 {
		first = 0
	}
	if first >= len(g.columns) {
		first = len(g.columns) - 1
	}
	end := first
	used := 0
	for end < len(g.columns) {
		if end > first && used+g.colW[end] > width {
			break
		}
		used += g.colW[end]
		end++
	}
	return first, end
}

// hit returns the box under the cell (x, y) in content coordinates.
func (g grid) hit(x, y int) (placed, bool) {
	for _, b := range g.boxes {
		if x >= b.x && x < b.x+b.w && y >= b.y && y < b.y+b.h {
			return b, true
		}
	}
	return placed{}, false
}
