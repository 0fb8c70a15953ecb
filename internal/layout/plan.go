// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

// =============================================================================
// PLAN
// =============================================================================

// Cell is the computed geometry for one widget.
type Cell struct {
	Index  int     // Position in the registry
	Column int     // Column the widget flows into
	X, Y   float64 // Offset within the viewport
	W, H   float64
}

// Column is a vertical run of cells.
type Column struct {
	X      float64
	Width  float64
	Height float64 // Accumulated height of the cells in the column
	Cells  []int   // Registry indices, top to bottom
}

// Plan is the full layout for one viewport.
type Plan struct {
	Mode    Mode
	Width   float64
	Height  float64
	Cells   []Cell
	Columns []Column
}

// Compute lays out widgets with the given aspect ratios.
//
// Landscape plans flow widgets top to bottom, wrapping to a new column when
// the next widget would overflow the viewport height. A widget taller than
// the viewport still gets a column of its own. Portrait plans have a single
// column that may exceed the viewport height (the view scrolls).
func Compute(width, height float64, ratios []float64) (Plan, error) {
	total := len(ratios)
	mode, err := SelectMode(width, height, total)
	if err != nil {
		return Plan{}, err
	}

	plan := Plan{
		Mode:   mode,
		Width:  width,
		Height: height,
		Cells:  make([]Cell, 0, total),
	}

	var cur *Column
	for i, ratio := range ratios {
		w, h, err := Dimensions(mode, width, height, total, ratio)
		if err != nil {
			return Plan{}, err
		}

		wrap := cur == nil || (mode == Landscape && len(cur.Cells) > 0 && cur.Height+h > height)
		if wrap {
			x := 0.0
			if cur != nil {
				x = cur.X + cur.Width
			}
			plan.Columns = append(plan.Columns, Column{X: x, Width: w})
			cur = &plan.Columns[len(plan.Columns)-1]
		}

		plan.Cells = append(plan.Cells, Cell{
			Index:  i,
			Column: len(plan.Columns) - 1,
			X:      cur.X,
			Y:      cur.Height,
			W:      w,
			H:      h,
		})
		cur.Cells = append(cur.Cells, i)
		cur.Height += h
	}

	return plan, nil
}

// ContentWidth returns the total width spanned by the plan's columns.
func (p Plan) ContentWidth() float64 {
	if len(p.Columns) == 0 {
		return 0
	}
	last := p.Columns[len(p.Columns)-1]
	return last.X + last.Width
}

// ContentHeight returns the height of the tallest column.
func (p Plan) ContentHeight() float64 {
	var h float64
	for _, c := range p.Columns {
		if c.Height > h {
			h = c.Height
		}
	}
	return h
}
