// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/wellium/wellium-tui/internal/layout"
)

// LayoutReport is the output of `wellium layout`.
type LayoutReport struct {
	Width     float64      `json:"width"`
	Height    float64      `json:"height"`
	Mode      string       `json:"mode"`
	Threshold float64      `json:"threshold"`
	Columns   int          `json:"columns"`
	Cells     []LayoutCell `json:"cells"`
}

// LayoutCell is one widget's computed geometry.
type LayoutCell struct {
	ID     string  `json:"id"`
	Column int     `json:"column"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	W      float64 `json:"w"`
	H      float64 `json:"h"`
}

// HandleLayout computes and prints the plan for a viewport.
func HandleLayout(env *Env, args Args) error {
	usage := "wellium layout 1000 500"
	if args.Parser.PositionalCount() < 3 {
		return ErrMissingArgument("width and height", usage)
	}
	width, err := ParsePositiveFloat(args.Parser.Positional(1), "width")
	if err != nil {
		return err
	}
	height, err := ParsePositiveFloat(args.Parser.Positional(2), "height")
	if err != nil {
		return err
	}

	reg := env.Registry
	plan, err := layout.Compute(width, height, reg.AspectRatios())
	if err != nil {
		return NewCommandError("layout", "compute", "invalid viewport", err)
	}

	report := LayoutReport{
		Width:     width,
		Height:    height,
		Mode:      plan.Mode.String(),
		Threshold: layout.Threshold(reg.Len()),
		Columns:   len(plan.Columns),
	}
	for _, c := range plan.Cells {
		report.Cells = append(report.Cells, LayoutCell{
			ID:     reg.At(c.Index).ID,
			Column: c.Column,
			X:      c.X,
			Y:      c.Y,
			W:      c.W,
			H:      c.H,
		})
	}

	if args.JSON {
		return NewJSONResponse("layout", report).Print(env.Out)
	}

	fmt.Fprintln(env.Out, TitleStyle.Render(fmt.Sprintf("Layout %gx%g", width, height)))
	fmt.Fprintf(env.Out, "%s %s (width/height %.3f, threshold %.4f)\n",
		RenderLabel("Mode:", 10), report.Mode, width/height, report.Threshold)
	fmt.Fprintf(env.Out, "%s %d\n", RenderLabel("Columns:", 10), report.Columns)
	fmt.Fprintln(env.Out, RenderSeparator(64))
	for _, c := range report.Cells {
		fmt.Fprintf(env.Out, "%-18s col %-2d x=%-8.1f y=%-8.1f %8.1f x %-8.1f\n",
			c.ID, c.Column, c.X, c.Y, c.W, c.H)
	}
	return nil
}
