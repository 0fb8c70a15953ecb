// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"fmt"

	"github.com/wellium/wellium-tui/internal/util"
	"github.com/wellium/wellium-tui/internal/widget"
)

// WidgetInfo is one row of `wellium widgets`.
type WidgetInfo struct {
	Index       int     `json:"index"`
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Kind        string  `json:"kind"`
	AspectRatio float64 `json:"aspect_ratio"`
	Header      bool    `json:"header"`
	Selectable  bool    `json:"selectable"`
	Interactive bool    `json:"interactive"`
}

func widgetInfos(reg *widget.Registry) []WidgetInfo {
	out := make([]WidgetInfo, 0, reg.Len())
	for i, d := range reg.All() {
		out = append(out, WidgetInfo{
			Index:       i,
			ID:          d.ID,
			Name:        d.Name,
			Kind:        d.Content.Kind.String(),
			AspectRatio: d.AspectRatio,
			Header:      d.IsHeader,
			Selectable:  reg.Selectable(i),
			Interactive: d.Interactive(),
		})
	}
	return out
}

// HandleWidgets lists the widget registry.
func HandleWidgets(env *Env, args Args) error {
	infos := widgetInfos(env.Registry)
	if args.JSON {
		return NewJSONResponse("widgets", infos).Print(env.Out)
	}

	fmt.Fprintln(env.Out, TitleStyle.Render("Widgets"))
	fmt.Fprintln(env.Out, RenderSeparator(64))
	for _, w := range infos {
		name := w.Name
		if name == "" {
			name = "(title)"
		}
		var flags string
		switch {
		case w.Interactive:
			flags = "input"
		case !w.Selectable:
			flags = "static"
		}
		fmt.Fprintf(env.Out, "%3d  %s %s %s %s\n",
			w.Index,
			ValueStyle.Render(util.PadWidth(w.ID, 20)),
			util.PadWidth(name, 10),
			DimStyle.Render(util.PadWidth(w.Kind, 18)),
			WarningStyle.Render(flags),
		)
	}
	return nil
}
