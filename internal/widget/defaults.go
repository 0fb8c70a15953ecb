// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import "fmt"

// Title is the text of the dashboard title widget.
const Title = "welliuᴍ"

const inputPlaceholder = "Type something..."

// Defaults returns the stock dashboard: a title, three text widgets, a
// header, then twenty widgets cycling through labelled progress, text,
// labelled progress and input.
func Defaults() []Descriptor {
	ds := []Descriptor{
		New("", "", 0.5/3.0, false, Text(Title)),
		New("Widget 2", "This is the description for Widget 2.", 1.5/3.0, false, Text("Sample text for Widget 2.")),
		New("Widget 3", "This is the description for Widget 3.", 2.0/3.0, false, Text("Another sample text for Widget 3.")),
		New("Header 2", "", 0.5/3.0, true, Text("")),
	}

	// Widgets 4-24 repeat a four-step pattern; progress advances by ten
	// per labelled bar.
	progress := uint32(0)
	for n := 4; n <= 24; n++ {
		name := fmt.Sprintf("Widget %d", n)
		desc := fmt.Sprintf("This is the description for Widget %d.", n)
		var content Content
		switch (n - 4) % 4 {
		case 0, 2:
			content = LabeledProgress(progress, 100)
			progress += 10
		case 1:
			content = Text(fmt.Sprintf("Text block for Widget %d.", n))
		case 3:
			desc = fmt.Sprintf("This is the query for Widget %d.", n)
			content = Input(inputPlaceholder)
		}
		ds = append(ds, New(name, desc, 1.0/3.0, false, content))
	}
	return ds
}

// DefaultRegistry returns the registry built from Defaults.
func DefaultRegistry() *Registry {
	return MustRegistry(Defaults())
}
