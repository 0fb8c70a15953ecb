// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package widget defines dashboard widget descriptors and the immutable registry.
//
// A Descriptor is pure data: display strings, an aspect ratio, a header flag
// and a Content value naming the renderer to use. The registry is built once
// at startup from a table (see Defaults) and never changes afterwards.
//
// # Identity
//
// Widget ids are derived from names: "Widget 7" becomes "widget-widget-7",
// and an empty name maps to the reserved TitleID. Ids must be unique.
//
// # Selectability
//
// The first widget in display order is the title widget and is never
// selectable, whatever its IsHeader flag says. Header widgets are never
// selectable either.
package widget
