// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package export writes a widget's history to portable formats.
//
// # Key Types
//
//   - History: a widget plus its entries, newest first
//   - Exporter: format-specific encoder
//   - Options: output location and metadata toggles
//
// # Supported Formats
//
//   - JSON: the stored entries verbatim, suitable for re-import
//   - Markdown: a readable journal with a YAML front matter block
//
// # Usage
//
//	h := export.History{WidgetID: id, Name: "Widget 7", Entries: entries}
//	data, err := export.NewMarkdownExporter(nil).Export(h)
//
//	path, err := export.ExportToFile(h, export.NewJSONExporter(nil), opts)
package export
