// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"

	"github.com/wellium/wellium-tui/internal/history"
)

// =============================================================================
// JSON EXPORTER
// =============================================================================

// JSONExporter exports histories to JSON. Output always carries the full
// entry list regardless of options, so it can be read back.
type JSONExporter struct {
	options *Options
}

// NewJSONExporter creates a new JSON exporter.
func NewJSONExporter(opts *Options) *JSONExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &JSONExporter{options: opts}
}

// Export converts a history to indented JSON.
func (e *JSONExporter) Export(h History) ([]byte, error) {
	if h.WidgetID == "" {
		return nil, ErrNoWidget
	}
	if h.Entries == nil {
		h.Entries = []history.Entry{}
	}
	return json.MarshalIndent(h, "", "  ")
}

// FileExtension returns the file extension for JSON.
func (e *JSONExporter) FileExtension() string {
	return ".json"
}

// MimeType returns the MIME type for JSON.
func (e *JSONExporter) MimeType() string {
	return "application/json"
}
