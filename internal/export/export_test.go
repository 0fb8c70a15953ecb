// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellium/wellium-tui/internal/history"
)

func sampleHistory() History {
	return History{
		WidgetID:    "widget-widget-7",
		Name:        "Widget 7",
		Description: "This is the query for Widget 7.",
		ExportedAt:  time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC),
		Entries: []history.Entry{
			{ID: "b", Seq: 2, WidgetID: "widget-widget-7", Timestamp: "2025-03-01T11:00:00.000Z", Content: "second"},
			{ID: "a", Seq: 1, WidgetID: "widget-widget-7", Timestamp: "2025-03-01T10:00:00.000Z", Content: "first\nline two"},
		},
	}
}

// =============================================================================
// JSON TESTS
// =============================================================================

func TestJSONExporter_RoundTrip(t *testing.T) {
	h := sampleHistory()
	data, err := NewJSONExporter(nil).Export(h)
	require.NoError(t, err)

	var got History
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, h.WidgetID, got.WidgetID)
	assert.Equal(t, h.Entries, got.Entries)
	assert.True(t, h.ExportedAt.Equal(got.ExportedAt))
}

func TestJSONExporter_EmptyEntriesIsArray(t *testing.T) {
	data, err := NewJSONExporter(nil).Export(History{WidgetID: "widget-x"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"entries": []`)
}

func TestExporters_RequireWidgetID(t *testing.T) {
	_, err := NewJSONExporter(nil).Export(History{})
	assert.ErrorIs(t, err, ErrNoWidget)

	_, err = NewMarkdownExporter(nil).Export(History{})
	assert.ErrorIs(t, err, ErrNoWidget)
}

// =============================================================================
// MARKDOWN TESTS
// =============================================================================

func TestMarkdownExporter_Content(t *testing.T) {
	data, err := NewMarkdownExporter(nil).Export(sampleHistory())
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, "---\n"))
	assert.Contains(t, out, "widget: widget-widget-7\n")
	assert.Contains(t, out, "entries: 2\n")
	assert.Contains(t, out, "# Widget 7\n")
	assert.Contains(t, out, "> first\n> line two")

	// Newest first, as stored.
	assert.Less(t, strings.Index(out, "second"), strings.Index(out, "first"))
}

func TestMarkdownExporter_NoMetadata(t *testing.T) {
	opts := DefaultOptions()
	opts.IncludeMetadata = false
	opts.IncludeTimestamps = false

	data, err := NewMarkdownExporter(opts).Export(sampleHistory())
	require.NoError(t, err)
	out := string(data)

	assert.True(t, strings.HasPrefix(out, "# Widget 7"))
	assert.NotContains(t, out, "2025-03-01T")
}

func TestMarkdownExporter_Empty(t *testing.T) {
	data, err := NewMarkdownExporter(nil).Export(History{WidgetID: "widget-x"})
	require.NoError(t, err)
	assert.Contains(t, string(data), "No historical data")
}

func TestEscapeYAML(t *testing.T) {
	assert.Equal(t, "plain", escapeYAML("plain"))
	assert.Equal(t, `"a: b"`, escapeYAML("a: b"))
}

// =============================================================================
// FILE TESTS
// =============================================================================

func TestExportToFile(t *testing.T) {
	dir := t.TempDir()
	opts := DefaultOptions()
	opts.OutputDir = dir

	path, err := ExportToFile(sampleHistory(), NewMarkdownExporter(opts), opts)
	require.NoError(t, err)

	assert.Equal(t, dir, filepath.Dir(path))
	assert.Equal(t, "history_widget-widget-7_20250301_120000.md", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Widget 7")
}

func TestForFormat(t *testing.T) {
	e, err := ForFormat("md", nil)
	require.NoError(t, err)
	assert.Equal(t, ".md", e.FileExtension())

	e, err = ForFormat("JSON", nil)
	require.NoError(t, err)
	assert.Equal(t, "application/json", e.MimeType())

	_, err = ForFormat("html", nil)
	assert.Error(t, err)
}

func TestSanitizeFilename(t *testing.T) {
	assert.Equal(t, "a-b_c", sanitizeFilename("a/b c"))
	assert.Equal(t, "widget", sanitizeFilename(""))
	assert.Len(t, []rune(sanitizeFilename(strings.Repeat("x", 80))), 50)
}
