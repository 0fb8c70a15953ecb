// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"fmt"
	"strings"
	"time"
)

// =============================================================================
// MARKDOWN EXPORTER
// =============================================================================

// MarkdownExporter exports histories to Markdown.
type MarkdownExporter struct {
	options *Options
}

// NewMarkdownExporter creates a new Markdown exporter.
func NewMarkdownExporter(opts *Options) *MarkdownExporter {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &MarkdownExporter{options: opts}
}

// Export converts a history to Markdown.
func (e *MarkdownExporter) Export(h History) ([]byte, error) {
	if h.WidgetID == "" {
		return nil, ErrNoWidget
	}

	var sb strings.Builder

	if e.options.IncludeMetadata {
		exported := h.ExportedAt
		if exported.IsZero() {
			exported = time.Now()
		}
		sb.WriteString("---\n")
		sb.WriteString(fmt.Sprintf("widget: %s\n", escapeYAML(h.WidgetID)))
		if h.Name != "" {
			sb.WriteString(fmt.Sprintf("name: %s\n", escapeYAML(h.Name)))
		}
		sb.WriteString(fmt.Sprintf("entries: %d\n", len(h.Entries)))
		sb.WriteString(fmt.Sprintf("exported: %s\n", exported.Format(time.RFC3339)))
		sb.WriteString("generator: wellium-tui\n")
		sb.WriteString("---\n\n")
	}

	title := h.Name
	if title == "" {
		title = h.WidgetID
	}
	sb.WriteString(fmt.Sprintf("# %s\n\n", title))
	if h.Description != "" {
		sb.WriteString(fmt.Sprintf("_%s_\n\n", h.Description))
	}

	if len(h.Entries) == 0 {
		sb.WriteString("No historical data\n")
		return []byte(sb.String()), nil
	}

	for _, entry := range h.Entries {
		if e.options.IncludeTimestamps {
			sb.WriteString(fmt.Sprintf("## %s\n\n", entry.Timestamp))
		}
		sb.WriteString(quote(entry.Content))
		sb.WriteString("\n\n")
	}

	return []byte(strings.TrimRight(sb.String(), "\n") + "\n"), nil
}

// FileExtension returns the file extension for Markdown.
func (e *MarkdownExporter) FileExtension() string {
	return ".md"
}

// MimeType returns the MIME type for Markdown.
func (e *MarkdownExporter) MimeType() string {
	return "text/markdown"
}

// quote renders content as a Markdown blockquote.
func quote(s string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = "> " + l
	}
	return strings.Join(lines, "\n")
}

// escapeYAML quotes a front matter value when it would not parse as-is.
func escapeYAML(s string) string {
	if strings.ContainsAny(s, ":#'\"\n[]{}") || strings.TrimSpace(s) != s {
		return fmt.Sprintf("%q", s)
	}
	return s
}
