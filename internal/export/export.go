// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package export

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/wellium/wellium-tui/internal/history"
	"github.com/wellium/wellium-tui/internal/util"
)

// =============================================================================
// EXPORT INTERFACE
// =============================================================================

// History is the unit of export: one widget and its entries, newest first.
type History struct {
	WidgetID    string          `json:"widget_id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	ExportedAt  time.Time       `json:"exported_at"`
	Entries     []history.Entry `json:"entries"`
}

// Exporter encodes a History in one format.
type Exporter interface {
	// Export converts the history to the target format.
	Export(h History) ([]byte, error)

	// FileExtension returns the file extension, including the dot.
	FileExtension() string

	// MimeType returns the MIME type of the format.
	MimeType() string
}

// ErrNoWidget is returned when a History has no widget id.
var ErrNoWidget = errors.New("history has no widget id")

// =============================================================================
// EXPORT OPTIONS
// =============================================================================

// Options configures export behavior.
type Options struct {
	// OutputDir is the directory for generated files. Default: "."
	OutputDir string

	// OpenAfterExport opens the file in the default application.
	OpenAfterExport bool

	// IncludeMetadata adds the front matter block to Markdown output.
	IncludeMetadata bool

	// IncludeTimestamps prints each entry's timestamp in Markdown output.
	IncludeTimestamps bool
}

// DefaultOptions returns default export options.
func DefaultOptions() *Options {
	return &Options{
		OutputDir:         ".",
		IncludeMetadata:   true,
		IncludeTimestamps: true,
	}
}

// ForFormat returns the exporter for a format name ("json", "md", "markdown").
func ForFormat(name string, opts *Options) (Exporter, error) {
	switch strings.ToLower(name) {
	case "", "json":
		return NewJSONExporter(opts), nil
	case "md", "markdown":
		return NewMarkdownExporter(opts), nil
	default:
		return nil, fmt.Errorf("unsupported export format %q (use json or md)", name)
	}
}

// =============================================================================
// EXPORT FUNCTIONS
// =============================================================================

// ExportToFile exports a history into opts.OutputDir and returns the path.
// The file is written atomically.
func ExportToFile(h History, exporter Exporter, opts *Options) (string, error) {
	if opts == nil {
		opts = DefaultOptions()
	}

	content, err := exporter.Export(h)
	if err != nil {
		return "", fmt.Errorf("export failed: %w", err)
	}

	stamp := h.ExportedAt
	if stamp.IsZero() {
		stamp = time.Now()
	}
	filename := fmt.Sprintf("history_%s_%s%s",
		sanitizeFilename(h.WidgetID),
		stamp.Format("20060102_150405"),
		exporter.FileExtension(),
	)

	outputPath := filepath.Join(opts.OutputDir, filename)
	if err := util.AtomicWriteFile(outputPath, content, 0644); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	if opts.OpenAfterExport {
		if err := openFile(outputPath); err != nil {
			return outputPath, fmt.Errorf("exported, but could not open file: %w", err)
		}
	}

	return outputPath, nil
}

// =============================================================================
// HELPER FUNCTIONS
// =============================================================================

// sanitizeFilename replaces characters that are invalid in filenames.
func sanitizeFilename(s string) string {
	s = util.TruncateRunesNoEllipsis(s, 50)

	var b strings.Builder
	for _, r := range s {
		switch {
		case strings.ContainsRune(`/\:*?"<>|`, r):
			b.WriteRune('-')
		case r == ' ' || r == '\t' || r == '\n' || r == '\r':
			b.WriteRune('_')
		case r < 32 || r == 127:
			b.WriteRune('-')
		default:
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return "widget"
	}
	return b.String()
}

// openFile opens a file in the default application for the OS.
func openFile(path string) error {
	var cmd *exec.Cmd

	switch runtime.GOOS {
	case "windows":
		cmd = exec.Command("cmd", "/c", "start", `""`, path)
	case "darwin":
		cmd = exec.Command("open", path)
	case "linux":
		cmd = exec.Command("xdg-open", path)
	default:
		return fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}

	return cmd.Start()
}
