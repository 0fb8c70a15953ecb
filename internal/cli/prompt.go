// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"errors"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/peterh/liner"

	"github.com/wellium/wellium-tui/internal/config"
)

// ErrPromptAborted is returned when the user cancels a prompt.
var ErrPromptAborted = errors.New("input aborted")

// Prompter reads one line of interactive input.
type Prompter interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// =============================================================================
// LINE EDITOR
// =============================================================================

// LinePrompter provides line editing and input history for `history add`.
// Arrow keys navigate earlier entries.
type LinePrompter struct {
	line        *liner.State
	historyFile string
}

// NewLinePrompter creates a prompter and loads its history file.
func NewLinePrompter() *LinePrompter {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)

	dir, err := config.ConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	p := &LinePrompter{line: line, historyFile: filepath.Join(dir, "input_history")}
	p.loadHistory()
	return p
}

func (p *LinePrompter) loadHistory() {
	if f, err := os.Open(p.historyFile); err == nil {
		if _, err := p.line.ReadHistory(f); err != nil {
			log.Printf("WARN: input history: %v", err)
		}
		f.Close()
	}
}

// Prompt reads a line. Ctrl+C returns ErrPromptAborted.
func (p *LinePrompter) Prompt(prompt string) (string, error) {
	input, err := p.line.Prompt(prompt)
	if errors.Is(err, liner.ErrPromptAborted) {
		return "", ErrPromptAborted
	}
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(input) != "" {
		p.line.AppendHistory(input)
	}
	return input, nil
}

// Close saves history with owner-only permissions and restores the terminal.
func (p *LinePrompter) Close() error {
	defer p.line.Close()

	if err := config.EnsureConfigDir(); err != nil {
		return err
	}
	f, err := os.OpenFile(p.historyFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()
	_, err = p.line.WriteHistory(f)
	return err
}
