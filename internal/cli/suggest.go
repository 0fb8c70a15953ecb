// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// suggest.go - Typo correction for commands and widget names.
package cli

import (
	"strings"

	"github.com/agnivade/levenshtein"

	"github.com/wellium/wellium-tui/internal/widget"
)

// validCommands lists every command and alias.
var validCommands = []string{
	"tui",
	"widgets",
	"layout",
	"history",
	"config",
	"version",
	"help",
	// Aliases
	"w",    // widgets
	"ls",   // widgets
	"hist", // history
}

// maxDistance returns the edit budget for an input of n runes.
func maxDistance(n int) int {
	switch {
	case n > 8:
		return 3
	case n >= 4:
		return 2
	default:
		return 1
	}
}

// closest returns the candidate nearest to input within the edit budget.
func closest(input string, candidates []string) string {
	input = strings.ToLower(input)
	if len([]rune(input)) < 2 {
		return ""
	}
	limit := maxDistance(len([]rune(input)))

	best, bestDistance := "", -1
	for _, c := range candidates {
		d := levenshtein.ComputeDistance(input, strings.ToLower(c))
		if d == 0 {
			return ""
		}
		if d <= limit && (bestDistance == -1 || d < bestDistance) {
			best, bestDistance = c, d
		}
	}
	return best
}

// SuggestCommand returns a suggested command if the input is close to a
// valid one, or "".
func SuggestCommand(input string) string {
	return closest(input, validCommands)
}

// ResolveWidget finds a widget by id or display name. Misses return a
// NotFoundError carrying the nearest name when one is close enough.
func ResolveWidget(reg *widget.Registry, key string) (widget.Descriptor, error) {
	if d, ok := reg.Find(key); ok {
		return d, nil
	}

	var candidates []string
	for _, d := range reg.All() {
		candidates = append(candidates, d.ID)
		if d.Name != "" {
			candidates = append(candidates, d.Name)
		}
	}
	return widget.Descriptor{}, NewNotFoundError("widget", key, closest(key, candidates))
}
