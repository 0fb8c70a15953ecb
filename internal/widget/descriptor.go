// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"math"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// TitleID is the id reserved for a widget with an empty name.
const TitleID = "widget-title"

const idPrefix = "widget-"

// =============================================================================
// CONTENT
// =============================================================================

// Kind selects the content renderer for a widget.
type Kind int

const (
	KindText Kind = iota
	KindProgressBar
	KindLabeledProgressBar
	KindInput
)

// String returns the renderer name.
func (k Kind) String() string {
	switch k {
	case KindText:
		return "text"
	case KindProgressBar:
		return "progress"
	case KindLabeledProgressBar:
		return "labeled-progress"
	case KindInput:
		return "input"
	default:
		return "unknown"
	}
}

// Content is the renderer tag plus that renderer's parameters.
// Only the fields relevant to Kind are meaningful.
type Content struct {
	Kind Kind

	Text        string  // KindText
	Percent     float64 // KindProgressBar, 0-100
	Numerator   uint32  // KindLabeledProgressBar
	Denominator uint32  // KindLabeledProgressBar
	Placeholder string  // KindInput
}

// Text returns text content.
func Text(s string) Content { return Content{Kind: KindText, Text: s} }

// Progress returns a plain progress bar.
func Progress(percent float64) Content { return Content{Kind: KindProgressBar, Percent: percent} }

// LabeledProgress returns a progress bar labelled with its numerator and denominator.
func LabeledProgress(numerator, denominator uint32) Content {
	return Content{Kind: KindLabeledProgressBar, Numerator: numerator, Denominator: denominator}
}

// Input returns an input block that records history entries.
func Input(placeholder string) Content { return Content{Kind: KindInput, Placeholder: placeholder} }

// Fraction returns the bar fill in [0, 1].
func (c Content) Fraction() float64 {
	return c.RoundedPercent() / 100
}

// RoundedPercent returns the displayed percentage, rounded to a whole number.
// A labelled bar with a zero denominator reads 0%.
func (c Content) RoundedPercent() float64 {
	var p float64
	switch c.Kind {
	case KindProgressBar:
		p = c.Percent
	case KindLabeledProgressBar:
		if c.Denominator != 0 {
			p = float64(c.Numerator) / float64(c.Denominator) * 100
		}
	default:
		return 0
	}
	p = math.Round(p)
	return math.Max(0, math.Min(100, p))
}

// =============================================================================
// DESCRIPTOR
// =============================================================================

// Descriptor describes one dashboard widget.
type Descriptor struct {
	ID          string
	Name        string
	Description string
	AspectRatio float64 // height / width
	IsHeader    bool
	Content     Content
}

// New builds a descriptor and derives its id from the name.
func New(name, description string, aspectRatio float64, isHeader bool, content Content) Descriptor {
	return Descriptor{
		ID:          DeriveID(name),
		Name:        name,
		Description: description,
		AspectRatio: aspectRatio,
		IsHeader:    isHeader,
		Content:     content,
	}
}

// Interactive reports whether the widget accepts history entries.
func (d Descriptor) Interactive() bool {
	return d.Content.Kind == KindInput
}

// DeriveID maps a display name to a widget id: lower-cased, spaces replaced
// by hyphens, prefixed with "widget-". The empty name maps to TitleID.
func DeriveID(name string) string {
	if name == "" {
		return TitleID
	}
	// Casers carry state, so one is built per call.
	n := cases.Lower(language.Und).String(norm.NFC.String(name))
	return idPrefix + strings.ReplaceAll(n, " ", "-")
}
