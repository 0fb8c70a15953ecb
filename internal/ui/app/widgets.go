// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/wellium/wellium-tui/internal/dashboard"
	"github.com/wellium/wellium-tui/internal/history"
	"github.com/wellium/wellium-tui/internal/util"
	"github.com/wellium/wellium-tui/internal/widget"
)

const (
	emptyInputText  = "No entries yet"
	emptyDetailText = "No historical data"
	loadingText     = "Loading history" + util.Ellipsis
	entryTimeLayout = "Jan 2, 2006 15:04:05"
)

// =============================================================================
// WIDGET BOXES
// =============================================================================

// renderBox draws one widget at its placed size.
func (m Model) renderBox(b placed) string {
	d := m.ctrl.Registry().At(b.index)

	if b.index == 0 {
		title := m.theme.Title.Render(util.TruncateWidth(d.Content.Text, b.w))
		return lipgloss.Place(b.w, b.h, lipgloss.Center, lipgloss.Center, title)
	}
	if d.IsHeader {
		bar := m.theme.Header.Width(b.w).Render(util.TruncateWidth(d.Name, b.w-2))
		return lipgloss.Place(b.w, b.h, lipgloss.Left, lipgloss.Bottom, bar)
	}

	box := m.theme.WidgetBox(b.index == m.focus)
	frameW, frameH := box.GetFrameSize()
	innerW := b.w - frameW
	innerH := b.h - frameH
	if innerW < 1 {
		innerW = 1
	}
	if innerH < 1 {
		innerH = 1
	}

	lines := m.widgetLines(d, innerW)
	if len(lines) > innerH {
		lines = lines[:innerH]
	}
	clip := lipgloss.NewStyle().MaxWidth(innerW)
	for i, l := range lines {
		lines[i] = clip.Render(l)
	}

	// Width and Height include padding but not the border.
	return box.
		Width(b.w - 2).
		Height(b.h - 2).
		MaxHeight(b.h).
		Render(strings.Join(lines, "\n"))
}

// widgetLines is the content of a widget box, one entry per screen line.
func (m Model) widgetLines(d widget.Descriptor, width int) []string {
	lines := []string{m.theme.WidgetName.Render(util.TruncateWidth(d.Name, width))}
	lines = append(lines, m.bodyLines(d, width)...)
	if m.cfg.UI.ShowDescriptions && d.Description != "" {
		lines = append(lines, styleLines(m.theme.WidgetDesc, wrap(d.Description, width))...)
	}
	return lines
}

func (m Model) bodyLines(d widget.Descriptor, width int) []string {
	c := d.Content
	switch c.Kind {
	case widget.KindProgressBar:
		bar := m.bar
		bar.Width = width
		return []string{bar.ViewAs(c.Fraction())}

	case widget.KindLabeledProgressBar:
		bar := m.bar
		bar.Width = width
		pct := m.theme.Label.Render(fmt.Sprintf("%.0f%%", c.RoundedPercent()))
		labels := spread(width, "0",
			strconv.FormatUint(uint64(c.Numerator), 10),
			strconv.FormatUint(uint64(c.Denominator), 10))
		return []string{pct, bar.ViewAs(c.Fraction()), m.theme.Label.Render(labels)}

	case widget.KindInput:
		var lines []string
		if m.editing == d.ID {
			in := m.input
			in.Width = width - lipgloss.Width(in.Prompt) - 1
			lines = append(lines, in.View())
		} else {
			hint := util.TruncateWidth(c.Placeholder+" (i to type)", width)
			lines = append(lines, m.theme.Empty.Render(hint))
		}
		if e, ok := m.ctrl.Latest(d.ID); ok {
			lines = append(lines, styleLines(m.theme.Latest, wrap(util.FirstLine(e.Content), width))...)
		} else {
			lines = append(lines, m.theme.Empty.Render(emptyInputText))
		}
		return lines

	default:
		return styleLines(m.theme.WidgetBody, wrap(c.Text, width))
	}
}

// spread lays out left, middle and right labels across width cells.
func spread(width int, left, mid, right string) string {
	lw, mw, rw := util.StringWidth(left), util.StringWidth(mid), util.StringWidth(right)
	if lw+mw+rw+2 > width {
		return util.TruncateWidth(left+" "+mid+" "+right, width)
	}
	midStart := (width - mw) / 2
	if midStart <= lw {
		midStart = lw + 1
	}
	if midStart+mw >= width-rw {
		midStart = width - rw - mw - 1
	}
	var b strings.Builder
	b.WriteString(left)
	b.WriteString(strings.Repeat(" ", midStart-lw))
	b.WriteString(mid)
	b.WriteString(strings.Repeat(" ", width-rw-midStart-mw))
	b.WriteString(right)
	return b.String()
}

// wrap word-wraps plain text to width.
func wrap(s string, width int) []string {
	if s == "" {
		return nil
	}
	out := lipgloss.NewStyle().Width(width).Render(s)
	lines := strings.Split(out, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimRight(l, " ")
	}
	return lines
}

func styleLines(st lipgloss.Style, lines []string) []string {
	for i, l := range lines {
		lines[i] = st.Render(l)
	}
	return lines
}

// =============================================================================
// DETAIL VIEW
// =============================================================================

// detailContent renders the scrollable part of the detail view.
func (m *Model) detailContent(d dashboard.Detail, width int) string {
	var b strings.Builder

	if d.Widget.Description != "" {
		b.WriteString(m.renderMarkdown(d.Widget.Description, width))
		b.WriteString("\n\n")
	}

	switch {
	case !d.Loaded:
		b.WriteString(m.theme.Empty.Render(loadingText))
	case len(d.Entries) == 0:
		b.WriteString(m.theme.Empty.Render(emptyDetailText))
	default:
		for i, e := range d.Entries {
			if i > 0 {
				b.WriteString("\n\n")
			}
			b.WriteString(m.theme.EntryTime.Render(entryTime(e)))
			b.WriteString("\n")
			b.WriteString(strings.Join(styleLines(m.theme.EntryText, wrap(e.Content, width)), "\n"))
		}
	}
	return b.String()
}

// entryTime formats an entry timestamp in local time.
func entryTime(e history.Entry) string {
	t, err := e.Time()
	if err != nil {
		return e.Timestamp
	}
	return t.Local().Format(entryTimeLayout)
}

// renderMarkdown renders a widget description, falling back to plain text.
func (m *Model) renderMarkdown(s string, width int) string {
	if m.md == nil || m.mdWidth != width {
		style := glamour.WithAutoStyle()
		switch m.theme.Name {
		case "dark", "light":
			style = glamour.WithStandardStyle(m.theme.Name)
		}
		r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(width))
		if err != nil {
			log.Printf("WARN: markdown renderer: %v", err)
			return strings.Join(styleLines(m.theme.WidgetDesc, wrap(s, width)), "\n")
		}
		m.md, m.mdWidth = r, width
	}

	out, err := m.md.Render(s)
	if err != nil {
		return strings.Join(styleLines(m.theme.WidgetDesc, wrap(s, width)), "\n")
	}
	return strings.Trim(out, "\n")
}
