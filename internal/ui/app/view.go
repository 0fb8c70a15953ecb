// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/lipgloss"

	"github.com/wellium/wellium-tui/internal/dashboard"
	"github.com/wellium/wellium-tui/internal/layout"
	"github.com/wellium/wellium-tui/internal/util"
)

// =============================================================================
// VIEW
// =============================================================================

// View renders the current state of the model.
func (m Model) View() string {
	if !m.ready {
		return "Loading" + util.Ellipsis
	}

	var body string
	switch {
	case m.help.ShowAll:
		body = center(m.theme.DetailBox.Render(m.help.View(dashboardHelp(m.keys))), m.cols, m.areaRows())
	case m.ctrl.State() == dashboard.StateDetailOpen:
		body = m.renderDetail()
	default:
		body = m.renderDashboard()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		body,
		m.renderStatus(),
		m.renderHelp(),
	)
}

// renderDashboard draws the visible part of the widget grid, exactly
// areaRows tall.
func (m Model) renderDashboard() string {
	area := m.areaRows()
	g, ok := m.currentGrid()
	if !ok {
		msg := m.theme.Empty.Render("Terminal too small")
		return center(msg, m.cols, area)
	}

	var content string
	if g.mode == layout.Portrait {
		content = m.renderColumn(g, 0)
		lines := strings.Split(content, "\n")
		start := m.scrollRow
		if start > len(lines) {
			start = len(lines)
		}
		end := start + area
		if end > len(lines) {
			end = len(lines)
		}
		content = strings.Join(lines[start:end], "\n")
	} else {
		first, end := g.visibleColumns(m.firstCol, m.cols)
		cols := make([]string, 0, end-first)
		for c := first; c < end; c++ {
			cols = append(cols, m.renderColumn(g, c))
		}
		content = lipgloss.JoinHorizontal(lipgloss.Top, cols...)
		lines := strings.Split(content, "\n")
		if len(lines) > area {
			lines = lines[:area]
		}
		content = strings.Join(lines, "\n")
	}

	content = lipgloss.NewStyle().MaxWidth(m.cols).Render(content)
	return lipgloss.Place(m.cols, area, lipgloss.Left, lipgloss.Top, content)
}

func (m Model) renderColumn(g grid, c int) string {
	boxes := make([]string, 0, len(g.columns[c]))
	for _, i := range g.columns[c] {
		boxes = append(boxes, m.renderBox(g.boxes[i]))
	}
	return lipgloss.JoinVertical(lipgloss.Left, boxes...)
}

// renderDetail draws the detail box centred over the dashboard area.
func (m Model) renderDetail() string {
	d, _ := m.ctrl.Detail()
	w, h := m.detailSize()

	title := m.theme.DetailTitle.Render(util.TruncateWidth(d.Widget.Name+" history", w-4))
	inner := lipgloss.JoinVertical(lipgloss.Left, title, "", m.detail.View())
	box := m.theme.DetailBox.
		Width(w - 2).
		Height(h - 2).
		MaxHeight(h).
		Render(inner)
	return center(box, m.cols, m.areaRows())
}

// renderStatus draws the mode badge and the current notice.
func (m Model) renderStatus() string {
	parts := []string{}
	if plan, ok := m.ctrl.Plan(); ok {
		parts = append(parts, m.theme.ModeBadge.Render(plan.Mode.String()))
	}
	if n, ok := m.ctrl.Notice(); ok {
		st := m.theme.NoticeInfo
		switch n.Kind {
		case dashboard.NoticeWarning:
			st = m.theme.NoticeWarning
		case dashboard.NoticeError:
			st = m.theme.NoticeError
		}
		parts = append(parts, st.Render(n.Text))
	} else if d := m.ctrl.Registry().At(m.focus); m.ctrl.State() == dashboard.StateIdle {
		parts = append(parts, m.theme.ShortcutDesc.Render(d.Name))
	}
	line := strings.Join(parts, " ")
	return m.theme.StatusBar.Width(m.cols).MaxWidth(m.cols).MaxHeight(1).Render(line)
}

func (m Model) renderHelp() string {
	var km help.KeyMap
	switch {
	case m.editing != "":
		km = editHelp(m.keys)
	case m.ctrl.State() == dashboard.StateDetailOpen:
		km = detailHelp(m.keys)
	default:
		km = dashboardHelp(m.keys)
	}
	h := m.help
	h.ShowAll = false
	return lipgloss.NewStyle().MaxWidth(m.cols).Render(h.View(km))
}
