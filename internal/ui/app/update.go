// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wellium/wellium-tui/internal/dashboard"
	"github.com/wellium/wellium-tui/internal/layout"
	"github.com/wellium/wellium-tui/internal/ui/styles"
)

// =============================================================================
// UPDATE
// =============================================================================

// Update handles all messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case dashboard.HistoryLoadedMsg:
		m.ctrl.Apply(msg)
		m.syncDetail()
		return m, m.noticeTick()

	case dashboard.EntryAddedMsg:
		m.ctrl.Apply(msg)
		if msg.Err == nil && msg.WidgetID == m.editing && m.input.Value() == msg.Content {
			m.input.Reset()
		}
		m.syncDetail()
		return m, m.noticeTick()

	case LinkStatusMsg:
		if msg.Err != nil {
			log.Printf("WARN: sensor link: %v", msg.Err)
			m.ctrl.SetNotice(dashboard.NoticeWarning, "Sensor link unavailable")
			return m, m.noticeTick()
		}
		log.Printf("sensor link connected, first reading %d bytes", msg.Bytes)
		return m, nil

	case ConfigReloadedMsg:
		return m.handleConfigReload(msg)

	case noticeExpiredMsg:
		m.ctrl.ClearNotice(msg.At)
		return m, nil
	}

	if m.editing != "" {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

// noticeTick schedules removal of the current notice.
func (m Model) noticeTick() tea.Cmd {
	n, ok := m.ctrl.Notice()
	if !ok {
		return nil
	}
	return tea.Tick(n.Duration(), func(time.Time) tea.Msg {
		return noticeExpiredMsg{At: n.At}
	})
}

func (m Model) notify(kind dashboard.NoticeKind, text string) (Model, tea.Cmd) {
	m.ctrl.SetNotice(kind, text)
	return m, m.noticeTick()
}

// =============================================================================
// RESIZE AND CONFIG
// =============================================================================

func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.cols, m.rows = msg.Width, msg.Height
	m.ready = true
	m.help.Width = msg.Width
	m.publishSize()
	m.ensureVisible()
	m.syncDetail()
	return m, nil
}

func (m Model) handleConfigReload(msg ConfigReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.Err != nil || msg.Config == nil {
		log.Printf("WARN: config reload: %v", msg.Err)
		return m.notify(dashboard.NoticeWarning, "Config not reloaded: see log")
	}

	m.cfg = msg.Config
	m.theme = styles.NewTheme(m.cfg.UI.Theme)
	m.theme.Apply()
	m.md = nil
	m.mdWidth = 0
	if m.ready {
		m.publishSize()
		m.ensureVisible()
		m.syncDetail()
	}
	return m.notify(dashboard.NoticeInfo, "Config reloaded")
}

// =============================================================================
// KEYBOARD
// =============================================================================

func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.keys.ForceQuit) {
		return m, tea.Quit
	}
	if m.editing != "" {
		return m.handleEditKey(msg)
	}
	if m.ctrl.State() == dashboard.StateDetailOpen {
		return m.handleDetailKey(msg)
	}
	return m.handleDashboardKey(msg)
}

func (m Model) handleEditKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.stopEditing()
		return m, nil

	case key.Matches(msg, m.keys.Submit):
		cmd, err := m.ctrl.Submit(m.editing, m.input.Value())
		switch {
		case errors.Is(err, dashboard.ErrEmptyContent):
			return m.notify(dashboard.NoticeWarning, "Type something before saving")
		case err != nil:
			return m.notify(dashboard.NoticeError, fmt.Sprintf("Could not save entry: %v", err))
		}
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) stopEditing() {
	m.editing = ""
	m.input.Blur()
	m.input.Reset()
}

func (m Model) handleDetailKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Close):
		return m.closeDetail()

	case key.Matches(msg, m.keys.ScrollUp) && m.detail.AtTop():
		// Scrolling up past the first entry dismisses the view.
		return m.closeDetail()
	}

	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return m, cmd
}

func (m Model) handleDashboardKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Next):
		m.step(1)
		m.ensureVisible()

	case key.Matches(msg, m.keys.Prev):
		m.step(-1)
		m.ensureVisible()

	case key.Matches(msg, m.keys.NextColumn):
		m.jumpColumn(1)

	case key.Matches(msg, m.keys.PrevColumn):
		m.jumpColumn(-1)

	case key.Matches(msg, m.keys.Open):
		return m.openDetail(m.focusedID())

	case key.Matches(msg, m.keys.Edit):
		return m.startEditing()

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// jumpColumn moves focus to the first selectable widget in a neighbouring
// column. In portrait mode it behaves like next/previous.
func (m *Model) jumpColumn(delta int) {
	g, ok := m.currentGrid()
	if !ok {
		return
	}
	if g.mode == layout.Portrait {
		m.step(delta)
		m.ensureVisible()
		return
	}
	reg := m.ctrl.Registry()
	for c := g.columnOf(m.focus) + delta; c >= 0 && c < len(g.columns); c += delta {
		for _, i := range g.columns[c] {
			if reg.Selectable(i) {
				m.focus = i
				m.ensureVisible()
				return
			}
		}
	}
}

func (m Model) startEditing() (tea.Model, tea.Cmd) {
	d := m.ctrl.Registry().At(m.focus)
	if !d.Interactive() {
		return m.notify(dashboard.NoticeInfo, d.Name+" does not take input")
	}
	m.editing = d.ID
	m.input.Placeholder = d.Content.Placeholder
	m.input.Reset()
	cmd := m.input.Focus()
	return m, cmd
}

func (m Model) openDetail(widgetID string) (tea.Model, tea.Cmd) {
	cmd, err := m.ctrl.Select(widgetID)
	if err != nil {
		log.Printf("WARN: open %s: %v", widgetID, err)
		return m, nil
	}
	m.syncDetail()
	m.detail.GotoTop()
	return m, cmd
}

func (m Model) closeDetail() (tea.Model, tea.Cmd) {
	if err := m.ctrl.Close(); err != nil {
		log.Printf("WARN: close detail: %v", err)
		return m, nil
	}
	if id := m.sess.lastClosed; id != "" {
		m.focusWidget(id)
	}
	return m, nil
}

// =============================================================================
// MOUSE
// =============================================================================

func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.editing != "" {
		return m, nil
	}

	if m.ctrl.State() == dashboard.StateDetailOpen {
		switch msg.Type {
		case tea.MouseWheelUp:
			if m.detail.AtTop() {
				return m.closeDetail()
			}
			m.detail.LineUp(3)
		case tea.MouseWheelDown:
			m.detail.LineDown(3)
		case tea.MouseLeft:
			x, y, w, h := m.detailRect()
			if msg.X < x || msg.X >= x+w || msg.Y < y || msg.Y >= y+h {
				return m.closeDetail()
			}
		}
		return m, nil
	}

	g, ok := m.currentGrid()
	if !ok {
		return m, nil
	}

	switch msg.Type {
	case tea.MouseWheelUp:
		m.scroll(g, -1)
	case tea.MouseWheelDown:
		m.scroll(g, 1)
	case tea.MouseLeft:
		if msg.Y >= m.areaRows() {
			return m, nil
		}
		cx, cy := msg.X, msg.Y+m.scrollRow
		if g.mode == layout.Landscape {
			cx += g.colX[m.firstColClamped(g)]
			cy = msg.Y
		}
		b, hit := g.hit(cx, cy)
		if !hit || !m.ctrl.Registry().Selectable(b.index) {
			return m, nil
		}
		m.focus = b.index
		return m.openDetail(m.focusedID())
	}
	return m, nil
}

// scroll moves the portrait view by rows or the landscape view by columns.
func (m *Model) scroll(g grid, delta int) {
	if g.mode == layout.Portrait {
		m.scrollRow += delta * 3
	} else {
		m.firstCol += delta
	}
	m.clampScroll(g)
}

func (m Model) firstColClamped(g grid) int {
	first, _ := g.visibleColumns(m.firstCol, m.cols)
	return first
}

// detailRect is the screen area of the detail box.
func (m Model) detailRect() (x, y, w, h int) {
	w, h = m.detailSize()
	area := m.areaRows()
	x = (m.cols - w) / 2
	y = (area - h) / 2
	return x, y, w, h
}

// detailSize is the outer size of the detail box.
func (m Model) detailSize() (int, int) {
	w := m.cols * 3 / 4
	if w < 30 {
		w = m.cols
	}
	h := m.areaRows() * 4 / 5
	if h < 8 {
		h = m.areaRows()
	}
	return w, h
}

// syncDetail refreshes the detail viewport content and size.
func (m *Model) syncDetail() {
	d, ok := m.ctrl.Detail()
	if !ok {
		return
	}
	w, h := m.detailSize()
	frameW, frameH := m.theme.DetailBox.GetFrameSize()
	innerW := w - frameW
	if innerW < 1 {
		innerW = 1
	}
	// title line plus blank line
	innerH := h - frameH - 2
	if innerH < 1 {
		innerH = 1
	}
	m.detail.Width = innerW
	m.detail.Height = innerH
	m.detail.SetContent(m.detailContent(d, innerW))
}

// center places s in the middle of a w x h area.
func center(s string, w, h int) string {
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, s)
}
