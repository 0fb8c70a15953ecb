// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"context"
	"log"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/textinput"
	vp "github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"github.com/wellium/wellium-tui/internal/config"
	"github.com/wellium/wellium-tui/internal/dashboard"
	"github.com/wellium/wellium-tui/internal/layout"
	"github.com/wellium/wellium-tui/internal/link"
	"github.com/wellium/wellium-tui/internal/ui/styles"
	"github.com/wellium/wellium-tui/internal/viewport"
)

// reservedRows is the status line plus the help line.
const reservedRows = 2

// linkTimeout bounds the startup connection attempt.
const linkTimeout = 5 * time.Second

// Options wires a Model to its collaborators.
type Options struct {
	Controller *dashboard.Controller
	Tracker    *viewport.Tracker
	Config     *config.Config
	Link       link.Manager // nil disables the startup connection
}

// session is presentation state shared with callbacks registered on the
// controller, which outlive any single copy of the Model.
type session struct {
	lastClosed string
}

// Model is the dashboard screen.
type Model struct {
	ctrl        *dashboard.Controller
	tracker     *viewport.Tracker
	unsubscribe func()
	link        link.Manager
	cfg         *config.Config
	sess        *session

	theme *styles.Theme
	keys  KeyMap
	help  help.Model
	bar   progress.Model
	input textinput.Model

	detail  vp.Model
	md      *glamour.TermRenderer
	mdWidth int

	editing   string // widget id receiving typed input
	focus     int    // registry index
	scrollRow int    // portrait scroll offset, rows
	firstCol  int    // landscape scroll offset, columns

	cols, rows int
	ready      bool
}

// New creates the dashboard model and subscribes the controller to
// viewport changes.
func New(opts Options) Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	theme := styles.NewTheme(cfg.UI.Theme)
	theme.Apply()

	input := textinput.New()
	input.Prompt = "› "
	input.CharLimit = 500

	m := Model{
		ctrl:    opts.Controller,
		tracker: opts.Tracker,
		link:    opts.Link,
		cfg:     cfg,
		sess:    &session{},
		theme:   theme,
		keys:    DefaultKeyMap(),
		help:    help.New(),
		bar: progress.New(
			progress.WithSolidFill(styles.ProgressFill),
			progress.WithoutPercentage(),
		),
		input:  input,
		detail: vp.New(0, 0),
	}
	m.bar.EmptyColor = styles.ProgressTrack

	ctrl := m.ctrl
	m.unsubscribe = m.tracker.Subscribe(func(s viewport.Size) {
		if err := ctrl.Resize(s.Width, s.Height); err != nil {
			log.Printf("WARN: keeping previous layout for viewport %s: %v", s, err)
		}
	})

	sess := m.sess
	ctrl.SetCloseHandler(dashboard.CloseFunc(func(widgetID string) {
		sess.lastClosed = widgetID
	}))

	m.focus = m.firstSelectable()
	return m
}

// Close releases the viewport subscription.
func (m Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
	}
}

// Init starts history preloading and the link connection.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.ctrl.Preload(), m.noticeTick()}
	if m.link != nil {
		cmds = append(cmds, connectCmd(m.link))
	}
	return tea.Batch(cmds...)
}

// connectCmd tries the link once.
func connectCmd(mgr link.Manager) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), linkTimeout)
		defer cancel()

		if err := mgr.Connect(ctx); err != nil {
			return LinkStatusMsg{Err: err}
		}
		data, err := mgr.ReadData(ctx)
		return LinkStatusMsg{Connected: true, Bytes: len(data), Err: err}
	}
}

// =============================================================================
// FOCUS HELPERS
// =============================================================================

func (m Model) selectable() []int {
	reg := m.ctrl.Registry()
	var out []int
	for i := 0; i < reg.Len(); i++ {
		if reg.Selectable(i) {
			out = append(out, i)
		}
	}
	return out
}

func (m Model) firstSelectable() int {
	if s := m.selectable(); len(s) > 0 {
		return s[0]
	}
	return 0
}

// step moves focus by delta through the selectable widgets, wrapping.
func (m *Model) step(delta int) {
	s := m.selectable()
	if len(s) == 0 {
		return
	}
	pos := 0
	for i, idx := range s {
		if idx == m.focus {
			pos = i
			break
		}
	}
	pos = ((pos+delta)%len(s) + len(s)) % len(s)
	m.focus = s[pos]
}

// focusWidget moves focus to id if it is selectable.
func (m *Model) focusWidget(id string) bool {
	_, idx, ok := m.ctrl.Registry().Lookup(id)
	if !ok || !m.ctrl.Registry().Selectable(idx) {
		return false
	}
	m.focus = idx
	m.ensureVisible()
	return true
}

func (m Model) focusedID() string {
	return m.ctrl.Registry().At(m.focus).ID
}

// areaRows is the height available to widgets.
func (m Model) areaRows() int {
	if r := m.rows - reservedRows; r > 0 {
		return r
	}
	return 1
}

func (m Model) currentGrid() (grid, bool) {
	plan, ok := m.ctrl.Plan()
	if !ok {
		return grid{}, false
	}
	return buildGrid(plan, m.cfg.Layout.CellAspect), true
}

// ensureVisible scrolls so the focused widget is on screen.
func (m *Model) ensureVisible() {
	g, ok := m.currentGrid()
	if !ok || m.focus >= len(g.boxes) {
		return
	}
	b := g.boxes[m.focus]
	area := m.areaRows()

	if g.mode == layout.Portrait {
		if b.y < m.scrollRow {
			m.scrollRow = b.y
		} else if b.y+b.h > m.scrollRow+area {
			m.scrollRow = b.y + b.h - area
			if b.h > area {
				m.scrollRow = b.y
			}
		}
		m.clampScroll(g)
		return
	}

	col := g.columnOf(m.focus)
	if col < m.firstCol {
		m.firstCol = col
	}
	for {
		first, end := g.visibleColumns(m.firstCol, m.cols)
		if col < end || first >= col {
			break
		}
		m.firstCol++
	}
}

func (m *Model) clampScroll(g grid) {
	maxRow := g.height - m.areaRows()
	if maxRow < 0 {
		maxRow = 0
	}
	if m.scrollRow > maxRow {
		m.scrollRow = maxRow
	}
	if m.scrollRow < 0 {
		m.scrollRow = 0
	}
	if m.firstCol >= len(g.columns) {
		m.firstCol = len(g.columns) - 1
	}
	if m.firstCol < 0 {
		m.firstCol = 0
	}
}

// publishSize converts the terminal size to layout units and publishes it.
func (m Model) publishSize() {
	m.tracker.Publish(viewport.FromCells(m.cols, m.areaRows(), m.cfg.Layout.CellAspect))
}
