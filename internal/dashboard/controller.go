// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log"
	"sort"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/time/rate"

	"github.com/wellium/wellium-tui/internal/history"
	"github.com/wellium/wellium-tui/internal/layout"
	"github.com/wellium/wellium-tui/internal/widget"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrNotSelectable     = errors.New("widget is not selectable")
	ErrEmptyContent      = errors.New("entry content is empty")
	ErrNotInteractive    = errors.New("widget does not accept input")
	ErrUnknownWidget     = errors.New("unknown widget")
)

// =============================================================================
// STATE
// =============================================================================

// State is the controller's mode.
type State int

const (
	StateIdle State = iota
	StateDetailOpen
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDetailOpen:
		return "detail-open"
	default:
		return "unknown"
	}
}

// CloseHandler is told when a detail view closes.
type CloseHandler interface {
	DetailClosed(widgetID string)
}

// CloseFunc adapts a function to CloseHandler.
type CloseFunc func(widgetID string)

// DetailClosed calls f.
func (f CloseFunc) DetailClosed(widgetID string) { f(widgetID) }

// widgetView is what the screen currently shows for one widget.
type widgetView struct {
	latest    history.Entry
	hasLatest bool
	entries   []history.Entry // newest first
}

// =============================================================================
// CONTROLLER
// =============================================================================

// Controller composes the registry, layout, and history store.
type Controller struct {
	ctx      context.Context
	registry *widget.Registry
	store    *history.Async

	plan    layout.Plan
	hasPlan bool

	state  State
	open   string
	gen    uint64
	loaded bool // the open detail view has received its load

	views   map[string]*widgetView
	notice  *Notice
	onClose CloseHandler

	now      func() time.Time
	warnings rate.Sometimes
	logf     func(format string, args ...any)
}

// New creates an idle controller. ctx bounds every storage operation it
// issues.
func New(ctx context.Context, registry *widget.Registry, store *history.Async) *Controller {
	return &Controller{
		ctx:      ctx,
		registry: registry,
		store:    store,
		views:    make(map[string]*widgetView),
		now:      time.Now,
		warnings: rate.Sometimes{First: 3, Interval: 30 * time.Second},
		logf:     log.Printf,
	}
}

// SetCloseHandler registers the handler run on Close.
func (c *Controller) SetCloseHandler(h CloseHandler) {
	c.onClose = h
}

// Registry returns the widget registry.
func (c *Controller) Registry() *widget.Registry { return c.registry }

// State returns the current state.
func (c *Controller) State() State { return c.state }

// OpenWidget returns the id shown in the detail view, if one is open.
func (c *Controller) OpenWidget() (string, bool) {
	return c.open, c.state == StateDetailOpen
}

// Generation returns the current generation token.
func (c *Controller) Generation() uint64 { return c.gen }

// =============================================================================
// LAYOUT
// =============================================================================

// Resize recomputes the layout plan. An invalid viewport leaves the previous
// plan in place and returns the error.
func (c *Controller) Resize(width, height float64) error {
	plan, err := layout.Compute(width, height, c.registry.AspectRatios())
	if err != nil {
		return err
	}
	c.plan = plan
	c.hasPlan = true
	return nil
}

// Plan returns the latest layout plan and whether one has been computed.
func (c *Controller) Plan() (layout.Plan, bool) {
	return c.plan, c.hasPlan
}

// =============================================================================
// TRANSITIONS
// =============================================================================

// Select opens the detail view for widgetID and returns the command that
// loads its history.
func (c *Controller) Select(widgetID string) (tea.Cmd, error) {
	if c.state != StateIdle {
		return nil, fmt.Errorf("%w: select %q while %s", ErrInvalidTransition, widgetID, c.state)
	}
	_, idx, ok := c.registry.Lookup(widgetID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWidget, widgetID)
	}
	if !c.registry.Selectable(idx) {
		return nil, fmt.Errorf("%w: %q", ErrNotSelectable, widgetID)
	}

	c.state = StateDetailOpen
	c.open = widgetID
	c.gen++
	c.loaded = false

	return c.load(widgetID, c.gen, false), nil
}

// Close returns to Idle and runs the close handler.
func (c *Controller) Close() error {
	if c.state != StateDetailOpen {
		return fmt.Errorf("%w: close while %s", ErrInvalidTransition, c.state)
	}
	id := c.open
	c.state = StateIdle
	c.open = ""
	c.gen++
	c.loaded = false

	if c.onClose != nil {
		c.onClose.DetailClosed(id)
	}
	return nil
}

// Submit records content for an input widget and returns the command that
// performs the write.
func (c *Controller) Submit(widgetID, content string) (tea.Cmd, error) {
	if strings.TrimSpace(content) == "" {
		return nil, ErrEmptyContent
	}
	d, _, ok := c.registry.Lookup(widgetID)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownWidget, widgetID)
	}
	if !d.Interactive() {
		return nil, fmt.Errorf("%w: %q", ErrNotInteractive, widgetID)
	}

	// Issued now, not inside the Cmd, so same-widget operations keep the
	// order they were requested in.
	ch := c.store.AddEntryAsync(c.ctx, widgetID, content)
	return func() tea.Msg {
		r := <-ch
		return EntryAddedMsg{WidgetID: widgetID, Content: content, Entry: r.Entry, Err: r.Err}
	}, nil
}

// Preload loads every input widget's history so the dashboard can show each
// one's latest entry.
func (c *Controller) Preload() tea.Cmd {
	ids := c.registry.Interactive()
	cmds := make([]tea.Cmd, 0, len(ids))
	for _, id := range ids {
		cmds = append(cmds, c.load(id, 0, true))
	}
	return tea.Batch(cmds...)
}

func (c *Controller) load(widgetID string, gen uint64, preload bool) tea.Cmd {
	ch := c.store.EntriesAsync(c.ctx, widgetID)
	return func() tea.Msg {
		r := <-ch
		return HistoryLoadedMsg{
			WidgetID:   widgetID,
			Generation: gen,
			Entries:    r.Entries,
			Err:        r.Err,
			Preload:    preload,
		}
	}
}

// =============================================================================
// APPLY
// =============================================================================

// Apply folds an async result into state. It reports whether msg was one of
// the controller's messages.
func (c *Controller) Apply(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case HistoryLoadedMsg:
		c.applyLoaded(msg)
		return true
	case EntryAddedMsg:
		c.applyAdded(msg)
		return true
	}
	return false
}

func (c *Controller) applyLoaded(msg HistoryLoadedMsg) {
	current := c.state == StateDetailOpen && c.open == msg.WidgetID && c.gen == msg.Generation
	v := c.view(msg.WidgetID)

	if msg.Err != nil {
		c.warnings.Do(func() {
			c.logf("WARN: reading history for %s: %v", msg.WidgetID, msg.Err)
		})
		if current {
			v.entries = nil
			c.loaded = true
		}
		return
	}

	v.entries = mergeEntries(msg.Entries, v.entries)
	if len(v.entries) > 0 {
		c.setLatest(v, v.entries[0])
	}
	if current {
		c.loaded = true
	}
}

func (c *Controller) applyAdded(msg EntryAddedMsg) {
	if msg.Err != nil {
		c.SetNotice(NoticeError, fmt.Sprintf("Could not save entry: %v", msg.Err))
		return
	}
	v := c.view(msg.WidgetID)
	v.entries = mergeEntries([]history.Entry{msg.Entry}, v.entries)
	c.setLatest(v, msg.Entry)
}

// setLatest keeps the entry with the highest sequence. Messages from
// concurrent commands can arrive in any order.
func (c *Controller) setLatest(v *widgetView, e history.Entry) {
	if !v.hasLatest || e.Seq >= v.latest.Seq {
		v.latest = e
		v.hasLatest = true
	}
}

func (c *Controller) view(widgetID string) *widgetView {
	v, ok := c.views[widgetID]
	if !ok {
		v = &widgetView{}
		c.views[widgetID] = v
	}
	return v
}

// mergeEntries unions two newest-first lists by entry id.
func mergeEntries(a, b []history.Entry) []history.Entry {
	if len(b) == 0 {
		out := make([]history.Entry, len(a))
		copy(out, a)
		return out
	}
	seen := make(map[string]bool, len(a)+len(b))
	out := make([]history.Entry, 0, len(a)+len(b))
	for _, list := range [][]history.Entry{a, b} {
		for _, e := range list {
			if seen[e.ID] {
				continue
			}
			seen[e.ID] = true
			out = append(out, e)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Seq > out[j].Seq })
	return out
}

// =============================================================================
// READ MODEL
// =============================================================================

// Latest returns the most recent entry known for widgetID.
func (c *Controller) Latest(widgetID string) (history.Entry, bool) {
	v, ok := c.views[widgetID]
	if !ok || !v.hasLatest {
		return history.Entry{}, false
	}
	return v.latest, true
}

// Detail describes the open detail view.
type Detail struct {
	Widget  widget.Descriptor
	Entries []history.Entry // newest first
	Loaded  bool
}

// Detail returns the open detail view, if any.
func (c *Controller) Detail() (Detail, bool) {
	if c.state != StateDetailOpen {
		return Detail{}, false
	}
	d, _, _ := c.registry.Lookup(c.open)
	out := Detail{Widget: d, Loaded: c.loaded}
	if c.loaded {
		if v, ok := c.views[c.open]; ok {
			out.Entries = append([]history.Entry(nil), v.entries...)
		}
	}
	return out, true
}

// Notice returns the current notice.
func (c *Controller) Notice() (Notice, bool) {
	if c.notice == nil {
		return Notice{}, false
	}
	return *c.notice, true
}

// SetNotice replaces the current notice.
func (c *Controller) SetNotice(kind NoticeKind, text string) {
	c.notice = &Notice{Kind: kind, Text: text, At: c.now()}
}

// ClearNotice removes the notice if it is the one set at `at`.
func (c *Controller) ClearNotice(at time.Time) {
	if c.notice != nil && c.notice.At.Equal(at) {
		c.notice = nil
	}
}
