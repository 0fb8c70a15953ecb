// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package widget

import (
	"errors"
	"fmt"
	"math"
	"strings"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrDuplicateID   = errors.New("duplicate widget id")
	ErrInvalidAspect = errors.New("invalid aspect ratio")
	ErrEmptyRegistry = errors.New("registry has no widgets")
)

// =============================================================================
// REGISTRY
// =============================================================================

// Registry is an immutable, ordered list of widget descriptors.
type Registry struct {
	widgets []Descriptor
	byID    map[string]int
}

// NewRegistry validates descriptors and builds a registry.
// The slice is copied; later changes to it do not affect the registry.
func NewRegistry(descriptors []Descriptor) (*Registry, error) {
	if len(descriptors) == 0 {
		return nil, ErrEmptyRegistry
	}

	r := &Registry{
		widgets: make([]Descriptor, len(descriptors)),
		byID:    make(map[string]int, len(descriptors)),
	}
	copy(r.widgets, descriptors)

	for i, d := range r.widgets {
		if d.AspectRatio <= 0 || math.IsInf(d.AspectRatio, 0) || math.IsNaN(d.AspectRatio) {
			return nil, fmt.Errorf("%w: %q has %g", ErrInvalidAspect, d.ID, d.AspectRatio)
		}
		if prev, ok := r.byID[d.ID]; ok {
			return nil, fmt.Errorf("%w: %q at positions %d and %d", ErrDuplicateID, d.ID, prev, i)
		}
		r.byID[d.ID] = i
	}

	return r, nil
}

// MustRegistry is NewRegistry for static tables; it panics on invalid input.
func MustRegistry(descriptors []Descriptor) *Registry {
	r, err := NewRegistry(descriptors)
	if err != nil {
		panic(err)
	}
	return r
}

// Len returns the number of widgets.
func (r *Registry) Len() int { return len(r.widgets) }

// At returns the widget at display position i.
func (r *Registry) At(i int) Descriptor { return r.widgets[i] }

// All returns a copy of the widgets in display order.
func (r *Registry) All() []Descriptor {
	out := make([]Descriptor, len(r.widgets))
	copy(out, r.widgets)
	return out
}

// Lookup finds a widget by id.
func (r *Registry) Lookup(id string) (Descriptor, int, bool) {
	i, ok := r.byID[id]
	if !ok {
		return Descriptor{}, -1, false
	}
	return r.widgets[i], i, true
}

// Find resolves a widget by id or by case-insensitive display name.
func (r *Registry) Find(key string) (Descriptor, bool) {
	if d, _, ok := r.Lookup(key); ok {
		return d, true
	}
	if d, _, ok := r.Lookup(DeriveID(key)); ok && key != "" {
		return d, true
	}
	for _, d := range r.widgets {
		if d.Name != "" && strings.EqualFold(d.Name, key) {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Selectable reports whether the widget at position i may open a detail view.
func (r *Registry) Selectable(i int) bool {
	if i <= 0 || i >= len(r.widgets) {
		return false
	}
	return !r.widgets[i].IsHeader
}

// AspectRatios returns each widget's aspect ratio in display order.
func (r *Registry) AspectRatios() []float64 {
	out := make([]float64, len(r.widgets))
	for i, d := range r.widgets {
		out[i] = d.AspectRatio
	}
	return out
}

// Interactive returns the ids of widgets that record history.
func (r *Registry) Interactive() []string {
	var ids []string
	for _, d := range r.widgets {
		if d.Interactive() {
			ids = append(ids, d.ID)
		}
	}
	return ids
}
