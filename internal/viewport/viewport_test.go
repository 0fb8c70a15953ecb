// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package viewport

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_PublishNotifiesInOrder(t *testing.T) {
	tr := NewTracker()
	var calls []string

	tr.Subscribe(func(s Size) { calls = append(calls, "a:"+s.String()) })
	tr.Subscribe(func(s Size) { calls = append(calls, "b:"+s.String()) })

	assert.True(t, tr.Publish(Size{Width: 100, Height: 50}))
	assert.Equal(t, []string{"a:100x50", "b:100x50"}, calls)
}

func TestTracker_SkipsDuplicates(t *testing.T) {
	tr := NewTracker()
	n := 0
	tr.Subscribe(func(Size) { n++ })

	tr.Publish(Size{Width: 80, Height: 48})
	assert.False(t, tr.Publish(Size{Width: 80, Height: 48}))
	tr.Publish(Size{Width: 81, Height: 48})

	assert.Equal(t, 2, n)
}

func TestTracker_Unsubscribe(t *testing.T) {
	tr := NewTracker()
	var a, b int
	unsubA := tr.Subscribe(func(Size) { a++ })
	tr.Subscribe(func(Size) { b++ })

	tr.Publish(Size{Width: 1, Height: 1})
	unsubA()
	unsubA()
	tr.Publish(Size{Width: 2, Height: 2})

	assert.Equal(t, 1, a)
	assert.Equal(t, 2, b)
	assert.Equal(t, 1, tr.Subscribers())
}

func TestTracker_Current(t *testing.T) {
	tr := NewTracker()
	_, ok := tr.Current()
	assert.False(t, ok)

	tr.Publish(Size{Width: 10, Height: 20})
	s, ok := tr.Current()
	require.True(t, ok)
	assert.Equal(t, 10.0, s.Width)
	assert.Equal(t, 20.0, s.Height)
}

func TestFromCells(t *testing.T) {
	s := FromCells(120, 40, 2)
	assert.Equal(t, 120.0, s.Width)
	assert.Equal(t, 80.0, s.Height)
	assert.Equal(t, 40, s.Rows)

	s = FromCells(10, 10, 0)
	assert.Equal(t, 20.0, s.Height)
}

func TestMeasure_NotTerminal(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "notatty")
	require.NoError(t, err)
	defer f.Close()

	_, err = Measure(int(f.Fd()), 2)
	assert.ErrorIs(t, err, ErrNotTerminal)
	assert.False(t, IsTerminal(int(f.Fd())))
}
