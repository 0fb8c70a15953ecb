// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package layout

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// =============================================================================
// THRESHOLD TESTS
// =============================================================================

func TestThreshold_Endpoints(t *testing.T) {
	assert.InDelta(t, 1.3304, Threshold(12), 1e-9)
	assert.InDelta(t, 0.6608, Threshold(24), 1e-9)
	assert.InDelta(t, 0.884, Threshold(20), 1e-9)
}

func TestThreshold_MonotonicallyDecreasing(t *testing.T) {
	prev := Threshold(MinWidgets)
	for n := MinWidgets + 1; n <= MaxWidgets; n++ {
		cur := Threshold(n)
		if cur >= prev {
			t.Fatalf("Threshold(%d) = %v, not below Threshold(%d) = %v", n, cur, n-1, prev)
		}
		prev = cur
	}
}

func TestThreshold_Clamped(t *testing.T) {
	assert.Equal(t, Threshold(12), Threshold(1))
	assert.Equal(t, Threshold(24), Threshold(100))
}

// =============================================================================
// MODE SELECTION TESTS
// =============================================================================

func TestSelectMode(t *testing.T) {
	tests := []struct {
		name          string
		width, height float64
		total         int
		want          Mode
	}{
		{"wide viewport", 1000, 500, 20, Landscape},
		{"tall viewport", 500, 1000, 20, Portrait},
		{"exactly at threshold stays portrait", Threshold(12), 1, 12, Portrait},
		{"small dashboard square viewport", 1000, 1000, 12, Portrait},
		{"large dashboard square viewport", 1000, 1000, 24, Landscape},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SelectMode(tt.width, tt.height, tt.total)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSelectMode_InvalidViewport(t *testing.T) {
	cases := []struct {
		width, height float64
		total         int
	}{
		{1000, 0, 20},
		{0, 500, 20},
		{-1, 500, 20},
		{1000, math.NaN(), 20},
		{math.Inf(1), 500, 20},
		{1000, 500, 0},
	}
	for _, c := range cases {
		_, err := SelectMode(c.width, c.height, c.total)
		if !errors.Is(err, ErrInvalidViewport) {
			t.Errorf("SelectMode(%v, %v, %d) err = %v, want ErrInvalidViewport", c.width, c.height, c.total, err)
		}
	}
}

func TestSelectMode_Deterministic(t *testing.T) {
	first, _ := SelectMode(800, 600, 17)
	for i := 0; i < 100; i++ {
		got, _ := SelectMode(800, 600, 17)
		if got != first {
			t.Fatalf("iteration %d: got %v, want %v", i, got, first)
		}
	}
}

func TestMode_String(t *testing.T) {
	assert.Equal(t, "landscape", Landscape.String())
	assert.Equal(t, "portrait", Portrait.String())
	assert.Equal(t, "unknown", Mode(9).String())
}

// =============================================================================
// DIMENSION TESTS
// =============================================================================

func TestDimensions_Portrait(t *testing.T) {
	w, h, err := Dimensions(Portrait, 360, 999, 20, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 360.0, w)
	assert.Equal(t, 180.0, h)
}

func TestDimensions_Landscape(t *testing.T) {
	w, h, err := Dimensions(Landscape, 999, 1600, 16, 0.5)
	require.NoError(t, err)
	assert.Equal(t, 1600.0, w)
	assert.Equal(t, 800.0, h)
}

func TestDimensions_LandscapeSharedColumnWidth(t *testing.T) {
	w1, h1, err := Dimensions(Landscape, 1920, 1080, 24, 1.0/3.0)
	require.NoError(t, err)
	w2, h2, err := Dimensions(Landscape, 1920, 1080, 24, 2.0/3.0)
	require.NoError(t, err)

	assert.Equal(t, w1, w2)
	assert.InDelta(t, 720.0, w1, 1e-9)
	assert.InDelta(t, 2*h1, h2, 1e-9)
}

func TestDimensions_InvalidInputs(t *testing.T) {
	_, _, err := Dimensions(Portrait, 0, 100, 12, 0.5)
	assert.ErrorIs(t, err, ErrInvalidViewport)

	_, _, err = Dimensions(Landscape, 100, 0, 12, 0.5)
	assert.ErrorIs(t, err, ErrInvalidViewport)

	_, _, err = Dimensions(Portrait, 100, 100, 12, 0)
	assert.ErrorIs(t, err, ErrInvalidViewport)

	_, _, err = Dimensions(Mode(7), 100, 100, 12, 0.5)
	assert.Error(t, err)
}

func TestDimensions_FiniteNonNegative(t *testing.T) {
	for _, mode := range []Mode{Landscape, Portrait} {
		for n := 1; n <= 30; n++ {
			w, h, err := Dimensions(mode, 1e6, 1e-3, n, 3.0)
			require.NoError(t, err)
			if w < 0 || h < 0 || math.IsInf(w, 0) || math.IsInf(h, 0) {
				t.Fatalf("mode %v n=%d: got (%v, %v)", mode, n, w, h)
			}
		}
	}
}

// =============================================================================
// PLAN TESTS
// =============================================================================

func TestCompute_PortraitSingleColumn(t *testing.T) {
	ratios := []float64{0.5, 1, 0.25}
	plan, err := Compute(100, 400, ratios)
	require.NoError(t, err)

	assert.Equal(t, Portrait, plan.Mode)
	require.Len(t, plan.Columns, 1)
	require.Len(t, plan.Cells, 3)
	assert.Equal(t, 0.0, plan.Cells[0].Y)
	assert.Equal(t, 50.0, plan.Cells[1].Y)
	assert.Equal(t, 150.0, plan.Cells[2].Y)
	assert.Equal(t, 175.0, plan.ContentHeight())
	assert.Equal(t, 100.0, plan.ContentWidth())
}

func TestCompute_LandscapeWrapsColumns(t *testing.T) {
	// 16 widgets: column width equals the height, so each quarter-ratio widget
	// is a quarter of the viewport tall and four fit per column.
	ratios := make([]float64, 16)
	for i := range ratios {
		ratios[i] = 0.25
	}
	plan, err := Compute(3200, 400, ratios)
	require.NoError(t, err)

	assert.Equal(t, Landscape, plan.Mode)
	require.Len(t, plan.Columns, 4)
	for i, col := range plan.Columns {
		assert.Len(t, col.Cells, 4, "column %d", i)
		assert.Equal(t, float64(i)*400, col.X)
		assert.Equal(t, 400.0, col.Height)
	}
	assert.Equal(t, 3, plan.Cells[15].Column)
	assert.Equal(t, 300.0, plan.Cells[15].Y)
	assert.Equal(t, 1600.0, plan.ContentWidth())
}

func TestCompute_OversizedWidgetGetsOwnColumn(t *testing.T) {
	ratios := []float64{2, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1, 0.1}
	plan, err := Compute(5000, 100, ratios)
	require.NoError(t, err)

	require.Equal(t, Landscape, plan.Mode)
	assert.Equal(t, []int{0}, plan.Columns[0].Cells)
	assert.Equal(t, 1, plan.Cells[1].Column)
}

func TestCompute_InvalidViewport(t *testing.T) {
	_, err := Compute(100, 0, []float64{1})
	assert.ErrorIs(t, err, ErrInvalidViewport)

	_, err = Compute(100, 100, nil)
	assert.ErrorIs(t, err, ErrInvalidViewport)
}
