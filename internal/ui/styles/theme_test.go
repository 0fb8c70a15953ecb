// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package styles

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewTheme_Names(t *testing.T) {
	assert.True(t, NewTheme("dark").IsDark)
	assert.False(t, NewTheme("LIGHT").IsDark)
	assert.Equal(t, "light", NewTheme(" light ").Name)
	assert.Equal(t, "auto", NewTheme("").Name)
	assert.Equal(t, "auto", NewTheme("neon").Name)
}

func TestTheme_StylesRender(t *testing.T) {
	theme := NewTheme("dark")
	for name, s := range map[string]string{
		"title":  theme.Title.Render("welliuᴍ"),
		"widget": theme.WidgetBox(false).Render("body"),
		"detail": theme.DetailBox.Render("entries"),
		"empty":  theme.Empty.Render("No entries yet"),
	} {
		assert.NotEmpty(t, s, name)
	}
}

func TestWidgetBox_Bordered(t *testing.T) {
	theme := NewTheme("dark")
	out := theme.WidgetBox(true).Render("x")
	// A rounded border adds a line above and below the content.
	assert.Equal(t, 3, len(strings.Split(out, "\n")))
}

func TestRenderStatus(t *testing.T) {
	assert.Contains(t, RenderSuccess("saved"), "[OK] saved")
	assert.Contains(t, RenderError("failed"), "[X] failed")
	assert.Contains(t, RenderWarning("careful"), "[!] careful")
	assert.Contains(t, RenderInfo("note"), "[i] note")
}
