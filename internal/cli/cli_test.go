// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wellium/wellium-tui/internal/config"
	"github.com/wellium/wellium-tui/internal/export"
	"github.com/wellium/wellium-tui/internal/history"
)

// =============================================================================
// ARG PARSER TESTS
// =============================================================================

func TestArgParser_BasicParsing(t *testing.T) {
	tests := []struct {
		name     string
		args     []string
		known    []string
		wantSub  string
		validate func(*testing.T, *ArgParser)
	}{
		{
			name:    "simple subcommand",
			args:    []string{"widgets"},
			wantSub: "widgets",
		},
		{
			name:    "flag with value",
			args:    []string{"history", "export", "w7", "--format", "md"},
			wantSub: "history",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, "md", p.Flag("format"))
				assert.Equal(t, "w7", p.Positional(2))
			},
		},
		{
			name:    "flag with equals",
			args:    []string{"history", "--output=out.json"},
			wantSub: "history",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, "out.json", p.Flag("output"))
			},
		},
		{
			name:    "known boolean does not swallow positional",
			args:    []string{"--json", "layout", "10", "20"},
			known:   []string{"json"},
			wantSub: "layout",
			validate: func(t *testing.T, p *ArgParser) {
				assert.True(t, p.BoolFlag("json"))
				assert.Equal(t, 3, p.PositionalCount())
			},
		},
		{
			name:    "unknown flag before positional takes it as value",
			args:    []string{"--theme", "dark"},
			wantSub: "",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, "dark", p.Flag("theme"))
			},
		},
		{
			name:    "explicit boolean",
			args:    []string{"widgets", "--json=false"},
			wantSub: "widgets",
			validate: func(t *testing.T, p *ArgParser) {
				assert.False(t, p.BoolFlag("json"))
				assert.True(t, p.HasFlag("json"))
			},
		},
		{
			name:    "double dash ends flags",
			args:    []string{"history", "add", "w7", "--", "--not-a-flag"},
			wantSub: "history",
			validate: func(t *testing.T, p *ArgParser) {
				assert.Equal(t, "--not-a-flag", p.Positional(3))
				assert.False(t, p.HasFlag("not-a-flag"))
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewArgParser(tt.args, tt.known...)
			assert.Equal(t, tt.wantSub, p.Subcommand())
			if tt.validate != nil {
				tt.validate(t, p)
			}
		})
	}
}

func TestParsePositiveFloat(t *testing.T) {
	v, err := ParsePositiveFloat("12.5", "width")
	require.NoError(t, err)
	assert.Equal(t, 12.5, v)

	for _, bad := range []string{"", "abc", "0", "-3", "Inf", "NaN"} {
		_, err := ParsePositiveFloat(bad, "width")
		var verr *ValidationError
		assert.True(t, errors.As(err, &verr), "input %q", bad)
	}
}

// =============================================================================
// PARSE TESTS
// =============================================================================

func TestParse(t *testing.T) {
	tests := []struct {
		argv []string
		want Command
	}{
		{nil, CmdTUI},
		{[]string{"--ephemeral"}, CmdTUI},
		{[]string{"tui"}, CmdTUI},
		{[]string{"widgets", "--json"}, CmdWidgets},
		{[]string{"ls"}, CmdWidgets},
		{[]string{"layout", "100", "50"}, CmdLayout},
		{[]string{"HISTORY", "list", "w7"}, CmdHistory},
		{[]string{"config", "show"}, CmdConfig},
		{[]string{"--version"}, CmdVersion},
		{[]string{"version"}, CmdVersion},
		{[]string{"help"}, CmdHelp},
		{[]string{"widgets", "-h"}, CmdHelp},
	}
	for _, tt := range tests {
		t.Run(strings.Join(tt.argv, " "), func(t *testing.T) {
			cmd, _, err := Parse(tt.argv)
			require.NoError(t, err)
			assert.Equal(t, tt.want, cmd)
		})
	}
}

func TestParse_Flags(t *testing.T) {
	_, args, err := Parse([]string{"--ephemeral"})
	require.NoError(t, err)
	assert.True(t, args.Ephemeral)

	_, args, err = Parse([]string{"history", "List", "w7", "--json"})
	require.NoError(t, err)
	assert.True(t, args.JSON)
	assert.Equal(t, "list", args.Subcommand)
}

func TestParse_UnknownCommandSuggests(t *testing.T) {
	cmd, _, err := Parse([]string{"histroy"})
	assert.Equal(t, CmdHelp, cmd)

	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "history", nf.Suggestion)
	assert.Contains(t, err.Error(), `did you mean "history"`)
}

func TestSuggestCommand(t *testing.T) {
	assert.Equal(t, "widgets", SuggestCommand("widgts"))
	assert.Equal(t, "config", SuggestCommand("confg"))
	assert.Empty(t, SuggestCommand("x"), "too short")
	assert.Empty(t, SuggestCommand("widgets"), "exact match")
	assert.Empty(t, SuggestCommand("zzzzzzzz"))
}

// =============================================================================
// HELPERS
// =============================================================================

type fakePrompter struct {
	answer string
	asked  []string
}

func (f *fakePrompter) Prompt(p string) (string, error) {
	f.asked = append(f.asked, p)
	return f.answer, nil
}

func (f *fakePrompter) Close() error { return nil }

func testEnv(store history.Store) (*Env, *bytes.Buffer) {
	var out bytes.Buffer
	return &Env{
		Out: &out,
		Err: &bytes.Buffer{},
		OpenStore: func(context.Context) (history.Store, error) {
			return store, nil
		},
		Now: func() time.Time { return time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC) },
	}, &out
}

func run(t *testing.T, env *Env, argv ...string) error {
	t.Helper()
	cmd, args, err := Parse(argv)
	require.NoError(t, err)
	return Run(context.Background(), cmd, args, env)
}

type jsonEnvelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Command string          `json:"command"`
}

func decodeEnvelope(t *testing.T, b []byte) jsonEnvelope {
	t.Helper()
	var env jsonEnvelope
	require.NoError(t, json.Unmarshal(b, &env))
	require.True(t, env.Success)
	return env
}

// =============================================================================
// WIDGETS AND LAYOUT
// =============================================================================

func TestWidgets_JSON(t *testing.T) {
	env, out := testEnv(nil)
	require.NoError(t, run(t, env, "widgets", "--json"))

	var infos []WidgetInfo
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, out.Bytes()).Data, &infos))
	require.Len(t, infos, 25)
	assert.Equal(t, "widget-title", infos[0].ID)
	assert.False(t, infos[0].Selectable)
	assert.True(t, infos[3].Header)
	assert.Equal(t, "widget-widget-7", infos[7].ID)
	assert.True(t, infos[7].Interactive)
}

func TestWidgets_Text(t *testing.T) {
	env, out := testEnv(nil)
	require.NoError(t, run(t, env, "widgets"))
	assert.Contains(t, out.String(), "widget-widget-7")
	assert.Contains(t, out.String(), "(title)")
}

func TestLayout_JSON(t *testing.T) {
	env, out := testEnv(nil)
	require.NoError(t, run(t, env, "layout", "1000", "500", "--json"))

	var report LayoutReport
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, out.Bytes()).Data, &report))
	assert.Equal(t, "landscape", report.Mode)
	assert.Len(t, report.Cells, 25)
	assert.Greater(t, report.Columns, 1)
}

func TestLayout_Portrait(t *testing.T) {
	env, out := testEnv(nil)
	require.NoError(t, run(t, env, "layout", "360", "2000"))
	assert.Contains(t, out.String(), "portrait")
}

func TestLayout_BadArgs(t *testing.T) {
	env, _ := testEnv(nil)

	err := run(t, env, "layout", "100")
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	err = run(t, env, "layout", "100", "zero")
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

// =============================================================================
// HISTORY
// =============================================================================

func TestHistory_AddThenList(t *testing.T) {
	store := history.NewMemoryStore()
	env, out := testEnv(store)

	require.NoError(t, run(t, env, "history", "add", "Widget 7", "hello", "world"))
	assert.Contains(t, out.String(), "[OK]")

	out.Reset()
	require.NoError(t, run(t, env, "history", "list", "widget-widget-7", "--json"))

	var h export.History
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, out.Bytes()).Data, &h))
	require.Len(t, h.Entries, 1)
	assert.Equal(t, "hello world", h.Entries[0].Content)
	assert.Equal(t, "widget-widget-7", h.WidgetID)
}

func TestHistory_ListEmpty(t *testing.T) {
	env, out := testEnv(history.NewMemoryStore())
	require.NoError(t, run(t, env, "history", "list", "Widget 11"))
	assert.Contains(t, out.String(), "No historical data")
}

func TestHistory_AddPromptsWithoutText(t *testing.T) {
	store := history.NewMemoryStore()
	env, _ := testEnv(store)
	prompter := &fakePrompter{answer: "from prompt"}
	env.Prompter = prompter

	require.NoError(t, run(t, env, "history", "add", "widget-widget-7"))
	require.Len(t, prompter.asked, 1)
	assert.Contains(t, prompter.asked[0], "Type something")

	entries, err := store.Entries(context.Background(), "widget-widget-7")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "from prompt", entries[0].Content)
}

func TestHistory_AddRejects(t *testing.T) {
	env, _ := testEnv(history.NewMemoryStore())

	err := run(t, env, "history", "add", "Widget 5", "text")
	var verr *ValidationError
	assert.True(t, errors.As(err, &verr), "text widgets take no input")

	env.Prompter = &fakePrompter{answer: "   "}
	err = run(t, env, "history", "add", "Widget 7")
	assert.True(t, errors.As(err, &verr), "blank entries are rejected")

	err = run(t, env, "history", "add", "Widgt 7", "x")
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "Widget 7", nf.Suggestion)
	assert.Equal(t, ExitNotFoundError, GetExitCode(err))
}

func TestHistory_UnavailableStore(t *testing.T) {
	env, _ := testEnv(history.Unavailable{})
	err := run(t, env, "history", "add", "Widget 7", "x")
	assert.ErrorIs(t, err, history.ErrStoreUnavailable)
	assert.Equal(t, ExitStorageError, GetExitCode(err))
}

func TestHistory_ExportStdout(t *testing.T) {
	store := history.NewMemoryStore()
	_, err := store.AddEntry(context.Background(), "widget-widget-7", "exported")
	require.NoError(t, err)

	env, out := testEnv(store)
	require.NoError(t, run(t, env, "history", "export", "Widget 7"))

	var h export.History
	require.NoError(t, json.Unmarshal(out.Bytes(), &h))
	require.Len(t, h.Entries, 1)
	assert.Equal(t, "exported", h.Entries[0].Content)
}

func TestHistory_ExportToFileAndDir(t *testing.T) {
	store := history.NewMemoryStore()
	_, err := store.AddEntry(context.Background(), "widget-widget-7", "to disk")
	require.NoError(t, err)
	env, _ := testEnv(store)

	file := filepath.Join(t.TempDir(), "out.md")
	require.NoError(t, run(t, env, "history", "export", "Widget 7", "--format", "md", "--output", file))
	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# Widget 7")
	assert.Contains(t, string(data), "to disk")

	dir := t.TempDir()
	require.NoError(t, run(t, env, "history", "export", "Widget 7", "--output", dir))
	matches, err := filepath.Glob(filepath.Join(dir, "history_widget-widget-7_*.json"))
	require.NoError(t, err)
	assert.Len(t, matches, 1)
}

func TestHistory_ExportBadFormat(t *testing.T) {
	env, _ := testEnv(history.NewMemoryStore())
	err := run(t, env, "history", "export", "Widget 7", "--format", "csv")
	assert.Equal(t, ExitUsageError, GetExitCode(err))
}

func TestHistory_UnknownSubcommand(t *testing.T) {
	env, _ := testEnv(history.NewMemoryStore())
	err := run(t, env, "history", "lst", "Widget 7")
	var nf *NotFoundError
	require.True(t, errors.As(err, &nf))
	assert.Equal(t, "list", nf.Suggestion)
}

// =============================================================================
// CONFIG
// =============================================================================

func isolateConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("WELLIUM_HOME", dir)
	for _, k := range []string{"WELLIUM_DB", "WELLIUM_THEME", "WELLIUM_CELL_ASPECT", "WELLIUM_EPHEMERAL"} {
		t.Setenv(k, "")
	}
	return dir
}

func TestConfig_InitSetGet(t *testing.T) {
	dir := isolateConfig(t)
	env, out := testEnv(nil)

	require.NoError(t, run(t, env, "config", "init"))
	path := filepath.Join(dir, "config.toml")
	assert.FileExists(t, path)

	err := run(t, env, "config", "init")
	assert.Equal(t, ExitConfigError, GetExitCode(err), "refuses to overwrite")
	require.NoError(t, run(t, env, "config", "init", "--force"))

	require.NoError(t, run(t, env, "config", "set", "ui.theme", "LIGHT"))
	cfg, err := config.LoadFromPath(path)
	require.NoError(t, err)
	assert.Equal(t, "light", cfg.UI.Theme)

	err = run(t, env, "config", "set", "ui.theme", "neon")
	assert.Equal(t, ExitUsageError, GetExitCode(err))

	err = run(t, env, "config", "set", "ui.colour", "x")
	var nf *NotFoundError
	assert.True(t, errors.As(err, &nf))

	out.Reset()
	env.Config = cfg
	require.NoError(t, run(t, env, "config", "get", "ui.theme"))
	assert.Equal(t, "light\n", out.String())
}

func TestConfig_PathAndShow(t *testing.T) {
	dir := isolateConfig(t)
	env, out := testEnv(nil)

	require.NoError(t, run(t, env, "config", "path", "--json"))
	var info ConfigPathInfo
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, out.Bytes()).Data, &info))
	assert.Equal(t, filepath.Join(dir, "config.toml"), info.Path)
	assert.False(t, info.Exists)

	out.Reset()
	require.NoError(t, run(t, env, "config", "show"))
	assert.Contains(t, out.String(), "cell_aspect")
}

// =============================================================================
// ERRORS AND VERSION
// =============================================================================

func TestGetExitCode(t *testing.T) {
	assert.Equal(t, ExitSuccess, GetExitCode(nil))
	assert.Equal(t, ExitGeneralError, GetExitCode(errors.New("boom")))
	assert.Equal(t, ExitUsageError, GetExitCode(ErrMissingArgument("x", "")))
	assert.Equal(t, ExitStorageError, GetExitCode(history.ErrWriteFailed))
}

func TestDisplayErrorJSON(t *testing.T) {
	var buf bytes.Buffer
	DisplayError(&buf, NewNotFoundError("widget", "w99", "w9"), true)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, "not_found_error", got["error_type"])
	assert.Equal(t, "w9", got["suggestion"])
}

func TestVersion_JSON(t *testing.T) {
	env, out := testEnv(nil)
	require.NoError(t, run(t, env, "version", "--json"))

	var info VersionInfo
	require.NoError(t, json.Unmarshal(decodeEnvelope(t, out.Bytes()).Data, &info))
	assert.Equal(t, Version, info.Version)
}
