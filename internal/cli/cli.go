// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// cli.go - CLI parsing and command dispatch for wellium.
package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"runtime"
	"strings"
	"time"

	"github.com/wellium/wellium-tui/internal/config"
	"github.com/wellium/wellium-tui/internal/history"
	"github.com/wellium/wellium-tui/internal/widget"
)

// Version information (can be overridden at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// Command represents the CLI command to execute.
type Command int

const (
	CmdTUI Command = iota
	CmdWidgets
	CmdLayout
	CmdHistory
	CmdConfig
	CmdVersion
	CmdHelp
)

// String returns the command name.
func (c Command) String() string {
	switch c {
	case CmdTUI:
		return "tui"
	case CmdWidgets:
		return "widgets"
	case CmdLayout:
		return "layout"
	case CmdHistory:
		return "history"
	case CmdConfig:
		return "config"
	case CmdVersion:
		return "version"
	default:
		return "help"
	}
}

// boolFlagNames never take a value.
var boolFlagNames = []string{"json", "ephemeral", "help", "h", "version", "v", "force"}

// Args holds parsed CLI arguments.
type Args struct {
	// Global flags
	JSON      bool
	Ephemeral bool

	// Subcommand is the word after the command ("list", "show", ...).
	Subcommand string

	// Parser holds every positional and flag; position 0 is the command.
	Parser *ArgParser
}

const usageText = `wellium - adaptive widget dashboard

Usage:
  wellium                          Start the dashboard (default)
  wellium tui [--ephemeral]        Start the dashboard; --ephemeral keeps history in memory
  wellium widgets [--json]         List widgets
  wellium layout <width> <height>  Show the layout plan for a viewport
    --json                         Output in JSON format
  wellium history list <widget>    List a widget's history, newest first
    --json                         Output in JSON format
  wellium history add <widget> [text...]
                                   Record an entry; prompts when text is omitted
  wellium history export <widget>  Export a widget's history
    --format json|md               Export format (default: json)
    --output FILE|DIR              Write to a file or directory (default: stdout)
  wellium config [show]            Show the active configuration
  wellium config path              Show the config file path
  wellium config init [--force]    Write a default config file
  wellium config get <key>         Show one setting (e.g. ui.theme)
  wellium config set <key> <value> Change one setting
  wellium version                  Show version
  wellium help                     Show this help

Widgets are named by id (widget-widget-7) or by name ("Widget 7").

Environment:
  WELLIUM_HOME          Config directory (default: ~/.wellium)
  WELLIUM_DB            History database path
  WELLIUM_THEME         dark, light or auto
  WELLIUM_CELL_ASPECT   Terminal cell height/width ratio
  WELLIUM_EPHEMERAL     Keep history in memory
  NO_COLOR              Disable colored output
`

// PrintUsage writes the usage text.
func PrintUsage(w io.Writer) {
	fmt.Fprint(w, usageText)
}

// VersionInfo is the payload of `wellium version --json`.
type VersionInfo struct {
	Version   string `json:"version"`
	GitCommit string `json:"git_commit"`
	BuildDate string `json:"build_date"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func versionInfo() VersionInfo {
	return VersionInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// PrintVersion writes version information.
func PrintVersion(w io.Writer, jsonMode bool) error {
	info := versionInfo()
	if jsonMode {
		return NewJSONResponse("version", info).Print(w)
	}
	fmt.Fprintf(w, "wellium %s\n", info.Version)
	fmt.Fprintf(w, "  Commit:   %s\n", info.GitCommit)
	fmt.Fprintf(w, "  Built:    %s\n", info.BuildDate)
	fmt.Fprintf(w, "  Go:       %s\n", info.GoVersion)
	fmt.Fprintf(w, "  Platform: %s\n", info.Platform)
	return nil
}

// Parse parses command-line arguments (without the program name).
// An unknown command returns CmdHelp and a NotFoundError that may carry a
// suggestion.
func Parse(argv []string) (Command, Args, error) {
	p := NewArgParser(argv, boolFlagNames...)
	args := Args{
		JSON:       p.BoolFlag("json"),
		Ephemeral:  p.BoolFlag("ephemeral"),
		Subcommand: strings.ToLower(p.Positional(1)),
		Parser:     p,
	}

	if p.BoolFlag("version", "v") && p.PositionalCount() == 0 {
		return CmdVersion, args, nil
	}
	if p.BoolFlag("help", "h") {
		return CmdHelp, args, nil
	}
	if p.PositionalCount() == 0 {
		return CmdTUI, args, nil
	}

	switch name := strings.ToLower(p.Subcommand()); name {
	case "tui":
		return CmdTUI, args, nil
	case "widgets", "w", "ls":
		return CmdWidgets, args, nil
	case "layout":
		return CmdLayout, args, nil
	case "history", "hist":
		return CmdHistory, args, nil
	case "config":
		return CmdConfig, args, nil
	case "version":
		return CmdVersion, args, nil
	case "help":
		return CmdHelp, args, nil
	default:
		return CmdHelp, args, NewNotFoundError("command", name, SuggestCommand(name))
	}
}

// =============================================================================
// EXECUTION ENVIRONMENT
// =============================================================================

// Env holds what a command runs against.
type Env struct {
	Out io.Writer
	Err io.Writer

	Config   *config.Config
	Registry *widget.Registry

	// OpenStore provides the history store. The caller owns closing it.
	OpenStore func(ctx context.Context) (history.Store, error)

	// Prompter reads interactive input; nil uses a line editor on a TTY.
	Prompter Prompter

	// Highlight colours JSON and renders Markdown for a terminal.
	Highlight bool

	Now func() time.Time
}

// DefaultEnv builds an environment for the real terminal.
func DefaultEnv(cfg *config.Config, openStore func(ctx context.Context) (history.Store, error)) *Env {
	return &Env{
		Out:       os.Stdout,
		Err:       os.Stderr,
		Config:    cfg,
		Registry:  widget.DefaultRegistry(),
		OpenStore: openStore,
		Highlight: ColorsEnabled(),
		Now:       time.Now,
	}
}

func (e *Env) withDefaults() *Env {
	out := *e
	if out.Out == nil {
		out.Out = io.Discard
	}
	if out.Err == nil {
		out.Err = io.Discard
	}
	if out.Config == nil {
		out.Config = config.Default()
	}
	if out.Registry == nil {
		out.Registry = widget.DefaultRegistry()
	}
	if out.Now == nil {
		out.Now = time.Now
	}
	return &out
}

// Run executes a non-interactive command.
func Run(ctx context.Context, cmd Command, args Args, env *Env) error {
	env = env.withDefaults()

	switch cmd {
	case CmdWidgets:
		return HandleWidgets(env, args)
	case CmdLayout:
		return HandleLayout(env, args)
	case CmdHistory:
		return HandleHistory(ctx, env, args)
	case CmdConfig:
		return HandleConfig(env, args)
	case CmdVersion:
		return PrintVersion(env.Out, args.JSON)
	case CmdTUI:
		return NewCommandError("tui", "run", "the dashboard is started by the caller", nil)
	default:
		PrintUsage(env.Out)
		return nil
	}
}
