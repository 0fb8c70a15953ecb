// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/wellium/wellium-tui/internal/export"
	"github.com/wellium/wellium-tui/internal/history"
	"github.com/wellium/wellium-tui/internal/util"
	"github.com/wellium/wellium-tui/internal/widget"
)

// HandleHistory dispatches `wellium history <list|add|export>`.
func HandleHistory(ctx context.Context, env *Env, args Args) error {
	switch args.Subcommand {
	case "", "list", "ls":
		return handleHistoryList(ctx, env, args)
	case "add":
		return handleHistoryAdd(ctx, env, args)
	case "export":
		return handleHistoryExport(ctx, env, args)
	default:
		return NewNotFoundError("history subcommand", args.Subcommand,
			closest(args.Subcommand, []string{"list", "add", "export"}))
	}
}

// historyTarget resolves the widget argument at position 2.
func historyTarget(env *Env, args Args, usage string) (widget.Descriptor, error) {
	key := args.Parser.Positional(2)
	if key == "" {
		return widget.Descriptor{}, ErrMissingArgument("widget", usage)
	}
	return ResolveWidget(env.Registry, key)
}

func openStore(ctx context.Context, env *Env) (history.Store, error) {
	if env.OpenStore == nil {
		return nil, history.ErrStoreUnavailable
	}
	return env.OpenStore(ctx)
}

// =============================================================================
// LIST
// =============================================================================

func handleHistoryList(ctx context.Context, env *Env, args Args) error {
	d, err := historyTarget(env, args, "wellium history list widget-widget-7")
	if err != nil {
		return err
	}
	store, err := openStore(ctx, env)
	if err != nil {
		return err
	}
	entries, err := store.Entries(ctx, d.ID)
	if err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("history list", export.History{
			WidgetID:    d.ID,
			Name:        d.Name,
			Description: d.Description,
			ExportedAt:  env.Now(),
			Entries:     entries,
		}).Print(env.Out)
	}

	fmt.Fprintln(env.Out, TitleStyle.Render(fmt.Sprintf("%s history", displayName(d))))
	if len(entries) == 0 {
		fmt.Fprintln(env.Out, DimStyle.Render("No historical data"))
		return nil
	}
	for _, e := range entries {
		fmt.Fprintf(env.Out, "%s  %s\n", DimStyle.Render(e.Timestamp), e.Content)
	}
	return nil
}

func displayName(d widget.Descriptor) string {
	if d.Name == "" {
		return d.ID
	}
	return d.Name
}

// =============================================================================
// ADD
// =============================================================================

func handleHistoryAdd(ctx context.Context, env *Env, args Args) error {
	d, err := historyTarget(env, args, `wellium history add "Widget 7" feeling rested`)
	if err != nil {
		return err
	}
	if !d.Interactive() {
		return NewValidationError("widget", d.ID, "does not take input")
	}

	content := JoinPositionalArgs(args.Parser, 3)
	if strings.TrimSpace(content) == "" {
		content, err = promptContent(env, d)
		if err != nil {
			return err
		}
	}
	if strings.TrimSpace(content) == "" {
		return NewValidationError("text", "", "entry is empty")
	}

	store, err := openStore(ctx, env)
	if err != nil {
		return err
	}
	entry, err := store.AddEntry(ctx, d.ID, content)
	if err != nil {
		return err
	}

	if args.JSON {
		return NewJSONResponse("history add", entry).Print(env.Out)
	}
	fmt.Fprintf(env.Out, "%s saved to %s at %s\n",
		SuccessStyle.Render("[OK]"), displayName(d), entry.Timestamp)
	return nil
}

// promptContent asks for entry text, using the widget placeholder as the
// prompt.
func promptContent(env *Env, d widget.Descriptor) (string, error) {
	p := env.Prompter
	if p == nil {
		if !CanPrompt() {
			return "", ErrMissingArgument("text", `wellium history add "Widget 7" feeling rested`)
		}
		lp := NewLinePrompter()
		defer func() {
			if err := lp.Close(); err != nil {
				fmt.Fprintf(env.Err, "%s could not save input history: %v\n", WarningStyle.Render("[!]"), err)
			}
		}()
		p = lp
	}

	prompt := d.Content.Placeholder
	if prompt == "" {
		prompt = d.Name
	}
	return p.Prompt(prompt + " ")
}

// =============================================================================
// EXPORT
// =============================================================================

func handleHistoryExport(ctx context.Context, env *Env, args Args) error {
	d, err := historyTarget(env, args, "wellium history export widget-widget-7 --format md")
	if err != nil {
		return err
	}

	format := strings.ToLower(args.Parser.FlagOrDefault("format", "json"))
	opts := export.DefaultOptions()
	exporter, err := export.ForFormat(format, opts)
	if err != nil {
		return NewValidationErrorWithExample("format", format, "unsupported format", "--format json|md")
	}

	store, err := openStore(ctx, env)
	if err != nil {
		return err
	}
	entries, err := store.Entries(ctx, d.ID)
	if err != nil {
		return err
	}

	h := export.History{
		WidgetID:    d.ID,
		Name:        displayName(d),
		Description: d.Description,
		ExportedAt:  env.Now(),
		Entries:     entries,
	}

	output := args.Parser.Flag("output")
	if output == "" {
		return writeExport(env, h, exporter)
	}

	if info, statErr := os.Stat(output); statErr == nil && info.IsDir() {
		opts.OutputDir = output
		path, err := export.ExportToFile(h, exporter, opts)
		if err != nil {
			return NewCommandError("history", "export", "write failed", err)
		}
		fmt.Fprintf(env.Err, "%s exported %d entries to %s\n", SuccessStyle.Render("[OK]"), len(entries), path)
		return nil
	}

	data, err := exporter.Export(h)
	if err != nil {
		return NewCommandError("history", "export", "encode failed", err)
	}
	if err := util.AtomicWriteFile(filepath.Clean(output), data, 0644); err != nil {
		return NewCommandError("history", "export", "write failed", err)
	}
	fmt.Fprintf(env.Err, "%s exported %d entries to %s\n", SuccessStyle.Render("[OK]"), len(entries), output)
	return nil
}

// writeExport prints an export to stdout, highlighted for a terminal.
func writeExport(env *Env, h export.History, exporter export.Exporter) error {
	data, err := exporter.Export(h)
	if err != nil {
		return NewCommandError("history", "export", "encode failed", err)
	}
	out := string(data)
	if env.Highlight {
		switch exporter.(type) {
		case *export.JSONExporter:
			out = highlightCode(out, "json")
		case *export.MarkdownExporter:
			out = renderMarkdown(out, GetTerminalWidth())
		}
	}
	_, err = fmt.Fprint(env.Out, out)
	return err
}
