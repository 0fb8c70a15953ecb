// wellium - adaptive widget dashboard for the terminal.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/wellium/wellium-tui/internal/cli"
	"github.com/wellium/wellium-tui/internal/config"
	"github.com/wellium/wellium-tui/internal/dashboard"
	"github.com/wellium/wellium-tui/internal/history"
	"github.com/wellium/wellium-tui/internal/link"
	"github.com/wellium/wellium-tui/internal/ui/app"
	"github.com/wellium/wellium-tui/internal/viewport"
	"github.com/wellium/wellium-tui/internal/widget"
)

// Version information (set at build time)
var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// storeOpenTimeout bounds database creation and migration at startup.
const storeOpenTimeout = 10 * time.Second

func init() {
	cli.Version = Version
	cli.GitCommit = GitCommit
	cli.BuildDate = BuildDate
}

func main() {
	cmd, args, err := cli.Parse(os.Args[1:])
	if err != nil {
		cli.DisplayError(os.Stderr, err, args.JSON)
		fmt.Fprintln(os.Stderr, "Run 'wellium help' for usage.")
		os.Exit(cli.GetExitCode(err))
	}

	cfg, cfgErr := config.Load()
	if cfg == nil {
		// The environment overrides made the config invalid.
		fmt.Fprintf(os.Stderr, "Error: %v\n", cfgErr)
		os.Exit(cli.ExitConfigError)
	}

	if cmd == cli.CmdTUI {
		os.Exit(runTUI(cfg, cfgErr, args))
	}
	if cfgErr != nil {
		fmt.Fprintf(os.Stderr, "%s %v (using defaults)\n", cli.WarningStyle.Render("[!]"), cfgErr)
	}
	os.Exit(runCommand(cmd, args, cfg))
}

// runCommand executes a non-interactive command and returns the exit code.
func runCommand(cmd cli.Command, args cli.Args, cfg *config.Config) int {
	ctx := context.Background()

	var opened history.Store
	env := cli.DefaultEnv(cfg, func(ctx context.Context) (history.Store, error) {
		if opened != nil {
			return opened, nil
		}
		store, err := openHistory(ctx, cfg, args.Ephemeral)
		if err != nil {
			return nil, err
		}
		opened = store
		return store, nil
	})

	err := cli.Run(ctx, cmd, args, env)
	if opened != nil {
		if cerr := opened.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	if err != nil {
		cli.DisplayError(os.Stderr, err, args.JSON)
		return cli.GetExitCode(err)
	}
	return cli.ExitSuccess
}

// openHistory returns the configured store. On failure it returns the
// Unavailable store alongside the error so callers can degrade.
func openHistory(ctx context.Context, cfg *config.Config, ephemeral bool) (history.Store, error) {
	if ephemeral || cfg.Storage.Ephemeral {
		return history.NewMemoryStore(), nil
	}

	path, err := cfg.DatabasePath()
	if err != nil {
		return history.Unavailable{Cause: err}, fmt.Errorf("%w: %v", history.ErrStoreUnavailable, err)
	}

	opener := history.NewOpener(path)
	if cfg.Storage.BusyTimeoutMs > 0 {
		opener.BusyTimeout = time.Duration(cfg.Storage.BusyTimeoutMs) * time.Millisecond
	}

	openCtx, cancel := context.WithTimeout(ctx, storeOpenTimeout)
	defer cancel()
	store, err := opener.Open(openCtx)
	if err != nil {
		return history.Unavailable{Cause: err}, err
	}
	return store, nil
}

// runTUI starts the dashboard and returns the exit code.
func runTUI(cfg *config.Config, cfgErr error, args cli.Args) int {
	// The alternate screen owns the terminal, so logs go to a file.
	logFile := setupLogging()
	if logFile != nil {
		defer logFile.Close()
	}
	log.Printf("wellium %s starting", Version)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	store, storeErr := openHistory(ctx, cfg, args.Ephemeral)
	defer func() {
		if err := store.Close(); err != nil {
			log.Printf("WARN: closing history store: %v", err)
		}
	}()

	async := history.NewAsync(store)
	// Pending writes finish before the store closes.
	defer async.Wait()

	ctrl := dashboard.New(ctx, widget.DefaultRegistry(), async)
	switch {
	case storeErr != nil:
		log.Printf("WARN: history store unavailable: %v", storeErr)
		ctrl.SetNotice(dashboard.NoticeWarning, "History unavailable: new entries will not be saved")
	case cfgErr != nil:
		log.Printf("WARN: config: %v", cfgErr)
		ctrl.SetNotice(dashboard.NoticeWarning, "Config file ignored: see log")
	}

	var mgr link.Manager
	if cfg.Link.Enabled {
		mgr = link.NewStub(cfg.Link.Fail)
	}

	m := app.New(app.Options{
		Controller: ctrl,
		Tracker:    viewport.NewTracker(),
		Config:     cfg,
		Link:       mgr,
	})
	defer m.Close()

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.UI.Mouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	p := tea.NewProgram(m, opts...)

	if path, err := config.ActivePath(); err == nil {
		w, err := config.Watch(path, config.DefaultWatchDebounce, func(c *config.Config, err error) {
			p.Send(app.ConfigReloadedMsg{Config: c, Err: err})
		})
		if err != nil {
			log.Printf("WARN: not watching %s: %v", path, err)
		} else {
			defer w.Close()
		}
	}

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running wellium: %v\n", err)
		return 1
	}
	return 0
}

// setupLogging sends the standard logger to the wellium log file, or
// discards it when the file cannot be opened.
func setupLogging() *os.File {
	path, err := config.LogPath()
	if err == nil {
		err = config.EnsureConfigDir()
	}
	if err == nil {
		f, ferr := tea.LogToFile(path, "wellium")
		if ferr == nil {
			return f
		}
	}
	log.SetOutput(io.Discard)
	return nil
}
