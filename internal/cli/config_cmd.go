// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/wellium/wellium-tui/internal/config"
)

// HandleConfig dispatches `wellium config <show|path|init|get|set>`.
func HandleConfig(env *Env, args Args) error {
	switch args.Subcommand {
	case "", "show":
		return handleConfigShow(env, args)
	case "path":
		return handleConfigPath(env, args)
	case "init":
		return handleConfigInit(env, args)
	case "get":
		return handleConfigGet(env, args)
	case "set":
		return handleConfigSet(env, args)
	default:
		return NewNotFoundError("config subcommand", args.Subcommand,
			closest(args.Subcommand, []string{"show", "path", "init", "get", "set"}))
	}
}

func handleConfigShow(env *Env, args Args) error {
	if args.JSON {
		return NewJSONResponse("config show", env.Config).Print(env.Out)
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(env.Config); err != nil {
		return NewCommandError("config", "show", "encode failed", err)
	}
	out := buf.String()
	if env.Highlight {
		out = highlightCode(out, "toml")
	}
	fmt.Fprint(env.Out, out)
	return nil
}

// ConfigPathInfo is the output of `wellium config path --json`.
type ConfigPathInfo struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
}

func handleConfigPath(env *Env, args Args) error {
	path, err := config.ActivePath()
	if err != nil {
		return NewCommandError("config", "path", "cannot resolve config directory", err)
	}
	_, statErr := os.Stat(path)
	info := ConfigPathInfo{Path: path, Exists: statErr == nil}

	if args.JSON {
		return NewJSONResponse("config path", info).Print(env.Out)
	}
	fmt.Fprintln(env.Out, info.Path)
	if !info.Exists {
		fmt.Fprintln(env.Err, DimStyle.Render("(not created yet; run `wellium config init`)"))
	}
	return nil
}

func handleConfigInit(env *Env, args Args) error {
	path, err := config.ConfigPathTOML()
	if err != nil {
		return NewCommandError("config", "init", "cannot resolve config directory", err)
	}
	if _, err := os.Stat(path); err == nil && !args.Parser.BoolFlag("force") {
		return NewCommandError("config", "init", path+" already exists (use --force to overwrite)", nil)
	}
	if err := config.SaveTOML(config.Default(), path); err != nil {
		return NewCommandError("config", "init", "write failed", err)
	}
	fmt.Fprintf(env.Out, "%s wrote %s\n", SuccessStyle.Render("[OK]"), path)
	return nil
}

func handleConfigGet(env *Env, args Args) error {
	key := args.Parser.Positional(2)
	if key == "" {
		return ErrMissingArgument("key", "wellium config get ui.theme")
	}
	val, err := env.Config.Get(key)
	if err != nil {
		return NewNotFoundError("config key", key, closest(key, config.GetAllKeys()))
	}
	if args.JSON {
		return NewJSONResponse("config get", map[string]interface{}{key: val}).Print(env.Out)
	}
	fmt.Fprintln(env.Out, val)
	return nil
}

// handleConfigSet edits the file on disk, not the effective config, so
// environment overrides are never written back.
func handleConfigSet(env *Env, args Args) error {
	key, value := args.Parser.Positional(2), JoinPositionalArgs(args.Parser, 3)
	if key == "" || value == "" {
		return ErrMissingArgument("key and value", "wellium config set ui.theme light")
	}

	path, err := config.ActivePath()
	if err != nil {
		return NewCommandError("config", "set", "cannot resolve config directory", err)
	}
	isJSON := strings.EqualFold(filepath.Ext(path), ".json")

	cfg := config.Default()
	if _, statErr := os.Stat(path); statErr == nil {
		load := config.LoadTOML
		if isJSON {
			load = config.LoadJSON
		}
		if err := load(cfg, path); err != nil {
			return NewCommandError("config", "set", "cannot read "+path, err)
		}
	}

	if err := cfg.Set(key, value); err != nil {
		return NewNotFoundError("config key", key, closest(key, config.GetAllKeys()))
	}
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		var verrs config.ValidateErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return NewValidationError(key, value, verrs[0].Message)
		}
		return NewValidationError(key, value, err.Error())
	}

	save := config.SaveTOML
	if isJSON {
		save = config.SaveJSON
	}
	if err := save(cfg, path); err != nil {
		return NewCommandError("config", "set", "write failed", err)
	}
	fmt.Fprintf(env.Out, "%s %s = %s\n", SuccessStyle.Render("[OK]"), key, value)
	return nil
}
