// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides command-line parsing and the non-interactive
// commands of wellium.
//
// # Key Types
//
//   - Command: Enumeration of the available commands
//   - Args: Parsed command-line arguments
//   - ArgParser: Flag and positional parsing shared by every command
//   - Env: The collaborators a command runs against
//
// # Usage
//
//	cmd, args, err := cli.Parse(os.Args[1:])
//	if cmd == cli.CmdTUI {
//	    // start the dashboard
//	}
//	err = cli.Run(ctx, cmd, args, env)
//
// # Commands Overview
//
//   - tui: The dashboard (default)
//   - widgets: List the widget registry
//   - layout: Compute a layout plan for a viewport
//   - history: List, add and export widget history
//   - config: Show and edit the config file
//
// Listing commands accept --json.
package cli
