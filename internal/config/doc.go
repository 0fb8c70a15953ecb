// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for wellium.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: main configuration structure
//   - StorageConfig: history database location and behavior
//   - LayoutConfig: terminal cell geometry
//   - UIConfig: theme and input settings
//   - Watcher: live reload on file change
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Environment variables (WELLIUM_*)
//   - ~/.wellium/config.toml
//   - ~/.wellium/config.json
//   - Built-in defaults
//
// # Usage
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Printf("WARN: %v (using defaults)", err)
//	}
//	dbPath, _ := cfg.DatabasePath()
package config
