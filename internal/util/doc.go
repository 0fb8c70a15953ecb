// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util holds small helpers shared by the dashboard packages.
//
// # Key Functions
//
// String Utilities:
//   - TruncateWidth: cut a string to a terminal column budget
//   - PadWidth: pad a string to an exact column count
//   - StringWidth: display width, wide runes counting as two columns
//
// File Operations:
//   - AtomicWriteFile: crash-safe file writing with fsync
//   - AtomicWriteFileWithDir: the same, with explicit directory permissions
//
// # Usage
//
//	label := util.TruncateWidth(w.Name, cols)
//	err := util.AtomicWriteFile(path, data, 0644)
package util
