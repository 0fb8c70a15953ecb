// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package app

import (
	"time"

	"github.com/wellium/wellium-tui/internal/config"
)

// LinkStatusMsg reports the startup connection attempt.
type LinkStatusMsg struct {
	Connected bool
	Bytes     int // size of the first reading
	Err       error
}

// ConfigReloadedMsg carries a config file change picked up by the watcher.
type ConfigReloadedMsg struct {
	Config *config.Config
	Err    error
}

// noticeExpiredMsg clears the notice that was set at At.
type noticeExpiredMsg struct {
	At time.Time
}
