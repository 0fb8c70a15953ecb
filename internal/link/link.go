// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package link is the seam for an external sensor connection.
//
// Only a stub exists today. The dashboard tries Connect once at startup and
// reports failure as a notice; there is no retry.
package link

import (
	"context"
	"errors"
	"sync"
)

var (
	ErrConnectFailed = errors.New("link connect failed")
	ErrNotConnected  = errors.New("link not connected")
)

// Manager is a connection to a device that produces raw readings.
type Manager interface {
	Connect(ctx context.Context) error
	ReadData(ctx context.Context) ([]byte, error)
}

// Stub is a Manager with canned behavior.
type Stub struct {
	// Fail makes Connect return ErrConnectFailed.
	Fail bool
	// Payload is returned by ReadData once connected.
	Payload []byte

	mu        sync.Mutex
	connected bool
}

// NewStub returns a stub that connects when fail is false.
func NewStub(fail bool) *Stub {
	return &Stub{Fail: fail}
}

// Connect marks the stub connected, or fails if configured to.
func (s *Stub) Connect(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.Fail {
		return ErrConnectFailed
	}
	s.mu.Lock()
	s.connected = true
	s.mu.Unlock()
	return nil
}

// ReadData returns a copy of Payload. It is empty, never nil, when no
// payload is configured.
func (s *Stub) ReadData(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.connected {
		return nil, ErrNotConnected
	}
	return ProcessData(s.Payload), nil
}

// ProcessData turns a raw reading into its processed form. Today that is an
// independent copy of the input.
func ProcessData(data []byte) []byte {
	out := make([]byte, len(data))
	copy(out, data)
	return out
}
