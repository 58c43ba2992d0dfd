// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package watchdog

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/night-dist/nightos/lib/clock"
)

// DefaultInterval is the period between WATCHDOG=1 messages.
const DefaultInterval = 5 * time.Second

const (
	messageReady    = "READY=1\n"
	messageAlive    = "WATCHDOG=1\n"
	messageStopping = "STOPPING=1\n"
)

// Heartbeat writes liveness messages to a supervisor.
type Heartbeat struct {
	writer   io.WriteCloser
	clock    clock.Clock
	interval time.Duration
	logger   *slog.Logger
}

// New returns a Heartbeat writing to writer. It takes ownership of
// writer and closes it in Close.
func New(writer io.WriteCloser, clk clock.Clock, interval time.Duration, logger *slog.Logger) *Heartbeat {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Heartbeat{writer: writer, clock: clk, interval: interval, logger: logger}
}

// FromDescriptor wraps an inherited descriptor.
func FromDescriptor(fd int, clk clock.Clock, interval time.Duration, logger *slog.Logger) *Heartbeat {
	return New(os.NewFile(uintptr(fd), fmt.Sprintf("watchdog-fd-%d", fd)), clk, interval, logger)
}

// Run sends READY=1, then WATCHDOG=1 every interval until ctx is done,
// then STOPPING=1. It returns early with the error of a failed write.
func (h *Heartbeat) Run(ctx context.Context) error {
	if err := h.send(messageReady); err != nil {
		return err
	}

	ticker := h.clock.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return h.send(messageStopping)
		case <-ticker.C:
			if err := h.send(messageAlive); err != nil {
				return err
			}
		}
	}
}

// Close closes the descriptor.
func (h *Heartbeat) Close() error {
	return h.writer.Close()
}

func (h *Heartbeat) send(message string) error {
	if _, err := io.WriteString(h.writer, message); err != nil {
		h.logger.Warn("watchdog write failed, heartbeat stopped", "error", err)
		return fmt.Errorf("writing watchdog message: %w", err)
	}
	return nil
}
