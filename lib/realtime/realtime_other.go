// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build !linux

package realtime

import (
	"errors"
	"fmt"
)

// Gain is not supported outside Linux.
func Gain() (int, error) {
	return 0, fmt.Errorf("SCHED_RR: %w", errors.ErrUnsupported)
}
