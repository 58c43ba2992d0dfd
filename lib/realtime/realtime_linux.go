// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package realtime

import (
	"fmt"
	"os"
	"strconv"

	"golang.org/x/sys/unix"
)

const (
	policyRoundRobin = 2 // SCHED_RR
	flagResetOnFork  = 0x01
	minimumPriority  = 1 // sched_get_priority_min(SCHED_RR) on Linux
)

// Gain applies SCHED_RR to every thread listed in /proc/self/task and
// returns the number of threads changed. It stops at the first thread
// the kernel refuses.
func Gain() (int, error) {
	entries, err := os.ReadDir("/proc/self/task")
	if err != nil {
		return 0, fmt.Errorf("listing threads: %w", err)
	}

	attributes := unix.SchedAttr{
		Size:     unix.SizeofSchedAttr,
		Policy:   policyRoundRobin,
		Flags:    flagResetOnFork,
		Priority: minimumPriority,
	}

	changed := 0
	for _, entry := range entries {
		tid, err := strconv.Atoi(entry.Name())
		if err != nil {
			continue
		}
		if err := unix.SchedSetAttr(tid, &attributes, 0); err != nil {
			if err == unix.ESRCH {
				// Thread exited between listing and the call.
				continue
			}
			return changed, fmt.Errorf("SCHED_RR for thread %d: %w", tid, err)
		}
		changed++
	}
	return changed, nil
}
