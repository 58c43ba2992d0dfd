// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

//go:build linux

package realtime

import (
	"errors"
	"runtime"
	"strings"
	"testing"

	"golang.org/x/sys/unix"
)

// The outcome depends on the test environment's privileges, so only
// the shape of the result is checked.
func TestGainReportsOutcome(t *testing.T) {
	// Pin to a thread that exists when Gain lists /proc/self/task.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	changed, err := Gain()
	if err != nil {
		if !strings.Contains(err.Error(), "SCHED_RR") {
			t.Errorf("error %q does not name the policy", err)
		}
		var errno unix.Errno
		if !errors.As(err, &errno) && !strings.Contains(err.Error(), "listing threads") {
			t.Errorf("error %v does not carry the kernel errno", err)
		}
		return
	}
	if changed < 1 {
		t.Errorf("Gain changed %d threads, want at least 1", changed)
	}

	attributes, err := unix.SchedGetAttr(0, 0)
	if err != nil {
		t.Fatalf("SchedGetAttr: %v", err)
	}
	if attributes.Policy != policyRoundRobin {
		t.Errorf("policy = %d, want SCHED_RR (%d)", attributes.Policy, policyRoundRobin)
	}
}
