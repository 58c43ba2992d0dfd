// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"os"
	"testing"
)

// RuntimeDir creates a 0700 directory directly under /tmp and removes
// it when the test completes.
func RuntimeDir(t testing.TB) string {
	t.Helper()
	directory, err := os.MkdirTemp("/tmp", "nightos-test-*")
	if err != nil {
		t.Fatalf("creating runtime directory: %v", err)
	}
	if err := os.Chmod(directory, 0o700); err != nil {
		t.Fatalf("chmod runtime directory: %v", err)
	}
	t.Cleanup(func() {
		_ = os.RemoveAll(directory)
	})
	return directory
}
