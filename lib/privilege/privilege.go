// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package privilege

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Refusal is the diagnostic printed when Check refuses to continue.
const Refusal = "[ ERROR ] NightOS cannot be run as root without --i-am-really-stupid."

// ErrSuperuser is returned by Check for a refused privileged launch.
var ErrSuperuser = errors.New("running as superuser without override")

// IsSuperuser reports whether the process runs with root or setuid
// privileges.
func IsSuperuser() bool {
	return superuser(unix.Getuid(), unix.Geteuid())
}

func superuser(uid, euid int) bool {
	return uid != euid || euid == 0
}

// Check returns ErrSuperuser when the process is privileged and the
// override was not given.
func Check(ignoreSudo, isSuperuser bool) error {
	if isSuperuser && !ignoreSudo {
		return ErrSuperuser
	}
	return nil
}
