// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package privilege refuses superuser execution. A process counts as
// privileged when its effective uid is 0 or differs from its real uid
// (a setuid launch). [Check] turns that fact and the operator's override
// into a decision; it is evaluated after argument parsing and before
// any server resource exists.
package privilege
