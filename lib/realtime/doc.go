// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package realtime asks the kernel for round-robin real-time scheduling.
//
// [Gain] moves every thread of the process to SCHED_RR at the lowest
// real-time priority, with SCHED_FLAG_RESET_ON_FORK set so processes the
// server spawns start with normal scheduling. The request needs
// CAP_SYS_NICE or a non-zero RLIMIT_RTPRIO; callers treat failure as a
// warning, never as fatal.
package realtime
