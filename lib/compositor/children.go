// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compositor

import (
	"os/exec"
	"syscall"
)

// spawnExecOnce starts every exec_once command in its own session and
// forgets it. The startup sequence configured SIGCHLD so the kernel
// reaps them, which means they must never be waited on.
func (s *Server) spawnExecOnce() {
	for _, command := range s.config.ExecOnce {
		cmd := exec.Command(s.options.Shell, "-c", command)
		cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}
		if err := cmd.Start(); err != nil {
			s.logger.Error("exec_once failed", "command", command, "error", err)
			continue
		}
		s.logger.Info("exec_once started", "command", command, "pid", cmd.Process.Pid)
		cmd.Process.Release()

		s.mu.Lock()
		s.children++
		s.mu.Unlock()
	}
}
