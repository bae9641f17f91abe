//go:build !windows

// Package process stops browser processes left behind by PDF rendering.
package process

import "syscall"

// KillTree sends SIGKILL to the process group led by pid.
func KillTree(pid int) error {
	if pid <= 0 {
		return nil
	}
	return syscall.Kill(-pid, syscall.SIGKILL)
}
