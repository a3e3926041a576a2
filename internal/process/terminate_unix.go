//go:build !windows

package process

import "syscall"

// Terminate sends SIGKILL to the process group led by pid.
// Non-positive pids are ignored: -0 would target our own group.
func Terminate(pid int) {
	if pid <= 0 {
		return
	}
	_ = syscall.Kill(-pid, syscall.SIGKILL)
}
