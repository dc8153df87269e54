//go:build !windows

package process

import (
	"errors"
	"syscall"
)

// KillProcessGroup kills a process and all its children by sending SIGKILL
// to the process group (negative PID). A group that is already gone is not an error.
func KillProcessGroup(pid int) error {
	if err := validatePID(pid); err != nil {
		return err
	}
	if err := syscall.Kill(-pid, syscall.SIGKILL); err != nil && !errors.Is(err, syscall.ESRCH) {
		return err
	}
	return nil
}
