// Package process tears down browser process trees started for PDF export.
package process

import (
	"errors"
	"fmt"
)

// ErrInvalidPID indicates a PID that must never be signaled as a group.
var ErrInvalidPID = errors.New("invalid pid")

// validatePID rejects PIDs whose process group is the caller's or init's.
func validatePID(pid int) error {
	if pid <= 1 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	return nil
}
