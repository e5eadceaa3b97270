// Package process terminates the browser process trees started for
// screenshots.
package process

import (
	"errors"
	"fmt"
)

// ErrInvalidPID indicates a PID that cannot name a child process tree.
var ErrInvalidPID = errors.New("invalid process id")

// KillTree kills pid and its children. Callers treat failures as best
// effort since the browser launcher also kills its own process on cleanup.
func KillTree(pid int) error {
	if pid <= 0 {
		// 0 and negative values address the caller's own process group.
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	return killTree(pid)
}
