// Package process terminates the browser and every helper process it spawned.
package process

import (
	"errors"
	"fmt"
)

// ErrInvalidPID is returned for PIDs that would address the caller's own
// process group or every process.
var ErrInvalidPID = errors.New("invalid pid")

// KillTree force-kills pid and its descendants. A process that already
// exited is not an error.
func KillTree(pid int) error {
	if pid <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidPID, pid)
	}
	return killTree(pid)
}
