//go:build !windows

package process

import (
	"errors"
	"fmt"
	"syscall"
)

// killTree sends SIGKILL to the process group led by pid (negative PID).
// Chrome is started as a group leader, so its renderers share the group.
func killTree(pid int) error {
	err := syscall.Kill(-pid, syscall.SIGKILL)
	if err == nil || errors.Is(err, syscall.ESRCH) {
		return nil
	}
	return fmt.Errorf("killing process group %d: %w", pid, err)
}
