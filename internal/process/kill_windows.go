//go:build windows

package process

import (
	"fmt"
	"os/exec"
	"strconv"
)

// killTree runs taskkill: /F forces termination, /T includes child processes.
func killTree(pid int) error {
	if err := exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run(); err != nil {
		return fmt.Errorf("taskkill %d: %w", pid, err)
	}
	return nil
}
