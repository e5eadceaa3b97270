//go:build windows

package process

import (
	"os/exec"
	"strconv"
)

// killTree runs taskkill with /T to include child processes.
func killTree(pid int) error {
	return exec.Command("taskkill", "/F", "/T", "/PID", strconv.Itoa(pid)).Run()
}
