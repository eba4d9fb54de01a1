//go:build !windows

package launcher

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"syscall"
)

// startProcess creates the companion in its own session so it survives a
// host restart. Window mode has no meaning off Windows and is ignored.
func startProcess(spec LaunchSpec) (int32, error) {
	cmd := exec.Command(spec.ExePath, spec.Args...)
	cmd.Dir = spec.Dir
	cmd.SysProcAttr = &syscall.SysProcAttr{Setsid: true}

	if err := cmd.Start(); err != nil {
		return 0, fmt.Errorf("failed to start %s: %w", spec.ExePath, err)
	}

	// Reap the child in the background so it never lingers as a zombie;
	// supervision goes through PID-based snapshots, not this Cmd.
	go cmd.Wait()

	return int32(cmd.Process.Pid), nil
}

func setConsoleTitle(string) {}

func documentsDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}
	return filepath.Join(home, "Documents"), nil
}
