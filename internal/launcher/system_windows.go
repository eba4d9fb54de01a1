//go:build windows

package launcher

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/windows"
)

// startProcess creates the companion in a new console with the requested
// window mode. os/exec cannot express SW_SHOWMINNOACTIVE, so process
// creation goes through CreateProcess directly.
func startProcess(spec LaunchSpec) (int32, error) {
	cmdLine := windows.ComposeCommandLine(append([]string{spec.ExePath}, spec.Args...))
	cmdLinePtr, err := windows.UTF16PtrFromString(cmdLine)
	if err != nil {
		return 0, fmt.Errorf("invalid command line: %w", err)
	}

	var dirPtr *uint16
	if spec.Dir != "" {
		dirPtr, err = windows.UTF16PtrFromString(spec.Dir)
		if err != nil {
			return 0, fmt.Errorf("invalid working directory: %w", err)
		}
	}

	si := new(windows.StartupInfo)
	si.Cb = uint32(unsafe.Sizeof(*si))
	si.Flags = windows.STARTF_USESHOWWINDOW
	si.ShowWindow = showWindowFlag(spec.Window)

	var pi windows.ProcessInformation
	err = windows.CreateProcess(
		nil, cmdLinePtr, nil, nil, false,
		windows.CREATE_NEW_CONSOLE, nil, dirPtr, si, &pi,
	)
	if err != nil {
		return 0, fmt.Errorf("CreateProcess failed: %w", err)
	}

	// The initial thread handle is never needed; release it immediately.
	// The process handle is released too: liveness and termination go
	// through PID-based snapshots so discovered and launched instances
	// behave identically.
	windows.CloseHandle(pi.Thread)
	windows.CloseHandle(pi.Process)

	return int32(pi.ProcessId), nil
}

func showWindowFlag(mode WindowMode) uint16 {
	switch mode {
	case WindowHidden:
		return windows.SW_HIDE
	case WindowNormal:
		return windows.SW_SHOWNORMAL
	default:
		return windows.SW_SHOWMINNOACTIVE
	}
}

// setConsoleTitle names the console after the product. Best-effort.
func setConsoleTitle(title string) {
	p, err := windows.UTF16PtrFromString(title)
	if err != nil {
		return
	}
	_ = windows.SetConsoleTitle(p)
}

// documentsDir resolves the user's Documents folder via the known-folder
// service rather than assuming a path under the profile directory.
func documentsDir() (string, error) {
	path, err := windows.KnownFolderPath(windows.FOLDERID_Documents, 0)
	if err != nil {
		return "", fmt.Errorf("failed to resolve Documents folder: %w", err)
	}
	return path, nil
}
