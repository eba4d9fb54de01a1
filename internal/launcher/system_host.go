package launcher

import (
	"fmt"
	"os"
	"time"

	"github.com/shirou/gopsutil/v3/process"
)

// hostSystem is the production System implementation, backed by gopsutil
// for process inspection and platform-specific files for creation and
// known-folder lookup.
type hostSystem struct{}

// NewSystem returns the platform-backed System.
func NewSystem() System {
	return hostSystem{}
}

func (hostSystem) Snapshot() ([]ProcessInfo, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("failed to snapshot process table: %w", err)
	}

	infos := make([]ProcessInfo, 0, len(procs))
	for _, p := range procs {
		name, err := p.Name()
		if err != nil {
			// Processes vanish mid-walk; skip them
			continue
		}
		infos = append(infos, ProcessInfo{PID: p.Pid, Name: name})
	}
	return infos, nil
}

func (hostSystem) Open(pid int32) (Handle, error) {
	if !pidExists(pid) {
		return nil, fmt.Errorf("no process with pid %d", pid)
	}
	return &osHandle{pid: pid}, nil
}

func (hostSystem) Start(spec LaunchSpec) (Handle, error) {
	pid, err := startProcess(spec)
	if err != nil {
		return nil, err
	}
	if spec.ConsoleTitle != "" {
		setConsoleTitle(spec.ConsoleTitle)
	}
	return &osHandle{pid: pid}, nil
}

func (hostSystem) DocumentsDir() (string, error) {
	return documentsDir()
}

func (hostSystem) ModulePath() (string, error) {
	return os.Executable()
}

func (hostSystem) TempDir() string {
	return os.TempDir()
}

func (hostSystem) MkdirAll(path string) error {
	return os.MkdirAll(path, 0o755)
}

func (hostSystem) Getenv(key string) string {
	return os.Getenv(key)
}

func (hostSystem) Setenv(key, value string) error {
	return os.Setenv(key, value)
}

func pidExists(pid int32) bool {
	exists, err := process.PidExists(pid)
	return err == nil && exists
}

// osHandle references a live process by PID. gopsutil handles hold no OS
// resources, so Close only marks the handle unusable; the ownership
// contract is kept so a fakeable System behaves the same as the real one.
type osHandle struct {
	pid    int32
	closed bool
}

func (h *osHandle) Pid() int32 {
	return h.pid
}

func (h *osHandle) Alive() (bool, error) {
	if h.closed {
		return false, fmt.Errorf("handle for pid %d is closed", h.pid)
	}
	return process.PidExists(h.pid)
}

func (h *osHandle) Terminate() error {
	if h.closed {
		return fmt.Errorf("handle for pid %d is closed", h.pid)
	}
	p, err := process.NewProcess(h.pid)
	if err != nil {
		return fmt.Errorf("failed to open pid %d for termination: %w", h.pid, err)
	}
	return p.Terminate()
}

func (h *osHandle) Wait() error {
	if h.closed {
		return fmt.Errorf("handle for pid %d is closed", h.pid)
	}
	for {
		exists, err := process.PidExists(h.pid)
		if err != nil || !exists {
			return nil
		}
		time.Sleep(100 * time.Millisecond)
	}
}

func (h *osHandle) Close() error {
	h.closed = true
	return nil
}
