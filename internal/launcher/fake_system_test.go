package launcher

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"testing"
)

func quietLogger(t *testing.T) {
	t.Helper()
	old := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.Level(99)})))
	t.Cleanup(func() { slog.SetDefault(old) })
}

// fakeHandle records every operation performed against it.
type fakeHandle struct {
	pid          int32
	alive        bool
	aliveErr     error
	terminateErr error

	terminations int
	waits        int
	closes       int
}

func (h *fakeHandle) Pid() int32 { return h.pid }

func (h *fakeHandle) Alive() (bool, error) {
	if h.aliveErr != nil {
		return false, h.aliveErr
	}
	return h.alive, nil
}

func (h *fakeHandle) Terminate() error {
	h.terminations++
	if h.terminateErr != nil {
		return h.terminateErr
	}
	h.alive = false
	return nil
}

func (h *fakeHandle) Wait() error {
	h.waits++
	h.alive = false
	return nil
}

func (h *fakeHandle) Close() error {
	h.closes++
	return nil
}

// fakeSystem is an in-memory System. It records an operation log so tests
// can assert ordering between filesystem and environment mutations.
type fakeSystem struct {
	procs       []ProcessInfo
	snapshotErr error
	openErrPids map[int32]bool

	docs      string
	docsErr   error
	module    string
	moduleErr error
	tempDir   string

	mkdirFailPrefix string
	setenvFailKey   string

	env     map[string]string
	ops     []string
	nextPid int32

	opened   []*fakeHandle
	started  []LaunchSpec
	startErr error
	handles  []*fakeHandle // handles returned by Start, in order
}

func newFakeSystem() *fakeSystem {
	return &fakeSystem{
		docs:    "/home/dragonborn/Documents",
		module:  "/games/skyrim/Data/SKSE/Plugins/launcher.bin",
		tempDir: "/var/tmp",
		env:     make(map[string]string),
		nextPid: 4000,
	}
}

func (f *fakeSystem) Snapshot() ([]ProcessInfo, error) {
	if f.snapshotErr != nil {
		return nil, f.snapshotErr
	}
	return f.procs, nil
}

func (f *fakeSystem) Open(pid int32) (Handle, error) {
	if f.openErrPids[pid] {
		return nil, fmt.Errorf("process %d vanished", pid)
	}
	h := &fakeHandle{pid: pid, alive: true}
	f.opened = append(f.opened, h)
	return h, nil
}

func (f *fakeSystem) Start(spec LaunchSpec) (Handle, error) {
	if f.startErr != nil {
		return nil, f.startErr
	}
	f.started = append(f.started, spec)
	f.nextPid++
	h := &fakeHandle{pid: f.nextPid, alive: true}
	f.handles = append(f.handles, h)
	return h, nil
}

func (f *fakeSystem) DocumentsDir() (string, error) {
	return f.docs, f.docsErr
}

func (f *fakeSystem) ModulePath() (string, error) {
	return f.module, f.moduleErr
}

func (f *fakeSystem) TempDir() string {
	return f.tempDir
}

func (f *fakeSystem) MkdirAll(path string) error {
	if f.mkdirFailPrefix != "" && strings.HasPrefix(path, f.mkdirFailPrefix) {
		return fmt.Errorf("mkdir %s: permission denied", path)
	}
	f.ops = append(f.ops, "mkdir:"+path)
	return nil
}

func (f *fakeSystem) Getenv(key string) string {
	return f.env[key]
}

func (f *fakeSystem) Setenv(key, value string) error {
	if f.setenvFailKey == key {
		return fmt.Errorf("setenv %s failed", key)
	}
	f.env[key] = value
	f.ops = append(f.ops, "setenv:"+key)
	return nil
}
