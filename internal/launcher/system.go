// Package launcher locates, launches, and supervises the companion
// executable on behalf of the game host, keeping at most one instance
// alive at a time.
package launcher

// ProcessInfo is a transient record produced while walking the system-wide
// process table. It is not persisted and carries no ownership.
type ProcessInfo struct {
	PID  int32
	Name string
}

// Handle is an owned reference to a live OS process. Whichever component
// last acquired a Handle owns it and must Close it on every exit path.
type Handle interface {
	// Pid returns the process identifier.
	Pid() int32

	// Alive reports whether the process is still running.
	Alive() (bool, error)

	// Terminate requests termination of the process.
	Terminate() error

	// Wait blocks until the process has fully exited. The wait is
	// unbounded; a companion that ignores termination will stall the
	// calling goroutine indefinitely.
	Wait() error

	// Close releases the handle. A closed handle must not be reused.
	Close() error
}

// WindowMode selects how the companion's console window is shown.
type WindowMode int

const (
	// WindowMinimizedNoActivate shows the window minimized without
	// stealing focus from the host.
	WindowMinimizedNoActivate WindowMode = iota
	WindowNormal
	WindowHidden
)

// LaunchSpec describes a single process creation. It is constructed
// immediately before each launch and discarded after.
type LaunchSpec struct {
	ExePath      string
	Dir          string
	Args         []string
	Window       WindowMode
	ConsoleTitle string
}

// TempPathConfig is the outcome of temp-path selection: the resolved
// directory plus whether the system-temp fallback was used.
type TempPathConfig struct {
	Path     string
	Fallback bool
}

// Console is the host-visible reporting capability. Messages sent here end
// up in the host's console or log sink; the launcher never assumes a
// particular sink.
type Console interface {
	Print(message string)
}

// ConsoleFunc adapts a plain function to the Console interface.
type ConsoleFunc func(message string)

func (f ConsoleFunc) Print(message string) { f(message) }

// System is the OS facility set the launcher depends on. The production
// implementation is returned by NewSystem; tests substitute a fake.
type System interface {
	// Snapshot enumerates the system-wide process table.
	Snapshot() ([]ProcessInfo, error)

	// Open acquires a query-and-terminate capable handle for a PID.
	Open(pid int32) (Handle, error)

	// Start creates a new process from the spec and returns an owned
	// handle to it.
	Start(spec LaunchSpec) (Handle, error)

	// DocumentsDir resolves the user's documents directory via the
	// platform's known-folder service.
	DocumentsDir() (string, error)

	// ModulePath returns the filesystem path of the running module.
	ModulePath() (string, error)

	// TempDir returns the system temporary directory.
	TempDir() string

	// MkdirAll creates a directory and all missing parents.
	MkdirAll(path string) error

	// Getenv and Setenv read and mutate the process environment, which
	// launched children inherit.
	Getenv(key string) string
	Setenv(key, value string) error
}
