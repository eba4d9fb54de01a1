package launcher

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
)

// State represents the supervisor's position in the launch sequence.
type State string

const (
	StateIdle        State = "idle"
	StateReconciling State = "reconciling"
	StateLaunching   State = "launching"
	StateSupervised  State = "supervised"
	StateFailed      State = "failed"
)

// EventSink receives lifecycle events for persistence. May be nil.
type EventSink func(eventType, details string)

// Options configures a Supervisor.
type Options struct {
	AppName         string   // product name, used for temp dirs and console title
	Executable      string   // companion executable file name
	CompanionSubdir string   // subdirectory of the module dir holding the executable
	LaunchFlag      string   // integrated-launch flag passed to the companion
	CloudMarkers    []string // substrings identifying cloud-synced documents folders
	AncestorDepth   int      // levels from the module path to the install root
	Console         Console  // host-visible reporter; defaults to the structured log
	Events          EventSink
}

// Supervisor owns at most one handle to the companion process and drives
// the reconcile-then-launch sequence. All entry points are blocking and
// synchronous; they are meant to be called from a single host thread.
// The internal mutex only keeps accidental overlap from corrupting the
// tracked handle, it does not make overlapping launch sequences meaningful.
type Supervisor struct {
	sys     System
	console Console
	events  EventSink

	executable      string
	companionSubdir string
	launchFlag      string
	appName         string

	paths   *PathResolver
	temps   *TempPathSelector
	locator *Locator

	mu      sync.Mutex
	tracked Handle
	state   State
}

// NewSupervisor creates a supervisor over the given OS facilities.
func NewSupervisor(sys System, opts Options) *Supervisor {
	console := opts.Console
	if console == nil {
		console = ConsoleFunc(func(message string) {
			slog.Info(message)
		})
	}
	return &Supervisor{
		sys:             sys,
		console:         console,
		events:          opts.Events,
		executable:      opts.Executable,
		companionSubdir: opts.CompanionSubdir,
		launchFlag:      opts.LaunchFlag,
		appName:         opts.AppName,
		paths:           NewPathResolver(sys, opts.AncestorDepth),
		temps:           NewTempPathSelector(sys, opts.AppName, opts.CloudMarkers),
		locator:         NewLocator(sys),
		state:           StateIdle,
	}
}

// State returns the supervisor's current state.
func (s *Supervisor) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LaunchOrRestart terminates the tracked companion instance if it is still
// active, then launches a fresh one. This is the on-demand restart entry
// point; it always ends in a launch attempt.
func (s *Supervisor) LaunchOrRestart() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateReconciling
	s.reconcileTracked()
	return s.launch()
}

// LaunchIfAbsent launches the companion only when no instance is found in
// the system process table. Any process matching the executable name
// counts as already running. Liveness is deliberately not checked, so even
// an instance stuck in an exiting state blocks a new launch. Used once per
// session at the host's data-loaded event to avoid a double launch.
func (s *Supervisor) LaunchIfAbsent() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.state = StateReconciling
	handles := s.locator.FindRunning(s.executable)
	if len(handles) > 0 {
		for _, h := range handles {
			h.Close()
		}
		s.console.Print(fmt.Sprintf("%s is already running, leaving the existing instance in place.", s.executable))
		s.record("launch_skipped", fmt.Sprintf("%d existing instance(s) found", len(handles)))
		s.state = StateSupervised
		return true
	}

	return s.launch()
}

// reconcileTracked terminates and releases the tracked handle from a
// previous launch. Must be called with the mutex held.
func (s *Supervisor) reconcileTracked() {
	if s.tracked == nil {
		return
	}

	alive, err := s.tracked.Alive()
	if err == nil && alive {
		if termErr := s.tracked.Terminate(); termErr != nil {
			// Best-effort: report and proceed to the wait regardless
			s.console.Print(fmt.Sprintf("Failed to terminate existing %s process: %v", s.executable, termErr))
		}
		s.tracked.Wait()
		s.console.Print(fmt.Sprintf("Existing %s process terminated.", s.executable))
		s.record("terminated", fmt.Sprintf("pid %d", s.tracked.Pid()))
	}

	s.tracked.Close()
	s.tracked = nil
}

// launch runs the temp-path, path-resolution, and process-creation stages.
// Must be called with the mutex held.
func (s *Supervisor) launch() bool {
	s.state = StateLaunching

	tmp, err := s.temps.Select()
	if err != nil {
		s.console.Print(fmt.Sprintf("Failed to prepare temp directory: %v", err))
		s.record("launch_failed", err.Error())
		s.state = StateFailed
		return false
	}
	if tmp.Fallback {
		slog.Info("Using system temp fallback for companion data", "path", tmp.Path)
	}

	// Stale payloads from an ungraceful shutdown; removal is best-effort
	if removed, sweepErr := SweepStaleTemp(tmp.Path); sweepErr != nil {
		slog.Warn("Stale temp sweep failed", "path", tmp.Path, "error", sweepErr)
	} else if removed > 0 {
		slog.Info("Removed stale companion temp data", "path", tmp.Path, "entries", removed)
	}

	moduleDir := s.paths.ModuleDir()
	if moduleDir == "" {
		s.console.Print("Failed to determine module location.")
		s.record("launch_failed", "module path unavailable")
		s.state = StateFailed
		return false
	}

	exePath := filepath.Join(moduleDir, s.companionSubdir, s.executable)
	s.console.Print(fmt.Sprintf("Attempting to launch: %s", exePath))

	handle, err := s.sys.Start(LaunchSpec{
		ExePath:      exePath,
		Dir:          moduleDir,
		Args:         []string{s.launchFlag},
		Window:       WindowMinimizedNoActivate,
		ConsoleTitle: s.appName,
	})
	if err != nil {
		s.console.Print(fmt.Sprintf("Failed to launch %s: %v", s.executable, err))
		s.record("launch_failed", err.Error())
		s.state = StateFailed
		return false
	}

	s.tracked = handle
	s.state = StateSupervised
	s.console.Print(fmt.Sprintf("%s launched successfully.", s.executable))
	s.record("launched", fmt.Sprintf("pid %d", handle.Pid()))
	return true
}

func (s *Supervisor) record(eventType, details string) {
	if s.events != nil {
		s.events(eventType, details)
	}
}
