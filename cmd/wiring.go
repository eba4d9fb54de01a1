package cmd

import (
	"log/slog"
	"path/filepath"

	"github.com/mantellamod/launcher/internal/core"
	"github.com/mantellamod/launcher/internal/journal"
	"github.com/mantellamod/launcher/internal/launcher"
)

// buildSupervisor wires a Supervisor over the real OS facilities, with the
// launch journal as its event sink when one is configured. The returned
// cleanup must be called when done.
func buildSupervisor() (*launcher.Supervisor, func()) {
	cfg := core.Config
	sys := launcher.NewSystem()

	var events launcher.EventSink
	cleanup := func() {}

	if cfg.JournalPath != "" {
		j, err := journal.Open(cfg.JournalPath)
		if err != nil {
			// The journal is bookkeeping; its absence never blocks a launch
			slog.Warn("Launch journal unavailable", "path", cfg.JournalPath, "error", err)
		} else {
			events = func(eventType, details string) {
				if err := j.Record(eventType, details); err != nil {
					slog.Warn("Failed to record launch event", "event", eventType, "error", err)
				}
			}
			cleanup = func() { j.Close() }
		}
	}

	sup := launcher.NewSupervisor(sys, launcher.Options{
		AppName:         cfg.AppName,
		Executable:      cfg.Executable,
		CompanionSubdir: cfg.CompanionSubdir,
		LaunchFlag:      cfg.LaunchFlag,
		CloudMarkers:    cfg.CloudMarkers,
		AncestorDepth:   cfg.AncestorDepth,
		Events:          events,
	})
	return sup, cleanup
}

// signalDir returns the configured host-signal directory, defaulting to a
// "signals" directory under the config path.
func signalDir() string {
	if core.Config.SignalDir != "" {
		return core.Config.SignalDir
	}
	return filepath.Join(core.Config.ConfigPath, "signals")
}

// signalName returns the marker file name the host drops once its data load
// has completed.
func signalName() string {
	if core.Config.SignalName != "" {
		return core.Config.SignalName
	}
	return "data_loaded"
}
