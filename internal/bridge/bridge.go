// Package bridge consumes the host's lifecycle signals. The native plugin
// side drops a marker file into a signal directory when the host finishes
// loading its data; the bridge watches for it and triggers the launch
// sequence exactly once per session.
package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
)

// Bridge watches a signal directory for the host's data-loaded marker.
type Bridge struct {
	signalDir  string
	signalName string
	launch     func() bool

	watcher *fsnotify.Watcher
	fired   bool
}

// New creates a bridge watching signalDir for a marker named signalName.
// launch is invoked on the watcher goroutine when the marker appears.
func New(signalDir, signalName string, launch func() bool) (*Bridge, error) {
	if err := os.MkdirAll(signalDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create signal directory: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("failed to create signal watcher: %w", err)
	}
	if err := watcher.Add(signalDir); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to watch signal directory %s: %w", signalDir, err)
	}

	return &Bridge{
		signalDir:  signalDir,
		signalName: signalName,
		launch:     launch,
		watcher:    watcher,
	}, nil
}

// Run blocks processing signal events until the context is cancelled.
// The data-loaded marker is consumed once per session: later writes of the
// same marker are ignored, matching the host's once-per-session semantics.
func (b *Bridge) Run(ctx context.Context) error {
	defer b.watcher.Close()

	// The marker may predate the watch if the host loaded before we started
	if _, err := os.Stat(filepath.Join(b.signalDir, b.signalName)); err == nil {
		b.fire()
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-b.watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Base(event.Name) != b.signalName {
				continue
			}
			if event.Op&(fsnotify.Create|fsnotify.Write) == 0 {
				continue
			}
			slog.Debug("Host signal received", "event", event.Op.String(), "file", event.Name)
			b.fire()
		case err, ok := <-b.watcher.Errors:
			if !ok {
				return nil
			}
			slog.Warn("Signal watcher error", "error", err)
		}
	}
}

func (b *Bridge) fire() {
	if b.fired {
		slog.Debug("Host signal already consumed this session, ignoring")
		return
	}
	b.fired = true

	if b.launch() {
		slog.Info("Companion launch triggered by host signal")
	} else {
		slog.Error("Companion launch triggered by host signal failed")
	}
}
