package launcher

import (
	"log/slog"
	"strings"
)

// Locator finds prior companion instances system-wide. The companion is
// recognized solely by exact executable file name; there is no PID file
// and no IPC handshake.
type Locator struct {
	sys System
}

// NewLocator creates a locator over the given OS facilities.
func NewLocator(sys System) *Locator {
	return &Locator{sys: sys}
}

// FindRunning returns a handle for every running process whose executable
// name matches exeName, case-insensitively. A failed snapshot is treated
// as "none found" rather than an error: the lookup is advisory and must
// never take the host down. Every returned handle is owned by the caller
// and must be closed.
func (l *Locator) FindRunning(exeName string) []Handle {
	infos, err := l.sys.Snapshot()
	if err != nil {
		slog.Warn("Process snapshot failed, assuming no prior instances", "error", err)
		return nil
	}

	var handles []Handle
	for _, info := range infos {
		if !strings.EqualFold(info.Name, exeName) {
			continue
		}
		h, err := l.sys.Open(info.PID)
		if err != nil {
			// Process exited between snapshot and open
			slog.Debug("Failed to open matching process", "pid", info.PID, "error", err)
			continue
		}
		handles = append(handles, h)
	}
	return handles
}
