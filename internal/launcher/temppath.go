package launcher

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
)

// TempPathSelector provisions a durable location for the companion's
// temporary data and points TEMP/TMP at it so the launched child inherits
// the redirection.
//
// The companion is an interpreter-bundled executable that unpacks large
// payloads into its temp directory on every start. Cloud-synced folders
// churn badly under that create/rename/delete pattern and can hit quota,
// so documents directories that look cloud-synced are rejected outright.
type TempPathSelector struct {
	sys     System
	appName string
	markers []string
}

// NewTempPathSelector creates a selector for the given product name.
// markers are path substrings identifying cloud-synced storage.
func NewTempPathSelector(sys System, appName string, markers []string) *TempPathSelector {
	return &TempPathSelector{sys: sys, appName: appName, markers: markers}
}

// Select resolves and provisions the temp location:
// primary <documents>/My Games/<app>/data/tmp, falling back to
// <system temp>/<app> when the documents folder is unavailable,
// cloud-synced, or not writable. On success both TEMP and TMP are set for
// the current process; on any failure neither is touched.
func (s *TempPathSelector) Select() (TempPathConfig, error) {
	docs, err := s.sys.DocumentsDir()
	switch {
	case err != nil:
		slog.Debug("Documents folder lookup failed, using system temp", "error", err)
	case s.cloudSynced(docs):
		slog.Info("Documents folder is cloud-synced, using system temp", "documents", docs)
	default:
		primary := filepath.Join(docs, "My Games", s.appName, "data", "tmp")
		if mkErr := s.sys.MkdirAll(primary); mkErr != nil {
			slog.Warn("Failed to create temp directory, falling back to system temp",
				"path", primary,
				"error", mkErr)
		} else {
			if envErr := s.redirectTempEnv(primary); envErr != nil {
				return TempPathConfig{}, envErr
			}
			return TempPathConfig{Path: primary}, nil
		}
	}

	fallback := filepath.Join(s.sys.TempDir(), s.appName)
	if mkErr := s.sys.MkdirAll(fallback); mkErr != nil {
		return TempPathConfig{}, fmt.Errorf("failed to create fallback temp directory %s: %w", fallback, mkErr)
	}
	if envErr := s.redirectTempEnv(fallback); envErr != nil {
		return TempPathConfig{}, envErr
	}
	return TempPathConfig{Path: fallback, Fallback: true}, nil
}

// cloudSynced reports whether the path contains any known sync-folder marker.
func (s *TempPathSelector) cloudSynced(path string) bool {
	for _, marker := range s.markers {
		if marker != "" && strings.Contains(path, marker) {
			return true
		}
	}
	return false
}

// redirectTempEnv sets TEMP and TMP to path. Either both are set or, when
// the second mutation fails, the first is restored so no half-set state
// leaks into the launched child.
func (s *TempPathSelector) redirectTempEnv(path string) error {
	oldTemp := s.sys.Getenv("TEMP")

	if err := s.sys.Setenv("TEMP", path); err != nil {
		return fmt.Errorf("failed to set TEMP: %w", err)
	}
	if err := s.sys.Setenv("TMP", path); err != nil {
		if rbErr := s.sys.Setenv("TEMP", oldTemp); rbErr != nil {
			slog.Error("Failed to restore TEMP after TMP failure", "error", rbErr)
		}
		return fmt.Errorf("failed to set TMP: %w", err)
	}
	return nil
}
