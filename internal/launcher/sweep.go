package launcher

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// staleTempPrefix matches the payload directories the interpreter-bundled
// companion unpacks on start (_MEIxxxxxx). A graceful exit deletes them;
// a manual kill leaves them behind.
const staleTempPrefix = "_MEI"

// SweepStaleTemp removes leftover companion payload directories under the
// resolved temp path and returns how many entries were removed. Other
// content is left untouched. A missing directory is not an error.
func SweepStaleTemp(tempPath string) (int, error) {
	entries, err := os.ReadDir(tempPath)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to read temp directory: %w", err)
	}

	removed := 0
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), staleTempPrefix) {
			continue
		}
		if err := os.RemoveAll(filepath.Join(tempPath, entry.Name())); err != nil {
			return removed, fmt.Errorf("failed to remove %s: %w", entry.Name(), err)
		}
		removed++
	}
	return removed, nil
}
