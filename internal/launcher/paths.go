package launcher

import "strings"

// PathResolver derives the directory containing the running module and its
// ancestors up to the host application's install root.
type PathResolver struct {
	sys   System
	depth int // levels from the module path to the install root
}

// NewPathResolver creates a resolver ascending depth levels for the
// top-level directory. The host layout puts the module four levels below
// the install root (Data/SKSE/Plugins under the game directory).
func NewPathResolver(sys System, depth int) *PathResolver {
	if depth <= 0 {
		depth = 4
	}
	return &PathResolver{sys: sys, depth: depth}
}

// ModuleDir returns the directory containing the running module, or ""
// when the module path cannot be determined. Callers must treat "" as a
// hard failure of the launch sequence.
func (r *PathResolver) ModuleDir() string {
	path, err := r.sys.ModulePath()
	if err != nil {
		return ""
	}
	return AscendLevels(path, 1)
}

// TopLevelDir returns the host application's install root, or "" when the
// module path cannot be determined.
func (r *PathResolver) TopLevelDir() string {
	path, err := r.sys.ModulePath()
	if err != nil {
		return ""
	}
	return AscendLevels(path, r.depth)
}

// AscendLevels strips n trailing path elements. Module paths arrive in the
// host's native format, so both separator styles are honored regardless of
// the platform the launcher itself runs on. Returns "" when the hierarchy
// is shallower than n levels.
func AscendLevels(path string, n int) string {
	for i := 0; i < n; i++ {
		idx := strings.LastIndexAny(path, `\/`)
		if idx <= 0 {
			return ""
		}
		path = path[:idx]
	}
	return path
}
