package validation

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
)

// maxPathLen bounds the length of a relative path handed to Validate
const maxPathLen = 1024

// PathValidator keeps diagram file names inside one directory. Symbolic
// links are resolved before the containment check, so a link pointing out
// of the directory is rejected as well.
type PathValidator struct {
	dir      string // as given
	realDir  string // symlinks resolved
	checked  atomic.Uint64
	rejected atomic.Uint64
}

// ValidationError reports why a path was refused
type ValidationError struct {
	UserPath     string
	Reason       string
	ResolvedPath string
}

func (e *ValidationError) Error() string {
	msg := fmt.Sprintf("invalid path %q: %s", e.UserPath, e.Reason)
	if e.ResolvedPath != "" {
		msg += " (resolves to " + e.ResolvedPath + ")"
	}
	return msg
}

// NewPathValidator creates a validator for dir, which must be an absolute
// path to an existing directory
func NewPathValidator(dir string) (*PathValidator, error) {
	switch {
	case dir == "":
		return nil, fmt.Errorf("directory is required")
	case !filepath.IsAbs(dir):
		return nil, fmt.Errorf("directory must be absolute: %s", dir)
	}

	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		return nil, fmt.Errorf("directory does not exist: %s", dir)
	case err != nil:
		return nil, fmt.Errorf("failed to stat directory: %w", err)
	case !info.IsDir():
		return nil, fmt.Errorf("not a directory: %s", dir)
	}

	realDir, err := filepath.EvalSymlinks(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory: %w", err)
	}
	return &PathValidator{dir: dir, realDir: realDir}, nil
}

// Validate maps a relative path to an absolute one inside the directory.
// The file itself does not have to exist yet.
func (v *PathValidator) Validate(rel string) (string, error) {
	v.checked.Add(1)
	fail := func(reason, resolved string) (string, error) {
		v.rejected.Add(1)
		return "", &ValidationError{UserPath: rel, Reason: reason, ResolvedPath: resolved}
	}

	switch {
	case rel == "":
		return fail("empty path", "")
	case len(rel) > maxPathLen:
		return fail(fmt.Sprintf("longer than %d bytes", maxPathLen), "")
	case !filepath.IsLocal(rel):
		return fail("not a local path", "")
	}

	full := filepath.Join(v.dir, rel)
	resolved, err := filepath.EvalSymlinks(full)
	if err != nil {
		dir, dirErr := filepath.EvalSymlinks(filepath.Dir(full))
		if dirErr != nil {
			return fail("parent directory cannot be resolved", "")
		}
		resolved = filepath.Join(dir, filepath.Base(full))
	}

	inside, err := filepath.Rel(v.realDir, resolved)
	if err != nil || inside == ".." || strings.HasPrefix(inside, ".."+string(filepath.Separator)) {
		return fail("outside of "+v.dir, resolved)
	}
	return resolved, nil
}

// File validates the file name stem+ext, which must not contain a
// directory part
func (v *PathValidator) File(stem, ext string) (string, error) {
	if strings.ContainsAny(stem, `/\`) {
		v.checked.Add(1)
		v.rejected.Add(1)
		return "", &ValidationError{UserPath: stem + ext, Reason: "contains a directory separator"}
	}
	return v.Validate(stem + ext)
}

// Stats returns how many paths were checked and how many were refused
func (v *PathValidator) Stats() (checked, rejected uint64) {
	return v.checked.Load(), v.rejected.Load()
}
