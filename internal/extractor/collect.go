package extractor

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

const zipExt = ".zip"

// CollectFiles normalizes explicitly selected paths. Existence is not
// checked; a missing file fails later as a per-archive error.
func CollectFiles(paths []string) []string {
	out := make([]string, 0, len(paths))
	for _, path := range paths {
		if path == "" {
			continue
		}
		if abs, err := filepath.Abs(path); err == nil {
			path = abs
		}
		out = append(out, filepath.Clean(path))
	}
	return out
}

// CollectDir returns the .zip files directly inside dir, sorted by name.
func CollectDir(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	base := dir
	if abs, err := filepath.Abs(dir); err == nil {
		base = abs
	}

	var out []string
	for _, entry := range entries {
		if !IsZipName(entry.Name()) {
			continue
		}
		full := filepath.Join(base, entry.Name())
		if entry.IsDir() {
			continue
		}
		if entry.Type()&os.ModeSymlink != 0 {
			info, err := os.Stat(full)
			if err != nil || !info.Mode().IsRegular() {
				continue
			}
		} else if !entry.Type().IsRegular() {
			continue
		}
		out = append(out, full)
	}
	sort.Strings(out)
	return out, nil
}

func IsZipName(name string) bool {
	return strings.EqualFold(filepath.Ext(name), zipExt)
}

// Collection is the outcome of resolving a mixed list of files and
// directories.
type Collection struct {
	Paths     []string
	EmptyDirs []string
}

// Collect treats every directory argument as a folder selection and
// everything else as a file selection. Order follows the arguments.
func Collect(args []string) (Collection, error) {
	var c Collection
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err == nil && info.IsDir() {
			found, err := CollectDir(arg)
			if err != nil {
				return c, err
			}
			if len(found) == 0 {
				c.EmptyDirs = append(c.EmptyDirs, arg)
				continue
			}
			c.Paths = append(c.Paths, found...)
			continue
		}
		c.Paths = append(c.Paths, CollectFiles([]string{arg})...)
	}
	return c, nil
}
