// Package fsutil loads and saves graph documents on an afero filesystem.
package fsutil

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/spf13/afero"
	"github.com/specialistvlad/hrggo/internal/hrgerr"
)

// Find returns every regular file matching the doublestar pattern, e.g.
// "corpus/**/*.yaml", in lexical order. A pattern without meta characters
// names a single file and must exist.
func Find(fs afero.Fs, pattern string) ([]string, error) {
	pattern = filepath.ToSlash(pattern)
	if !doublestar.ValidatePattern(pattern) {
		return nil, hrgerr.New(hrgerr.InvalidArgument, "invalid pattern %q", pattern)
	}

	if !strings.ContainsAny(pattern, "*?[{") {
		if _, err := fs.Stat(pattern); err != nil {
			return nil, err
		}
		return []string{pattern}, nil
	}

	base, _ := doublestar.SplitPattern(pattern)
	exists, err := afero.DirExists(fs, base)
	if err != nil {
		return nil, fmt.Errorf("check directory %s: %w", base, err)
	}
	if !exists {
		return nil, nil
	}

	var files []string
	err = afero.Walk(fs, base, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.IsDir() {
			return nil
		}
		path = filepath.ToSlash(path)
		match, err := doublestar.Match(pattern, path)
		if err != nil {
			return err
		}
		if match {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", base, err)
	}

	slices.Sort(files)
	return files, nil
}

// FindAll runs Find for each pattern and merges the results without
// duplicates, keeping first-seen order.
func FindAll(fs afero.Fs, patterns ...string) ([]string, error) {
	var files []string
	seen := make(map[string]struct{})
	for _, p := range patterns {
		found, err := Find(fs, p)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			if _, ok := seen[f]; !ok {
				seen[f] = struct{}{}
				files = append(files, f)
			}
		}
	}
	return files, nil
}
