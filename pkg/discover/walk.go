// Copyright (c) 2022 Stephan Lukits. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package discover

import (
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/slukits/firetest"
)

// DefaultIgnore is the default list of directory names which are
// skipped in the search for test files.
var DefaultIgnore = []string{".git", "node_modules"}

// CheckDir returns the absolute path of given directory or an
// ErrConfiguration-error if it doesn't exist or isn't a directory.
func CheckDir(dir string) (string, error) {
	fi, err := os.Stat(dir)
	if err != nil || !fi.IsDir() {
		return "", firetest.ConfigurationErr(
			"the directory %q could not be found", dir)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", firetest.ConfigurationErr(
			"the directory %q could not be resolved: %v", dir, err)
	}
	return abs, nil
}

// SuffixMatcher returns the regular expression matching file paths
// ending in given suffix taken literally.
func SuffixMatcher(suffix string) *regexp.Regexp {
	return regexp.MustCompile(`^.+` + regexp.QuoteMeta(suffix) + `$`)
}

// files returns in lexical order the files below given root whose path
// is matched by given matcher.  Directories whose name is in given
// ignore list are skipped as are files and directories whose slash
// separated path relative to root is matched by one of given exclude
// patterns.
func files(
	root string, matcher *regexp.Regexp, ignore, exclude []string,
) ([]string, error) {

	ignored := map[string]bool{}
	for _, i := range ignore {
		ignored[i] = true
	}

	ff := []string{}
	err := filepath.WalkDir(root, func(
		path string, d fs.DirEntry, err error,
	) error {
		if err != nil {
			return err
		}
		if path != root && d.IsDir() && ignored[d.Name()] {
			return filepath.SkipDir
		}
		if excluded(root, path, exclude) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !matcher.MatchString(path) {
			return nil
		}
		ff = append(ff, path)
		return nil
	})
	return ff, err
}

func excluded(root, path string, exclude []string) bool {
	if len(exclude) == 0 || path == root {
		return false
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}
