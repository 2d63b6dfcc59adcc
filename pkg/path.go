package pkg

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"

	"github.com/ardnew/mung"
)

// Prefix returns the base prefix string used to construct the path to the
// configuration and cache directories.
//
// By default, Prefix is the base name of the executable file unless it matches
// one of the following substitution rules:
//   - "__debug_bin" (default output of the dlv debugger): replaced with Name
//   - "^\.+" (dot-prefixed names): remove the dot prefix
//
//nolint:gochecknoglobals
var Prefix = sync.OnceValue(
	func() string {
		id := os.Args[0]
		exe, err := os.Executable()
		if err == nil {
			id = exe
		}

		ext := filepath.Ext(filepath.Base(id))
		id = strings.TrimSuffix(filepath.Base(id), ext)

		for rex, rep := range map[*regexp.Regexp]string{
			regexp.MustCompile(`^__debug_bin\d+$`): Name,
			regexp.MustCompile(`^\.+`):             "",
		} {
			id = rex.ReplaceAllString(id, rep)
		}

		if id == "" {
			id = Name
		}

		return id
	},
)

// ConfigDir returns the configuration directory path.
//
//nolint:gochecknoglobals
var ConfigDir = sync.OnceValue(
	func() string { return userDir(os.UserConfigDir, ".config") },
)

// CacheDir returns the cache directory path used for transient files such as
// REPL history.
//
//nolint:gochecknoglobals
var CacheDir = sync.OnceValue(
	func() string { return userDir(os.UserCacheDir, ".cache") },
)

func userDir(base func() (string, error), fallback string) string {
	dir, err := base()
	if err != nil {
		dir, err = os.UserHomeDir()
		if err == nil {
			dir = filepath.Join(dir, fallback)
		} else if dir, err = os.Getwd(); err != nil {
			dir = "."
		}
	}

	return filepath.Join(dir, Prefix())
}

// SearchPath returns the ordered list of existing directories searched when
// resolving relative file paths: dirs first, then the entries of the
// [PathEnv] environment variable. Duplicates and non-directories are dropped.
func SearchPath(dirs ...string) []string {
	abs := make([]string, 0, len(dirs))

	for _, d := range dirs {
		if d == "" {
			continue
		}

		if p, err := filepath.Abs(d); err == nil {
			abs = append(abs, p)
		}
	}

	joined := mung.Make(
		mung.WithSubjectItems(os.Getenv(PathEnv())),
		mung.WithDelim(string(os.PathListSeparator)),
		mung.WithPrefixItems(abs...),
		mung.WithFilter(isDir),
	).String()

	var out []string

	seen := make(map[string]struct{})

	for p := range strings.SplitSeq(joined, string(os.PathListSeparator)) {
		if p == "" || !isDir(p) {
			continue
		}

		if _, dup := seen[p]; dup {
			continue
		}

		seen[p] = struct{}{}
		out = append(out, p)
	}

	return out
}

// Resolve returns the first existing file named by path, trying it as given
// (absolute, or relative to the working directory) and then relative to each
// directory in search. The cleaned input path is returned with false when no
// candidate exists.
func Resolve(path string, search []string) (string, bool) {
	if path == "" {
		return "", false
	}

	if filepath.IsAbs(path) {
		return filepath.Clean(path), exists(path)
	}

	for _, dir := range search {
		p := filepath.Join(dir, path)
		if exists(p) {
			return p, true
		}
	}

	if exists(path) {
		if p, err := filepath.Abs(path); err == nil {
			return p, true
		}
	}

	return filepath.Clean(path), false
}

func isDir(path string) bool {
	info, err := os.Stat(path)

	return err == nil && info.IsDir()
}

func exists(path string) bool {
	_, err := os.Stat(path)

	return err == nil
}
