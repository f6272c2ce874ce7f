// Package snapshot captures a read-only view of a project tree at the start
// of an audit run. Checks operate on the snapshot only, which keeps a run
// deterministic even if the tree changes while checks execute.
package snapshot

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"
)

// readConcurrency bounds the number of files read in parallel during capture.
const readConcurrency = 8

// Options controls which files a snapshot captures content for.
type Options struct {
	// Patterns are glob-like patterns in the "**/*.ts" style. Only the final
	// path segment is matched, so "**/*.ts" captures every .ts file in the
	// tree that is not under an excluded directory.
	Patterns []string

	// ExcludeDirs are directory names pruned from the walk entirely,
	// e.g. node_modules.
	ExcludeDirs []string
}

// DefaultOptions matches the file classes the audit checks care about:
// TypeScript/JavaScript sources, declarative configs, and stylesheets.
func DefaultOptions() Options {
	return Options{
		Patterns: []string{
			"**/*.ts", "**/*.tsx", "**/*.js", "**/*.jsx",
			"**/*.json", "**/*.config.*",
			"**/*.css", "**/*.scss", "**/*.sass",
		},
		ExcludeDirs: []string{"node_modules", ".git", "dist", "build", "coverage"},
	}
}

// Snapshot is an immutable view of the project tree. All paths are
// slash-separated and relative to the root.
type Snapshot struct {
	root     string
	files    []string          // pattern-matched files with captured content, sorted
	contents map[string]string // content per captured file
	allPaths map[string]bool   // every non-excluded file seen during the walk
	dirs     map[string]bool   // every non-excluded directory seen during the walk
}

// Capture walks the tree under root and loads content for every file
// matching the options. Files that cannot be read are silently dropped:
// a per-file read failure never aborts the capture.
func Capture(ctx context.Context, root string, opts Options) (*Snapshot, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("invalid root path %q: %w", root, err)
	}
	if info, err := os.Stat(absRoot); err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	} else if !info.IsDir() {
		return nil, fmt.Errorf("root %q is not a directory", root)
	}

	snap := &Snapshot{
		root:     absRoot,
		contents: make(map[string]string),
		allPaths: make(map[string]bool),
		dirs:     make(map[string]bool),
	}

	var toRead []string
	err = filepath.WalkDir(absRoot, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			// Unreadable subtree: skip it, keep walking.
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(absRoot, p)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if d.IsDir() {
			for _, exclude := range opts.ExcludeDirs {
				if d.Name() == exclude {
					return filepath.SkipDir
				}
			}
			snap.dirs[rel] = true
			return nil
		}

		snap.allPaths[rel] = true
		if matchesAny(opts.Patterns, d.Name()) {
			toRead = append(toRead, rel)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}

	if err := snap.readAll(ctx, toRead); err != nil {
		return nil, err
	}

	snap.files = make([]string, 0, len(snap.contents))
	for rel := range snap.contents {
		snap.files = append(snap.files, rel)
	}
	sort.Strings(snap.files)
	return snap, nil
}

// readAll loads file contents with bounded concurrency. Read failures drop
// the file from the snapshot; they are not errors.
func (s *Snapshot) readAll(ctx context.Context, paths []string) error {
	var mu sync.Mutex
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(readConcurrency)

	for _, rel := range paths {
		rel := rel
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(filepath.Join(s.root, filepath.FromSlash(rel)))
			if err != nil {
				return nil
			}
			mu.Lock()
			s.contents[rel] = string(data)
			mu.Unlock()
			return nil
		})
	}
	return g.Wait()
}

func matchesAny(patterns []string, name string) bool {
	for _, pattern := range patterns {
		// Only the final segment matters: "**/*.ts" -> "*.ts".
		base := pattern
		if idx := strings.LastIndex(pattern, "/"); idx >= 0 {
			base = pattern[idx+1:]
		}
		if ok, err := path.Match(base, name); err == nil && ok {
			return true
		}
	}
	return false
}

// Root returns the absolute path the snapshot was captured from.
func (s *Snapshot) Root() string {
	return s.root
}

// Files returns every captured file path, sorted. The slice is shared;
// callers must not modify it.
func (s *Snapshot) Files() []string {
	return s.files
}

// Read returns the captured content of a file and whether it was captured.
func (s *Snapshot) Read(rel string) (string, bool) {
	content, ok := s.contents[path.Clean(rel)]
	return content, ok
}

// Exists reports whether any file at the given relative path was seen during
// the walk, captured or not.
func (s *Snapshot) Exists(rel string) bool {
	return s.allPaths[path.Clean(rel)]
}

// IsDir reports whether the given relative path is a directory in the tree.
func (s *Snapshot) IsDir(rel string) bool {
	return s.dirs[path.Clean(rel)]
}

// Match returns captured files whose base name matches the glob pattern,
// in sorted order.
func (s *Snapshot) Match(pattern string) []string {
	var out []string
	for _, rel := range s.files {
		if ok, err := path.Match(pattern, path.Base(rel)); err == nil && ok {
			out = append(out, rel)
		}
	}
	return out
}

// Under returns captured files below the given directory prefix whose base
// name matches the glob pattern, in sorted order.
func (s *Snapshot) Under(prefix, pattern string) []string {
	prefix = strings.TrimSuffix(path.Clean(prefix), "/") + "/"
	var out []string
	for _, rel := range s.files {
		if !strings.HasPrefix(rel, prefix) {
			continue
		}
		if ok, err := path.Match(pattern, path.Base(rel)); err == nil && ok {
			out = append(out, rel)
		}
	}
	return out
}

// RootMatches returns files directly under the root whose name matches the
// glob pattern, regardless of whether their content was captured.
func (s *Snapshot) RootMatches(pattern string) []string {
	var out []string
	for rel := range s.allPaths {
		if strings.Contains(rel, "/") {
			continue
		}
		if ok, err := path.Match(pattern, rel); err == nil && ok {
			out = append(out, rel)
		}
	}
	sort.Strings(out)
	return out
}
