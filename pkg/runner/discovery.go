package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// Discover expands opts.Paths into the sorted list of wiki source files.
// Directories are walked recursively, skipping hidden entries. Explicit
// file paths are kept regardless of extension but still honour excludes.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	excludes, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	extensions := opts.effectiveExtensions()
	seen := make(map[string]struct{})
	var files []string

	add := func(path string) {
		if _, ok := seen[path]; !ok {
			seen[path] = struct{}{}
			files = append(files, path)
		}
	}

	for _, inputPath := range opts.effectivePaths() {
		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("discovery cancelled: %w", ctx.Err())
		default:
		}

		absPath := inputPath
		if !filepath.IsAbs(inputPath) {
			absPath = filepath.Join(workDir, inputPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if !excludes.match(relativeTo(workDir, absPath)) {
				add(absPath)
			}
			continue
		}

		err = filepath.WalkDir(absPath, func(path string, entry fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				if os.IsPermission(walkErr) {
					return nil
				}
				return walkErr
			}
			if err := ctx.Err(); err != nil {
				return err
			}

			rel := relativeTo(workDir, path)
			hidden := path != absPath && strings.HasPrefix(entry.Name(), ".")

			if entry.IsDir() {
				if hidden || excludes.match(rel) {
					return filepath.SkipDir
				}
				return nil
			}

			if !hidden && entry.Type().IsRegular() &&
				hasExtension(path, extensions) && !excludes.match(rel) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk directory %s: %w", inputPath, err)
		}
	}

	slices.Sort(files)
	return files, nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		return os.Getwd()
	}
	return filepath.Abs(workDir)
}

func relativeTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func hasExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, e := range extensions {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// globSet matches slash-separated relative paths against exclude patterns.
// A pattern also matches when it matches the base name alone.
type globSet []glob.Glob

func compileGlobs(patterns []string) (globSet, error) {
	set := make(globSet, 0, len(patterns))
	for _, pattern := range patterns {
		g, err := glob.Compile(filepath.ToSlash(pattern), '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		set = append(set, g)
	}
	return set, nil
}

func (s globSet) match(relPath string) bool {
	base := relPath
	if i := strings.LastIndexByte(relPath, '/'); i >= 0 {
		base = relPath[i+1:]
	}
	for _, g := range s {
		if g.Match(relPath) || g.Match(base) {
			return true
		}
	}
	return false
}
