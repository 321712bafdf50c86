// Package sizer measures the byte size and file count of filesystem paths.
package sizer

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

var (
	// ErrNotFound reports a path with no filesystem entry behind it.
	ErrNotFound = errors.New("path does not exist")
	// ErrNotRegular reports a path that is neither a regular file nor a
	// directory.
	ErrNotRegular = errors.New("path is neither file nor directory")
)

// Compute measures a single path. A regular file reports its own size and a
// file count of one. A directory reports the total over its regular files,
// covering the immediate children only, or the whole subtree when recursive
// is set. Progress deltas are sent on updates when it is non-nil.
func Compute(ctx context.Context, path string, recursive bool, updates chan<- Progress) (Result, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if _, lerr := os.Lstat(path); lerr == nil {
				// The entry exists but its link target does not.
				return Result{}, fmt.Errorf("%w: %s", ErrNotRegular, path)
			}
			return Result{}, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return Result{}, fmt.Errorf("cannot access file %s: %w", path, err)
	}

	switch {
	case info.Mode().IsRegular():
		if updates != nil {
			updates <- Progress{FilesDelta: 1, BytesDelta: info.Size()}
		}
		return Result{Files: 1, Size: info.Size()}, nil
	case info.IsDir():
		return scanDir(ctx, path, recursive, updates)
	default:
		return Result{}, fmt.Errorf("%w: %s", ErrNotRegular, path)
	}
}

// scanDir totals the regular files under dir. Entries that cannot be statted
// and subtrees that cannot be read are skipped, so one unreadable entry never
// hides the size of the rest; only a failure to enumerate dir itself is
// reported.
func scanDir(ctx context.Context, dir string, recursive bool, updates chan<- Progress) (Result, error) {
	var res Result

	accumulate := func(entry fs.DirEntry) {
		info, err := entry.Info()
		if err != nil {
			return
		}
		res.Files++
		res.Size += info.Size()
		if updates != nil {
			updates <- Progress{FilesDelta: 1, BytesDelta: info.Size()}
		}
	}

	if !recursive {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return Result{}, fmt.Errorf("cannot access directory %s: %w", dir, err)
		}
		for _, entry := range entries {
			if ctx != nil {
				if err := ctx.Err(); err != nil {
					return Result{}, err
				}
			}
			if entry.Type().IsRegular() {
				accumulate(entry)
			}
		}
		return res, nil
	}

	// WalkDir does not follow a symlinked root, so resolve it first: an
	// argument that stats as a directory must scan its subtree either way.
	root := dir
	if resolved, rerr := filepath.EvalSymlinks(dir); rerr == nil {
		root = resolved
	}

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if ctx != nil {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			return nil
		}
		if d.Type().IsRegular() {
			accumulate(d)
		}
		return nil
	})
	if err != nil {
		if ctx != nil && ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
		return Result{}, fmt.Errorf("cannot access directory %s: %w", dir, err)
	}
	return res, nil
}
