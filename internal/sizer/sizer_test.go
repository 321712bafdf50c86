package sizer

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFile(t *testing.T, path string, size int) {
	t.Helper()
	if err := os.WriteFile(path, bytes.Repeat([]byte("a"), size), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

// buildTree creates two files in the root and a third inside a subdirectory,
// sized 100, 200, and 300 bytes.
func buildTree(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "file1.txt"), 100)
	writeFile(t, filepath.Join(dir, "file2.txt"), 200)
	sub := filepath.Join(dir, "subdir")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(sub, "file3.txt"), 300)
	return dir
}

func TestComputeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "hello.txt")
	if err := os.WriteFile(path, []byte("Hello, World!"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	res, err := Compute(context.Background(), path, false, nil)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if res.Files != 1 || res.Size != 13 {
		t.Fatalf("expected 1 file of 13 bytes, got: %+v", res)
	}
}

func TestComputeDirectory(t *testing.T) {
	dir := buildTree(t)

	res, err := Compute(context.Background(), dir, false, nil)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if res.Files != 2 || res.Size != 300 {
		t.Fatalf("expected 2 files of 300 bytes, got: %+v", res)
	}
}

func TestComputeDirectoryRecursive(t *testing.T) {
	dir := buildTree(t)

	res, err := Compute(context.Background(), dir, true, nil)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if res.Files != 3 || res.Size != 600 {
		t.Fatalf("expected 3 files of 600 bytes, got: %+v", res)
	}
}

func TestComputeEmptyDirectory(t *testing.T) {
	dir := t.TempDir()

	for _, recursive := range []bool{false, true} {
		res, err := Compute(context.Background(), dir, recursive, nil)
		if err != nil {
			t.Fatalf("compute recursive=%v: %v", recursive, err)
		}
		if res.Files != 0 || res.Size != 0 {
			t.Fatalf("expected empty result for recursive=%v, got: %+v", recursive, res)
		}
	}
}

func TestComputeMissingPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nope.txt")

	_, err := Compute(context.Background(), path, false, nil)
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got: %v", err)
	}
	if !strings.Contains(err.Error(), path) {
		t.Fatalf("expected error to name the path, got: %v", err)
	}
}

func TestComputeBrokenSymlink(t *testing.T) {
	dir := t.TempDir()
	link := filepath.Join(dir, "dangling")
	if err := os.Symlink(filepath.Join(dir, "missing"), link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	_, err := Compute(context.Background(), link, false, nil)
	if !errors.Is(err, ErrNotRegular) {
		t.Fatalf("expected ErrNotRegular, got: %v", err)
	}
}

func TestComputeSymlinkedDirectory(t *testing.T) {
	dir := buildTree(t)
	link := filepath.Join(t.TempDir(), "link")
	if err := os.Symlink(dir, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	res, err := Compute(context.Background(), link, true, nil)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if res.Files != 3 || res.Size != 600 {
		t.Fatalf("expected the link target's subtree, got: %+v", res)
	}
}

// Directory entries are classified without following links, so a symlink to
// a sibling file is not counted twice.
func TestComputeSkipsSymlinkEntries(t *testing.T) {
	dir := t.TempDir()
	target := filepath.Join(dir, "real.txt")
	writeFile(t, target, 50)
	if err := os.Symlink(target, filepath.Join(dir, "alias")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	res, err := Compute(context.Background(), dir, false, nil)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if res.Files != 1 || res.Size != 50 {
		t.Fatalf("expected only the regular file, got: %+v", res)
	}
}

func TestComputeUnreadableDirectory(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission checks are bypassed")
	}

	dir := filepath.Join(t.TempDir(), "locked")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(dir, "hidden.txt"), 10)
	if err := os.Chmod(dir, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(dir, 0o755) })

	_, err := Compute(context.Background(), dir, false, nil)
	if err == nil {
		t.Fatal("expected an error for an unreadable directory")
	}
	if !strings.Contains(err.Error(), "cannot access directory") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestComputeSkipsUnreadableSubdir(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root, permission checks are bypassed")
	}

	dir := buildTree(t)
	locked := filepath.Join(dir, "locked")
	if err := os.Mkdir(locked, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(locked, "hidden.txt"), 1000)
	if err := os.Chmod(locked, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(locked, 0o755) })

	res, err := Compute(context.Background(), dir, true, nil)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if res.Files != 3 || res.Size != 600 {
		t.Fatalf("expected the readable files only, got: %+v", res)
	}
}

func TestComputeCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Compute(ctx, t.TempDir(), true, nil)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got: %v", err)
	}
}

func TestComputeProgress(t *testing.T) {
	dir := buildTree(t)
	updates := make(chan Progress, 16)

	res, err := Compute(context.Background(), dir, true, updates)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	close(updates)

	var files int
	var size int64
	for p := range updates {
		files += p.FilesDelta
		size += p.BytesDelta
	}
	if files != res.Files || size != res.Size {
		t.Fatalf("progress deltas %d files / %d bytes do not match result %+v", files, size, res)
	}
}
