// Package fsutil provides file system utility functions.
package fsutil

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ListByExtension returns the full paths of all regular files directly inside
// dir whose name ends with the given extension. It does not recurse into
// subdirectories.
func ListByExtension(dir string, extension string) ([]string, error) {
	if extension == "" {
		panic("extension must not be empty")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w", dir, err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if strings.HasSuffix(e.Name(), extension) {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	return files, nil
}

// CopyFile copies the contents of src to dst, creating or truncating dst with
// the given permissions.
func CopyFile(src, dst string, perm fs.FileMode) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, perm)
	if err != nil {
		return fmt.Errorf("creating %s: %w", dst, err)
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copying %s to %s: %w", src, dst, err)
	}
	return out.Close()
}

// CopyDir copies every regular file directly inside srcDir into dstDir,
// creating dstDir if needed. Subdirectories are skipped.
func CopyDir(srcDir, dstDir string, perm fs.FileMode) error {
	if err := os.MkdirAll(dstDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", dstDir, err)
	}
	entries, err := os.ReadDir(srcDir)
	if err != nil {
		return fmt.Errorf("listing %s: %w", srcDir, err)
	}
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		if err := CopyFile(filepath.Join(srcDir, e.Name()), filepath.Join(dstDir, e.Name()), perm); err != nil {
			return err
		}
	}
	return nil
}
