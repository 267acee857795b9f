package casetable

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
)

// Persist writes the table to dest, replacing any existing file atomically.
// The data goes to a temp file in the same directory which is synced and
// then renamed over dest.
func (t *Table) Persist(dest string) error {
	dir := filepath.Dir(dest)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create result dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	_ = os.Chmod(tmpPath, 0644)

	bw := bufio.NewWriter(tmp)
	if _, err := t.WriteTo(bw); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return err
	}
	if err := bw.Flush(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write case table: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("sync case table: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("close case table: %w", err)
	}
	if err := os.Rename(tmpPath, dest); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("replace %s: %w", dest, err)
	}
	_ = syncDir(dir)
	return nil
}

// syncDir fsyncs the parent directory so the rename survives a crash.
// Not every platform supports it, so callers ignore the error.
func syncDir(dir string) error {
	f, err := os.Open(dir)
	if err != nil {
		return err
	}
	defer f.Close()
	return f.Sync()
}
