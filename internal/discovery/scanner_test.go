package discovery

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for file, content := range files {
		fullPath := filepath.Join(root, file)
		if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
			t.Fatalf("failed to create dir for %s: %v", file, err)
		}
		if err := os.WriteFile(fullPath, []byte(content), 0644); err != nil {
			t.Fatalf("failed to create file %s: %v", file, err)
		}
	}
}

func TestScanner_Scan(t *testing.T) {
	tmpDir := t.TempDir()
	writeFiles(t, tmpDir, map[string]string{
		"unit/comment/add_comment.csv":        "a\n",
		"unit/comment/add_comment_result.csv": "a\n",
		"unit/order/prohibit.csv":             "a\n",
		"unit/order/notes.txt":                "x",
		".git/cases.csv":                      "a\n",
		"storage/old.csv":                     "a\n",
	})

	scanner := NewScanner([]string{"storage"})
	tables, err := scanner.Scan(tmpDir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	sort.Strings(tables)
	expected := []string{
		filepath.Join(tmpDir, "unit/comment/add_comment.csv"),
		filepath.Join(tmpDir, "unit/order/prohibit.csv"),
	}
	if len(tables) != len(expected) {
		t.Fatalf("expected %d tables, got %d: %v", len(expected), len(tables), tables)
	}
	for i := range expected {
		if tables[i] != expected[i] {
			t.Errorf("expected %s, got %s", expected[i], tables[i])
		}
	}
}

func TestScanner_Scan_InvalidPath(t *testing.T) {
	scanner := NewScanner(nil)

	if _, err := scanner.Scan(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Error("expected error for missing path")
	}

	file := filepath.Join(t.TempDir(), "file.csv")
	if err := os.WriteFile(file, []byte("a\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := scanner.Scan(file); err == nil {
		t.Error("expected error for non-directory path")
	}
}
