package discovery

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ResultSuffix marks tables written by a run
const ResultSuffix = "_result.csv"

// Scanner scans for case tables in a directory
type Scanner struct {
	skipDirs map[string]bool
}

// NewScanner creates a new Scanner with the given directories to skip
func NewScanner(skipDirs []string) *Scanner {
	skipMap := make(map[string]bool)
	for _, dir := range skipDirs {
		skipMap[dir] = true
	}
	return &Scanner{skipDirs: skipMap}
}

// Scan finds all case tables under root, skipping result tables
func (s *Scanner) Scan(root string) ([]string, error) {
	var tables []string

	root = filepath.Clean(root)
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("case path does not exist: %s", root)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("case path is not a directory: %s", root)
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			name := d.Name()
			// Skip hidden directories (starting with .)
			if path != root && strings.HasPrefix(name, ".") {
				return filepath.SkipDir
			}
			if s.skipDirs[name] {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if strings.HasSuffix(name, ".csv") && !strings.HasSuffix(name, ResultSuffix) {
			tables = append(tables, path)
		}
		return nil
	})

	return tables, err
}
