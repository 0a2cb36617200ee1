package audit

import (
	"os"
	"path/filepath"
)

// Generated test files are tracked by file name only; contents are
// never inspected.
const (
	RandoopPattern  = "Randoop*.java"
	EvosuitePattern = "Evosuite*.java"
)

// FindTestFiles walks the subtree under root and returns every file
// whose base name matches pattern. A missing root yields no matches,
// and unreadable entries are skipped rather than failing the search.
func FindTestFiles(root, pattern string) []string {
	var matches []string
	_ = filepath.Walk(root, func(path string, info os.FileInfo, walkErr error) error {
		if walkErr != nil || info.IsDir() {
			return nil //nolint:nilerr // skip unreadable entries
		}
		if ok, _ := filepath.Match(pattern, info.Name()); ok {
			matches = append(matches, path)
		}
		return nil
	})
	return matches
}
