package testutil

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/claudeyj/benchvet/internal/audit"
	"github.com/claudeyj/benchvet/internal/dataset"
)

// quixBugsPrograms are the program names written to the fixture's
// QuixBugs list, following the benchmark's snake_case convention.
var quixBugsPrograms = []string{
	"bitcount", "breadth_first_search", "bucketsort", "depth_first_search",
	"detect_cycle", "find_first_in_sorted", "find_in_sorted", "flatten",
	"gcd", "get_factors", "hanoi", "kheapsort", "knapsack", "kth",
	"lcs_length", "levenshtein", "lis", "mergesort", "quicksort", "sieve",
}

// RepoFixture is a fully conformant benchmark repository on disk plus
// the reference files needed to audit it. Tests break specific pieces
// and run commands against Root.
type RepoFixture struct {
	Root         string
	QuixBugsFile string
	ExportFile   string
	QuixBugs     []string
	BugSwarm     []string
}

// SetupBenchmarkRepo creates a repository where every dataset meets its
// minimum and every candidate is complete, and writes the QuixBugs list
// and BugSwarm export next to it.
func SetupBenchmarkRepo(t *testing.T) *RepoFixture {
	t.Helper()

	fx := &RepoFixture{
		Root:     t.TempDir(),
		QuixBugs: quixBugsPrograms,
	}
	for i := 1; i <= dataset.BugSwarm.MinCandidates(); i++ {
		fx.BugSwarm = append(fx.BugSwarm, fmt.Sprintf("tananaev-traccar-%d", 64783000+i))
	}

	cats := dataset.Defects4JCategories
	for i := 0; i < dataset.Defects4J.MinCandidates(); i++ {
		name := fmt.Sprintf("%s_%d", cats[i%len(cats)], i/len(cats)+1)
		WriteCandidate(t, fx.CandidatePath(dataset.Defects4J, name))
	}
	for _, name := range fx.QuixBugs {
		WriteCandidate(t, fx.CandidatePath(dataset.QuixBugs, name))
	}
	for i := 1; i <= dataset.Bears.MinCandidates(); i++ {
		WriteCandidate(t, fx.CandidatePath(dataset.Bears, fmt.Sprintf("Bears-%d", i)))
	}
	for _, tag := range fx.BugSwarm {
		WriteCandidate(t, fx.CandidatePath(dataset.BugSwarm, tag))
	}

	refsDir := t.TempDir()
	fx.QuixBugsFile = filepath.Join(refsDir, "QuixBugs.txt")
	writeFile(t, fx.QuixBugsFile, strings.Join(fx.QuixBugs, "\n")+"\n")

	records := make([]map[string]string, len(fx.BugSwarm))
	for i, tag := range fx.BugSwarm {
		records[i] = map[string]string{"image_tag": tag}
	}
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal export: %v", err)
	}
	fx.ExportFile = filepath.Join(refsDir, "Export.json")
	writeFile(t, fx.ExportFile, string(data))

	return fx
}

// CandidatePath returns the directory of one candidate in the fixture.
func (fx *RepoFixture) CandidatePath(ds dataset.Dataset, name string) string {
	return filepath.Join(fx.Root, string(ds), name)
}

// WriteCandidate creates a complete candidate folder: both version
// snapshots with generated tests, the failing-test record, and all
// coverage subfolders.
func WriteCandidate(t *testing.T, dir string) {
	t.Helper()
	for _, version := range []string{audit.BuggyDir, audit.PatchedDir} {
		base := filepath.Join(dir, version)
		mkdirAll(t, filepath.Join(base, "generated"))
		writeFile(t, filepath.Join(base, "generated", "RandoopTest0.java"), "class RandoopTest0 {}\n")
		writeFile(t, filepath.Join(base, "EvosuiteTest_ESTest.java"), "class EvosuiteTest_ESTest {}\n")
	}
	writeFile(t, filepath.Join(dir, audit.TestRecord), "org.example.FooTest::testBar\n")
	for _, sub := range audit.CoverageFolders() {
		mkdirAll(t, filepath.Join(dir, audit.CoverageDir, sub))
	}
}

func mkdirAll(t *testing.T, dir string) {
	t.Helper()
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create directory %s: %v", dir, err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("failed to create directory for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}
