package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claudeyj/benchvet/internal/dataset"
	"github.com/claudeyj/benchvet/internal/refset"
	"github.com/claudeyj/benchvet/internal/testutil"
)

// repoFixture is an on-disk repository where every dataset meets its
// minimum and every candidate is complete. Tests break specific pieces
// and assert on the resulting findings.
type repoFixture struct {
	root string
	refs refset.Sets
}

func newRepoFixture(t *testing.T) *repoFixture {
	t.Helper()
	fx := &repoFixture{
		root: t.TempDir(),
		refs: refset.Sets{QuixBugs: refset.Set{}, BugSwarm: refset.Set{}},
	}

	cats := dataset.Defects4JCategories
	for i := 0; i < dataset.Defects4J.MinCandidates(); i++ {
		name := fmt.Sprintf("%s_%d", cats[i%len(cats)], i/len(cats)+1)
		writeCandidate(t, fx.candidatePath(dataset.Defects4J, name))
	}
	for i := 1; i <= dataset.QuixBugs.MinCandidates(); i++ {
		name := fmt.Sprintf("program_%02d", i)
		fx.refs.QuixBugs[name] = struct{}{}
		writeCandidate(t, fx.candidatePath(dataset.QuixBugs, name))
	}
	for i := 1; i <= dataset.Bears.MinCandidates(); i++ {
		writeCandidate(t, fx.candidatePath(dataset.Bears, fmt.Sprintf("Bears-%d", i)))
	}
	for i := 1; i <= dataset.BugSwarm.MinCandidates(); i++ {
		tag := fmt.Sprintf("myproject-job-%08d", 64780000+i)
		fx.refs.BugSwarm[tag] = struct{}{}
		writeCandidate(t, fx.candidatePath(dataset.BugSwarm, tag))
	}
	return fx
}

func (fx *repoFixture) candidatePath(ds dataset.Dataset, name string) string {
	return filepath.Join(fx.root, string(ds), name)
}

func (fx *repoFixture) run(t *testing.T) *Report {
	t.Helper()
	rep, err := New(fx.root, fx.refs, Options{Logger: testutil.NewTestLogger(t)}).Run()
	require.NoError(t, err)
	return rep
}

// writeCandidate creates a complete candidate folder: both version
// snapshots with nested generated tests, the failing-test record, and
// all coverage subfolders.
func writeCandidate(t *testing.T, dir string) {
	t.Helper()
	for _, version := range []string{BuggyDir, PatchedDir} {
		base := filepath.Join(dir, version)
		mustMkdirAll(t, filepath.Join(base, "generated"))
		mustWriteFile(t, filepath.Join(base, "generated", "RandoopTest0.java"))
		mustWriteFile(t, filepath.Join(base, "EvosuiteTest_ESTest.java"))
	}
	mustWriteFile(t, filepath.Join(dir, TestRecord))
	for _, sub := range CoverageFolders() {
		mustMkdirAll(t, filepath.Join(dir, CoverageDir, sub))
	}
}

func mustMkdirAll(t *testing.T, dir string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
}

func mustWriteFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x\n"), 0o644))
}

func TestRunFullPass(t *testing.T) {
	fx := newRepoFixture(t)

	rep := fx.run(t)

	assert.True(t, rep.Passed())
	assert.Empty(t, rep.Findings)
	assert.False(t, rep.Halted)
	require.Len(t, rep.Stats, 4)
	for i, ds := range dataset.All() {
		assert.Equal(t, ds, rep.Stats[i].Dataset)
		assert.Equal(t, ds.MinCandidates(), rep.Stats[i].Required)
		assert.Equal(t, ds.MinCandidates(), rep.Stats[i].Found)
	}
}

func TestRunIsIdempotent(t *testing.T) {
	fx := newRepoFixture(t)
	require.NoError(t, os.RemoveAll(filepath.Join(fx.candidatePath(dataset.Bears, "Bears-1"), CoverageDir)))

	first := fx.run(t)
	second := fx.run(t)

	assert.Equal(t, first.Findings, second.Findings)
	assert.Equal(t, first.Stats, second.Stats)
	assert.Equal(t, first.Halted, second.Halted)
}

func TestRunMissingDatasetFolderHaltsRun(t *testing.T) {
	fx := newRepoFixture(t)
	require.NoError(t, os.RemoveAll(filepath.Join(fx.root, string(dataset.QuixBugs))))

	rep := fx.run(t)

	require.Len(t, rep.Findings, 1)
	assert.Equal(t, CheckDatasetFolder, rep.Findings[0].Check)
	assert.Equal(t, "No QuixBugs folder", rep.Findings[0].Message)
	assert.True(t, rep.Halted)
	// Defects4J was audited, nothing after QuixBugs was touched.
	require.Len(t, rep.Stats, 1)
	assert.Equal(t, dataset.Defects4J, rep.Stats[0].Dataset)
}

func TestRunMissingRepoRoot(t *testing.T) {
	refs := refset.Sets{QuixBugs: refset.Set{}, BugSwarm: refset.Set{}}
	rep, err := New(filepath.Join(t.TempDir(), "nope"), refs, Options{}).Run()
	require.NoError(t, err)

	require.Len(t, rep.Findings, 1)
	assert.Equal(t, "No Defects4J folder", rep.Findings[0].Message)
	assert.True(t, rep.Halted)
	assert.Empty(t, rep.Stats)
}

func TestRunCandidateShortfallContinues(t *testing.T) {
	fx := newRepoFixture(t)
	for _, name := range []string{"Bears-18", "Bears-19", "Bears-20"} {
		require.NoError(t, os.RemoveAll(fx.candidatePath(dataset.Bears, name)))
	}

	rep := fx.run(t)

	// The shortfall names exactly required minus found and the run
	// still audits the remaining candidates and datasets.
	require.Len(t, rep.Findings, 1)
	assert.Equal(t, CheckCandidateCount, rep.Findings[0].Check)
	assert.Equal(t, "Missing 3 bugs in Bears", rep.Findings[0].Message)
	assert.False(t, rep.Halted)
	assert.False(t, rep.Passed())
	require.Len(t, rep.Stats, 4)
	assert.Equal(t, 17, rep.Stats[2].Found)
	assert.Equal(t, 20, rep.Stats[2].Required)
}

func TestRunIncompleteVersionsHalts(t *testing.T) {
	fx := newRepoFixture(t)
	// Chart_1 is the first Defects4J candidate in lexicographic order.
	require.NoError(t, os.RemoveAll(filepath.Join(fx.candidatePath(dataset.Defects4J, "Chart_1"), PatchedDir)))

	rep := fx.run(t)

	require.Len(t, rep.Findings, 1)
	assert.Equal(t, CheckVersionFolders, rep.Findings[0].Check)
	assert.Equal(t, "Incomplete versions in Defects4J-Chart_1", rep.Findings[0].Message)
	assert.Equal(t, "Chart_1", rep.Findings[0].Candidate)
	assert.True(t, rep.Halted)
	require.Len(t, rep.Stats, 1, "no later dataset is enumerated")
}

func TestRunMissingTestRecordHalts(t *testing.T) {
	fx := newRepoFixture(t)
	require.NoError(t, os.Remove(filepath.Join(fx.candidatePath(dataset.Bears, "Bears-1"), TestRecord)))

	rep := fx.run(t)

	require.Len(t, rep.Findings, 1)
	assert.Equal(t, CheckFailingTestRecord, rep.Findings[0].Check)
	assert.Equal(t, "No failed test file in Bears-Bears-1", rep.Findings[0].Message)
	assert.True(t, rep.Halted)
}

func TestRunLayoutGroupReportsBothFailures(t *testing.T) {
	fx := newRepoFixture(t)
	cand := fx.candidatePath(dataset.Defects4J, "Chart_1")
	require.NoError(t, os.RemoveAll(filepath.Join(cand, BuggyDir)))
	require.NoError(t, os.Remove(filepath.Join(cand, TestRecord)))

	rep := fx.run(t)

	require.Len(t, rep.Findings, 2)
	assert.Equal(t, "Incomplete versions in Defects4J-Chart_1", rep.Findings[0].Message)
	assert.Equal(t, "No failed test file in Defects4J-Chart_1", rep.Findings[1].Message)
	assert.True(t, rep.Halted)
}

func TestRunMissingRandoopInBuggyHalts(t *testing.T) {
	fx := newRepoFixture(t)
	// Only the Randoop file lives under generated/, so this leaves the
	// Evosuite file and the whole Patched-Version intact.
	cand := fx.candidatePath(dataset.Defects4J, "Chart_1")
	require.NoError(t, os.RemoveAll(filepath.Join(cand, BuggyDir, "generated")))

	rep := fx.run(t)

	require.Len(t, rep.Findings, 1)
	assert.Equal(t, CheckRandoopBuggy, rep.Findings[0].Check)
	assert.Equal(t, "No Randoop test files in Defects4J-Chart_1/Buggy-Version", rep.Findings[0].Message)
	assert.True(t, rep.Halted)
}

func TestRunTestsGroupReportsAllFailures(t *testing.T) {
	fx := newRepoFixture(t)
	cand := fx.candidatePath(dataset.Defects4J, "Chart_1")
	require.NoError(t, os.RemoveAll(filepath.Join(cand, BuggyDir, "generated")))
	require.NoError(t, os.RemoveAll(filepath.Join(cand, PatchedDir, "generated")))

	rep := fx.run(t)

	// Both Randoop checks fail and are reported in check order before
	// the run halts; the Evosuite files are still in place.
	require.Len(t, rep.Findings, 2)
	assert.Equal(t, "No Randoop test files in Defects4J-Chart_1/Buggy-Version", rep.Findings[0].Message)
	assert.Equal(t, "No Randoop test files in Defects4J-Chart_1/Patched-Version", rep.Findings[1].Message)
	assert.True(t, rep.Halted)
}

func TestRunMissingCoverageFolderHalts(t *testing.T) {
	fx := newRepoFixture(t)
	require.NoError(t, os.RemoveAll(filepath.Join(fx.candidatePath(dataset.Bears, "Bears-1"), CoverageDir)))

	rep := fx.run(t)

	require.Len(t, rep.Findings, 1)
	assert.Equal(t, CheckCoverageFolder, rep.Findings[0].Check)
	assert.Equal(t, "No coverage folder in Bears-Bears-1", rep.Findings[0].Message)
	assert.True(t, rep.Halted)
}

func TestRunCoverageSubfolderHaltsPerItem(t *testing.T) {
	fx := newRepoFixture(t)
	cov := filepath.Join(fx.candidatePath(dataset.Defects4J, "Chart_1"), CoverageDir)
	// Remove two subfolders; only the first in check order is reported.
	require.NoError(t, os.RemoveAll(filepath.Join(cov, "Patched-version-Evosuite")))
	require.NoError(t, os.RemoveAll(filepath.Join(cov, "Buggy-version-All")))

	rep := fx.run(t)

	require.Len(t, rep.Findings, 1)
	assert.Equal(t, CheckCoveragePatchedEvosuite, rep.Findings[0].Check)
	assert.Equal(t, "No coverage folder for Evosuite in Defects4J-Chart_1", rep.Findings[0].Message)
	assert.True(t, rep.Halted)
}

func TestRunCoverageAllSubfolder(t *testing.T) {
	fx := newRepoFixture(t)
	cov := filepath.Join(fx.candidatePath(dataset.Defects4J, "Chart_1"), CoverageDir)
	require.NoError(t, os.RemoveAll(filepath.Join(cov, "Patched-version-All")))

	rep := fx.run(t)

	require.Len(t, rep.Findings, 1)
	assert.Equal(t, CheckCoveragePatchedAll, rep.Findings[0].Check)
	assert.Equal(t, "No coverage folder for All in Defects4J-Chart_1", rep.Findings[0].Message)
}

func TestRunIgnoresNonCandidates(t *testing.T) {
	fx := newRepoFixture(t)
	// Stray entries that match no membership rule are not candidates
	// and must not be checked: a README directory, an unknown-category
	// folder, and a plain file whose name would otherwise match.
	d4j := filepath.Join(fx.root, string(dataset.Defects4J))
	mustMkdirAll(t, filepath.Join(d4j, "README"))
	mustMkdirAll(t, filepath.Join(d4j, "Foo_1"))
	mustWriteFile(t, filepath.Join(d4j, "Lang_99"))

	rep := fx.run(t)

	assert.True(t, rep.Passed())
	assert.Equal(t, dataset.Defects4J.MinCandidates(), rep.Stats[0].Found)
}

func TestNewDefaultsLogger(t *testing.T) {
	a := New(t.TempDir(), refset.Sets{}, Options{})
	require.NotNil(t, a.logger)
}
