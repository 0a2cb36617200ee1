package audit

// Check IDs, grouped the way the auditor applies them. Dataset checks
// run once per dataset; the rest run once per candidate.
const (
	CheckDatasetFolder  = "DS01"
	CheckCandidateCount = "DS02"

	CheckVersionFolders    = "LY01"
	CheckFailingTestRecord = "LY02"

	CheckRandoopBuggy    = "GT01"
	CheckRandoopPatched  = "GT02"
	CheckEvosuiteBuggy   = "GT03"
	CheckEvosuitePatched = "GT04"

	CheckCoverageFolder          = "CV01"
	CheckCoverageBuggyRandoop    = "CV02"
	CheckCoverageBuggyEvosuite   = "CV03"
	CheckCoveragePatchedRandoop  = "CV04"
	CheckCoveragePatchedEvosuite = "CV05"
	CheckCoverageBuggyAll        = "CV06"
	CheckCoveragePatchedAll      = "CV07"
)

// Check groups.
const (
	GroupDataset  = "dataset"
	GroupLayout   = "layout"
	GroupTests    = "tests"
	GroupCoverage = "coverage"
)

// Groups lists the check groups in audit order.
func Groups() []string {
	return []string{GroupDataset, GroupLayout, GroupTests, GroupCoverage}
}

// Check describes one structural rule applied during an audit.
type Check struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Group       string `json:"group"`
	Description string `json:"description"`
}

// coverageFolders lists the per-tool coverage subfolders every
// candidate must provide, in check order. The tool label is what the
// diagnostic names, so the buggy and patched variants of a tool share
// their message text.
var coverageFolders = []struct {
	check string
	name  string
	short string
	tool  string
}{
	{CheckCoverageBuggyRandoop, "Buggy-version-Randoop", "buggy-randoop", "Randoop"},
	{CheckCoverageBuggyEvosuite, "Buggy-version-Evosuite", "buggy-evosuite", "Evosuite"},
	{CheckCoveragePatchedRandoop, "Patched-version-Randoop", "patched-randoop", "Randoop"},
	{CheckCoveragePatchedEvosuite, "Patched-version-Evosuite", "patched-evosuite", "Evosuite"},
	{CheckCoverageBuggyAll, "Buggy-version-All", "buggy-all", "All"},
	{CheckCoveragePatchedAll, "Patched-version-All", "patched-all", "All"},
}

// CoverageFolders returns the names of the required coverage
// subfolders in check order.
func CoverageFolders() []string {
	names := make([]string, len(coverageFolders))
	for i, sub := range coverageFolders {
		names[i] = sub.name
	}
	return names
}

// Checks returns every structural check in the order the auditor
// applies it.
func Checks() []Check {
	checks := []Check{
		{CheckDatasetFolder, "dataset-folder", GroupDataset,
			"Dataset folder exists at the repository root"},
		{CheckCandidateCount, "candidate-count", GroupDataset,
			"Dataset provides at least its minimum number of bug folders"},
		{CheckVersionFolders, "version-folders", GroupLayout,
			"Candidate has both Buggy-Version and Patched-Version snapshots"},
		{CheckFailingTestRecord, "failing-test-record", GroupLayout,
			"Candidate has a test.txt failing-test record"},
		{CheckRandoopBuggy, "randoop-buggy", GroupTests,
			"Buggy-Version subtree holds at least one Randoop*.java file"},
		{CheckRandoopPatched, "randoop-patched", GroupTests,
			"Patched-Version subtree holds at least one Randoop*.java file"},
		{CheckEvosuiteBuggy, "evosuite-buggy", GroupTests,
			"Buggy-Version subtree holds at least one Evosuite*.java file"},
		{CheckEvosuitePatched, "evosuite-patched", GroupTests,
			"Patched-Version subtree holds at least one Evosuite*.java file"},
		{CheckCoverageFolder, "coverage-folder", GroupCoverage,
			"Candidate has a Coverage folder"},
	}
	for _, sub := range coverageFolders {
		checks = append(checks, Check{
			ID:          sub.check,
			Name:        "coverage-" + sub.short,
			Group:       GroupCoverage,
			Description: "Coverage/" + sub.name + " exists",
		})
	}
	return checks
}
