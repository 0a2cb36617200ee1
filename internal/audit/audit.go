// Package audit verifies that a benchmark repository provides the
// directory layout its consumers rely on: version snapshots, failing
// test records, generated test files, and coverage folders for every
// candidate bug folder in every dataset.
package audit

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/claudeyj/benchvet/internal/dataset"
	"github.com/claudeyj/benchvet/internal/refset"
)

// Names of the entries every candidate folder must provide.
const (
	BuggyDir    = "Buggy-Version"
	PatchedDir  = "Patched-Version"
	TestRecord  = "test.txt"
	CoverageDir = "Coverage"
)

// Outcome tells the caller whether auditing may continue after a check
// group. Halt stops the entire run, not just the current candidate.
type Outcome int

const (
	Continue Outcome = iota
	Halt
)

// Finding is one structural violation, in detection order.
type Finding struct {
	Check     string `json:"check"`
	Dataset   string `json:"dataset"`
	Candidate string `json:"candidate,omitempty"`
	Message   string `json:"message"`
}

// DatasetStat reports how many candidates a dataset provided against
// its required minimum.
type DatasetStat struct {
	Dataset  dataset.Dataset
	Required int
	Found    int
}

// Report collects the outcome of one audit run.
type Report struct {
	Findings []Finding
	Stats    []DatasetStat
	// Halted is true when a hard violation stopped the run before all
	// datasets were audited.
	Halted bool
}

// Passed reports whether the repository cleared every check.
func (r *Report) Passed() bool {
	return len(r.Findings) == 0
}

func (r *Report) record(f Finding) {
	r.Findings = append(r.Findings, f)
}

// Options configures an audit run.
type Options struct {
	// Logger receives debug-level progress; nil discards it.
	Logger *slog.Logger
}

// Auditor runs the structural checks for one repository.
type Auditor struct {
	root   string
	refs   refset.Sets
	logger *slog.Logger
}

// New creates an auditor for the repository rooted at root. The
// reference sets back the membership rules for two of the datasets.
func New(root string, refs refset.Sets, opts Options) *Auditor {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Auditor{root: root, refs: refs, logger: logger}
}

// Run audits every dataset in enumeration order and returns the
// report. An error is returned only for I/O failures outside the
// layout contract; structural violations land in the report.
func (a *Auditor) Run() (*Report, error) {
	rep := &Report{}
	for _, ds := range dataset.All() {
		outcome, err := a.auditDataset(rep, ds)
		if err != nil {
			return nil, err
		}
		if outcome == Halt {
			rep.Halted = true
			a.logger.Info("audit halted", "dataset", string(ds), "findings", len(rep.Findings))
			return rep, nil
		}
	}
	a.logger.Info("audit complete", "findings", len(rep.Findings), "passed", rep.Passed())
	return rep, nil
}

func (a *Auditor) auditDataset(rep *Report, ds dataset.Dataset) (Outcome, error) {
	dir := ds.Dir(a.root)
	if _, err := os.Stat(dir); err != nil {
		if os.IsNotExist(err) {
			rep.record(Finding{
				Check:   CheckDatasetFolder,
				Dataset: string(ds),
				Message: fmt.Sprintf("No %s folder", ds),
			})
			return Halt, nil
		}
		return Continue, fmt.Errorf("failed to stat %s: %w", dir, err)
	}

	rule, err := dataset.RuleFor(ds, a.refs)
	if err != nil {
		return Continue, err
	}
	candidates, err := dataset.Candidates(a.root, ds, rule)
	if err != nil {
		return Continue, err
	}

	required := ds.MinCandidates()
	rep.Stats = append(rep.Stats, DatasetStat{Dataset: ds, Required: required, Found: len(candidates)})
	a.logger.Debug("dataset enumerated", "dataset", string(ds), "candidates", len(candidates), "required", required)

	// A shortfall is recorded but does not stop the per-candidate
	// checks for this dataset.
	if len(candidates) < required {
		rep.record(Finding{
			Check:   CheckCandidateCount,
			Dataset: string(ds),
			Message: fmt.Sprintf("Missing %d bugs in %s", required-len(candidates), ds),
		})
	}

	for _, cand := range candidates {
		if a.auditCandidate(rep, cand) == Halt {
			return Halt, nil
		}
	}
	return Continue, nil
}

func (a *Auditor) auditCandidate(rep *Report, cand dataset.Candidate) Outcome {
	if a.checkLayout(rep, cand) == Halt {
		return Halt
	}
	if a.checkGeneratedTests(rep, cand) == Halt {
		return Halt
	}
	return a.checkCoverage(rep, cand)
}

// checkLayout verifies the version snapshots and the failing-test
// record. Both checks always run; a failure in either halts the run
// once the group completes.
func (a *Auditor) checkLayout(rep *Report, cand dataset.Candidate) Outcome {
	outcome := Continue
	if !exists(filepath.Join(cand.Path, BuggyDir)) || !exists(filepath.Join(cand.Path, PatchedDir)) {
		rep.record(candidateFinding(CheckVersionFolders, cand,
			fmt.Sprintf("Incomplete versions in %s-%s", cand.Dataset, cand.Name)))
		outcome = Halt
	}
	if !exists(filepath.Join(cand.Path, TestRecord)) {
		rep.record(candidateFinding(CheckFailingTestRecord, cand,
			fmt.Sprintf("No failed test file in %s-%s", cand.Dataset, cand.Name)))
		outcome = Halt
	}
	return outcome
}

// checkGeneratedTests verifies that each version subtree holds at
// least one generated test file per tool. All four searches run and
// report before a failure halts the run.
func (a *Auditor) checkGeneratedTests(rep *Report, cand dataset.Candidate) Outcome {
	outcome := Continue
	for _, chk := range []struct {
		id      string
		tool    string
		pattern string
		version string
	}{
		{CheckRandoopBuggy, "Randoop", RandoopPattern, BuggyDir},
		{CheckRandoopPatched, "Randoop", RandoopPattern, PatchedDir},
		{CheckEvosuiteBuggy, "Evosuite", EvosuitePattern, BuggyDir},
		{CheckEvosuitePatched, "Evosuite", EvosuitePattern, PatchedDir},
	} {
		if len(FindTestFiles(filepath.Join(cand.Path, chk.version), chk.pattern)) == 0 {
			rep.record(candidateFinding(chk.id, cand,
				fmt.Sprintf("No %s test files in %s-%s/%s", chk.tool, cand.Dataset, cand.Name, chk.version)))
			outcome = Halt
		}
	}
	return outcome
}

// checkCoverage verifies the Coverage folder and its six per-tool
// subfolders. Unlike the other groups, the first missing entry halts
// immediately without evaluating the rest.
func (a *Auditor) checkCoverage(rep *Report, cand dataset.Candidate) Outcome {
	covDir := filepath.Join(cand.Path, CoverageDir)
	if !exists(covDir) {
		rep.record(candidateFinding(CheckCoverageFolder, cand,
			fmt.Sprintf("No coverage folder in %s-%s", cand.Dataset, cand.Name)))
		return Halt
	}
	for _, sub := range coverageFolders {
		if !exists(filepath.Join(covDir, sub.name)) {
			rep.record(candidateFinding(sub.check, cand,
				fmt.Sprintf("No coverage folder for %s in %s-%s", sub.tool, cand.Dataset, cand.Name)))
			return Halt
		}
	}
	return Continue
}

func candidateFinding(check string, cand dataset.Candidate, msg string) Finding {
	return Finding{
		Check:     check,
		Dataset:   string(cand.Dataset),
		Candidate: cand.Name,
		Message:   msg,
	}
}

// exists is the bare stat the layout contract is defined in terms of:
// any directory entry satisfies it, file or folder.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
