// Package dataset defines the four benchmark sub-datasets and the
// membership rules that select their candidate bug folders.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/claudeyj/benchvet/internal/refset"
)

// Dataset identifies one of the benchmark sub-datasets. The set of
// values is closed; anything else is rejected by RuleFor.
type Dataset string

const (
	Defects4J Dataset = "Defects4J"
	QuixBugs  Dataset = "QuixBugs"
	Bears     Dataset = "Bears"
	BugSwarm  Dataset = "BugSwarm"
)

// All returns the datasets in audit order.
func All() []Dataset {
	return []Dataset{Defects4J, QuixBugs, Bears, BugSwarm}
}

// MinCandidates returns the minimum number of candidate folders the
// dataset must provide.
func (d Dataset) MinCandidates() int {
	switch d {
	case Defects4J:
		return 68
	case QuixBugs, Bears, BugSwarm:
		return 20
	default:
		return 0
	}
}

// Dir returns the dataset's folder path under the repository root.
func (d Dataset) Dir(root string) string {
	return filepath.Join(root, string(d))
}

// RuleSummary describes the dataset's naming rule without needing any
// reference data loaded.
func (d Dataset) RuleSummary() string {
	switch d {
	case Defects4J:
		return "name is <Category>_<n> for one of 17 project categories"
	case QuixBugs:
		return "name is listed in the QuixBugs reference list"
	case Bears:
		return "name starts with Bears-"
	case BugSwarm:
		return "name is an image_tag in the BugSwarm export"
	default:
		return ""
	}
}

// Defects4JCategories lists the project categories a Defects4J
// candidate may belong to.
var Defects4JCategories = []string{
	"Chart", "Cli", "Closure", "Codec", "Collections", "Compress",
	"Csv", "Gson", "JacksonCore", "JacksonDatabind", "JacksonXml",
	"Jsoup", "JxPath", "Lang", "Math", "Mockito", "Time",
}

// UnknownDatasetError reports a dataset identifier outside the closed
// enumeration.
type UnknownDatasetError struct {
	Name string
}

func (e *UnknownDatasetError) Error() string {
	return fmt.Sprintf("unknown dataset: %s", e.Name)
}

// Rule decides whether a folder name belongs to its dataset.
type Rule interface {
	Match(name string) bool
	Describe() string
}

// CategoryRule accepts names of the form <Category>_<number>. The
// pattern is anchored at both ends so trailing garbage never matches.
type CategoryRule struct {
	re *regexp.Regexp
}

// NewCategoryRule builds the rule for the given category names.
func NewCategoryRule(categories []string) CategoryRule {
	pattern := "^(" + strings.Join(categories, "|") + `)_\d+$`
	return CategoryRule{re: regexp.MustCompile(pattern)}
}

func (r CategoryRule) Match(name string) bool { return r.re.MatchString(name) }

func (r CategoryRule) Describe() string {
	return "category-prefixed name <Category>_<n>"
}

// MemberRule accepts names present in a reference set.
type MemberRule struct {
	Set    refset.Set
	Source string
}

func (r MemberRule) Match(name string) bool { return r.Set.Contains(name) }

func (r MemberRule) Describe() string { return "listed in " + r.Source }

// PrefixRule accepts names carrying a fixed prefix.
type PrefixRule struct {
	Prefix string
}

func (r PrefixRule) Match(name string) bool { return strings.HasPrefix(name, r.Prefix) }

func (r PrefixRule) Describe() string { return "name starts with " + r.Prefix }

// RuleFor returns the membership rule for d. The QuixBugs and BugSwarm
// rules draw on the loaded reference sets; the other two are static.
func RuleFor(d Dataset, refs refset.Sets) (Rule, error) {
	switch d {
	case Defects4J:
		return NewCategoryRule(Defects4JCategories), nil
	case QuixBugs:
		return MemberRule{Set: refs.QuixBugs, Source: "the QuixBugs reference list"}, nil
	case Bears:
		return PrefixRule{Prefix: "Bears-"}, nil
	case BugSwarm:
		return MemberRule{Set: refs.BugSwarm, Source: "the BugSwarm export"}, nil
	default:
		return nil, &UnknownDatasetError{Name: string(d)}
	}
}

// Candidate is one bug folder inside a dataset.
type Candidate struct {
	Dataset Dataset
	Name    string
	Path    string
}

// Candidates lists the immediate subdirectories of the dataset folder
// under root that satisfy rule, in lexicographic name order. Matching
// names that are not directories are excluded, and nothing below the
// first level is considered.
func Candidates(root string, d Dataset, rule Rule) ([]Candidate, error) {
	dir := d.Dir(root)
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	var cands []Candidate
	for _, entry := range entries {
		if !entry.IsDir() || !rule.Match(entry.Name()) {
			continue
		}
		cands = append(cands, Candidate{
			Dataset: d,
			Name:    entry.Name(),
			Path:    filepath.Join(dir, entry.Name()),
		})
	}
	return cands, nil
}
