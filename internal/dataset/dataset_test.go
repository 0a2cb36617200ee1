package dataset

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claudeyj/benchvet/internal/refset"
)

func TestAllOrder(t *testing.T) {
	assert.Equal(t, []Dataset{Defects4J, QuixBugs, Bears, BugSwarm}, All())
}

func TestMinCandidates(t *testing.T) {
	assert.Equal(t, 68, Defects4J.MinCandidates())
	assert.Equal(t, 20, QuixBugs.MinCandidates())
	assert.Equal(t, 20, Bears.MinCandidates())
	assert.Equal(t, 20, BugSwarm.MinCandidates())
	assert.Equal(t, 0, Dataset("Nope").MinCandidates())
}

func TestCategoryRule(t *testing.T) {
	rule := NewCategoryRule(Defects4JCategories)

	tests := []struct {
		name string
		want bool
	}{
		{"Lang_42", true},
		{"Chart_1", true},
		{"Time_999", true},
		{"JacksonDatabind_7", true},
		{"Lang42", false},
		{"Foo_1", false},
		{"Lang_", false},
		{"Lang_42x", false},
		{"xLang_42", false},
		{"lang_1", false},
		{"Lang_4 2", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, rule.Match(tt.name))
		})
	}
}

func TestMemberRule(t *testing.T) {
	set := refset.Set{"quicksort": {}, "mergesort": {}}
	rule := MemberRule{Set: set, Source: "the QuixBugs reference list"}

	assert.True(t, rule.Match("quicksort"))
	assert.False(t, rule.Match("bubblesort"))
	assert.Contains(t, rule.Describe(), "QuixBugs")
}

func TestPrefixRule(t *testing.T) {
	rule := PrefixRule{Prefix: "Bears-"}

	assert.True(t, rule.Match("Bears-1"))
	assert.True(t, rule.Match("Bears-142"))
	assert.True(t, rule.Match("Bears-"))
	assert.False(t, rule.Match("bears-1"))
	assert.False(t, rule.Match("Bear-1"))
	assert.False(t, rule.Match("XBears-1"))
}

func TestRuleFor(t *testing.T) {
	refs := refset.Sets{
		QuixBugs: refset.Set{"quicksort": {}},
		BugSwarm: refset.Set{"tananaev-traccar-64783123": {}},
	}

	t.Run("defects4j", func(t *testing.T) {
		rule, err := RuleFor(Defects4J, refs)
		require.NoError(t, err)
		assert.True(t, rule.Match("Math_5"))
		assert.False(t, rule.Match("math_5"))
	})

	t.Run("quixbugs", func(t *testing.T) {
		rule, err := RuleFor(QuixBugs, refs)
		require.NoError(t, err)
		assert.True(t, rule.Match("quicksort"))
		assert.False(t, rule.Match("quicksort2"))
	})

	t.Run("bears", func(t *testing.T) {
		rule, err := RuleFor(Bears, refs)
		require.NoError(t, err)
		assert.True(t, rule.Match("Bears-88"))
	})

	t.Run("bugswarm", func(t *testing.T) {
		rule, err := RuleFor(BugSwarm, refs)
		require.NoError(t, err)
		assert.True(t, rule.Match("tananaev-traccar-64783123"))
		assert.False(t, rule.Match("unknown-artifact-1"))
	})

	t.Run("unknown dataset", func(t *testing.T) {
		_, err := RuleFor(Dataset("Defect4J"), refs)

		var unknownErr *UnknownDatasetError
		require.ErrorAs(t, err, &unknownErr)
		assert.Equal(t, "unknown dataset: Defect4J", err.Error())
	})
}

func TestCandidates(t *testing.T) {
	root := t.TempDir()
	d4jDir := filepath.Join(root, "Defects4J")
	require.NoError(t, os.MkdirAll(filepath.Join(d4jDir, "Lang_1"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(d4jDir, "Chart_3"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(d4jDir, "notes"), 0o755))
	// A matching name that is a file must not count.
	require.NoError(t, os.WriteFile(filepath.Join(d4jDir, "Math_9"), []byte("x"), 0o644))

	rule, err := RuleFor(Defects4J, refset.Sets{})
	require.NoError(t, err)

	cands, err := Candidates(root, Defects4J, rule)
	require.NoError(t, err)

	require.Len(t, cands, 2)
	assert.Equal(t, "Chart_3", cands[0].Name)
	assert.Equal(t, "Lang_1", cands[1].Name)
	assert.Equal(t, Defects4J, cands[0].Dataset)
	assert.Equal(t, filepath.Join(d4jDir, "Chart_3"), cands[0].Path)
}

func TestCandidatesMissingDir(t *testing.T) {
	rule, err := RuleFor(Bears, refset.Sets{})
	require.NoError(t, err)

	_, err = Candidates(t.TempDir(), Bears, rule)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list")
}

func TestCandidatesMemberRule(t *testing.T) {
	root := t.TempDir()
	qbDir := filepath.Join(root, "QuixBugs")
	require.NoError(t, os.MkdirAll(filepath.Join(qbDir, "quicksort"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(qbDir, "unlisted"), 0o755))

	refs := refset.Sets{QuixBugs: refset.Set{"quicksort": {}}}
	rule, err := RuleFor(QuixBugs, refs)
	require.NoError(t, err)

	cands, err := Candidates(root, QuixBugs, rule)
	require.NoError(t, err)

	require.Len(t, cands, 1)
	assert.Equal(t, "quicksort", cands[0].Name)
}
