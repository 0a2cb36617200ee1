package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claudeyj/benchvet/internal/audit"
)

func execChecks(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewChecksCommand()
	out := new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestChecksJSON(t *testing.T) {
	out, err := execChecks(t, "--format", "json")
	require.NoError(t, err)

	var got ChecksJSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 15, got.Count)
	require.Len(t, got.Checks, 15)
	assert.Equal(t, audit.CheckDatasetFolder, got.Checks[0].ID)
	assert.Equal(t, audit.CheckCoveragePatchedAll, got.Checks[14].ID)
}

func TestChecksGroupFilter(t *testing.T) {
	out, err := execChecks(t, "--group", "coverage", "--format", "json")
	require.NoError(t, err)

	var got ChecksJSONOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, 7, got.Count)
	for _, chk := range got.Checks {
		assert.Equal(t, audit.GroupCoverage, chk.Group)
	}
}

func TestChecksUnknownGroup(t *testing.T) {
	_, err := execChecks(t, "--group", "bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown check group "bogus"`)
	assert.Contains(t, err.Error(), "dataset, layout, tests, coverage")
}

func TestChecksMarkdownGroupHeaders(t *testing.T) {
	out, err := execChecks(t)
	require.NoError(t, err)

	assert.Contains(t, out, "# Structural Checks")
	for _, header := range []string{"## Dataset", "## Layout", "## Tests", "## Coverage"} {
		assert.Contains(t, out, header)
	}
	assert.Contains(t, out, "- **DS01** dataset-folder")
}
