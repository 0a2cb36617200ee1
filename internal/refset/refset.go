// Package refset loads the reference lists that constrain candidate
// names in the QuixBugs and BugSwarm datasets.
package refset

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Set holds the names a dataset accepts as valid candidates.
type Set map[string]struct{}

// Contains reports whether name is a member of the set.
func (s Set) Contains(name string) bool {
	_, ok := s[name]
	return ok
}

// Len returns the number of members.
func (s Set) Len() int { return len(s) }

// Sets bundles the reference sets consumed by an audit run. Both sets
// are loaded once and read-only afterwards.
type Sets struct {
	QuixBugs Set
	BugSwarm Set
}

// LoadError describes a reference file that could not be read or parsed.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load reference file %s: %v", e.Path, e.Err)
}

func (e *LoadError) Unwrap() error { return e.Err }

// LoadList reads a newline-delimited name list such as QuixBugs.txt.
// A trailing newline does not produce an empty member; interior blank
// lines do. CRLF input is accepted.
func LoadList(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	set := make(Set)
	for _, line := range splitLines(string(data)) {
		set[line] = struct{}{}
	}
	return set, nil
}

// imageTagRecord is one entry of a BugSwarm export. Only the image tag
// matters here; artifact records carry many more fields.
type imageTagRecord struct {
	ImageTag *string `json:"image_tag"`
}

// LoadImageTags reads a BugSwarm artifact export such as Export.json
// and collects the image_tag of every record. Every record must carry
// the field.
func LoadImageTags(path string) (Set, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	var records []imageTagRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}
	set := make(Set, len(records))
	for i, rec := range records {
		if rec.ImageTag == nil {
			return nil, &LoadError{Path: path, Err: fmt.Errorf("record %d has no image_tag field", i)}
		}
		set[*rec.ImageTag] = struct{}{}
	}
	return set, nil
}

// Load reads both reference files and returns the combined sets.
func Load(listPath, jsonPath string) (Sets, error) {
	quixbugs, err := LoadList(listPath)
	if err != nil {
		return Sets{}, err
	}
	bugswarm, err := LoadImageTags(jsonPath)
	if err != nil {
		return Sets{}, err
	}
	return Sets{QuixBugs: quixbugs, BugSwarm: bugswarm}, nil
}

// splitLines splits on LF or CRLF. A final newline terminates the last
// entry rather than opening an empty one.
func splitLines(s string) []string {
	s = strings.ReplaceAll(s, "\r\n", "\n")
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
