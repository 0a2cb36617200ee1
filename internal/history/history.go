// Package history records audit runs in a SQLite state database so
// past validation outcomes can be listed and inspected.
package history

import "time"

// Run status values.
const (
	StatusPass = "pass"
	StatusFail = "fail"
)

// DefaultListLimit is the number of runs ListRuns returns when no
// limit is given.
const DefaultListLimit = 10

// Run is one recorded audit of a repository.
type Run struct {
	ID          string     `json:"id"`
	RepoPath    string     `json:"repo_path"`
	Status      string     `json:"status"`
	Findings    int        `json:"findings"`
	Halted      bool       `json:"halted"`
	StartedAt   time.Time  `json:"started_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Finding is one diagnostic captured by a recorded run, in report order.
type Finding struct {
	RunID     string `json:"run_id"`
	Seq       int    `json:"seq"`
	Check     string `json:"check"`
	Dataset   string `json:"dataset"`
	Candidate string `json:"candidate,omitempty"`
	Message   string `json:"message"`
}
