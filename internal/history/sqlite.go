package history

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver (pure Go)

	"github.com/claudeyj/benchvet/internal/audit"
)

// SQLiteStore persists audit runs using SQLite.
type SQLiteStore struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// NewSQLiteStore creates a new store instance.
func NewSQLiteStore(logger *slog.Logger) *SQLiteStore {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &SQLiteStore{logger: logger}
}

// Open opens a connection to the SQLite database.
// Use ":memory:" for an in-memory database.
func (s *SQLiteStore) Open(path string) error {
	// Enable foreign keys and WAL mode
	dsn := fmt.Sprintf("file:%s?_pragma=foreign_keys(1)&_pragma=journal_mode(WAL)", path)
	if path == ":memory:" {
		dsn = "file::memory:?_pragma=foreign_keys(1)"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return fmt.Errorf("failed to open state database: %w", err)
	}
	if path == ":memory:" {
		// A second pool connection would see a different empty database.
		db.SetMaxOpenConns(1)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		db.Close()
		return fmt.Errorf("failed to connect to state database: %w", err)
	}

	s.db = db
	s.path = path
	return nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun persists one audit outcome together with its findings.
func (s *SQLiteStore) RecordRun(repoPath string, rep *audit.Report, startedAt, completedAt time.Time) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("store not opened")
	}

	status := StatusPass
	if !rep.Passed() {
		status = StatusFail
	}
	completed := completedAt.UTC()
	run := &Run{
		ID:          uuid.New().String(),
		RepoPath:    repoPath,
		Status:      status,
		Findings:    len(rep.Findings),
		Halted:      rep.Halted,
		StartedAt:   startedAt.UTC(),
		CompletedAt: &completed,
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.Exec(
		`INSERT INTO runs (id, repo_path, status, findings, halted, started_at, completed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.RepoPath, run.Status, run.Findings, run.Halted, run.StartedAt, run.CompletedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to insert run: %w", err)
	}

	for i, f := range rep.Findings {
		_, err = tx.Exec(
			`INSERT INTO findings (run_id, seq, check_id, dataset, candidate, message)
			 VALUES (?, ?, ?, ?, ?, ?)`,
			run.ID, i, f.Check, f.Dataset, f.Candidate, f.Message,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to insert finding: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.Debug("recorded audit run", "id", run.ID, "status", run.Status, "findings", run.Findings)
	return run, nil
}

// GetRun retrieves a run by ID. A unique ID prefix is accepted.
func (s *SQLiteStore) GetRun(id string) (*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("store not opened")
	}

	rows, err := s.db.Query(
		`SELECT id, repo_path, status, findings, halted, started_at, completed_at
		 FROM runs WHERE id LIKE ?`,
		id+"%",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}
	defer rows.Close()

	var matches []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("run %s not found", id)
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("run id %s is ambiguous (%d matches)", id, len(matches))
	}
}

// ListRuns returns the most recent runs, newest first.
func (s *SQLiteStore) ListRuns(limit int) ([]*Run, error) {
	if s.db == nil {
		return nil, fmt.Errorf("store not opened")
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	rows, err := s.db.Query(
		`SELECT id, repo_path, status, findings, halted, started_at, completed_at
		 FROM runs ORDER BY started_at DESC LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

// ListFindings returns the findings of a run in report order.
func (s *SQLiteStore) ListFindings(runID string) ([]*Finding, error) {
	if s.db == nil {
		return nil, fmt.Errorf("store not opened")
	}

	rows, err := s.db.Query(
		`SELECT run_id, seq, check_id, dataset, candidate, message
		 FROM findings WHERE run_id = ? ORDER BY seq`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list findings: %w", err)
	}
	defer rows.Close()

	var findings []*Finding
	for rows.Next() {
		f := &Finding{}
		if err := rows.Scan(&f.RunID, &f.Seq, &f.Check, &f.Dataset, &f.Candidate, &f.Message); err != nil {
			return nil, fmt.Errorf("failed to scan finding: %w", err)
		}
		findings = append(findings, f)
	}

	return findings, rows.Err()
}

// scanRun reads one runs row into a Run.
func scanRun(rows *sql.Rows) (*Run, error) {
	run := &Run{}
	var completedAt sql.NullTime

	err := rows.Scan(&run.ID, &run.RepoPath, &run.Status, &run.Findings, &run.Halted, &run.StartedAt, &completedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan run: %w", err)
	}

	if completedAt.Valid {
		run.CompletedAt = &completedAt.Time
	}

	return run, nil
}
