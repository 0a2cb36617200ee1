package history

import (
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/claudeyj/benchvet/internal/audit"
)

// newMockStore builds a store over a sqlmock connection so write
// failures can be injected.
func newMockStore(t *testing.T) (*SQLiteStore, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := NewSQLiteStore(nil)
	store.db = db
	return store, mock
}

func failReport() *audit.Report {
	return &audit.Report{
		Findings: []audit.Finding{
			{Check: audit.CheckDatasetFolder, Dataset: "QuixBugs", Message: "No QuixBugs folder"},
		},
		Halted: true,
	}
}

func TestSQLiteStore_RecordRun_WriteErrors(t *testing.T) {
	now := time.Now()

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		errMsg    string
	}{
		{
			name: "begin fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin().WillReturnError(assert.AnError)
			},
			errMsg: "failed to begin transaction",
		},
		{
			name: "run insert fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO runs").WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			errMsg: "failed to insert run",
		},
		{
			name: "finding insert fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO runs").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO findings").WillReturnError(assert.AnError)
				mock.ExpectRollback()
			},
			errMsg: "failed to insert finding",
		},
		{
			name: "commit fails",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectBegin()
				mock.ExpectExec("INSERT INTO runs").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectExec("INSERT INTO findings").WillReturnResult(sqlmock.NewResult(0, 1))
				mock.ExpectCommit().WillReturnError(assert.AnError)
			},
			errMsg: "failed to commit transaction",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			store, mock := newMockStore(t)
			tt.setupMock(mock)

			_, err := store.RecordRun("/repo", failReport(), now, now)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLiteStore_ListRuns_QueryError(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT (.+) FROM runs").WillReturnError(assert.AnError)

	_, err := store.ListRuns(5)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list runs")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_ListFindings_QueryError(t *testing.T) {
	store, mock := newMockStore(t)
	mock.ExpectQuery("SELECT (.+) FROM findings").WillReturnError(assert.AnError)

	_, err := store.ListFindings("some-run")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to list findings")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLiteStore_GetRun_ScanError(t *testing.T) {
	store, mock := newMockStore(t)
	rows := sqlmock.NewRows([]string{"id", "repo_path", "status", "findings", "halted", "started_at", "completed_at"}).
		AddRow("abc", "/repo", StatusPass, "not-a-number", false, time.Now(), nil)
	mock.ExpectQuery("SELECT (.+) FROM runs").WillReturnRows(rows)

	_, err := store.GetRun("abc")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to scan run")
}
