// Package history persists finished-session summaries to a local SQLite
// database.
package history

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"github.com/sweatcue/coach/internal/session"
)

// Store keeps session summaries in dir/history.db
type Store struct {
	db *sql.DB
}

var _ session.SummaryRecorder = (*Store)(nil)

// Open opens (or creates) the history database under dir
func Open(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating history dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "history.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening history db: %w", err)
	}

	// Timestamps are stored as unix seconds; started_at is NULL when no
	// exercise ever began.
	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS session_summaries (
		id                  TEXT PRIMARY KEY,
		plan_name           TEXT NOT NULL,
		started_at          INTEGER,
		completed_at        INTEGER NOT NULL,
		duration_sec        INTEGER NOT NULL,
		exercises_completed INTEGER NOT NULL,
		exercises_total     INTEGER NOT NULL,
		final_intensity     INTEGER NOT NULL,
		aborted             INTEGER NOT NULL
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating history table: %w", err)
	}

	return &Store{db: db}, nil
}

// Record stores one summary, replacing any previous row for the same
// session
func (s *Store) Record(summary session.SessionSummary) error {
	var startedAt interface{}
	if summary.StartedAt != nil {
		startedAt = summary.StartedAt.Unix()
	}

	_, err := s.db.Exec(
		`INSERT OR REPLACE INTO session_summaries
		(id, plan_name, started_at, completed_at, duration_sec, exercises_completed, exercises_total, final_intensity, aborted)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		summary.SessionID,
		summary.PlanName,
		startedAt,
		summary.CompletedAt.Unix(),
		int64(summary.Duration/time.Second),
		summary.ExercisesCompleted,
		summary.ExercisesTotal,
		int(summary.FinalIntensity),
		summary.Aborted,
	)
	if err != nil {
		return fmt.Errorf("recording session %s: %w", summary.SessionID, err)
	}
	return nil
}

// Recent returns up to limit summaries, most recently completed first
func (s *Store) Recent(limit int) ([]session.SessionSummary, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(
		`SELECT id, plan_name, started_at, completed_at, duration_sec, exercises_completed, exercises_total, final_intensity, aborted
		FROM session_summaries ORDER BY completed_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var out []session.SessionSummary
	for rows.Next() {
		var (
			summary     session.SessionSummary
			startedAt   sql.NullInt64
			completedAt int64
			durationSec int64
			intensity   int
		)
		if err := rows.Scan(
			&summary.SessionID,
			&summary.PlanName,
			&startedAt,
			&completedAt,
			&durationSec,
			&summary.ExercisesCompleted,
			&summary.ExercisesTotal,
			&intensity,
			&summary.Aborted,
		); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		if startedAt.Valid {
			t := time.Unix(startedAt.Int64, 0)
			summary.StartedAt = &t
		}
		summary.CompletedAt = time.Unix(completedAt, 0)
		summary.Duration = time.Duration(durationSec) * time.Second
		summary.FinalIntensity = session.IntensityLevel(intensity)
		out = append(out, summary)
	}
	return out, rows.Err()
}

// Close closes the history database
func (s *Store) Close() error {
	return s.db.Close()
}
