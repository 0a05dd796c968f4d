// Package usage keeps a per-command log of what the bot was asked and how
// it answered. Recording is best-effort: a usage failure is logged and
// swallowed, it never changes the response the caller gets.
package usage

import (
	"database/sql"

	"go.uber.org/zap"
)

// Outcomes recorded per event.
const (
	OutcomeHit      = "hit"
	OutcomeMiss     = "miss"
	OutcomeDenied   = "denied"
	OutcomeError    = "error"
	OutcomeAccepted = "accepted"
)

// Event is one logged command invocation.
type Event struct {
	Command  string
	Query    string
	Outcome  string
	CallerID string
}

// Recorder writes usage events. A nil *Recorder is valid and records
// nothing, so wiring usage in is optional.
type Recorder struct {
	db     *sql.DB
	logger *zap.Logger
}

func NewRecorder(db *sql.DB, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{db: db, logger: logger}
}

// Record inserts one event. Errors are logged, never returned.
func (r *Recorder) Record(ev Event) {
	if r == nil || r.db == nil {
		return
	}
	_, err := r.db.Exec(
		`INSERT INTO events (command, query, outcome, caller_id) VALUES (?, ?, ?, ?)`,
		ev.Command, ev.Query, ev.Outcome, ev.CallerID,
	)
	if err != nil {
		r.logger.Warn("usage record failed",
			zap.String("command", ev.Command),
			zap.Error(err))
	}
}

// CommandCounts returns how many events were recorded per command.
func (r *Recorder) CommandCounts() (map[string]int64, error) {
	rows, err := r.db.Query(`SELECT command, COUNT(*) FROM events GROUP BY command ORDER BY command`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var command string
		var n int64
		if err := rows.Scan(&command, &n); err != nil {
			return nil, err
		}
		counts[command] = n
	}
	return counts, rows.Err()
}

// MissedQueries returns the most-missed lookup queries, useful for
// spotting names the catalogs do not cover.
func (r *Recorder) MissedQueries(limit int) ([]string, error) {
	rows, err := r.db.Query(
		`SELECT query FROM events WHERE outcome = ? AND query != ''
		 GROUP BY query ORDER BY COUNT(*) DESC, query LIMIT ?`,
		OutcomeMiss, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var queries []string
	for rows.Next() {
		var q string
		if err := rows.Scan(&q); err != nil {
			return nil, err
		}
		queries = append(queries, q)
	}
	return queries, rows.Err()
}
