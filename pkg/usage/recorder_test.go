package usage

import (
	"database/sql"
	"testing"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// Single connection so every query sees the same in-memory DB.
	db.SetMaxOpenConns(1)
	require.NoError(t, InitDB(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func TestRecordAndCommandCounts(t *testing.T) {
	r := NewRecorder(setupTestDB(t), nil)

	r.Record(Event{Command: "specifier", Query: "Transient", Outcome: OutcomeHit, CallerID: "u1"})
	r.Record(Event{Command: "specifier", Query: "Bogus", Outcome: OutcomeMiss, CallerID: "u1"})
	r.Record(Event{Command: "dad_joke", Outcome: OutcomeHit, CallerID: "u2"})

	counts, err := r.CommandCounts()
	require.NoError(t, err)
	assert.Equal(t, map[string]int64{"specifier": 2, "dad_joke": 1}, counts)
}

func TestMissedQueriesOrderedByFrequency(t *testing.T) {
	r := NewRecorder(setupTestDB(t), nil)

	for i := 0; i < 3; i++ {
		r.Record(Event{Command: "specifier", Query: "Fnord", Outcome: OutcomeMiss})
	}
	r.Record(Event{Command: "specifier", Query: "Blorp", Outcome: OutcomeMiss})
	r.Record(Event{Command: "specifier", Query: "Transient", Outcome: OutcomeHit})

	missed, err := r.MissedQueries(10)
	require.NoError(t, err)
	assert.Equal(t, []string{"Fnord", "Blorp"}, missed)
}

func TestNilRecorderIsSafe(t *testing.T) {
	var r *Recorder
	// Must not panic; usage is best-effort and optional.
	r.Record(Event{Command: "specifier", Outcome: OutcomeHit})
}

func TestRecordOnClosedDBDoesNotPanic(t *testing.T) {
	db := setupTestDB(t)
	r := NewRecorder(db, nil)
	db.Close()
	r.Record(Event{Command: "specifier", Outcome: OutcomeHit})
}
