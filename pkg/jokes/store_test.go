package jokes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "dad_jokes.yaml"))
}

func TestMissingFileIsEmptyStore(t *testing.T) {
	s := newTestStore(t)
	jokes, err := s.Load()
	require.NoError(t, err)
	assert.Empty(t, jokes)

	_, _, ok, err := s.GetRandom()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAddThenGetRoundTrip(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Add("x", "y"))

	answer, ok, err := s.GetByName("x")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "y", answer)
}

func TestAddDuplicateFailsAndKeepsFirstValue(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Add("x", "y"))

	err := s.Add("x", "z")
	assert.ErrorIs(t, err, ErrAlreadyExists)

	answer, ok, err := s.GetByName("x")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "y", answer, "first write wins")
}

func TestDeleteRemovesEntry(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Add("x", "y"))
	require.NoError(t, s.Delete("x"))

	_, ok, err := s.GetByName("x")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestDeleteAbsentFails(t *testing.T) {
	s := newTestStore(t)
	assert.ErrorIs(t, s.Delete("nope"), ErrNotFound)
}

func TestGetRandomSingleEntry(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Add("only", "joke"))

	for i := 0; i < 5; i++ {
		name, answer, ok, err := s.GetRandom()
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, "only", name)
		assert.Equal(t, "joke", answer)
	}
}

func TestGetRandomCoversAllEntries(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Add("a", "1"))
	require.NoError(t, s.Add("b", "2"))

	seen := map[string]bool{}
	for i := 0; i < 200 && len(seen) < 2; i++ {
		name, _, ok, err := s.GetRandom()
		require.NoError(t, err)
		require.True(t, ok)
		seen[name] = true
	}
	assert.Len(t, seen, 2, "both entries should eventually be drawn")
}

func TestStateSurvivesReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dad_jokes.yaml")
	require.NoError(t, NewStore(path).Add("x", "y"))

	answer, ok, err := NewStore(path).GetByName("x")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "y", answer)
}

func TestCorruptFileSurfacesError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dad_jokes.yaml")
	require.NoError(t, os.WriteFile(path, []byte("- not\n- a\n- mapping\n"), 0o644))

	_, err := NewStore(path).Load()
	assert.Error(t, err)
}
