package history

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sweatcue/coach/internal/session"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func sampleSummary(id string, completed time.Time) session.SessionSummary {
	started := completed.Add(-5 * time.Minute)
	return session.SessionSummary{
		SessionID:          id,
		PlanName:           "Morning Kickstart",
		StartedAt:          &started,
		CompletedAt:        completed,
		Duration:           5 * time.Minute,
		ExercisesCompleted: 5,
		ExercisesTotal:     5,
		FinalIntensity:     session.IntensityModerate,
		Aborted:            false,
	}
}

func TestStore_RecordAndReadBack(t *testing.T) {
	store := openTestStore(t)
	want := sampleSummary("s-1", time.Date(2025, 7, 1, 6, 30, 0, 0, time.UTC))

	require.NoError(t, store.Record(want))

	got, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "s-1", got[0].SessionID)
	assert.Equal(t, "Morning Kickstart", got[0].PlanName)
	assert.Equal(t, want.CompletedAt.Unix(), got[0].CompletedAt.Unix())
	require.NotNil(t, got[0].StartedAt)
	assert.Equal(t, want.StartedAt.Unix(), got[0].StartedAt.Unix())
	assert.Equal(t, 5*time.Minute, got[0].Duration)
	assert.Equal(t, 5, got[0].ExercisesCompleted)
	assert.Equal(t, 5, got[0].ExercisesTotal)
	assert.Equal(t, session.IntensityModerate, got[0].FinalIntensity)
	assert.False(t, got[0].Aborted)
}

func TestStore_AbortedSessionWithoutStart(t *testing.T) {
	store := openTestStore(t)
	summary := session.SessionSummary{
		SessionID:      "s-aborted",
		PlanName:       "HIIT Blast",
		CompletedAt:    time.Date(2025, 7, 1, 7, 0, 0, 0, time.UTC),
		FinalIntensity: session.IntensityVigorous,
		Aborted:        true,
	}

	require.NoError(t, store.Record(summary))

	got, err := store.Recent(1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Nil(t, got[0].StartedAt)
	assert.Equal(t, time.Duration(0), got[0].Duration)
	assert.True(t, got[0].Aborted)
}

func TestStore_RecentOrderAndLimit(t *testing.T) {
	store := openTestStore(t)
	base := time.Date(2025, 7, 1, 6, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		s := sampleSummary(string(rune('a'+i)), base.Add(time.Duration(i)*time.Hour))
		require.NoError(t, store.Record(s))
	}

	got, err := store.Recent(3)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "e", got[0].SessionID, "most recent first")
	assert.Equal(t, "d", got[1].SessionID)
	assert.Equal(t, "c", got[2].SessionID)
}

func TestStore_RecordReplacesSameSession(t *testing.T) {
	store := openTestStore(t)
	s := sampleSummary("dup", time.Date(2025, 7, 1, 6, 0, 0, 0, time.UTC))
	require.NoError(t, store.Record(s))
	s.ExercisesCompleted = 3
	require.NoError(t, store.Record(s))

	got, err := store.Recent(10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 3, got[0].ExercisesCompleted)
}

func TestStore_RecentDefaultLimit(t *testing.T) {
	store := openTestStore(t)
	got, err := store.Recent(0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestOpen_CreatesNestedDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "deep", "nested")

	store, err := Open(dir)

	require.NoError(t, err)
	require.NoError(t, store.Close())
}

func TestStore_ReopenSeesExistingRows(t *testing.T) {
	dir := t.TempDir()
	store, err := Open(dir)
	require.NoError(t, err)
	require.NoError(t, store.Record(sampleSummary("persisted", time.Now())))
	require.NoError(t, store.Close())

	reopened, err := Open(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, err := reopened.Recent(10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "persisted", got[0].SessionID)
}
