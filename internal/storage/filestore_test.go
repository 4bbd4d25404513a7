package storage

import (
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/actionmenu/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

// seedState builds a small graph touching every collection: an entry with
// an accepted goal suggestion (promoted) and a pending habit suggestion.
func seedState(t *testing.T) *domain.State {
	t.Helper()
	s := domain.NewState()

	require.NoError(t, s.AddJournalEntry(&domain.JournalEntry{
		ID:        "e1",
		Body:      "I want to learn Spanish. Stretch every morning.",
		Mood:      "calm",
		Tags:      []string{"tired"},
		CreatedAt: t0,
	}))
	added, err := s.AddSuggestions("e1", []domain.Suggestion{
		{
			ID:             "s1",
			Span:           "I want to learn Spanish",
			Classification: domain.ClassGoal,
			Confidence:     0.8,
			Proposed:       domain.ProposedFields{Title: "learn Spanish", Category: "learning", DueHint: "next year"},
		},
		{
			ID:             "s2",
			Span:           "Stretch every morning",
			Offset:         25,
			Classification: domain.ClassHabit,
			Confidence:     0.625,
			Proposed:       domain.ProposedFields{Title: "Stretch every morning", Category: "health", Frequency: domain.CadenceDaily},
		},
	}, t0)
	require.NoError(t, err)
	require.NoError(t, added[0].Accept(t0.Add(time.Minute)))

	g, err := domain.NewGoal(domain.GoalFields{Title: "learn Spanish", Category: "learning", Measurable: "pass B1"}, t0)
	require.NoError(t, err)
	g.ID = "g1"
	g.OriginSuggestionID = "s1"
	require.NoError(t, s.AddGoal(g))

	h, err := domain.NewHabit(domain.HabitFields{Title: "Stretch", Anchor: "after coffee", LinkedGoalID: "g1"}, t0)
	require.NoError(t, err)
	h.ID = "h1"
	require.NoError(t, s.AddHabit(h))

	q, err := domain.NewQuickAction("pay rent", domain.StageToday, t0)
	require.NoError(t, err)
	q.ID = "q1"
	require.NoError(t, s.AddQuickAction(q))

	require.NoError(t, s.AppendWorkSession(&domain.WorkSession{
		ID:         "w1",
		LinkedID:   "g1",
		LinkedKind: domain.LinkGoal,
		Activity:   "lesson",
		StartedAt:  t0,
		Duration:   45 * time.Minute,
		FlowBefore: 2,
		FlowAfter:  4,
		Note:       "good",
	}))
	s.SetReflections(domain.Reflections{Values: "curiosity", Energy: "mornings"}, t0)
	return s
}

func newTestFileStore(t *testing.T) *FileStore {
	t.Helper()
	fs := NewFileStore(filepath.Join(t.TempDir(), "nested", "state.json"))
	fs.now = func() time.Time { return t0 }
	return fs
}

func dirEntries(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func TestFileStore_LoadMissingFileIsEmptyState(t *testing.T) {
	fs := newTestFileStore(t)

	res, err := fs.Load(context.Background(), LoadOptions{})
	require.NoError(t, err)
	require.NotNil(t, res.State)
	assert.Empty(t, res.State.Goals)
	assert.Empty(t, res.State.JournalEntries)
	assert.Zero(t, res.FromVersion)
	assert.False(t, res.Migrated)
	assert.NoError(t, res.State.Validate())
}

func TestFileStore_RoundTrip(t *testing.T) {
	fs := newTestFileStore(t)
	want := seedState(t)

	require.NoError(t, fs.Save(context.Background(), want))

	res, err := fs.Load(context.Background(), LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, res.FromVersion)
	assert.False(t, res.Migrated)
	assert.Empty(t, res.Repairs)
	assert.Equal(t, want, res.State)
}

func TestFileStore_RoundTripEmptyListsAndBlankCategory(t *testing.T) {
	fs := newTestFileStore(t)
	want := domain.NewState()
	require.NoError(t, want.AddJournalEntry(&domain.JournalEntry{
		ID:            "e1",
		Body:          "nothing to act on",
		Tags:          []string{},
		SuggestionIDs: []string{},
		CreatedAt:     t0,
	}))
	require.NoError(t, want.AddGoal(&domain.Goal{
		ID:        "g1",
		Title:     "rest",
		Horizon:   domain.HorizonThisWeek,
		Status:    domain.GoalActive,
		CreatedAt: t0,
		UpdatedAt: t0,
	}))

	require.NoError(t, fs.Save(context.Background(), want))
	res, err := fs.Load(context.Background(), LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, want, res.State)
}

func TestFileStore_DocumentShape(t *testing.T) {
	fs := newTestFileStore(t)
	require.NoError(t, fs.Save(context.Background(), seedState(t)))

	data, err := os.ReadFile(fs.Path())
	require.NoError(t, err)
	raw := string(data)
	assert.Contains(t, raw, `"schemaVersion": 2`)
	assert.Contains(t, raw, `"savedAt": "2025-06-15T10:00:00Z"`)
	assert.Contains(t, raw, `"originSuggestionId": "s1"`)
	assert.Contains(t, raw, `"durationSeconds": 2700`)
	assert.Contains(t, raw, `"suggestionIds": [`)
}

func TestFileStore_SaveOverwritesAndLeavesNoTempFiles(t *testing.T) {
	fs := newTestFileStore(t)
	ctx := context.Background()

	s := seedState(t)
	require.NoError(t, fs.Save(ctx, s))
	s.Reflections.Values = "craft"
	require.NoError(t, fs.Save(ctx, s))

	res, err := fs.Load(ctx, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "craft", res.State.Reflections.Values)
	assert.Equal(t, []string{"state.json"}, dirEntries(t, filepath.Dir(fs.Path())))
}

func TestFileStore_FailedWriteKeepsPreviousDocument(t *testing.T) {
	fs := newTestFileStore(t)
	ctx := context.Background()

	before := seedState(t)
	require.NoError(t, fs.Save(ctx, before))

	fs.write = func(w io.Writer, data []byte) error {
		// Half the document lands before the device fails.
		_, _ = w.Write(data[:len(data)/2])
		return errors.New("disk full")
	}
	after := seedState(t)
	after.Reflections.Values = "changed"
	err := fs.Save(ctx, after)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorageIO)
	assert.Contains(t, err.Error(), "disk full")

	res, err := fs.Load(ctx, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, before, res.State)
	assert.Equal(t, []string{"state.json"}, dirEntries(t, filepath.Dir(fs.Path())), "temp file removed")
}

func TestFileStore_FailedRenameKeepsPreviousDocument(t *testing.T) {
	fs := newTestFileStore(t)
	ctx := context.Background()

	before := seedState(t)
	require.NoError(t, fs.Save(ctx, before))

	fs.rename = func(string, string) error { return errors.New("cross-device link") }
	after := seedState(t)
	after.Goals[0].Title = "learn Portuguese"
	err := fs.Save(ctx, after)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorageIO)

	var se *domain.StorageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, "rename", se.Op)

	res, err := fs.Load(ctx, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "learn Spanish", res.State.Goals[0].Title)
	assert.Equal(t, []string{"state.json"}, dirEntries(t, filepath.Dir(fs.Path())))
}

func TestFileStore_CanceledSaveDoesNotReplace(t *testing.T) {
	fs := newTestFileStore(t)
	require.NoError(t, fs.Save(context.Background(), seedState(t)))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	changed := seedState(t)
	changed.Reflections.Values = "changed"
	err := fs.Save(ctx, changed)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)

	res, err := fs.Load(context.Background(), LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "curiosity", res.State.Reflections.Values)
}

func TestFileStore_SaveRejectsInvalidState(t *testing.T) {
	fs := newTestFileStore(t)
	s := seedState(t)
	s.Habits[0].LinkedGoalID = "missing"

	err := fs.Save(context.Background(), s)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrReferentialIntegrity)
	_, statErr := os.Stat(fs.Path())
	assert.True(t, os.IsNotExist(statErr), "nothing written")
}

func TestFileStore_CorruptFile(t *testing.T) {
	fs := newTestFileStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(fs.Path()), 0o755))
	require.NoError(t, os.WriteFile(fs.Path(), []byte("{not: valid}"), 0o644))

	_, err := fs.Load(context.Background(), LoadOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrStorageIO)
	assert.NotErrorIs(t, err, domain.ErrUnsupportedSchema)
}
