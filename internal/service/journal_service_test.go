package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/actionmenu/internal/app"
	"github.com/alexanderramin/actionmenu/internal/domain"
	"github.com/alexanderramin/actionmenu/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRecordJournal_StoresEntryAndSuggestions(t *testing.T) {
	store := testutil.NewMemStore(nil)
	svc := newServices(t, store)

	res, err := svc.journal.RecordJournal(context.Background(), app.RecordJournalRequest{
		Body: "Feeling stuck today. Remember to call the dentist. I should meditate every morning.",
		Mood: " low ",
	})
	require.NoError(t, err)

	e := res.Entry
	assert.NotEmpty(t, e.ID)
	assert.Equal(t, "low", e.Mood)
	assert.Equal(t, []string{"stuck"}, e.Tags)
	require.Len(t, res.Suggestions, 2)
	assert.Equal(t, []string{res.Suggestions[0].ID, res.Suggestions[1].ID}, e.SuggestionIDs)
	for _, sg := range res.Suggestions {
		assert.Equal(t, e.ID, sg.EntryID)
		assert.Equal(t, domain.SuggestionPending, sg.Status)
		assert.False(t, sg.CreatedAt.IsZero())
	}

	saved := store.Saved()
	require.NotNil(t, saved)
	require.Len(t, saved.JournalEntries, 1)
	assert.Len(t, saved.Suggestions, 2)
	assert.NoError(t, saved.Validate())
}

func TestRecordJournal_SkipExtraction(t *testing.T) {
	svc := newServices(t, testutil.NewMemStore(nil))

	res, err := svc.journal.RecordJournal(context.Background(), app.RecordJournalRequest{
		Body:           "I want to learn Spanish",
		SkipExtraction: true,
	})
	require.NoError(t, err)
	assert.Empty(t, res.Suggestions)
	assert.Empty(t, res.Entry.SuggestionIDs)
}

func TestRecordJournal_NoTriggersStillRecordsEntry(t *testing.T) {
	svc := newServices(t, testutil.NewMemStore(nil))

	res, err := svc.journal.RecordJournal(context.Background(), app.RecordJournalRequest{Body: "A quiet, ordinary afternoon."})
	require.NoError(t, err)
	assert.NotEmpty(t, res.Entry.ID)
	assert.Empty(t, res.Suggestions)
}

func TestRecordJournal_BlankBody(t *testing.T) {
	store := testutil.NewMemStore(nil)
	svc := newServices(t, store)

	_, err := svc.journal.RecordJournal(context.Background(), app.RecordJournalRequest{Body: "  \n "})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Zero(t, store.Saves())
}

func TestJournal_ListAndGet(t *testing.T) {
	svc := newServices(t, testutil.NewMemStore(nil))
	ctx := context.Background()

	svc.record(t, "I want to learn Spanish")
	svc.record(t, "So tired. Remember to buy stamps.")
	svc.record(t, "Nothing much")

	all, err := svc.journal.List(ctx, app.JournalFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "Nothing much", all[0].Body, "newest first")

	limited, err := svc.journal.List(ctx, app.JournalFilter{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, limited, 2)

	tired, err := svc.journal.List(ctx, app.JournalFilter{Tag: "TIRED"})
	require.NoError(t, err)
	require.Len(t, tired, 1)

	view, err := svc.journal.Get(ctx, tired[0].ID)
	require.NoError(t, err)
	require.Len(t, view.Suggestions, 1)
	assert.Equal(t, "buy stamps", view.Suggestions[0].Proposed.Title)

	_, err = svc.journal.Get(ctx, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestJournal_ListFiltersSeededTags(t *testing.T) {
	s := testutil.NewTestState()
	testutil.SeedEntry(t, s, "Long day at the desk", nil,
		testutil.WithTags("work", "tired"), testutil.WithCreatedAt(testutil.FixedNow.Add(-48*time.Hour)))
	testutil.SeedEntry(t, s, "Walked by the river", nil, testutil.WithTags("outside"))
	testutil.SeedEntry(t, s, "Sprint review went fine", nil,
		testutil.WithTags("work"), testutil.WithCreatedAt(testutil.FixedNow.Add(time.Hour)))
	svc := newServices(t, testutil.NewMemStore(s))
	ctx := context.Background()

	work, err := svc.journal.List(ctx, app.JournalFilter{Tag: "work"})
	require.NoError(t, err)
	require.Len(t, work, 2)
	assert.Equal(t, "Sprint review went fine", work[0].Body)
	assert.Equal(t, "Long day at the desk", work[1].Body)

	one, err := svc.journal.List(ctx, app.JournalFilter{Tag: "work", Limit: 1})
	require.NoError(t, err)
	require.Len(t, one, 1)

	none, err := svc.journal.List(ctx, app.JournalFilter{Tag: "travel"})
	require.NoError(t, err)
	assert.Empty(t, none)
}
