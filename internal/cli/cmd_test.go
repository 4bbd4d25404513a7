package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/actionmenu/internal/app"
	"github.com/alexanderramin/actionmenu/internal/domain"
	"github.com/alexanderramin/actionmenu/internal/extraction"
	"github.com/alexanderramin/actionmenu/internal/service"
	"github.com/alexanderramin/actionmenu/internal/storage"
	"github.com/alexanderramin/actionmenu/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testApp wires a full App over a state file in a temp directory.
func testApp(t *testing.T) (*App, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	return appAt(t, path), path
}

// appAt wires a fresh App over path, as a new process would.
func appAt(t *testing.T, path string) *App {
	t.Helper()
	engine, err := extraction.NewEngine(extraction.Config{})
	require.NoError(t, err)

	uow := storage.NewStateUnitOfWork(storage.NewFileStore(path))
	journal := service.NewJournalService(engine, uow)
	suggestions := service.NewSuggestionService(engine, uow)
	sessions := service.NewSessionService(uow)

	return &App{
		Journal:     journal,
		Suggestions: suggestions,
		Entities:    service.NewEntityService(uow),
		Sessions:    sessions,
		Reflections: service.NewReflectionService(uow),
		State:       service.NewStateService(uow),

		RecordJournal:     journal,
		PromoteSuggestion: suggestions,
		LogSession:        sessions,

		IsInteractive: func() bool { return false },
		Now:           func() time.Time { return testutil.FixedNow },
	}
}

// executeCmd runs a cobra command and captures stdout/stderr.
func executeCmd(t *testing.T, a *App, args ...string) (string, error) {
	t.Helper()
	return executeCmdWithInput(t, a, "", args...)
}

func executeCmdWithInput(t *testing.T, a *App, stdin string, args ...string) (string, error) {
	t.Helper()
	root := NewRootCmd(a)
	buf := new(bytes.Buffer)
	root.SetOut(buf)
	root.SetErr(buf)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func pending(t *testing.T, a *App) []*domain.Suggestion {
	t.Helper()
	list, err := a.Suggestions.List(context.Background(), app.SuggestionFilter{Status: domain.SuggestionPending})
	require.NoError(t, err)
	return list
}

func TestJournalAdd_ExtractsSuggestions(t *testing.T) {
	a, _ := testApp(t)

	out, err := executeCmd(t, a, "journal", "add", "--mood", "hopeful",
		"Feeling stuck today. Remember to call the dentist. I should meditate every morning.")
	require.NoError(t, err)
	assert.Contains(t, out, "Recorded entry")
	assert.Contains(t, out, "call the dentist")
	assert.Contains(t, out, "meditate every morning")

	sugs := pending(t, a)
	require.Len(t, sugs, 2)
	assert.Equal(t, domain.ClassQuickAction, sugs[0].Classification)
	assert.Equal(t, domain.ClassHabit, sugs[1].Classification)

	entries, err := a.Journal.List(context.Background(), app.JournalFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "hopeful", entries[0].Mood)
}

func TestJournalAdd_ReadsPipedStdin(t *testing.T) {
	a, _ := testApp(t)

	out, err := executeCmdWithInput(t, a, "I want to learn Spanish\n", "journal", "add")
	require.NoError(t, err)
	assert.Contains(t, out, "learn Spanish")
	assert.Len(t, pending(t, a), 1)
}

func TestJournalAdd_NoExtract(t *testing.T) {
	a, _ := testApp(t)

	_, err := executeCmd(t, a, "journal", "add", "--no-extract", "I want to learn Spanish")
	require.NoError(t, err)
	assert.Empty(t, pending(t, a))
}

func TestJournalAdd_BlankBodyFails(t *testing.T) {
	a, _ := testApp(t)

	_, err := executeCmdWithInput(t, a, "   \n", "journal", "add")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestJournalListAndShow(t *testing.T) {
	a, _ := testApp(t)
	_, err := executeCmd(t, a, "journal", "add", "So tired. Remember to buy stamps.")
	require.NoError(t, err)
	_, err = executeCmd(t, a, "journal", "add", "A quiet afternoon.")
	require.NoError(t, err)

	out, err := executeCmd(t, a, "journal", "list", "--tag", "tired")
	require.NoError(t, err)
	assert.Contains(t, out, "buy stamps")
	assert.NotContains(t, out, "quiet afternoon")

	entries, err := a.Journal.List(context.Background(), app.JournalFilter{Tag: "tired"})
	require.NoError(t, err)
	require.Len(t, entries, 1)

	out, err = executeCmd(t, a, "journal", "show", entries[0].ID)
	require.NoError(t, err)
	assert.Contains(t, out, "So tired. Remember to buy stamps.")
	assert.Contains(t, out, "buy stamps")
}

func TestJournalExport(t *testing.T) {
	a, _ := testApp(t)
	_, err := executeCmd(t, a, "journal", "add", "I want to learn Spanish")
	require.NoError(t, err)

	dir := filepath.Join(t.TempDir(), "notes")
	out, err := executeCmd(t, a, "journal", "export", "--dir", dir)
	require.NoError(t, err)
	assert.Contains(t, out, "Exported 1 entries")

	files, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	data, err := os.ReadFile(filepath.Join(dir, files[0].Name()))
	require.NoError(t, err)
	assert.Contains(t, string(data), "classification: goal")
	assert.Contains(t, string(data), "I want to learn Spanish")
}

func TestSuggest_PreviewStoresNothing(t *testing.T) {
	a, path := testApp(t)

	out, err := executeCmd(t, a, "suggest", "I want to run a marathon next year")
	require.NoError(t, err)
	assert.Contains(t, out, "run a marathon next year")
	assert.Contains(t, out, "next year")

	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}

func TestSuggestionAccept_GoalWithOverrides(t *testing.T) {
	a, path := testApp(t)
	_, err := executeCmd(t, a, "journal", "add", "I want to run a marathon next year")
	require.NoError(t, err)
	sg := pending(t, a)[0]

	out, err := executeCmd(t, a, "suggestion", "accept", sg.ID,
		"--title", "Run the Berlin marathon", "--measurable", "finish under 4h", "--horizon", "this_month")
	require.NoError(t, err)
	assert.Contains(t, out, "Created goal")
	assert.Contains(t, out, "Run the Berlin marathon")

	// A new process sees the promoted goal.
	fresh := appAt(t, path)
	goals, err := fresh.Entities.ListGoals(context.Background(), false)
	require.NoError(t, err)
	require.Len(t, goals, 1)
	assert.Equal(t, "Run the Berlin marathon", goals[0].Title)
	assert.Equal(t, "finish under 4h", goals[0].Measurable)
	assert.Equal(t, domain.HorizonThisMonth, goals[0].Horizon)
	assert.Equal(t, sg.ID, goals[0].OriginSuggestionID)
	assert.Empty(t, pending(t, fresh))
}

func TestSuggestionAccept_InapplicableFlagIsRejected(t *testing.T) {
	a, _ := testApp(t)
	_, err := executeCmd(t, a, "journal", "add", "Remember to buy stamps")
	require.NoError(t, err)
	sg := pending(t, a)[0]

	_, err = executeCmd(t, a, "suggestion", "accept", sg.ID, "--cadence", "weekly")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Len(t, pending(t, a), 1, "suggestion stays pending")
}

func TestSuggestionAccept_ByPrefix(t *testing.T) {
	a, _ := testApp(t)
	_, err := executeCmd(t, a, "journal", "add", "Remember to buy stamps today")
	require.NoError(t, err)
	sg := pending(t, a)[0]

	out, err := executeCmd(t, a, "suggestion", "accept", sg.ID[:8])
	require.NoError(t, err)
	assert.Contains(t, out, "Created quick_action")

	actions, err := a.Entities.ListQuickActions(context.Background(), domain.StageToday)
	require.NoError(t, err)
	require.Len(t, actions, 1)
	assert.Equal(t, "buy stamps today", actions[0].Title)
}

func TestSuggestionReject_TwiceIsNoop(t *testing.T) {
	a, _ := testApp(t)
	_, err := executeCmd(t, a, "journal", "add", "I want to learn Spanish")
	require.NoError(t, err)
	sg := pending(t, a)[0]

	out, err := executeCmd(t, a, "suggestion", "reject", sg.ID)
	require.NoError(t, err)
	assert.Contains(t, out, "Rejected")

	_, err = executeCmd(t, a, "suggestion", "reject", sg.ID)
	require.NoError(t, err)

	_, err = executeCmd(t, a, "suggestion", "accept", sg.ID)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidStateTransition)
}

func TestSuggestionList_Filters(t *testing.T) {
	a, _ := testApp(t)
	_, err := executeCmd(t, a, "journal", "add", "I want to learn Spanish. Remember to buy stamps.")
	require.NoError(t, err)

	out, err := executeCmd(t, a, "suggestion", "list", "--type", "goal")
	require.NoError(t, err)
	assert.Contains(t, out, "learn Spanish")
	assert.NotContains(t, out, "buy stamps")

	_, err = executeCmd(t, a, "suggestion", "list", "--status", "maybe")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestSuggestionReview_RequiresTerminal(t *testing.T) {
	a, _ := testApp(t)

	_, err := executeCmd(t, a, "suggestion", "review")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "interactive terminal")
}

func TestUnknownID(t *testing.T) {
	a, _ := testApp(t)

	_, err := executeCmd(t, a, "suggestion", "accept", "nope")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func replaceOnce(s, old, new string) string {
	return strings.Replace(s, old, new, 1)
}
