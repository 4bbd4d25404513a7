package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexanderramin/actionmenu/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// prototypeDocument is a schema v1 state file, which carried no version key.
const prototypeDocument = `{
  "reflections": {"values": "craft", "milestones": "ship v1", "energy": "mornings"},
  "goals": [
    {"id": "a1b2", "title": "Ship Unreal prototype", "specific": "", "measurable": "playable demo",
     "achievable": "", "relevant": "", "time_bound": "", "horizon": "This Month",
     "category": "Career", "calendar_color": "default"}
  ],
  "habits": [
    {"id": "h0", "name": "Morning pages", "anchor": "after coffee", "frequency": "Weekdays",
     "success_metric": "3 pages", "linked_goal": "ship unreal prototype"},
    {"id": "h9", "name": "Stretch", "anchor": "", "frequency": "Daily",
     "success_metric": "", "linked_goal": "Unknown goal"}
  ],
  "weekly_actions": {"Today": ["Refactor rendering pipeline"], "This Week": [], "This Month": ["Plan launch"]},
  "timer_categories": ["Creative", "Learning"],
  "time_entries": [
    {"id": "t1", "activity": "Deep work", "category": "Working",
     "start": "2024-03-01T09:00:00.000000Z", "end": "2024-03-01T10:30:00.000000Z", "calendar_color": "default"}
  ],
  "flow_logs": [
    {"id": "f1", "time_entry_id": "t1", "flow_before": 2, "flow_after": 4,
     "emotion_before": "anxious", "emotion_after": "calm", "feeling_message": "got into it",
     "feeling_motivation": "", "created_at": "2024-03-01T10:31:00.000000Z"}
  ],
  "journal_entries": [
    {"id": "j1", "created_at": "2024-03-02T08:00:00.123456Z",
     "text": "Today I want to run a marathon. Feeling stuck on the renderer.", "tags": ["work"],
     "suggestions": [
       {"text": "I want to run a marathon", "kind": "goal"},
       {"text": "Feeling stuck on the renderer", "kind": "blockage"}
     ]}
  ],
  "quick_capture": [
    {"id": "q1", "text": "Email Sam", "status": "Today", "created_at": "2024-03-02T09:00:00.000000Z"}
  ]
}`

func TestDecode_MigratesPrototypeDocument(t *testing.T) {
	res, err := Decode([]byte(prototypeDocument), LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, 1, res.FromVersion)
	assert.True(t, res.Migrated)
	s := res.State

	assert.Equal(t, "craft", s.Reflections.Values)
	assert.Equal(t, "ship v1", s.Reflections.Milestones)

	require.Len(t, s.Goals, 1)
	assert.Equal(t, "a1b2", s.Goals[0].ID)
	assert.Equal(t, domain.HorizonThisMonth, s.Goals[0].Horizon)
	assert.Equal(t, "career", s.Goals[0].Category)
	assert.Equal(t, domain.GoalActive, s.Goals[0].Status)

	require.Len(t, s.Habits, 2)
	assert.Equal(t, domain.CadenceWeekdays, s.Habits[0].Cadence)
	assert.Equal(t, "a1b2", s.Habits[0].LinkedGoalID, "linked by title")
	assert.Equal(t, "3 pages", s.Habits[0].SuccessMetric)
	assert.Equal(t, domain.CadenceDaily, s.Habits[1].Cadence)
	assert.Empty(t, s.Habits[1].LinkedGoalID, "unknown goal link dropped")

	require.Len(t, s.QuickActions, 3)
	assert.Equal(t, "Email Sam", s.QuickActions[0].Title)
	assert.Equal(t, domain.StageToday, s.QuickActions[0].Stage)
	assert.Equal(t, "Refactor rendering pipeline", s.QuickActions[1].Title)
	assert.Equal(t, domain.StageToday, s.QuickActions[1].Stage)
	assert.Equal(t, "Plan launch", s.QuickActions[2].Title)
	assert.Equal(t, domain.StageLater, s.QuickActions[2].Stage)

	require.Len(t, s.JournalEntries, 1)
	entry := s.JournalEntries[0]
	assert.Equal(t, []string{"work", "blocked"}, entry.Tags)
	assert.Equal(t, time.Date(2024, 3, 2, 8, 0, 0, 123456000, time.UTC), entry.CreatedAt)
	require.Len(t, entry.SuggestionIDs, 1)

	require.Len(t, s.Suggestions, 1)
	sg := s.Suggestions[0]
	assert.Equal(t, entry.SuggestionIDs[0], sg.ID)
	assert.Equal(t, "j1", sg.EntryID)
	assert.Equal(t, domain.ClassGoal, sg.Classification)
	assert.Equal(t, domain.SuggestionPending, sg.Status)
	assert.Equal(t, 6, sg.Offset)
	assert.Equal(t, "I want to run a marathon", sg.Proposed.Title)

	require.Len(t, s.WorkSessions, 1)
	w := s.WorkSessions[0]
	assert.Equal(t, 90*time.Minute, w.Duration)
	assert.Equal(t, 2, w.FlowBefore)
	assert.Equal(t, 4, w.FlowAfter)
	assert.Equal(t, "calm", w.EmotionAfter)
	assert.Equal(t, "got into it", w.Note)
	assert.Equal(t, domain.LinkNone, w.LinkedKind)
}

func TestDecode_PrototypeMigrationIsDeterministic(t *testing.T) {
	a, err := Decode([]byte(prototypeDocument), LoadOptions{})
	require.NoError(t, err)
	b, err := Decode([]byte(prototypeDocument), LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, a.State, b.State)
}

func TestFileStore_MigratedDocumentIsRewrittenAtCurrentVersion(t *testing.T) {
	fs := newTestFileStore(t)
	ctx := context.Background()
	require.NoError(t, os.MkdirAll(filepath.Dir(fs.Path()), 0o755))
	require.NoError(t, os.WriteFile(fs.Path(), []byte(prototypeDocument), 0o644))

	first, err := fs.Load(ctx, LoadOptions{})
	require.NoError(t, err)
	require.True(t, first.Migrated)
	require.NoError(t, fs.Save(ctx, first.State))

	second, err := fs.Load(ctx, LoadOptions{})
	require.NoError(t, err)
	assert.Equal(t, CurrentSchemaVersion, second.FromVersion)
	assert.False(t, second.Migrated)
	assert.Equal(t, first.State, second.State)
}

func TestDecode_UnsupportedVersions(t *testing.T) {
	for _, doc := range []string{`{"schemaVersion": 3}`, `{"schemaVersion": 0}`, `{"schemaVersion": -1}`} {
		_, err := Decode([]byte(doc), LoadOptions{Repair: true})
		require.Error(t, err, doc)
		assert.ErrorIs(t, err, domain.ErrUnsupportedSchema, doc)
	}

	_, err := Decode([]byte(`{"schemaVersion": 99}`), LoadOptions{})
	var se *domain.SchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 99, se.Version)
	assert.Equal(t, CurrentSchemaVersion, se.Supported)
}

func TestDecode_MalformedVersion(t *testing.T) {
	_, err := Decode([]byte(`{"schemaVersion": "two"}`), LoadOptions{})
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrUnsupportedSchema)

	_, err = Decode([]byte(`null`), LoadOptions{})
	require.Error(t, err)
}

const danglingDocument = `{
  "schemaVersion": 2,
  "savedAt": "2025-06-15T10:00:00Z",
  "reflections": {},
  "goals": [
    {"id": "g1", "title": "learn Spanish", "category": "learning", "horizon": "long_term",
     "status": "active", "originSuggestionId": "ghost",
     "createdAt": "2025-06-15T10:00:00Z", "updatedAt": "2025-06-15T10:00:00Z"}
  ],
  "habits": [],
  "quickActions": [],
  "journalEntries": [
    {"id": "e1", "body": "Call mom", "suggestionIds": ["s1", "missing"], "createdAt": "2025-06-15T10:00:00Z"}
  ],
  "suggestions": [
    {"id": "s1", "entryId": "e1", "span": "Call mom", "offset": 0, "classification": "quick_action",
     "confidence": 0.2, "proposed": {"title": "Call mom", "category": "relationships"},
     "status": "pending", "createdAt": "2025-06-15T10:00:00Z"},
    {"id": "s2", "entryId": "gone", "span": "x", "offset": 0, "classification": "goal",
     "confidence": 0.5, "proposed": {"title": "x", "category": "uncategorized"},
     "status": "pending", "createdAt": "2025-06-15T10:00:00Z"}
  ],
  "workSessions": []
}`

func TestDecode_IntegrityViolationIsFatalByDefault(t *testing.T) {
	_, err := Decode([]byte(danglingDocument), LoadOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrReferentialIntegrity)

	var ie *domain.IntegrityError
	require.ErrorAs(t, err, &ie)
	assert.Len(t, ie.Problems, 3)
}

func TestDecode_RepairModeReportsEachAction(t *testing.T) {
	res, err := Decode([]byte(danglingDocument), LoadOptions{Repair: true})
	require.NoError(t, err)
	assert.Len(t, res.Repairs, 3)

	s := res.State
	require.NoError(t, s.Validate())
	require.Len(t, s.Suggestions, 1)
	assert.Equal(t, "s1", s.Suggestions[0].ID)
	assert.Equal(t, []string{"s1"}, s.JournalEntries[0].SuggestionIDs)
	assert.Empty(t, s.Goals[0].OriginSuggestionID)
	assert.Equal(t, "learn Spanish", s.Goals[0].Title, "entities survive repair")
}
