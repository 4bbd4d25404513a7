package service

import (
	"context"
	"testing"
	"time"

	"github.com/alexanderramin/actionmenu/internal/domain"
	"github.com/alexanderramin/actionmenu/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogSession(t *testing.T) {
	store := testutil.NewMemStore(nil)
	svc := newServices(t, store)
	ctx := context.Background()

	g, err := svc.entities.CreateGoal(ctx, domain.GoalFields{Title: "Ship v1"})
	require.NoError(t, err)

	w := &domain.WorkSession{
		LinkedID:     g.ID,
		LinkedKind:   domain.LinkGoal,
		Activity:     "deep work",
		StartedAt:    time.Now().UTC().Add(-time.Hour),
		Duration:     50 * time.Minute,
		FlowBefore:   2,
		FlowAfter:    4,
		EmotionAfter: "calm",
	}
	require.NoError(t, svc.sessions.LogSession(ctx, w))
	assert.NotEmpty(t, w.ID)

	saved := store.Saved()
	require.Len(t, saved.WorkSessions, 1)
	assert.Equal(t, w.ID, saved.WorkSessions[0].ID)
	assert.Equal(t, 50*time.Minute, saved.WorkSessions[0].Duration)
}

func TestLogSession_Rejects(t *testing.T) {
	store := testutil.NewMemStore(nil)
	svc := newServices(t, store)
	ctx := context.Background()
	start := time.Now().UTC()

	tests := []struct {
		name    string
		session domain.WorkSession
		want    error
	}{
		{"zero duration", domain.WorkSession{StartedAt: start}, domain.ErrValidation},
		{"flow out of range", domain.WorkSession{StartedAt: start, Duration: time.Minute, FlowAfter: 6}, domain.ErrValidation},
		{"missing goal", domain.WorkSession{StartedAt: start, Duration: time.Minute, LinkedKind: domain.LinkGoal, LinkedID: "nope"}, domain.ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := tt.session
			err := svc.sessions.LogSession(ctx, &w)
			assert.ErrorIs(t, err, tt.want)
			assert.Empty(t, w.ID)
		})
	}
	assert.Zero(t, store.Saves())
}

func TestListRecentSessions(t *testing.T) {
	svc := newServices(t, testutil.NewMemStore(nil))
	ctx := context.Background()
	now := time.Now().UTC()

	for _, ago := range []time.Duration{10 * 24 * time.Hour, 2 * time.Hour, time.Hour} {
		require.NoError(t, svc.sessions.LogSession(ctx, &domain.WorkSession{
			StartedAt: now.Add(-ago),
			Duration:  25 * time.Minute,
		}))
	}

	recent, err := svc.sessions.ListRecent(ctx, 7)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.True(t, recent[0].StartedAt.After(recent[1].StartedAt), "newest first")

	all, err := svc.sessions.ListRecent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestReflections(t *testing.T) {
	svc := newServices(t, testutil.NewMemStore(nil))
	ctx := context.Background()

	r, err := svc.reflections.Reflections(ctx)
	require.NoError(t, err)
	assert.True(t, r.IsZero())

	require.NoError(t, svc.reflections.SetReflections(ctx, domain.Reflections{Values: " craft ", Energy: "mornings"}))
	r, err = svc.reflections.Reflections(ctx)
	require.NoError(t, err)
	assert.Equal(t, "craft", r.Values)
	assert.Equal(t, "mornings", r.Energy)
	assert.NotNil(t, r.UpdatedAt)
}

func TestLogSession_LinkedToSeededHabit(t *testing.T) {
	s := testutil.NewTestState()
	h := testutil.SeedHabit(t, s, "Stretch")
	store := testutil.NewMemStore(s)
	svc := newServices(t, store)

	w := &domain.WorkSession{
		LinkedID:   h.ID,
		LinkedKind: domain.LinkHabit,
		Activity:   "mobility",
		StartedAt:  testutil.FixedNow.Add(-20 * time.Minute),
		Duration:   15 * time.Minute,
	}
	require.NoError(t, svc.sessions.LogSession(context.Background(), w))

	saved := store.Saved()
	require.Len(t, saved.WorkSessions, 1)
	assert.Equal(t, domain.LinkHabit, saved.WorkSessions[0].LinkedKind)
	assert.Equal(t, h.ID, saved.WorkSessions[0].LinkedID)
}
