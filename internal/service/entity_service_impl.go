package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/actionmenu/internal/domain"
)

type entityService struct {
	uow      StateTx
	observer UseCaseObserver
}

// NewEntityService handles goals, habits and quick actions created directly
// by the user. They go through the same constructors as promotion.
func NewEntityService(uow StateTx, observers ...UseCaseObserver) EntityService {
	return &entityService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *entityService) CreateGoal(ctx context.Context, f domain.GoalFields) (goal *domain.Goal, err error) {
	fields := map[string]any{"title": f.Title}
	defer observe(ctx, s.observer, "create-goal", time.Now(), fields, &err)

	g, err := domain.NewGoal(f, nowUTC())
	if err != nil {
		return nil, err
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, st *domain.State) error {
		return st.AddGoal(g)
	})
	if err != nil {
		return nil, err
	}
	fields["goal_id"] = g.ID
	return copyGoal(g), nil
}

func (s *entityService) CreateHabit(ctx context.Context, f domain.HabitFields) (habit *domain.Habit, err error) {
	fields := map[string]any{"title": f.Title}
	defer observe(ctx, s.observer, "create-habit", time.Now(), fields, &err)

	h, err := domain.NewHabit(f, nowUTC())
	if err != nil {
		return nil, err
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, st *domain.State) error {
		return st.AddHabit(h)
	})
	if err != nil {
		return nil, err
	}
	fields["habit_id"] = h.ID
	return copyHabit(h), nil
}

func (s *entityService) CaptureQuickAction(ctx context.Context, title string, stage domain.Stage) (action *domain.QuickAction, err error) {
	fields := map[string]any{"stage": string(stage)}
	defer observe(ctx, s.observer, "capture-quick-action", time.Now(), fields, &err)

	q, err := domain.NewQuickAction(title, stage, nowUTC())
	if err != nil {
		return nil, err
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, st *domain.State) error {
		return st.AddQuickAction(q)
	})
	if err != nil {
		return nil, err
	}
	fields["quick_action_id"] = q.ID
	return copyQuickAction(q), nil
}

func (s *entityService) MoveQuickAction(ctx context.Context, id string, to domain.Stage) (action *domain.QuickAction, err error) {
	defer observe(ctx, s.observer, "move-quick-action", time.Now(), map[string]any{
		"quick_action_id": id,
		"to":              string(to),
	}, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, st *domain.State) error {
		q, err := st.QuickAction(id)
		if err != nil {
			return err
		}
		if err := q.MoveTo(to, nowUTC()); err != nil {
			return err
		}
		action = copyQuickAction(q)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return action, nil
}

func (s *entityService) SetGoalStatus(ctx context.Context, id string, status domain.GoalStatus) (goal *domain.Goal, err error) {
	defer observe(ctx, s.observer, "set-goal-status", time.Now(), map[string]any{
		"goal_id": id,
		"status":  string(status),
	}, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, st *domain.State) error {
		g, err := st.Goal(id)
		if err != nil {
			return err
		}
		if g.Status == status {
			goal = copyGoal(g)
			return errUnchanged
		}
		if err := g.SetStatus(status, nowUTC()); err != nil {
			return err
		}
		goal = copyGoal(g)
		return nil
	})
	if errors.Is(err, errUnchanged) {
		err = nil
	}
	if err != nil {
		return nil, err
	}
	return goal, nil
}

func (s *entityService) SetHabitStatus(ctx context.Context, id string, status domain.HabitStatus) (habit *domain.Habit, err error) {
	defer observe(ctx, s.observer, "set-habit-status", time.Now(), map[string]any{
		"habit_id": id,
		"status":   string(status),
	}, &err)

	err = s.uow.WithinTx(ctx, func(ctx context.Context, st *domain.State) error {
		h, err := st.Habit(id)
		if err != nil {
			return err
		}
		if h.Status == status {
			habit = copyHabit(h)
			return errUnchanged
		}
		if err := h.SetStatus(status, nowUTC()); err != nil {
			return err
		}
		habit = copyHabit(h)
		return nil
	})
	if errors.Is(err, errUnchanged) {
		err = nil
	}
	if err != nil {
		return nil, err
	}
	return habit, nil
}

func (s *entityService) ListGoals(ctx context.Context, includeFinished bool) ([]*domain.Goal, error) {
	st, err := s.uow.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := []*domain.Goal{}
	for _, g := range st.Goals {
		if includeFinished || g.Status == domain.GoalActive {
			out = append(out, g)
		}
	}
	return out, nil
}

func (s *entityService) ListHabits(ctx context.Context, includeRetired bool) ([]*domain.Habit, error) {
	st, err := s.uow.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := []*domain.Habit{}
	for _, h := range st.Habits {
		if includeRetired || h.Status != domain.HabitRetired {
			out = append(out, h)
		}
	}
	return out, nil
}

// ListQuickActions filters by stage; an empty stage lists everything except
// archived actions.
func (s *entityService) ListQuickActions(ctx context.Context, stage domain.Stage) ([]*domain.QuickAction, error) {
	st, err := s.uow.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := []*domain.QuickAction{}
	for _, q := range st.QuickActions {
		if (stage == "" && q.Stage != domain.StageArchived) || q.Stage == stage {
			out = append(out, q)
		}
	}
	return out, nil
}
