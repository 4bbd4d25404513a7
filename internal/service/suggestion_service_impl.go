package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/actionmenu/internal/app"
	"github.com/alexanderramin/actionmenu/internal/domain"
)

type suggestionService struct {
	engine   Extractor
	uow      StateTx
	observer UseCaseObserver
}

func NewSuggestionService(engine Extractor, uow StateTx, observers ...UseCaseObserver) SuggestionService {
	return &suggestionService{
		engine:   engine,
		uow:      uow,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *suggestionService) ExtractSuggestions(ctx context.Context, text string) []domain.Suggestion {
	startedAt := time.Now()
	out := s.engine.Extract(text)
	observe(ctx, s.observer, "extract-suggestions", startedAt, map[string]any{
		"text_bytes":  len(text),
		"suggestions": len(out),
	}, nil)
	return out
}

func (s *suggestionService) PromoteSuggestion(ctx context.Context, req app.PromoteRequest) (result *app.PromoteResult, err error) {
	fields := map[string]any{
		"suggestion_id": req.SuggestionID,
		"decision":      string(req.Decision),
	}
	defer observe(ctx, s.observer, "promote-suggestion", time.Now(), fields, &err)

	if !req.Decision.Valid() {
		return nil, &domain.ValidationError{Entity: "promotion", Field: "decision", Reason: fmt.Sprintf("unknown value %q", req.Decision)}
	}
	if req.Decision == app.DecisionReject && !req.Overrides.IsZero() {
		return nil, &domain.ValidationError{Entity: "promotion", Field: "overrides", Reason: "only apply when accepting"}
	}

	now := nowUTC()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, st *domain.State) error {
		sg, err := st.Suggestion(req.SuggestionID)
		if err != nil {
			return err
		}
		if req.Decision == app.DecisionReject {
			if sg.Status == domain.SuggestionRejected {
				result = &app.PromoteResult{Suggestion: copySuggestion(sg)}
				return errUnchanged
			}
			if err := sg.Reject(now); err != nil {
				return err
			}
			result = &app.PromoteResult{Suggestion: copySuggestion(sg)}
			return nil
		}

		if err := sg.Accept(now); err != nil {
			return err
		}
		result, err = materialize(st, sg, req.Overrides, now)
		return err
	})
	if errors.Is(err, errUnchanged) {
		err = nil
	}
	if err != nil {
		return nil, err
	}
	fields["status"] = string(result.Suggestion.Status)
	if result.Created {
		fields["entity_id"] = result.EntityID()
	}
	return result, nil
}

// materialize builds the one entity an accepted suggestion produces. The
// suggestion must already be accepted in st.
func materialize(st *domain.State, sg *domain.Suggestion, o app.Overrides, now time.Time) (*app.PromoteResult, error) {
	res := &app.PromoteResult{Created: true}
	title := domain.StrFromPtrWithDefault(sg.Proposed.Title, o.Title)
	category := domain.StrFromPtrWithDefault(sg.Proposed.Category, o.Category)
	hint := sg.Proposed.DueHint

	switch sg.Classification {
	case domain.ClassGoal:
		if err := inapplicable(sg.Classification, o.HabitOnly(), o.QuickActionOnly()); err != nil {
			return nil, err
		}
		horizon := horizonForDueHint(hint)
		if o.Horizon != nil {
			horizon = *o.Horizon
		}
		g, err := domain.NewGoal(domain.GoalFields{
			Title:      title,
			Category:   category,
			Specific:   domain.StrFromPtrWithDefault(sg.Span, o.Specific),
			Measurable: domain.StrFromPtrWithDefault("", o.Measurable),
			Achievable: domain.StrFromPtrWithDefault("", o.Achievable),
			Relevant:   domain.StrFromPtrWithDefault("", o.Relevant),
			TimeBound:  domain.StrFromPtrWithDefault(hint, o.TimeBound),
			Horizon:    horizon,
		}, now)
		if err != nil {
			return nil, err
		}
		g.OriginSuggestionID = sg.ID
		if err := st.AddGoal(g); err != nil {
			return nil, err
		}
		res.Goal = copyGoal(g)

	case domain.ClassHabit:
		if err := inapplicable(sg.Classification, o.GoalOnly(), o.QuickActionOnly()); err != nil {
			return nil, err
		}
		cadence := domain.Cadence(domain.CoalesceStr(string(sg.Proposed.Frequency), string(domain.CadenceDaily)))
		if o.Cadence != nil {
			cadence = *o.Cadence
		}
		h, err := domain.NewHabit(domain.HabitFields{
			Title:         title,
			Cadence:       cadence,
			MenuSlot:      domain.StrFromPtrWithDefault("", o.MenuSlot),
			Anchor:        domain.StrFromPtrWithDefault("", o.Anchor),
			SuccessMetric: domain.StrFromPtrWithDefault("", o.SuccessMetric),
			LinkedGoalID:  domain.StrFromPtrWithDefault("", o.LinkedGoalID),
		}, now)
		if err != nil {
			return nil, err
		}
		h.OriginSuggestionID = sg.ID
		if err := st.AddHabit(h); err != nil {
			return nil, err
		}
		res.Habit = copyHabit(h)

	case domain.ClassQuickAction:
		if err := inapplicable(sg.Classification, o.GoalOnly(), o.HabitOnly()); err != nil {
			return nil, err
		}
		if o.Category != nil {
			return nil, inapplicable(sg.Classification, []string{"category"})
		}
		stage := stageForDueHint(hint)
		if o.Stage != nil {
			stage = *o.Stage
		}
		q, err := domain.NewQuickAction(title, stage, now)
		if err != nil {
			return nil, err
		}
		q.OriginSuggestionID = sg.ID
		if err := st.AddQuickAction(q); err != nil {
			return nil, err
		}
		res.QuickAction = copyQuickAction(q)

	default:
		return nil, &domain.ValidationError{Entity: "suggestion", Field: "classification", Reason: "unknown value " + string(sg.Classification)}
	}

	res.Suggestion = copySuggestion(sg)
	return res, nil
}

func inapplicable(class domain.Classification, groups ...[]string) error {
	var names []string
	for _, g := range groups {
		names = append(names, g...)
	}
	if len(names) == 0 {
		return nil
	}
	return &domain.ValidationError{
		Entity: "promotion",
		Field:  "overrides",
		Reason: fmt.Sprintf("%s do not apply to a %s", strings.Join(names, ", "), strings.ReplaceAll(string(class), "_", " ")),
	}
}

func (s *suggestionService) Get(ctx context.Context, id string) (*domain.Suggestion, error) {
	st, err := s.uow.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	return st.Suggestion(id)
}

func (s *suggestionService) List(ctx context.Context, filter app.SuggestionFilter) ([]*domain.Suggestion, error) {
	st, err := s.uow.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := []*domain.Suggestion{}
	for _, sg := range st.Suggestions {
		if filter.Match(sg) {
			out = append(out, sg)
		}
	}
	return out, nil
}

// ReviewQueue returns pending suggestions grouped by entry in journal order,
// each entry's suggestions in extraction order.
func (s *suggestionService) ReviewQueue(ctx context.Context) ([]*domain.Suggestion, error) {
	st, err := s.uow.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	out := []*domain.Suggestion{}
	for _, e := range st.JournalEntries {
		for _, sg := range st.SuggestionsForEntry(e.ID) {
			if sg.Status == domain.SuggestionPending {
				out = append(out, sg)
			}
		}
	}
	return out, nil
}
