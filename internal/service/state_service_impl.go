package service

import (
	"context"
	"errors"
	"time"

	"github.com/alexanderramin/actionmenu/internal/app"
	"github.com/alexanderramin/actionmenu/internal/domain"
	"github.com/alexanderramin/actionmenu/internal/storage"
)

type stateService struct {
	uow      *storage.StateUnitOfWork
	observer UseCaseObserver
}

func NewStateService(uow *storage.StateUnitOfWork, observers ...UseCaseObserver) StateService {
	return &stateService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// LoadState re-reads the store and makes the result the committed state. In
// repair mode the repaired state is committed in memory only; Repair also
// writes it back.
func (s *stateService) LoadState(ctx context.Context, req app.LoadRequest) (result *storage.LoadResult, err error) {
	fields := map[string]any{"repair": req.Repair}
	defer observe(ctx, s.observer, "load-state", time.Now(), fields, &err)

	res, err := s.uow.Load(ctx, storage.LoadOptions{Repair: req.Repair})
	if err != nil {
		return nil, err
	}
	fields["from_version"] = res.FromVersion
	fields["repairs"] = len(res.Repairs)
	out := *res
	out.State = res.State.Clone()
	return &out, nil
}

func (s *stateService) SaveState(ctx context.Context, st *domain.State) (err error) {
	defer observe(ctx, s.observer, "save-state", time.Now(), nil, &err)
	return s.uow.Replace(ctx, st)
}

// Check loads the store without repairing it. Integrity problems are
// reported, not returned as an error.
func (s *stateService) Check(ctx context.Context) (report *app.StateReport, err error) {
	defer observe(ctx, s.observer, "check-state", time.Now(), nil, &err)

	res, err := s.uow.Load(ctx, storage.LoadOptions{})
	var ie *domain.IntegrityError
	if errors.As(err, &ie) {
		return &app.StateReport{Problems: ie.Problems}, nil
	}
	if err != nil {
		return nil, err
	}
	return &app.StateReport{
		FromVersion: res.FromVersion,
		Migrated:    res.Migrated,
		Counts:      app.CountState(res.State),
	}, nil
}

// Repair loads in repair mode and writes the result back when anything was
// fixed or migrated.
func (s *stateService) Repair(ctx context.Context) (report *app.StateReport, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "repair-state", time.Now(), fields, &err)

	res, err := s.uow.Load(ctx, storage.LoadOptions{Repair: true})
	if err != nil {
		return nil, err
	}
	report = &app.StateReport{
		FromVersion: res.FromVersion,
		Migrated:    res.Migrated,
		Repairs:     res.Repairs,
		Counts:      app.CountState(res.State),
	}
	fields["repairs"] = len(res.Repairs)
	if len(res.Repairs) == 0 && !res.Migrated {
		return report, nil
	}
	if err := s.uow.Replace(ctx, res.State); err != nil {
		return nil, err
	}
	report.Rewritten = true
	return report, nil
}

// Migrate rewrites an older document at the current schema version.
func (s *stateService) Migrate(ctx context.Context) (report *app.StateReport, err error) {
	fields := map[string]any{}
	defer observe(ctx, s.observer, "migrate-state", time.Now(), fields, &err)

	res, err := s.uow.Load(ctx, storage.LoadOptions{})
	if err != nil {
		return nil, err
	}
	fields["from_version"] = res.FromVersion
	report = &app.StateReport{
		FromVersion: res.FromVersion,
		Migrated:    res.Migrated,
		Counts:      app.CountState(res.State),
	}
	if !res.Migrated {
		return report, nil
	}
	if err := s.uow.Replace(ctx, res.State); err != nil {
		return nil, err
	}
	report.Rewritten = true
	return report, nil
}

func (s *stateService) Snapshot(ctx context.Context) (*domain.State, error) {
	return s.uow.Snapshot(ctx)
}
