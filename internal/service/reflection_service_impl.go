package service

import (
	"context"
	"strings"
	"time"

	"github.com/alexanderramin/actionmenu/internal/domain"
)

type reflectionService struct {
	uow      StateTx
	observer UseCaseObserver
}

func NewReflectionService(uow StateTx, observers ...UseCaseObserver) ReflectionService {
	return &reflectionService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

func (s *reflectionService) Reflections(ctx context.Context) (domain.Reflections, error) {
	st, err := s.uow.Snapshot(ctx)
	if err != nil {
		return domain.Reflections{}, err
	}
	return st.Reflections, nil
}

// SetReflections replaces the whole block.
func (s *reflectionService) SetReflections(ctx context.Context, r domain.Reflections) (err error) {
	defer observe(ctx, s.observer, "set-reflections", time.Now(), nil, &err)

	r.Values = strings.TrimSpace(r.Values)
	r.Milestones = strings.TrimSpace(r.Milestones)
	r.Energy = strings.TrimSpace(r.Energy)
	return s.uow.WithinTx(ctx, func(ctx context.Context, st *domain.State) error {
		st.SetReflections(r, nowUTC())
		return nil
	})
}
