package service

import (
	"context"
	"time"

	"github.com/alexanderramin/actionmenu/internal/domain"
)

type sessionService struct {
	uow      StateTx
	observer UseCaseObserver
}

func NewSessionService(uow StateTx, observers ...UseCaseObserver) SessionService {
	return &sessionService{uow: uow, observer: useCaseObserverOrNoop(observers)}
}

// LogSession appends a closed session. The caller's value gets the assigned
// id; the stored copy is never handed out for mutation.
func (s *sessionService) LogSession(ctx context.Context, session *domain.WorkSession) (err error) {
	fields := map[string]any{
		"linked_kind": string(session.LinkedKind),
		"minutes":     int(session.Duration / time.Minute),
	}
	defer observe(ctx, s.observer, "log-session", time.Now(), fields, &err)

	stored := *session
	err = s.uow.WithinTx(ctx, func(ctx context.Context, st *domain.State) error {
		return st.AppendWorkSession(&stored)
	})
	if err != nil {
		return err
	}
	session.ID = stored.ID
	fields["session_id"] = stored.ID
	return nil
}

// ListRecent returns sessions started within the last days days, newest
// first. A non-positive days lists everything.
func (s *sessionService) ListRecent(ctx context.Context, days int) ([]*domain.WorkSession, error) {
	st, err := s.uow.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	var cutoff time.Time
	if days > 0 {
		cutoff = nowUTC().AddDate(0, 0, -days)
	}
	out := []*domain.WorkSession{}
	for i := len(st.WorkSessions) - 1; i >= 0; i-- {
		w := st.WorkSessions[i]
		if !cutoff.IsZero() && w.StartedAt.Before(cutoff) {
			continue
		}
		out = append(out, w)
	}
	return out, nil
}
