package service

import (
	"context"
	"sort"
	"time"

	"go.uber.org/zap"
)

// UseCaseEvent captures lightweight execution telemetry for a service use case.
type UseCaseEvent struct {
	Name      string
	Duration  time.Duration
	Success   bool
	Err       error
	Fields    map[string]any
	StartedAt time.Time
}

// UseCaseObserver receives use-case execution events.
type UseCaseObserver interface {
	ObserveUseCase(ctx context.Context, event UseCaseEvent)
}

// NoopUseCaseObserver ignores all events.
type NoopUseCaseObserver struct{}

func (NoopUseCaseObserver) ObserveUseCase(context.Context, UseCaseEvent) {}

type logUseCaseObserver struct {
	logger *zap.Logger
}

// NewLogUseCaseObserver writes one structured line per use case to logger.
func NewLogUseCaseObserver(logger *zap.Logger) UseCaseObserver {
	if logger == nil {
		return NoopUseCaseObserver{}
	}
	return &logUseCaseObserver{logger: logger.Named("service")}
}

func (o *logUseCaseObserver) ObserveUseCase(_ context.Context, event UseCaseEvent) {
	fields := make([]zap.Field, 0, 3+len(event.Fields)+1)
	fields = append(fields,
		zap.String("use_case", event.Name),
		zap.Int64("duration_ms", event.Duration.Milliseconds()),
		zap.Bool("success", event.Success),
	)
	keys := make([]string, 0, len(event.Fields))
	for k := range event.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fields = append(fields, zap.Any(k, event.Fields[k]))
	}
	if event.Err != nil {
		fields = append(fields, zap.Error(event.Err))
		o.logger.Error("service_use_case", fields...)
		return
	}
	o.logger.Info("service_use_case", fields...)
}

func useCaseObserverOrNoop(observers []UseCaseObserver) UseCaseObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopUseCaseObserver{}
}

// observe reports a finished use case. Call it deferred with a pointer to
// the named error result.
func observe(ctx context.Context, obs UseCaseObserver, name string, startedAt time.Time, fields map[string]any, err *error) {
	var e error
	if err != nil {
		e = *err
	}
	obs.ObserveUseCase(ctx, UseCaseEvent{
		Name:      name,
		StartedAt: startedAt,
		Duration:  time.Since(startedAt),
		Success:   e == nil,
		Err:       e,
		Fields:    fields,
	})
}
