package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// TimerRepository captures the storage operations needed by the service.
type TimerRepository interface {
	CreateTimer(ctx context.Context, timer Timer) (Timer, error)
	GetTimer(ctx context.Context, id string) (Timer, error)
	UpdateTimer(ctx context.Context, timer Timer) (Timer, error)
	DeleteTimer(ctx context.Context, id string) error
	ListTimers(ctx context.Context) ([]Timer, error)
}

// TimerInput captures caller provided timer fields.
type TimerInput struct {
	Label           string
	DurationSeconds int
}

// TimerService creates and dismisses countdown timers. The per-second
// countdown itself runs in the notification service's tick loop.
type TimerService struct {
	timers      TimerRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewTimerService constructs a timer service with the provided dependencies.
func NewTimerService(timers TimerRepository, idGenerator func() string, now func() time.Time) *TimerService {
	return NewTimerServiceWithLogger(timers, idGenerator, now, nil)
}

// NewTimerServiceWithLogger constructs a timer service with a specified logger.
func NewTimerServiceWithLogger(timers TimerRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *TimerService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &TimerService{timers: timers, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *TimerService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "TimerService", operation, attrs...)
}

// StartTimer validates input and stores a timer that is already running.
func (s *TimerService) StartTimer(ctx context.Context, input TimerInput) (timer Timer, err error) {
	if s == nil {
		err = fmt.Errorf("TimerService is nil")
		return
	}

	logger := s.loggerWith(ctx, "StartTimer")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to start timer", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("timer_id", timer.ID, "duration_seconds", timer.DurationSeconds).InfoContext(ctx, "timer started")
	}()

	vErr := &ValidationError{}
	if strings.TrimSpace(input.Label) == "" {
		vErr.Add("label", "label is required")
	}
	if input.DurationSeconds <= 0 {
		vErr.Add("duration_seconds", "duration must be positive")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	timer = Timer{
		ID:               s.idGenerator(),
		Label:            strings.TrimSpace(input.Label),
		DurationSeconds:  input.DurationSeconds,
		RemainingSeconds: input.DurationSeconds,
		Running:          true,
		CreatedAt:        s.now(),
	}

	if s.timers == nil {
		return
	}
	timer, err = s.timers.CreateTimer(ctx, timer)
	return
}

// PauseTimer stops the countdown without discarding remaining time; resuming
// is ResumeTimer. Finished timers cannot be paused or resumed.
func (s *TimerService) PauseTimer(ctx context.Context, id string) (Timer, error) {
	return s.setRunning(ctx, id, false)
}

// ResumeTimer restarts a paused countdown.
func (s *TimerService) ResumeTimer(ctx context.Context, id string) (Timer, error) {
	return s.setRunning(ctx, id, true)
}

func (s *TimerService) setRunning(ctx context.Context, id string, running bool) (timer Timer, err error) {
	if s == nil {
		err = fmt.Errorf("TimerService is nil")
		return
	}
	if s.timers == nil {
		err = fmt.Errorf("timer repository not configured")
		return
	}

	operation := "PauseTimer"
	if running {
		operation = "ResumeTimer"
	}
	logger := s.loggerWith(ctx, operation, "timer_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to change timer state", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	existing, err := s.timers.GetTimer(ctx, id)
	if err != nil {
		return
	}

	if existing.Finished || existing.RemainingSeconds <= 0 {
		vErr := &ValidationError{}
		vErr.Add("timer", "timer has already finished")
		err = vErr
		return
	}

	existing.Running = running
	timer, err = s.timers.UpdateTimer(ctx, existing)
	return
}

// DismissTimer removes a timer, whether running or finished.
func (s *TimerService) DismissTimer(ctx context.Context, id string) (err error) {
	if s == nil {
		return fmt.Errorf("TimerService is nil")
	}
	if s.timers == nil {
		return fmt.Errorf("timer repository not configured")
	}

	logger := s.loggerWith(ctx, "DismissTimer", "timer_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to dismiss timer", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "timer dismissed")
	}()

	err = s.timers.DeleteTimer(ctx, id)
	return
}

// GetTimer fetches a single timer.
func (s *TimerService) GetTimer(ctx context.Context, id string) (Timer, error) {
	if s == nil || s.timers == nil {
		return Timer{}, fmt.Errorf("timer repository not configured")
	}
	return s.timers.GetTimer(ctx, id)
}

// ListTimers enumerates timers in creation order.
func (s *TimerService) ListTimers(ctx context.Context) ([]Timer, error) {
	if s == nil || s.timers == nil {
		return nil, fmt.Errorf("timer repository not configured")
	}
	return s.timers.ListTimers(ctx)
}
