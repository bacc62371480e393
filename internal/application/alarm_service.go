package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// AlarmRepository captures the storage operations needed by the service.
type AlarmRepository interface {
	CreateAlarm(ctx context.Context, alarm Alarm) (Alarm, error)
	GetAlarm(ctx context.Context, id string) (Alarm, error)
	UpdateAlarm(ctx context.Context, alarm Alarm) (Alarm, error)
	DeleteAlarm(ctx context.Context, id string) error
	ListAlarms(ctx context.Context) ([]Alarm, error)
}

// AlarmInput captures caller provided alarm fields.
type AlarmInput struct {
	Time       string // "HH:mm"
	Label      string
	RepeatDays []time.Weekday
}

// AlarmService manages alarm lifecycle: creation, editing, arming and
// dismissal. The tick-driven ringing transition itself belongs to the
// notification service.
type AlarmService struct {
	alarms      AlarmRepository
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewAlarmService constructs an alarm service with the provided dependencies.
func NewAlarmService(alarms AlarmRepository, idGenerator func() string, now func() time.Time) *AlarmService {
	return NewAlarmServiceWithLogger(alarms, idGenerator, now, nil)
}

// NewAlarmServiceWithLogger constructs an alarm service with a specified logger.
func NewAlarmServiceWithLogger(alarms AlarmRepository, idGenerator func() string, now func() time.Time, logger *slog.Logger) *AlarmService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &AlarmService{alarms: alarms, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *AlarmService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "AlarmService", operation, attrs...)
}

// CreateAlarm validates input and stores a new, enabled alarm.
func (s *AlarmService) CreateAlarm(ctx context.Context, input AlarmInput) (alarm Alarm, err error) {
	if s == nil {
		err = fmt.Errorf("AlarmService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateAlarm")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create alarm", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("alarm_id", alarm.ID).InfoContext(ctx, "alarm created")
	}()

	vErr := &ValidationError{}
	validateAlarmInput(input, vErr)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	createdAt := s.now()
	alarm = Alarm{
		ID:         s.idGenerator(),
		Time:       input.Time,
		Label:      strings.TrimSpace(input.Label),
		Enabled:    true,
		RepeatDays: append([]time.Weekday(nil), input.RepeatDays...),
		CreatedAt:  createdAt,
		UpdatedAt:  createdAt,
	}

	if s.alarms == nil {
		return
	}
	alarm, err = s.alarms.CreateAlarm(ctx, alarm)
	return
}

// UpdateAlarm applies validated changes to an existing alarm.
func (s *AlarmService) UpdateAlarm(ctx context.Context, id string, input AlarmInput) (alarm Alarm, err error) {
	if s == nil {
		err = fmt.Errorf("AlarmService is nil")
		return
	}
	if s.alarms == nil {
		err = fmt.Errorf("alarm repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateAlarm", "alarm_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update alarm", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "alarm updated")
	}()

	existing, err := s.alarms.GetAlarm(ctx, id)
	if err != nil {
		return
	}

	vErr := &ValidationError{}
	validateAlarmInput(input, vErr)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	existing.Time = input.Time
	existing.Label = strings.TrimSpace(input.Label)
	existing.RepeatDays = append([]time.Weekday(nil), input.RepeatDays...)
	existing.UpdatedAt = s.now()

	alarm, err = s.alarms.UpdateAlarm(ctx, existing)
	return
}

// ToggleAlarm flips the enabled flag.
func (s *AlarmService) ToggleAlarm(ctx context.Context, id string) (alarm Alarm, err error) {
	if s == nil {
		err = fmt.Errorf("AlarmService is nil")
		return
	}
	if s.alarms == nil {
		err = fmt.Errorf("alarm repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "ToggleAlarm", "alarm_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to toggle alarm", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("enabled", alarm.Enabled).InfoContext(ctx, "alarm toggled")
	}()

	existing, err := s.alarms.GetAlarm(ctx, id)
	if err != nil {
		return
	}

	existing.Enabled = !existing.Enabled
	if !existing.Enabled {
		existing.Ringing = false
	}
	existing.UpdatedAt = s.now()

	alarm, err = s.alarms.UpdateAlarm(ctx, existing)
	return
}

// DismissAlarm silences a ringing alarm. One-time alarms are also disarmed so
// they never re-fire; repeating alarms stay enabled for their next scheduled
// day, guarded against same-day re-fire by the dedupe ledger.
func (s *AlarmService) DismissAlarm(ctx context.Context, id string) (alarm Alarm, err error) {
	if s == nil {
		err = fmt.Errorf("AlarmService is nil")
		return
	}
	if s.alarms == nil {
		err = fmt.Errorf("alarm repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "DismissAlarm", "alarm_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to dismiss alarm", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("enabled", alarm.Enabled).InfoContext(ctx, "alarm dismissed")
	}()

	existing, err := s.alarms.GetAlarm(ctx, id)
	if err != nil {
		return
	}

	existing.Ringing = false
	if existing.OneTime() {
		existing.Enabled = false
	}
	existing.UpdatedAt = s.now()

	alarm, err = s.alarms.UpdateAlarm(ctx, existing)
	return
}

// DeleteAlarm removes an alarm.
func (s *AlarmService) DeleteAlarm(ctx context.Context, id string) (err error) {
	if s == nil {
		return fmt.Errorf("AlarmService is nil")
	}
	if s.alarms == nil {
		return fmt.Errorf("alarm repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteAlarm", "alarm_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete alarm", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "alarm deleted")
	}()

	err = s.alarms.DeleteAlarm(ctx, id)
	return
}

// GetAlarm fetches a single alarm.
func (s *AlarmService) GetAlarm(ctx context.Context, id string) (Alarm, error) {
	if s == nil || s.alarms == nil {
		return Alarm{}, fmt.Errorf("alarm repository not configured")
	}
	return s.alarms.GetAlarm(ctx, id)
}

// ListAlarms enumerates alarms in creation order.
func (s *AlarmService) ListAlarms(ctx context.Context) ([]Alarm, error) {
	if s == nil || s.alarms == nil {
		return nil, fmt.Errorf("alarm repository not configured")
	}
	return s.alarms.ListAlarms(ctx)
}

func validateAlarmInput(input AlarmInput, vErr *ValidationError) {
	if !ValidClock(input.Time) {
		vErr.Add("time", "time must be HH:mm")
	}
	if strings.TrimSpace(input.Label) == "" {
		vErr.Add("label", "label is required")
	}
}
