package application

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/example/household-hub/internal/engine"
)

// Trigger kinds emitted by the notification tick.
const (
	TriggerAlarmRinging  = "alarm_ringing"
	TriggerTimerFinished = "timer_finished"
	TriggerChoreReminder = "chore_reminder"
)

// Trigger is one notification event produced by a tick. Exactly one of
// Alarm, Timer and Chore is set, matching Kind.
type Trigger struct {
	ID           string
	Kind         string
	OccurredAt   time.Time
	Alarm        *Alarm
	Timer        *Timer
	Chore        *Chore
	Acknowledged bool
}

// maxRecentTriggers bounds the in-memory trigger feed.
const maxRecentTriggers = 64

// NotificationService runs the once-per-second evaluation pass: it counts
// running timers down, rings due alarms and fires chore reminders. Fired
// triggers land on a bounded recent feed and, best effort, on the Events
// channel. All state transitions are written back through the repositories.
type NotificationService struct {
	alarms      AlarmRepository
	timers      TimerRepository
	chores      ChoreRepository
	evaluator   *engine.Evaluator
	idGenerator func() string
	logger      *slog.Logger

	mu     sync.Mutex
	recent []Trigger
	events chan Trigger
}

func NewNotificationService(alarms AlarmRepository, timers TimerRepository, chores ChoreRepository, idGenerator func() string) *NotificationService {
	return NewNotificationServiceWithLogger(alarms, timers, chores, idGenerator, nil)
}

func NewNotificationServiceWithLogger(alarms AlarmRepository, timers TimerRepository, chores ChoreRepository, idGenerator func() string, logger *slog.Logger) *NotificationService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	return &NotificationService{
		alarms:      alarms,
		timers:      timers,
		chores:      chores,
		evaluator:   engine.NewEvaluator(engine.NewLedger()),
		idGenerator: idGenerator,
		logger:      defaultLogger(logger),
		events:      make(chan Trigger, 128),
	}
}

func (s *NotificationService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "NotificationService", operation, attrs...)
}

// Events exposes the trigger stream. Sends never block the tick; a full
// channel drops the event, so slow consumers should fall back to Triggers.
func (s *NotificationService) Events() <-chan Trigger {
	return s.events
}

// Tick runs one evaluation pass at the given instant. Calls are serialized;
// a tick that arrives while another runs waits for it.
func (s *NotificationService) Tick(ctx context.Context, now time.Time) (fired []Trigger, err error) {
	if s == nil {
		return nil, fmt.Errorf("NotificationService is nil")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	logger := s.loggerWith(ctx, "Tick")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "tick failed", "error", err, "error_kind", ErrorKind(err))
			return
		}
		if len(fired) > 0 {
			logger.With("fired", len(fired)).InfoContext(ctx, "triggers fired")
		}
	}()

	timerTriggers, err := s.tickTimers(ctx, now)
	if err != nil {
		return nil, err
	}
	alarmTriggers, err := s.tickAlarms(ctx, now)
	if err != nil {
		return nil, err
	}
	reminderTriggers, err := s.tickReminders(ctx, now)
	if err != nil {
		return nil, err
	}

	fired = append(fired, timerTriggers...)
	fired = append(fired, alarmTriggers...)
	fired = append(fired, reminderTriggers...)
	for _, trigger := range fired {
		s.publish(trigger)
	}
	return fired, nil
}

// tickTimers decrements every running timer and reports the ones that just
// reached zero. The finish transition fires exactly once per run.
func (s *NotificationService) tickTimers(ctx context.Context, now time.Time) ([]Trigger, error) {
	if s.timers == nil {
		return nil, nil
	}
	timers, err := s.timers.ListTimers(ctx)
	if err != nil {
		return nil, err
	}

	var triggers []Trigger
	for _, timer := range timers {
		state := engine.TimerState{
			ID:        timer.ID,
			Remaining: timer.RemainingSeconds,
			Running:   timer.Running,
			Finished:  timer.Finished,
		}
		next, finished := engine.CountdownStep(state)
		if next == state {
			continue
		}
		timer.RemainingSeconds = next.Remaining
		timer.Running = next.Running
		timer.Finished = next.Finished
		updated, err := s.timers.UpdateTimer(ctx, timer)
		if err != nil {
			return nil, err
		}
		if finished {
			triggers = append(triggers, s.newTrigger(TriggerTimerFinished, now, Trigger{Timer: &updated}))
		}
	}
	return triggers, nil
}

// tickAlarms rings alarms whose minute matches now. The evaluator's ledger
// guarantees one ring per alarm per day.
func (s *NotificationService) tickAlarms(ctx context.Context, now time.Time) ([]Trigger, error) {
	if s.alarms == nil {
		return nil, nil
	}
	alarms, err := s.alarms.ListAlarms(ctx)
	if err != nil {
		return nil, err
	}

	states := make([]engine.AlarmState, 0, len(alarms))
	byID := make(map[string]Alarm, len(alarms))
	for _, alarm := range alarms {
		states = append(states, engine.AlarmState{
			ID:         alarm.ID,
			Time:       alarm.Time,
			Enabled:    alarm.Enabled,
			Ringing:    alarm.Ringing,
			RepeatDays: alarm.RepeatDays,
		})
		byID[alarm.ID] = alarm
	}

	var triggers []Trigger
	for _, id := range s.evaluator.DueAlarms(now, states) {
		alarm := byID[id]
		alarm.Ringing = true
		updated, err := s.alarms.UpdateAlarm(ctx, alarm)
		if err != nil {
			return nil, err
		}
		triggers = append(triggers, s.newTrigger(TriggerAlarmRinging, now, Trigger{Alarm: &updated}))
	}
	return triggers, nil
}

// tickReminders fires chore reminders whose instant has been reached.
// Completed chores never remind, and each chore reminds at most once.
func (s *NotificationService) tickReminders(ctx context.Context, now time.Time) ([]Trigger, error) {
	if s.chores == nil {
		return nil, nil
	}
	chores, err := s.chores.ListChores(ctx)
	if err != nil {
		return nil, err
	}

	states := make([]engine.ReminderState, 0, len(chores))
	byID := make(map[string]Chore, len(chores))
	for _, chore := range chores {
		if chore.Completed || chore.NotificationAt.IsZero() {
			continue
		}
		states = append(states, engine.ReminderState{ChoreID: chore.ID, At: chore.NotificationAt})
		byID[chore.ID] = chore
	}

	var triggers []Trigger
	for _, id := range s.evaluator.DueReminders(now, states) {
		chore := byID[id]
		materialized := chore.Clone()
		triggers = append(triggers, s.newTrigger(TriggerChoreReminder, now, Trigger{Chore: &materialized}))
	}
	return triggers, nil
}

func (s *NotificationService) newTrigger(kind string, now time.Time, payload Trigger) Trigger {
	payload.ID = s.idGenerator()
	payload.Kind = kind
	payload.OccurredAt = now
	return payload
}

// publish appends to the recent feed and offers the trigger to the channel.
func (s *NotificationService) publish(trigger Trigger) {
	s.recent = append(s.recent, trigger)
	if len(s.recent) > maxRecentTriggers {
		s.recent = s.recent[len(s.recent)-maxRecentTriggers:]
	}
	select {
	case s.events <- trigger:
	default:
	}
}

// Triggers returns the recent feed, newest last.
func (s *NotificationService) Triggers(ctx context.Context) ([]Trigger, error) {
	if s == nil {
		return nil, fmt.Errorf("NotificationService is nil")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Trigger(nil), s.recent...), nil
}

// AcknowledgeTrigger marks a feed entry as seen.
func (s *NotificationService) AcknowledgeTrigger(ctx context.Context, id string) (trigger Trigger, err error) {
	if s == nil {
		err = fmt.Errorf("NotificationService is nil")
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.recent {
		if s.recent[i].ID == id {
			s.recent[i].Acknowledged = true
			return s.recent[i], nil
		}
	}
	err = fmt.Errorf("%w: trigger %s", ErrNotFound, id)
	return
}

// LedgerSnapshot exports the fired-trigger keys for persistence.
func (s *NotificationService) LedgerSnapshot() []string {
	if s == nil {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.evaluator.Ledger().Snapshot()
}

// RestoreLedger replaces the ledger contents, typically at boot, so
// already-fired triggers stay fired across restarts.
func (s *NotificationService) RestoreLedger(keys []string) {
	if s == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evaluator.Ledger().Restore(keys)
}
