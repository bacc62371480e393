package testfixtures

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/example/household-hub/internal/application"
	"github.com/example/household-hub/internal/recurrence"
)

var (
	personCounter uint64
	choreCounter  uint64
	alarmCounter  uint64
	timerCounter  uint64
)

var referenceTime = time.Date(2025, time.March, 3, 8, 0, 0, 0, time.UTC)

// ReferenceTime returns the canonical baseline timestamp used by fixtures.
// It falls on a Monday.
func ReferenceTime() time.Time {
	return referenceTime
}

// ---------------------------- Person fixtures ----------------------------

// PersonOption configures a generated person fixture.
type PersonOption func(*application.Person)

// NewPersonFixture returns a deterministic person with optional overrides.
func NewPersonFixture(opts ...PersonOption) application.Person {
	idx := atomic.AddUint64(&personCounter, 1)
	person := application.Person{
		ID:      fmt.Sprintf("person-%03d", idx),
		Name:    fmt.Sprintf("Person %03d", idx),
		IsAdult: true,
	}
	for _, opt := range opts {
		opt(&person)
	}
	return person
}

// WithPersonID overrides the generated person ID.
func WithPersonID(id string) PersonOption {
	return func(p *application.Person) { p.ID = id }
}

// WithPersonName overrides the generated name.
func WithPersonName(name string) PersonOption {
	return func(p *application.Person) { p.Name = name }
}

// WithPersonAdult sets the adult flag.
func WithPersonAdult(isAdult bool) PersonOption {
	return func(p *application.Person) { p.IsAdult = isAdult }
}

// ---------------------------- Chore fixtures -----------------------------

// ChoreOption configures a generated chore fixture.
type ChoreOption func(*application.Chore)

// NewChoreFixture returns a deterministic chore with optional overrides. The
// chore is due on the reference date and carries no recurrence.
func NewChoreFixture(opts ...ChoreOption) application.Chore {
	idx := atomic.AddUint64(&choreCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	chore := application.Chore{
		ID:        fmt.Sprintf("chore-%03d", idx),
		Task:      fmt.Sprintf("Task %03d", idx),
		Priority:  application.PriorityMedium,
		DueDate:   recurrence.DateOf(referenceTime),
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&chore)
	}
	return chore
}

// WithChoreID overrides the generated chore ID.
func WithChoreID(id string) ChoreOption {
	return func(c *application.Chore) { c.ID = id }
}

// WithChoreTask overrides the task text.
func WithChoreTask(task string) ChoreOption {
	return func(c *application.Chore) { c.Task = task }
}

// WithChoreAssignees sets the assignee ids.
func WithChoreAssignees(ids ...string) ChoreOption {
	return func(c *application.Chore) { c.AssigneeIDs = ids }
}

// WithChoreDueDate sets the anchor date.
func WithChoreDueDate(due time.Time) ChoreOption {
	return func(c *application.Chore) { c.DueDate = recurrence.DateOf(due) }
}

// WithChoreRecurrence sets the recurrence rule.
func WithChoreRecurrence(rule *application.RecurrenceRule) ChoreOption {
	return func(c *application.Chore) { c.Recurrence = rule }
}

// WithChoreNotificationAt sets the reminder instant.
func WithChoreNotificationAt(at time.Time) ChoreOption {
	return func(c *application.Chore) { c.NotificationAt = at }
}

// WithChoreCompleted marks the chore completed.
func WithChoreCompleted(at time.Time) ChoreOption {
	return func(c *application.Chore) {
		c.Completed = true
		c.CompletedAt = at
	}
}

// ---------------------------- Alarm fixtures -----------------------------

// AlarmOption configures a generated alarm fixture.
type AlarmOption func(*application.Alarm)

// NewAlarmFixture returns a deterministic enabled alarm with optional
// overrides.
func NewAlarmFixture(opts ...AlarmOption) application.Alarm {
	idx := atomic.AddUint64(&alarmCounter, 1)
	created := referenceTime.Add(time.Duration(idx) * time.Minute)
	alarm := application.Alarm{
		ID:        fmt.Sprintf("alarm-%03d", idx),
		Time:      "07:00",
		Label:     fmt.Sprintf("Alarm %03d", idx),
		Enabled:   true,
		CreatedAt: created,
		UpdatedAt: created,
	}
	for _, opt := range opts {
		opt(&alarm)
	}
	return alarm
}

// WithAlarmID overrides the generated alarm ID.
func WithAlarmID(id string) AlarmOption {
	return func(a *application.Alarm) { a.ID = id }
}

// WithAlarmTime sets the ring minute, "HH:mm".
func WithAlarmTime(clock string) AlarmOption {
	return func(a *application.Alarm) { a.Time = clock }
}

// WithAlarmEnabled sets the enabled flag.
func WithAlarmEnabled(enabled bool) AlarmOption {
	return func(a *application.Alarm) { a.Enabled = enabled }
}

// WithAlarmRepeatDays sets the repeat weekdays.
func WithAlarmRepeatDays(days ...time.Weekday) AlarmOption {
	return func(a *application.Alarm) { a.RepeatDays = days }
}

// ---------------------------- Timer fixtures -----------------------------

// TimerOption configures a generated timer fixture.
type TimerOption func(*application.Timer)

// NewTimerFixture returns a deterministic running timer with optional
// overrides.
func NewTimerFixture(opts ...TimerOption) application.Timer {
	idx := atomic.AddUint64(&timerCounter, 1)
	timer := application.Timer{
		ID:               fmt.Sprintf("timer-%03d", idx),
		Label:            fmt.Sprintf("Timer %03d", idx),
		DurationSeconds:  60,
		RemainingSeconds: 60,
		Running:          true,
		CreatedAt:        referenceTime.Add(time.Duration(idx) * time.Minute),
	}
	for _, opt := range opts {
		opt(&timer)
	}
	return timer
}

// WithTimerID overrides the generated timer ID.
func WithTimerID(id string) TimerOption {
	return func(t *application.Timer) { t.ID = id }
}

// WithTimerRemaining sets both duration and remaining seconds.
func WithTimerRemaining(seconds int) TimerOption {
	return func(t *application.Timer) {
		t.DurationSeconds = seconds
		t.RemainingSeconds = seconds
	}
}

// WithTimerRunning sets the running flag.
func WithTimerRunning(running bool) TimerOption {
	return func(t *application.Timer) { t.Running = running }
}
