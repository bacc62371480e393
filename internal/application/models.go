package application

import (
	"fmt"
	"time"

	"github.com/example/household-hub/internal/recurrence"
)

// DateLayout is the serialized form of a naive calendar date.
const DateLayout = "2006-01-02"

// DateTimeLayout is the serialized form of a naive local date-time.
const DateTimeLayout = "2006-01-02T15:04"

// ClockLayout is the serialized form of an alarm's minute of day.
const ClockLayout = "15:04"

// Priority orders items for display; it carries no scheduling meaning.
type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

// ParsePriority validates a serialized priority, defaulting empty to Medium.
func ParsePriority(value string) (Priority, error) {
	switch Priority(value) {
	case PriorityHigh, PriorityMedium, PriorityLow:
		return Priority(value), nil
	case "":
		return PriorityMedium, nil
	default:
		return "", fmt.Errorf("unknown priority %q", value)
	}
}

// Person is a household member. People own nothing: chores reference them
// weakly by id, and removing a person never removes chores.
type Person struct {
	ID      string
	Name    string
	Avatar  string
	IsAdult bool
}

// RecurrenceRule mirrors recurrence.Rule at the domain level.
type RecurrenceRule struct {
	Frequency recurrence.Frequency
	Weekdays  []time.Weekday
	Until     *time.Time
}

// EngineRule converts the domain rule into the expander's representation.
func (r *RecurrenceRule) EngineRule() *recurrence.Rule {
	if r == nil {
		return nil
	}
	rule := &recurrence.Rule{Frequency: r.Frequency}
	if len(r.Weekdays) > 0 {
		rule.Weekdays = append([]time.Weekday(nil), r.Weekdays...)
	}
	if r.Until != nil {
		until := recurrence.DateOf(*r.Until)
		rule.Until = &until
	}
	return rule
}

// Chore is the household's schedulable item: a task, an optional anchor
// date, an optional recurrence rule and an optional one-shot reminder.
type Chore struct {
	ID             string
	Task           string
	AssigneeIDs    []string
	Priority       Priority
	DueDate        time.Time // zero when unscheduled
	Recurrence     *RecurrenceRule
	NotificationAt time.Time // zero when no reminder is set
	Completed      bool
	CompletedAt    time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// Clone returns an independent copy; mutating it never affects the original.
func (c Chore) Clone() Chore {
	out := c
	out.AssigneeIDs = append([]string(nil), c.AssigneeIDs...)
	if c.Recurrence != nil {
		rule := *c.Recurrence
		rule.Weekdays = append([]time.Weekday(nil), c.Recurrence.Weekdays...)
		if c.Recurrence.Until != nil {
			until := *c.Recurrence.Until
			rule.Until = &until
		}
		out.Recurrence = &rule
	}
	return out
}

// Occurrence is one concrete calendar-date instance of a chore. The chore is
// a materialized copy with DueDate rewritten to the occurrence date; callers
// cannot mutate the original through it.
type Occurrence struct {
	Date  time.Time
	Chore Chore
}

// Alarm rings at a fixed minute of day, either once or on selected weekdays.
type Alarm struct {
	ID         string
	Time       string // "HH:mm"
	Label      string
	Enabled    bool
	Ringing    bool
	RepeatDays []time.Weekday
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// OneTime reports whether the alarm has no repeat days and therefore fires
// once and disarms on dismissal.
func (a Alarm) OneTime() bool {
	return len(a.RepeatDays) == 0
}

// Clone returns an independent copy of the alarm.
func (a Alarm) Clone() Alarm {
	out := a
	out.RepeatDays = append([]time.Weekday(nil), a.RepeatDays...)
	return out
}

// Timer counts down wall-clock seconds. Timers are created already running
// with the full duration remaining.
type Timer struct {
	ID               string
	Label            string
	DurationSeconds  int
	RemainingSeconds int
	Running          bool
	Finished         bool
	CreatedAt        time.Time
}

// GroceryItem is a shared shopping-list entry.
type GroceryItem struct {
	ID        string
	Name      string
	Completed bool
}

// RoutineStep is one checklist entry inside a routine.
type RoutineStep struct {
	Label     string
	Completed bool
}

// Routine is a named sequence of steps, optionally tied to weekdays.
type Routine struct {
	ID    string
	Name  string
	Icon  string
	Steps []RoutineStep
	Days  []time.Weekday
}

// Clone returns an independent copy of the routine.
func (r Routine) Clone() Routine {
	out := r
	out.Steps = append([]RoutineStep(nil), r.Steps...)
	out.Days = append([]time.Weekday(nil), r.Days...)
	return out
}

var weekdayNames = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// ParseWeekday maps a full English weekday name to its time.Weekday.
func ParseWeekday(name string) (time.Weekday, error) {
	day, ok := weekdayNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", name)
	}
	return day, nil
}

// ParseWeekdays maps a list of weekday names, rejecting the first unknown.
func ParseWeekdays(names []string) ([]time.Weekday, error) {
	if len(names) == 0 {
		return nil, nil
	}
	out := make([]time.Weekday, 0, len(names))
	for _, name := range names {
		day, err := ParseWeekday(name)
		if err != nil {
			return nil, err
		}
		out = append(out, day)
	}
	return out, nil
}

// WeekdayNames renders weekdays back to their full English names.
func WeekdayNames(days []time.Weekday) []string {
	if len(days) == 0 {
		return nil
	}
	out := make([]string, 0, len(days))
	for _, day := range days {
		out = append(out, day.String())
	}
	return out
}

// ParseDate parses a naive YYYY-MM-DD calendar date.
func ParseDate(value string) (time.Time, error) {
	return time.ParseInLocation(DateLayout, value, time.UTC)
}

// ParseDateTime parses a naive YYYY-MM-DDTHH:mm local date-time.
func ParseDateTime(value string) (time.Time, error) {
	return time.ParseInLocation(DateTimeLayout, value, time.UTC)
}

// ToNaive reinterprets an instant as a naive value: its wall-clock reading
// in its own zone, rebuilt in the UTC frame that every stored date and
// date-time uses. A production clock must pass through this before instant
// comparisons against stored values, or reminders on non-UTC hosts shift by
// the zone offset.
func ToNaive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

// ValidClock reports whether value is a well-formed HH:mm minute of day.
func ValidClock(value string) bool {
	_, err := time.Parse(ClockLayout, value)
	return err == nil
}
