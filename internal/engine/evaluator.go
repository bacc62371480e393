package engine

import "time"

// AlarmState is the slice of alarm data the evaluator needs. The application
// layer converts its richer alarm model down to this shape each tick.
type AlarmState struct {
	ID         string
	Time       string // "HH:mm"
	Enabled    bool
	Ringing    bool
	RepeatDays []time.Weekday
}

// ReminderState is a pending one-shot reminder attached to a schedulable item.
type ReminderState struct {
	ChoreID string
	At      time.Time
}

// Evaluator decides, per tick, which triggers are due. It consults the ledger
// before reporting a match and records the key immediately, so a caller that
// acts on the returned ids observes at-most-once semantics per logical
// occurrence.
type Evaluator struct {
	ledger *Ledger
}

// NewEvaluator wires an evaluator to its dedupe ledger. A nil ledger is
// replaced with an empty one.
func NewEvaluator(ledger *Ledger) *Evaluator {
	if ledger == nil {
		ledger = NewLedger()
	}
	return &Evaluator{ledger: ledger}
}

// Ledger exposes the evaluator's ledger for snapshotting.
func (e *Evaluator) Ledger() *Ledger {
	if e == nil {
		return nil
	}
	return e.ledger
}

// DueAlarms returns the ids of alarms that should start ringing at now.
//
// An alarm matches when it is enabled, not already ringing, its HH:mm equals
// the current minute, and either it has no repeat days (one-time) or the
// current weekday is among them. The ledger key is scoped to the calendar
// day, so the sixty ticks inside the matching minute report the alarm once.
func (e *Evaluator) DueAlarms(now time.Time, alarms []AlarmState) []string {
	minute := now.Format("15:04")
	weekday := now.Weekday()

	var due []string
	for _, alarm := range alarms {
		if !alarm.Enabled || alarm.Ringing {
			continue
		}
		if alarm.Time != minute {
			continue
		}
		if len(alarm.RepeatDays) > 0 && !containsWeekday(alarm.RepeatDays, weekday) {
			continue
		}
		if e.ledger.MarkOnce(AlarmKey(alarm.ID, now)) {
			due = append(due, alarm.ID)
		}
	}
	return due
}

// DueReminders returns the ids of items whose reminder instant has been
// reached. Matching is fire-at-or-after: a reminder is not lost when the tick
// loop was delayed past the exact second.
func (e *Evaluator) DueReminders(now time.Time, reminders []ReminderState) []string {
	var due []string
	for _, reminder := range reminders {
		if reminder.At.IsZero() || now.Before(reminder.At) {
			continue
		}
		if e.ledger.MarkOnce(ReminderKey(reminder.ChoreID)) {
			due = append(due, reminder.ChoreID)
		}
	}
	return due
}

func containsWeekday(days []time.Weekday, day time.Weekday) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}
