package persistence

import "time"

// PersonRecord is the stored form of a household member.
type PersonRecord struct {
	ID      string
	Name    string
	Avatar  string
	IsAdult bool
}

// RecurrenceRecord is the stored form of a recurrence rule. Frequency is the
// serialized name ("daily", "weekly", ...), weekdays are full English names
// and Until is a "2006-01-02" date or empty.
type RecurrenceRecord struct {
	Frequency string
	Weekdays  []string
	Until     string
}

// ChoreRecord is the stored form of a chore. Dates use "2006-01-02" and
// instants use "2006-01-02T15:04"; absent values are empty strings.
type ChoreRecord struct {
	ID             string
	Task           string
	AssigneeIDs    []string
	Priority       string
	DueDate        string
	Recurrence     *RecurrenceRecord
	NotificationAt string
	Completed      bool
	CompletedAt    string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// AlarmRecord is the stored form of an alarm. Ringing is deliberately not
// stored: a ringing alarm falls back to armed-but-silent after a restart.
type AlarmRecord struct {
	ID         string
	Time       string
	Label      string
	Enabled    bool
	RepeatDays []string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// TimerRecord is the stored form of a countdown timer.
type TimerRecord struct {
	ID               string
	Label            string
	DurationSeconds  int
	RemainingSeconds int
	Running          bool
	Finished         bool
	CreatedAt        time.Time
}

// GroceryRecord is the stored form of a shopping-list entry.
type GroceryRecord struct {
	ID        string
	Name      string
	Completed bool
}

// RoutineStepRecord is one stored checklist step.
type RoutineStepRecord struct {
	Label     string
	Completed bool
}

// RoutineRecord is the stored form of a routine.
type RoutineRecord struct {
	ID    string
	Name  string
	Icon  string
	Steps []RoutineStepRecord
	Days  []string
}

// Snapshot is the whole household state at one revision. The slices preserve
// creation order; LedgerKeys carries the already-fired trigger keys so
// restarts do not re-fire notifications.
type Snapshot struct {
	Revision   uint64
	SavedAt    time.Time
	People     []PersonRecord
	Chores     []ChoreRecord
	Alarms     []AlarmRecord
	Timers     []TimerRecord
	Groceries  []GroceryRecord
	Routines   []RoutineRecord
	LedgerKeys []string
}
