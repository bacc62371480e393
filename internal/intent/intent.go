// Package intent models the already-parsed command vocabulary of the
// assistant. Commands arrive as a discriminated JSON envelope, decode into
// one variant of the Intent sum type and dispatch into the application
// services. Natural-language parsing happens upstream and is out of scope.
package intent

import (
	"encoding/json"
	"fmt"
)

// Intent is one decoded assistant command.
type Intent interface {
	isIntent()
}

// CreateChore adds a chore, optionally scheduled and recurring. Dates use
// "2006-01-02", instants "2006-01-02T15:04", weekdays full English names.
type CreateChore struct {
	Task           string   `json:"task"`
	Assignees      []string `json:"assignees,omitempty"`
	Priority       string   `json:"priority,omitempty"`
	DueDate        string   `json:"due_date,omitempty"`
	Frequency      string   `json:"frequency,omitempty"`
	Weekdays       []string `json:"weekdays,omitempty"`
	Until          string   `json:"until,omitempty"`
	NotificationAt string   `json:"notification_at,omitempty"`
}

// UpdateChore replaces an existing chore's fields.
type UpdateChore struct {
	ID string `json:"id"`
	CreateChore
}

// DeleteChore removes a chore.
type DeleteChore struct {
	ID string `json:"id"`
}

// ToggleChore flips a chore's completion state.
type ToggleChore struct {
	ID string `json:"id"`
}

// AddGrocery appends an item to the shopping list.
type AddGrocery struct {
	Name string `json:"name"`
}

// StartTimer starts a countdown.
type StartTimer struct {
	Label           string `json:"label"`
	DurationSeconds int    `json:"duration_seconds"`
}

// CreateAlarm arms a new alarm.
type CreateAlarm struct {
	Time       string   `json:"time"`
	Label      string   `json:"label"`
	RepeatDays []string `json:"repeat_days,omitempty"`
}

// Navigate asks the client to show a view; it touches no state.
type Navigate struct {
	Target string `json:"target"`
}

func (CreateChore) isIntent() {}
func (UpdateChore) isIntent() {}
func (DeleteChore) isIntent() {}
func (ToggleChore) isIntent() {}
func (AddGrocery) isIntent()  {}
func (StartTimer) isIntent()  {}
func (CreateAlarm) isIntent() {}
func (Navigate) isIntent()    {}

// Action names on the wire.
const (
	ActionCreateChore = "create_chore"
	ActionUpdateChore = "update_chore"
	ActionDeleteChore = "delete_chore"
	ActionToggleChore = "toggle_chore"
	ActionAddGrocery  = "add_grocery"
	ActionStartTimer  = "start_timer"
	ActionCreateAlarm = "create_alarm"
	ActionNavigate    = "navigate"
)

// Decode parses the JSON envelope into its intent variant. Unknown actions
// are an error, never a silent no-op.
func Decode(data []byte) (Intent, error) {
	var envelope struct {
		Action string `json:"action"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("intent: decode envelope: %w", err)
	}

	switch envelope.Action {
	case ActionCreateChore:
		return decodeAs[CreateChore](data)
	case ActionUpdateChore:
		return decodeAs[UpdateChore](data)
	case ActionDeleteChore:
		return decodeAs[DeleteChore](data)
	case ActionToggleChore:
		return decodeAs[ToggleChore](data)
	case ActionAddGrocery:
		return decodeAs[AddGrocery](data)
	case ActionStartTimer:
		return decodeAs[StartTimer](data)
	case ActionCreateAlarm:
		return decodeAs[CreateAlarm](data)
	case ActionNavigate:
		return decodeAs[Navigate](data)
	case "":
		return nil, fmt.Errorf("intent: missing action")
	default:
		return nil, fmt.Errorf("intent: unknown action %q", envelope.Action)
	}
}

func decodeAs[T Intent](data []byte) (Intent, error) {
	var value T
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("intent: decode %T: %w", value, err)
	}
	return value, nil
}
