package intent

import (
	"context"
	"fmt"

	"github.com/example/household-hub/internal/application"
	"github.com/example/household-hub/internal/recurrence"
)

// Known navigation targets a client can be sent to.
var navigationTargets = map[string]struct{}{
	"dashboard": {},
	"calendar":  {},
	"chores":    {},
	"groceries": {},
	"routines":  {},
	"alarms":    {},
	"timers":    {},
	"people":    {},
}

// Result carries the outcome of one dispatched intent. For state-changing
// intents the affected entity is set; Navigate only sets Navigation.
type Result struct {
	Chore      *application.Chore
	Grocery    *application.GroceryItem
	Timer      *application.Timer
	Alarm      *application.Alarm
	DeletedID  string
	Navigation string
}

// Dispatcher routes decoded intents into the application services.
type Dispatcher struct {
	chores    *application.ChoreService
	groceries *application.GroceryService
	timers    *application.TimerService
	alarms    *application.AlarmService
}

func NewDispatcher(chores *application.ChoreService, groceries *application.GroceryService, timers *application.TimerService, alarms *application.AlarmService) *Dispatcher {
	return &Dispatcher{chores: chores, groceries: groceries, timers: timers, alarms: alarms}
}

// Dispatch executes one intent. The switch is exhaustive over the Intent
// variants; an unhandled variant is a programming error.
func (d *Dispatcher) Dispatch(ctx context.Context, in Intent) (Result, error) {
	switch v := in.(type) {
	case CreateChore:
		input, err := choreInput(v)
		if err != nil {
			return Result{}, err
		}
		chore, err := d.chores.CreateChore(ctx, input)
		if err != nil {
			return Result{}, err
		}
		return Result{Chore: &chore}, nil

	case UpdateChore:
		input, err := choreInput(v.CreateChore)
		if err != nil {
			return Result{}, err
		}
		chore, err := d.chores.UpdateChore(ctx, v.ID, input)
		if err != nil {
			return Result{}, err
		}
		return Result{Chore: &chore}, nil

	case DeleteChore:
		if err := d.chores.DeleteChore(ctx, v.ID); err != nil {
			return Result{}, err
		}
		return Result{DeletedID: v.ID}, nil

	case ToggleChore:
		chore, err := d.chores.ToggleChore(ctx, v.ID)
		if err != nil {
			return Result{}, err
		}
		return Result{Chore: &chore}, nil

	case AddGrocery:
		item, err := d.groceries.AddItem(ctx, v.Name)
		if err != nil {
			return Result{}, err
		}
		return Result{Grocery: &item}, nil

	case StartTimer:
		timer, err := d.timers.StartTimer(ctx, application.TimerInput{
			Label:           v.Label,
			DurationSeconds: v.DurationSeconds,
		})
		if err != nil {
			return Result{}, err
		}
		return Result{Timer: &timer}, nil

	case CreateAlarm:
		repeatDays, err := application.ParseWeekdays(v.RepeatDays)
		if err != nil {
			vErr := &application.ValidationError{}
			vErr.Add("repeat_days", err.Error())
			return Result{}, vErr
		}
		alarm, err := d.alarms.CreateAlarm(ctx, application.AlarmInput{
			Time:       v.Time,
			Label:      v.Label,
			RepeatDays: repeatDays,
		})
		if err != nil {
			return Result{}, err
		}
		return Result{Alarm: &alarm}, nil

	case Navigate:
		if _, ok := navigationTargets[v.Target]; !ok {
			vErr := &application.ValidationError{}
			vErr.Add("target", fmt.Sprintf("unknown navigation target %q", v.Target))
			return Result{}, vErr
		}
		return Result{Navigation: v.Target}, nil

	default:
		return Result{}, fmt.Errorf("intent: unhandled intent %T", in)
	}
}

// choreInput converts the wire fields into a validated service input. Parse
// failures accumulate field by field like the service validators do.
func choreInput(v CreateChore) (application.ChoreInput, error) {
	vErr := &application.ValidationError{}
	input := application.ChoreInput{
		Task:        v.Task,
		AssigneeIDs: v.Assignees,
	}

	priority, err := application.ParsePriority(v.Priority)
	if err != nil {
		vErr.Add("priority", err.Error())
	}
	input.Priority = priority

	if v.DueDate != "" {
		input.DueDate, err = application.ParseDate(v.DueDate)
		if err != nil {
			vErr.Add("due_date", err.Error())
		}
	}
	if v.NotificationAt != "" {
		input.NotificationAt, err = application.ParseDateTime(v.NotificationAt)
		if err != nil {
			vErr.Add("notification_at", err.Error())
		}
	}

	if v.Frequency != "" {
		frequency, err := recurrence.ParseFrequency(v.Frequency)
		if err != nil {
			vErr.Add("frequency", fmt.Sprintf("unknown frequency %q", v.Frequency))
		}
		rule := application.RecurrenceRule{Frequency: frequency}
		rule.Weekdays, err = application.ParseWeekdays(v.Weekdays)
		if err != nil {
			vErr.Add("weekdays", err.Error())
		}
		if v.Until != "" {
			until, err := application.ParseDate(v.Until)
			if err != nil {
				vErr.Add("until", err.Error())
			} else {
				rule.Until = &until
			}
		}
		input.Recurrence = &rule
	} else if len(v.Weekdays) > 0 || v.Until != "" {
		vErr.Add("frequency", "weekdays and until need a frequency")
	}

	if vErr.HasErrors() {
		return application.ChoreInput{}, vErr
	}
	return input, nil
}
