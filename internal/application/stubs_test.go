package application

import (
	"context"
	"fmt"
)

// The fakes below back the service tests with a map plus insertion order,
// mirroring how the real stores behave. Each exposes error fields so tests
// can force repository failures.

type fakePersonRepo struct {
	people map[string]Person
	order  []string

	createErr error
	deleteErr error
	deleted   []string
}

func newFakePersonRepo() *fakePersonRepo {
	return &fakePersonRepo{people: make(map[string]Person)}
}

func (r *fakePersonRepo) CreatePerson(ctx context.Context, person Person) (Person, error) {
	if r.createErr != nil {
		return Person{}, r.createErr
	}
	r.people[person.ID] = person
	r.order = append(r.order, person.ID)
	return person, nil
}

func (r *fakePersonRepo) GetPerson(ctx context.Context, id string) (Person, error) {
	person, ok := r.people[id]
	if !ok {
		return Person{}, fmt.Errorf("%w: person %s", ErrNotFound, id)
	}
	return person, nil
}

func (r *fakePersonRepo) UpdatePerson(ctx context.Context, person Person) (Person, error) {
	if _, ok := r.people[person.ID]; !ok {
		return Person{}, fmt.Errorf("%w: person %s", ErrNotFound, person.ID)
	}
	r.people[person.ID] = person
	return person, nil
}

func (r *fakePersonRepo) DeletePerson(ctx context.Context, id string) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	if _, ok := r.people[id]; !ok {
		return fmt.Errorf("%w: person %s", ErrNotFound, id)
	}
	delete(r.people, id)
	r.deleted = append(r.deleted, id)
	return nil
}

func (r *fakePersonRepo) ListPeople(ctx context.Context) ([]Person, error) {
	out := make([]Person, 0, len(r.people))
	for _, id := range r.order {
		if person, ok := r.people[id]; ok {
			out = append(out, person)
		}
	}
	return out, nil
}

func (r *fakePersonRepo) FilterKnownPeople(ctx context.Context, ids []string) ([]string, error) {
	var known []string
	for _, id := range ids {
		if _, ok := r.people[id]; ok {
			known = append(known, id)
		}
	}
	return known, nil
}

type fakeChoreRepo struct {
	chores map[string]Chore
	order  []string

	updateErr error
	removed   []string // person ids passed to RemoveAssignee
}

func newFakeChoreRepo() *fakeChoreRepo {
	return &fakeChoreRepo{chores: make(map[string]Chore)}
}

func (r *fakeChoreRepo) CreateChore(ctx context.Context, chore Chore) (Chore, error) {
	r.chores[chore.ID] = chore
	r.order = append(r.order, chore.ID)
	return chore, nil
}

func (r *fakeChoreRepo) GetChore(ctx context.Context, id string) (Chore, error) {
	chore, ok := r.chores[id]
	if !ok {
		return Chore{}, fmt.Errorf("%w: chore %s", ErrNotFound, id)
	}
	return chore, nil
}

func (r *fakeChoreRepo) UpdateChore(ctx context.Context, chore Chore) (Chore, error) {
	if r.updateErr != nil {
		return Chore{}, r.updateErr
	}
	if _, ok := r.chores[chore.ID]; !ok {
		return Chore{}, fmt.Errorf("%w: chore %s", ErrNotFound, chore.ID)
	}
	r.chores[chore.ID] = chore
	return chore, nil
}

func (r *fakeChoreRepo) DeleteChore(ctx context.Context, id string) error {
	if _, ok := r.chores[id]; !ok {
		return fmt.Errorf("%w: chore %s", ErrNotFound, id)
	}
	delete(r.chores, id)
	return nil
}

func (r *fakeChoreRepo) ListChores(ctx context.Context) ([]Chore, error) {
	out := make([]Chore, 0, len(r.chores))
	for _, id := range r.order {
		if chore, ok := r.chores[id]; ok {
			out = append(out, chore)
		}
	}
	return out, nil
}

func (r *fakeChoreRepo) RemoveAssignee(ctx context.Context, personID string) error {
	r.removed = append(r.removed, personID)
	for id, chore := range r.chores {
		kept := chore.AssigneeIDs[:0]
		for _, assignee := range chore.AssigneeIDs {
			if assignee != personID {
				kept = append(kept, assignee)
			}
		}
		chore.AssigneeIDs = kept
		r.chores[id] = chore
	}
	return nil
}

type fakeAlarmRepo struct {
	alarms map[string]Alarm
	order  []string
}

func newFakeAlarmRepo() *fakeAlarmRepo {
	return &fakeAlarmRepo{alarms: make(map[string]Alarm)}
}

func (r *fakeAlarmRepo) CreateAlarm(ctx context.Context, alarm Alarm) (Alarm, error) {
	r.alarms[alarm.ID] = alarm
	r.order = append(r.order, alarm.ID)
	return alarm, nil
}

func (r *fakeAlarmRepo) GetAlarm(ctx context.Context, id string) (Alarm, error) {
	alarm, ok := r.alarms[id]
	if !ok {
		return Alarm{}, fmt.Errorf("%w: alarm %s", ErrNotFound, id)
	}
	return alarm, nil
}

func (r *fakeAlarmRepo) UpdateAlarm(ctx context.Context, alarm Alarm) (Alarm, error) {
	if _, ok := r.alarms[alarm.ID]; !ok {
		return Alarm{}, fmt.Errorf("%w: alarm %s", ErrNotFound, alarm.ID)
	}
	r.alarms[alarm.ID] = alarm
	return alarm, nil
}

func (r *fakeAlarmRepo) DeleteAlarm(ctx context.Context, id string) error {
	if _, ok := r.alarms[id]; !ok {
		return fmt.Errorf("%w: alarm %s", ErrNotFound, id)
	}
	delete(r.alarms, id)
	return nil
}

func (r *fakeAlarmRepo) ListAlarms(ctx context.Context) ([]Alarm, error) {
	out := make([]Alarm, 0, len(r.alarms))
	for _, id := range r.order {
		if alarm, ok := r.alarms[id]; ok {
			out = append(out, alarm)
		}
	}
	return out, nil
}

type fakeTimerRepo struct {
	timers map[string]Timer
	order  []string
}

func newFakeTimerRepo() *fakeTimerRepo {
	return &fakeTimerRepo{timers: make(map[string]Timer)}
}

func (r *fakeTimerRepo) CreateTimer(ctx context.Context, timer Timer) (Timer, error) {
	r.timers[timer.ID] = timer
	r.order = append(r.order, timer.ID)
	return timer, nil
}

func (r *fakeTimerRepo) GetTimer(ctx context.Context, id string) (Timer, error) {
	timer, ok := r.timers[id]
	if !ok {
		return Timer{}, fmt.Errorf("%w: timer %s", ErrNotFound, id)
	}
	return timer, nil
}

func (r *fakeTimerRepo) UpdateTimer(ctx context.Context, timer Timer) (Timer, error) {
	if _, ok := r.timers[timer.ID]; !ok {
		return Timer{}, fmt.Errorf("%w: timer %s", ErrNotFound, timer.ID)
	}
	r.timers[timer.ID] = timer
	return timer, nil
}

func (r *fakeTimerRepo) DeleteTimer(ctx context.Context, id string) error {
	if _, ok := r.timers[id]; !ok {
		return fmt.Errorf("%w: timer %s", ErrNotFound, id)
	}
	delete(r.timers, id)
	return nil
}

func (r *fakeTimerRepo) ListTimers(ctx context.Context) ([]Timer, error) {
	out := make([]Timer, 0, len(r.timers))
	for _, id := range r.order {
		if timer, ok := r.timers[id]; ok {
			out = append(out, timer)
		}
	}
	return out, nil
}

type fakeGroceryRepo struct {
	items map[string]GroceryItem
	order []string
}

func newFakeGroceryRepo() *fakeGroceryRepo {
	return &fakeGroceryRepo{items: make(map[string]GroceryItem)}
}

func (r *fakeGroceryRepo) CreateGroceryItem(ctx context.Context, item GroceryItem) (GroceryItem, error) {
	r.items[item.ID] = item
	r.order = append(r.order, item.ID)
	return item, nil
}

func (r *fakeGroceryRepo) GetGroceryItem(ctx context.Context, id string) (GroceryItem, error) {
	item, ok := r.items[id]
	if !ok {
		return GroceryItem{}, fmt.Errorf("%w: grocery item %s", ErrNotFound, id)
	}
	return item, nil
}

func (r *fakeGroceryRepo) UpdateGroceryItem(ctx context.Context, item GroceryItem) (GroceryItem, error) {
	if _, ok := r.items[item.ID]; !ok {
		return GroceryItem{}, fmt.Errorf("%w: grocery item %s", ErrNotFound, item.ID)
	}
	r.items[item.ID] = item
	return item, nil
}

func (r *fakeGroceryRepo) DeleteGroceryItem(ctx context.Context, id string) error {
	if _, ok := r.items[id]; !ok {
		return fmt.Errorf("%w: grocery item %s", ErrNotFound, id)
	}
	delete(r.items, id)
	return nil
}

func (r *fakeGroceryRepo) ListGroceryItems(ctx context.Context) ([]GroceryItem, error) {
	out := make([]GroceryItem, 0, len(r.items))
	for _, id := range r.order {
		if item, ok := r.items[id]; ok {
			out = append(out, item)
		}
	}
	return out, nil
}

type fakeRoutineRepo struct {
	routines map[string]Routine
	order    []string
}

func newFakeRoutineRepo() *fakeRoutineRepo {
	return &fakeRoutineRepo{routines: make(map[string]Routine)}
}

func (r *fakeRoutineRepo) CreateRoutine(ctx context.Context, routine Routine) (Routine, error) {
	r.routines[routine.ID] = routine
	r.order = append(r.order, routine.ID)
	return routine, nil
}

func (r *fakeRoutineRepo) GetRoutine(ctx context.Context, id string) (Routine, error) {
	routine, ok := r.routines[id]
	if !ok {
		return Routine{}, fmt.Errorf("%w: routine %s", ErrNotFound, id)
	}
	return routine, nil
}

func (r *fakeRoutineRepo) UpdateRoutine(ctx context.Context, routine Routine) (Routine, error) {
	if _, ok := r.routines[routine.ID]; !ok {
		return Routine{}, fmt.Errorf("%w: routine %s", ErrNotFound, routine.ID)
	}
	r.routines[routine.ID] = routine
	return routine, nil
}

func (r *fakeRoutineRepo) DeleteRoutine(ctx context.Context, id string) error {
	if _, ok := r.routines[id]; !ok {
		return fmt.Errorf("%w: routine %s", ErrNotFound, id)
	}
	delete(r.routines, id)
	return nil
}

func (r *fakeRoutineRepo) ListRoutines(ctx context.Context) ([]Routine, error) {
	out := make([]Routine, 0, len(r.routines))
	for _, id := range r.order {
		if routine, ok := r.routines[id]; ok {
			out = append(out, routine)
		}
	}
	return out, nil
}

// sequentialIDs returns an id generator yielding prefix-1, prefix-2, ...
func sequentialIDs(prefix string) func() string {
	counter := 0
	return func() string {
		counter++
		return fmt.Sprintf("%s-%d", prefix, counter)
	}
}
