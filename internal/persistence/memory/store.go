// Package memory holds the runtime state of the household. It is the source
// of truth while the process runs; the sqlite package archives snapshots of
// it so state survives restarts.
package memory

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/example/household-hub/internal/application"
	"github.com/example/household-hub/internal/persistence"
	"github.com/example/household-hub/internal/recurrence"
)

// Store keeps every household collection in maps guarded by one lock. It
// implements the application repository interfaces, so all reads and writes
// from the services and the notification tick stay in memory.
type Store struct {
	mu       sync.RWMutex
	revision uint64

	people      map[string]application.Person
	peopleOrder []string

	chores     map[string]application.Chore
	choreOrder []string

	alarms     map[string]application.Alarm
	alarmOrder []string

	timers     map[string]application.Timer
	timerOrder []string

	groceries    map[string]application.GroceryItem
	groceryOrder []string

	routines     map[string]application.Routine
	routineOrder []string

	ledgerKeys []string
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		people:    make(map[string]application.Person),
		chores:    make(map[string]application.Chore),
		alarms:    make(map[string]application.Alarm),
		timers:    make(map[string]application.Timer),
		groceries: make(map[string]application.GroceryItem),
		routines:  make(map[string]application.Routine),
	}
}

// Revision reports the mutation counter. The snapshot writer uses it to skip
// saves when nothing changed.
func (s *Store) Revision() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.revision
}

func (s *Store) bumpLocked() {
	s.revision++
}

// ------------------------------ People ------------------------------

func (s *Store) CreatePerson(ctx context.Context, person application.Person) (application.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.people[person.ID]; ok {
		return application.Person{}, fmt.Errorf("memory: person %s already exists", person.ID)
	}
	s.people[person.ID] = person
	s.peopleOrder = append(s.peopleOrder, person.ID)
	s.bumpLocked()
	return person, nil
}

func (s *Store) GetPerson(ctx context.Context, id string) (application.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	person, ok := s.people[id]
	if !ok {
		return application.Person{}, fmt.Errorf("%w: person %s", application.ErrNotFound, id)
	}
	return person, nil
}

func (s *Store) UpdatePerson(ctx context.Context, person application.Person) (application.Person, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.people[person.ID]; !ok {
		return application.Person{}, fmt.Errorf("%w: person %s", application.ErrNotFound, person.ID)
	}
	s.people[person.ID] = person
	s.bumpLocked()
	return person, nil
}

func (s *Store) DeletePerson(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.people[id]; !ok {
		return fmt.Errorf("%w: person %s", application.ErrNotFound, id)
	}
	delete(s.people, id)
	s.peopleOrder = removeID(s.peopleOrder, id)
	s.bumpLocked()
	return nil
}

func (s *Store) ListPeople(ctx context.Context) ([]application.Person, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]application.Person, 0, len(s.peopleOrder))
	for _, id := range s.peopleOrder {
		out = append(out, s.people[id])
	}
	return out, nil
}

// FilterKnownPeople keeps only ids that resolve to stored people, preserving
// the input order.
func (s *Store) FilterKnownPeople(ctx context.Context, ids []string) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var known []string
	for _, id := range ids {
		if _, ok := s.people[id]; ok {
			known = append(known, id)
		}
	}
	return known, nil
}

// ------------------------------ Chores ------------------------------

func (s *Store) CreateChore(ctx context.Context, chore application.Chore) (application.Chore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.chores[chore.ID]; ok {
		return application.Chore{}, fmt.Errorf("memory: chore %s already exists", chore.ID)
	}
	s.chores[chore.ID] = chore.Clone()
	s.choreOrder = append(s.choreOrder, chore.ID)
	s.bumpLocked()
	return chore, nil
}

func (s *Store) GetChore(ctx context.Context, id string) (application.Chore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	chore, ok := s.chores[id]
	if !ok {
		return application.Chore{}, fmt.Errorf("%w: chore %s", application.ErrNotFound, id)
	}
	return chore.Clone(), nil
}

func (s *Store) UpdateChore(ctx context.Context, chore application.Chore) (application.Chore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.chores[chore.ID]; !ok {
		return application.Chore{}, fmt.Errorf("%w: chore %s", application.ErrNotFound, chore.ID)
	}
	s.chores[chore.ID] = chore.Clone()
	s.bumpLocked()
	return chore, nil
}

func (s *Store) DeleteChore(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.chores[id]; !ok {
		return fmt.Errorf("%w: chore %s", application.ErrNotFound, id)
	}
	delete(s.chores, id)
	s.choreOrder = removeID(s.choreOrder, id)
	s.bumpLocked()
	return nil
}

func (s *Store) ListChores(ctx context.Context) ([]application.Chore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]application.Chore, 0, len(s.choreOrder))
	for _, id := range s.choreOrder {
		out = append(out, s.chores[id].Clone())
	}
	return out, nil
}

// RemoveAssignee strips the person from every chore's assignee list. Chores
// themselves are never deleted here.
func (s *Store) RemoveAssignee(ctx context.Context, personID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	changed := false
	for id, chore := range s.chores {
		kept := make([]string, 0, len(chore.AssigneeIDs))
		for _, assignee := range chore.AssigneeIDs {
			if assignee != personID {
				kept = append(kept, assignee)
			}
		}
		if len(kept) != len(chore.AssigneeIDs) {
			chore.AssigneeIDs = kept
			s.chores[id] = chore
			changed = true
		}
	}
	if changed {
		s.bumpLocked()
	}
	return nil
}

// ------------------------------ Alarms ------------------------------

func (s *Store) CreateAlarm(ctx context.Context, alarm application.Alarm) (application.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.alarms[alarm.ID]; ok {
		return application.Alarm{}, fmt.Errorf("memory: alarm %s already exists", alarm.ID)
	}
	s.alarms[alarm.ID] = alarm.Clone()
	s.alarmOrder = append(s.alarmOrder, alarm.ID)
	s.bumpLocked()
	return alarm, nil
}

func (s *Store) GetAlarm(ctx context.Context, id string) (application.Alarm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	alarm, ok := s.alarms[id]
	if !ok {
		return application.Alarm{}, fmt.Errorf("%w: alarm %s", application.ErrNotFound, id)
	}
	return alarm.Clone(), nil
}

func (s *Store) UpdateAlarm(ctx context.Context, alarm application.Alarm) (application.Alarm, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.alarms[alarm.ID]; !ok {
		return application.Alarm{}, fmt.Errorf("%w: alarm %s", application.ErrNotFound, alarm.ID)
	}
	s.alarms[alarm.ID] = alarm.Clone()
	s.bumpLocked()
	return alarm, nil
}

func (s *Store) DeleteAlarm(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.alarms[id]; !ok {
		return fmt.Errorf("%w: alarm %s", application.ErrNotFound, id)
	}
	delete(s.alarms, id)
	s.alarmOrder = removeID(s.alarmOrder, id)
	s.bumpLocked()
	return nil
}

func (s *Store) ListAlarms(ctx context.Context) ([]application.Alarm, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]application.Alarm, 0, len(s.alarmOrder))
	for _, id := range s.alarmOrder {
		out = append(out, s.alarms[id].Clone())
	}
	return out, nil
}

// ------------------------------ Timers ------------------------------

func (s *Store) CreateTimer(ctx context.Context, timer application.Timer) (application.Timer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.timers[timer.ID]; ok {
		return application.Timer{}, fmt.Errorf("memory: timer %s already exists", timer.ID)
	}
	s.timers[timer.ID] = timer
	s.timerOrder = append(s.timerOrder, timer.ID)
	s.bumpLocked()
	return timer, nil
}

func (s *Store) GetTimer(ctx context.Context, id string) (application.Timer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	timer, ok := s.timers[id]
	if !ok {
		return application.Timer{}, fmt.Errorf("%w: timer %s", application.ErrNotFound, id)
	}
	return timer, nil
}

func (s *Store) UpdateTimer(ctx context.Context, timer application.Timer) (application.Timer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.timers[timer.ID]; !ok {
		return application.Timer{}, fmt.Errorf("%w: timer %s", application.ErrNotFound, timer.ID)
	}
	s.timers[timer.ID] = timer
	s.bumpLocked()
	return timer, nil
}

func (s *Store) DeleteTimer(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.timers[id]; !ok {
		return fmt.Errorf("%w: timer %s", application.ErrNotFound, id)
	}
	delete(s.timers, id)
	s.timerOrder = removeID(s.timerOrder, id)
	s.bumpLocked()
	return nil
}

func (s *Store) ListTimers(ctx context.Context) ([]application.Timer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]application.Timer, 0, len(s.timerOrder))
	for _, id := range s.timerOrder {
		out = append(out, s.timers[id])
	}
	return out, nil
}

// ------------------------------ Groceries ------------------------------

func (s *Store) CreateGroceryItem(ctx context.Context, item application.GroceryItem) (application.GroceryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groceries[item.ID]; ok {
		return application.GroceryItem{}, fmt.Errorf("memory: grocery item %s already exists", item.ID)
	}
	s.groceries[item.ID] = item
	s.groceryOrder = append(s.groceryOrder, item.ID)
	s.bumpLocked()
	return item, nil
}

func (s *Store) GetGroceryItem(ctx context.Context, id string) (application.GroceryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.groceries[id]
	if !ok {
		return application.GroceryItem{}, fmt.Errorf("%w: grocery item %s", application.ErrNotFound, id)
	}
	return item, nil
}

func (s *Store) UpdateGroceryItem(ctx context.Context, item application.GroceryItem) (application.GroceryItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groceries[item.ID]; !ok {
		return application.GroceryItem{}, fmt.Errorf("%w: grocery item %s", application.ErrNotFound, item.ID)
	}
	s.groceries[item.ID] = item
	s.bumpLocked()
	return item, nil
}

func (s *Store) DeleteGroceryItem(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.groceries[id]; !ok {
		return fmt.Errorf("%w: grocery item %s", application.ErrNotFound, id)
	}
	delete(s.groceries, id)
	s.groceryOrder = removeID(s.groceryOrder, id)
	s.bumpLocked()
	return nil
}

func (s *Store) ListGroceryItems(ctx context.Context) ([]application.GroceryItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]application.GroceryItem, 0, len(s.groceryOrder))
	for _, id := range s.groceryOrder {
		out = append(out, s.groceries[id])
	}
	return out, nil
}

// ------------------------------ Routines ------------------------------

func (s *Store) CreateRoutine(ctx context.Context, routine application.Routine) (application.Routine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.routines[routine.ID]; ok {
		return application.Routine{}, fmt.Errorf("memory: routine %s already exists", routine.ID)
	}
	s.routines[routine.ID] = routine.Clone()
	s.routineOrder = append(s.routineOrder, routine.ID)
	s.bumpLocked()
	return routine, nil
}

func (s *Store) GetRoutine(ctx context.Context, id string) (application.Routine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	routine, ok := s.routines[id]
	if !ok {
		return application.Routine{}, fmt.Errorf("%w: routine %s", application.ErrNotFound, id)
	}
	return routine.Clone(), nil
}

func (s *Store) UpdateRoutine(ctx context.Context, routine application.Routine) (application.Routine, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.routines[routine.ID]; !ok {
		return application.Routine{}, fmt.Errorf("%w: routine %s", application.ErrNotFound, routine.ID)
	}
	s.routines[routine.ID] = routine.Clone()
	s.bumpLocked()
	return routine, nil
}

func (s *Store) DeleteRoutine(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.routines[id]; !ok {
		return fmt.Errorf("%w: routine %s", application.ErrNotFound, id)
	}
	delete(s.routines, id)
	s.routineOrder = removeID(s.routineOrder, id)
	s.bumpLocked()
	return nil
}

func (s *Store) ListRoutines(ctx context.Context) ([]application.Routine, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]application.Routine, 0, len(s.routineOrder))
	for _, id := range s.routineOrder {
		out = append(out, s.routines[id].Clone())
	}
	return out, nil
}

// ------------------------------ Ledger ------------------------------

// SetLedgerKeys records the fired-trigger keys so they travel with the next
// snapshot. The revision advances only when the set actually changes; the
// tick loop calls this every beat and an unchanged set must not force a
// snapshot save.
func (s *Store) SetLedgerKeys(keys []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sorted := append([]string(nil), keys...)
	sort.Strings(sorted)
	if slices.Equal(sorted, s.ledgerKeys) {
		return
	}
	s.ledgerKeys = sorted
	s.bumpLocked()
}

// LedgerKeys returns the stored fired-trigger keys.
func (s *Store) LedgerKeys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]string(nil), s.ledgerKeys...)
}

// ------------------------------ Snapshots ------------------------------

// Snapshot serializes the whole store into the persistence representation.
func (s *Store) Snapshot(savedAt time.Time) persistence.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snapshot := persistence.Snapshot{
		Revision:   s.revision,
		SavedAt:    savedAt,
		LedgerKeys: append([]string(nil), s.ledgerKeys...),
	}
	for _, id := range s.peopleOrder {
		snapshot.People = append(snapshot.People, personRecord(s.people[id]))
	}
	for _, id := range s.choreOrder {
		snapshot.Chores = append(snapshot.Chores, choreRecord(s.chores[id]))
	}
	for _, id := range s.alarmOrder {
		snapshot.Alarms = append(snapshot.Alarms, alarmRecord(s.alarms[id]))
	}
	for _, id := range s.timerOrder {
		snapshot.Timers = append(snapshot.Timers, timerRecord(s.timers[id]))
	}
	for _, id := range s.groceryOrder {
		snapshot.Groceries = append(snapshot.Groceries, groceryRecord(s.groceries[id]))
	}
	for _, id := range s.routineOrder {
		snapshot.Routines = append(snapshot.Routines, routineRecord(s.routines[id]))
	}
	return snapshot
}

// Restore replaces the store contents with the snapshot. Alarms come back
// armed but silent, and the revision restarts from the snapshot's.
func (s *Store) Restore(snapshot persistence.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	people := make(map[string]application.Person, len(snapshot.People))
	peopleOrder := make([]string, 0, len(snapshot.People))
	for _, record := range snapshot.People {
		people[record.ID] = personFromRecord(record)
		peopleOrder = append(peopleOrder, record.ID)
	}

	chores := make(map[string]application.Chore, len(snapshot.Chores))
	choreOrder := make([]string, 0, len(snapshot.Chores))
	for _, record := range snapshot.Chores {
		chore, err := choreFromRecord(record)
		if err != nil {
			return err
		}
		chores[record.ID] = chore
		choreOrder = append(choreOrder, record.ID)
	}

	alarms := make(map[string]application.Alarm, len(snapshot.Alarms))
	alarmOrder := make([]string, 0, len(snapshot.Alarms))
	for _, record := range snapshot.Alarms {
		alarm, err := alarmFromRecord(record)
		if err != nil {
			return err
		}
		alarms[record.ID] = alarm
		alarmOrder = append(alarmOrder, record.ID)
	}

	timers := make(map[string]application.Timer, len(snapshot.Timers))
	timerOrder := make([]string, 0, len(snapshot.Timers))
	for _, record := range snapshot.Timers {
		timers[record.ID] = timerFromRecord(record)
		timerOrder = append(timerOrder, record.ID)
	}

	groceries := make(map[string]application.GroceryItem, len(snapshot.Groceries))
	groceryOrder := make([]string, 0, len(snapshot.Groceries))
	for _, record := range snapshot.Groceries {
		groceries[record.ID] = groceryFromRecord(record)
		groceryOrder = append(groceryOrder, record.ID)
	}

	routines := make(map[string]application.Routine, len(snapshot.Routines))
	routineOrder := make([]string, 0, len(snapshot.Routines))
	for _, record := range snapshot.Routines {
		routine, err := routineFromRecord(record)
		if err != nil {
			return err
		}
		routines[record.ID] = routine
		routineOrder = append(routineOrder, record.ID)
	}

	s.people, s.peopleOrder = people, peopleOrder
	s.chores, s.choreOrder = chores, choreOrder
	s.alarms, s.alarmOrder = alarms, alarmOrder
	s.timers, s.timerOrder = timers, timerOrder
	s.groceries, s.groceryOrder = groceries, groceryOrder
	s.routines, s.routineOrder = routines, routineOrder
	s.ledgerKeys = append([]string(nil), snapshot.LedgerKeys...)
	s.revision = snapshot.Revision
	return nil
}

func removeID(order []string, id string) []string {
	for i, candidate := range order {
		if candidate == id {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}

// ------------------------------ Conversions ------------------------------

func personRecord(person application.Person) persistence.PersonRecord {
	return persistence.PersonRecord{
		ID:      person.ID,
		Name:    person.Name,
		Avatar:  person.Avatar,
		IsAdult: person.IsAdult,
	}
}

func personFromRecord(record persistence.PersonRecord) application.Person {
	return application.Person{
		ID:      record.ID,
		Name:    record.Name,
		Avatar:  record.Avatar,
		IsAdult: record.IsAdult,
	}
}

func choreRecord(chore application.Chore) persistence.ChoreRecord {
	record := persistence.ChoreRecord{
		ID:          chore.ID,
		Task:        chore.Task,
		AssigneeIDs: append([]string(nil), chore.AssigneeIDs...),
		Priority:    string(chore.Priority),
		Completed:   chore.Completed,
		CreatedAt:   chore.CreatedAt,
		UpdatedAt:   chore.UpdatedAt,
	}
	if !chore.DueDate.IsZero() {
		record.DueDate = chore.DueDate.Format(application.DateLayout)
	}
	if !chore.NotificationAt.IsZero() {
		record.NotificationAt = chore.NotificationAt.Format(application.DateTimeLayout)
	}
	if !chore.CompletedAt.IsZero() {
		record.CompletedAt = chore.CompletedAt.Format(application.DateTimeLayout)
	}
	if chore.Recurrence != nil {
		recurrenceRecord := persistence.RecurrenceRecord{
			Frequency: chore.Recurrence.Frequency.String(),
			Weekdays:  application.WeekdayNames(chore.Recurrence.Weekdays),
		}
		if chore.Recurrence.Until != nil {
			recurrenceRecord.Until = chore.Recurrence.Until.Format(application.DateLayout)
		}
		record.Recurrence = &recurrenceRecord
	}
	return record
}

func choreFromRecord(record persistence.ChoreRecord) (application.Chore, error) {
	chore := application.Chore{
		ID:          record.ID,
		Task:        record.Task,
		AssigneeIDs: append([]string(nil), record.AssigneeIDs...),
		Completed:   record.Completed,
		CreatedAt:   record.CreatedAt,
		UpdatedAt:   record.UpdatedAt,
	}
	priority, err := application.ParsePriority(record.Priority)
	if err != nil {
		return application.Chore{}, fmt.Errorf("memory: chore %s: %w", record.ID, err)
	}
	chore.Priority = priority
	if record.DueDate != "" {
		chore.DueDate, err = application.ParseDate(record.DueDate)
		if err != nil {
			return application.Chore{}, fmt.Errorf("memory: chore %s: %w", record.ID, err)
		}
	}
	if record.NotificationAt != "" {
		chore.NotificationAt, err = application.ParseDateTime(record.NotificationAt)
		if err != nil {
			return application.Chore{}, fmt.Errorf("memory: chore %s: %w", record.ID, err)
		}
	}
	if record.CompletedAt != "" {
		chore.CompletedAt, err = application.ParseDateTime(record.CompletedAt)
		if err != nil {
			return application.Chore{}, fmt.Errorf("memory: chore %s: %w", record.ID, err)
		}
	}
	if record.Recurrence != nil {
		frequency, err := recurrence.ParseFrequency(record.Recurrence.Frequency)
		if err != nil {
			return application.Chore{}, fmt.Errorf("memory: chore %s: %w", record.ID, err)
		}
		weekdays, err := application.ParseWeekdays(record.Recurrence.Weekdays)
		if err != nil {
			return application.Chore{}, fmt.Errorf("memory: chore %s: %w", record.ID, err)
		}
		rule := application.RecurrenceRule{Frequency: frequency, Weekdays: weekdays}
		if record.Recurrence.Until != "" {
			until, err := application.ParseDate(record.Recurrence.Until)
			if err != nil {
				return application.Chore{}, fmt.Errorf("memory: chore %s: %w", record.ID, err)
			}
			rule.Until = &until
		}
		chore.Recurrence = &rule
	}
	return chore, nil
}

func alarmRecord(alarm application.Alarm) persistence.AlarmRecord {
	return persistence.AlarmRecord{
		ID:         alarm.ID,
		Time:       alarm.Time,
		Label:      alarm.Label,
		Enabled:    alarm.Enabled,
		RepeatDays: application.WeekdayNames(alarm.RepeatDays),
		CreatedAt:  alarm.CreatedAt,
		UpdatedAt:  alarm.UpdatedAt,
	}
}

func alarmFromRecord(record persistence.AlarmRecord) (application.Alarm, error) {
	repeatDays, err := application.ParseWeekdays(record.RepeatDays)
	if err != nil {
		return application.Alarm{}, fmt.Errorf("memory: alarm %s: %w", record.ID, err)
	}
	return application.Alarm{
		ID:         record.ID,
		Time:       record.Time,
		Label:      record.Label,
		Enabled:    record.Enabled,
		RepeatDays: repeatDays,
		CreatedAt:  record.CreatedAt,
		UpdatedAt:  record.UpdatedAt,
	}, nil
}

func timerRecord(timer application.Timer) persistence.TimerRecord {
	return persistence.TimerRecord{
		ID:               timer.ID,
		Label:            timer.Label,
		DurationSeconds:  timer.DurationSeconds,
		RemainingSeconds: timer.RemainingSeconds,
		Running:          timer.Running,
		Finished:         timer.Finished,
		CreatedAt:        timer.CreatedAt,
	}
}

func timerFromRecord(record persistence.TimerRecord) application.Timer {
	return application.Timer{
		ID:               record.ID,
		Label:            record.Label,
		DurationSeconds:  record.DurationSeconds,
		RemainingSeconds: record.RemainingSeconds,
		Running:          record.Running,
		Finished:         record.Finished,
		CreatedAt:        record.CreatedAt,
	}
}

func groceryRecord(item application.GroceryItem) persistence.GroceryRecord {
	return persistence.GroceryRecord{ID: item.ID, Name: item.Name, Completed: item.Completed}
}

func groceryFromRecord(record persistence.GroceryRecord) application.GroceryItem {
	return application.GroceryItem{ID: record.ID, Name: record.Name, Completed: record.Completed}
}

func routineRecord(routine application.Routine) persistence.RoutineRecord {
	record := persistence.RoutineRecord{
		ID:   routine.ID,
		Name: routine.Name,
		Icon: routine.Icon,
		Days: application.WeekdayNames(routine.Days),
	}
	for _, step := range routine.Steps {
		record.Steps = append(record.Steps, persistence.RoutineStepRecord{Label: step.Label, Completed: step.Completed})
	}
	return record
}

func routineFromRecord(record persistence.RoutineRecord) (application.Routine, error) {
	days, err := application.ParseWeekdays(record.Days)
	if err != nil {
		return application.Routine{}, fmt.Errorf("memory: routine %s: %w", record.ID, err)
	}
	routine := application.Routine{
		ID:   record.ID,
		Name: record.Name,
		Icon: record.Icon,
		Days: days,
	}
	for _, step := range record.Steps {
		routine.Steps = append(routine.Steps, application.RoutineStep{Label: step.Label, Completed: step.Completed})
	}
	return routine, nil
}
