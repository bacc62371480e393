package testfixtures

import (
	"time"

	"github.com/example/household-hub/internal/application"
)

// ServiceFactory assists tests with constructing application services using
// deterministic identifiers and clocks.
type ServiceFactory struct {
	Clock       *Clock
	IDGenerator *IDGenerator
}

// NewServiceFactory constructs a factory with a reference-time clock and an
// "id"-prefixed generator.
func NewServiceFactory() *ServiceFactory {
	return &ServiceFactory{
		Clock:       NewClock(time.Time{}),
		IDGenerator: NewIDGenerator("id"),
	}
}

// NewChoreService builds a chore service on the factory's clock and ids.
func (f *ServiceFactory) NewChoreService(chores application.ChoreRepository, people application.PersonDirectory) *application.ChoreService {
	return application.NewChoreService(chores, people, f.IDGenerator.NextFunc(), f.Clock.NowFunc())
}

// NewPersonService builds a person service on the factory's ids.
func (f *ServiceFactory) NewPersonService(people application.PersonRepository, chores application.AssigneeCleaner) *application.PersonService {
	return application.NewPersonService(people, chores, f.IDGenerator.NextFunc())
}

// NewAlarmService builds an alarm service on the factory's clock and ids.
func (f *ServiceFactory) NewAlarmService(alarms application.AlarmRepository) *application.AlarmService {
	return application.NewAlarmService(alarms, f.IDGenerator.NextFunc(), f.Clock.NowFunc())
}

// NewTimerService builds a timer service on the factory's clock and ids.
func (f *ServiceFactory) NewTimerService(timers application.TimerRepository) *application.TimerService {
	return application.NewTimerService(timers, f.IDGenerator.NextFunc(), f.Clock.NowFunc())
}

// NewNotificationService builds the tick orchestrator on the factory's ids.
func (f *ServiceFactory) NewNotificationService(alarms application.AlarmRepository, timers application.TimerRepository, chores application.ChoreRepository) *application.NotificationService {
	return application.NewNotificationService(alarms, timers, chores, f.IDGenerator.NextFunc())
}
