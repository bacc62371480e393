package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
)

// PersonRepository captures the storage operations needed by the service.
type PersonRepository interface {
	CreatePerson(ctx context.Context, person Person) (Person, error)
	GetPerson(ctx context.Context, id string) (Person, error)
	UpdatePerson(ctx context.Context, person Person) (Person, error)
	DeletePerson(ctx context.Context, id string) error
	ListPeople(ctx context.Context) ([]Person, error)
}

// AssigneeCleaner removes a person's id from every chore's assignee set.
type AssigneeCleaner interface {
	RemoveAssignee(ctx context.Context, personID string) error
}

// PersonInput captures caller provided person fields.
type PersonInput struct {
	Name    string
	Avatar  string
	IsAdult bool
}

// PersonService manages household member profiles.
type PersonService struct {
	people      PersonRepository
	chores      AssigneeCleaner
	idGenerator func() string
	logger      *slog.Logger
}

// NewPersonService constructs a person service with the provided dependencies.
func NewPersonService(people PersonRepository, chores AssigneeCleaner, idGenerator func() string) *PersonService {
	return NewPersonServiceWithLogger(people, chores, idGenerator, nil)
}

// NewPersonServiceWithLogger constructs a person service with a specified logger.
func NewPersonServiceWithLogger(people PersonRepository, chores AssigneeCleaner, idGenerator func() string, logger *slog.Logger) *PersonService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	return &PersonService{people: people, chores: chores, idGenerator: idGenerator, logger: defaultLogger(logger)}
}

func (s *PersonService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "PersonService", operation, attrs...)
}

// CreatePerson validates input and stores a new household member.
func (s *PersonService) CreatePerson(ctx context.Context, input PersonInput) (person Person, err error) {
	if s == nil {
		err = fmt.Errorf("PersonService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreatePerson")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create person", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("person_id", person.ID).InfoContext(ctx, "person created")
	}()

	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.Add("name", "name is required")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	person = Person{
		ID:      s.idGenerator(),
		Name:    strings.TrimSpace(input.Name),
		Avatar:  strings.TrimSpace(input.Avatar),
		IsAdult: input.IsAdult,
	}

	if s.people == nil {
		return
	}
	person, err = s.people.CreatePerson(ctx, person)
	return
}

// UpdatePerson applies validated changes to an existing member.
func (s *PersonService) UpdatePerson(ctx context.Context, id string, input PersonInput) (person Person, err error) {
	if s == nil {
		err = fmt.Errorf("PersonService is nil")
		return
	}
	if s.people == nil {
		err = fmt.Errorf("person repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdatePerson", "person_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update person", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "person updated")
	}()

	existing, err := s.people.GetPerson(ctx, id)
	if err != nil {
		return
	}

	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.Add("name", "name is required")
	}
	if vErr.HasErrors() {
		err = vErr
		return
	}

	existing.Name = strings.TrimSpace(input.Name)
	existing.Avatar = strings.TrimSpace(input.Avatar)
	existing.IsAdult = input.IsAdult

	person, err = s.people.UpdatePerson(ctx, existing)
	return
}

// DeletePerson removes a member and strips their id from every chore's
// assignee set. Chores themselves are never deleted, even when their
// assignee set becomes empty.
func (s *PersonService) DeletePerson(ctx context.Context, id string) (err error) {
	if s == nil {
		return fmt.Errorf("PersonService is nil")
	}
	if s.people == nil {
		return fmt.Errorf("person repository not configured")
	}

	logger := s.loggerWith(ctx, "DeletePerson", "person_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete person", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "person deleted")
	}()

	if err = s.people.DeletePerson(ctx, id); err != nil {
		return
	}
	if s.chores != nil {
		err = s.chores.RemoveAssignee(ctx, id)
	}
	return
}

// GetPerson fetches a single member.
func (s *PersonService) GetPerson(ctx context.Context, id string) (Person, error) {
	if s == nil || s.people == nil {
		return Person{}, fmt.Errorf("person repository not configured")
	}
	return s.people.GetPerson(ctx, id)
}

// ListPeople enumerates members in creation order.
func (s *PersonService) ListPeople(ctx context.Context) ([]Person, error) {
	if s == nil || s.people == nil {
		return nil, fmt.Errorf("person repository not configured")
	}
	return s.people.ListPeople(ctx)
}
