package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// RoutineRepository captures the storage operations needed by the service.
type RoutineRepository interface {
	CreateRoutine(ctx context.Context, routine Routine) (Routine, error)
	GetRoutine(ctx context.Context, id string) (Routine, error)
	UpdateRoutine(ctx context.Context, routine Routine) (Routine, error)
	DeleteRoutine(ctx context.Context, id string) error
	ListRoutines(ctx context.Context) ([]Routine, error)
}

// RoutineInput carries the editable fields of a routine.
type RoutineInput struct {
	Name  string
	Icon  string
	Steps []string
	Days  []time.Weekday
}

// RoutineService manages reusable checklists such as a morning routine.
type RoutineService struct {
	routines    RoutineRepository
	idGenerator func() string
	logger      *slog.Logger
}

func NewRoutineService(routines RoutineRepository, idGenerator func() string) *RoutineService {
	return NewRoutineServiceWithLogger(routines, idGenerator, nil)
}

func NewRoutineServiceWithLogger(routines RoutineRepository, idGenerator func() string, logger *slog.Logger) *RoutineService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	return &RoutineService{routines: routines, idGenerator: idGenerator, logger: defaultLogger(logger)}
}

func (s *RoutineService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "RoutineService", operation, attrs...)
}

func validateRoutineInput(input RoutineInput) *ValidationError {
	vErr := &ValidationError{}
	if strings.TrimSpace(input.Name) == "" {
		vErr.Add("name", "name is required")
	}
	for i, step := range input.Steps {
		if strings.TrimSpace(step) == "" {
			vErr.Add(fmt.Sprintf("steps[%d]", i), "step must not be empty")
		}
	}
	if vErr.HasErrors() {
		return vErr
	}
	return nil
}

// CreateRoutine stores a new checklist with all steps unchecked.
func (s *RoutineService) CreateRoutine(ctx context.Context, input RoutineInput) (routine Routine, err error) {
	if s == nil || s.routines == nil {
		err = fmt.Errorf("routine repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "CreateRoutine")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create routine", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("routine_id", routine.ID).InfoContext(ctx, "routine created")
	}()

	if vErr := validateRoutineInput(input); vErr != nil {
		err = vErr
		return
	}

	routine = Routine{
		ID:    s.idGenerator(),
		Name:  strings.TrimSpace(input.Name),
		Icon:  input.Icon,
		Steps: make([]RoutineStep, 0, len(input.Steps)),
		Days:  append([]time.Weekday(nil), input.Days...),
	}
	for _, step := range input.Steps {
		routine.Steps = append(routine.Steps, RoutineStep{Label: strings.TrimSpace(step)})
	}
	routine, err = s.routines.CreateRoutine(ctx, routine)
	return
}

// UpdateRoutine replaces a routine's name and steps. Step completion
// state is preserved positionally for steps that keep their label.
func (s *RoutineService) UpdateRoutine(ctx context.Context, id string, input RoutineInput) (routine Routine, err error) {
	if s == nil || s.routines == nil {
		err = fmt.Errorf("routine repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateRoutine", "routine_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update routine", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "routine updated")
	}()

	if vErr := validateRoutineInput(input); vErr != nil {
		err = vErr
		return
	}

	existing, err := s.routines.GetRoutine(ctx, id)
	if err != nil {
		return
	}

	existing.Name = strings.TrimSpace(input.Name)
	existing.Icon = input.Icon
	existing.Days = append([]time.Weekday(nil), input.Days...)
	steps := make([]RoutineStep, 0, len(input.Steps))
	for i, step := range input.Steps {
		next := RoutineStep{Label: strings.TrimSpace(step)}
		if i < len(existing.Steps) && existing.Steps[i].Label == next.Label {
			next.Completed = existing.Steps[i].Completed
		}
		steps = append(steps, next)
	}
	existing.Steps = steps
	routine, err = s.routines.UpdateRoutine(ctx, existing)
	return
}

// ToggleStep flips one step's completion state.
func (s *RoutineService) ToggleStep(ctx context.Context, id string, stepIndex int) (routine Routine, err error) {
	if s == nil || s.routines == nil {
		err = fmt.Errorf("routine repository not configured")
		return
	}

	existing, err := s.routines.GetRoutine(ctx, id)
	if err != nil {
		return
	}
	if stepIndex < 0 || stepIndex >= len(existing.Steps) {
		vErr := &ValidationError{}
		vErr.Add("step", fmt.Sprintf("step index %d is out of range", stepIndex))
		err = vErr
		return
	}
	existing.Steps[stepIndex].Completed = !existing.Steps[stepIndex].Completed
	routine, err = s.routines.UpdateRoutine(ctx, existing)
	return
}

// ResetRoutine unchecks every step so the checklist can be reused.
func (s *RoutineService) ResetRoutine(ctx context.Context, id string) (routine Routine, err error) {
	if s == nil || s.routines == nil {
		err = fmt.Errorf("routine repository not configured")
		return
	}

	existing, err := s.routines.GetRoutine(ctx, id)
	if err != nil {
		return
	}
	for i := range existing.Steps {
		existing.Steps[i].Completed = false
	}
	routine, err = s.routines.UpdateRoutine(ctx, existing)
	return
}

// DeleteRoutine removes a routine.
func (s *RoutineService) DeleteRoutine(ctx context.Context, id string) error {
	if s == nil || s.routines == nil {
		return fmt.Errorf("routine repository not configured")
	}
	return s.routines.DeleteRoutine(ctx, id)
}

// GetRoutine fetches one routine by id.
func (s *RoutineService) GetRoutine(ctx context.Context, id string) (Routine, error) {
	if s == nil || s.routines == nil {
		return Routine{}, fmt.Errorf("routine repository not configured")
	}
	return s.routines.GetRoutine(ctx, id)
}

// ListRoutines enumerates routines in insertion order.
func (s *RoutineService) ListRoutines(ctx context.Context) ([]Routine, error) {
	if s == nil || s.routines == nil {
		return nil, fmt.Errorf("routine repository not configured")
	}
	return s.routines.ListRoutines(ctx)
}
