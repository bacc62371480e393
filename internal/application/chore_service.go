package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/example/household-hub/internal/recurrence"
)

// ChoreRepository captures the storage operations needed by the service.
type ChoreRepository interface {
	CreateChore(ctx context.Context, chore Chore) (Chore, error)
	GetChore(ctx context.Context, id string) (Chore, error)
	UpdateChore(ctx context.Context, chore Chore) (Chore, error)
	DeleteChore(ctx context.Context, id string) error
	ListChores(ctx context.Context) ([]Chore, error)
}

// PersonDirectory resolves which of the referenced person ids exist.
type PersonDirectory interface {
	FilterKnownPeople(ctx context.Context, ids []string) ([]string, error)
}

// ChoreInput captures caller provided chore fields.
type ChoreInput struct {
	Task           string
	AssigneeIDs    []string
	Priority       Priority
	DueDate        time.Time
	Recurrence     *RecurrenceRule
	NotificationAt time.Time
}

// ChoreService orchestrates validation and storage for chores. Malformed
// input is rejected at this boundary so the expansion and trigger paths can
// assume well-formed records.
type ChoreService struct {
	chores      ChoreRepository
	people      PersonDirectory
	idGenerator func() string
	now         func() time.Time
	logger      *slog.Logger
}

// NewChoreService constructs a chore service with the provided dependencies.
func NewChoreService(chores ChoreRepository, people PersonDirectory, idGenerator func() string, now func() time.Time) *ChoreService {
	return NewChoreServiceWithLogger(chores, people, idGenerator, now, nil)
}

// NewChoreServiceWithLogger constructs a chore service with a specified logger.
func NewChoreServiceWithLogger(chores ChoreRepository, people PersonDirectory, idGenerator func() string, now func() time.Time, logger *slog.Logger) *ChoreService {
	if idGenerator == nil {
		idGenerator = func() string { return "" }
	}
	if now == nil {
		now = time.Now
	}
	return &ChoreService{chores: chores, people: people, idGenerator: idGenerator, now: now, logger: defaultLogger(logger)}
}

func (s *ChoreService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "ChoreService", operation, attrs...)
}

// CreateChore validates input and stores a new chore.
func (s *ChoreService) CreateChore(ctx context.Context, input ChoreInput) (chore Chore, err error) {
	if s == nil {
		err = fmt.Errorf("ChoreService is nil")
		return
	}

	logger := s.loggerWith(ctx, "CreateChore")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to create chore", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("chore_id", chore.ID).InfoContext(ctx, "chore created")
	}()

	vErr := &ValidationError{}
	validateChoreCore(input, vErr)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var assignees []string
	assignees, err = s.resolveAssignees(ctx, input.AssigneeIDs)
	if err != nil {
		return
	}

	priority := input.Priority
	if priority == "" {
		priority = PriorityMedium
	}

	createdAt := s.now()
	chore = Chore{
		ID:             s.idGenerator(),
		Task:           strings.TrimSpace(input.Task),
		AssigneeIDs:    assignees,
		Priority:       priority,
		DueDate:        normalizeDate(input.DueDate),
		Recurrence:     cloneRule(input.Recurrence),
		NotificationAt: input.NotificationAt,
		CreatedAt:      createdAt,
		UpdatedAt:      createdAt,
	}

	if s.chores == nil {
		return
	}
	chore, err = s.chores.CreateChore(ctx, chore)
	return
}

// UpdateChore applies validated changes to an existing chore.
func (s *ChoreService) UpdateChore(ctx context.Context, id string, input ChoreInput) (chore Chore, err error) {
	if s == nil {
		err = fmt.Errorf("ChoreService is nil")
		return
	}
	if s.chores == nil {
		err = fmt.Errorf("chore repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "UpdateChore", "chore_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to update chore", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "chore updated")
	}()

	existing, err := s.chores.GetChore(ctx, id)
	if err != nil {
		return
	}

	vErr := &ValidationError{}
	validateChoreCore(input, vErr)
	if vErr.HasErrors() {
		err = vErr
		return
	}

	var assignees []string
	assignees, err = s.resolveAssignees(ctx, input.AssigneeIDs)
	if err != nil {
		return
	}

	existing.Task = strings.TrimSpace(input.Task)
	existing.AssigneeIDs = assignees
	if input.Priority != "" {
		existing.Priority = input.Priority
	}
	existing.DueDate = normalizeDate(input.DueDate)
	existing.Recurrence = cloneRule(input.Recurrence)
	existing.NotificationAt = input.NotificationAt
	existing.UpdatedAt = s.now()

	chore, err = s.chores.UpdateChore(ctx, existing)
	return
}

// ToggleChore flips completion state. Completing stamps the current instant;
// un-completing clears it.
func (s *ChoreService) ToggleChore(ctx context.Context, id string) (chore Chore, err error) {
	if s == nil {
		err = fmt.Errorf("ChoreService is nil")
		return
	}
	if s.chores == nil {
		err = fmt.Errorf("chore repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "ToggleChore", "chore_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to toggle chore", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.With("completed", chore.Completed).InfoContext(ctx, "chore toggled")
	}()

	existing, err := s.chores.GetChore(ctx, id)
	if err != nil {
		return
	}

	existing.Completed = !existing.Completed
	if existing.Completed {
		existing.CompletedAt = s.now()
	} else {
		existing.CompletedAt = time.Time{}
	}
	existing.UpdatedAt = s.now()

	chore, err = s.chores.UpdateChore(ctx, existing)
	return
}

// DeleteChore removes a chore.
func (s *ChoreService) DeleteChore(ctx context.Context, id string) (err error) {
	if s == nil {
		return fmt.Errorf("ChoreService is nil")
	}
	if s.chores == nil {
		return fmt.Errorf("chore repository not configured")
	}

	logger := s.loggerWith(ctx, "DeleteChore", "chore_id", id)
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to delete chore", "error", err, "error_kind", ErrorKind(err))
			return
		}
		logger.InfoContext(ctx, "chore deleted")
	}()

	err = s.chores.DeleteChore(ctx, id)
	return
}

// GetChore fetches a single chore.
func (s *ChoreService) GetChore(ctx context.Context, id string) (Chore, error) {
	if s == nil || s.chores == nil {
		return Chore{}, fmt.Errorf("chore repository not configured")
	}
	return s.chores.GetChore(ctx, id)
}

// ListChores enumerates chores in creation order.
func (s *ChoreService) ListChores(ctx context.Context) ([]Chore, error) {
	if s == nil || s.chores == nil {
		return nil, fmt.Errorf("chore repository not configured")
	}
	return s.chores.ListChores(ctx)
}

// resolveAssignees silently drops ids that do not resolve to a known person.
// A chore with zero assignees is valid.
func (s *ChoreService) resolveAssignees(ctx context.Context, ids []string) ([]string, error) {
	ids = uniqueStrings(ids)
	if s.people == nil || len(ids) == 0 {
		return ids, nil
	}
	return s.people.FilterKnownPeople(ctx, ids)
}

func validateChoreCore(input ChoreInput, vErr *ValidationError) {
	if strings.TrimSpace(input.Task) == "" {
		vErr.Add("task", "task is required")
	}

	if input.Recurrence != nil {
		switch input.Recurrence.Frequency {
		case recurrence.FrequencyDaily, recurrence.FrequencyWeekly, recurrence.FrequencyMonthly, recurrence.FrequencyYearly:
		default:
			vErr.Add("recurrence", "frequency is required")
		}
		if input.DueDate.IsZero() {
			vErr.Add("due_date", "a recurring chore needs an anchor date")
		}
		if input.Recurrence.Until != nil && !input.DueDate.IsZero() {
			if recurrence.DateOf(*input.Recurrence.Until).Before(recurrence.DateOf(input.DueDate)) {
				vErr.Add("recurrence", "until must not precede the anchor date")
			}
		}
		if len(input.Recurrence.Weekdays) > 0 && input.Recurrence.Frequency != recurrence.FrequencyWeekly {
			vErr.Add("recurrence", "weekday selections apply only to weekly rules")
		}
	}
}

func normalizeDate(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return recurrence.DateOf(t)
}

func cloneRule(rule *RecurrenceRule) *RecurrenceRule {
	if rule == nil {
		return nil
	}
	out := *rule
	out.Weekdays = append([]time.Weekday(nil), rule.Weekdays...)
	if rule.Until != nil {
		until := recurrence.DateOf(*rule.Until)
		out.Until = &until
	}
	return &out
}

func uniqueStrings(values []string) []string {
	seen := make(map[string]struct{}, len(values))
	result := make([]string, 0, len(values))
	for _, value := range values {
		if value == "" {
			continue
		}
		if _, ok := seen[value]; ok {
			continue
		}
		seen[value] = struct{}{}
		result = append(result, value)
	}
	return result
}
