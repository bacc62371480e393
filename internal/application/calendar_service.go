package application

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/example/household-hub/internal/recurrence"
)

// CalendarService derives calendar-date views from the chore list by running
// each chore's recurrence rule through the expander. Occurrences are computed
// on demand; nothing is cached between calls.
type CalendarService struct {
	chores ChoreRepository
	logger *slog.Logger
}

func NewCalendarService(chores ChoreRepository) *CalendarService {
	return NewCalendarServiceWithLogger(chores, nil)
}

func NewCalendarServiceWithLogger(chores ChoreRepository, logger *slog.Logger) *CalendarService {
	return &CalendarService{chores: chores, logger: defaultLogger(logger)}
}

func (s *CalendarService) loggerWith(ctx context.Context, operation string, attrs ...any) *slog.Logger {
	return serviceLogger(ctx, s.logger, "CalendarService", operation, attrs...)
}

// ExpandChore materializes one chore's occurrences inside the window. Each
// occurrence carries an independent copy of the chore with DueDate rewritten
// to the occurrence date. Chores without a due date produce nothing.
func ExpandChore(chore Chore, windowStart, windowEnd time.Time) ([]Occurrence, error) {
	if chore.DueDate.IsZero() {
		return nil, nil
	}
	dates, err := recurrence.Expand(chore.DueDate, chore.Recurrence.EngineRule(), windowStart, windowEnd)
	if err != nil {
		return nil, fmt.Errorf("expand chore %s: %w", chore.ID, err)
	}
	occurrences := make([]Occurrence, 0, len(dates))
	for _, date := range dates {
		materialized := chore.Clone()
		materialized.DueDate = date
		occurrences = append(occurrences, Occurrence{Date: date, Chore: materialized})
	}
	return occurrences, nil
}

// OccurrencesInWindow expands every chore into the window and returns the
// union, ordered by date and, within a date, by chore creation order.
func (s *CalendarService) OccurrencesInWindow(ctx context.Context, windowStart, windowEnd time.Time) (occurrences []Occurrence, err error) {
	if s == nil || s.chores == nil {
		err = fmt.Errorf("chore repository not configured")
		return
	}

	logger := s.loggerWith(ctx, "OccurrencesInWindow")
	defer func() {
		if err != nil {
			logger.ErrorContext(ctx, "failed to expand calendar window", "error", err, "error_kind", ErrorKind(err))
		}
	}()

	if windowEnd.Before(windowStart) {
		err = recurrence.ErrInvalidWindow
		return
	}

	chores, err := s.chores.ListChores(ctx)
	if err != nil {
		return
	}

	for _, chore := range chores {
		expanded, expandErr := ExpandChore(chore, windowStart, windowEnd)
		if expandErr != nil {
			err = expandErr
			return
		}
		occurrences = append(occurrences, expanded...)
	}

	// ListChores yields creation order, so a stable sort on date alone
	// keeps same-day occurrences in creation order.
	sort.SliceStable(occurrences, func(i, j int) bool {
		return occurrences[i].Date.Before(occurrences[j].Date)
	})
	return
}

// OccurrencesOn returns the occurrences for a single calendar date.
func (s *CalendarService) OccurrencesOn(ctx context.Context, day time.Time) ([]Occurrence, error) {
	day = recurrence.DateOf(day)
	return s.OccurrencesInWindow(ctx, day, day)
}

// MonthIndex maps every day of the given month onto its occurrences. Days
// with no occurrences are absent from the map.
func (s *CalendarService) MonthIndex(ctx context.Context, year int, month time.Month) (map[time.Time][]Occurrence, error) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, -1)
	occurrences, err := s.OccurrencesInWindow(ctx, start, end)
	if err != nil {
		return nil, err
	}
	index := make(map[time.Time][]Occurrence)
	for _, occurrence := range occurrences {
		index[occurrence.Date] = append(index[occurrence.Date], occurrence)
	}
	return index, nil
}
