package application

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/example/household-hub/internal/recurrence"
)

func TestExpandChore(t *testing.T) {
	t.Run("unscheduled chores produce nothing", func(t *testing.T) {
		occurrences, err := ExpandChore(Chore{ID: "c", Task: "Someday"}, date(2025, time.March, 1), date(2025, time.March, 31))
		if err != nil {
			t.Fatalf("ExpandChore returned error: %v", err)
		}
		if len(occurrences) != 0 {
			t.Fatalf("occurrences = %v, want none", occurrences)
		}
	})

	t.Run("occurrences carry independent chore copies", func(t *testing.T) {
		chore := Chore{
			ID:          "c",
			Task:        "Water plants",
			AssigneeIDs: []string{"person-1"},
			DueDate:     date(2025, time.March, 3),
			Recurrence:  &RecurrenceRule{Frequency: recurrence.FrequencyDaily},
		}

		occurrences, err := ExpandChore(chore, date(2025, time.March, 3), date(2025, time.March, 5))
		if err != nil {
			t.Fatalf("ExpandChore returned error: %v", err)
		}
		if len(occurrences) != 3 {
			t.Fatalf("got %d occurrences, want 3", len(occurrences))
		}
		for i, occurrence := range occurrences {
			want := date(2025, time.March, 3+i)
			if !occurrence.Date.Equal(want) {
				t.Fatalf("occurrence %d date = %v, want %v", i, occurrence.Date, want)
			}
			if !occurrence.Chore.DueDate.Equal(want) {
				t.Fatalf("occurrence %d chore due date = %v, want %v", i, occurrence.Chore.DueDate, want)
			}
		}

		occurrences[1].Chore.AssigneeIDs[0] = "mutated"
		if chore.AssigneeIDs[0] != "person-1" {
			t.Fatal("mutating an occurrence changed the source chore")
		}
	})
}

func TestCalendarService_OccurrencesInWindow(t *testing.T) {
	repo := newFakeChoreRepo()
	ctx := context.Background()

	weekly := Chore{
		ID:      "weekly",
		Task:    "Piano practice",
		DueDate: date(2025, time.March, 3), // Monday
		Recurrence: &RecurrenceRule{
			Frequency: recurrence.FrequencyWeekly,
			Weekdays:  []time.Weekday{time.Wednesday},
		},
	}
	oneOff := Chore{ID: "oneoff", Task: "Dentist", DueDate: date(2025, time.March, 5)}
	for _, chore := range []Chore{weekly, oneOff} {
		if _, err := repo.CreateChore(ctx, chore); err != nil {
			t.Fatalf("seeding chore: %v", err)
		}
	}

	svc := NewCalendarService(repo)
	occurrences, err := svc.OccurrencesInWindow(ctx, date(2025, time.March, 1), date(2025, time.March, 14))
	if err != nil {
		t.Fatalf("OccurrencesInWindow returned error: %v", err)
	}

	// Wednesdays Mar 5 and 12 from the weekly chore, plus the one-off on
	// Mar 5. Same-day entries keep chore creation order.
	if len(occurrences) != 3 {
		t.Fatalf("got %d occurrences, want 3", len(occurrences))
	}
	if !occurrences[0].Date.Equal(date(2025, time.March, 5)) || occurrences[0].Chore.ID != "weekly" {
		t.Fatalf("occurrence 0 = %v/%s", occurrences[0].Date, occurrences[0].Chore.ID)
	}
	if !occurrences[1].Date.Equal(date(2025, time.March, 5)) || occurrences[1].Chore.ID != "oneoff" {
		t.Fatalf("occurrence 1 = %v/%s", occurrences[1].Date, occurrences[1].Chore.ID)
	}
	if !occurrences[2].Date.Equal(date(2025, time.March, 12)) || occurrences[2].Chore.ID != "weekly" {
		t.Fatalf("occurrence 2 = %v/%s", occurrences[2].Date, occurrences[2].Chore.ID)
	}
}

func TestCalendarService_OccurrencesInWindow_InvalidWindow(t *testing.T) {
	svc := NewCalendarService(newFakeChoreRepo())

	_, err := svc.OccurrencesInWindow(context.Background(), date(2025, time.March, 10), date(2025, time.March, 1))
	if !errors.Is(err, recurrence.ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}
}

func TestCalendarService_MonthIndex(t *testing.T) {
	repo := newFakeChoreRepo()
	ctx := context.Background()

	chore := Chore{
		ID:         "daily",
		Task:       "Feed cat",
		DueDate:    date(2025, time.February, 26),
		Recurrence: &RecurrenceRule{Frequency: recurrence.FrequencyDaily},
	}
	if _, err := repo.CreateChore(ctx, chore); err != nil {
		t.Fatalf("seeding chore: %v", err)
	}

	svc := NewCalendarService(repo)
	index, err := svc.MonthIndex(ctx, 2025, time.March)
	if err != nil {
		t.Fatalf("MonthIndex returned error: %v", err)
	}

	// Every day of March, nothing from February.
	if len(index) != 31 {
		t.Fatalf("index covers %d days, want 31", len(index))
	}
	if _, ok := index[date(2025, time.February, 28)]; ok {
		t.Fatal("index leaked a February date")
	}
	first := index[date(2025, time.March, 1)]
	if len(first) != 1 || first[0].Chore.ID != "daily" {
		t.Fatalf("March 1 entries = %v", first)
	}
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
