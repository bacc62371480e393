package recurrence

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func assertDates(t *testing.T, got []time.Time, want ...time.Time) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("expected %d occurrences, got %d (%v)", len(want), len(got), got)
	}
	for i := range want {
		if !got[i].Equal(want[i]) {
			t.Fatalf("occurrence %d: expected %s, got %s", i, want[i].Format("2006-01-02"), got[i].Format("2006-01-02"))
		}
	}
}

func TestExpand_SingleOccurrence(t *testing.T) {
	t.Parallel()

	anchor := date(2024, time.July, 15)

	t.Run("anchor inside window", func(t *testing.T) {
		got, err := Expand(anchor, nil, date(2024, time.July, 1), date(2024, time.July, 31))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertDates(t, got, anchor)
	})

	t.Run("anchor outside window", func(t *testing.T) {
		got, err := Expand(anchor, nil, date(2024, time.August, 1), date(2024, time.August, 31))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected no occurrences, got %v", got)
		}
	})

	t.Run("zero-length window containing anchor", func(t *testing.T) {
		got, err := Expand(anchor, nil, anchor, anchor)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertDates(t, got, anchor)
	})

	t.Run("time-of-day components are ignored", func(t *testing.T) {
		noisy := time.Date(2024, time.July, 15, 18, 30, 12, 0, time.UTC)
		got, err := Expand(noisy, nil, date(2024, time.July, 15), date(2024, time.July, 15))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertDates(t, got, anchor)
	})
}

func TestExpand_Daily(t *testing.T) {
	t.Parallel()

	anchor := date(2024, time.July, 10)

	t.Run("fills every day from anchor", func(t *testing.T) {
		got, err := Expand(anchor, &Rule{Frequency: FrequencyDaily}, date(2024, time.July, 8), date(2024, time.July, 13))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertDates(t, got,
			date(2024, time.July, 10),
			date(2024, time.July, 11),
			date(2024, time.July, 12),
			date(2024, time.July, 13),
		)
	})

	t.Run("until bounds expansion", func(t *testing.T) {
		until := date(2024, time.July, 11)
		got, err := Expand(anchor, &Rule{Frequency: FrequencyDaily, Until: &until}, date(2024, time.July, 1), date(2024, time.July, 31))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertDates(t, got, date(2024, time.July, 10), date(2024, time.July, 11))
	})

	t.Run("anchor after until yields nothing", func(t *testing.T) {
		until := date(2024, time.July, 1)
		got, err := Expand(anchor, &Rule{Frequency: FrequencyDaily, Until: &until}, date(2024, time.July, 1), date(2024, time.July, 31))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(got) != 0 {
			t.Fatalf("expected no occurrences, got %v", got)
		}
	})
}

func TestExpand_Weekly(t *testing.T) {
	t.Parallel()

	// 2024-07-02 is a Tuesday.
	anchor := date(2024, time.July, 2)

	t.Run("four-week window yields four Tuesdays seven days apart", func(t *testing.T) {
		got, err := Expand(anchor, &Rule{Frequency: FrequencyWeekly, Weekdays: []time.Weekday{time.Tuesday}}, date(2024, time.July, 1), date(2024, time.July, 28))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertDates(t, got,
			date(2024, time.July, 2),
			date(2024, time.July, 9),
			date(2024, time.July, 16),
			date(2024, time.July, 23),
		)
		for i := 1; i < len(got); i++ {
			if got[i].Sub(got[i-1]) != 7*24*time.Hour {
				t.Fatalf("occurrences %d and %d are not seven days apart", i-1, i)
			}
		}
	})

	t.Run("multiple weekdays scan at one-day granularity", func(t *testing.T) {
		rule := &Rule{Frequency: FrequencyWeekly, Weekdays: []time.Weekday{time.Monday, time.Thursday}}
		got, err := Expand(anchor, rule, date(2024, time.July, 1), date(2024, time.July, 14))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertDates(t, got,
			date(2024, time.July, 4),  // Thursday
			date(2024, time.July, 8),  // Monday
			date(2024, time.July, 11), // Thursday
		)
	})

	t.Run("empty weekday set defaults to the anchor weekday", func(t *testing.T) {
		got, err := Expand(anchor, &Rule{Frequency: FrequencyWeekly}, date(2024, time.July, 1), date(2024, time.July, 14))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertDates(t, got, date(2024, time.July, 2), date(2024, time.July, 9))
	})
}

func TestExpand_Monthly(t *testing.T) {
	t.Parallel()

	t.Run("day 31 skips short months", func(t *testing.T) {
		// 2025 has no Feb 31 and no Feb 29.
		anchor := date(2025, time.January, 31)
		got, err := Expand(anchor, &Rule{Frequency: FrequencyMonthly}, date(2025, time.January, 1), date(2025, time.April, 30))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertDates(t, got, date(2025, time.January, 31), date(2025, time.March, 31))
	})

	t.Run("mid-month anchor appears every month", func(t *testing.T) {
		anchor := date(2024, time.January, 15)
		got, err := Expand(anchor, &Rule{Frequency: FrequencyMonthly}, date(2024, time.March, 1), date(2024, time.May, 31))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertDates(t, got,
			date(2024, time.March, 15),
			date(2024, time.April, 15),
			date(2024, time.May, 15),
		)
	})

	t.Run("december wraps into the next year", func(t *testing.T) {
		anchor := date(2024, time.November, 5)
		got, err := Expand(anchor, &Rule{Frequency: FrequencyMonthly}, date(2024, time.December, 1), date(2025, time.January, 31))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertDates(t, got, date(2024, time.December, 5), date(2025, time.January, 5))
	})
}

func TestExpand_Yearly(t *testing.T) {
	t.Parallel()

	t.Run("same month and day each year", func(t *testing.T) {
		anchor := date(2023, time.June, 10)
		got, err := Expand(anchor, &Rule{Frequency: FrequencyYearly}, date(2024, time.January, 1), date(2026, time.December, 31))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertDates(t, got,
			date(2024, time.June, 10),
			date(2025, time.June, 10),
			date(2026, time.June, 10),
		)
	})

	t.Run("february 29 only lands on leap years", func(t *testing.T) {
		anchor := date(2024, time.February, 29)
		got, err := Expand(anchor, &Rule{Frequency: FrequencyYearly}, date(2024, time.January, 1), date(2028, time.December, 31))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		assertDates(t, got, date(2024, time.February, 29), date(2028, time.February, 29))
	})
}

func TestExpand_Idempotent(t *testing.T) {
	t.Parallel()

	anchor := date(2024, time.July, 2)
	rule := &Rule{Frequency: FrequencyWeekly, Weekdays: []time.Weekday{time.Tuesday, time.Friday}}

	first, err := Expand(anchor, rule, date(2024, time.July, 1), date(2024, time.July, 31))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := Expand(anchor, rule, date(2024, time.July, 1), date(2024, time.July, 31))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	assertDates(t, second, first...)
}

func TestExpand_InvalidInput(t *testing.T) {
	t.Parallel()

	anchor := date(2024, time.July, 2)

	if _, err := Expand(anchor, nil, date(2024, time.July, 31), date(2024, time.July, 1)); !errors.Is(err, ErrInvalidWindow) {
		t.Fatalf("expected ErrInvalidWindow, got %v", err)
	}

	if _, err := Expand(anchor, &Rule{}, date(2024, time.July, 1), date(2024, time.July, 31)); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("expected ErrInvalidFrequency, got %v", err)
	}
}

func TestParseFrequency(t *testing.T) {
	t.Parallel()

	for _, freq := range []Frequency{FrequencyDaily, FrequencyWeekly, FrequencyMonthly, FrequencyYearly} {
		parsed, err := ParseFrequency(freq.String())
		if err != nil {
			t.Fatalf("round-trip of %s failed: %v", freq, err)
		}
		if parsed != freq {
			t.Fatalf("expected %v, got %v", freq, parsed)
		}
	}

	if _, err := ParseFrequency("fortnightly"); !errors.Is(err, ErrInvalidFrequency) {
		t.Fatalf("expected ErrInvalidFrequency, got %v", err)
	}
}
