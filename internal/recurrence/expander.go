package recurrence

import (
	"errors"
	"time"
)

// Frequency represents supported recurrence intervals.
type Frequency int

const (
	// FrequencyUnspecified indicates the rule frequency is not set.
	FrequencyUnspecified Frequency = iota
	// FrequencyDaily generates an occurrence for every day within the range.
	FrequencyDaily
	// FrequencyWeekly generates occurrences for the selected weekdays.
	FrequencyWeekly
	// FrequencyMonthly generates occurrences on the anchor's day-of-month.
	FrequencyMonthly
	// FrequencyYearly generates occurrences on the anchor's month and day.
	FrequencyYearly
)

// String returns the lower-case rule name used in serialized forms.
func (f Frequency) String() string {
	switch f {
	case FrequencyDaily:
		return "daily"
	case FrequencyWeekly:
		return "weekly"
	case FrequencyMonthly:
		return "monthly"
	case FrequencyYearly:
		return "yearly"
	default:
		return "unspecified"
	}
}

// ParseFrequency maps a serialized rule name back to a Frequency.
func ParseFrequency(value string) (Frequency, error) {
	switch value {
	case "daily":
		return FrequencyDaily, nil
	case "weekly":
		return FrequencyWeekly, nil
	case "monthly":
		return FrequencyMonthly, nil
	case "yearly":
		return FrequencyYearly, nil
	default:
		return FrequencyUnspecified, ErrInvalidFrequency
	}
}

// Rule describes a recurrence configuration for a schedulable item.
//
// Weekdays is meaningful only for weekly rules; when empty the anchor date's
// weekday is used. Until, when set, is the inclusive last calendar day on
// which an occurrence may fall.
type Rule struct {
	Frequency Frequency
	Weekdays  []time.Weekday
	Until     *time.Time
}

var (
	// ErrInvalidFrequency indicates the recurrence frequency is not supported.
	ErrInvalidFrequency = errors.New("recurrence: invalid frequency")
	// ErrInvalidWindow indicates the expansion window is reversed.
	ErrInvalidWindow = errors.New("recurrence: window start must not be after window end")
)

// DateOf strips the time-of-day component, normalizing to midnight UTC.
// Calendar arithmetic throughout the expander runs in UTC so that naive
// local dates behave identically on every host.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Expand produces the ascending occurrence dates for an anchor date and an
// optional rule within the inclusive window [windowStart, windowEnd].
//
// Semantics:
//   - A nil rule yields the anchor itself when it falls inside the window.
//   - Occurrences never precede the anchor and never exceed the rule's Until.
//   - Weekly rules scan at one-day granularity because the weekday set may
//     select several days per week.
//   - Monthly and yearly rules keep the anchor's day-of-month; months (or
//     years) lacking that day are skipped rather than clamped or rolled over.
//
// Expand is pure: identical arguments always yield identical output.
func Expand(anchor time.Time, rule *Rule, windowStart, windowEnd time.Time) ([]time.Time, error) {
	windowStart = DateOf(windowStart)
	windowEnd = DateOf(windowEnd)
	if windowStart.After(windowEnd) {
		return nil, ErrInvalidWindow
	}

	anchor = DateOf(anchor)

	if rule == nil {
		if anchor.Before(windowStart) || anchor.After(windowEnd) {
			return nil, nil
		}
		return []time.Time{anchor}, nil
	}

	upper := windowEnd
	if rule.Until != nil {
		until := DateOf(*rule.Until)
		if until.Before(upper) {
			upper = until
		}
	}
	if anchor.After(upper) {
		return nil, nil
	}

	switch rule.Frequency {
	case FrequencyDaily:
		return expandDaily(anchor, windowStart, upper), nil
	case FrequencyWeekly:
		return expandWeekly(anchor, rule.Weekdays, windowStart, upper), nil
	case FrequencyMonthly:
		return expandMonthly(anchor, windowStart, upper), nil
	case FrequencyYearly:
		return expandYearly(anchor, windowStart, upper), nil
	default:
		return nil, ErrInvalidFrequency
	}
}

func expandDaily(anchor, windowStart, upper time.Time) []time.Time {
	current := anchor
	if windowStart.After(current) {
		current = windowStart
	}

	var out []time.Time
	for !current.After(upper) {
		out = append(out, current)
		current = current.AddDate(0, 0, 1)
	}
	return out
}

func expandWeekly(anchor time.Time, weekdays []time.Weekday, windowStart, upper time.Time) []time.Time {
	selected := make(map[time.Weekday]struct{}, len(weekdays))
	for _, day := range weekdays {
		selected[day] = struct{}{}
	}
	if len(selected) == 0 {
		selected[anchor.Weekday()] = struct{}{}
	}

	current := anchor
	if windowStart.After(current) {
		current = windowStart
	}

	var out []time.Time
	for !current.After(upper) {
		if _, ok := selected[current.Weekday()]; ok {
			out = append(out, current)
		}
		current = current.AddDate(0, 0, 1)
	}
	return out
}

func expandMonthly(anchor, windowStart, upper time.Time) []time.Time {
	day := anchor.Day()
	year, month := anchor.Year(), anchor.Month()

	var out []time.Time
	for {
		monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		if monthStart.After(upper) {
			break
		}

		candidate := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		// When the month lacks the anchor day the Date call normalizes into
		// the following month; that month is skipped entirely.
		if candidate.Day() == day && !candidate.Before(windowStart) && !candidate.After(upper) && !candidate.Before(anchor) {
			out = append(out, candidate)
		}

		month++
		if month > time.December {
			month = time.January
			year++
		}
	}
	return out
}

func expandYearly(anchor, windowStart, upper time.Time) []time.Time {
	day := anchor.Day()
	month := anchor.Month()

	var out []time.Time
	for year := anchor.Year(); ; year++ {
		monthStart := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
		if time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).After(upper) {
			break
		}
		if monthStart.After(upper) {
			continue
		}

		candidate := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
		// Feb 29 anchors normalize to Mar 1 in non-leap years; skipped.
		if candidate.Month() == month && candidate.Day() == day &&
			!candidate.Before(windowStart) && !candidate.After(upper) && !candidate.Before(anchor) {
			out = append(out, candidate)
		}
	}
	return out
}
