// Package ics renders the household's scheduled chores as an iCalendar feed
// so external calendar apps can subscribe to them.
package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"
	"github.com/teambition/rrule-go"

	"github.com/example/household-hub/internal/application"
	"github.com/example/household-hub/internal/recurrence"
)

const uidSuffix = "@household-hub"

// Feed serializes the scheduled chores as VEVENTs. Unscheduled chores are
// left out; recurring chores carry an RRULE so subscribers expand the series
// themselves.
func Feed(chores []application.Chore, now time.Time) (string, error) {
	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId("-//household-hub//calendar feed//EN")

	for _, chore := range chores {
		if chore.DueDate.IsZero() {
			continue
		}
		event := cal.AddEvent(chore.ID + uidSuffix)
		event.SetDtStampTime(now.UTC())
		event.SetAllDayStartAt(chore.DueDate)
		event.SetAllDayEndAt(chore.DueDate.AddDate(0, 0, 1))
		event.SetSummary(chore.Task)
		if chore.Priority != "" {
			event.SetDescription(fmt.Sprintf("Priority: %s", chore.Priority))
		}
		if chore.Recurrence != nil {
			rule, err := rruleString(chore.Recurrence)
			if err != nil {
				return "", fmt.Errorf("ics: chore %s: %w", chore.ID, err)
			}
			event.AddProperty(ical.ComponentPropertyRrule, rule)
		}
	}
	return cal.Serialize(), nil
}

// rruleString renders a recurrence rule as an RFC 5545 RRULE value.
func rruleString(rule *application.RecurrenceRule) (string, error) {
	option := rrule.ROption{}
	switch rule.Frequency {
	case recurrence.FrequencyDaily:
		option.Freq = rrule.DAILY
	case recurrence.FrequencyWeekly:
		option.Freq = rrule.WEEKLY
	case recurrence.FrequencyMonthly:
		option.Freq = rrule.MONTHLY
	case recurrence.FrequencyYearly:
		option.Freq = rrule.YEARLY
	default:
		return "", recurrence.ErrInvalidFrequency
	}

	for _, day := range rule.Weekdays {
		weekday, err := rruleWeekday(day)
		if err != nil {
			return "", err
		}
		option.Byweekday = append(option.Byweekday, weekday)
	}
	if rule.Until != nil {
		// The until date is inclusive, so the RRULE bound is its last instant.
		option.Until = rule.Until.AddDate(0, 0, 1).Add(-time.Second)
	}

	r, err := rrule.NewRRule(option)
	if err != nil {
		return "", fmt.Errorf("build rrule: %w", err)
	}
	return r.String(), nil
}

func rruleWeekday(day time.Weekday) (rrule.Weekday, error) {
	switch day {
	case time.Monday:
		return rrule.MO, nil
	case time.Tuesday:
		return rrule.TU, nil
	case time.Wednesday:
		return rrule.WE, nil
	case time.Thursday:
		return rrule.TH, nil
	case time.Friday:
		return rrule.FR, nil
	case time.Saturday:
		return rrule.SA, nil
	case time.Sunday:
		return rrule.SU, nil
	default:
		return rrule.Weekday{}, fmt.Errorf("unknown weekday %d", day)
	}
}
