package valueobject

import (
	"fmt"
	"strings"
	"time"

	domainerror "github.com/cash-register/backend/internal/domain/error"
)

// HistoryPeriod is a named window for filtering closings.
type HistoryPeriod string

const (
	HistoryPeriodDay   HistoryPeriod = "day"
	HistoryPeriodMonth HistoryPeriod = "month"
	HistoryPeriodYear  HistoryPeriod = "year"
)

// endOfDayNanos places the inclusive end of a day at 23:59:59.999.
const endOfDayNanos = 999 * int(time.Millisecond)

// dateLayouts lists the accepted formats for explicit history dates.
var dateLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04:05", "2006-01-02"}

// DateRange bounds a history query. A nil bound is open-ended.
type DateRange struct {
	From *time.Time
	To   *time.Time
}

// IsUnbounded reports whether the range applies no filter.
func (r DateRange) IsUnbounded() bool {
	return r.From == nil && r.To == nil
}

// Contains reports whether t falls inside the range, both ends inclusive.
func (r DateRange) Contains(t time.Time) bool {
	if r.From != nil && t.Before(*r.From) {
		return false
	}
	if r.To != nil && t.After(*r.To) {
		return false
	}
	return true
}

// ParseHistoryPeriod validates a period name. An empty name yields an empty period.
func ParseHistoryPeriod(value string) (HistoryPeriod, error) {
	switch p := HistoryPeriod(strings.ToLower(strings.TrimSpace(value))); p {
	case "", HistoryPeriodDay, HistoryPeriodMonth, HistoryPeriodYear:
		return p, nil
	default:
		return "", fmt.Errorf("%w: %q", domainerror.ErrInvalidHistoryPeriod, value)
	}
}

// PeriodRange returns the calendar window of the period containing now.
// now's location decides where days begin and end.
func PeriodRange(period HistoryPeriod, now time.Time) DateRange {
	loc := now.Location()
	var start, end time.Time

	switch period {
	case HistoryPeriodDay:
		start = time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
		end = endOfDay(start)
	case HistoryPeriodMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, loc)
		end = endOfDay(start.AddDate(0, 1, -1))
	case HistoryPeriodYear:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, loc)
		end = endOfDay(time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, loc))
	default:
		return DateRange{}
	}

	return DateRange{From: &start, To: &end}
}

// ResolveHistoryRange builds the filter window for a history query.
// A named period takes precedence over explicit dates. The end date is
// inclusive through 23:59:59.999 of that day.
func ResolveHistoryRange(period HistoryPeriod, startDate, endDate string, now time.Time) (DateRange, error) {
	if period != "" {
		return PeriodRange(period, now), nil
	}

	var r DateRange
	loc := now.Location()

	if startDate != "" {
		start, err := parseDate(startDate, loc)
		if err != nil {
			return DateRange{}, err
		}
		r.From = &start
	}

	if endDate != "" {
		end, err := parseDate(endDate, loc)
		if err != nil {
			return DateRange{}, err
		}
		end = endOfDay(end)
		r.To = &end
	}

	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return DateRange{}, fmt.Errorf("%w: start date is after end date", domainerror.ErrInvalidDateRange)
	}

	return r, nil
}

func parseDate(value string, loc *time.Location) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", domainerror.ErrInvalidDateRange, value)
}

func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, endOfDayNanos, t.Location())
}
