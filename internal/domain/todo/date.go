package todo

import (
	"time"

	"github.com/workhive/todos-backend/internal/domain/shared"
)

// DateLayout is the wire format for calendar dates
const DateLayout = "2006-01-02"

// NormalizeDate canonicalizes a client-supplied calendar-date string to
// midnight UTC of that date. The same rule applies to single-date filters,
// range boundaries, and recurring-date creation, so stored due dates always
// compare equal for the same calendar day regardless of the caller's clock.
func NormalizeDate(value string) (time.Time, error) {
	if value == "" {
		return time.Time{}, shared.NewDomainError("INVALID_DATE", "Date is required")
	}
	if t, err := time.ParseInLocation(DateLayout, value, time.UTC); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, shared.NewDomainError("INVALID_DATE", "Date must be formatted as YYYY-MM-DD")
	}
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC), nil
}

// MonthBounds returns the [start, end) instants covering the given calendar
// month in UTC. The end bound is the first instant of the following month,
// so the last day of the month is always included and the first day of the
// next month never is.
func MonthBounds(year int, month time.Month) (time.Time, time.Time) {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return start, start.AddDate(0, 1, 0)
}

// RangeBounds widens an inclusive [start, end] date pair into the half-open
// [start, end+1day) window used by range queries, so todos dated exactly on
// the end date are included.
func RangeBounds(start, end time.Time) (time.Time, time.Time) {
	return start, end.AddDate(0, 0, 1)
}
