package dashboard

import (
	"time"

	"github.com/finance-tracker/zfinance/internal/domain/entity"
)

// MonthWindow is an inclusive calendar-month range.
type MonthWindow struct {
	Start entity.Date
	End   entity.Date
}

// Contains reports whether the date falls inside the window, both ends included.
func (w MonthWindow) Contains(d entity.Date) bool {
	if d.IsZero() {
		return false
	}
	return !d.Before(w.Start) && !d.After(w.End)
}

// GetMonthBounds returns the first and last day of the calendar month containing the
// reference time, in the reference's own location.
func GetMonthBounds(reference time.Time) MonthWindow {
	start := entity.NewDate(reference.Year(), reference.Month(), 1)
	return MonthWindow{
		Start: start,
		End:   start.AddMonths(1).AddDays(-1),
	}
}

// GetPreviousMonthBounds returns the calendar month immediately before the one
// containing the reference time. January rolls back to December of the previous year.
func GetPreviousMonthBounds(reference time.Time) MonthWindow {
	current := GetMonthBounds(reference)
	start := current.Start.AddMonths(-1)
	return MonthWindow{
		Start: start,
		End:   current.Start.AddDays(-1),
	}
}
