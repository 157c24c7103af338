package calendar

import "time"

// Week is one row of a month grid. Cells outside the month are zero
// CalendarDates (Day == 0).
type Week [7]CalendarDate

// MonthDates returns every day of month in calendar kind, or nil when month
// is outside 1..12.
func MonthDates(kind Kind, year, month int) []CalendarDate {
	n := kind.MonthDays(year, month)
	if n == 0 {
		return nil
	}
	first := kind.ToJD(year, month, 1)
	out := make([]CalendarDate, n)
	for i := range out {
		out[i] = kind.FromJD(first + JulianDay(i))
	}
	return out
}

// MonthGrid lays out month in weeks starting on firstDay.
func MonthGrid(kind Kind, year, month int, firstDay time.Weekday) []Week {
	dates := MonthDates(kind, year, month)
	if dates == nil {
		return nil
	}
	col := floorMod(dates[0].WeekDay-int(firstDay), 7)
	weeks := []Week{{}}
	for _, d := range dates {
		if col == 7 {
			weeks = append(weeks, Week{})
			col = 0
		}
		weeks[len(weeks)-1][col] = d
		col++
	}
	return weeks
}
