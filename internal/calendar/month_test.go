package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func days(w Week) []int {
	out := make([]int, len(w))
	for i, d := range w {
		out[i] = d.Day
	}
	return out
}

func TestMonthDates(t *testing.T) {
	dates := MonthDates(Jalali, 1403, 1)
	require.Len(t, dates, 31)
	assert.Equal(t, 3, dates[0].WeekDay)
	assert.Equal(t, 1, dates[0].YearDay)
	assert.Equal(t, 31, dates[30].Day)

	assert.Len(t, MonthDates(Jalali, 1399, 12), 30)
	assert.Len(t, MonthDates(Gregorian, 2024, 2), 29)
	assert.Nil(t, MonthDates(Jalali, 1403, 13))
	assert.Nil(t, MonthDates(Gregorian, 2024, 0))
}

func TestMonthGrid(t *testing.T) {
	// Farvardin 1403 starts on Wednesday 2024-03-20.
	grid := MonthGrid(Jalali, 1403, 1, time.Saturday)
	require.Len(t, grid, 5)
	assert.Equal(t, []int{0, 0, 0, 0, 1, 2, 3}, days(grid[0]))
	assert.Equal(t, []int{4, 5, 6, 7, 8, 9, 10}, days(grid[1]))
	assert.Equal(t, []int{25, 26, 27, 28, 29, 30, 31}, days(grid[4]))
	assert.Equal(t, 6, grid[1][0].WeekDay)

	// Esfand 1402 starts on Tuesday 2024-02-20 and has 29 days.
	grid = MonthGrid(Jalali, 1402, 12, time.Saturday)
	require.Len(t, grid, 5)
	assert.Equal(t, []int{0, 0, 0, 1, 2, 3, 4}, days(grid[0]))
	assert.Equal(t, []int{26, 27, 28, 29, 0, 0, 0}, days(grid[4]))

	// February 2024 starts on Thursday.
	grid = MonthGrid(Gregorian, 2024, 2, time.Sunday)
	require.Len(t, grid, 5)
	assert.Equal(t, []int{0, 0, 0, 0, 1, 2, 3}, days(grid[0]))
	assert.Equal(t, []int{25, 26, 27, 28, 29, 0, 0}, days(grid[4]))

	assert.Nil(t, MonthGrid(Gregorian, 2024, 13, time.Sunday))
}
