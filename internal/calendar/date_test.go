package calendar

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTimestamp(t *testing.T) {
	d := New(Gregorian, Timestamp(0), InLocation(time.UTC))
	require.False(t, d.IsInvalid())
	assert.Equal(t, 1970, d.FullYear())
	assert.Equal(t, 0, d.Month())
	assert.Equal(t, 1, d.MonthNumber())
	assert.Equal(t, 1, d.Date())
	assert.Equal(t, 4, d.Day())
	assert.Equal(t, "1970-01-01", d.Format(""))
	assert.Equal(t, int64(0), d.Unix())

	j := New(Jalali, Timestamp(0), InLocation(time.UTC))
	assert.Equal(t, 1348, j.FullYear())
	assert.Equal(t, 9, j.Month())
	assert.Equal(t, 11, j.Date())
	assert.Equal(t, 4, j.Day())
	assert.Equal(t, 287, j.YearDay())

	d = New(Jalali, Timestamp(1709769600.5), InLocation(time.UTC))
	assert.Equal(t, "1402/12/17 00:00:00", d.String())
	assert.Equal(t, 500, d.Milliseconds())

	d = New(Jalali, Timestamp(1709769600), InLocation(tehran))
	assert.Equal(t, 3, d.Hours())
	assert.Equal(t, 30, d.Minutes())
}

func TestInvalidDate(t *testing.T) {
	for name, d := range map[string]Date{
		"nan":          New(Jalali, Timestamp(math.NaN())),
		"inf":          New(Gregorian, Timestamp(math.Inf(1))),
		"out of range": New(Gregorian, Timestamp(1e13)),
		"nil":          New(Jalali, nil),
		"garbage":      New(Jalali, Text("not a date")),
		"empty string": New(Gregorian, Text("")),
		"zero value":   {},
	} {
		t.Run(name, func(t *testing.T) {
			assert.True(t, d.IsInvalid())
			assert.Equal(t, 0, d.FullYear())
			assert.Equal(t, 0, d.Month())
			assert.Equal(t, 0, d.MonthNumber())
			assert.Equal(t, 0, d.Date())
			assert.Equal(t, 0, d.Day())
			assert.Equal(t, 0, d.PersianWeekday())
			assert.Equal(t, 0, d.Hours())
			assert.Equal(t, 0, d.Minutes())
			assert.Equal(t, 0, d.Seconds())
			assert.Equal(t, 0, d.Milliseconds())
			assert.Equal(t, 0, d.YearDay())
			assert.Equal(t, 0, d.MonthDays(2))
			assert.Equal(t, int64(0), d.Unix())
			assert.False(t, d.IsLeapYear())
			assert.Equal(t, "", d.Format("YYYY-MM-DD"))
			assert.Equal(t, "", d.Format(""))
			assert.Equal(t, "", d.String())
			assert.True(t, d.WithDay(3).IsInvalid())
			assert.True(t, d.In(Gregorian).IsInvalid())
			assert.True(t, d.UTC().IsInvalid())
		})
	}
}

func TestNewFields(t *testing.T) {
	now := time.Date(2024, 3, 7, 10, 0, 0, 0, tehran)
	opts := []Option{InLocation(tehran), WithNow(func() time.Time { return now })}

	d := New(Jalali, Fields{}, opts...)
	assert.True(t, now.Equal(d.Time()))
	assert.Equal(t, "1402-12-17", d.Format(""))

	d = New(Jalali, Fields{1403, 0, 1}, opts...)
	assert.True(t, time.Date(2024, 3, 20, 0, 0, 0, 0, tehran).Equal(d.Time()))
	assert.Equal(t, 3, d.Day())

	d = New(Jalali, Fields{1403}, opts...)
	assert.Equal(t, "1403-01-01", d.Format(""))

	d = New(Jalali, Fields{1402, 11, 30, 12, 30, 15}, opts...)
	assert.Equal(t, "1403/01/01 12:30:15", d.String(), "1402 has no Esfand 30")

	d = New(Gregorian, Fields{2024, 1, 29, 25}, opts...)
	assert.True(t, time.Date(2024, 3, 1, 1, 0, 0, 0, tehran).Equal(d.Time()))

	d = New(Gregorian, Fields{2023, 12, 1}, opts...)
	assert.Equal(t, "2024-01-01", d.Format(""))
}

func TestParseDate(t *testing.T) {
	d, err := Parse(Jalali, "1403/01/01 08:15:30", InLocation(tehran))
	require.NoError(t, err)
	assert.Equal(t, 1403, d.FullYear())
	assert.Equal(t, 8, d.Hours())
	assert.True(t, time.Date(2024, 3, 20, 8, 15, 30, 0, tehran).Equal(d.Time()))
	assert.Equal(t, "2024-03-20", d.In(Gregorian).Format(""))

	d, err = Parse(Gregorian, "2024-03-07", InLocation(tehran))
	require.NoError(t, err)
	assert.Equal(t, "2024-03-07 03:30", d.Format("YYYY-MM-DD HH:mm"))

	d, err = Parse(Jalali, "1403/01/01T08:00")
	require.ErrorIs(t, err, ErrParse)
	assert.True(t, d.IsInvalid())

	lenient := New(Jalali, Text("1403/01/01 08:15:30"), InLocation(tehran))
	assert.Equal(t, "1403-01-01", lenient.Format(""))
}

func TestDateAccessors(t *testing.T) {
	d := FromTime(Jalali, time.Date(2024, 3, 23, 18, 4, 5, 0, time.UTC))
	assert.Equal(t, 1403, d.FullYear())
	assert.Equal(t, 6, d.Day(), "saturday")
	assert.Equal(t, 0, d.PersianWeekday())
	assert.Equal(t, 4, d.YearDay())
	assert.False(t, d.IsLeapYear())
	assert.Equal(t, 29, d.MonthDays(12))
	assert.Equal(t, 31, d.MonthDays(1))
	assert.Equal(t, Jalali, d.Calendar())
	assert.Equal(t, CalendarDate{Year: 1403, Month: 1, Day: 4, WeekDay: 6, MonthDays: 31, YearDay: 4}, d.Fields())

	g := d.In(Gregorian)
	assert.Equal(t, 2024, g.FullYear())
	assert.True(t, g.IsLeapYear())
	assert.Equal(t, 29, g.MonthDays(2))
	assert.Equal(t, d.Unix(), g.Unix())

	one := New(Jalali, Timestamp(d.Unix()), InLocation(time.UTC), WithOneBasedClock(true))
	assert.Equal(t, "19:05:06", one.Format("HH:mm:ss"))
	assert.Equal(t, "1403/01/04 18:04:05", one.String())
}

func TestDateUTC(t *testing.T) {
	// 00:30 in Tehran is still the previous day in UTC.
	d := FromTime(Jalali, time.Date(2024, 3, 20, 0, 30, 0, 0, tehran))
	assert.Equal(t, "1403-01-01", d.Format(""))
	assert.Equal(t, "1402-12-29 21:00", d.UTC().Format("YYYY-MM-DD HH:mm"))
	assert.Equal(t, d.Unix(), d.UTC().Unix())
}

func TestDateSetters(t *testing.T) {
	base := FromTime(Jalali, time.Date(2024, 9, 21, 14, 0, 0, 0, tehran))
	require.Equal(t, "1403/06/31 14:00:00", base.String())

	moved := base.WithMonth(6)
	assert.Equal(t, "1403/08/01 14:00:00", moved.String(), "Mehr has 30 days")
	assert.Equal(t, "1403/06/31 14:00:00", base.String(), "original unchanged")

	assert.Equal(t, "1403/07/05 14:00:00", base.WithMonth(6, 5).String())
	assert.Equal(t, "1404/01/31 14:00:00", base.WithMonth(12, 31).String())
	assert.Equal(t, "1399/06/31 14:00:00", base.WithYear(1399).String())
	assert.Equal(t, "1403/06/01 14:00:00", base.WithDay(1).String())
	assert.Equal(t, "1403/07/01 14:00:00", base.WithDay(32).String())

	esfand := FromTime(Jalali, time.Date(2024, 2, 20, 0, 0, 0, 0, time.UTC))
	require.Equal(t, "1402-12-01", esfand.Format(""))
	assert.Equal(t, "1403-01-01", esfand.WithDay(30).Format(""))

	g := FromTime(Gregorian, time.Date(2024, 1, 31, 8, 0, 0, 0, time.UTC))
	assert.Equal(t, "2024-03-02", g.WithMonth(1).Format(""))
	assert.Equal(t, "2023-01-31", g.WithYear(2023).Format(""))
}

func TestJalaliUTC(t *testing.T) {
	assert.Equal(t, time.Date(2024, 3, 20, 12, 0, 0, 0, time.UTC), JalaliUTC(1403, 0, 1, 12, 0, 0, 0))
	assert.Equal(t, time.Date(2024, 3, 20, 0, 0, 0, 5000000, time.UTC), JalaliUTC(1403, 0, 0, 0, 0, 0, 5))
	assert.Equal(t, time.Date(2021, 3, 20, 0, 0, 0, 0, time.UTC), JalaliUTC(1399, 11, 30, 0, 0, 0, 0))
}
