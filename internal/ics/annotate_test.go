package ics

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"jcal/internal/calendar"
	"jcal/internal/model"
)

func TestAnnotate(t *testing.T) {
	holiday := time.Date(2024, 4, 1, 0, 0, 0, 0, tehran)
	occs := []model.Occurrence{
		{
			UID:   "nowruz@test",
			Start: time.Date(2024, 3, 20, 8, 30, 0, 0, time.UTC),
			End:   time.Date(2024, 3, 20, 9, 30, 0, 0, time.UTC),
		},
		{
			UID:    "holiday@test",
			AllDay: true,
			Start:  holiday,
			End:    holiday.AddDate(0, 0, 1),
		},
	}

	got := Annotate(occs, AnnotateConfig{
		Calendar: calendar.Jalali,
		Layout:   "YYYY/MM/DD HH:mm",
		Location: tehran,
	})

	assert.Equal(t, model.Stamp{
		Calendar: "jalali", Year: 1403, Month: 1, Day: 1, WeekDay: 3,
		Text: "1403/01/01 12:00",
	}, got[0].StartStamp)
	assert.Equal(t, "1403/01/01 13:00", got[0].EndStamp.Text)

	// Exclusive all-day end shows the last covered day.
	assert.Equal(t, 13, got[1].StartStamp.Day)
	assert.Equal(t, 13, got[1].EndStamp.Day)
	assert.Equal(t, 1, got[1].StartStamp.WeekDay)
}

func TestAnnotateGregorianOneBased(t *testing.T) {
	occs := []model.Occurrence{{
		Start: time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC),
		End:   time.Date(2024, 3, 7, 0, 0, 0, 0, time.UTC),
	}}
	Annotate(occs, AnnotateConfig{
		Calendar:      calendar.Gregorian,
		Layout:        "YY/M/D H:m:s",
		OneBasedClock: true,
	})
	assert.Equal(t, "24/3/7 1:1:1", occs[0].StartStamp.Text)
	assert.Equal(t, "gregorian", occs[0].StartStamp.Calendar)
	assert.Equal(t, 4, occs[0].StartStamp.WeekDay)
}
