package ics

import (
	"time"

	"jcal/internal/calendar"
	"jcal/internal/model"
)

// AnnotateConfig selects how occurrence boundaries are rendered.
type AnnotateConfig struct {
	Calendar calendar.Kind
	// Layout is a calendar.FormatFields layout; empty means
	// calendar.DefaultLayout.
	Layout        string
	OneBasedClock bool
	// Location is the zone the wall clock is read in. Nil keeps each
	// instant's own location.
	Location *time.Location
}

// Annotate fills StartStamp and EndStamp of every occurrence in place and
// returns the slice. The end of an all-day occurrence is exclusive, so its
// stamp shows the last day it covers.
func Annotate(occs []model.Occurrence, cfg AnnotateConfig) []model.Occurrence {
	// Sorted occurrences repeat start instants (all-day events of one day),
	// so each boundary keeps its own memo.
	var starts, ends calendar.Memo
	for i := range occs {
		o := &occs[i]
		o.StartStamp = stamp(&starts, o.Start, cfg)

		end := o.End
		if o.AllDay && end.After(o.Start) {
			end = end.Add(-time.Nanosecond)
		}
		o.EndStamp = stamp(&ends, end, cfg)
	}
	return occs
}

func stamp(memo *calendar.Memo, t time.Time, cfg AnnotateConfig) model.Stamp {
	if cfg.Location != nil {
		t = t.In(cfg.Location)
	}
	cd := memo.Fields(t, cfg.Calendar, false)
	clock := calendar.Clock{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}
	return model.Stamp{
		Calendar: cfg.Calendar.String(),
		Year:     cd.Year,
		Month:    cd.Month,
		Day:      cd.Day,
		WeekDay:  cd.WeekDay,
		Text:     calendar.FormatFields(cd, clock, cfg.Layout, calendar.FormatOptions{OneBasedClock: cfg.OneBasedClock}),
	}
}
