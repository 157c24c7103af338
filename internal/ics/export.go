package ics

import (
	"fmt"
	"time"

	ical "github.com/arran4/golang-ical"

	"jcal/internal/model"
)

// PropertyLocalDate carries the annotated start date of an exported event.
const PropertyLocalDate = ical.ComponentProperty("X-JCAL-DATE")

// ExportICS serializes occurrences as a flat VCALENDAR, one VEVENT per
// occurrence. Recurring series come out expanded. Annotated occurrences
// carry their rendered start in an X-JCAL-DATE property.
func ExportICS(occs []model.Occurrence, stampedAt time.Time) string {
	cal := ical.NewCalendarFor("jcal")
	cal.SetMethod(ical.MethodPublish)

	for _, o := range occs {
		ev := cal.AddEvent(exportUID(o))
		ev.SetDtStampTime(stampedAt.UTC())
		if o.AllDay {
			ev.SetAllDayStartAt(o.Start)
			ev.SetAllDayEndAt(o.End)
		} else {
			ev.SetStartAt(o.Start.UTC())
			ev.SetEndAt(o.End.UTC())
		}
		ev.SetSummary(o.Summary)
		if o.Description != "" {
			ev.SetDescription(o.Description)
		}
		if o.Location != "" {
			ev.SetLocation(o.Location)
		}
		if o.StartStamp.Text != "" {
			ev.AddProperty(PropertyLocalDate, o.StartStamp.Text)
		}
	}
	return cal.Serialize()
}

// exportUID keeps instances of one series distinct after expansion.
func exportUID(o model.Occurrence) string {
	return fmt.Sprintf("%s/%s", o.UID, o.Start.UTC().Format("20060102T150405Z"))
}
