package ics

import (
	"strings"
	"time"
)

var tehran = time.FixedZone("IRST", 12600)

// icsLines joins calendar lines with CRLF as RFC 5545 requires.
func icsLines(lines ...string) []byte {
	return []byte(strings.Join(lines, "\r\n") + "\r\n")
}

var sampleICS = icsLines(
	"BEGIN:VCALENDAR",
	"VERSION:2.0",
	"PRODID:-//test//EN",
	"BEGIN:VEVENT",
	"UID:nowruz@test",
	"DTSTAMP:20240301T000000Z",
	"DTSTART:20240320T083000Z",
	"DTEND:20240320T093000Z",
	"SUMMARY:Nowruz call",
	"DESCRIPTION:family",
	"LOCATION:Tehran",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"UID:weekly@test",
	"DTSTAMP:20240301T000000Z",
	"DTSTART:20240301T090000Z",
	"DTEND:20240301T100000Z",
	"RRULE:FREQ=WEEKLY;COUNT=4",
	"EXDATE:20240308T090000Z",
	"SUMMARY:Weekly sync",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"UID:weekly@test",
	"DTSTAMP:20240301T000000Z",
	"RECURRENCE-ID:20240315T090000Z",
	"DTSTART:20240315T130000Z",
	"DTEND:20240315T140000Z",
	"SUMMARY:Weekly sync (moved)",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"UID:holiday@test",
	"DTSTAMP:20240301T000000Z",
	"DTSTART;VALUE=DATE:20240401",
	"DTEND;VALUE=DATE:20240402",
	"SUMMARY:Sizdah Be-dar",
	"END:VEVENT",
	"BEGIN:VEVENT",
	"DTSTAMP:20240301T000000Z",
	"DTSTART:20240301T090000Z",
	"SUMMARY:no uid",
	"END:VEVENT",
	"END:VCALENDAR",
)

var testSource = Source{ID: "test", URL: "http://example.invalid/cal.ics"}
