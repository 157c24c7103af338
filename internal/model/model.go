package model

import "time"

// Stamp is an instant rendered in one calendar.
type Stamp struct {
	Calendar string `json:"calendar"`
	Year     int    `json:"year"`
	Month    int    `json:"month"` // 1-based
	Day      int    `json:"day"`
	WeekDay  int    `json:"weekday"` // 0 = Sunday
	Text     string `json:"text"`
}

// Occurrence represents a single concrete instance of an event
// (after recurrence expansion and timezone normalization).
type Occurrence struct {
	SourceID string `json:"source_id"`
	UID      string `json:"uid"`

	// InstanceKey uniquely identifies a single occurrence of a recurring
	// event, derived from the start instant.
	InstanceKey string `json:"instance_key"`

	Summary     string `json:"summary"`
	Description string `json:"description,omitempty"`
	Location    string `json:"location,omitempty"`

	AllDay bool `json:"all_day"`

	// Start / End are in the configured display timezone.
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	// StartStamp / EndStamp carry Start and End in the display calendar;
	// empty until annotated.
	StartStamp Stamp `json:"start_stamp"`
	EndStamp   Stamp `json:"end_stamp"`
}
