package calendar

import "time"

// Memo remembers the last conversion for each calendar, separately for the
// wall clock date in the instant's own location and for its UTC date. A slot
// is recomputed whenever it is asked about a different instant or location.
//
// A Memo is not safe for concurrent use.
type Memo struct {
	slots [2][2]memoSlot // [Kind][utc]
}

type memoSlot struct {
	set  bool
	t    time.Time
	date CalendarDate
}

// Fields returns the calendar fields of t in calendar kind, read in t's
// location, or in UTC when utc is set.
func (m *Memo) Fields(t time.Time, kind Kind, utc bool) CalendarDate {
	if utc {
		t = t.UTC()
	}
	slot := &m.slots[kindIndex(kind)][boolIndex(utc)]
	if slot.set && slot.t.Equal(t) && slot.t.Location() == t.Location() {
		return slot.date
	}
	slot.set = true
	slot.t = t
	slot.date = fieldsAt(kind, t)
	return slot.date
}

// Reset forgets every remembered conversion.
func (m *Memo) Reset() {
	m.slots = [2][2]memoSlot{}
}

func kindIndex(k Kind) int {
	if k == Jalali {
		return 1
	}
	return 0
}

func boolIndex(b bool) int {
	if b {
		return 1
	}
	return 0
}
