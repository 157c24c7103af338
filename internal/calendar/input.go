package calendar

// Input is what a Date can be built from: a Timestamp, Fields or Text.
// The set is closed; any other value (including nil) builds an invalid Date.
type Input interface {
	input()
}

// Timestamp is a number of seconds since 1970-01-01T00:00:00Z. Fractions are
// kept to the millisecond. NaN and infinities are invalid.
type Timestamp float64

// Fields are positional calendar fields:
//
//	[year, month (0-based), day, hour, minute, second]
//
// in the calendar of the Date being built. Missing trailing fields default to
// the first day of the month at midnight; an empty Fields means now. Values
// out of range roll over into the neighbouring unit.
type Fields []int

// Text is a date string in the grammar accepted by ParseSpec.
type Text string

func (Timestamp) input() {}
func (Fields) input()    {}
func (Text) input()      {}

func (f Fields) at(i, def int) int {
	if i < len(f) {
		return f[i]
	}
	return def
}
