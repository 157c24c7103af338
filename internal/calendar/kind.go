// Package calendar converts dates between the Gregorian and the Persian
// (Jalali) calendars.
//
// Every conversion goes through a Julian Day number: a continuous day count
// that both calendars can be mapped onto and back from. On top of the four
// converter functions the package provides a date-string parser, a token
// based formatter and Date, an immutable view of an instant in one calendar.
//
// The converter, the parser and the formatter are pure functions and are safe
// for concurrent use. Date values are immutable. Memo is the only stateful
// type and must not be shared between goroutines without external locking.
package calendar

import (
	"fmt"
	"strings"
)

// Kind selects one of the supported calendars.
type Kind int

const (
	// Gregorian is the proleptic Gregorian civil calendar. It is the zero
	// value and the default whenever no calendar is named.
	Gregorian Kind = iota
	// Jalali is the Persian solar calendar using the 2820 year cycle.
	Jalali
)

// KindFromName maps a calendar name to a Kind. Names are case-insensitive;
// "jalali" and "persian" select Jalali and anything else, including the
// empty string, selects Gregorian.
func KindFromName(name string) Kind {
	k, err := ParseKind(name)
	if err != nil {
		return Gregorian
	}
	return k
}

// ParseKind is the strict variant of KindFromName: unknown names are an
// error instead of silently selecting Gregorian.
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "gregorian":
		return Gregorian, nil
	case "jalali", "persian", "shamsi":
		return Jalali, nil
	}
	return Gregorian, fmt.Errorf("unknown calendar %q", name)
}

func (k Kind) String() string {
	if k == Jalali {
		return "jalali"
	}
	return "gregorian"
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler using ParseKind.
func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

// IsLeap reports whether year is a leap year in calendar k.
func (k Kind) IsLeap(year int) bool {
	if k == Jalali {
		return IsLeapPersian(year)
	}
	return IsLeapGregorian(year)
}

// MonthDays returns the length of month (1-based) of year in calendar k.
func (k Kind) MonthDays(year, month int) int {
	if k == Jalali {
		return PersianMonthDays(year, month)
	}
	return GregorianMonthDays(year, month)
}

// ToJD converts a date of calendar k to its Julian Day.
func (k Kind) ToJD(year, month, day int) JulianDay {
	if k == Jalali {
		return PersianToJD(year, month, day)
	}
	return GregorianToJD(year, month, day)
}

// FromJD converts a Julian Day to a date of calendar k.
func (k Kind) FromJD(jd JulianDay) CalendarDate {
	if k == Jalali {
		return JDToPersian(jd)
	}
	return JDToGregorian(jd)
}
