package calendar

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/dlclark/regexp2"
)

// ErrParse is matched by every error returned from the date-string parser.
var ErrParse = errors.New("cannot parse date string")

// ParseError describes a string that is not a date in the accepted grammar.
type ParseError struct {
	Input  string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("cannot parse date string %q: %s", e.Input, e.Reason)
}

// Is makes errors.Is(err, ErrParse) true for any *ParseError.
func (e *ParseError) Is(target error) bool {
	return target == ErrParse
}

func parseErr(input, reason string) error {
	return &ParseError{Input: input, Reason: reason}
}

// datePattern accepts
//
//	YEAR[(-|/)MONTH[(-|/)DAY]][(T| )HH:MM[:SS[.fraction]][Z|±HH[[:]MM]]]
//
// The second date separator must repeat the first one, hence regexp2 for the
// back-reference.
//
// Groups: 1 year, 2 separator, 3 month, 4 day, 5 time part, 6 time separator,
// 7 hour, 8 minute, 9 second, 10 fraction, 11 zone, 12 offset sign,
// 13 offset hours, 14 offset minutes.
var datePattern = regexp2.MustCompile(
	`^([0-9]|[0-9]{2}|[0-9]{4})`+
		`(?:([-/])([0-9]{1,2})(?:\2([0-9]|[0-9]{2}|[0-9]{4}))?)?`+
		`(([ T])([0-9]{2}):([0-9]{2})(?::([0-9]{2})(?:\.([0-9]+))?)?`+
		`(Z|([+-])([0-9]{2})(?::?([0-9]{2}))?)?)?$`,
	regexp2.None)

// ParsedSpec is the result of parsing a date string. The year, month and day
// are in the calendar the string was written in; Persian records which one.
type ParsedSpec struct {
	Year, Month, Day     int
	Hour, Minute, Second int
	Millisecond          int

	// Persian marks Year/Month/Day as Persian calendar fields.
	Persian bool
	// NonLocal is set for ISO strings carrying a zone designator and for
	// date-only ISO strings; their wall clock is read in UTC shifted by
	// OffsetMinutes instead of in the caller's location.
	NonLocal bool
	// HasOffset is set when an explicit ±HH[:MM] offset was given.
	HasOffset     bool
	OffsetMinutes int
}

// ParseSpec parses s. When persian is set the date fields are taken to be
// Persian calendar fields. Either a complete spec or a *ParseError is
// returned.
func ParseSpec(s string, persian bool) (ParsedSpec, error) {
	if strings.ContainsAny(s, "\r\n") {
		return ParsedSpec{}, parseErr(s, "line breaks are not allowed")
	}
	m, err := datePattern.FindStringMatch(s)
	if err != nil {
		return ParsedSpec{}, parseErr(s, err.Error())
	}
	if m == nil {
		return ParsedSpec{}, parseErr(s, "does not match YEAR[-MONTH[-DAY]][ HH:MM[:SS[.fff]][zone]]")
	}
	group := func(n int) string {
		g := m.GroupByNumber(n)
		if g == nil || len(g.Captures) == 0 {
			return ""
		}
		return g.String()
	}

	separator, timeSeparator, zone := group(2), group(6), group(11)
	isISO := separator != "/" && timeSeparator != " "

	if (zone != "" || timeSeparator == "T") && !isISO {
		return ParsedSpec{}, parseErr(s, "a zone or the T separator needs '-' as date separator")
	}

	p := ParsedSpec{
		Year:     atoi(group(1)),
		Month:    atoi(group(3)),
		Day:      atoi(group(4)),
		Hour:     atoi(group(7)),
		Minute:   atoi(group(8)),
		Second:   atoi(group(9)),
		Persian:  persian,
		NonLocal: isISO && (zone != "" || group(5) == ""),
	}
	// A missing or zero month/day means the first one.
	if p.Month == 0 {
		p.Month = 1
	}
	if p.Day == 0 {
		p.Day = 1
	}

	if (p.Day >= 1000) == (p.Year >= 1000) {
		return ParsedSpec{}, parseErr(s, "exactly one of the first and last date fields must be a four digit year")
	}
	if p.Day >= 1000 {
		if separator == "-" {
			return ParsedSpec{}, parseErr(s, "day-first dates must use '/' as separator")
		}
		p.Year, p.Day = p.Day, p.Year
	}

	p.Millisecond = fractionToMillis(group(10))

	if sign := group(12); sign != "" {
		p.HasOffset = true
		p.OffsetMinutes = atoi(group(13))*60 + atoi(group(14))
		if sign == "-" {
			p.OffsetMinutes = -p.OffsetMinutes
		}
	}
	return p, nil
}

// Gregorian returns the Gregorian year, month and day of the spec.
func (p ParsedSpec) Gregorian() (year, month, day int) {
	if !p.Persian {
		return p.Year, p.Month, p.Day
	}
	g := JDToGregorian(PersianToJD(p.Year, p.Month, p.Day))
	return g.Year, g.Month, g.Day
}

// Instant returns the instant described by the spec, expressed in loc. Local
// specs read their wall clock in loc, non-local ones in UTC minus the
// declared offset. A nil loc means time.Local.
func (p ParsedSpec) Instant(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	year, month, day := p.Gregorian()
	nsec := p.Millisecond * int(time.Millisecond)
	if !p.NonLocal {
		return time.Date(year, time.Month(month), day, p.Hour, p.Minute, p.Second, nsec, loc)
	}
	t := time.Date(year, time.Month(month), day, p.Hour, p.Minute, p.Second, nsec, time.UTC)
	return t.Add(-time.Duration(p.OffsetMinutes) * time.Minute).In(loc)
}

// ParseInstant parses s and returns the instant it names in loc.
func ParseInstant(s string, persian bool, loc *time.Location) (time.Time, error) {
	p, err := ParseSpec(s, persian)
	if err != nil {
		return time.Time{}, err
	}
	return p.Instant(loc), nil
}

// fractionToMillis reads digits as a decimal fraction of a second, so "2" is
// 200ms and "02" is 20ms. Digits past the millisecond are dropped.
func fractionToMillis(digits string) int {
	if digits == "" {
		return 0
	}
	if len(digits) > 3 {
		digits = digits[:3]
	}
	digits += strings.Repeat("0", 3-len(digits))
	return atoi(digits)
}

// atoi is only fed digit runs matched by datePattern.
func atoi(s string) int {
	if s == "" {
		return 0
	}
	n, _ := strconv.Atoi(s)
	return n
}
