package calendar

import (
	"math"
	"time"
)

// maxUnixMillis bounds Timestamp inputs to ±100,000,000 days around the
// epoch, the same range a JavaScript Date accepts.
const maxUnixMillis = 8.64e15

// Date is an instant viewed through one calendar. The zero Date is invalid.
//
// Date values are immutable: methods that change a field return a new Date
// whose instant was derived by converting to calendar fields, changing the
// field and converting back.
type Date struct {
	kind    Kind
	t       time.Time
	cal     CalendarDate
	valid   bool
	oneBase bool
}

type options struct {
	loc     *time.Location
	now     func() time.Time
	oneBase bool
}

// Option configures New, Parse and Now.
type Option func(*options)

// InLocation reads and renders wall clock fields in loc instead of
// time.Local.
func InLocation(loc *time.Location) Option {
	return func(o *options) {
		if loc != nil {
			o.loc = loc
		}
	}
}

// WithNow replaces the clock used for empty Fields and Now.
func WithNow(now func() time.Time) Option {
	return func(o *options) {
		if now != nil {
			o.now = now
		}
	}
}

// WithOneBasedClock makes Format add one to hours, minutes and seconds.
func WithOneBasedClock(on bool) Option {
	return func(o *options) {
		o.oneBase = on
	}
}

func buildOptions(opts []Option) options {
	o := options{loc: time.Local, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// New builds a Date of calendar kind from in. It never fails: NaN or
// infinite timestamps, strings that do not parse and unsupported inputs
// produce an invalid Date. Use Parse to get the parse error instead.
func New(kind Kind, in Input, opts ...Option) Date {
	o := buildOptions(opts)
	invalid := Date{kind: kind, oneBase: o.oneBase}

	var t time.Time
	switch v := in.(type) {
	case Timestamp:
		ms := math.Trunc(float64(v) * 1000)
		if math.IsNaN(ms) || math.Abs(ms) > maxUnixMillis {
			return invalid
		}
		t = time.UnixMilli(int64(ms)).In(o.loc)
	case Fields:
		if len(v) == 0 {
			t = o.now().In(o.loc)
			break
		}
		t = fieldsTime(kind, v, o.loc)
	case Text:
		p, err := ParseSpec(string(v), kind == Jalali)
		if err != nil {
			return invalid
		}
		t = p.Instant(o.loc)
	default:
		return invalid
	}
	return newDate(kind, t, o.oneBase)
}

// Parse is the strict string constructor: a malformed s is reported as a
// *ParseError instead of producing an invalid Date. For Jalali the date
// fields of s are Persian.
func Parse(kind Kind, s string, opts ...Option) (Date, error) {
	o := buildOptions(opts)
	p, err := ParseSpec(s, kind == Jalali)
	if err != nil {
		return Date{kind: kind, oneBase: o.oneBase}, err
	}
	return newDate(kind, p.Instant(o.loc), o.oneBase), nil
}

// FromTime views t through calendar kind, in t's own location.
func FromTime(kind Kind, t time.Time) Date {
	return newDate(kind, t, false)
}

// Now returns the current instant in calendar kind.
func Now(kind Kind, opts ...Option) Date {
	return New(kind, Fields{}, opts...)
}

// JalaliUTC returns the instant of a Persian date and clock in UTC, month
// being 0-based. A zero day means the first of the month.
func JalaliUTC(year, month, day, hour, minute, second, millisecond int) time.Time {
	if day == 0 {
		day = 1
	}
	g := JDToGregorian(PersianToJD(year, month+1, day))
	return time.Date(g.Year, time.Month(g.Month), g.Day,
		hour, minute, second, millisecond*int(time.Millisecond), time.UTC)
}

func newDate(kind Kind, t time.Time, oneBase bool) Date {
	return Date{
		kind:    kind,
		t:       t,
		cal:     fieldsAt(kind, t),
		valid:   true,
		oneBase: oneBase,
	}
}

// fieldsAt converts the civil date of t in its own location.
func fieldsAt(kind Kind, t time.Time) CalendarDate {
	return kind.FromJD(GregorianToJD(t.Year(), int(t.Month()), t.Day()))
}

func fieldsTime(kind Kind, f Fields, loc *time.Location) time.Time {
	return civilTime(kind, f.at(0, 0), f.at(1, 0)+1, f.at(2, 1),
		f.at(3, 0), f.at(4, 0), f.at(5, 0), 0, loc)
}

// civilTime returns the instant of a wall clock on the given date of calendar
// kind. Out of range months, days and clock fields roll over.
func civilTime(kind Kind, year, month, day, hour, minute, second, nsec int, loc *time.Location) time.Time {
	if kind == Jalali {
		g := JDToGregorian(PersianToJD(year, month, day))
		year, month, day = g.Year, g.Month, g.Day
	}
	return time.Date(year, time.Month(month), day, hour, minute, second, nsec, loc)
}

// IsInvalid reports whether d was built from an input that is not a date.
func (d Date) IsInvalid() bool { return !d.valid }

// Calendar returns the calendar d is viewed through.
func (d Date) Calendar() Kind { return d.kind }

// Time returns the instant of d; the zero time.Time when d is invalid.
func (d Date) Time() time.Time { return d.t }

// Unix returns d as seconds since the epoch, 0 when invalid.
func (d Date) Unix() int64 {
	if !d.valid {
		return 0
	}
	return d.t.Unix()
}

// Fields returns the calendar fields of d.
func (d Date) Fields() CalendarDate { return d.cal }

// FullYear returns the year in d's calendar.
func (d Date) FullYear() int { return d.cal.Year }

// Month returns the 0-based month.
func (d Date) Month() int {
	if !d.valid {
		return 0
	}
	return d.cal.Month - 1
}

// MonthNumber returns the 1-based month.
func (d Date) MonthNumber() int { return d.cal.Month }

// Date returns the day of the month.
func (d Date) Date() int { return d.cal.Day }

// Day returns the day of the week, 0 being Sunday.
func (d Date) Day() int { return d.cal.WeekDay }

// PersianWeekday returns the day of the week counted from Saturday, the
// first day of the Persian week.
func (d Date) PersianWeekday() int {
	if !d.valid {
		return 0
	}
	return (d.cal.WeekDay + 1) % 7
}

// YearDay returns the 1-based day of the year.
func (d Date) YearDay() int { return d.cal.YearDay }

// Hours returns the hour of the day in d's location.
func (d Date) Hours() int {
	if !d.valid {
		return 0
	}
	return d.t.Hour()
}

// Minutes returns the minute within the hour.
func (d Date) Minutes() int {
	if !d.valid {
		return 0
	}
	return d.t.Minute()
}

// Seconds returns the second within the minute.
func (d Date) Seconds() int {
	if !d.valid {
		return 0
	}
	return d.t.Second()
}

// Milliseconds returns the millisecond within the second.
func (d Date) Milliseconds() int {
	if !d.valid {
		return 0
	}
	return d.t.Nanosecond() / int(time.Millisecond)
}

// IsLeapYear reports whether d falls in a leap year of its calendar.
func (d Date) IsLeapYear() bool {
	return d.valid && d.kind.IsLeap(d.cal.Year)
}

// MonthDays returns the length of the 1-based month in d's year.
func (d Date) MonthDays(month int) int {
	if !d.valid {
		return 0
	}
	return d.kind.MonthDays(d.cal.Year, month)
}

// Format renders d with FormatFields. An invalid Date formats as "".
func (d Date) Format(layout string) string {
	if !d.valid {
		return ""
	}
	return FormatFields(d.cal, d.clock(), layout, FormatOptions{OneBasedClock: d.oneBase})
}

// String renders d as YYYY/MM/DD HH:mm:ss with the real clock.
func (d Date) String() string {
	if !d.valid {
		return ""
	}
	return FormatFields(d.cal, d.clock(), "YYYY/MM/DD HH:mm:ss", FormatOptions{})
}

func (d Date) clock() Clock {
	return Clock{Hour: d.t.Hour(), Minute: d.t.Minute(), Second: d.t.Second()}
}

// In views the same instant through another calendar.
func (d Date) In(kind Kind) Date {
	if !d.valid {
		return Date{kind: kind, oneBase: d.oneBase}
	}
	return newDate(kind, d.t, d.oneBase)
}

// UTC views the same instant with UTC wall clock fields.
func (d Date) UTC() Date {
	return d.Local(time.UTC)
}

// Local views the same instant with wall clock fields in loc.
func (d Date) Local(loc *time.Location) Date {
	if !d.valid || loc == nil {
		return d
	}
	return newDate(d.kind, d.t.In(loc), d.oneBase)
}

// WithYear returns d moved to year, keeping month, day and clock.
func (d Date) WithYear(year int) Date {
	return d.with(year, d.cal.Month, d.cal.Day)
}

// WithMonth returns d moved to the 0-based month, optionally also setting the
// day. Months outside the year roll over.
func (d Date) WithMonth(month int, day ...int) Date {
	dd := d.cal.Day
	if len(day) > 0 {
		dd = day[0]
	}
	return d.with(d.cal.Year, month+1, dd)
}

// WithDay returns d moved to day of the current month. Days outside the
// month roll over.
func (d Date) WithDay(day int) Date {
	return d.with(d.cal.Year, d.cal.Month, day)
}

func (d Date) with(year, month, day int) Date {
	if !d.valid {
		return d
	}
	t := d.t
	return newDate(d.kind, civilTime(d.kind, year, month, day,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location()), d.oneBase)
}
