package calendar

import (
	"math"
	"time"
)

const (
	gregorianEpoch JulianDay = 1721425.5 // 0001-01-01 Gregorian
	persianEpoch   JulianDay = 1948320.5 // 0001-01-01 Persian, 622-03-22 Gregorian

	daysPer400Years      = 146097
	daysPer100Years      = 36524
	daysPer4Years        = 1461
	daysPerPersianCycle  = 1029983 // 2820 Persian years
	lastDayOfCycleOffset = daysPerPersianCycle - 1
)

// JulianDay counts days from noon of 4713-01-01 BC (proleptic Julian). Civil
// midnights fall on .5 values.
type JulianDay float64

// CalendarDate is a date broken down in one calendar.
type CalendarDate struct {
	Year      int
	Month     int // 1-based
	Day       int // 1-based
	WeekDay   int // 0 = Sunday
	MonthDays int // length of Month, leap aware
	YearDay   int // 1-based
}

// Midnight returns the Julian Day of the start of the civil day containing jd.
func (jd JulianDay) Midnight() JulianDay {
	return JulianDay(math.Floor(float64(jd)-0.5) + 0.5)
}

// Weekday returns the day of the week of the civil day containing jd.
func (jd JulianDay) Weekday() time.Weekday {
	return time.Weekday(floorMod(int(math.Floor(float64(jd.Midnight())+1.5)), 7))
}

// daysSince returns the whole number of days between two midnights.
func (jd JulianDay) daysSince(epoch JulianDay) int {
	return int(math.Round(float64(jd - epoch)))
}

// GregorianToJD returns the Julian Day of the midnight starting the given
// proleptic Gregorian date. Days outside the month are accepted and counted
// linearly from the first of the month.
func GregorianToJD(year, month, day int) JulianDay {
	y := year - 1
	adj := 0
	if month > 2 {
		adj = -2
		if IsLeapGregorian(year) {
			adj = -1
		}
	}
	days := 365*y + floorDiv(y, 4) - floorDiv(y, 100) + floorDiv(y, 400) +
		floorDiv(367*month-362, 12) + adj + day
	return gregorianEpoch - 1 + JulianDay(days)
}

// JDToGregorian converts a Julian Day to a Gregorian date.
func JDToGregorian(jd JulianDay) CalendarDate {
	jd = jd.Midnight()
	depoch := jd.daysSince(gregorianEpoch)

	quadricent := floorDiv(depoch, daysPer400Years)
	dqc := floorMod(depoch, daysPer400Years)
	cent := dqc / daysPer100Years
	dcent := dqc % daysPer100Years
	quad := dcent / daysPer4Years
	dquad := dcent % daysPer4Years
	yindex := dquad / 365

	year := quadricent*400 + cent*100 + quad*4 + yindex
	// On the last day of a 400 or 4 year block the division lands one past
	// the final year; those two cases already name the right year.
	if !(cent == 4 || yindex == 4) {
		year++
	}

	yday := jd.daysSince(GregorianToJD(year, 1, 1))
	leapadj := 0
	if jd >= GregorianToJD(year, 3, 1) {
		leapadj = 2
		if IsLeapGregorian(year) {
			leapadj = 1
		}
	}
	month := ((yday+leapadj)*12 + 373) / 367
	day := jd.daysSince(GregorianToJD(year, month, 1)) + 1

	return CalendarDate{
		Year:      year,
		Month:     month,
		Day:       day,
		WeekDay:   int(jd.Weekday()),
		MonthDays: GregorianMonthDays(year, month),
		YearDay:   yday + 1,
	}
}

// PersianToJD returns the Julian Day of the midnight starting the given
// Persian date. Months outside 1..12 roll over into neighbouring years, days
// outside the month are counted linearly from the first of the month.
func PersianToJD(year, month, day int) JulianDay {
	exyear := floorDiv(month-1, 12)
	year += exyear
	month -= exyear * 12

	var epbase int
	if year >= 0 {
		epbase = year - 474
	} else {
		epbase = year - 473
	}
	epyear := 474 + floorMod(epbase, 2820)

	var mdays int
	if month <= 7 {
		mdays = (month - 1) * 31
	} else {
		mdays = (month-1)*30 + 6
	}

	days := day + mdays +
		floorDiv(epyear*682-110, 2816) +
		(epyear-1)*365 +
		floorDiv(epbase, 2820)*daysPerPersianCycle
	return persianEpoch - 1 + JulianDay(days)
}

// JDToPersian converts a Julian Day to a Persian date.
func JDToPersian(jd JulianDay) CalendarDate {
	jd = jd.Midnight()
	depoch := jd.daysSince(PersianToJD(475, 1, 1))

	cycle := floorDiv(depoch, daysPerPersianCycle)
	cyear := floorMod(depoch, daysPerPersianCycle)

	var ycycle int
	if cyear == lastDayOfCycleOffset {
		// The year formula is off by one on the final day of the grand cycle.
		ycycle = 2820
	} else {
		aux1 := cyear / 366
		aux2 := cyear % 366
		ycycle = (2134*aux1+2816*aux2+2815)/1028522 + aux1 + 1
	}

	year := ycycle + 2820*cycle + 474
	if year <= 0 {
		year--
	}

	yday := jd.daysSince(PersianToJD(year, 1, 1)) + 1
	var month int
	if yday <= 186 {
		month = (yday + 30) / 31
	} else {
		month = (yday - 6 + 29) / 30
	}
	day := jd.daysSince(PersianToJD(year, month, 1)) + 1

	return CalendarDate{
		Year:      year,
		Month:     month,
		Day:       day,
		WeekDay:   int(jd.Weekday()),
		MonthDays: PersianMonthDays(year, month),
		YearDay:   yday,
	}
}
