package calendar

var (
	gregorianMonthDays = [12]int{31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	persianMonthDays   = [12]int{31, 31, 31, 31, 31, 31, 30, 30, 30, 30, 30, 29}
)

// IsLeapGregorian reports whether year is a leap year in the proleptic
// Gregorian calendar. Year 0 (1 BC) is a leap year.
func IsLeapGregorian(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// IsLeapPersian reports whether year is a leap year of the Persian calendar
// according to the 2820 year grand cycle. There is no year 0; years <= 0
// count backwards from -1.
func IsLeapPersian(year int) bool {
	offset := 474
	if year <= 0 {
		offset = 473
	}
	return ((floorMod(year-offset, 2820)+474+38)*682)%2816 < 682
}

// GregorianMonthDays returns the number of days in month (1-12) of year, or 0
// for a month outside that range.
func GregorianMonthDays(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 2 && IsLeapGregorian(year) {
		return 29
	}
	return gregorianMonthDays[month-1]
}

// PersianMonthDays returns the number of days in month (1-12) of year, or 0
// for a month outside that range. Esfand, the twelfth month, has 30 days in a
// leap year.
func PersianMonthDays(year, month int) int {
	if month < 1 || month > 12 {
		return 0
	}
	if month == 12 && IsLeapPersian(year) {
		return 30
	}
	return persianMonthDays[month-1]
}

// floorDiv and floorMod round towards negative infinity so that negative
// years decompose into the same cycles as positive ones.
func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

func floorMod(a, b int) int {
	return a - b*floorDiv(a, b)
}
