package calendar

import (
	"strconv"
	"strings"
)

// DefaultLayout is used when Format is given an empty layout.
const DefaultLayout = "YYYY-MM-DD"

// Clock is the time of day shown next to a CalendarDate.
type Clock struct {
	Hour, Minute, Second int
}

// FormatOptions tweaks FormatFields.
type FormatOptions struct {
	// OneBasedClock adds one to hours, minutes and seconds, reproducing the
	// display convention of older renderings where 00:00:00 prints as
	// 01:01:01.
	OneBasedClock bool
}

// FormatFields renders date and clock according to layout. The layout is
// scanned once; at each position the longest run of a token letter wins:
//
//	YYYY YYY  year zero padded to 4 or 3 digits
//	YY        last two digits of the year
//	Y         year
//	MM M      month (1-12), padded or not
//	DD D      day of month
//	HH H      hour
//	mm m      minute
//	ss s      second
//
// Every other byte is copied to the output unchanged.
func FormatFields(date CalendarDate, clock Clock, layout string, opts FormatOptions) string {
	if layout == "" {
		layout = DefaultLayout
	}
	hour, minute, second := clock.Hour, clock.Minute, clock.Second
	if opts.OneBasedClock {
		hour, minute, second = hour+1, minute+1, second+1
	}

	var b strings.Builder
	b.Grow(len(layout) + 8)
	for i := 0; i < len(layout); {
		c := layout[i]
		var value, limit int
		switch c {
		case 'Y':
			value, limit = date.Year, 4
		case 'M':
			value, limit = date.Month, 2
		case 'D':
			value, limit = date.Day, 2
		case 'H':
			value, limit = hour, 2
		case 'm':
			value, limit = minute, 2
		case 's':
			value, limit = second, 2
		default:
			b.WriteByte(c)
			i++
			continue
		}
		n := 1
		for n < limit && i+n < len(layout) && layout[i+n] == c {
			n++
		}
		if c == 'Y' && n == 2 {
			value %= 100
			if value < 0 {
				value = -value
			}
		}
		if n == 1 {
			b.WriteString(strconv.Itoa(value))
		} else {
			b.WriteString(pad(value, n))
		}
		i += n
	}
	return b.String()
}

// pad zero pads the magnitude of v to width digits, keeping a leading minus.
func pad(v, width int) string {
	if v < 0 {
		return "-" + pad(-v, width)
	}
	s := strconv.Itoa(v)
	if len(s) < width {
		s = strings.Repeat("0", width-len(s)) + s
	}
	return s
}
