package calendar

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var tehran = time.FixedZone("IRST", 3*3600+30*60)

func TestParseInstant(t *testing.T) {
	utc := func(y int, mo time.Month, d, h, mi, s, ms int) time.Time {
		return time.Date(y, mo, d, h, mi, s, ms*int(time.Millisecond), time.UTC)
	}
	local := func(y int, mo time.Month, d, h, mi, s, ms int) time.Time {
		return time.Date(y, mo, d, h, mi, s, ms*int(time.Millisecond), tehran)
	}
	for _, test := range []struct {
		in      string
		persian bool
		want    time.Time
		err     bool
	}{
		{"2014", false, utc(2014, 1, 1, 0, 0, 0, 0), false},
		{"2014-2", false, utc(2014, 2, 1, 0, 0, 0, 0), false},
		{"2014-2-3", false, utc(2014, 2, 3, 0, 0, 0, 0), false},
		{"2014/2/3", false, local(2014, 2, 3, 0, 0, 0, 0), false},
		{"2014-02-03 12:11", false, local(2014, 2, 3, 12, 11, 0, 0), false},
		{"2014-02-03T12:11", false, local(2014, 2, 3, 12, 11, 0, 0), false},
		{"2014/02/03 12:11", false, local(2014, 2, 3, 12, 11, 0, 0), false},
		{"2014/02/03T12:11", false, time.Time{}, true},
		{"2014/02/03 12:11:10.2", false, local(2014, 2, 3, 12, 11, 10, 200), false},
		{"2014/02/03 12:11:10.02", false, local(2014, 2, 3, 12, 11, 10, 20), false},
		{"2014/02/03 12:11:10.1119", false, local(2014, 2, 3, 12, 11, 10, 111), false},
		{"2014/02/03 12:11:10Z", false, time.Time{}, true},
		{"2014-02-03 12:11:10Z", false, time.Time{}, true},
		{"2014-02-03T12:11:10Z", false, utc(2014, 2, 3, 12, 11, 10, 0), false},
		{"2014-02-03T12:11:10+0000", false, utc(2014, 2, 3, 12, 11, 10, 0), false},
		{"2014-02-03T12:11:10+00:00", false, utc(2014, 2, 3, 12, 11, 10, 0), false},
		{"2014-02-03T15:41:10+0330", false, utc(2014, 2, 3, 12, 11, 10, 0), false},
		{"2014-02-03T10:41:10-01:30", false, utc(2014, 2, 3, 12, 11, 10, 0), false},
		{"2014-02-03T14:11:10+02", false, utc(2014, 2, 3, 12, 11, 10, 0), false},
		{"10/1/2012", false, local(2012, 1, 10, 0, 0, 0, 0), false},
		{"2012/1/10", false, local(2012, 1, 10, 0, 0, 0, 0), false},
		{"10-1-2012", false, time.Time{}, true},
		{"12/1/10", false, time.Time{}, true},
		{"2012/1/2012", false, time.Time{}, true},
		{"2014/02-03", false, time.Time{}, true},
		{"201", false, time.Time{}, true},
		{"2014-02-03 1:11", false, time.Time{}, true},
		{"", false, time.Time{}, true},
		{"yesterday", false, time.Time{}, true},
		{"2014-02-03\n", false, time.Time{}, true},
		{"2014-00-00", false, utc(2014, 1, 1, 0, 0, 0, 0), false},
		{"1403/01/01", true, local(2024, 3, 20, 0, 0, 0, 0), false},
		{"1403/1/1 08:30", true, local(2024, 3, 20, 8, 30, 0, 0), false},
		{"1402-12-17", true, utc(2024, 3, 7, 0, 0, 0, 0), false},
		{"1399/12/30", true, local(2021, 3, 20, 0, 0, 0, 0), false},
		{"30/12/1399", true, local(2021, 3, 20, 0, 0, 0, 0), false},
	} {
		got, err := ParseInstant(test.in, test.persian, tehran)
		if test.err {
			require.Error(t, err, test.in)
			assert.True(t, errors.Is(err, ErrParse), test.in)
			assert.True(t, got.IsZero(), test.in)
			continue
		}
		require.NoError(t, err, test.in)
		assert.True(t, test.want.Equal(got), "%q: want %v, got %v", test.in, test.want, got)
		assert.Equal(t, tehran, got.Location(), test.in)
	}
}

func TestParseSpec(t *testing.T) {
	p, err := ParseSpec("2014-02-03T10:41:10.5-01:30", false)
	require.NoError(t, err)
	assert.Equal(t, ParsedSpec{
		Year: 2014, Month: 2, Day: 3,
		Hour: 10, Minute: 41, Second: 10, Millisecond: 500,
		NonLocal: true, HasOffset: true, OffsetMinutes: -90,
	}, p)

	p, err = ParseSpec("17/12/1402 23:59", true)
	require.NoError(t, err)
	assert.Equal(t, 1402, p.Year)
	assert.Equal(t, 17, p.Day)
	assert.True(t, p.Persian)
	assert.False(t, p.NonLocal)
	y, m, d := p.Gregorian()
	assert.Equal(t, [3]int{2024, 3, 7}, [3]int{y, m, d})
}

func TestParseError(t *testing.T) {
	_, err := ParseSpec("2014/02/03T12:11", false)
	require.Error(t, err)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "2014/02/03T12:11", perr.Input)
	assert.Contains(t, err.Error(), "2014/02/03T12:11")
	assert.NotEmpty(t, perr.Reason)
}

func TestParseNilLocation(t *testing.T) {
	got, err := ParseInstant("2014/02/03 12:11", false, nil)
	require.NoError(t, err)
	assert.Equal(t, time.Local, got.Location())
	assert.Equal(t, 12, got.Hour())
}
