package dateutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// WorkdayHours is the fixed length of a working day.
const WorkdayHours = 8

// CalendarDate is a timezone-naive year/month/day value with no time
// component. It is only suitable for calendar arithmetic.
type CalendarDate struct {
	Year  int
	Month time.Month
	Day   int
}

// FromTime truncates t to its local calendar date, discarding time of day.
func FromTime(t time.Time) CalendarDate {
	y, m, d := t.Date()
	return CalendarDate{Year: y, Month: m, Day: d}
}

// ParseLocalDate accepts a date-only string (YYYY-MM-DD) or a timestamp
// string containing a time component and normalizes it to a calendar date.
// Date-only strings with a missing, zero or unparseable component are
// rejected: day/month zero is never a real calendar day, only malformed
// input. Timestamps are parsed as an instant and truncated to the local
// calendar date. The second return value reports whether parsing succeeded.
func ParseLocalDate(value string) (CalendarDate, bool) {
	if value == "" {
		return CalendarDate{}, false
	}

	if strings.Contains(value, "T") {
		if parsed, err := time.Parse(time.RFC3339, value); err == nil {
			return FromTime(parsed.In(time.Local)), true
		}
		// A timestamp without a zone designator is local wall-clock time.
		if parsed, err := time.ParseInLocation("2006-01-02T15:04:05", value, time.Local); err == nil {
			return FromTime(parsed), true
		}
		return CalendarDate{}, false
	}

	parts := strings.Split(value, "-")
	if len(parts) != 3 {
		return CalendarDate{}, false
	}
	year, _ := strconv.Atoi(parts[0])
	month, _ := strconv.Atoi(parts[1])
	day, _ := strconv.Atoi(parts[2])
	if year == 0 || month == 0 || day == 0 {
		return CalendarDate{}, false
	}

	// time.Date rolls out-of-range components over into the next period,
	// the same normalization the portal's date inputs rely on.
	return FromTime(time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)), true
}

// midnight anchors the date to local midnight for weekday and offset math.
func (d CalendarDate) midnight() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.Local)
}

func (d CalendarDate) Weekday() time.Weekday {
	return d.midnight().Weekday()
}

func (d CalendarDate) AddDays(n int) CalendarDate {
	return FromTime(d.midnight().AddDate(0, 0, n))
}

// Compare returns -1, 0 or 1 ordering d against o.
func (d CalendarDate) Compare(o CalendarDate) int {
	switch {
	case d.Year != o.Year:
		return sign(d.Year - o.Year)
	case d.Month != o.Month:
		return sign(int(d.Month) - int(o.Month))
	default:
		return sign(d.Day - o.Day)
	}
}

func (d CalendarDate) After(o CalendarDate) bool {
	return d.Compare(o) > 0
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	default:
		return 0
	}
}

func (d CalendarDate) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// minutesWest is the local zone offset at midnight of d in minutes west of
// UTC, positive west. This is the sign convention the portal has always
// rendered stored dates with.
func (d CalendarDate) minutesWest() int {
	_, offset := d.midnight().Zone()
	return -offset / 60
}

func formatZoneOffset(minutesWest int) string {
	sign := "+"
	if minutesWest > 0 {
		sign = "-"
	}
	abs := minutesWest
	if abs < 0 {
		abs = -abs
	}
	return fmt.Sprintf("%s%02d:%02d", sign, abs/60, abs%60)
}

// ISOString renders the date anchored to local midnight with an explicit
// UTC offset, e.g. 2026-03-02T00:00:00+01:00. ParseLocalDate of the result
// yields the same calendar date.
func (d CalendarDate) ISOString() string {
	return fmt.Sprintf("%04d-%02d-%02dT00:00:00%s",
		d.Year, int(d.Month), d.Day, formatZoneOffset(d.minutesWest()))
}

// ToLocalISODate re-renders a date string as its local-midnight ISO form.
func ToLocalISODate(value string) (string, bool) {
	d, ok := ParseLocalDate(value)
	if !ok {
		return "", false
	}
	return d.ISOString(), true
}

func IsWeekend(d CalendarDate) bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// BusinessHoursBetween credits WorkdayHours for every non-weekend day from
// start to end inclusive. A reversed range yields 0.
func BusinessHoursBetween(start, end CalendarDate) int {
	if start.After(end) {
		return 0
	}
	hours := 0
	for cursor := start; cursor.Compare(end) <= 0; cursor = cursor.AddDays(1) {
		if !IsWeekend(cursor) {
			hours += WorkdayHours
		}
	}
	return hours
}

// CalculateBusinessHours is the string-input form used by request intake.
// Unparseable input degrades to 0 rather than erroring; callers must treat
// 0 as "nothing requestable" and check dates explicitly.
func CalculateBusinessHours(startDate, endDate string) int {
	start, ok := ParseLocalDate(startDate)
	if !ok {
		return 0
	}
	end, ok := ParseLocalDate(endDate)
	if !ok {
		return 0
	}
	return BusinessHoursBetween(start, end)
}
