// Package calendar converts wall-clock instants into fractional progress
// through nested civil cycles: second, minute, hour, day, week, month,
// season, year and century.
//
// Every function is pure. Instants are read in their own location, so a
// time.Time from time.Now() is interpreted in the host's local calendar.
// Months are Go's 1-based time.Month throughout.
package calendar

import (
	"math"
	"strconv"
	"time"
)

const secondsPerDay = 24 * 60 * 60

// DaysInMonth returns the number of days in month of year. Day zero of the
// following month normalises to the last day of month, which also carries
// December over into January of the next year.
func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// IsLeap reports whether year is a Gregorian leap year.
func IsLeap(year int) bool {
	return (year%4 == 0 && year%100 != 0) || year%400 == 0
}

// DaysInYear returns 366 for leap years and 365 otherwise.
func DaysInYear(year int) int {
	if IsLeap(year) {
		return 366
	}
	return 365
}

// DayOfYear returns the 1-based ordinal day of t within its year: the whole
// days elapsed since day zero of the year (December 31 of the prior year).
// Days are counted on the civil date so daylight saving shifts cannot drop
// an hour out of the count.
func DayOfYear(t time.Time) int {
	y, m, d := t.Date()
	start := time.Date(y, time.January, 0, 0, 0, 0, 0, time.UTC)
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return int(day.Sub(start) / (24 * time.Hour))
}

// millis returns the millisecond within the second of t.
func millis(t time.Time) int {
	return t.Nanosecond() / int(time.Millisecond)
}

// secondOf returns the seconds elapsed in the current minute, with
// millisecond resolution.
func secondOf(t time.Time) float64 {
	return float64(t.Second()) + float64(millis(t))/1000
}

// SecondProgress is the fraction of the current second that has elapsed.
func SecondProgress(t time.Time) float64 {
	return float64(millis(t)) / 1000
}

// MinuteProgress is the fraction of the current minute that has elapsed.
func MinuteProgress(t time.Time) float64 {
	return secondOf(t) / 60
}

// HourProgress is the fraction of the current hour that has elapsed.
func HourProgress(t time.Time) float64 {
	return (float64(t.Minute()*60) + secondOf(t)) / 3600
}

// DayProgress is the fraction of the civil day that has elapsed. It is the
// continuous sub-day term every multi-day cycle adds to its day count.
func DayProgress(t time.Time) float64 {
	return (float64(t.Hour()*3600+t.Minute()*60) + secondOf(t)) / secondsPerDay
}

// WeekProgress is the fraction of the Sunday-start week that has elapsed.
func WeekProgress(t time.Time) float64 {
	return (float64(t.Weekday()) + DayProgress(t)) / 7
}

// MonthProgress is the fraction of the calendar month that has elapsed.
func MonthProgress(t time.Time) float64 {
	return (float64(t.Day()-1) + DayProgress(t)) / float64(DaysInMonth(t.Year(), t.Month()))
}

// YearByMonthProgress expresses annual progress as fractional months
// elapsed: how far through the year by month.
func YearByMonthProgress(t time.Time) float64 {
	return (float64(t.Month()-1) + MonthProgress(t)) / 12
}

// YearProgress is the day-granular fraction of the year that has elapsed.
func YearProgress(t time.Time) float64 {
	return (float64(DayOfYear(t)-1) + DayProgress(t)) / float64(DaysInYear(t.Year()))
}

// CenturyProgress is the fraction of the current century that has elapsed.
func CenturyProgress(t time.Time) float64 {
	return (float64(YearInCentury(t.Year())) + YearProgress(t)) / 100
}

// Century returns the 1-based century of year, ceil(year/100): 2000 is the
// last year of the 20th century and 2001 the first of the 21st.
func Century(year int) int {
	c := year / 100
	if year%100 > 0 {
		c++
	}
	return c
}

// YearInCentury returns the 0-based index of year within its century,
// (year-1) mod 100.
func YearInCentury(year int) int {
	return ((year-1)%100 + 100) % 100
}

// ISOWeekOfYear returns the ISO 8601 week number of t. The date is shifted
// to the Thursday of its Monday-start week, and the week count is the
// ceiling of the weeks between that Thursday and the first Thursday of the
// same year, plus one. Both Thursdays are whole civil days apart, so the
// distance is always a multiple of seven and the ceiling never rounds.
// Measuring from January 4 instead would make the ceiling bite and put
// 2021-01-04 in week 2.
func ISOWeekOfYear(t time.Time) int {
	y, m, d := t.Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	thursday := date.AddDate(0, 0, 3-isoWeekday(date))

	// January 4 always falls in week 1.
	jan4 := time.Date(thursday.Year(), time.January, 4, 0, 0, 0, 0, time.UTC)
	first := jan4.AddDate(0, 0, 3-isoWeekday(jan4))

	days := thursday.Sub(first).Hours() / 24
	return 1 + int(math.Ceil(days/7))
}

// isoWeekday maps Monday to 0 through Sunday to 6.
func isoWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// WeeksInYear returns 52 or 53, the ISO week of December 28, which always
// falls in the last week of its year.
func WeeksInYear(year int) int {
	return ISOWeekOfYear(time.Date(year, time.December, 28, 0, 0, 0, 0, time.UTC))
}

var romanNumerals = [...]struct {
	value   int
	numeral string
}{
	{1000, "M"},
	{900, "CM"},
	{500, "D"},
	{400, "CD"},
	{100, "C"},
	{90, "XC"},
	{50, "L"},
	{40, "XL"},
	{10, "X"},
	{9, "IX"},
	{5, "V"},
	{4, "IV"},
	{1, "I"},
}

// ToRoman renders n as a Roman numeral. Outside 1..3999 it falls back to
// the decimal representation of n.
func ToRoman(n int) string {
	if n < 1 || n > 3999 {
		return strconv.Itoa(n)
	}
	out := make([]byte, 0, 16)
	for _, r := range romanNumerals {
		for n >= r.value {
			out = append(out, r.numeral...)
			n -= r.value
		}
	}
	return string(out)
}

// OrdinalSuffix returns the English ordinal suffix for n: st, nd, rd or th.
func OrdinalSuffix(n int) string {
	if n < 0 {
		n = -n
	}
	if r := n % 100; r >= 11 && r <= 13 {
		return "th"
	}
	switch n % 10 {
	case 1:
		return "st"
	case 2:
		return "nd"
	case 3:
		return "rd"
	default:
		return "th"
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
