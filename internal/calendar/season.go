package calendar

import (
	"strconv"
	"time"
)

// Season is one of the four fixed three-month meteorological seasons.
type Season int

const (
	Winter Season = iota
	Spring
	Summer
	Autumn
)

func (s Season) String() string {
	switch s {
	case Winter:
		return "Winter"
	case Spring:
		return "Spring"
	case Summer:
		return "Summer"
	case Autumn:
		return "Autumn"
	default:
		return "Season(" + strconv.Itoa(int(s)) + ")"
	}
}

// seasonMonth is one constituent month of a season instance. yearOffset is
// relative to the year of the instant being classified.
type seasonMonth struct {
	month      time.Month
	yearOffset int
}

// seasonSpan describes the season instance an instant's month belongs to.
// position is the index of that month within months.
type seasonSpan struct {
	season   Season
	months   [3]seasonMonth
	position int
}

var (
	winterFromJanuary  = [3]seasonMonth{{time.December, -1}, {time.January, 0}, {time.February, 0}}
	winterFromDecember = [3]seasonMonth{{time.December, 0}, {time.January, 1}, {time.February, 1}}
	spring             = [3]seasonMonth{{time.March, 0}, {time.April, 0}, {time.May, 0}}
	summer             = [3]seasonMonth{{time.June, 0}, {time.July, 0}, {time.August, 0}}
	autumn             = [3]seasonMonth{{time.September, 0}, {time.October, 0}, {time.November, 0}}
)

// seasonSpans is indexed by month-1. Winter straddles the year boundary, so
// its December belongs to the previous year when seen from January or
// February, and its January and February to the next year seen from
// December.
var seasonSpans = [12]seasonSpan{
	{Winter, winterFromJanuary, 1},
	{Winter, winterFromJanuary, 2},
	{Spring, spring, 0},
	{Spring, spring, 1},
	{Spring, spring, 2},
	{Summer, summer, 0},
	{Summer, summer, 1},
	{Summer, summer, 2},
	{Autumn, autumn, 0},
	{Autumn, autumn, 1},
	{Autumn, autumn, 2},
	{Winter, winterFromDecember, 0},
}

// SeasonInfo classifies t into its season and returns the fraction of that
// season's three-month span that has elapsed, clamped to [0, 1].
func SeasonInfo(t time.Time) (Season, float64) {
	span := seasonSpans[t.Month()-1]
	year := t.Year()

	total := 0
	into := t.Day() // 1-based day within the span
	for i, sm := range span.months {
		n := DaysInMonth(year+sm.yearOffset, sm.month)
		total += n
		if i < span.position {
			into += n
		}
	}

	progress := (float64(into-1) + DayProgress(t)) / float64(total)
	return span.season, clamp01(progress)
}

// SeasonOf returns the season t falls in.
func SeasonOf(t time.Time) Season {
	return seasonSpans[t.Month()-1].season
}
