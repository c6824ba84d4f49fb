// Package dial turns a progress record into the nine labelled readings the
// display draws, and holds the geometry shared by every dial.
package dial

import (
	"fmt"
	"image/color"
	"strconv"
	"time"

	"github.com/iburimskiy/luminar-weave/internal/calendar"
)

// Spec is the static description of one dial.
type Spec struct {
	Cycle     calendar.Cycle
	Label     string
	Precision int
	Color     color.RGBA
}

// Reading is a dial ready to draw.
type Reading struct {
	Spec
	Progress float64
	Value    string
	Percent  string
}

// TrackColor is the translucent ring every arc is drawn over.
var TrackColor = color.NRGBA{R: 55, G: 65, B: 81, A: 102}

var specs = [...]Spec{
	{calendar.CycleSecond, "Second", 0, color.RGBA{R: 244, G: 114, B: 182, A: 255}},
	{calendar.CycleMinute, "Minute", 1, color.RGBA{R: 249, G: 168, B: 212, A: 255}},
	{calendar.CycleHour, "Hour", 2, color.RGBA{R: 254, G: 205, B: 211, A: 255}},
	{calendar.CycleDay, "Day", 3, color.RGBA{R: 216, G: 180, B: 254, A: 255}},
	{calendar.CycleWeek, "Week", 4, color.RGBA{R: 125, G: 211, B: 252, A: 255}},
	{calendar.CycleMonth, "Month", 4, color.RGBA{R: 165, G: 180, B: 252, A: 255}},
	{calendar.CycleSeason, "Season", 5, color.RGBA{R: 139, G: 92, B: 246, A: 255}},
	{calendar.CycleYear, "Year", 5, color.RGBA{R: 203, G: 213, B: 225, A: 255}},
	{calendar.CycleCentury, "Century", 6, color.RGBA{R: 148, G: 163, B: 184, A: 255}},
}

// Specs returns the dial specs in display order, row by row.
func Specs() []Spec {
	out := make([]Spec, len(specs))
	copy(out, specs[:])
	return out
}

// Readings builds the reading of every dial for p.
func Readings(p calendar.Progress) []Reading {
	out := make([]Reading, 0, len(specs))
	for _, s := range specs {
		f := p.Fraction(s.Cycle)
		out = append(out, Reading{
			Spec:     s,
			Progress: f,
			Value:    Value(s.Cycle, p),
			Percent:  Percent(f, s.Precision),
		})
	}
	return out
}

// Value is the caption under a dial: the count within the enclosing cycle,
// or a name for cycles that have one.
func Value(c calendar.Cycle, p calendar.Progress) string {
	switch c {
	case calendar.CycleSecond:
		return fmt.Sprintf("%d / 60", p.Second)
	case calendar.CycleMinute:
		return fmt.Sprintf("%d / 60", p.Minute)
	case calendar.CycleHour:
		return fmt.Sprintf("%d / 24", p.Hour)
	case calendar.CycleDay:
		return fmt.Sprintf("%d / %d", p.DayOfMonth, p.DaysInMonth)
	case calendar.CycleWeek:
		return fmt.Sprintf("%d / %d", p.ISOWeek, p.WeeksInYear)
	case calendar.CycleMonth:
		return p.Month.String()
	case calendar.CycleSeason:
		return p.Season.String()
	case calendar.CycleYear:
		return strconv.Itoa(p.Year)
	case calendar.CycleCentury:
		return p.CenturyNumeral
	}
	return ""
}

// Percent formats a fraction as a percentage with precision decimals. The
// fraction is clamped to [0, 1] first.
func Percent(fraction float64, precision int) string {
	switch {
	case fraction < 0:
		fraction = 0
	case fraction > 1:
		fraction = 1
	}
	return strconv.FormatFloat(fraction*100, 'f', precision, 64) + "%"
}

// LiveTime formats t as a 12-hour clock with tenths of a second, such as
// "09:41:07.3 PM".
func LiveTime(t time.Time) string {
	tenth := t.Nanosecond() / int(100*time.Millisecond)
	return fmt.Sprintf("%s.%d %s", t.Format("03:04:05"), tenth, t.Format("PM"))
}
