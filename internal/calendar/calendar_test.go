package calendar

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ms = int(time.Millisecond)

func date(y int, m time.Month, d, h, mi, s, milli int) time.Time {
	return time.Date(y, m, d, h, mi, s, milli*ms, time.UTC)
}

func TestDaysInYear(t *testing.T) {
	tests := []struct {
		year int
		want int
	}{
		{2000, 366},
		{1900, 365},
		{2024, 366},
		{2023, 365},
		{2100, 365},
		{2400, 366},
		{1600, 366},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DaysInYear(tt.year), "year %d", tt.year)
	}

	for y := 1; y <= 3000; y++ {
		span := time.Date(y+1, time.January, 1, 0, 0, 0, 0, time.UTC).Sub(time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC))
		require.Equal(t, int(span/(24*time.Hour)), DaysInYear(y), "year %d", y)
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2024, time.February, 29},
		{2023, time.February, 28},
		{1900, time.February, 28},
		{2000, time.February, 29},
		{2023, time.January, 31},
		{2023, time.April, 30},
		{2023, time.June, 30},
		{2023, time.September, 30},
		{2023, time.November, 30},
		{2023, time.December, 31},
		{2024, time.December, 31},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DaysInMonth(tt.year, tt.month), "%d-%s", tt.year, tt.month)
	}
}

func TestDaysInMonthSumsToYear(t *testing.T) {
	for y := 1890; y <= 2110; y++ {
		total := 0
		for m := time.January; m <= time.December; m++ {
			total += DaysInMonth(y, m)
		}
		require.Equal(t, DaysInYear(y), total, "year %d", y)
	}
}

func TestDayOfYear(t *testing.T) {
	assert.Equal(t, 1, DayOfYear(date(2024, time.January, 1, 0, 0, 0, 0)))
	assert.Equal(t, 1, DayOfYear(date(2024, time.January, 1, 23, 59, 59, 999)))
	assert.Equal(t, 61, DayOfYear(date(2024, time.March, 1, 12, 0, 0, 0)))
	assert.Equal(t, 60, DayOfYear(date(2023, time.March, 1, 12, 0, 0, 0)))
	assert.Equal(t, 366, DayOfYear(date(2024, time.December, 31, 23, 59, 59, 999)))
	assert.Equal(t, 365, DayOfYear(date(2023, time.December, 31, 0, 0, 0, 0)))

	for d := date(2019, time.January, 1, 18, 0, 0, 0); d.Year() < 2026; d = d.AddDate(0, 0, 1) {
		require.Equal(t, d.YearDay(), DayOfYear(d), d.String())
	}
}

func TestDayOfYearAcrossDaylightSaving(t *testing.T) {
	loc, err := time.LoadLocation("America/New_York")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}
	// Half an hour past midnight after the spring-forward shift.
	d := time.Date(2024, time.March, 11, 0, 30, 0, 0, loc)
	assert.Equal(t, d.YearDay(), DayOfYear(d))
}

func TestSubDayProgress(t *testing.T) {
	d := date(2024, time.March, 15, 6, 30, 15, 500)

	assert.InDelta(t, 0.5, SecondProgress(d), 1e-12)
	assert.InDelta(t, 15.5/60, MinuteProgress(d), 1e-12)
	assert.InDelta(t, (30*60+15.5)/3600, HourProgress(d), 1e-12)
	assert.InDelta(t, (6*3600+30*60+15.5)/86400, DayProgress(d), 1e-12)

	midnight := date(2024, time.March, 15, 0, 0, 0, 0)
	assert.Zero(t, SecondProgress(midnight))
	assert.Zero(t, MinuteProgress(midnight))
	assert.Zero(t, HourProgress(midnight))
	assert.Zero(t, DayProgress(midnight))

	last := date(2024, time.March, 15, 23, 59, 59, 999)
	for _, p := range []float64{SecondProgress(last), MinuteProgress(last), HourProgress(last), DayProgress(last)} {
		assert.Less(t, p, 1.0)
		assert.Greater(t, p, 0.99)
	}
}

func TestWeekProgress(t *testing.T) {
	sunday := date(2024, time.March, 17, 0, 0, 0, 0)
	require.Equal(t, time.Sunday, sunday.Weekday())
	assert.Zero(t, WeekProgress(sunday))

	saturdayNoon := date(2024, time.March, 23, 12, 0, 0, 0)
	assert.InDelta(t, 6.5/7, WeekProgress(saturdayNoon), 1e-12)
}

func TestMonthProgressMatchesDefinition(t *testing.T) {
	for d := date(2023, time.January, 1, 7, 13, 21, 345); d.Year() < 2025; d = d.Add(29*time.Hour + 17*time.Minute) {
		frac := DayProgress(d)
		want := (float64(d.Day()-1) + frac) / float64(DaysInMonth(d.Year(), d.Month()))
		require.Equal(t, want, MonthProgress(d), d.String())
	}

	assert.InDelta(t, 14.5/29, MonthProgress(date(2024, time.February, 15, 12, 0, 0, 0)), 1e-12)
	assert.InDelta(t, 14.5/28, MonthProgress(date(2023, time.February, 15, 12, 0, 0, 0)), 1e-12)
}

func TestYearProgress(t *testing.T) {
	assert.Zero(t, YearProgress(date(2024, time.January, 1, 0, 0, 0, 0)))
	assert.InDelta(t, 365.5/366, YearProgress(date(2024, time.December, 31, 12, 0, 0, 0)), 1e-12)
	assert.InDelta(t, 364.5/365, YearProgress(date(2023, time.December, 31, 12, 0, 0, 0)), 1e-12)

	assert.Equal(t, 0.5, YearByMonthProgress(date(2023, time.July, 1, 0, 0, 0, 0)))
	assert.Zero(t, YearByMonthProgress(date(2023, time.January, 1, 0, 0, 0, 0)))
	assert.InDelta(t, (11+30.5/31)/12, YearByMonthProgress(date(2023, time.December, 31, 12, 0, 0, 0)), 1e-12)
}

func TestCentury(t *testing.T) {
	tests := []struct {
		year          int
		century       int
		yearInCentury int
	}{
		{1, 1, 0},
		{100, 1, 99},
		{101, 2, 0},
		{1999, 20, 98},
		{2000, 20, 99},
		{2001, 21, 0},
		{2024, 21, 23},
		{2100, 21, 99},
		{2101, 22, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.century, Century(tt.year), "century of %d", tt.year)
		assert.Equal(t, tt.yearInCentury, YearInCentury(tt.year), "year in century of %d", tt.year)
	}
}

func TestCenturyProgress(t *testing.T) {
	assert.Zero(t, CenturyProgress(date(2001, time.January, 1, 0, 0, 0, 0)))
	assert.InDelta(t, 0.995, CenturyProgress(date(2000, time.July, 2, 0, 0, 0, 0)), 0.001)

	last := CenturyProgress(date(2000, time.December, 31, 23, 59, 59, 999))
	assert.Less(t, last, 1.0)
	assert.Greater(t, last, 0.9999)
}

func TestISOWeekOfYear(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{"friday in prior year's last week", date(2021, time.January, 1, 0, 0, 0, 0), 53},
		{"sunday closing prior week", date(2021, time.January, 3, 23, 59, 59, 999), 53},
		{"first monday", date(2021, time.January, 4, 0, 0, 0, 0), 1},
		{"first monday late", date(2021, time.January, 4, 23, 0, 0, 0), 1},
		{"thursday of last week", date(2020, time.December, 31, 12, 0, 0, 0), 53},
		{"december rolling into week one", date(2019, time.December, 30, 0, 0, 0, 0), 1},
		{"december rolling into week one again", date(2024, time.December, 30, 8, 0, 0, 0), 1},
		{"leap day", date(2024, time.February, 29, 13, 0, 0, 0), 9},
		{"new year on thursday", date(2026, time.January, 1, 0, 0, 0, 0), 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ISOWeekOfYear(tt.at))
		})
	}
}

func TestISOWeekOfYearMatchesTimePackage(t *testing.T) {
	for d := date(1995, time.January, 1, 23, 59, 0, 0); d.Year() < 2045; d = d.AddDate(0, 0, 1) {
		_, want := d.ISOWeek()
		require.Equal(t, want, ISOWeekOfYear(d), d.Format(time.DateOnly))
	}
}

func TestWeeksInYear(t *testing.T) {
	assert.Equal(t, 53, WeeksInYear(2020))
	assert.Equal(t, 52, WeeksInYear(2021))
	assert.Equal(t, 52, WeeksInYear(2024))
	assert.Equal(t, 53, WeeksInYear(2015))
	assert.Equal(t, 53, WeeksInYear(2026))

	for y := 1980; y < 2060; y++ {
		lastWeek := 0
		for d := time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC); d.Year() == y; d = d.AddDate(0, 0, 1) {
			if iy, w := d.ISOWeek(); iy == y && w > lastWeek {
				lastWeek = w
			}
		}
		require.Equal(t, lastWeek, WeeksInYear(y), "year %d", y)
	}
}

func TestToRoman(t *testing.T) {
	tests := map[int]string{
		1:     "I",
		4:     "IV",
		9:     "IX",
		14:    "XIV",
		20:    "XX",
		21:    "XXI",
		40:    "XL",
		90:    "XC",
		400:   "CD",
		1994:  "MCMXCIV",
		2024:  "MMXXIV",
		3999:  "MMMCMXCIX",
		0:     "0",
		-5:    "-5",
		4000:  "4000",
		12345: "12345",
	}
	for n, want := range tests {
		assert.Equal(t, want, ToRoman(n), "ToRoman(%d)", n)
	}
}

func TestOrdinalSuffix(t *testing.T) {
	tests := map[int]string{
		1: "st", 2: "nd", 3: "rd", 4: "th", 10: "th",
		11: "th", 12: "th", 13: "th", 21: "st", 22: "nd",
		23: "rd", 31: "st", 101: "st", 111: "th", 112: "th",
	}
	for n, want := range tests {
		assert.Equal(t, want, OrdinalSuffix(n), "OrdinalSuffix(%d)", n)
	}
}
