package calendar

import "time"

// Progress is the position of one instant within every cycle, plus the
// labels a display needs. It is a value record built fresh per sample.
type Progress struct {
	Instant time.Time

	SecondProgress      float64
	MinuteProgress      float64
	HourProgress        float64
	DayProgress         float64
	WeekProgress        float64
	MonthProgress       float64
	SeasonProgress      float64
	YearByMonthProgress float64
	YearProgress        float64
	CenturyProgress     float64

	Hour           int
	Minute         int
	Second         int
	Millisecond    int
	Weekday        time.Weekday
	DayOfMonth     int
	DaysInMonth    int
	Month          time.Month
	DayOfYear      int
	DaysInYear     int
	ISOWeek        int
	WeeksInYear    int
	Season         Season
	Year           int
	YearInCentury  int
	Century        int
	CenturyNumeral string
}

// Compute decomposes t into its cycle progress. All fractions are clamped
// to [0, 1].
func Compute(t time.Time) Progress {
	year, month, day := t.Date()
	season, seasonProgress := SeasonInfo(t)
	century := Century(year)

	return Progress{
		Instant: t,

		SecondProgress:      clamp01(SecondProgress(t)),
		MinuteProgress:      clamp01(MinuteProgress(t)),
		HourProgress:        clamp01(HourProgress(t)),
		DayProgress:         clamp01(DayProgress(t)),
		WeekProgress:        clamp01(WeekProgress(t)),
		MonthProgress:       clamp01(MonthProgress(t)),
		SeasonProgress:      seasonProgress,
		YearByMonthProgress: clamp01(YearByMonthProgress(t)),
		YearProgress:        clamp01(YearProgress(t)),
		CenturyProgress:     clamp01(CenturyProgress(t)),

		Hour:           t.Hour(),
		Minute:         t.Minute(),
		Second:         t.Second(),
		Millisecond:    millis(t),
		Weekday:        t.Weekday(),
		DayOfMonth:     day,
		DaysInMonth:    DaysInMonth(year, month),
		Month:          month,
		DayOfYear:      DayOfYear(t),
		DaysInYear:     DaysInYear(year),
		ISOWeek:        ISOWeekOfYear(t),
		WeeksInYear:    WeeksInYear(year),
		Season:         season,
		Year:           year,
		YearInCentury:  YearInCentury(year),
		Century:        century,
		CenturyNumeral: ToRoman(century),
	}
}

// Fraction returns the fraction shown for cycle c. The year cycle reports
// progress by month, matching the year dial; YearProgress holds the
// day-granular figure.
func (p Progress) Fraction(c Cycle) float64 {
	switch c {
	case CycleSecond:
		return p.SecondProgress
	case CycleMinute:
		return p.MinuteProgress
	case CycleHour:
		return p.HourProgress
	case CycleDay:
		return p.DayProgress
	case CycleWeek:
		return p.WeekProgress
	case CycleMonth:
		return p.MonthProgress
	case CycleSeason:
		return p.SeasonProgress
	case CycleYear:
		return p.YearByMonthProgress
	case CycleCentury:
		return p.CenturyProgress
	default:
		return 0
	}
}
