package calendar

import (
	"fmt"
	"strconv"
	"strings"
)

// Cycle names one of the nested cycles a dial tracks.
type Cycle int

const (
	CycleSecond Cycle = iota
	CycleMinute
	CycleHour
	CycleDay
	CycleWeek
	CycleMonth
	CycleSeason
	CycleYear
	CycleCentury
)

var cycleNames = [...]string{
	CycleSecond:  "second",
	CycleMinute:  "minute",
	CycleHour:    "hour",
	CycleDay:     "day",
	CycleWeek:    "week",
	CycleMonth:   "month",
	CycleSeason:  "season",
	CycleYear:    "year",
	CycleCentury: "century",
}

// Cycles returns every cycle from the shortest to the longest.
func Cycles() []Cycle {
	out := make([]Cycle, len(cycleNames))
	for i := range cycleNames {
		out[i] = Cycle(i)
	}
	return out
}

func (c Cycle) String() string {
	if c < 0 || int(c) >= len(cycleNames) {
		return "Cycle(" + strconv.Itoa(int(c)) + ")"
	}
	return cycleNames[c]
}

// ParseCycle resolves a case-insensitive cycle name such as "minute".
func ParseCycle(s string) (Cycle, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range cycleNames {
		if n == name {
			return Cycle(i), nil
		}
	}
	return 0, fmt.Errorf("calendar: unknown cycle %q", s)
}
