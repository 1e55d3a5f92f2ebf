package daterange

import (
	"fmt"
	"time"
)

// Range is an inclusive [Start, End] pair of instants. Resolve produces
// day-granularity boundaries (midnight on both ends); callers that filter at
// instant granularity expand the end with Normalize.
type Range struct {
	Start time.Time
	End   time.Time
}

// Preset is one of the named range selections offered by the pickers.
type Preset int

const (
	ThisMonth Preset = iota
	LastMonth
	Last3Months
	ThisYear
)

func (p Preset) String() string {
	switch p {
	case ThisMonth:
		return "This Month"
	case LastMonth:
		return "Last Month"
	case Last3Months:
		return "Last 3 Months"
	case ThisYear:
		return "This Year"
	}

	return "Unknown"
}

// PresetFromString parses the wire form of a preset ("this_month",
// "last_month", "last_3_months", "this_year").
func PresetFromString(s string) (Preset, bool) {
	switch s {
	case "this_month":
		return ThisMonth, true
	case "last_month":
		return LastMonth, true
	case "last_3_months":
		return Last3Months, true
	case "this_year":
		return ThisYear, true
	}

	return 0, false
}

// Resolve maps a preset to concrete calendar-aligned boundaries relative to
// now. All ranges are inclusive of both endpoint days.
func Resolve(p Preset, now time.Time) Range {
	var start, end time.Time

	switch p {
	case ThisMonth:
		start = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, -1)
	case LastMonth:
		// Pin to day 1 before shifting; AddDate on a month-end date rolls
		// over when the previous month is shorter.
		start = time.Date(now.Year(), now.Month()-1, 1, 0, 0, 0, 0, now.Location())
		end = start.AddDate(0, 1, -1)
	case Last3Months:
		// Three calendar months, the current one included.
		start = time.Date(now.Year(), now.Month()-2, 1, 0, 0, 0, 0, now.Location())
		end = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, -1)
	case ThisYear:
		start = time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
		end = time.Date(now.Year(), time.December, 31, 0, 0, 0, 0, now.Location())
	}

	return Range{Start: start, End: end}
}

// Normalize expands a day-granularity range to full-day instant bounds
// (00:00:00 through 23:59:59) for filtering timestamped records.
func Normalize(r Range) Range {
	return Range{
		Start: time.Date(r.Start.Year(), r.Start.Month(), r.Start.Day(), 0, 0, 0, 0, r.Start.Location()),
		End:   time.Date(r.End.Year(), r.End.Month(), r.End.Day(), 23, 59, 59, 0, r.End.Location()),
	}
}

// Contains reports whether t falls inside the inclusive range.
func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

var frenchMonths = map[time.Month]string{
	time.January:   "janvier",
	time.February:  "février",
	time.March:     "mars",
	time.April:     "avril",
	time.May:       "mai",
	time.June:      "juin",
	time.July:      "juillet",
	time.August:    "août",
	time.September: "septembre",
	time.October:   "octobre",
	time.November:  "novembre",
	time.December:  "décembre",
}

func monthName(m time.Month, lang string) string {
	if lang == "fr" {
		return frenchMonths[m]
	}

	return m.String()
}

// Label renders a display label for the range: "Month Year" when both ends
// fall in the same calendar month, otherwise "Start – End Year" using the end
// date's year. lang is "en" or "fr".
func Label(r Range, lang string) string {
	if r.Start.Month() == r.End.Month() && r.Start.Year() == r.End.Year() {
		return fmt.Sprintf("%s %d", monthName(r.Start.Month(), lang), r.Start.Year())
	}

	return fmt.Sprintf("%s – %s %d",
		monthName(r.Start.Month(), lang),
		monthName(r.End.Month(), lang),
		r.End.Year(),
	)
}
