package render

import (
	"math"
	"strconv"
	"time"
)

// Accepted fixture date layouts, tried in order. Date-only values are UTC midnight.
var dateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// FormatNumber abbreviates counts of a thousand or more to one decimal place,
// rounding halves up: 1000 -> "1k", 1500 -> "1.5k", 1250 -> "1.3k".
func FormatNumber(n int) string {
	if n < 1000 {
		return strconv.Itoa(n)
	}
	tenths := (n*10 + 500) / 1000
	whole, frac := tenths/10, tenths%10
	if frac == 0 {
		return strconv.Itoa(whole) + "k"
	}
	return strconv.Itoa(whole) + "." + strconv.Itoa(frac) + "k"
}

// ParseDate parses a fixture date in one of the accepted layouts.
func ParseDate(date string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		loc := time.Local
		if layout == "2006-01-02" {
			loc = time.UTC
		}
		if t, err := time.ParseInLocation(layout, date, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// RelativeDate describes how long ago date was, measured in whole days before now.
// Future dates read as "Today". Unparseable input is returned escaped, as is.
func RelativeDate(date string, now time.Time) string {
	t, ok := ParseDate(date)
	if !ok {
		return Escape(date)
	}

	days := int(math.Floor(now.Sub(t).Hours() / 24))
	switch {
	case days <= 0:
		return "Today"
	case days == 1:
		return "1 day ago"
	case days < 7:
		return strconv.Itoa(days) + " days ago"
	case days < 30:
		return strconv.Itoa(days/7) + "w ago"
	default:
		return strconv.Itoa(days/30) + "mo ago"
	}
}
