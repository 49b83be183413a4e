package calendar

import (
	"time"

	"github.com/nleeper/goment"
)

// gomentUnits maps canonical units to the names goment's Diff accepts;
// quarters are derived from months
var gomentUnits = map[string]string{
	UnitYear:        "years",
	UnitQuarter:     "months",
	UnitMonth:       "months",
	UnitWeek:        "weeks",
	UnitDay:         "days",
	UnitHour:        "hours",
	UnitMinute:      "minutes",
	UnitSecond:      "seconds",
	UnitMillisecond: "milliseconds",
}

// moment wraps t in UTC with the resolved locale
func moment(t time.Time, locale string) (*goment.Goment, bool) {
	g, err := goment.New(t.UTC())
	if err != nil {
		return nil, false
	}
	return g.UTC().SetLocale(Lookup(locale)), true
}

func format(t time.Time, pattern, locale string) string {
	g, ok := moment(t, locale)
	if !ok {
		return InvalidDate
	}
	return g.Format(pattern)
}

func fromNow(t, now time.Time, locale string) string {
	g, ok := moment(t, locale)
	if !ok {
		return InvalidDate
	}
	ref, ok := moment(now, locale)
	if !ok {
		return InvalidDate
	}
	return g.From(ref)
}

// diff is a minus b in unit, truncated toward zero
func diff(a, b time.Time, unit string) int64 {
	ga, ok := moment(a, "")
	if !ok {
		return 0
	}
	gb, ok := moment(b, "")
	if !ok {
		return 0
	}
	n := int64(ga.Diff(gb, gomentUnits[unit]))
	if unit == UnitQuarter {
		n /= 3
	}
	return n
}
