package calendar

import "strings"

// units understood by Diff
const (
	UnitYear        = "year"
	UnitQuarter     = "quarter"
	UnitMonth       = "month"
	UnitWeek        = "week"
	UnitDay         = "day"
	UnitHour        = "hour"
	UnitMinute      = "minute"
	UnitSecond      = "second"
	UnitMillisecond = "millisecond"
)

var unitAliases = map[string]string{
	"y": UnitYear, "year": UnitYear, "years": UnitYear,
	"Q": UnitQuarter, "quarter": UnitQuarter, "quarters": UnitQuarter,
	"M": UnitMonth, "month": UnitMonth, "months": UnitMonth,
	"w": UnitWeek, "week": UnitWeek, "weeks": UnitWeek,
	"d": UnitDay, "day": UnitDay, "days": UnitDay,
	"h": UnitHour, "hour": UnitHour, "hours": UnitHour,
	"m": UnitMinute, "minute": UnitMinute, "minutes": UnitMinute,
	"s": UnitSecond, "second": UnitSecond, "seconds": UnitSecond,
	"ms": UnitMillisecond, "millisecond": UnitMillisecond, "milliseconds": UnitMillisecond,
}

// NormalizeUnit maps aliases to a canonical unit; single letters are case
// sensitive (M is month, m is minute), unknown units mean milliseconds
func NormalizeUnit(u string) string {
	if c, ok := unitAliases[u]; ok {
		return c
	}
	if c, ok := unitAliases[strings.ToLower(u)]; ok && len(u) > 1 {
		return c
	}
	return UnitMillisecond
}
