package calendar

import "time"

// weekRule says which weekday starts a week (dow, 0 is Sunday) and which
// day of January must fall in week one (doy, counted back from dow+7)
type weekRule struct{ dow, doy int }

var isoWeek = weekRule{dow: 1, doy: 4}

func isLeap(y int) bool { return y%4 == 0 && (y%100 != 0 || y%400 == 0) }

func daysInYear(y int) int {
	if isLeap(y) {
		return 366
	}
	return 365
}

func daysInMonth(y int, m time.Month) int {
	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// firstWeekOffset is the day of year, minus one, on which week one starts
func firstWeekOffset(year int, r weekRule) int {
	fwd := 7 + r.dow - r.doy
	fwdlw := (7 + int(time.Date(year, time.January, fwd, 0, 0, 0, 0, time.UTC).Weekday()) - r.dow) % 7
	return -fwdlw + fwd - 1
}

func weeksInYear(year int, r weekRule) int {
	return (daysInYear(year) - firstWeekOffset(year, r) + firstWeekOffset(year+1, r)) / 7
}

// isoWeekStart is the Monday of ISO week one of year
func isoWeekStart(year int) time.Time {
	return time.Date(year, time.January, 1+firstWeekOffset(year, isoWeek), 0, 0, 0, 0, time.UTC)
}
