package calendar

import (
	"time"

	"datefmt/internal/core/layout"
)

// fields collects parsed components before validation
type fields struct {
	year, month, day     int
	hour, minute, second int
	millis               int
	dayOfYear            int
	week, weekday        int
	offset               int // seconds east of UTC

	hasDayOfYear, hasWeek, hasWeekday bool
}

// parseLayout matches text against one tokenized layout, exactly and in full
func parseLayout(text string, toks []layout.Token) (time.Time, bool) {
	f := fields{month: 1, day: 1}
	pos := 0
	for _, tok := range toks {
		if !tok.IsField() {
			if len(text)-pos < len(tok.Lit) || text[pos:pos+len(tok.Lit)] != tok.Lit {
				return time.Time{}, false
			}
			pos += len(tok.Lit)
			continue
		}

		if tok.Field == "Z" {
			off, n, ok := parseZone(text[pos:])
			if !ok {
				return time.Time{}, false
			}
			f.offset = off
			pos += n
			continue
		}

		width, ok := parseWidths[tok.Field]
		if !ok {
			return time.Time{}, false
		}
		v, ok := digits(text, pos, width)
		if !ok {
			return time.Time{}, false
		}
		pos += width

		switch tok.Field {
		case "YYYY":
			f.year = v
		case "MM":
			f.month = v
		case "DD":
			f.day = v
		case "DDDD":
			f.dayOfYear, f.hasDayOfYear = v, true
		case "HH":
			f.hour = v
		case "mm":
			f.minute = v
		case "ss":
			f.second = v
		case "SSS":
			f.millis = v
		case "SSSSSS":
			f.millis = v / 1000
		case "WW", "W":
			f.week, f.hasWeek = v, true
		case "E":
			f.weekday, f.hasWeekday = v, true
		}
	}
	if pos != len(text) {
		return time.Time{}, false
	}
	return f.instant()
}

// parseWidths are the exact digit counts strict parsing accepts
var parseWidths = map[string]int{
	"YYYY":   4,
	"MM":     2,
	"DD":     2,
	"DDDD":   3,
	"HH":     2,
	"mm":     2,
	"ss":     2,
	"SSS":    3,
	"SSSSSS": 6,
	"WW":     2,
	"W":      1,
	"E":      1,
}

func digits(s string, pos, width int) (int, bool) {
	if len(s)-pos < width {
		return 0, false
	}
	v := 0
	for i := pos; i < pos+width; i++ {
		c := s[i]
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int(c-'0')
	}
	return v, true
}

// parseZone reads Z or a signed offset, longest form first
func parseZone(s string) (offset, n int, ok bool) {
	if s == "" {
		return 0, 0, false
	}
	if s[0] == 'Z' {
		return 0, 1, true
	}
	if s[0] != '+' && s[0] != '-' {
		return 0, 0, false
	}
	sign := 1
	if s[0] == '-' {
		sign = -1
	}
	hh, ok := digits(s, 1, 2)
	if !ok {
		return 0, 0, false
	}
	n = 3
	mm := 0
	switch {
	case len(s) >= 6 && s[3] == ':':
		if v, ok := digits(s, 4, 2); ok {
			mm, n = v, 6
		}
	case len(s) >= 5:
		if v, ok := digits(s, 3, 2); ok {
			mm, n = v, 5
		}
	}
	return sign * (hh*3600 + mm*60), n, true
}

// instant validates ranges and resolves week or ordinal dates
func (f fields) instant() (time.Time, bool) {
	if f.minute > 59 || f.second > 59 {
		return time.Time{}, false
	}
	if f.hour > 24 || (f.hour == 24 && (f.minute != 0 || f.second != 0 || f.millis != 0)) {
		return time.Time{}, false
	}

	var date time.Time
	switch {
	case f.hasWeek:
		wd := 1
		if f.hasWeekday {
			wd = f.weekday
		}
		if f.week < 1 || f.week > weeksInYear(f.year, isoWeek) || wd < 1 || wd > 7 {
			return time.Time{}, false
		}
		date = isoWeekStart(f.year).AddDate(0, 0, (f.week-1)*7+wd-1)
	case f.hasDayOfYear:
		if f.dayOfYear < 1 || f.dayOfYear > daysInYear(f.year) {
			return time.Time{}, false
		}
		date = time.Date(f.year, time.January, f.dayOfYear, 0, 0, 0, 0, time.UTC)
	default:
		if f.month < 1 || f.month > 12 {
			return time.Time{}, false
		}
		if f.day < 1 || f.day > daysInMonth(f.year, time.Month(f.month)) {
			return time.Time{}, false
		}
		date = time.Date(f.year, time.Month(f.month), f.day, 0, 0, 0, 0, time.UTC)
	}

	t := time.Date(date.Year(), date.Month(), date.Day(), f.hour, f.minute, f.second,
		f.millis*int(time.Millisecond), time.UTC)
	return t.Add(-time.Duration(f.offset) * time.Second), true
}
