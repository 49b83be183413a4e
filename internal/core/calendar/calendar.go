// Package calendar is the date oracle: strict parsing against a list of
// layouts in UTC, plus locale-aware rendering, relative phrasing and unit
// differences for the instants it parses
package calendar

import (
	"time"

	"datefmt/internal/core/layout"
)

// InvalidDate is what every rendering operation yields for an instant that
// did not parse
const InvalidDate = "Invalid date"

// Calendar parses against a fixed, ordered layout list
// immutable after New and safe for concurrent use
type Calendar struct {
	layouts [][]layout.Token
}

// New tokenizes layouts once; order sets precedence
func New(layouts []string) *Calendar {
	c := &Calendar{layouts: make([][]layout.Token, 0, len(layouts))}
	for _, l := range layouts {
		c.layouts = append(c.layouts, layout.Tokenize(l))
	}
	return c
}

// Default parses against the built-in catalog
func Default() *Calendar { return std }

var std = New(layout.Catalog())

// Parse interprets text as UTC against each layout in order; the first that
// accepts the whole string wins
func (c *Calendar) Parse(text string) (time.Time, bool) {
	for _, toks := range c.layouts {
		if t, ok := parseLayout(text, toks); ok {
			return t, true
		}
	}
	return time.Time{}, false
}

// Format renders t in UTC with a moment display pattern in the given locale
func (c *Calendar) Format(t time.Time, pattern, locale string) string {
	return format(t, pattern, locale)
}

// FromNow describes t relative to now, for example "3 days ago"
func (c *Calendar) FromNow(t, now time.Time, locale string) string {
	return fromNow(t, now, locale)
}

// Diff is now minus t expressed in unit, truncated toward zero
func (c *Calendar) Diff(now, t time.Time, unit string) int64 {
	return diff(now, t, NormalizeUnit(unit))
}
