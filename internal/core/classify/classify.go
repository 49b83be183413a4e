// Package classify decides whether untyped values are dates: a cheap
// heuristic backed by the compiled catalog, and an authoritative strict parse
package classify

import (
	"encoding/json"
	"reflect"
	"time"

	"datefmt/internal/core/calendar"
	"datefmt/internal/core/layout"
)

// Parser is the strict oracle: it accepts text only when it fits a catalog
// layout exactly, interpreted as UTC
type Parser interface {
	Parse(text string) (time.Time, bool)
}

// Classifier composes the compiled catalog with a strict parser
// immutable and safe for concurrent use
type Classifier struct {
	compiled *layout.Compiled
	parser   Parser
}

// New builds a classifier over compiled; parser should accept exactly the
// templates compiled was built from
func New(compiled *layout.Compiled, parser Parser) *Classifier {
	return &Classifier{compiled: compiled, parser: parser}
}

var std = New(layout.Default(), calendar.Default())

// Default classifies against the built-in catalog
func Default() *Classifier { return std }

// LooksLikeADate is the fast path; it only consults the parser when the
// alternation does not match a value that passed the cheap checks
func (c *Classifier) LooksLikeADate(value string) bool {
	if value == "" {
		return false
	}
	if !c.compiled.HasLength(len(value)) {
		return false
	}
	if !leadingYear(value) {
		return false
	}
	if last := value[len(value)-1]; !isDigit(last) && last != 'Z' {
		return false
	}
	if c.compiled.Match(value) {
		return true
	}
	return c.IsDate(value)
}

// IsDate reports whether value strictly parses against the catalog
// numbers are never date strings, whatever their digits look like
func (c *Classifier) IsDate(value any) bool {
	if IsNumeric(value) {
		return false
	}
	switch v := value.(type) {
	case nil:
		return false
	case string:
		_, ok := c.parser.Parse(v)
		return ok
	case []byte:
		_, ok := c.parser.Parse(string(v))
		return ok
	case time.Time:
		return !v.IsZero()
	case *time.Time:
		return v != nil && !v.IsZero()
	}
	return false
}

// IsNumeric reports whether value is a Go or JSON number
func IsNumeric(value any) bool {
	if _, ok := value.(json.Number); ok {
		return true
	}
	switch reflect.ValueOf(value).Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return true
	}
	return false
}

func leadingYear(s string) bool {
	if len(s) < 4 {
		return false
	}
	for i := range 4 {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }
