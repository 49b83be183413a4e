// Package cache composes format cache keys and owns the process wide cache handle
package cache

import (
	"strconv"
	"strings"
)

// Key joins input, pattern and locale into one collision free key
// each part is written as <len>:<bytes> so no separator can be forged
func Key(input, pattern, locale string) string {
	var b strings.Builder
	b.Grow(len(input) + len(pattern) + len(locale) + 12)
	for _, p := range [...]string{input, pattern, locale} {
		b.WriteString(strconv.Itoa(len(p)))
		b.WriteByte(':')
		b.WriteString(p)
	}
	return b.String()
}
