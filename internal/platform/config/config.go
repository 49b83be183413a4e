// Package config reads namespaced settings from environment variables
package config

import (
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"datefmt/internal/platform/logger"
)

// Conf reads environment variables under a prefix such as "DATEFMT_".
// Values are trimmed and a blank value counts as unset
type Conf struct{ prefix string }

// New reads keys as given
func New() Conf { return Conf{} }

// Prefix scopes c further: New().Prefix("DATEFMT_").Prefix("CACHE_")
func (c Conf) Prefix(p string) Conf { return Conf{prefix: c.prefix + p} }

// key returns the fully qualified env var name
func (c Conf) key(key string) string { return c.prefix + key }

func (c Conf) lookup(key string) string { return strings.TrimSpace(os.Getenv(c.key(key))) }

// mayParse returns def when key is unset and warns and returns def when it does not parse
func mayParse[T any](c Conf, key string, def T, kind string, parse func(string) (T, error)) T {
	s := c.lookup(key)
	if s == "" {
		return def
	}
	v, err := parse(s)
	if err != nil {
		logger.Get().Warn().Str("key", c.key(key)).Str("value", s).Interface("default", def).
			Msgf("invalid %s; using default", kind)
		return def
	}
	return v
}

// MayString is the raw value, or def
func (c Conf) MayString(key, def string) string {
	v := c.lookup(key)
	if v == "" {
		v = def
	}
	return v
}

// MayInt returns the value or def if missing or not an int
func (c Conf) MayInt(key string, def int) int {
	return mayParse(c, key, def, "int", strconv.Atoi)
}

// MayBool returns the value or def if missing or not a bool
func (c Conf) MayBool(key string, def bool) bool {
	return mayParse(c, key, def, "bool", strconv.ParseBool)
}

// MayDuration returns the value or def if missing or not a duration like 250ms
func (c Conf) MayDuration(key string, def time.Duration) time.Duration {
	return mayParse(c, key, def, "duration", time.ParseDuration)
}

// MayCSV splits a comma separated value, dropping blanks; def if nothing remains
func (c Conf) MayCSV(key string, def []string) []string {
	parts := strings.FieldsFunc(c.lookup(key), func(r rune) bool { return r == ',' })
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) > 0 {
		return out
	}
	return def
}

// MayEnum returns the allowed spelling matching the value case-insensitively,
// def when unset, and panics on anything else
func (c Conf) MayEnum(key, def string, allowed ...string) string {
	v := c.MayString(key, def)
	if v == "" {
		return ""
	}
	if i := slices.IndexFunc(allowed, func(a string) bool { return strings.EqualFold(a, v) }); i >= 0 {
		return allowed[i]
	}
	logger.Get().Panic().Str("key", c.key(key)).Str("value", v).Strs("allowed", allowed).Msg("unsupported value")
	return ""
}
