package calendar

import (
	"strings"

	"golang.org/x/text/language"
)

// supported order matters: the first entry is the matcher fallback
var (
	supported = []string{"en", "de", "fr", "es", "nl"}
	matcher   = language.NewMatcher([]language.Tag{
		language.English, language.German, language.French, language.Spanish, language.Dutch,
	})
)

// Lookup resolves a BCP 47 tag to the closest supported locale code,
// falling back to English
func Lookup(tag string) string {
	tag = strings.TrimSpace(strings.ReplaceAll(tag, "_", "-"))
	if tag == "" {
		return supported[0]
	}
	t, err := language.Parse(tag)
	if err != nil {
		return supported[0]
	}
	_, idx, conf := matcher.Match(t)
	if conf == language.No || idx < 0 || idx >= len(supported) {
		return supported[0]
	}
	return supported[idx]
}

// Supported lists the locale codes Lookup can return
func Supported() []string {
	return append([]string(nil), supported...)
}
