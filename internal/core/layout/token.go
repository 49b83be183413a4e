package layout

import (
	"regexp"
	"strings"
)

// fieldAlternation lists every display/parse token in moment grammar, longest
// variants first so the leftmost-first alternation prefers them
const fieldAlternation = `[Hh]mm(?:ss)?|Mo|MM?M?M?|Do|DDDo|DD?D?D?|ddd?d?|do?|w[ow]?|W[oW]?|Qo?|YYYYYY|YYYYY|YYYY|YY|gg(?:ggg?)?|GG(?:GGG?)?|e|E|a|A|hh?|HH?|kk?|mm?|ss?|S{1,9}|x|X|zz?|ZZ?`

var (
	tokenRe = regexp.MustCompile(`(\[[^\[]*\])|(\\)?(` + fieldAlternation + `|.)`)
	fieldRe = regexp.MustCompile(`^(?:` + fieldAlternation + `)$`)
)

// Token is either literal text or a named date component
// exactly one of Lit and Field is set
type Token struct {
	Lit   string
	Field string
}

// IsField reports whether the token names a date component
func (t Token) IsField() bool { return t.Field != "" }

// String renders the token back in template form
func (t Token) String() string {
	if t.IsField() {
		return t.Field
	}
	return t.Lit
}

// Tokenize splits a template left to right into tokens
// bracketed text and backslash escaped tokens become literals, runs of adjacent
// literal characters are merged
func Tokenize(template string) []Token {
	var out []Token
	addLit := func(s string) {
		if s == "" {
			return
		}
		if n := len(out); n > 0 && !out[n-1].IsField() {
			out[n-1].Lit += s
			return
		}
		out = append(out, Token{Lit: s})
	}

	for _, m := range tokenRe.FindAllStringSubmatch(template, -1) {
		switch {
		case m[1] != "":
			addLit(strings.TrimSuffix(strings.TrimPrefix(m[1], "["), "]"))
		case m[2] != "":
			addLit(m[3])
		case fieldRe.MatchString(m[3]):
			out = append(out, Token{Field: m[3]})
		default:
			addLit(m[3])
		}
	}
	return out
}
