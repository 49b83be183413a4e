package layout

import (
	"regexp"
	"slices"
	"strings"

	perr "datefmt/internal/platform/errors"
)

// zonePattern accepts Z, +01, +0100 and +01:00
const zonePattern = `(?:Z|[+-]\d\d(?::?\d\d)?)`

// fragment is the regex and the possible instance widths of one field
type fragment struct {
	re     string
	widths []int
}

// fragments must cover every field used by the catalog
var fragments = map[string]fragment{
	"YYYY":   {`\d{4}`, []int{4}},
	"MM":     {`\d{2}`, []int{2}},
	"DD":     {`\d{2}`, []int{2}},
	"DDDD":   {`\d{3}`, []int{3}},
	"HH":     {`\d{2}`, []int{2}},
	"mm":     {`\d{2}`, []int{2}},
	"ss":     {`\d{2}`, []int{2}},
	"SSS":    {`\d{3}`, []int{3}},
	"SSSSSS": {`\d{6}`, []int{6}},
	"E":      {`\d`, []int{1}},
	"W":      {`\d`, []int{1}},
	"WW":     {`\d{2}`, []int{2}},
	"Z":      {zonePattern, []int{1, 3, 5, 6}},
}

// Compiled is the immutable product of compiling a catalog
// safe for concurrent use
type Compiled struct {
	templates []string
	pattern   string
	re        *regexp.Regexp
	lengths   map[int]struct{}
}

// Compile turns templates into one anchored alternation and the set of
// lengths an instance of any template can have
func Compile(templates []string) (*Compiled, error) {
	if len(templates) == 0 {
		return nil, perr.Newf(perr.ErrorCodeCatalog, "layout: empty catalog")
	}

	alts := make([]string, 0, len(templates))
	lengths := map[int]struct{}{}
	for _, tpl := range templates {
		re, lens, err := compileOne(tpl)
		if err != nil {
			return nil, err
		}
		alts = append(alts, re)
		for _, n := range lens {
			lengths[n] = struct{}{}
		}
	}

	pattern := `^(?:` + strings.Join(alts, "|") + `)$`
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeCatalog, "layout: compile alternation")
	}
	return &Compiled{
		templates: slices.Clone(templates),
		pattern:   pattern,
		re:        re,
		lengths:   lengths,
	}, nil
}

// MustCompile is Compile that panics, for package level catalogs
func MustCompile(templates []string) *Compiled {
	c, err := Compile(templates)
	if err != nil {
		panic(err)
	}
	return c
}

func compileOne(tpl string) (string, []int, error) {
	var b strings.Builder
	sums := []int{0}
	for _, tok := range Tokenize(tpl) {
		if !tok.IsField() {
			b.WriteString(regexp.QuoteMeta(tok.Lit))
			sums = addWidths(sums, []int{len(tok.Lit)})
			continue
		}
		f, ok := fragments[tok.Field]
		if !ok {
			return "", nil, perr.Newf(perr.ErrorCodeCatalog, "layout: %q has no pattern for token %q", tpl, tok.Field)
		}
		b.WriteString(f.re)
		sums = addWidths(sums, f.widths)
	}
	return b.String(), sums, nil
}

// addWidths returns every a+w for a in sums and w in widths, deduplicated
func addWidths(sums, widths []int) []int {
	out := make([]int, 0, len(sums)*len(widths))
	for _, s := range sums {
		for _, w := range widths {
			if n := s + w; !slices.Contains(out, n) {
				out = append(out, n)
			}
		}
	}
	return out
}

// Match reports whether s is a full match of some template
func (c *Compiled) Match(s string) bool { return c.re.MatchString(s) }

// HasLength reports whether an instance can be n bytes long
func (c *Compiled) HasLength(n int) bool {
	_, ok := c.lengths[n]
	return ok
}

// Lengths returns the length set in ascending order
func (c *Compiled) Lengths() []int {
	out := make([]int, 0, len(c.lengths))
	for n := range c.lengths {
		out = append(out, n)
	}
	slices.Sort(out)
	return out
}

// Pattern returns the anchored alternation source
func (c *Compiled) Pattern() string { return c.pattern }

// Templates returns a copy of the compiled templates
func (c *Compiled) Templates() []string { return slices.Clone(c.templates) }

var std = MustCompile(catalog)

// Default returns the compiled built-in catalog
func Default() *Compiled { return std }
