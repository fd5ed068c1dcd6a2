// Package template fills "{path}" placeholders from a value. Each placeholder
// is resolved with goiq.ExtractPrimitive; placeholders that do not resolve to
// a scalar render as empty text.
package template

import (
	"regexp"
	"strings"

	"github.com/reoring/goiq"
)

// A placeholder is a brace-delimited run without braces or whitespace.
var _placeholder = regexp.MustCompile(`\{([^{}\s]+)\}`)

type token struct {
	literal string
	path    goiq.Path
	isPath  bool
}

// Template is a parsed template. It is immutable and safe for concurrent use.
type Template struct {
	source string
	tokens []token
}

// New parses source. Text that does not form a placeholder, such as "{}" or
// "{a b}", is kept literally.
func New(source string) *Template {
	t := &Template{source: source}
	t.parse()
	return t
}

func (t *Template) parse() {
	t.tokens = t.tokens[:0]
	last := 0
	for _, m := range _placeholder.FindAllStringSubmatchIndex(t.source, -1) {
		if m[0] > last {
			t.tokens = append(t.tokens, token{literal: t.source[last:m[0]]})
		}
		t.tokens = append(t.tokens, token{path: goiq.ParsePath(t.source[m[2]:m[3]]), isPath: true})
		last = m[1]
	}
	if last < len(t.source) {
		t.tokens = append(t.tokens, token{literal: t.source[last:]})
	}
}

// Render substitutes every placeholder with the primitive found in data.
func (t *Template) Render(data any) string {
	var b strings.Builder
	for _, tok := range t.tokens {
		if !tok.isPath {
			b.WriteString(tok.literal)
			continue
		}
		if s, ok := goiq.ExtractPrimitive(data, tok.path); ok {
			b.WriteString(s)
		}
	}
	return b.String()
}

// Paths returns the placeholder paths in order of appearance.
func (t *Template) Paths() []goiq.Path {
	var out []goiq.Path
	for _, tok := range t.tokens {
		if tok.isPath {
			out = append(out, tok.path)
		}
	}
	return out
}

// String returns the template source.
func (t *Template) String() string { return t.source }

// MarshalText lets a Template be stored in JSON or YAML configuration as its
// source text.
func (t *Template) MarshalText() ([]byte, error) { return []byte(t.source), nil }

func (t *Template) UnmarshalText(text []byte) error {
	t.source = string(text)
	t.parse()
	return nil
}
