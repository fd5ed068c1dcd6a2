package goiq

import (
	"reflect"
	"strconv"
	"strings"
)

// Path is an immutable, ordered list of tokens addressing a value inside a
// nested structure. Each token names a record field, a mapping key, a
// sequence index or a variant name, depending on what it meets.
type Path struct {
	tokens []string
}

// ParsePath splits source on '.'. Tokens cannot contain dots. An empty source
// yields a path with one empty token.
func ParsePath(source string) Path {
	return Path{tokens: strings.Split(source, ".")}
}

// PathOf builds a path from tokens taken verbatim. PathOf() has no tokens at
// all, which differs from ParsePath("").
func PathOf(tokens ...string) Path {
	return Path{tokens: append([]string(nil), tokens...)}
}

// Keys returns a copy of the tokens.
func (p Path) Keys() []string { return append([]string(nil), p.tokens...) }

// Len returns the number of tokens.
func (p Path) Len() int { return len(p.tokens) }

// String joins the tokens with '.'.
func (p Path) String() string { return strings.Join(p.tokens, ".") }

// Field returns a new path with name appended.
func (p Path) Field(name string) Path {
	return Path{tokens: append(p.Keys(), name)}
}

// Index returns a new path with a sequence index appended.
func (p Path) Index(i int) Path {
	return Path{tokens: append(p.Keys(), strconv.Itoa(i))}
}

// isRoot reports whether p addresses the value itself: no tokens, or the
// single empty token ParsePath("") produces.
func (p Path) isRoot() bool {
	return len(p.tokens) == 0 || (len(p.tokens) == 1 && p.tokens[0] == "")
}

// PathLike is accepted by every extraction entry point: a dotted string, a
// token slice or a prebuilt Path.
type PathLike interface {
	~string | ~[]string | Path
}

func toPath[P PathLike](p P) Path {
	switch v := any(p).(type) {
	case Path:
		return v
	case string:
		return ParsePath(v)
	case []string:
		return PathOf(v...)
	}
	// named string or slice types
	rv := reflect.ValueOf(p)
	if rv.Kind() == reflect.String {
		return ParsePath(rv.String())
	}
	tokens := make([]string, rv.Len())
	for i := range tokens {
		tokens[i] = rv.Index(i).String()
	}
	return Path{tokens: tokens}
}
