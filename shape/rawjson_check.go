package shape

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// ErrMaxDepth is returned by RawJSON.Check when nesting exceeds the limit.
var ErrMaxDepth = errors.New("shape: max depth exceeded")

// DuplicateKeyError reports an object key that occurs more than once.
// Lookups on such an object only ever see the first occurrence.
type DuplicateKeyError struct {
	Path string // dotted path of the object holding the key
	Key  string
}

func (e *DuplicateKeyError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("shape: duplicate key %q", e.Key)
	}
	return fmt.Sprintf("shape: duplicate key %q at %s", e.Key, e.Path)
}

type checkFrame struct {
	object bool
	keys   map[string]struct{}
	// token under which this container sits in its parent
	token     string
	nextIndex int
	// an object member key has been read and its value is pending
	keyRead bool
	key     string
}

// Check reads the whole document and reports the first malformed token,
// duplicate object key or nesting deeper than maxDepth (maxDepth <= 0
// disables the depth check).
func (r RawJSON) Check(maxDepth int) error {
	if err := validJSON(r); err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(r))
	dec.UseNumber()
	var stack []checkFrame
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			if len(stack) > 0 {
				return fmt.Errorf("%w: unexpected end of input", ErrMalformedJSON)
			}
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: %v", ErrMalformedJSON, err)
		}
		if d, ok := tok.(json.Delim); ok && (d == '}' || d == ']') {
			if len(stack) == 0 {
				return fmt.Errorf("%w: unmatched %q", ErrMalformedJSON, rune(d))
			}
			stack = stack[:len(stack)-1]
			continue
		}
		// a key of the innermost object
		if n := len(stack); n > 0 && stack[n-1].object && !stack[n-1].keyRead {
			top := &stack[n-1]
			key, ok := tok.(string)
			if !ok {
				return fmt.Errorf("%w: object key %v", ErrMalformedJSON, tok)
			}
			if _, dup := top.keys[key]; dup {
				return &DuplicateKeyError{Path: checkPath(stack), Key: key}
			}
			top.keys[key] = struct{}{}
			top.keyRead, top.key = true, key
			continue
		}
		token := ""
		if n := len(stack); n > 0 {
			top := &stack[n-1]
			if top.object {
				token, top.keyRead = top.key, false
			} else {
				token = strconv.Itoa(top.nextIndex)
				top.nextIndex++
			}
		}
		if d, ok := tok.(json.Delim); ok {
			if maxDepth > 0 && len(stack) >= maxDepth {
				return fmt.Errorf("%w: %d at %s", ErrMaxDepth, maxDepth, checkPath(stack))
			}
			f := checkFrame{object: d == '{', token: token}
			if f.object {
				f.keys = make(map[string]struct{})
			}
			stack = append(stack, f)
		}
	}
}

// validJSON accepts exactly one well-formed JSON value, surrounded by
// optional whitespace.
func validJSON(data []byte) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return fmt.Errorf("%w: empty input", ErrMalformedJSON)
	}
	if !json.Valid(data) {
		return fmt.Errorf("%w: invalid document", ErrMalformedJSON)
	}
	return nil
}

func checkPath(stack []checkFrame) string {
	tokens := make([]string, 0, len(stack))
	for _, f := range stack[1:] {
		tokens = append(tokens, f.token)
	}
	return strings.Join(tokens, ".")
}
