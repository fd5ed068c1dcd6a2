package goiq

import "github.com/reoring/goiq/internal/engine"

// Format selects the text produced for a found target.
type Format uint8

const (
	// FormatPrimitive yields the display text of a scalar target; containers
	// are not found.
	FormatPrimitive Format = iota
	// FormatJSON renders the target as compact JSON.
	FormatJSON
	// FormatJSONPretty renders the target as JSON indented by two spaces.
	FormatJSONPretty
	// FormatYAML renders the target as a YAML document.
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatPrimitive:
		return "primitive"
	case FormatJSON:
		return "json"
	case FormatJSONPretty:
		return "pretty"
	case FormatYAML:
		return "yaml"
	}
	return "unknown"
}

// ParseFormat accepts the names produced by Format.String.
func ParseFormat(s string) (Format, bool) {
	for _, f := range []Format{FormatPrimitive, FormatJSON, FormatJSONPretty, FormatYAML} {
		if f.String() == s {
			return f, true
		}
	}
	return 0, false
}

func (f Format) mode() engine.Mode {
	switch f {
	case FormatJSON:
		return engine.ModeText
	case FormatJSONPretty:
		return engine.ModeTextPretty
	case FormatYAML:
		return engine.ModeYAML
	}
	return engine.ModePrimitive
}
