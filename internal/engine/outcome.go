package engine

// Mode selects what is captured at the end of a path.
type Mode uint8

const (
	// ModePrimitive captures the display form of a scalar target only.
	ModePrimitive Mode = iota
	// ModeText renders the target as compact JSON.
	ModeText
	// ModeTextPretty renders the target as indented JSON.
	ModeTextPretty
	// ModeYAML renders the target as a YAML document.
	ModeYAML
	// ModeSize counts the immediate children of the target.
	ModeSize
)

// Status is the overall result of a resolution.
type Status uint8

const (
	StatusNotFound Status = iota
	StatusFound
	StatusFailed
)

// Failure tells which step of a failed resolution went wrong.
type Failure uint8

const (
	FailureNone Failure = iota
	// FailureEmission means the value could not emit its own shape.
	FailureEmission
	// FailureRender means the captured subtree could not be rendered.
	FailureRender
)

// Outcome is the result of Resolve. Text is set for found text modes, Count
// for ModeSize.
type Outcome struct {
	Status  Status
	Text    string
	Count   int
	Failure Failure
	Err     error
}

// halt is the short-circuit signal. It travels up through every emitter's
// return path carrying the final outcome.
type halt struct {
	out Outcome
}

func (h *halt) Error() string { return "engine: traversal halted" }

func notFound() error { return &halt{} }

func found(text string) error {
	return &halt{out: Outcome{Status: StatusFound, Text: text}}
}

func foundCount(n int) error {
	return &halt{out: Outcome{Status: StatusFound, Count: n}}
}

func failed(f Failure, err error) error {
	return &halt{out: Outcome{Status: StatusFailed, Failure: f, Err: err}}
}
