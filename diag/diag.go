// Package diag collects diagnostics produced during one analysis pass. It is
// deliberately independent of the engine so that hosts can consume results
// without importing analysis internals.
package diag

import (
	"encoding/json"
	"fmt"
)

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// MarshalJSON serializes the severity as a JSON string.
func (s Severity) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}

// UnmarshalJSON deserializes a severity from a JSON string.
func (s *Severity) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	switch str {
	case "error":
		*s = SeverityError
	case "warning":
		*s = SeverityWarning
	default:
		return fmt.Errorf("unknown severity: %q", str)
	}
	return nil
}

// Diagnostic is a single finding. Position is the index of the token the
// finding is anchored to (the call's opening bracket); Line and Col locate
// it in the source for human-facing output.
type Diagnostic struct {
	Code     string   `json:"code"`
	Message  string   `json:"message"`
	Position int      `json:"position"`
	Line     int      `json:"line"`
	Col      int      `json:"col"`
	Severity Severity `json:"severity"`
	Data     []string `json:"data,omitempty"`
}

// String renders the diagnostic in go vet style.
func (d Diagnostic) String() string {
	return fmt.Sprintf("%d:%d: %s (%s)", d.Line, d.Col, d.Message, d.Code)
}

// Sink accumulates diagnostics in emission order. It is scoped to a single
// analysis invocation and never deduplicates: several rules firing on one
// call site produce several entries.
type Sink struct {
	diags []Diagnostic
}

// NewSink returns an empty sink.
func NewSink() *Sink {
	return &Sink{}
}

// Append records a diagnostic.
func (s *Sink) Append(d Diagnostic) {
	s.diags = append(s.diags, d)
}

// Len returns the number of collected diagnostics.
func (s *Sink) Len() int {
	return len(s.diags)
}

// All returns the collected diagnostics in emission order. The returned
// slice is the sink's backing store; callers must not mutate it.
func (s *Sink) All() []Diagnostic {
	return s.diags
}
