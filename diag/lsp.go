package diag

import (
	protocol "github.com/tliron/glsp/protocol_3_16"
)

const lspSource = "phpcompat"

// ToLSP converts a diagnostic to its LSP wire shape so a language-server
// host can publish it. Lines translate from this package's 1-based form to
// LSP's 0-based form; columns are 0-based on both sides.
func ToLSP(d Diagnostic) protocol.Diagnostic {
	severity := protocol.DiagnosticSeverityError
	if d.Severity == SeverityWarning {
		severity = protocol.DiagnosticSeverityWarning
	}

	line := protocol.UInteger(0)
	if d.Line > 0 {
		line = protocol.UInteger(d.Line - 1)
	}
	pos := protocol.Position{Line: line, Character: protocol.UInteger(d.Col)}

	code := protocol.IntegerOrString{Value: d.Code}
	source := lspSource

	return protocol.Diagnostic{
		Range:    protocol.Range{Start: pos, End: pos},
		Severity: &severity,
		Code:     &code,
		Source:   &source,
		Message:  d.Message,
	}
}

// AllLSP converts every collected diagnostic.
func (s *Sink) AllLSP() []protocol.Diagnostic {
	if s.Len() == 0 {
		return nil
	}
	out := make([]protocol.Diagnostic, 0, s.Len())
	for _, d := range s.diags {
		out = append(out, ToLSP(d))
	}
	return out
}
