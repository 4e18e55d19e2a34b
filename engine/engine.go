// Package engine drives the signature-compatibility rules over a token
// stream. One data-driven dispatcher serves every rule in the table; rules
// differ only in their declarative entries, never in evaluation logic.
package engine

import (
	"fmt"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/codelintel/phpcompat/callsite"
	"github.com/codelintel/phpcompat/diag"
	"github.com/codelintel/phpcompat/phpversion"
	"github.com/codelintel/phpcompat/rules"
	"github.com/codelintel/phpcompat/token"
)

// Analyze walks one token stream and reports every rule-table parameter that
// a call site fails to pass while the supported range still covers the
// version that required it. It is a pure function of its inputs; diagnostics
// come back in source order, and for a single call site in ascending offset
// order. Call-site faults (unbalanced brackets, bare references) are skipped
// locally; the walk always reaches the end of the stream.
func Analyze(s *token.Stream, table *rules.Table, supported phpversion.SupportRange) []diag.Diagnostic {
	logger := commonlog.GetLoggerf("phpcompat.engine")
	sink := diag.NewSink()

	for _, tk := range s.Tokens() {
		if tk.Kind != token.Name {
			continue
		}
		lower := strings.ToLower(tk.Text)
		ruleSet := table.RulesFor(lower)
		if ruleSet == nil {
			continue
		}

		call, ok := callsite.At(s, tk.Index)
		if !ok {
			logger.Debugf("skipping %s at token %d: not a free function call", tk.Text, tk.Index)
			continue
		}

		checkCall(s, sink, lower, call, ruleSet, supported)
	}

	return sink.All()
}

// AnalyzeSource tokenizes PHP source through the external grammar and runs
// Analyze over the result.
func AnalyzeSource(source []byte, table *rules.Table, supported phpversion.SupportRange) ([]diag.Diagnostic, error) {
	s, err := token.TokenizePHP(source)
	if err != nil {
		return nil, err
	}
	return Analyze(s, table, supported), nil
}

func checkCall(s *token.Stream, sink *diag.Sink, function string, call callsite.Call, ruleSet []rules.ParameterRule, supported phpversion.SupportRange) {
	// Named arguments do not fill positional slots; they only satisfy the
	// parameter they name.
	highestPassed := call.PositionalCount() - 1

	for _, rule := range ruleSet {
		if rule.Offset <= highestPassed {
			continue
		}
		if call.HasNamed(rule.Name) {
			continue
		}

		fires, required := phpversion.Evaluate(rule.History, supported)
		if !fires {
			continue
		}

		open, _ := s.At(call.Open)
		boundary := required.Original()
		sink.Append(diag.Diagnostic{
			Code: function + "_" + sanitize(rule.Name) + "Missing",
			Message: fmt.Sprintf(
				`The "%s" parameter for function %s() is missing, but was required for PHP %s and lower`,
				rule.Name, function, boundary,
			),
			Position: call.Open,
			Line:     open.Line,
			Col:      open.Col,
			Severity: diag.SeverityError,
			Data:     []string{rule.Name, function, boundary},
		})
	}
}

// sanitize folds a parameter name into an error-code fragment.
func sanitize(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		}
		return '_'
	}, name)
}
