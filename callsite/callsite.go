// Package callsite locates free function calls in a token stream and splits
// their argument lists. It only deals in token positions; what the arguments
// mean is the engine's business.
package callsite

import (
	"github.com/codelintel/phpcompat/token"
)

// Arg is a single passed argument. Name is non-empty for PHP named arguments;
// Start and End bound the argument's tokens (End exclusive).
type Arg struct {
	Name  string
	Start int
	End   int
}

// Call describes one syntactic function call.
type Call struct {
	NamePos int
	Open    int
	Close   int
	Args    []Arg
}

// PositionalCount returns how many arguments were passed positionally.
// Positional arguments precede named ones in a valid call, so this is also
// one past the highest positional offset filled.
func (c Call) PositionalCount() int {
	n := 0
	for _, a := range c.Args {
		if a.Name == "" {
			n++
		}
	}
	return n
}

// HasNamed reports whether an argument was passed under the given parameter
// name.
func (c Call) HasNamed(name string) bool {
	for _, a := range c.Args {
		if a.Name == name {
			return true
		}
	}
	return false
}

// At inspects the name token at namePos and, when it heads a free function
// call, returns the parsed call. It returns false for bare references,
// definitions, member/static access, instantiations, namespace-qualified
// names, and call sites whose brackets never balance — all of which must be
// skipped without a diagnostic.
func At(s *token.Stream, namePos int) (Call, bool) {
	name, ok := s.At(namePos)
	if !ok || name.Kind != token.Name {
		return Call{}, false
	}
	if !freeFunctionContext(s, namePos) {
		return Call{}, false
	}

	next, ok := s.FindNext(token.Meaningful, namePos+1, -1)
	if !ok || next.Kind != token.OpenParen {
		// Bare name: a constant reference or similar, not a call.
		return Call{}, false
	}
	open := next.Index

	closePos, ok := s.MatchingClose(open)
	if !ok {
		return Call{}, false
	}

	call := Call{
		NamePos: namePos,
		Open:    open,
		Close:   closePos,
		Args:    splitArgs(s, open, closePos),
	}
	return call, true
}

// freeFunctionContext checks the token before the name. Member access, static
// access, a variable sigil, and the function/const/new keywords mean the
// identifier merely resembles the target function. A single leading backslash is the global
// fallback and stays eligible; a namespace-qualified name does not.
func freeFunctionContext(s *token.Stream, namePos int) bool {
	prev, ok := s.FindPrevious(token.Meaningful, namePos-1)
	if !ok {
		return true
	}
	switch prev.Kind {
	case token.Arrow, token.NullsafeArrow, token.DoubleColon,
		token.KeywordFunction, token.KeywordConst, token.KeywordNew:
		return false
	case token.Dollar:
		// $foo() is a variable function call; the identifier is a variable
		// name that merely matches the target function.
		return false
	case token.NsSeparator:
		before, ok := s.FindPrevious(token.Meaningful, prev.Index-1)
		if ok && before.Kind == token.Name {
			return false
		}
		return true
	}
	return true
}

// splitArgs walks the tokens between the call brackets and cuts on top-level
// commas. Nested brackets of any kind pass as balanced units; string pieces
// are ordinary opaque tokens here.
func splitArgs(s *token.Stream, open, closePos int) []Arg {
	var args []Arg
	depth := 0
	segStart := open + 1
	flush := func(end int) {
		args = append(args, makeArg(s, segStart, end))
		segStart = end + 1
	}

	for i := open + 1; i < closePos; i++ {
		t, _ := s.At(i)
		switch {
		case token.IsOpen(t.Kind):
			depth++
		case token.IsClose(t.Kind):
			depth--
		case t.Kind == token.Comma && depth == 0:
			flush(i)
		}
	}

	last := makeArg(s, segStart, closePos)
	if len(args) == 0 && last.Start == last.End {
		// f() passes nothing.
		return nil
	}
	if last.Start == last.End {
		// Trailing comma: the empty tail is not an argument.
		return args
	}
	return append(args, last)
}

// makeArg trims a raw segment to its meaningful extent and detects the
// name: prefix of a named argument.
func makeArg(s *token.Stream, start, end int) Arg {
	first, ok := s.FindNext(token.Meaningful, start, end)
	if !ok {
		return Arg{Start: start, End: start}
	}

	arg := Arg{Start: first.Index, End: end}
	if first.Kind == token.Name {
		after, ok := s.FindNext(token.Meaningful, first.Index+1, end)
		if ok && after.Kind == token.Colon {
			arg.Name = first.Text
		}
	}
	return arg
}
