// Package token exposes an immutable stream of PHP lexical tokens with the
// lookups the analysis layers need: previous/next meaningful token, token at
// position, and matching-bracket resolution. The stream is an adapter over an
// externally produced token sequence; TokenizePHP bridges the tree-sitter PHP
// grammar into it.
package token

// Kind classifies a token just enough for call-site analysis. Anything the
// engine never branches on collapses into Other.
type Kind int

const (
	Invalid Kind = iota

	Name
	Number
	StringPiece
	Comment

	OpenParen
	CloseParen
	OpenBracket
	CloseBracket
	OpenBrace
	CloseBrace

	Comma
	Colon
	DoubleColon
	Arrow
	NullsafeArrow
	NsSeparator
	Dollar

	KeywordFunction
	KeywordConst
	KeywordNew

	Other

	numKinds
)

func (k Kind) String() string {
	kindStrings := [numKinds]string{
		Invalid:         "invalid",
		Name:            "name",
		Number:          "number",
		StringPiece:     "string",
		Comment:         "comment",
		OpenParen:       "(",
		CloseParen:      ")",
		OpenBracket:     "[",
		CloseBracket:    "]",
		OpenBrace:       "{",
		CloseBrace:      "}",
		Comma:           ",",
		Colon:           ":",
		DoubleColon:     "::",
		Arrow:           "->",
		NullsafeArrow:   "?->",
		NsSeparator:     "\\",
		Dollar:          "$",
		KeywordFunction: "function",
		KeywordConst:    "const",
		KeywordNew:      "new",
		Other:           "other",
	}
	if k < 0 || k >= numKinds {
		return kindStrings[Invalid]
	}
	return kindStrings[k]
}

// Token is a single lexical unit. Index is the token's position in its
// stream; Line is 1-based and Col is 0-based, matching editor conventions.
type Token struct {
	Kind      Kind
	Text      string
	Index     int
	StartByte uint32
	Line      int
	Col       int
}

// Meaningful reports whether a token takes part in syntax. Comments are the
// only trivia the tokenizer surfaces; whitespace never reaches the stream.
func Meaningful(t Token) bool {
	return t.Kind != Comment
}

// IsOpen reports whether the token opens a bracket pair.
func IsOpen(k Kind) bool {
	switch k {
	case OpenParen, OpenBracket, OpenBrace:
		return true
	}
	return false
}

// IsClose reports whether the token closes a bracket pair.
func IsClose(k Kind) bool {
	switch k {
	case CloseParen, CloseBracket, CloseBrace:
		return true
	}
	return false
}

// CloserFor returns the closing kind paired with an opening kind.
func CloserFor(k Kind) Kind {
	switch k {
	case OpenParen:
		return CloseParen
	case OpenBracket:
		return CloseBracket
	case OpenBrace:
		return CloseBrace
	}
	return Invalid
}
