package token

import (
	"context"
	"fmt"

	phpforest "github.com/alexaandru/go-sitter-forest/php"
	sitter "github.com/alexaandru/go-tree-sitter-bare"
)

// TokenizePHP runs the tree-sitter PHP grammar over source and flattens the
// concrete leaves of the parse tree into a token stream, in source order.
// Whitespace is dropped by the grammar itself; comments survive as trivia.
func TokenizePHP(source []byte) (*Stream, error) {
	parser := sitter.NewParser()
	lang := sitter.NewLanguage(phpforest.GetLanguage())
	if !parser.SetLanguage(lang) {
		return nil, fmt.Errorf("could not load php grammar")
	}

	tree, err := parser.ParseString(context.Background(), nil, source)
	if err != nil {
		return nil, fmt.Errorf("could not parse source: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.IsNull() {
		return NewStream(nil), nil
	}

	var tokens []Token
	var walk func(n sitter.Node)
	walk = func(n sitter.Node) {
		count := n.ChildCount()
		if count == 0 {
			text := n.Content(source)
			if text == "" {
				return
			}
			start := n.StartPoint()
			tokens = append(tokens, Token{
				Kind:      classify(n.Type(), text),
				Text:      text,
				StartByte: uint32(n.StartByte()),
				Line:      int(start.Row) + 1,
				Col:       int(start.Column),
			})
			return
		}
		for i := uint32(0); i < count; i++ {
			walk(n.Child(i))
		}
	}
	walk(root)

	return NewStream(tokens), nil
}

func classify(nodeType, text string) Kind {
	switch nodeType {
	case "comment":
		return Comment
	case "name":
		return Name
	case "integer", "float":
		return Number
	case "string_content", "escape_sequence", "heredoc_start", "heredoc_end", "'", "\"":
		return StringPiece
	}

	switch text {
	case "(":
		return OpenParen
	case ")":
		return CloseParen
	case "[":
		return OpenBracket
	case "]":
		return CloseBracket
	case "{":
		return OpenBrace
	case "}":
		return CloseBrace
	case ",":
		return Comma
	case ":":
		return Colon
	case "::":
		return DoubleColon
	case "->":
		return Arrow
	case "?->":
		return NullsafeArrow
	case "\\":
		return NsSeparator
	case "$":
		return Dollar
	case "function", "fn":
		return KeywordFunction
	case "const":
		return KeywordConst
	case "new":
		return KeywordNew
	}

	return Other
}
