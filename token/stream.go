package token

// Stream is a read-only view over a token sequence. All lookups are pure;
// a Stream is safe to share across goroutines once built.
type Stream struct {
	tokens []Token
}

// NewStream wraps tokens in a stream, assigning each token its index. The
// slice is not copied; callers hand over ownership.
func NewStream(tokens []Token) *Stream {
	for i := range tokens {
		tokens[i].Index = i
	}
	return &Stream{tokens: tokens}
}

// Len returns the number of tokens in the stream.
func (s *Stream) Len() int {
	return len(s.tokens)
}

// At returns the token at pos. The second result is false when pos lies
// outside the stream.
func (s *Stream) At(pos int) (Token, bool) {
	if pos < 0 || pos >= len(s.tokens) {
		return Token{}, false
	}
	return s.tokens[pos], true
}

// Tokens returns the backing slice. Callers must not mutate it.
func (s *Stream) Tokens() []Token {
	return s.tokens
}

// FindPrevious scans backwards from pos (inclusive) for the first token
// matching pred. It returns false when no match exists before stream start.
func (s *Stream) FindPrevious(pred func(Token) bool, pos int) (Token, bool) {
	if pos >= len(s.tokens) {
		pos = len(s.tokens) - 1
	}
	for i := pos; i >= 0; i-- {
		if pred(s.tokens[i]) {
			return s.tokens[i], true
		}
	}
	return Token{}, false
}

// FindNext scans forwards from pos (inclusive) for the first token matching
// pred. A non-negative stop bounds the scan exclusively; stop < 0 scans to
// the end of the stream.
func (s *Stream) FindNext(pred func(Token) bool, pos, stop int) (Token, bool) {
	if pos < 0 {
		pos = 0
	}
	end := len(s.tokens)
	if stop >= 0 && stop < end {
		end = stop
	}
	for i := pos; i < end; i++ {
		if pred(s.tokens[i]) {
			return s.tokens[i], true
		}
	}
	return Token{}, false
}

// MatchingClose returns the index of the bracket closing the opener at open,
// honoring nesting of all bracket kinds. It returns false when open does not
// hold an opening bracket or the stream ends before balance is restored.
func (s *Stream) MatchingClose(open int) (int, bool) {
	opener, ok := s.At(open)
	if !ok || !IsOpen(opener.Kind) {
		return 0, false
	}
	depth := 0
	for i := open; i < len(s.tokens); i++ {
		switch {
		case IsOpen(s.tokens[i].Kind):
			depth++
		case IsClose(s.tokens[i].Kind):
			depth--
			if depth == 0 {
				if s.tokens[i].Kind != CloserFor(opener.Kind) {
					return 0, false
				}
				return i, true
			}
			if depth < 0 {
				return 0, false
			}
		}
	}
	return 0, false
}
