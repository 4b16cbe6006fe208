package ini

import "strings"

// lexerState tracks what kind of token is expected next within the
// current logical line. The lexer is otherwise stateless: all position
// bookkeeping lives on the embedded cursor.
type lexerState int

const (
	lexLineStart lexerState = iota
	lexAfterKey
	lexAfterSeparator
	lexAfterValue
	lexAfterSectionHeader
	lexExpectEOL
	lexDone
)

// lexer turns Flavour-governed INI source into a stream of tokens. It
// is line-oriented except that quoted and triple-quoted values may span
// multiple physical lines.
type lexer struct {
	c       *cursor
	flavour Flavour
	state   lexerState
}

func newLexer(data []byte, f Flavour) *lexer {
	return &lexer{c: newCursor(data), flavour: f, state: lexLineStart}
}

// skipWhitespace advances over interline whitespace characters (not
// newlines).
func (l *lexer) skipWhitespace() {
	for {
		r, _, ok := l.c.peek()
		if !ok || !l.flavour.isWhitespace(r) {
			return
		}
		l.c.advance()
	}
}

func describeRune(r rune, ok bool) string {
	if !ok {
		return "EOF"
	}
	if r == '\n' {
		return "LF"
	}
	return "\"" + string(r) + "\""
}

// next returns the next token, or a *ParseError.
func (l *lexer) next() (token, error) {
	switch l.state {
	case lexLineStart:
		return l.lexLineStartToken()
	case lexAfterKey:
		return l.lexSeparator()
	case lexAfterSeparator:
		return l.lexValue()
	case lexAfterValue, lexAfterSectionHeader:
		return l.lexAfterValueOrHeader()
	case lexExpectEOL:
		return l.lexExpectEOL()
	default:
		return token{kind: tokEndOfFile, pos: l.c.position()}, nil
	}
}

func (l *lexer) lexLineStartToken() (token, error) {
	l.skipWhitespace()

	r, _, ok := l.c.peek()
	if !ok {
		l.state = lexDone
		return token{kind: tokEndOfFile, pos: l.c.position()}, nil
	}

	if r == '\n' || r == '\r' {
		pos := l.c.position()
		l.c.advance()
		return token{kind: tokEndOfLine, pos: pos}, nil
	}

	if l.flavour.isCommentMarker(r) {
		return l.lexComment()
	}

	if r == '[' {
		return l.lexSectionHeader()
	}

	return l.lexKey()
}

func (l *lexer) lexComment() (token, error) {
	pos := l.c.position()
	l.c.advance() // consume the marker itself
	var b strings.Builder
	for {
		r, _, ok := l.c.peek()
		if !ok || r == '\n' || r == '\r' {
			break
		}
		b.WriteRune(r)
		l.c.advance()
	}
	text := strings.TrimPrefix(b.String(), " ")
	l.state = lexExpectEOL
	return token{kind: tokComment, text: text, pos: pos}, nil
}

func (l *lexer) lexExpectEOL() (token, error) {
	r, _, ok := l.c.peek()
	if !ok {
		l.state = lexDone
		return token{kind: tokEndOfFile, pos: l.c.position()}, nil
	}
	pos := l.c.position()
	l.c.advance()
	l.state = lexLineStart
	return token{kind: tokEndOfLine, pos: pos}, nil
}

func (l *lexer) lexSectionHeader() (token, error) {
	pos := l.c.position()
	l.c.advance() // consume '['

	var b strings.Builder
	for {
		r, _, ok := l.c.peek()
		if !ok {
			return token{}, newParseError(l.c, `Expected "]", but encountered %s`, describeRune(0, false))
		}
		if r == '\n' || r == '\r' {
			return token{}, newParseError(l.c, `Expected "]", but encountered %s`, describeRune('\n', true))
		}
		if r == ']' {
			l.c.advance()
			break
		}
		b.WriteRune(r)
		l.c.advance()
	}

	l.state = lexAfterSectionHeader
	return token{kind: tokSectionHeader, text: l.flavour.trim(b.String()), pos: pos}, nil
}

func (l *lexer) lexAfterValueOrHeader() (token, error) {
	wasHeader := l.state == lexAfterSectionHeader
	l.skipWhitespace()

	r, _, ok := l.c.peek()
	if !ok {
		l.state = lexDone
		return token{kind: tokEndOfFile, pos: l.c.position()}, nil
	}

	if r == '\n' || r == '\r' {
		pos := l.c.position()
		l.c.advance()
		l.state = lexLineStart
		return token{kind: tokEndOfLine, pos: pos}, nil
	}

	if l.flavour.isCommentMarker(r) {
		return l.lexComment()
	}

	if wasHeader {
		return token{}, newParseError(l.c, "Expected end of line after section header")
	}

	// Trailing junk after a quoted/triple-quoted value's closing
	// delimiter.
	return token{}, newParseError(l.c, "Expected end of line after value")
}

func (l *lexer) lexKey() (token, error) {
	pos := l.c.position()
	var b strings.Builder
	for {
		r, _, ok := l.c.peek()
		if !ok || r == '\n' || r == '\r' {
			return token{}, newParseError(l.c, `Expected %s, but encountered %s`, quoteSep(l.flavour), describeRune(0, ok))
		}
		if l.flavour.isSeparator(r) {
			break
		}
		if byte(r) == l.flavour.QuoteCharacter || l.flavour.isCommentMarker(r) {
			return token{}, newParseError(l.c, `Expected %s, but encountered %s`, quoteSep(l.flavour), describeRune(r, true))
		}
		b.WriteRune(r)
		l.c.advance()
	}
	l.state = lexAfterKey
	return token{kind: tokKey, text: l.flavour.trim(b.String()), pos: pos}, nil
}

func quoteSep(f Flavour) string {
	if len(f.KeyValueSeparators) == 0 {
		return `"="`
	}
	return "\"" + string(f.KeyValueSeparators[0]) + "\""
}

func (l *lexer) lexSeparator() (token, error) {
	pos := l.c.position()
	r, _, _ := l.c.peek()
	l.c.advance()
	l.state = lexAfterSeparator
	return token{kind: tokSeparator, text: string(r), pos: pos}, nil
}

func (l *lexer) lexValue() (token, error) {
	l.skipWhitespace()

	pos := l.c.position()
	r, _, ok := l.c.peek()

	quote := rune(l.flavour.QuoteCharacter)

	if ok && r == quote {
		next0, _ := l.c.peekAt(1)
		next1, _ := l.c.peekAt(2)
		if next0 == quote && next1 == quote {
			return l.lexTripleQuoted(pos)
		}
		return l.lexQuoted(pos)
	}

	if !l.flavour.AllowUnquotedValues {
		return token{}, newParseError(l.c, `Expected %s, but encountered %s`, quoteQuote(l.flavour), describeRune(r, ok))
	}

	return l.lexUnquoted(pos)
}

func quoteQuote(f Flavour) string {
	return "\"" + string(rune(f.QuoteCharacter)) + "\""
}

func (l *lexer) lexQuoted(pos Position) (token, error) {
	l.c.advance() // opening quote
	quote := rune(l.flavour.QuoteCharacter)

	var b strings.Builder
	for {
		r, _, ok := l.c.peek()
		if !ok {
			return token{}, newParseError(l.c, "EOF encountered before closing quoted string")
		}
		if r == '\n' || r == '\r' {
			return token{}, newParseError(l.c, "New line encountered before closing quoted string")
		}
		if r == quote {
			l.c.advance()
			break
		}
		if byte(r) == l.flavour.EscapeCharacter {
			l.c.advance()
			suffix, _, sok := l.c.peek()
			if !sok {
				return token{}, newParseError(l.c, "EOF encountered before closing quoted string")
			}
			// An escaped CRLF is the same logical escape as an escaped
			// LF: the pair is consumed as one unit by cursor.advance,
			// so the lookup normalizes \r to \n.
			lookup := suffix
			if suffix == '\r' {
				lookup = '\n'
			}
			replacement, known := l.flavour.escapeReplacement(lookup)
			if !known {
				return token{}, newParseError(l.c, "Unknown escape sequence")
			}
			b.WriteString(replacement)
			l.c.advance()
			continue
		}
		b.WriteRune(r)
		l.c.advance()
	}

	l.state = lexAfterValue
	return token{kind: tokQuotedValue, text: b.String(), pos: pos}, nil
}

func (l *lexer) lexTripleQuoted(pos Position) (token, error) {
	l.c.advance()
	l.c.advance()
	l.c.advance() // opening """
	quote := rune(l.flavour.QuoteCharacter)

	var b strings.Builder
	for {
		r0, ok0 := l.c.peekAt(0)
		if !ok0 {
			return token{}, newParseError(l.c, "EOF encountered before closing triple quoted string")
		}
		r1, ok1 := l.c.peekAt(1)
		r2, ok2 := l.c.peekAt(2)
		if ok0 && ok1 && ok2 && r0 == quote && r1 == quote && r2 == quote {
			l.c.advance()
			l.c.advance()
			l.c.advance()
			break
		}
		b.WriteRune(r0)
		l.c.advance()
	}

	l.state = lexAfterValue
	return token{kind: tokTripleQuotedValue, text: b.String(), pos: pos}, nil
}

func (l *lexer) lexUnquoted(pos Position) (token, error) {
	var b strings.Builder
	for {
		r, _, ok := l.c.peek()
		if !ok || r == '\n' || r == '\r' {
			break
		}
		if l.flavour.AllowInlineComments && l.flavour.isCommentMarker(r) {
			break
		}
		b.WriteRune(r)
		l.c.advance()
	}

	l.state = lexAfterValue
	return token{kind: tokUnquotedValue, text: l.flavour.trim(b.String()), pos: pos}, nil
}
