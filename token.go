package ini

// tokenKind enumerates the logical tokens produced by the Lexer, per
// spec.md §4.3.
type tokenKind int

const (
	tokSectionHeader tokenKind = iota
	tokKey
	tokSeparator
	tokUnquotedValue
	tokQuotedValue
	tokTripleQuotedValue
	tokComment
	tokEndOfLine
	tokEndOfFile
)

func (k tokenKind) style() PresentationStyle {
	switch k {
	case tokQuotedValue:
		return StyleQuoted
	case tokTripleQuotedValue:
		return StyleTripleQuoted
	default:
		return StyleUnquoted
	}
}

// token is one lexical unit with its source position attached.
type token struct {
	kind tokenKind
	text string
	pos  Position
}
