package ini

import "strings"

// EscapeSequence pairs an escape-character suffix with the literal text
// it expands to inside a quoted value. Sequences are kept as an ordered
// slice rather than a map so that renderer-side escaping (which needs
// the reverse lookup, replacement -> suffix) is deterministic: the
// first entry whose Replacement matches wins.
type EscapeSequence struct {
	Suffix      byte
	Replacement string
}

// Flavour is a value object enumerating the tokenization and rendering
// parameters of one INI dialect. It is shared, unmodified, between the
// lexer/parser (read path) and the renderer (write path).
type Flavour struct {
	// AllowUnquotedValues, when false, requires every value to be quoted
	// or triple-quoted: an unquoted value is a parse error, and the
	// renderer always emits quoted or triple-quoted values.
	AllowUnquotedValues bool
	// AllowUnnamedSection, when false, forbids options before any
	// section header and forbids rendering a non-empty unnamed section.
	AllowUnnamedSection bool
	// AllowInlineComments, when false, treats a comment marker inside an
	// unquoted value as part of the value instead of opening a comment.
	// A marker after a quoted value's closing quote, or after a section
	// header, still opens an inline comment.
	AllowInlineComments bool
	// QuoteCharacter opens and closes quoted and triple-quoted values.
	QuoteCharacter byte
	// KeyValueSeparators is the ordered set of characters recognized as
	// a key/value separator; the first one encountered wins.
	KeyValueSeparators []byte
	// CommentMarkers is the ordered set of characters that open a
	// comment running to end of line. The first entry is the one the
	// renderer uses to emit new comments.
	CommentMarkers []byte
	// EscapeCharacter introduces an escape sequence inside a quoted
	// value.
	EscapeCharacter byte
	// EscapeSequences maps an escape suffix to its expansion for the
	// read path, and (reversed) an expansion back to its escape suffix
	// for the write path.
	EscapeSequences []EscapeSequence
	// NewLine is the line terminator the renderer emits between logical
	// lines.
	NewLine string
	// WhitespaceCharacters is the set of characters treated as
	// interline whitespace (skipped between tokens, trimmed from bare
	// keys/unquoted values).
	WhitespaceCharacters []byte
}

// DefaultFlavour returns the Flavour described in spec.md §4.1: a single
// "=" separator, "#"/";" comments, double-quote quoting, backslash
// escapes, and LF line endings.
func DefaultFlavour() Flavour {
	return Flavour{
		AllowUnquotedValues: true,
		AllowUnnamedSection: true,
		AllowInlineComments: true,
		QuoteCharacter:      '"',
		KeyValueSeparators:  []byte{'='},
		CommentMarkers:      []byte{'#', ';'},
		EscapeCharacter:     '\\',
		EscapeSequences: []EscapeSequence{
			{Suffix: 'n', Replacement: "\n"},
			{Suffix: 't', Replacement: "\t"},
			{Suffix: '\\', Replacement: "\\"},
			{Suffix: '"', Replacement: "\""},
			{Suffix: '\n', Replacement: ""},
		},
		NewLine:              "\n",
		WhitespaceCharacters: []byte{' ', '\t'},
	}
}

func (f Flavour) isWhitespace(r rune) bool {
	for _, w := range f.WhitespaceCharacters {
		if byte(r) == w && r < 128 {
			return true
		}
	}
	return false
}

func (f Flavour) isCommentMarker(r rune) bool {
	for _, m := range f.CommentMarkers {
		if byte(r) == m && r < 128 {
			return true
		}
	}
	return false
}

func (f Flavour) isSeparator(r rune) bool {
	for _, s := range f.KeyValueSeparators {
		if byte(r) == s && r < 128 {
			return true
		}
	}
	return false
}

// escapeReplacement looks up the expansion for an escape suffix, as
// encountered by the lexer after the escape character.
func (f Flavour) escapeReplacement(suffix rune) (string, bool) {
	if suffix >= 128 {
		return "", false
	}
	for _, seq := range f.EscapeSequences {
		if seq.Suffix == byte(suffix) {
			return seq.Replacement, true
		}
	}
	return "", false
}

// trim removes leading and trailing characters in WhitespaceCharacters,
// the Flavour-aware analogue of strings.TrimSpace used so trimming
// stays consistent with the dialect's own whitespace set rather than
// Unicode's.
func (f Flavour) trim(s string) string {
	return strings.TrimFunc(s, f.isWhitespace)
}

// escapeSuffixFor looks up the escape suffix that reproduces a literal
// character when rendering a quoted value. The first matching entry in
// EscapeSequences wins, so the quote character's own entry (listed
// ahead of anything ambiguous in DefaultFlavour) is always preferred.
func (f Flavour) escapeSuffixFor(ch byte) (byte, bool) {
	for _, seq := range f.EscapeSequences {
		if len(seq.Replacement) == 1 && seq.Replacement[0] == ch {
			return seq.Suffix, true
		}
	}
	return 0, false
}
