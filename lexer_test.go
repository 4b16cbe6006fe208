package ini

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func lexAll(t *testing.T, src string) []token {
	t.Helper()
	lx := newLexer([]byte(src), DefaultFlavour())
	var toks []token
	for {
		tok, err := lx.next()
		require.NoError(t, err)
		toks = append(toks, tok)
		if tok.kind == tokEndOfFile {
			return toks
		}
	}
}

func TestLexerSimpleEntry(t *testing.T) {
	toks := lexAll(t, "key = value\n")
	require.Len(t, toks, 5)
	require.Equal(t, tokKey, toks[0].kind)
	require.Equal(t, "key", toks[0].text)
	require.Equal(t, tokSeparator, toks[1].kind)
	require.Equal(t, tokUnquotedValue, toks[2].kind)
	require.Equal(t, "value", toks[2].text)
	require.Equal(t, tokEndOfLine, toks[3].kind)
	require.Equal(t, tokEndOfFile, toks[4].kind)
}

func TestLexerQuotedValueWithEscapes(t *testing.T) {
	toks := lexAll(t, `key = "a\nb\"c"`+"\n")
	require.Equal(t, tokQuotedValue, toks[2].kind)
	require.Equal(t, "a\nb\"c", toks[2].text)
}

func TestLexerTripleQuotedValueSpansLines(t *testing.T) {
	toks := lexAll(t, "key = \"\"\"line1\nline2\"\"\"\n")
	require.Equal(t, tokTripleQuotedValue, toks[2].kind)
	require.Equal(t, "line1\nline2", toks[2].text)
}

func TestLexerSectionHeader(t *testing.T) {
	toks := lexAll(t, "[server]\n")
	require.Equal(t, tokSectionHeader, toks[0].kind)
	require.Equal(t, "server", toks[0].text)
}

func TestLexerInlineComment(t *testing.T) {
	toks := lexAll(t, "key = value # trailing note\n")
	require.Equal(t, tokUnquotedValue, toks[2].kind)
	require.Equal(t, "value", toks[2].text)
	require.Equal(t, tokComment, toks[3].kind)
	require.Equal(t, "trailing note", toks[3].text)
}

func TestLexerStandaloneComment(t *testing.T) {
	toks := lexAll(t, "# a comment\n")
	require.Equal(t, tokComment, toks[0].kind)
	require.Equal(t, "a comment", toks[0].text)
}

func TestLexerUnterminatedQuotedValueReportsError(t *testing.T) {
	lx := newLexer([]byte(`key = "unterminated`+"\n"), DefaultFlavour())
	_, err := lx.next() // key
	require.NoError(t, err)
	_, err = lx.next() // separator
	require.NoError(t, err)
	_, err = lx.next() // value -> error
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	require.Contains(t, perr.Message, "closing quoted string")
}

func TestLexerMissingClosingBracketReportsError(t *testing.T) {
	lx := newLexer([]byte("[section\n"), DefaultFlavour())
	_, err := lx.next()
	require.Error(t, err)
}

func TestLexerEscapedCRLFInQuotedValue(t *testing.T) {
	toks := lexAll(t, "key = \"a\\\r\nb\"\n")
	require.Equal(t, tokQuotedValue, toks[2].kind)
	require.Equal(t, "ab", toks[2].text, "an escaped line continuation contributes no characters")
}

func TestLexerUnquotedValueRejectedWhenFlavourForbidsIt(t *testing.T) {
	f := DefaultFlavour()
	f.AllowUnquotedValues = false

	lx := newLexer([]byte("key = bare\n"), f)
	_, err := lx.next() // key
	require.NoError(t, err)
	_, err = lx.next() // separator
	require.NoError(t, err)
	_, err = lx.next() // value -> error
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	require.Contains(t, perr.Message, `Expected """`)
}

func TestLexerQuotedValueStillAcceptedWhenUnquotedValuesForbidden(t *testing.T) {
	f := DefaultFlavour()
	f.AllowUnquotedValues = false

	lx := newLexer([]byte(`key = "quoted"`+"\n"), f)
	_, err := lx.next() // key
	require.NoError(t, err)
	_, err = lx.next() // separator
	require.NoError(t, err)
	valueTok, err := lx.next()
	require.NoError(t, err)
	require.Equal(t, tokQuotedValue, valueTok.kind)
	require.Equal(t, "quoted", valueTok.text)
}

func TestLexerTrimUsesFlavourWhitespaceNotUnicodeWhitespace(t *testing.T) {
	f := DefaultFlavour()
	f.WhitespaceCharacters = []byte{' '}

	lx := newLexer([]byte("key \t= \tvalue\t\n"), f)
	keyTok, err := lx.next()
	require.NoError(t, err)
	require.Equal(t, "key \t", keyTok.text, "tab is not in WhitespaceCharacters, so it is not trimmed")

	_, err = lx.next() // separator
	require.NoError(t, err)

	valueTok, err := lx.next()
	require.NoError(t, err)
	require.Equal(t, "\tvalue\t", valueTok.text)
}
