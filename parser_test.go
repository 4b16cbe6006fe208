package ini

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBasicDocument(t *testing.T) {
	src := "[server]\nhost = localhost\nport = 8080\n"
	cfg, err := ParseString(src, DefaultFlavour())
	require.NoError(t, err)

	section, err := cfg.Section("server")
	require.NoError(t, err)

	host, err := section.Option("host")
	require.NoError(t, err)
	assert.Equal(t, "localhost", host.Value)

	port, err := section.Option("port")
	require.NoError(t, err)
	assert.Equal(t, "8080", port.Value)
}

func TestParseLeadingCommentAttachesToFollowingOption(t *testing.T) {
	src := "[server]\n# the hostname\nhost = localhost\n"
	cfg, err := ParseString(src, DefaultFlavour())
	require.NoError(t, err)

	section, err := cfg.Section("server")
	require.NoError(t, err)
	host, err := section.Option("host")
	require.NoError(t, err)
	assert.Equal(t, []string{"the hostname"}, host.LeadingComment)
}

func TestParseBlankLineInsideCommentBlockIsPreserved(t *testing.T) {
	src := "[server]\n# first\n\n# second\nhost = localhost\n"
	cfg, err := ParseString(src, DefaultFlavour())
	require.NoError(t, err)
	section, err := cfg.Section("server")
	require.NoError(t, err)
	host, err := section.Option("host")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "", "second"}, host.LeadingComment)
}

func TestParseBlankLineBeforeAnyCommentIsNotRecorded(t *testing.T) {
	src := "[server]\n\nhost = localhost\n"
	cfg, err := ParseString(src, DefaultFlavour())
	require.NoError(t, err)
	section, err := cfg.Section("server")
	require.NoError(t, err)
	host, err := section.Option("host")
	require.NoError(t, err)
	assert.Empty(t, host.LeadingComment)
}

func TestParseInlineCommentOnEntry(t *testing.T) {
	src := "[server]\nhost = localhost # the hostname\n"
	cfg, err := ParseString(src, DefaultFlavour())
	require.NoError(t, err)
	section, err := cfg.Section("server")
	require.NoError(t, err)
	host, err := section.Option("host")
	require.NoError(t, err)
	assert.Equal(t, "the hostname", host.InlineComment)
}

func TestParseInlineCommentOnSectionHeader(t *testing.T) {
	src := "[server] # main server\nhost = localhost\n"
	cfg, err := ParseString(src, DefaultFlavour())
	require.NoError(t, err)
	section, err := cfg.Section("server")
	require.NoError(t, err)
	assert.Equal(t, "main server", section.InlineComment)
}

func TestParseUnnamedSectionEntries(t *testing.T) {
	src := "debug = true\n[server]\nhost = localhost\n"
	cfg, err := ParseString(src, DefaultFlavour())
	require.NoError(t, err)
	value, err := cfg.GetValue("debug", "")
	require.NoError(t, err)
	assert.Equal(t, "true", value)
}

func TestParseUnnamedSectionForbiddenReportsError(t *testing.T) {
	f := DefaultFlavour()
	f.AllowUnnamedSection = false
	_, err := ParseString("debug = true\n", f)
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
}

func TestParseLastWriteWinsOnDuplicateKey(t *testing.T) {
	src := "[server]\nhost = first\nhost = second\n"
	cfg, err := ParseString(src, DefaultFlavour())
	require.NoError(t, err)
	value, err := cfg.GetValue("host", "server")
	require.NoError(t, err)
	assert.Equal(t, "second", value)
}

func TestParseDuplicateSectionMergesEntries(t *testing.T) {
	src := "[server]\nhost = localhost\n[server]\nport = 8080\n"
	cfg, err := ParseString(src, DefaultFlavour())
	require.NoError(t, err)

	assert.Len(t, cfg.Sections(), 1)
	section, err := cfg.Section("server")
	require.NoError(t, err)
	assert.True(t, section.Contains("host"))
	assert.True(t, section.Contains("port"))
}

func TestParseTrailingCommentAtEOF(t *testing.T) {
	src := "[server]\nhost = localhost\n# eof note\n"
	cfg, err := ParseString(src, DefaultFlavour())
	require.NoError(t, err)
	assert.Equal(t, []string{"eof note"}, cfg.TrailingComment)
}

func TestParseQuotedAndTripleQuotedValues(t *testing.T) {
	src := "[s]\na = \"line one\\nline two\"\nb = \"\"\"raw\nvalue\"\"\"\n"
	cfg, err := ParseString(src, DefaultFlavour())
	require.NoError(t, err)
	section, err := cfg.Section("s")
	require.NoError(t, err)

	a, err := section.Option("a")
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", a.Value)
	assert.Equal(t, StyleQuoted, a.Style)

	b, err := section.Option("b")
	require.NoError(t, err)
	assert.Equal(t, "raw\nvalue", b.Value)
	assert.Equal(t, StyleTripleQuoted, b.Style)
}

func TestParseMalformedSectionHeaderReportsPosition(t *testing.T) {
	_, err := ParseString("[server\nhost = localhost\n", DefaultFlavour())
	require.Error(t, err)
	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, 1, perr.Position.Line)
}
