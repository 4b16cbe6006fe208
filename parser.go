package ini

import "fmt"

// Parser drives the lexer under a Flavour to build a Configuration tree,
// attaching comments to the owner that follows them and enforcing the
// structural rules of spec.md §4.4 (unnamed-section policy, comment
// binding through blank lines, merging of repeated sections, and
// last-write-wins for repeated options).
type Parser struct {
	Flavour Flavour
}

// NewParser returns a Parser for the given Flavour.
func NewParser(f Flavour) *Parser {
	return &Parser{Flavour: f}
}

// Parse reads data and returns the Configuration it describes, or a
// *ParseError. On error the in-progress Configuration is discarded, per
// spec.md §7: partial state is never returned.
func (p *Parser) Parse(data []byte) (*Configuration, error) {
	dp := &docParser{
		lx:  newLexer(data, p.Flavour),
		cfg: NewConfiguration(),
		fl:  p.Flavour,
	}
	if err := dp.run(); err != nil {
		return nil, err
	}
	return dp.cfg, nil
}

// ParseString is a convenience wrapper around Parse for in-memory text.
func ParseString(s string, f Flavour) (*Configuration, error) {
	return NewParser(f).Parse([]byte(s))
}

type docParser struct {
	lx             *lexer
	cfg            *Configuration
	fl             Flavour
	commentBuf     []string
	currentSection *Section // nil until the first section header is seen
}

func (dp *docParser) errorAt(pos Position, format string, args ...any) *ParseError {
	return &ParseError{
		Message:  fmt.Sprintf(format, args...),
		Position: pos,
		Excerpt:  dp.lx.c.lineExcerpt(),
	}
}

func (dp *docParser) run() error {
	for {
		tok, err := dp.lx.next()
		if err != nil {
			return err
		}

		switch tok.kind {
		case tokEndOfFile:
			dp.cfg.TrailingComment = dp.commentBuf
			return nil

		case tokEndOfLine:
			if len(dp.commentBuf) > 0 {
				dp.commentBuf = append(dp.commentBuf, "")
			}

		case tokComment:
			dp.commentBuf = append(dp.commentBuf, tok.text)
			nxt, err := dp.lx.next()
			if err != nil {
				return err
			}
			if nxt.kind == tokEndOfFile {
				dp.cfg.TrailingComment = dp.commentBuf
				return nil
			}
			// nxt.kind == tokEndOfLine: loop back around.

		case tokSectionHeader:
			done, err := dp.handleSectionHeader(tok)
			if err != nil {
				return err
			}
			if done {
				return nil
			}

		case tokKey:
			done, err := dp.handleEntry(tok)
			if err != nil {
				return err
			}
			if done {
				return nil
			}
		}
	}
}

// handleSectionHeader consumes the section header's own optional inline
// comment and the newline/EOF that follows it. It reports done=true when
// the file ends on the section header's own line.
func (dp *docParser) handleSectionHeader(tok token) (done bool, err error) {
	section := dp.cfg.EnsureSection(tok.text)
	if len(dp.commentBuf) > 0 {
		section.LeadingComment = dp.commentBuf
	}
	dp.commentBuf = nil
	dp.currentSection = section

	nxt, err := dp.lx.next()
	if err != nil {
		return false, err
	}
	if nxt.kind == tokComment {
		section.InlineComment = nxt.text
		nxt, err = dp.lx.next()
		if err != nil {
			return false, err
		}
	}
	return nxt.kind == tokEndOfFile, nil
}

// handleEntry consumes the separator, value, and optional inline comment
// of a key/value line, then stores the resulting Option. It reports
// done=true when the file ends on the entry's own line.
func (dp *docParser) handleEntry(tok token) (done bool, err error) {
	if dp.currentSection == nil {
		if !dp.fl.AllowUnnamedSection {
			return false, dp.errorAt(tok.pos, "Unnamed section is not allowed")
		}
		dp.currentSection = dp.cfg.Unnamed
	}

	leadingComment := dp.commentBuf
	dp.commentBuf = nil

	if _, err := dp.lx.next(); err != nil { // Separator token, unused beyond its presence.
		return false, err
	}

	valTok, err := dp.lx.next()
	if err != nil {
		return false, err
	}

	opt := &Option{
		Key:            tok.text,
		Value:          valTok.text,
		LeadingComment: leadingComment,
		HasStyle:       true,
		Style:          valTok.kind.style(),
	}

	nxt, err := dp.lx.next()
	if err != nil {
		return false, err
	}
	if nxt.kind == tokComment {
		opt.InlineComment = nxt.text
		nxt, err = dp.lx.next()
		if err != nil {
			return false, err
		}
	}

	dp.currentSection.SetOption(opt)

	return nxt.kind == tokEndOfFile, nil
}
