package ini

import (
	"io"
	"strings"
)

// RenderError reports a Configuration that cannot be rendered under a
// Flavour, such as a non-empty unnamed section when the Flavour forbids
// one.
type RenderError struct {
	Message string
}

func (e *RenderError) Error() string {
	return e.Message
}

// Renderer serializes a Configuration back to INI text under a Flavour,
// choosing a presentation style per value under Policy.
type Renderer struct {
	Flavour Flavour
	Policy  RenderPolicy
}

// NewRenderer returns a Renderer with the default AlwaysQuoted policy.
func NewRenderer(f Flavour) *Renderer {
	return &Renderer{Flavour: f, Policy: AlwaysQuoted}
}

// Render writes cfg to w under r's Flavour and Policy, in the emission
// order of spec.md §4.6: the unnamed section (if any), then named
// sections in insertion order separated by a blank line, then the
// trailing comment.
func (r *Renderer) Render(cfg *Configuration, w io.Writer) error {
	if !r.Flavour.AllowUnnamedSection && len(cfg.Unnamed.optionOrder) > 0 {
		return &RenderError{Message: "unnamed section is not allowed by this Flavour but has options"}
	}

	bw := &errWriter{w: w}
	wrote := false

	if len(cfg.Unnamed.LeadingComment) > 0 || len(cfg.Unnamed.optionOrder) > 0 {
		r.writeComment(bw, cfg.Unnamed.LeadingComment)
		if err := r.writeOptions(bw, cfg.Unnamed.Options()); err != nil {
			return err
		}
		wrote = true
	}

	for _, section := range cfg.Sections() {
		if wrote {
			bw.writeString(r.Flavour.NewLine)
		}
		r.writeComment(bw, section.LeadingComment)
		bw.writeString("[")
		bw.writeString(section.Name)
		bw.writeString("]")
		if section.InlineComment != "" {
			r.writeInlineComment(bw, section.InlineComment)
		}
		bw.writeString(r.Flavour.NewLine)
		if err := r.writeOptions(bw, section.Options()); err != nil {
			return err
		}
		wrote = true
	}

	r.writeComment(bw, cfg.TrailingComment)

	return bw.err
}

// RenderString renders cfg under f with the AlwaysQuoted policy and
// returns the result as a string.
func RenderString(cfg *Configuration, f Flavour) (string, error) {
	var b strings.Builder
	if err := NewRenderer(f).Render(cfg, &b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (r *Renderer) writeComment(w *errWriter, lines []string) {
	if len(lines) == 0 {
		return
	}
	marker := string(r.Flavour.CommentMarkers[0])
	for _, line := range lines {
		if line == "" {
			w.writeString(r.Flavour.NewLine)
			continue
		}
		w.writeString(marker)
		w.writeString(" ")
		w.writeString(line)
		w.writeString(r.Flavour.NewLine)
	}
}

func (r *Renderer) writeInlineComment(w *errWriter, text string) {
	marker := string(r.Flavour.CommentMarkers[0])
	w.writeString(" ")
	w.writeString(marker)
	w.writeString(" ")
	w.writeString(text)
}

func (r *Renderer) writeOptions(w *errWriter, options []*Option) error {
	sep := string(r.Flavour.KeyValueSeparators[0])
	for _, opt := range options {
		r.writeComment(w, opt.LeadingComment)

		rendered, err := r.renderValue(opt)
		if err != nil {
			return err
		}

		w.writeString(opt.Key)
		w.writeString(sep)
		w.writeString(" ")
		w.writeString(rendered)
		if opt.InlineComment != "" {
			r.writeInlineComment(w, opt.InlineComment)
		}
		w.writeString(r.Flavour.NewLine)
	}
	return w.err
}

// renderValue picks a presentation style for opt.Value under r.Policy and
// returns its rendered text (including any quoting delimiters).
func (r *Renderer) renderValue(opt *Option) (string, error) {
	switch r.Policy {
	case PreferUnquoted:
		return r.renderUnquotedPreferred(opt.Value)
	case PreferSource:
		if !opt.HasStyle {
			return r.renderAlwaysQuoted(opt.Value)
		}
		switch opt.Style {
		case StyleUnquoted:
			if rendered, ok := r.tryUnquoted(opt.Value); ok {
				return rendered, nil
			}
			return r.renderAlwaysQuoted(opt.Value)
		case StyleTripleQuoted:
			if rendered, ok := renderTripleQuoted(r.Flavour, opt.Value); ok {
				return rendered, nil
			}
			return r.renderAlwaysQuoted(opt.Value)
		default: // StyleQuoted
			return r.renderAlwaysQuoted(opt.Value)
		}
	default: // AlwaysQuoted
		return r.renderAlwaysQuoted(opt.Value)
	}
}

func (r *Renderer) renderAlwaysQuoted(value string) (string, error) {
	rendered, ok := renderQuoted(r.Flavour, value)
	if ok {
		return rendered, nil
	}
	// The value has a raw newline this Flavour cannot escape inside a
	// quoted string; fall back to triple-quoted.
	if rendered, ok := renderTripleQuoted(r.Flavour, value); ok {
		return rendered, nil
	}
	// Both forms refuse the value (a newline plus an embedded triple
	// quote): emit it quoted anyway with the newline left raw, which is
	// lossy but preserves everything else.
	return forceRenderQuoted(r.Flavour, value), nil
}

func (r *Renderer) renderUnquotedPreferred(value string) (string, error) {
	if rendered, ok := r.tryUnquoted(value); ok {
		return rendered, nil
	}
	return r.renderAlwaysQuoted(value)
}

func (r *Renderer) tryUnquoted(value string) (string, bool) {
	if !r.Flavour.AllowUnquotedValues || !unquotedSafe(r.Flavour, value) {
		return "", false
	}
	return value, true
}

// unquotedSafe reports whether value round-trips through the unquoted
// grammar unchanged: no leading/trailing interline whitespace (the lexer
// trims it), no embedded newline, no leading quote character, and (when
// the Flavour recognizes inline comments) no comment marker.
func unquotedSafe(f Flavour, value string) bool {
	if value == "" {
		return true
	}
	if strings.ContainsAny(value, "\n\r") {
		return false
	}
	first := value[0]
	last := value[len(value)-1]
	for _, w := range f.WhitespaceCharacters {
		if first == w || last == w {
			return false
		}
	}
	if first == f.QuoteCharacter {
		return false
	}
	if f.AllowInlineComments {
		for _, m := range f.CommentMarkers {
			if strings.IndexByte(value, m) >= 0 {
				return false
			}
		}
	}
	return true
}

// renderQuoted escapes value for a single-quoted form. It reports
// ok=false when value contains a raw newline the Flavour has no escape
// sequence for, signalling the caller to fall back to triple-quoted.
func renderQuoted(f Flavour, value string) (string, bool) {
	for i := 0; i < len(value); i++ {
		if value[i] == '\n' || value[i] == '\r' {
			if _, ok := f.escapeSuffixFor(value[i]); !ok {
				return "", false
			}
		}
	}
	return forceRenderQuoted(f, value), true
}

// forceRenderQuoted escapes what it can and leaves unescapable bytes raw.
func forceRenderQuoted(f Flavour, value string) string {
	var b strings.Builder
	b.WriteByte(f.QuoteCharacter)
	for i := 0; i < len(value); i++ {
		ch := value[i]
		if suffix, ok := f.escapeSuffixFor(ch); ok {
			b.WriteByte(f.EscapeCharacter)
			b.WriteByte(suffix)
			continue
		}
		b.WriteByte(ch)
	}
	b.WriteByte(f.QuoteCharacter)
	return b.String()
}

// renderTripleQuoted wraps value verbatim in triple quote characters. It
// reports ok=false when value contains three consecutive quote
// characters, which would prematurely close the triple-quoted form.
func renderTripleQuoted(f Flavour, value string) (string, bool) {
	triple := strings.Repeat(string(f.QuoteCharacter), 3)
	if strings.Contains(value, triple) {
		return "", false
	}
	var b strings.Builder
	b.WriteString(triple)
	b.WriteString(value)
	b.WriteString(triple)
	return b.String(), true
}

// errWriter collects the first write error so callers can check it once
// at the end of a render pass instead of after every fragment.
type errWriter struct {
	w   io.Writer
	err error
}

func (e *errWriter) writeString(s string) {
	if e.err != nil {
		return
	}
	_, e.err = io.WriteString(e.w, s)
}
