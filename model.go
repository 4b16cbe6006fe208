package ini

import "fmt"

// unnamedSectionName is the key under which the implicit unnamed
// section is addressed.
const unnamedSectionName = ""

// PresentationStyle records how a value was written, so a PreferSource
// render policy can reproduce it. It is a hint populated by the parser;
// options created programmatically carry no style (HasStyle is false),
// and rendering does not record one.
type PresentationStyle int

const (
	// StyleUnquoted marks a value written without surrounding quotes.
	StyleUnquoted PresentationStyle = iota
	// StyleQuoted marks a value written between a single pair of quote
	// characters, with escape sequences.
	StyleQuoted
	// StyleTripleQuoted marks a value written between triple quote
	// characters, verbatim.
	StyleTripleQuoted
)

// LookupError is returned by indexed accessors (Section.Option,
// Configuration.Section) when the named entity does not exist.
type LookupError struct {
	Kind string // "section" or "option"
	Name string
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Name)
}

// Option is a single key/value entry within a Section.
type Option struct {
	Key            string
	Value          string
	LeadingComment []string
	InlineComment  string
	HasStyle       bool
	Style          PresentationStyle
}

// NewOption builds an Option with no recorded presentation style; the
// renderer picks one under its policy.
func NewOption(key, value string) *Option {
	return &Option{Key: key, Value: value}
}

// Section is an ordered collection of Options under one name. The
// unnamed section shares this type with an empty Name.
type Section struct {
	Name           string
	LeadingComment []string
	InlineComment  string

	options     map[string]*Option
	optionOrder []string
}

func newSection(name string) *Section {
	return &Section{
		Name:    name,
		options: make(map[string]*Option),
	}
}

// Option returns the named option, or a *LookupError if it is absent.
func (s *Section) Option(key string) (*Option, error) {
	opt, ok := s.options[key]
	if !ok {
		return nil, &LookupError{Kind: "option", Name: key}
	}
	return opt, nil
}

// SetOption inserts opt, or replaces the value/comments of an existing
// option with the same key in place, preserving its insertion position.
func (s *Section) SetOption(opt *Option) {
	if _, exists := s.options[opt.Key]; !exists {
		s.optionOrder = append(s.optionOrder, opt.Key)
	}
	s.options[opt.Key] = opt
}

// SetValue assigns value to key, creating the option if absent and
// preserving position if present. It returns the resulting Option.
func (s *Section) SetValue(key, value string) *Option {
	if opt, ok := s.options[key]; ok {
		opt.Value = value
		return opt
	}
	opt := NewOption(key, value)
	s.SetOption(opt)
	return opt
}

// DeleteOption removes key from the section. It reports whether the key
// was present.
func (s *Section) DeleteOption(key string) bool {
	if _, ok := s.options[key]; !ok {
		return false
	}
	delete(s.options, key)
	for i, k := range s.optionOrder {
		if k == key {
			s.optionOrder = append(s.optionOrder[:i], s.optionOrder[i+1:]...)
			break
		}
	}
	return true
}

// Contains reports whether key is present in the section.
func (s *Section) Contains(key string) bool {
	_, ok := s.options[key]
	return ok
}

// Options returns the section's options in insertion order.
func (s *Section) Options() []*Option {
	out := make([]*Option, len(s.optionOrder))
	for i, k := range s.optionOrder {
		out[i] = s.options[k]
	}
	return out
}

// AsMapping returns a shallow key -> value view of the section's
// options. Insertion order is not preserved by the returned map (maps
// are unordered); use Options for an ordered view.
func (s *Section) AsMapping() map[string]string {
	out := make(map[string]string, len(s.optionOrder))
	for _, k := range s.optionOrder {
		out[k] = s.options[k].Value
	}
	return out
}

// Describe returns a short human-readable summary for debugging and log
// messages, distinct from a round-trippable rendering.
func (s *Section) Describe() string {
	name := s.Name
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("Section(%s, %d options)", name, len(s.optionOrder))
}

// Describe returns a short human-readable summary for debugging and log
// messages.
func (o *Option) Describe() string {
	return fmt.Sprintf("Option(%s=%s)", o.Key, o.Value)
}

// Configuration is the root of a parsed (or hand-built) INI document: an
// always-present unnamed section, an ordered set of named sections, and
// an optional trailing comment.
type Configuration struct {
	Unnamed         *Section
	TrailingComment []string

	sections     map[string]*Section
	sectionOrder []string
}

// NewConfiguration returns an empty Configuration with its implicit
// unnamed section already present.
func NewConfiguration() *Configuration {
	return &Configuration{
		Unnamed:  newSection(unnamedSectionName),
		sections: make(map[string]*Section),
	}
}

// Section returns the named section, or a *LookupError if it is absent.
// The empty name always resolves to the unnamed section.
func (c *Configuration) Section(name string) (*Section, error) {
	if name == unnamedSectionName {
		return c.Unnamed, nil
	}
	s, ok := c.sections[name]
	if !ok {
		return nil, &LookupError{Kind: "section", Name: name}
	}
	return s, nil
}

// EnsureSection returns the named section, creating it (empty, at the
// end of section order) if it does not yet exist. The empty name always
// returns the unnamed section, which cannot be deleted.
func (c *Configuration) EnsureSection(name string) *Section {
	if name == unnamedSectionName {
		return c.Unnamed
	}
	if s, ok := c.sections[name]; ok {
		return s
	}
	s := newSection(name)
	c.sections[name] = s
	c.sectionOrder = append(c.sectionOrder, name)
	return s
}

// DeleteSection removes a named section. The unnamed section can never
// be deleted; calling DeleteSection("") is a no-op returning false. It
// reports whether a section was actually removed.
func (c *Configuration) DeleteSection(name string) bool {
	if name == unnamedSectionName {
		return false
	}
	if _, ok := c.sections[name]; !ok {
		return false
	}
	delete(c.sections, name)
	for i, n := range c.sectionOrder {
		if n == name {
			c.sectionOrder = append(c.sectionOrder[:i], c.sectionOrder[i+1:]...)
			break
		}
	}
	return true
}

// ContainsSection reports whether a named section exists. The unnamed
// section always exists and so always reports true for "".
func (c *Configuration) ContainsSection(name string) bool {
	if name == unnamedSectionName {
		return true
	}
	_, ok := c.sections[name]
	return ok
}

// Sections returns the named sections in insertion order, excluding the
// unnamed section.
func (c *Configuration) Sections() []*Section {
	out := make([]*Section, len(c.sectionOrder))
	for i, n := range c.sectionOrder {
		out[i] = c.sections[n]
	}
	return out
}

// GetValue returns the value of key in sectionName ("" for the unnamed
// section), or a *LookupError if the section or the key is absent.
func (c *Configuration) GetValue(key, sectionName string) (string, error) {
	section, err := c.Section(sectionName)
	if err != nil {
		return "", err
	}
	opt, err := section.Option(key)
	if err != nil {
		return "", err
	}
	return opt.Value, nil
}

// SetValue assigns key=value in sectionName, creating the section and/or
// option as needed.
func (c *Configuration) SetValue(key, value, sectionName string) *Option {
	return c.EnsureSection(sectionName).SetValue(key, value)
}

// AsMapping returns a nested sectionName -> key -> value view of the
// whole document. The unnamed section is present under the empty-string
// key only when it holds at least one option, matching the behavior of
// the original simplini implementation's as_dict().
func (c *Configuration) AsMapping() map[string]map[string]string {
	out := make(map[string]map[string]string, len(c.sectionOrder)+1)
	if len(c.Unnamed.optionOrder) > 0 {
		out[unnamedSectionName] = c.Unnamed.AsMapping()
	}
	for _, n := range c.sectionOrder {
		out[n] = c.sections[n].AsMapping()
	}
	return out
}

// Describe returns a short human-readable summary for debugging and log
// messages, distinct from Render.
func (c *Configuration) Describe() string {
	return fmt.Sprintf("Configuration(%d sections)", len(c.sectionOrder))
}
