package ini

// RenderPolicy controls how the Renderer picks a presentation style for
// each value when a Flavour allows more than one.
type RenderPolicy int

const (
	// AlwaysQuoted always renders values quoted (falling back to
	// triple-quoted only when a raw newline cannot be escaped). It is
	// the default policy.
	AlwaysQuoted RenderPolicy = iota
	// PreferUnquoted renders a value unquoted whenever doing so would
	// not change its meaning, falling back to quoted/triple-quoted
	// otherwise.
	PreferUnquoted
	// PreferSource reproduces the style recorded on the Option by the
	// parser, falling back to AlwaysQuoted when no style was recorded.
	PreferSource
)
