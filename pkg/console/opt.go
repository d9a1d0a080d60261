package console

///////////////////////////////////////////////////////////////////////////////
// TYPES

// Opt is a functional option for the loop
type Opt func(*Loop)

///////////////////////////////////////////////////////////////////////////////
// OPTIONS

// WithInteractive prints a prompt before each line and styles the output
func WithInteractive(interactive bool) Opt {
	return func(l *Loop) {
		l.interactive = interactive
	}
}

// WithWidth wraps responses at the given width, or not at all when zero
func WithWidth(width int) Opt {
	return func(l *Loop) {
		l.width = max(width, 0)
	}
}
