package guard

// Decision is the outcome of a guard: either the protected view, unchanged,
// or a redirect that replaces the current navigation entry.
type Decision[V any] struct {
	allowed  bool
	view     V
	redirect string
}

// Allow returns a decision carrying view.
func Allow[V any](view V) Decision[V] {
	return Decision[V]{allowed: true, view: view}
}

// Deny returns a decision redirecting to target.
func Deny[V any](target string) Decision[V] {
	return Decision[V]{redirect: target}
}

func (d Decision[V]) Allowed() bool {
	return d.allowed
}

// View returns the protected view. It is the zero value for a denied decision.
func (d Decision[V]) View() V {
	return d.view
}

// RedirectTo returns the redirect target, empty when allowed.
func (d Decision[V]) RedirectTo() string {
	return d.redirect
}

// Replace reports whether the redirect replaces the history entry, so
// going back does not return to the denied view.
func (d Decision[V]) Replace() bool {
	return !d.allowed
}
