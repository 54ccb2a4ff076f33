package notification

// Gate enforces that at most one notification is outstanding. The zero
// value is ready to use.
type Gate struct {
	pending bool
}

// Offer reports whether a notification should be raised now, and if so
// marks one as pending. It refuses while the window has focus, while
// notifications are disabled, or while another one is still pending.
func (g *Gate) Offer(windowFocused, enabled bool) bool {
	if windowFocused || !enabled || g.pending {
		return false
	}
	g.pending = true
	return true
}

// Dismiss clears the pending notification, if any.
func (g *Gate) Dismiss() {
	g.pending = false
}

// Pending reports whether a notification is outstanding.
func (g *Gate) Pending() bool {
	return g.pending
}
