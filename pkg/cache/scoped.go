package cache

// ScopedKeyer wraps a Keyer with a prefix so that organizations sharing one
// cache backend never see each other's entries.
//
//	orgKeyer := NewScopedKeyer(NewDefaultKeyer(), "org:sentry:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix.
// The prefix is prepended to all generated keys.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{
		inner:  inner,
		prefix: prefix,
	}
}

// DepthsKey generates a prefixed depths key.
func (k *ScopedKeyer) DepthsKey(columns int, layoutHash string) string {
	return k.prefix + k.inner.DepthsKey(columns, layoutHash)
}

// DashboardKey generates a prefixed dashboard key.
func (k *ScopedKeyer) DashboardKey(org, id string) string {
	return k.prefix + k.inner.DashboardKey(org, id)
}
