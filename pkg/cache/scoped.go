package cache

// ScopedKeyer wraps a Keyer with a prefix, giving each namespace its own
// key space inside one backend. The CLI scopes keys by release so a new
// renderer never serves images drawn by an old one.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "featureview:v1.2.0:")
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

// ViewKey generates a prefixed view key.
func (k *ScopedKeyer) ViewKey(sceneHash string, opts ViewKeyOpts) string {
	return k.prefix + k.inner.ViewKey(sceneHash, opts)
}
