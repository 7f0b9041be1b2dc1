package cache

// ScopedKeyer wraps a Keyer with a prefix so several servers can share one
// Redis without seeing each other's entries.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "hyprtile:desk-3:")
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

// ResultKey generates a prefixed key for result caching.
func (k *ScopedKeyer) ResultKey(sceneHash string, opts ResultKeyOpts) string {
	return k.prefix + k.inner.ResultKey(sceneHash, opts)
}
