package cache

// ScopedKeyer prefixes every key of an inner Keyer. The inspector uses it
// to keep its entries apart from the CLI's when both share one backend.
//
//	keyer := NewScopedKeyer(NewDefaultKeyer(), "serve:")
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer creates a keyer with a prefix. A nil inner keyer means
// the default keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

func (k *ScopedKeyer) DumpKey(snapshotHash string, opts DumpKeyOpts) string {
	return k.prefix + k.inner.DumpKey(snapshotHash, opts)
}

func (k *ScopedKeyer) ArtifactKey(dumpHash string, opts ArtifactKeyOpts) string {
	return k.prefix + k.inner.ArtifactKey(dumpHash, opts)
}
