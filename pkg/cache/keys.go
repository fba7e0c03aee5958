package cache

import "slices"

// Keyer derives cache keys.
type Keyer interface {
	BuildKey(opts BuildKeyOpts) string
	ScaleKey(inputHash string, opts ScaleKeyOpts) string
}

// BuildKeyOpts is everything that determines a built scaffold.
type BuildKeyOpts struct {
	NodesHash string        `json:"nodes"`
	EdgesHash string        `json:"edges"`
	Resources []ResourceKey `json:"resources"`
	Keep      int           `json:"keep"`
	Precision int           `json:"precision"`
	Pairing   string        `json:"pairing"`
}

// ResourceKey identifies one listed resource. Name and path are part of
// the key because two files can share an id.
type ResourceKey struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Path string `json:"path"`
	Type string `json:"type"`
}

// ScaleKeyOpts is everything that determines a normalized scaffold besides
// its input document.
type ScaleKeyOpts struct {
	Axes     []string `json:"axes"`
	Min      float64  `json:"min"`
	Max      float64  `json:"max"`
	ZeroBase []string `json:"zero_base"`
}

// DefaultKeyer hashes key options into "kind:sha256" keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the standard keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// BuildKey returns the key of a scaffold build. Resource order matters
// because it decides which component gets which background.
func (DefaultKeyer) BuildKey(opts BuildKeyOpts) string {
	opts.Resources = slices.Clone(opts.Resources)
	return hashKey("scaffold", opts)
}

// ScaleKey returns the key of a normalization run over the document whose
// content hash is inputHash.
func (DefaultKeyer) ScaleKey(inputHash string, opts ScaleKeyOpts) string {
	return hashKey("scaled", inputHash, opts)
}

// ScopedKeyer prefixes every key of an inner keyer, so several projects
// can share one backend without colliding.
type ScopedKeyer struct {
	inner  Keyer
	prefix string
}

// NewScopedKeyer wraps inner with prefix. A nil inner uses the default
// keyer.
func NewScopedKeyer(inner Keyer, prefix string) Keyer {
	if inner == nil {
		inner = NewDefaultKeyer()
	}
	return &ScopedKeyer{inner: inner, prefix: prefix}
}

// BuildKey returns the prefixed build key.
func (k *ScopedKeyer) BuildKey(opts BuildKeyOpts) string {
	return k.prefix + k.inner.BuildKey(opts)
}

// ScaleKey returns the prefixed scale key.
func (k *ScopedKeyer) ScaleKey(inputHash string, opts ScaleKeyOpts) string {
	return k.prefix + k.inner.ScaleKey(inputHash, opts)
}
