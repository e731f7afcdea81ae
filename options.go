package bitrun

// Options configures a Merger's universe bound. The zero value is
// invalid; build one with NewMerger and Option funcs, or just use the
// package-level Or/And/Xor/Not/Universe, which default to
// DefaultUniverse.
type Options struct {
	universe uint64
}

// Option mutates Options when building a Merger.
type Option func(*Options)

// WithUniverse overrides the universe bound U that Validate and NOT use.
// Configuring a non-default U only makes sense when every stored bitmap
// a Merger will ever see was produced with that same U: NOT's universe
// extension and every overflow check are relative to it.
func WithUniverse(u uint64) Option {
	return func(o *Options) { o.universe = u }
}

func defaultOptions() Options {
	return Options{universe: DefaultUniverse}
}

// Merger holds the universe bound used to validate inputs to OR/AND/XOR
// and to compute NOT's universe extension. Most callers don't need one:
// the package-level functions use a Merger configured with
// DefaultUniverse.
type Merger struct {
	universe uint64
}

// NewMerger builds a Merger, applying the given Options in order.
func NewMerger(opts ...Option) *Merger {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Merger{universe: o.universe}
}

// Universe returns the universe bound this Merger validates against.
func (m *Merger) Universe() uint64 { return m.universe }

var defaultMerger = &Merger{universe: DefaultUniverse}

// Or returns the n-ary union of bitmaps using DefaultUniverse.
func Or(bitmaps ...RleBitmap) (RleBitmap, error) { return defaultMerger.Or(bitmaps...) }

// And returns the n-ary intersection of bitmaps using DefaultUniverse.
func And(bitmaps ...RleBitmap) (RleBitmap, error) { return defaultMerger.And(bitmaps...) }

// Xor returns the n-ary symmetric difference of bitmaps using
// DefaultUniverse.
func Xor(bitmaps ...RleBitmap) (RleBitmap, error) { return defaultMerger.Xor(bitmaps...) }

// Not returns the complement of b against DefaultUniverse.
func Not(b RleBitmap) (RleBitmap, error) { return defaultMerger.Not(b) }

// Universe returns DefaultUniverse, the universe bound the package-level
// operations use.
func Universe() uint64 { return DefaultUniverse }
