// Package bitrun implements the four boolean primitives -- OR, AND, XOR,
// NOT -- over bitmaps encoded as a run-length sequence of alternating
// zero/one runs, for use as a building block in bitmap-index structures
// (postings lists, filter composition, set intersection/union).
package bitrun

import "golang.org/x/xerrors"

// DefaultUniverse is the total number of bit positions an RleBitmap is
// defined over when no Option overrides it: 2^53-1, the largest integer
// a 64-bit floating point value can represent exactly. Kept as the
// default for bit-exact compatibility with previously stored data.
const DefaultUniverse uint64 = 1<<53 - 1

// RleBitmap is an ordered, non-negative run-length sequence: r0 zeros,
// r1 ones, r2 zeros, and so on, starting from a zeros-run (which may be
// of length 0). An empty RleBitmap denotes all zeros over the universe.
//
// Callers may pass sequences with interior zero-length runs (e.g.
// [0, 4, 0, 3], meaning "4 ones then 3 ones"); operations normalize
// those away. A canonical RleBitmap -- the only kind an operation ever
// returns -- never ends on a zeros-run unless that's the empty sequence,
// and never holds two adjacent runs of the same polarity.
type RleBitmap []uint64

// FromInts validates and converts a slice of plain integers into an
// RleBitmap. Use this at the boundary when ingesting less-trusted data
// (e.g. decoded from JSON, where a negative or non-integral run would
// otherwise be silently truncated by a uint64 conversion).
func FromInts(vals []int64) (RleBitmap, error) {
	out := make(RleBitmap, len(vals))
	for i, v := range vals {
		if v < 0 {
			return nil, xerrors.Errorf("bitrun: run %d is negative: %w", i, ErrInvalidRun)
		}
		out[i] = uint64(v)
	}
	return out, nil
}

// Validate checks that every prefix sum of the bitmap's runs stays within
// the given universe bound, returning ErrDomainOverflow otherwise. It is
// the API-boundary check every public operation performs before doing
// any merge work.
func (b RleBitmap) Validate(universe uint64) error {
	var sum uint64
	for i, r := range b {
		if r > universe || sum > universe-r {
			return xerrors.Errorf("bitrun: run %d overflows universe of %d bits: %w", i, universe, ErrDomainOverflow)
		}
		sum += r
	}
	return nil
}

// HasOnes reports whether the bitmap has any run of set bits. A bitmap
// with no ones-run -- empty, or containing only zero-runs -- is "empty
// of ones" and contributes nothing to an OR, and forces any AND it
// participates in to []. A bitmap is empty of ones iff it has no
// odd-indexed element greater than zero; this holds regardless of
// whether the leading (even-indexed) run is absent or zero.
func (b RleBitmap) HasOnes() bool {
	for i := 1; i < len(b); i += 2 {
		if b[i] > 0 {
			return true
		}
	}
	return false
}

// Equal reports whether two bitmaps are structurally identical in their
// canonical form. It does not canonicalize its arguments first: compare
// the outputs of library operations, which are always already
// canonical, or call Or(b) / Or(other) first to canonicalize ad hoc
// values.
func (b RleBitmap) Equal(other RleBitmap) bool {
	if len(b) != len(other) {
		return false
	}
	for i := range b {
		if b[i] != other[i] {
			return false
		}
	}
	return true
}

// Clone returns a copy of the bitmap so callers can mutate it without
// affecting the original.
func (b RleBitmap) Clone() RleBitmap {
	if b == nil {
		return nil
	}
	out := make(RleBitmap, len(b))
	copy(out, b)
	return out
}
