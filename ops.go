package bitrun

import (
	"github.com/filecoin-project/bitrun/internal/merge"
)

// Or returns the n-ary union of bitmaps. With no arguments it returns the
// empty bitmap.
func (m *Merger) Or(bitmaps ...RleBitmap) (RleBitmap, error) {
	inputs, err := m.validateAll(bitmaps)
	if err != nil {
		return nil, err
	}
	return RleBitmap(merge.Merge(merge.OR, inputs)), nil
}

// And returns the n-ary intersection of bitmaps. With no arguments it
// returns the empty bitmap. As soon as any input has no ones-run at all
// (empty, or runs of zeros only), the result is the empty bitmap.
func (m *Merger) And(bitmaps ...RleBitmap) (RleBitmap, error) {
	inputs, err := m.validateAll(bitmaps)
	if err != nil {
		return nil, err
	}
	for _, b := range bitmaps {
		if !b.HasOnes() {
			return nil, nil
		}
	}
	return RleBitmap(merge.Merge(merge.AND, inputs)), nil
}

// Xor returns the n-ary symmetric difference of bitmaps, defined by
// reduction (xor(A,B) = and(or(A,B), or(not(A),not(B)))) and folded
// left-to-right across more than two inputs. With no arguments it
// returns the empty bitmap; with one, it returns that bitmap
// canonicalized.
func (m *Merger) Xor(bitmaps ...RleBitmap) (RleBitmap, error) {
	switch len(bitmaps) {
	case 0:
		return nil, nil
	case 1:
		return m.Or(bitmaps[0])
	}

	acc := bitmaps[0]
	for _, next := range bitmaps[1:] {
		pair, err := m.xorPair(acc, next)
		if err != nil {
			return nil, err
		}
		acc = pair
	}
	return acc, nil
}

func (m *Merger) xorPair(a, b RleBitmap) (RleBitmap, error) {
	union, err := m.Or(a, b)
	if err != nil {
		return nil, err
	}
	notA, err := m.Not(a)
	if err != nil {
		return nil, err
	}
	notB, err := m.Not(b)
	if err != nil {
		return nil, err
	}
	complementUnion, err := m.Or(notA, notB)
	if err != nil {
		return nil, err
	}
	return m.And(union, complementUnion)
}

// Not returns the complement of b against this Merger's universe bound.
func (m *Merger) Not(b RleBitmap) (RleBitmap, error) {
	if err := b.Validate(m.universe); err != nil {
		return nil, err
	}

	// Route every run through AppendRun, phase-flipped, rather than
	// splicing b's tail in directly: b may hold interior zero-length
	// runs (e.g. [0, 4, 0, 3], "4 ones then 3 ones"), and AppendRun is
	// what coalesces those into canonical output the same way the merge
	// engine's cursor already does for Or/And/Xor.
	var out []uint64
	var sum uint64
	for i, r := range b {
		out = merge.AppendRun(out, 1-(i&1), r)
		sum += r
	}

	// Validate above already guarantees sum(b) <= m.universe, so the
	// universe extension below can never underflow.
	out = merge.AppendRun(out, 1, m.universe-sum)
	return RleBitmap(merge.Canonicalize(out)), nil
}

// validateAll validates every bitmap against m.universe and returns the
// raw run slices merge.Merge expects.
func (m *Merger) validateAll(bitmaps []RleBitmap) ([][]uint64, error) {
	inputs := make([][]uint64, len(bitmaps))
	for i, b := range bitmaps {
		if err := b.Validate(m.universe); err != nil {
			return nil, err
		}
		inputs[i] = b
	}
	return inputs, nil
}
