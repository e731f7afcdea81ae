// Package postings adapts a bitrun.RleBitmap into a postings list: a set
// of document/row identifiers, held as a base bitmap plus a pending set
// of ids that haven't been folded into a run sequence yet. Folding is
// deferred until a read (Count, Bitmap, Ids) is actually needed.
package postings

import (
	"sort"

	logging "github.com/ipfs/go-log/v2"
	"golang.org/x/xerrors"

	"github.com/filecoin-project/bitrun"
	"github.com/filecoin-project/bitrun/wire"
)

var log = logging.Logger("bitrun/postings")

// List is a mutable set of identifiers backed by an RleBitmap. The zero
// value is a valid, empty List.
type List struct {
	m *bitrun.Merger

	base    bitrun.RleBitmap
	pending map[uint64]struct{}
}

// New builds an empty List. opts configure the Merger used to fold
// pending ids into base and to compute Count/Bitmap/Ids; callers that
// need a non-default universe should pass the same Options every time a
// List touches a given bitmap.
func New(opts ...bitrun.Option) *List {
	return &List{m: bitrun.NewMerger(opts...)}
}

// FromBitmap wraps an existing bitmap as a List, taking ownership of it
// (the caller should not mutate b afterward).
func FromBitmap(b bitrun.RleBitmap, opts ...bitrun.Option) *List {
	return &List{m: bitrun.NewMerger(opts...), base: b}
}

// FromIds builds a List containing exactly the given identifiers.
func FromIds(ids []uint64, opts ...bitrun.Option) *List {
	l := New(opts...)
	for _, id := range ids {
		l.Set(id)
	}
	return l
}

// Set marks id as present. The change isn't folded into the underlying
// run sequence until the next read.
func (l *List) Set(id uint64) {
	if l.pending == nil {
		l.pending = make(map[uint64]struct{})
	}
	l.pending[id] = struct{}{}
}

// fold merges any pending ids into base and clears the pending set. It
// is a no-op when there's nothing pending.
func (l *List) fold() error {
	if len(l.pending) == 0 {
		return nil
	}

	ids := make([]uint64, 0, len(l.pending))
	for id := range l.pending {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	if l.m == nil {
		l.m = bitrun.NewMerger()
	}
	merged, err := l.m.Or(l.base, runsFromIds(ids))
	if err != nil {
		return xerrors.Errorf("postings: folding pending ids: %w", err)
	}

	l.base = merged
	l.pending = nil
	return nil
}

// runsFromIds builds the canonical run sequence for a bitmap with exactly
// the given (sorted, deduplicated) bit positions set.
func runsFromIds(ids []uint64) bitrun.RleBitmap {
	var out bitrun.RleBitmap
	var pos uint64
	for i := 0; i < len(ids); {
		zeros := ids[i] - pos
		j := i
		for j < len(ids) && ids[j]-ids[i] == uint64(j-i) {
			j++
		}
		ones := uint64(j - i)
		out = append(out, zeros, ones)
		pos = ids[i] + ones
		i = j
	}
	return out
}

// Count returns the number of set identifiers.
func (l *List) Count() (uint64, error) {
	if err := l.fold(); err != nil {
		return 0, err
	}
	var n uint64
	for i, r := range l.base {
		if i&1 == 1 {
			n += r
		}
	}
	return n, nil
}

// Bitmap returns the List's current contents as a canonical RleBitmap.
// The returned slice aliases the List's internal state and must not be
// mutated by the caller.
func (l *List) Bitmap() (bitrun.RleBitmap, error) {
	if err := l.fold(); err != nil {
		return nil, err
	}
	return l.base, nil
}

// Ids returns every set identifier, in ascending order.
func (l *List) Ids() ([]uint64, error) {
	if err := l.fold(); err != nil {
		return nil, err
	}

	var ids []uint64
	var pos uint64
	for i, r := range l.base {
		if i&1 == 1 {
			for j := uint64(0); j < r; j++ {
				ids = append(ids, pos+j)
			}
		}
		pos += r
	}
	return ids, nil
}

// MarshalBinary encodes the List's current contents using the wire
// package's compact run-length codec.
func (l *List) MarshalBinary() ([]byte, error) {
	b, err := l.Bitmap()
	if err != nil {
		return nil, xerrors.Errorf("postings: marshaling: %w", err)
	}
	return wire.Encode(b), nil
}

// UnmarshalBinary replaces the List's contents by decoding buf, which
// must have been produced by MarshalBinary (or wire.Encode directly).
func (l *List) UnmarshalBinary(buf []byte) error {
	b, err := wire.Decode(buf)
	if err != nil {
		log.Warnw("failed to decode postings list", "error", err)
		return xerrors.Errorf("postings: unmarshaling: %w", err)
	}
	if l.m == nil {
		l.m = bitrun.NewMerger()
	}
	l.base = b
	l.pending = nil
	return nil
}
