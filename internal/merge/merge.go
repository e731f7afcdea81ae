// Package merge implements the n-ary run-length merge that underlies both
// OR and AND: a single loop walks one cursor per input, picks the cursor
// that governs the next emitted run according to the operation's
// comparator, and advances every live cursor by the run length consumed.
package merge

// Op identifies which boolean reduction drives cursor selection,
// emission polarity, and the termination rule.
type Op int

const (
	// OR favors the longest ones-run available, falling back to the
	// shortest zeros-run when no cursor is in a ones-phase, and runs
	// until every cursor is exhausted.
	OR Op = iota
	// AND favors the longest zeros-run available, falling back to the
	// shortest ones-run when no cursor is in a zeros-phase, and stops
	// the moment any single cursor is exhausted.
	AND
)

// Merge computes the n-ary OR or AND of the given raw run sequences and
// returns a canonical result. Inputs are not mutated.
func Merge(op Op, inputs [][]uint64) []uint64 {
	cursors := make([]*cursor, len(inputs))
	for i, runs := range inputs {
		cursors[i] = newCursor(runs)
	}

	var out []uint64
	for {
		live := liveCursors(cursors)
		if op == AND && len(live) < len(cursors) {
			break
		}
		if len(live) == 0 {
			break
		}

		sel := selectCursor(live, op)
		n := sel.bits
		out = AppendRun(out, sel.phase(), n)

		for _, c := range live {
			c.advanceBy(n)
		}
	}

	return Canonicalize(out)
}

func liveCursors(cursors []*cursor) []*cursor {
	live := make([]*cursor, 0, len(cursors))
	for _, c := range cursors {
		if c.live() {
			live = append(live, c)
		}
	}
	return live
}

// selectCursor picks the cursor governing the next emitted run. The
// "dominant" phase is the one the operation maximizes (ones for OR,
// zeros for AND): if any live cursor is in that phase, the selection is
// the longest run among them; otherwise every live cursor is in the
// other phase, and the selection is the shortest run among those.
func selectCursor(live []*cursor, op Op) *cursor {
	dominant := 1
	if op == AND {
		dominant = 0
	}

	var group []*cursor
	pickLongest := true
	for _, c := range live {
		if c.phase() == dominant {
			group = append(group, c)
		}
	}
	if len(group) == 0 {
		for _, c := range live {
			if c.phase() != dominant {
				group = append(group, c)
			}
		}
		pickLongest = false
	}

	best := group[0]
	for _, c := range group[1:] {
		if pickLongest && c.bits > best.bits {
			best = c
		}
		if !pickLongest && c.bits < best.bits {
			best = c
		}
	}
	return best
}
