package merge

// AppendRun appends a run of the given polarity (0 = zeros, 1 = ones) and
// length n to out. It extends the trailing run in place when the new run
// shares its polarity, and otherwise appends a fresh run -- inserting a
// zero-length leading run first if that's the only way to keep the
// sequence starting on zeros (invariant 2 of the data model).
func AppendRun(out []uint64, polarity int, n uint64) []uint64 {
	if n == 0 {
		return out
	}
	if len(out) > 0 && (len(out)-1)&1 == polarity {
		out[len(out)-1] += n
		return out
	}
	if len(out)&1 != polarity {
		out = append(out, 0)
	}
	return append(out, n)
}

// Canonicalize strips a trailing zero-run, which is the only redundancy
// the merge loop can leave behind -- AppendRun already coalesces adjacent
// runs of the same polarity as they're emitted, so no post-hoc scan for
// that is needed.
func Canonicalize(out []uint64) []uint64 {
	if len(out)&1 == 1 {
		out = out[:len(out)-1]
	}
	return out
}
