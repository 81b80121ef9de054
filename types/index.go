package types

// Index rules shared by every indexable collection: negative indices count
// from the end, reads past the end yield Void, writes past the end fail,
// and slice bounds are clamped to the collection.

func indexArg(index Value) (int, error) {
	n, err := AsInt32(index)
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// readIndex resolves n against length l; ok is false when the read misses
func readIndex(n, l int) (int, bool) {
	if l <= 0 || n >= l {
		return 0, false
	}
	if n < 0 {
		n = wrap(n, l)
	}
	return n, true
}

func writeIndex(n, l int) (int, error) {
	if l <= 0 || n >= l {
		return 0, Errorf(E_RANGE, "index %d out of range for length %d", n, l)
	}
	if n < 0 {
		n = wrap(n, l)
	}
	return n, nil
}

// clampRange normalises [lo, hi) so that 0 <= lo <= hi <= l
func clampRange(lo, hi, l int) (int, int) {
	if l <= 0 {
		return 0, 0
	}
	if lo < 0 {
		lo = wrap(lo, l)
	}
	if hi < 0 {
		hi = wrap(hi, l)
	}
	hi = min(hi, l)
	lo = min(lo, hi)
	return lo, hi
}

// wrap counts a negative index back from the end, cycling as often as needed
func wrap(n, l int) int {
	n %= l
	if n < 0 {
		n += l
	}
	return n
}
