package offset

// Resolve returns the 0-based index of the first unit to emit from a source
// holding total units. The boolean is false when nothing is to be emitted.
//
// Counting from the start past the end emits nothing. Counting back from the
// end past the start emits everything.
func Resolve(spec Spec, total uint64) (uint64, bool) {
	if total == 0 {
		return 0, false
	}
	if spec.kind == KindRelativeZero {
		return 0, true
	}

	n := spec.n
	switch {
	case n == 0:
		return 0, false
	case n > 0:
		if uint64(n) > total {
			return 0, false
		}
		return uint64(n) - 1, true
	default:
		// Written this way so math.MinInt64 does not overflow on negation.
		back := uint64(-(n + 1)) + 1
		if back >= total {
			return 0, true
		}
		return total - back, true
	}
}
