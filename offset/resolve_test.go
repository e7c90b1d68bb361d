package offset_test

import (
	"math"
	"testing"

	"github.com/ipld/go-tail/offset"
	"github.com/stretchr/testify/require"
)

func requireStart(t *testing.T, spec offset.Spec, total, want uint64) {
	t.Helper()
	start, ok := offset.Resolve(spec, total)
	require.True(t, ok, "spec %s total %d", spec, total)
	require.Equal(t, want, start, "spec %s total %d", spec, total)
}

func requireNone(t *testing.T, spec offset.Spec, total uint64) {
	t.Helper()
	_, ok := offset.Resolve(spec, total)
	require.False(t, ok, "spec %s total %d", spec, total)
}

func TestResolve(t *testing.T) {
	// +0 from an empty source emits nothing, otherwise everything.
	requireNone(t, offset.RelativeZero(), 0)
	for _, total := range []uint64{1, 2, 10, math.MaxUint64} {
		requireStart(t, offset.RelativeZero(), total, 0)
	}

	// Zero units emit nothing.
	for _, total := range []uint64{0, 1, 10} {
		requireNone(t, offset.Signed(0), total)
	}

	// Any count from an empty source emits nothing.
	requireNone(t, offset.Signed(1), 0)
	requireNone(t, offset.Signed(-1), 0)

	// Starting past the end emits nothing.
	requireNone(t, offset.Signed(2), 1)
	requireNone(t, offset.Signed(100), 5)
	requireNone(t, offset.Signed(11), 10)

	// From the start, positions are 1-based.
	requireStart(t, offset.Signed(1), 10, 0)
	requireStart(t, offset.Signed(2), 10, 1)
	requireStart(t, offset.Signed(3), 10, 2)
	requireStart(t, offset.Signed(10), 10, 9)

	// From the end.
	requireStart(t, offset.Signed(-1), 10, 9)
	requireStart(t, offset.Signed(-2), 10, 8)
	requireStart(t, offset.Signed(-3), 10, 7)
	requireStart(t, offset.Signed(-10), 10, 0)

	// Asking for more than exists from the end emits everything.
	requireStart(t, offset.Signed(-11), 10, 0)
	requireStart(t, offset.Signed(-20), 10, 0)
}

func TestResolveExtremes(t *testing.T) {
	requireStart(t, offset.Signed(math.MinInt64), 10, 0)
	requireStart(t, offset.Signed(math.MinInt64), math.MaxUint64, math.MaxUint64-(1<<63))
	requireNone(t, offset.Signed(math.MaxInt64), 10)
	requireStart(t, offset.Signed(math.MaxInt64), math.MaxUint64, math.MaxInt64-1)
	requireStart(t, offset.Signed(-1), math.MaxUint64, math.MaxUint64-1)
}

func TestResolveIsPure(t *testing.T) {
	specs := []offset.Spec{offset.RelativeZero(), offset.Signed(0), offset.Signed(3), offset.Signed(-3)}
	for _, spec := range specs {
		for _, total := range []uint64{0, 1, 5, 10} {
			start1, ok1 := offset.Resolve(spec, total)
			start2, ok2 := offset.Resolve(spec, total)
			require.Equal(t, ok1, ok2)
			require.Equal(t, start1, start2)
		}
	}
}
