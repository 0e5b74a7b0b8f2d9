package arraymerkle

import (
	"context"
	"errors"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/arbitrary"
	"github.com/stretchr/testify/require"
)

var ctx = context.Background()

func collectDiff(t *testing.T, a, b *Tree) []Range {
	var ranges []Range
	err := a.DiffRanges(ctx, b, func(r Range) (bool, error) {
		ranges = append(ranges, r)
		return true, nil
	})
	require.NoError(t, err)
	return ranges
}

func TestDiffEqualTrees(t *testing.T) {
	t.Parallel()
	a := newTestTree(6)
	a.UpdateHash(1, 1)
	a.UpdateHash(-1000, 2)
	a.Recalculate()
	b := a.Clone()
	require.Empty(t, collectDiff(t, a, b))
}

func TestDiffFindsDivergedRanges(t *testing.T) {
	t.Parallel()
	a := newTestTree(6)
	b := newTestTree(6)
	a.UpdateHash(1<<30, 5)
	a.UpdateHash(-1<<30, 5)
	b.UpdateHash(1<<30, 5)
	b.UpdateHash(2_000_000_000, 1)
	b.UpdateHash(-2_000_000_000, 1)
	a.Recalculate()
	b.Recalculate()
	require.Equal(t, []Range{
		a.NodeRange(a.FindLeaf(-2_000_000_000)),
		a.NodeRange(a.FindLeaf(-1 << 30)),
		a.NodeRange(a.FindLeaf(2_000_000_000)),
	}, collectDiff(t, a, b))
}

func TestDiffStopsWhenAsked(t *testing.T) {
	t.Parallel()
	a := newTestTree(5)
	b := newTestTree(5)
	b.UpdateHash(-5, 1)
	b.UpdateHash(5, 1)
	a.Recalculate()
	b.Recalculate()
	calls := 0
	err := a.DiffRanges(ctx, b, func(r Range) (bool, error) {
		calls++
		require.True(t, r.Contains(-5))
		return false, nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func TestDiffCallbackError(t *testing.T) {
	t.Parallel()
	a := newTestTree(3)
	b := newTestTree(3)
	b.UpdateHash(0, 1)
	b.Recalculate()
	boom := errors.New("boom")
	err := a.DiffRanges(ctx, b, func(Range) (bool, error) {
		return false, boom
	})
	require.True(t, errors.Is(err, boom))
}

func TestDiffDepthMismatch(t *testing.T) {
	t.Parallel()
	err := newTestTree(3).DiffRanges(ctx, newTestTree(4), func(Range) (bool, error) {
		t.Fatal("callback not expected")
		return false, nil
	})
	require.True(t, errors.Is(err, ErrDepthMismatch))
}

func TestDiffRequiresRecalculate(t *testing.T) {
	t.Parallel()
	a := newTestTree(3)
	b := newTestTree(3)
	b.UpdateHash(0, 1)
	err := a.DiffRanges(ctx, b, func(Range) (bool, error) { return true, nil })
	require.True(t, errors.Is(err, ErrStale))
	err = b.DiffRanges(ctx, a, func(Range) (bool, error) { return true, nil })
	require.True(t, errors.Is(err, ErrStale))
	b.Recalculate()
	require.Len(t, collectDiff(t, a, b), 1)
}

func TestDiffCancelled(t *testing.T) {
	t.Parallel()
	a := newTestTree(12)
	b := newTestTree(12)
	for i := b.leafLevelOffset; i < b.NodeCount(); i++ {
		b.UpdateHash(b.NodeRange(i).Low, 1)
	}
	a.Recalculate()
	b.Recalculate()
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	err := a.DiffRanges(cancelled, b, func(Range) (bool, error) { return true, nil })
	require.True(t, errors.Is(err, context.Canceled))
}

func TestDiffMatchesLeafComparison(t *testing.T) {
	t.Parallel()
	properties := gopter.NewProperties(defaultGopterParameters)
	arbitraries := arbitrary.DefaultArbitraries()

	properties.Property("diff reports exactly the differing leaves, in order",
		arbitraries.ForAll(
			func(common, onlyA, onlyB []TestOperation) bool {
				a, err := NewWithConfig(Config{Depth: 7, Combiner: Mixing})
				require.NoError(t, err)
				a.apply(common)
				b := a.Clone()
				a.apply(onlyA)
				b.apply(onlyB)
				a.Recalculate()
				b.Recalculate()

				var want []Range
				for i := a.leafLevelOffset; i < a.NodeCount(); i++ {
					if a.NodeHash(i) != b.NodeHash(i) {
						want = append(want, a.NodeRange(i))
					}
				}
				got := collectDiff(t, a, b)
				return len(got) == len(want) && (len(got) == 0 || equalRanges(got, want))
			}))
	properties.TestingRun(t)
}

func equalRanges(a, b []Range) bool {
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
