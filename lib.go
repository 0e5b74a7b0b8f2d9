package arraymerkle

import (
	"fmt"
	"io"
	"math"

	"go.uber.org/zap"
)

const (
	// MinDepth is the shallowest tree that can be constructed.
	MinDepth = 2
	// MaxDepth is the deepest tree that can be constructed, 2^27-1 nodes.
	MaxDepth = 27

	// low(4) | high(4) | hash(4)
	nodeSize = 4 + 4 + 4

	// width of the int32 space as the distance between its endpoints
	hashSpaceWidth = int64(math.MaxInt32) - int64(math.MinInt32)
)

// Tree is a fixed-depth Merkle tree stored as a flat array in level order.
type Tree struct {
	nodes           []node
	depth           int
	leafCount       int
	leafLevelOffset int
	leafRangeStep   float64
	combine         Combiner
	hash            Hasher
	logger          *zap.Logger
	dirty           bool
}

type node struct {
	low  int32
	high int32
	hash int32
}

// Range is an inclusive interval of int32 key hashes.
type Range struct {
	Low  int32
	High int32
}

// Contains reports whether h falls in the range.
func (r Range) Contains(h int32) bool {
	return r.Low <= h && h <= r.High
}

func (r Range) String() string {
	return fmt.Sprintf("[%d,%d]", r.Low, r.High)
}

func parentIndex(i int) int {
	return (i - 1) >> 1
}

func leftChildIndex(i int) int {
	return 2*i + 1
}

func rightChildIndex(i int) int {
	return 2*i + 2
}

// levelOffset returns the index of the leftmost node at the given level.
func levelOffset(level int) int {
	return (1 << level) - 1
}

func (t *Tree) initRanges() {
	t.nodes[0].low = math.MinInt32
	t.nodes[0].high = math.MaxInt32
	for i := 1; i < len(t.nodes); i++ {
		parent := &t.nodes[parentIndex(i)]
		// truncating division, so [-2^31, 2^31-1] splits at 0
		mid := int32((int64(parent.low) + int64(parent.high)) / 2)
		if i%2 == 1 {
			t.nodes[i].low = parent.low
			t.nodes[i].high = mid
		} else {
			t.nodes[i].low = mid + 1
			t.nodes[i].high = parent.high
		}
	}
}

// findLeaf returns the index of the leaf whose range contains h.
func (t *Tree) findLeaf(h int32) int {
	distance := int64(h) - math.MinInt32
	est := int(float64(distance) / t.leafRangeStep)
	if est >= t.leafCount {
		est = t.leafCount - 1
	}
	i := t.leafLevelOffset + est
	if t.nodes[i].high < h {
		i++
	} else if t.nodes[i].low > h {
		i--
	}
	return i
}

func (t *Tree) recalculate() {
	for i := t.leafLevelOffset - 1; i >= 0; i-- {
		t.nodes[i].hash = t.combine(t.nodes[leftChildIndex(i)].hash, t.nodes[rightChildIndex(i)].hash)
	}
}

func (t *Tree) isLeaf(i int) bool {
	return i >= t.leafLevelOffset
}

// Dump writes every node, one line per level, as [index](low,high,hash).
func (t *Tree) Dump(w io.Writer) error {
	i := 0
	for level := 0; level < t.depth; level++ {
		if _, err := fmt.Fprintf(w, "%d:", level); err != nil {
			return err
		}
		for j := 0; j < 1<<level; j++ {
			n := t.nodes[i]
			if _, err := fmt.Fprintf(w, " [%d](%d,%d,%d)", i, n.low, n.high, n.hash); err != nil {
				return err
			}
			i++
		}
		if _, err := fmt.Fprintln(w); err != nil {
			return err
		}
	}
	return nil
}
