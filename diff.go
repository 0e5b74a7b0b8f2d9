package arraymerkle

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

var (
	// ErrDepthMismatch is returned when diffing trees whose ranges don't line up.
	ErrDepthMismatch = errors.New("trees have different depths")
	// ErrStale is returned when diffing a tree updated since its last Recalculate.
	ErrStale = errors.New("tree not recalculated since last update")
)

type indexStack struct {
	things []int
}

func (stack *indexStack) pop() (int, bool) {
	if len(stack.things) == 0 {
		return 0, false
	}
	i := stack.things[len(stack.things)-1]
	stack.things = stack.things[:len(stack.things)-1]
	return i, true
}

func (stack *indexStack) push(i int) {
	stack.things = append(stack.things, i)
}

// DiffRanges invokes the given callback, left to right, for the range of
// every leaf whose digest differs from the corresponding leaf in the other
// tree. Subtrees with equal digests are not descended into. The iteration
// stops if the callback returns keepGoing==false or an error.
func (t *Tree) DiffRanges(
	ctx context.Context,
	other *Tree,
	f func(r Range) (keepGoing bool, err error),
) error {
	if t.depth != other.depth {
		return fmt.Errorf("%w: %d vs %d", ErrDepthMismatch, t.depth, other.depth)
	}
	if t.dirty || other.dirty {
		return ErrStale
	}
	stack := indexStack{things: make([]int, 0, 2*t.depth)}
	stack.push(0)
	visited, differing := 0, 0
	defer func() {
		t.logger.Debug("diffed ranges",
			zap.Int("visited", visited),
			zap.Int("differingLeaves", differing))
	}()
	for {
		i, ok := stack.pop()
		if !ok {
			return nil
		}
		visited++
		if visited%1024 == 0 {
			if err := ctx.Err(); err != nil {
				return err
			}
		}
		if t.nodes[i].hash == other.nodes[i].hash {
			continue
		}
		if !t.isLeaf(i) {
			stack.push(rightChildIndex(i))
			stack.push(leftChildIndex(i))
			continue
		}
		differing++
		keepGoing, err := f(t.NodeRange(i))
		if err != nil {
			return fmt.Errorf("callback: %w", err)
		}
		if !keepGoing {
			return nil
		}
	}
}
