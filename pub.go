package arraymerkle

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// ErrInvalidDepth is returned when constructing a tree outside MinDepth..MaxDepth.
var ErrInvalidDepth = errors.New("invalid depth")

// Config controls how a tree is built. Zero values mean defaults.
type Config struct {
	// Depth is the number of levels, root and leaves included.
	Depth int

	// Combiner folds digests. Defaults to Additive.
	Combiner Combiner

	// Hash reduces keys and values to int32. Defaults to DefaultHash(Marshal).
	Hash Hasher

	// Marshal is used by the default Hash for types it doesn't know. Defaults to JSON.
	Marshal func(interface{}) ([]byte, error)

	// HashCache memoizes string hashes for the default Hash and may be
	// shared across multiple trees.
	HashCache HashCache

	// Logger receives debug output. Defaults to a no-op logger.
	Logger *zap.Logger
}

// New returns a tree of the given depth with the default configuration.
func New(depth int) (*Tree, error) {
	return NewWithConfig(Config{Depth: depth})
}

// NewWithConfig returns a tree built as described by config. Nothing is
// allocated if the depth is out of range.
func NewWithConfig(config Config) (*Tree, error) {
	if config.Depth < MinDepth || config.Depth > MaxDepth {
		return nil, fmt.Errorf("%w: %d is outside of the allowed range %d-%d",
			ErrInvalidDepth, config.Depth, MinDepth, MaxDepth)
	}
	nodeCount := (1 << config.Depth) - 1
	leafCount := (nodeCount + 1) / 2
	t := Tree{
		nodes:           make([]node, nodeCount),
		depth:           config.Depth,
		leafCount:       leafCount,
		leafLevelOffset: levelOffset(config.Depth - 1),
		leafRangeStep:   float64(hashSpaceWidth) / float64(leafCount),
		combine:         config.Combiner,
		hash:            config.Hash,
		logger:          config.Logger,
	}
	if t.combine == nil {
		t.combine = Additive
	}
	if t.hash == nil {
		marshal := config.Marshal
		if marshal == nil {
			marshal = json.Marshal
		}
		t.hash = defaultHash(marshal, config.HashCache)
	}
	if t.logger == nil {
		t.logger = zap.NewNop()
	}
	t.initRanges()
	t.logger.Debug("created tree",
		zap.Int("depth", t.depth),
		zap.Int("nodes", nodeCount),
		zap.Int("footprint", t.Footprint()))
	return &t, nil
}

// Update folds the hash of value into the digest of the leaf owning key's
// hash. Ancestors are left stale until Recalculate.
func (t *Tree) Update(key, value interface{}) error {
	keyHash, err := t.hash(key)
	if err != nil {
		return fmt.Errorf("hash key: %w", err)
	}
	valueHash, err := t.hash(value)
	if err != nil {
		return fmt.Errorf("hash value: %w", err)
	}
	t.UpdateHash(keyHash, valueHash)
	return nil
}

// UpdateHash is Update for callers that have already hashed the key and value.
func (t *Tree) UpdateHash(keyHash, valueHash int32) {
	leaf := &t.nodes[t.findLeaf(keyHash)]
	leaf.hash = t.combine(leaf.hash, valueHash)
	t.dirty = true
}

// Recalculate recomputes every internal digest from the leaves up. It is
// linear in the number of nodes and should be batched, not run per update.
func (t *Tree) Recalculate() {
	if ce := t.logger.Check(zap.DebugLevel, "recalculated"); ce != nil {
		start := time.Now()
		t.recalculate()
		ce.Write(zap.Int("nodes", len(t.nodes)), zap.Duration("took", time.Since(start)))
	} else {
		t.recalculate()
	}
	t.dirty = false
}

// Depth returns the number of levels between the root and leaves, inclusive.
func (t *Tree) Depth() int {
	return t.depth
}

// Footprint returns the size in bytes of the node array.
func (t *Tree) Footprint() int {
	return len(t.nodes) * nodeSize
}

// NodeCount returns the number of nodes in the tree, 2^Depth-1.
func (t *Tree) NodeCount() int {
	return len(t.nodes)
}

// LeafCount returns the number of leaves, 2^(Depth-1).
func (t *Tree) LeafCount() int {
	return t.leafCount
}

// Root returns the root digest. It reflects updates only after Recalculate.
func (t *Tree) Root() int32 {
	return t.nodes[0].hash
}

// NodeHash returns the digest of the node at the given level-order index.
func (t *Tree) NodeHash(i int) int32 {
	return t.nodes[i].hash
}

// NodeRange returns the key hash range owned by the node at the given index.
func (t *Tree) NodeRange(i int) Range {
	return Range{t.nodes[i].low, t.nodes[i].high}
}

// FindLeaf returns the index of the leaf whose range contains the given key hash.
func (t *Tree) FindLeaf(keyHash int32) int {
	return t.findLeaf(keyHash)
}

// Level appends the digests of every node at the given level, left to right,
// to digests and returns the result.
func (t *Tree) Level(level int, digests []int32) []int32 {
	if level < 0 || level >= t.depth {
		panic(fmt.Sprintf("level %d outside of tree of depth %d", level, t.depth))
	}
	offset := levelOffset(level)
	for i := offset; i < offset+(1<<level); i++ {
		digests = append(digests, t.nodes[i].hash)
	}
	return digests
}

// IsDirty signifies that leaves have been updated since the last Recalculate.
func (t *Tree) IsDirty() bool {
	return t.dirty
}

// Clone returns an independent copy sharing only configuration.
func (t *Tree) Clone() *Tree {
	t2 := *t
	t2.nodes = make([]node, len(t.nodes))
	copy(t2.nodes, t.nodes)
	return &t2
}

// Reset zeroes every digest, keeping the ranges.
func (t *Tree) Reset() {
	for i := range t.nodes {
		t.nodes[i].hash = 0
	}
	t.dirty = false
}
