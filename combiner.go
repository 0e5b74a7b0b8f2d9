package arraymerkle

// Combiner folds two digests into one. It is used both to accumulate value
// hashes into a leaf and to derive a parent's digest from its children, and
// must be deterministic for digests of two trees to be comparable.
type Combiner func(a, b int32) int32

// Additive is the default Combiner: int32 addition, wrapping on overflow.
// Because it is commutative and associative the root digest is the sum of
// every value hash applied to the tree, independent of order or depth.
func Additive(a, b int32) int32 {
	return a + b
}

// Mixing is an order-dependent Combiner with better diffusion than Additive.
// Trees built with it are only comparable with trees also built with it.
func Mixing(a, b int32) int32 {
	h := uint32(a)*0x9e3779b1 ^ uint32(b)
	h ^= h >> 16
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return int32(h)
}
