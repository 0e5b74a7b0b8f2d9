/*
Package arraymerkle provides a fixed-depth Merkle tree over the 32-bit
hash space, laid out as a single flat array.  It is meant for
anti-entropy between replicas of a partitioned data set: two replicas
compare root digests and, on mismatch, recurse into the children whose
digests differ, finding the diverged hash ranges without exchanging the
data itself.

Layout

The tree is a complete binary tree of a depth chosen at construction
(2 to 27 levels).  Nodes are stored in level order, so node i has
children 2i+1 and 2i+2 and no pointers are needed.  Every node owns an
inclusive range of int32 key hashes; the root owns all of them and each
node's range is split in half between its children, so the leaves tile
[math.MinInt32, math.MaxInt32] exactly once.

Updates and recalculation

Update folds the hash of a value into the digest of the leaf owning the
key's hash.  Only that leaf is touched; the digests of its ancestors go
stale until Recalculate, which recomputes every internal node bottom-up
in one linear pass.  Callers are expected to batch many updates and
recalculate before comparing digests.

	t, err := arraymerkle.New(16)
	if err != nil {
		return err
	}
	for k, v := range entries {
		if err := t.Update(k, v); err != nil {
			return err
		}
	}
	t.Recalculate()
	if t.Root() != remoteRoot {
		// walk children
	}

Digests

The default combiner is wrapping int32 addition.  It is cheap,
commutative and collision-prone; it is not a cryptographic commitment.
Config.Combiner can substitute something stronger without changing the
layout.

Concurrency

A Tree does no locking.  Callers using one from multiple goroutines must
serialize Update, Recalculate and reads themselves.  Clone produces an
independent copy that can be handed to another goroutine.
*/
package arraymerkle
