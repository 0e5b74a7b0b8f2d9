package arraymerkle

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/minio/blake2b-simd"
	"google.golang.org/protobuf/proto"
)

// ErrUnhashable is returned when a key or value can't be reduced to a hash.
var ErrUnhashable = errors.New("unhashable")

// A Hashable computes its own 32-bit hash, bypassing DefaultHash's type switch.
type Hashable interface {
	// Hash32 must return the same value for equal keys/values for the life
	// of every tree they are compared across.
	Hash32() int32
}

// Hasher reduces a key or value to the 32-bit hash the tree operates on.
type Hasher func(interface{}) (int32, error)

var deterministicProto = proto.MarshalOptions{Deterministic: true}

// DefaultHash returns the Hasher used when Config.Hash is unset. Integers
// that fit in int32 hash to themselves and wider ones are folded to 32 bits.
// Strings and byte slices use the first four bytes of their blake2b digest,
// and protobuf messages are marshaled deterministically and hashed as bytes.
// Anything else goes through the given marshaler.
func DefaultHash(marshaler func(interface{}) ([]byte, error)) Hasher {
	return defaultHash(marshaler, nil)
}

func defaultHash(marshaler func(interface{}) ([]byte, error), cache HashCache) Hasher {
	return func(i interface{}) (int32, error) {
		switch v := i.(type) {
		case nil:
			return 0, nil
		case Hashable:
			return v.Hash32(), nil
		case int32:
			return v, nil
		case int:
			return foldInt(int64(v)), nil
		case int8:
			return int32(v), nil
		case int16:
			return int32(v), nil
		case int64:
			return foldInt(v), nil
		case uint:
			return foldUint(uint64(v)), nil
		case uint8:
			return int32(v), nil
		case uint16:
			return int32(v), nil
		case uint32:
			return int32(v), nil
		case uint64:
			return foldUint(v), nil
		case bool:
			if v {
				return 1, nil
			}
			return 0, nil
		case string:
			return stringHash(v, cache), nil
		case []byte:
			return blobHash(v), nil
		case proto.Message:
			b, err := deterministicProto.Marshal(v)
			if err != nil {
				return 0, fmt.Errorf("%w: marshal %T: %v", ErrUnhashable, i, err)
			}
			return blobHash(b), nil
		}
		if marshaler == nil {
			return 0, fmt.Errorf("%w: don't know how to hash %T; set Config.Hash or implement Hashable", ErrUnhashable, i)
		}
		b, err := marshaler(i)
		if err != nil {
			return 0, fmt.Errorf("%w: marshal %T: %v", ErrUnhashable, i, err)
		}
		return blobHash(b), nil
	}
}

func foldInt(v int64) int32 {
	if v >= math.MinInt32 && v <= math.MaxInt32 {
		return int32(v)
	}
	return fold64(uint64(v))
}

func foldUint(v uint64) int32 {
	if v <= math.MaxInt32 {
		return int32(v)
	}
	return fold64(v)
}

func fold64(v uint64) int32 {
	return int32(v ^ v>>32)
}

func stringHash(s string, cache HashCache) int32 {
	if cache != nil {
		if h, ok := cache.Get(s); ok {
			return h.(int32)
		}
	}
	h := blobHash([]byte(s))
	if cache != nil {
		cache.Add(s, h)
	}
	return h
}

func blobHash(b []byte) int32 {
	sum := blake2b.Sum256(b)
	return int32(binary.BigEndian.Uint32(sum[:4]))
}
