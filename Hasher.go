package Go_Containers

import (
	"encoding/binary"
	"hash/maphash"

	"github.com/cespare/xxhash/v2"
	"github.com/zeebo/xxh3"
	"golang.org/x/exp/constraints"
)

// Hasher is a seed for the hash functions below. Use NewHasher for a random seed, or Hasher(0) when hashes must be reproducible across processes. The receivers are stateless and thread-safe.
type Hasher uint64

// NewHasher returns a Hasher with a random seed.
func NewHasher() Hasher {
	return Hasher(maphash.Bytes(maphash.MakeSeed(), nil))
}

// HashString hashes v with xxh3 seeded by u.
func (u Hasher) HashString(v string) uint64 {
	return xxh3.HashStringSeed(v, uint64(u))
}

// HashBytes hashes b with xxh3 seeded by u.
func (u Hasher) HashBytes(b []byte) uint64 {
	return xxh3.HashSeed(b, uint64(u))
}

// HashInt hashes the 8 byte little endian form of v.
func HashInt[I constraints.Integer](u Hasher, v I) uint64 {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], uint64(v))
	return xxh3.HashSeed(b[:], uint64(u))
}

// IntHasher binds u to HashInt, giving a func(I) uint64 usable as a map hash function.
func IntHasher[I constraints.Integer](u Hasher) func(I) uint64 {
	return func(v I) uint64 {
		return HashInt(u, v)
	}
}

// StringHash is an unseeded xxhash of v, stable across runs.
func StringHash(v string) uint64 {
	return xxhash.Sum64String(v)
}

// IdentityHash returns v itself. Useful in tests where bucket placement has to be predictable.
func IdentityHash[I constraints.Integer](v I) uint64 {
	return uint64(v)
}
