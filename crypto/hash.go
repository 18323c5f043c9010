// Package crypto provides host-side legacy Keccak-256 hashing over
// arbitrary-length input, used for address checksums and CREATE2/CREATE3
// derivation. The batch kernel has its own fixed-block implementation; the
// two agree bit for bit and are cross-checked in tests.
package crypto

import (
	"hash"
	"io"
	"sync"

	"golang.org/x/crypto/sha3"

	"github.com/ethvanity/crunch/types"
	"github.com/ethvanity/crunch/utils"
)

type HashReader interface {
	hash.Hash
	io.Reader
}

// KeccakHasher wraps the legacy Keccak-256 state behind no-escape call
// paths so repeated hashing stays allocation-free.
type KeccakHasher struct {
	h HashReader
}

func (k KeccakHasher) Read(p []byte) (n int, err error) {
	return utils.ReadNoEscape(k.h, p)
}

func (k KeccakHasher) Write(p []byte) (n int, err error) {
	return utils.WriteNoEscape(k.h, p)
}

func (k KeccakHasher) Sum(b []byte) []byte {
	return utils.SumNoEscape(k.h, b)
}

func (k KeccakHasher) Reset() {
	k.h.Reset()
}

func (k KeccakHasher) Size() int {
	return k.h.Size()
}

func (k KeccakHasher) BlockSize() int {
	return k.h.BlockSize()
}

//go:nosplit
func NewKeccak256() KeccakHasher {
	return KeccakHasher{h: sha3.NewLegacyKeccak256().(HashReader)}
}

var hasherPool = sync.Pool{
	New: func() any {
		return NewKeccak256()
	},
}

// GetKeccak256Hasher returns a reset hasher from the shared pool.
func GetKeccak256Hasher() KeccakHasher {
	//nolint:forcetypeassert
	return hasherPool.Get().(KeccakHasher)
}

// PutKeccak256Hasher resets the hasher and hands it back to the pool.
func PutKeccak256Hasher(h KeccakHasher) {
	h.Reset()
	hasherPool.Put(h)
}

// HashFastSum squeezes the digest by reading the sponge state directly;
// hash.Sum on the sha3 state clones it, which allocates. b must have room
// for the 32 digest bytes. Reading consumes the state, so the hasher needs a
// Reset before it absorbs again.
//
//go:nosplit
func HashFastSum(hasher KeccakHasher, b []byte) []byte {
	_ = b[31] // bounds check hint to compiler; see golang.org/issue/14808
	_, _ = hasher.Read(b[:types.HashSize])
	return b
}

func Keccak256Var[T ~string | ~[]byte](data ...T) (result types.Hash) {
	h := GetKeccak256Hasher()
	defer PutKeccak256Hasher(h)
	for _, b := range data {
		_, _ = h.Write([]byte(b))
	}
	HashFastSum(h, result[:])

	return
}

func Keccak256[T ~string | ~[]byte](data T) (result types.Hash) {
	h := GetKeccak256Hasher()
	defer PutKeccak256Hasher(h)
	_, _ = h.Write([]byte(data))
	HashFastSum(h, result[:])

	return
}
