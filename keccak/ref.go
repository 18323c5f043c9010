package keccak

import (
	_ "unsafe"

	_ "golang.org/x/crypto/sha3" //nolint:depguard
)

// f1600Native is the reference native-word permutation, borrowed from
// x/crypto the same way the unrolled assembly is reached elsewhere in the
// ecosystem. It is the oracle the split-word form is verified against.
//
//go:noescape
//go:linkname f1600Native golang.org/x/crypto/sha3.keccakF1600
func f1600Native(a *[25]uint64)
