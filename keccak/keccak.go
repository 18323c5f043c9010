// Package keccak implements the Keccak-f[1600] permutation and the fixed-size
// single-block Keccak-256 hash the batch search kernel is built on.
//
// The 1600-bit permutation state is held as 50 unsigned 32-bit words. Lane L
// of the 5x5 lane matrix occupies words 2L and 2L+1, low half first, so the
// word array is the little-endian byte image of the sponge state. All 64-bit
// lane arithmetic is expressed on word pairs; nothing here requires native
// 64-bit integers, which keeps the reference implementation bit-identical to
// its compute-shader counterparts.
//
// Only the original Keccak pad10*1 rule (domain byte 0x01) is implemented,
// not the NIST SHA3 padding.
package keccak

const (
	// StateWords is the permutation width in 32-bit words.
	StateWords = 50

	// RateWords is the Keccak-256 rate (1088 bits) in 32-bit words.
	RateWords = 34

	// BlockWords is the fixed candidate block size accepted by SumBlock.
	BlockWords = 8

	// DigestWords is the Keccak-256 output size in 32-bit words.
	DigestWords = 8
)

// roundConstants holds the 24 Iota constants split into (low, high) 32-bit
// pairs, matching the lane half order of the state array.
var roundConstants = [48]uint32{
	0x00000001, 0x00000000,
	0x00008082, 0x00000000,
	0x0000808a, 0x80000000,
	0x80008000, 0x80000000,
	0x0000808b, 0x00000000,
	0x80000001, 0x00000000,
	0x80008081, 0x80000000,
	0x00008009, 0x80000000,
	0x0000008a, 0x00000000,
	0x00000088, 0x00000000,
	0x80008009, 0x00000000,
	0x8000000a, 0x00000000,
	0x8000808b, 0x00000000,
	0x0000008b, 0x80000000,
	0x00008089, 0x80000000,
	0x00008003, 0x80000000,
	0x00008002, 0x80000000,
	0x00000080, 0x80000000,
	0x0000800a, 0x00000000,
	0x8000000a, 0x80000000,
	0x80008081, 0x80000000,
	0x00008080, 0x80000000,
	0x80000001, 0x00000000,
	0x80008008, 0x80000000,
}

// rhoPi is the merged Rho rotation / Pi target table. Entry 2i is the
// rotation amount applied at step i of the lane walk, entry 2i+1 the lane the
// rotated value lands in. Lane 0 is never visited; the walk starts by picking
// up lane 1. All rotation amounts are in [1,62].
var rhoPi = [48]uint8{
	1, 10,
	3, 7,
	6, 11,
	10, 17,
	15, 18,
	21, 3,
	28, 5,
	36, 16,
	45, 8,
	55, 21,
	2, 24,
	14, 4,
	27, 15,
	41, 23,
	56, 19,
	8, 13,
	25, 12,
	43, 2,
	62, 20,
	18, 14,
	39, 22,
	61, 9,
	20, 6,
	44, 1,
}

// rotl rotates the 64-bit value (hi, lo) left by n bits, 0 <= n < 64.
// n == 0 and n == 32 are exact; neither path shifts a 32-bit word by 32.
func rotl(hi, lo uint32, n uint) (uint32, uint32) {
	if n >= 32 {
		hi, lo = lo, hi
		n -= 32
	}
	if n == 0 {
		return hi, lo
	}
	return hi<<n | lo>>(32-n), lo<<n | hi>>(32-n)
}

// F1600 applies the full 24-round Keccak-f[1600] permutation to a in place.
// The only scratch storage is a fixed 10-word parity array and the carried
// lane of the Rho+Pi walk.
func F1600(a *[StateWords]uint32) {
	var par [10]uint32

	for round := 0; round < 24; round++ {
		// Theta: column parities, then mix into every lane of the column.
		for x := 0; x < 5; x++ {
			par[2*x] = a[2*x] ^ a[2*(x+5)] ^ a[2*(x+10)] ^ a[2*(x+15)] ^ a[2*(x+20)]
			par[2*x+1] = a[2*x+1] ^ a[2*(x+5)+1] ^ a[2*(x+10)+1] ^ a[2*(x+15)+1] ^ a[2*(x+20)+1]
		}
		for x := 0; x < 5; x++ {
			hi, lo := rotl(par[((x+1)%5)*2+1], par[((x+1)%5)*2], 1)
			tLo := par[((x+4)%5)*2] ^ lo
			tHi := par[((x+4)%5)*2+1] ^ hi
			for y := 0; y < 25; y += 5 {
				a[(x+y)*2] ^= tLo
				a[(x+y)*2+1] ^= tHi
			}
		}

		// Rho + Pi as one walk: rotate the carried lane, swap it into the
		// table's target, carry the displaced lane to the next step.
		cLo, cHi := a[2], a[3]
		for i := 0; i < 24; i++ {
			j := int(rhoPi[2*i+1])
			hi, lo := rotl(cHi, cLo, uint(rhoPi[2*i]))
			cLo, cHi = a[2*j], a[2*j+1]
			a[2*j], a[2*j+1] = lo, hi
		}

		// Chi, row-wise on the pre-Chi row values.
		for y := 0; y < 25; y += 5 {
			var row [10]uint32
			copy(row[:], a[y*2:y*2+10])
			for x := 0; x < 5; x++ {
				a[(y+x)*2] = row[2*x] ^ (^row[((x+1)%5)*2] & row[((x+2)%5)*2])
				a[(y+x)*2+1] = row[2*x+1] ^ (^row[((x+1)%5)*2+1] & row[((x+2)%5)*2+1])
			}
		}

		// Iota.
		a[0] ^= roundConstants[2*round]
		a[1] ^= roundConstants[2*round+1]
	}
}
