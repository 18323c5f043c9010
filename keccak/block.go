package keccak

// SumBlock computes the Keccak-256 digest of exactly one 32-byte candidate
// block, given and returned as eight 32-bit words.
//
// Input words are the little-endian image of the candidate bytes and are
// absorbed word-for-word into the leading rate words. The caller guarantees
// the fixed length; the pad10*1 XOR positions below are only correct for
// inputs strictly shorter than the 34-word rate block.
//
// Output words carry four digest bytes each in big-endian order: digest byte
// i is word i/4 shifted right by 24-8*(i%4). That convention is the contract
// with the pattern-matching side, which reassembles bytes without knowing the
// lane layout in here.
func SumBlock(input *[BlockWords]uint32, digest *[DigestWords]uint32) {
	st := padded(input)

	F1600(&st)

	for i := 0; i < DigestWords; i++ {
		digest[i] = bswap(st[i])
	}
}

// Sum256 is SumBlock over a candidate given as raw bytes, returning raw
// digest bytes. Host-side convenience, mostly for verification paths.
func Sum256(candidate *[32]byte) (out [32]byte) {
	var input [BlockWords]uint32
	var digest [DigestWords]uint32

	for i := 0; i < BlockWords; i++ {
		input[i] = uint32(candidate[i*4]) | uint32(candidate[i*4+1])<<8 |
			uint32(candidate[i*4+2])<<16 | uint32(candidate[i*4+3])<<24
	}

	SumBlock(&input, &digest)

	for i := 0; i < DigestWords; i++ {
		out[i*4] = byte(digest[i] >> 24)
		out[i*4+1] = byte(digest[i] >> 16)
		out[i*4+2] = byte(digest[i] >> 8)
		out[i*4+3] = byte(digest[i])
	}
	return
}

// padded builds the zero-initialized, absorbed and pad10*1-padded state for
// one candidate block. The pad XOR positions assume the fixed 8-word input;
// first pad bit right after the input, final bit at the top of the last rate
// word. Distinct words for any input shorter than the rate.
func padded(input *[BlockWords]uint32) (st [StateWords]uint32) {
	for i := 0; i < BlockWords; i++ {
		st[i] = input[i]
	}

	st[BlockWords] ^= 0x00000001
	st[RateWords-1] ^= 0x80000000
	return
}

func bswap(v uint32) uint32 {
	return v<<24 | (v&0xff00)<<8 | (v>>8)&0xff00 | v>>24
}
