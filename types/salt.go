package types

import (
	"encoding/binary"

	fasthex "github.com/tmthrgd/go-hex"
)

const SaltSize = 32

// Salt is the 32-byte candidate value fed to the hash kernel. Only the first
// eight bytes carry the search nonce, as two little-endian 32-bit words; the
// remaining bytes are zero.
//
//nolint:recvcheck
type Salt [SaltSize]byte

var ZeroSalt Salt

func SaltFromNonce(nonceLow, nonceHigh uint32) (s Salt) {
	binary.LittleEndian.PutUint32(s[0:], nonceLow)
	binary.LittleEndian.PutUint32(s[4:], nonceHigh)
	return
}

func SaltFromNonce64(nonce uint64) Salt {
	return SaltFromNonce(uint32(nonce), uint32(nonce>>32))
}

// Nonce returns the nonce words this salt encodes.
func (s Salt) Nonce() (nonceLow, nonceHigh uint32) {
	return binary.LittleEndian.Uint32(s[0:]), binary.LittleEndian.Uint32(s[4:])
}

func (s Salt) Nonce64() uint64 {
	lo, hi := s.Nonce()
	return uint64(hi)<<32 | uint64(lo)
}

func MustSaltFromString(s string) Salt {
	return MustBytes32FromString[Salt](s)
}

func SaltFromString(s string) (Salt, error) {
	return Bytes32FromString[Salt](s)
}

func (s Salt) Slice() []byte {
	return s[:]
}

func (s Salt) String() string {
	return "0x" + fasthex.EncodeToString(s[:])
}

func (s Salt) MarshalJSON() ([]byte, error) {
	var buf [SaltSize*2 + 4]byte
	buf[0] = '"'
	buf[1] = '0'
	buf[2] = 'x'
	buf[len(buf)-1] = '"'
	fasthex.Encode(buf[3:], s[:])
	return buf[:], nil
}

func (s *Salt) UnmarshalJSON(b []byte) error {
	if len(b) == SaltSize*2+4 && b[1] == '0' && b[2] == 'x' {
		_, err := fasthex.Decode(s[:], b[3:len(b)-1])
		return err
	}
	return (*Hash)(s).UnmarshalJSON(b)
}
