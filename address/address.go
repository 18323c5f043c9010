// Package address models 20-byte Ethereum addresses as carved out of a
// Keccak-256 digest, with EIP-55 checksum encoding and validation.
package address

import (
	"errors"

	fasthex "github.com/tmthrgd/go-hex"

	"github.com/ethvanity/crunch/crypto"
	"github.com/ethvanity/crunch/types"
)

const Size = 20

// DigestOffset is where the address starts inside a 32-byte digest.
const DigestOffset = types.HashSize - Size

//nolint:recvcheck
type Address [Size]byte

var ZeroAddress Address

// FromDigest extracts the address from a Keccak-256 digest, the last 20
// bytes. The digest is either keccak(candidate) directly or a CREATE2/CREATE3
// derivation on top of it; both carve the address out the same way.
func FromDigest(h types.Hash) (a Address) {
	copy(a[:], h[DigestOffset:])
	return
}

// FromString parses a hex address with optional 0x prefix. Mixed-case input
// is treated as EIP-55 encoded and its checksum is verified; all-lower or
// all-upper input is accepted as-is.
func FromString(s string) (Address, error) {
	var a Address
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		s = s[2:]
	}
	if len(s) != Size*2 {
		return a, errors.New("wrong address length")
	}
	if _, err := fasthex.Decode(a[:], []byte(s)); err != nil {
		return a, err
	}
	if hasMixedCase(s) && a.Checksum() != "0x"+s {
		return a, errors.New("invalid address checksum")
	}
	return a, nil
}

func MustFromString(s string) Address {
	if a, err := FromString(s); err != nil {
		panic(err)
	} else {
		return a
	}
}

func (a Address) Slice() []byte {
	return a[:]
}

// String is the plain lowercase hex form with 0x prefix.
func (a Address) String() string {
	return "0x" + fasthex.EncodeToString(a[:])
}

// Checksum is the EIP-55 mixed-case form: each hex letter is uppercased when
// the corresponding nibble of keccak(lowercase hex address) is >= 8.
func (a Address) Checksum() string {
	var buf [Size*2 + 2]byte
	buf[0] = '0'
	buf[1] = 'x'
	fasthex.Encode(buf[2:], a[:])

	sum := crypto.Keccak256(buf[2:])
	for i := 0; i < Size*2; i++ {
		nibble := sum[i/2] >> 4
		if i%2 == 1 {
			nibble = sum[i/2] & 0xf
		}
		if buf[2+i] >= 'a' && buf[2+i] <= 'f' && nibble >= 8 {
			buf[2+i] -= 'a' - 'A'
		}
	}
	return string(buf[:])
}

func (a Address) MarshalJSON() ([]byte, error) {
	var buf [Size*2 + 4]byte
	buf[0] = '"'
	buf[1] = '0'
	buf[2] = 'x'
	buf[len(buf)-1] = '"'
	fasthex.Encode(buf[3:], a[:])
	return buf[:], nil
}

func (a *Address) UnmarshalJSON(b []byte) error {
	if len(b) < 2 || b[0] != '"' || b[len(b)-1] != '"' {
		return errors.New("invalid address")
	}
	v, err := FromString(string(b[1 : len(b)-1]))
	if err != nil {
		return err
	}
	*a = v
	return nil
}

func hasMixedCase(s string) bool {
	var lower, upper bool
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] >= 'a' && s[i] <= 'f':
			lower = true
		case s[i] >= 'A' && s[i] <= 'F':
			upper = true
		}
	}
	return lower && upper
}
