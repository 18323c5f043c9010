package types

import (
	"encoding/binary"
	"errors"

	fasthex "github.com/tmthrgd/go-hex"
)

const HashSize = 32

// Hash is a raw 256-bit Keccak digest.
//
//nolint:recvcheck
type Hash [HashSize]byte

var ZeroHash Hash

func (h Hash) MarshalJSON() ([]byte, error) {
	var buf [HashSize*2 + 2]byte
	buf[0] = '"'
	buf[HashSize*2+1] = '"'
	fasthex.Encode(buf[1:], h[:])
	return buf[:], nil
}

func (h *Hash) UnmarshalJSON(b []byte) error {
	if len(b) == 0 || len(b) == 2 {
		return nil
	}

	if len(b) != HashSize*2+2 {
		return errors.New("wrong hash size")
	}

	if _, err := fasthex.Decode(h[:], b[1:len(b)-1]); err != nil {
		return err
	}

	return nil
}

func MustBytes32FromString[T ~[32]byte](s string) T {
	if h, err := Bytes32FromString[T](s); err != nil {
		panic(err)
	} else {
		return h
	}
}

func Bytes32FromString[T ~[32]byte](s string) (T, error) {
	var h T
	if buf, err := fasthex.DecodeString(s); err != nil {
		return h, err
	} else {
		if len(buf) != 32 {
			return h, errors.New("wrong size")
		}
		copy(h[:], buf)
		return h, nil
	}
}

func MustHashFromString(s string) Hash {
	return MustBytes32FromString[Hash](s)
}

func HashFromString(s string) (Hash, error) {
	return Bytes32FromString[Hash](s)
}

func (h Hash) Slice() []byte {
	return h[:]
}

func (h Hash) String() string {
	return fasthex.EncodeToString(h[:])
}

// HashFromWords assembles a digest from eight 32-bit words, each word
// contributing four big-endian bytes. This is the word-to-byte convention
// shared with the batch kernel output.
func HashFromWords(words [8]uint32) (h Hash) {
	for i, w := range words {
		binary.BigEndian.PutUint32(h[i*4:], w)
	}
	return
}

// Words is the inverse of HashFromWords.
func (h Hash) Words() (words [8]uint32) {
	for i := range words {
		words[i] = binary.BigEndian.Uint32(h[i*4:])
	}
	return
}
