package types

import (
	"testing"
)

func TestSaltNonceRoundTrip(t *testing.T) {
	for _, nonce := range []uint64{0, 1, 0xFFFFFFFF, 0x100000000, 0xDEADBEEFCAFEBABE} {
		s := SaltFromNonce64(nonce)
		if got := s.Nonce64(); got != nonce {
			t.Fatalf("nonce %016x round trips to %016x", nonce, got)
		}
		for _, b := range s[8:] {
			if b != 0 {
				t.Fatalf("nonce %016x: salt tail not zero: %s", nonce, s)
			}
		}
	}
}

func TestSaltByteOrder(t *testing.T) {
	s := SaltFromNonce(0x04030201, 0x08070605)
	want := MustSaltFromString("0102030405060708000000000000000000000000000000000000000000000000")
	if s != want {
		t.Fatalf("salt = %s, want %s", s, want)
	}
}

func TestSaltJSON(t *testing.T) {
	s := SaltFromNonce64(0xCAFEBABE)
	buf, err := s.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	if string(buf) != `"`+s.String()+`"` {
		t.Fatalf("marshalled %s", buf)
	}
	var back Salt
	if err = back.UnmarshalJSON(buf); err != nil {
		t.Fatal(err)
	}
	if back != s {
		t.Fatalf("round trip mismatch: %s vs %s", back, s)
	}
}

func TestHashWordsRoundTrip(t *testing.T) {
	h := MustHashFromString("290decd9548b62a8d60345a988386fc84ba6bc95484008f6362f93160ef3e563")
	if HashFromWords(h.Words()) != h {
		t.Fatal("word round trip mismatch")
	}
	if words := h.Words(); words[0] != 0x290decd9 {
		t.Fatalf("word 0 = %08x, want big-endian leading bytes", words[0])
	}
}
