package address

import (
	"testing"

	"github.com/ethvanity/crunch/types"
)

// Vectors from EIP-55.
var checksumVectors = []string{
	"0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
	"0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359",
	"0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB",
	"0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb",
}

func TestChecksum(t *testing.T) {
	for _, vector := range checksumVectors {
		a, err := FromString(vector)
		if err != nil {
			t.Fatalf("%s: %s", vector, err)
		}
		if got := a.Checksum(); got != vector {
			t.Fatalf("checksum = %s, want %s", got, vector)
		}
	}
}

func TestFromStringChecksumValidation(t *testing.T) {
	// Flipping the case of one letter must be rejected.
	bad := "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1Beaed"
	if _, err := FromString(bad); err == nil {
		t.Fatal("expected checksum error")
	}

	// All-lowercase carries no checksum and is accepted.
	if _, err := FromString("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"); err != nil {
		t.Fatal(err)
	}

	// 0x prefix optional.
	if _, err := FromString("5aaeb6053f3e94c9b9a09f33669435e7ef1beaed"); err != nil {
		t.Fatal(err)
	}

	if _, err := FromString("0x1234"); err == nil {
		t.Fatal("expected length error")
	}
}

func TestFromDigest(t *testing.T) {
	h := types.MustHashFromString("290decd9548b62a8d60345a988386fc84ba6bc95484008f6362f93160ef3e563")
	a := FromDigest(h)
	if a.String() != "0x88386fc84ba6bc95484008f6362f93160ef3e563" {
		t.Fatalf("unexpected address %s", a)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	a := MustFromString("0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed")
	buf, err := a.MarshalJSON()
	if err != nil {
		t.Fatal(err)
	}
	var b Address
	if err := b.UnmarshalJSON(buf); err != nil {
		t.Fatal(err)
	}
	if a != b {
		t.Fatalf("round trip mismatch: %s vs %s", a, b)
	}
}
