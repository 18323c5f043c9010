package derive

import (
	"testing"

	"github.com/ethvanity/crunch/address"
	"github.com/ethvanity/crunch/crypto"
	"github.com/ethvanity/crunch/types"
)

func TestCreate2KnownAnswers(t *testing.T) {
	// EIP-1014 examples, init code 0x00.
	initCodeHash := crypto.Keccak256([]byte{0x00})

	got := Create2(address.ZeroAddress, types.ZeroHash, initCodeHash)
	if want := "0x4D1A2e2bB4F88F0250f26Ffff098B0b30B26BF38"; got.Checksum() != want {
		t.Fatalf("zero deployer: %s, want %s", got.Checksum(), want)
	}

	got = Create2(address.MustFromString("0xdeadbeef00000000000000000000000000000000"), types.ZeroHash, initCodeHash)
	if want := "0xB928f69Bb1D91Cd65274e3c79d8986362984fDA3"; got.Checksum() != want {
		t.Fatalf("deadbeef deployer: %s, want %s", got.Checksum(), want)
	}
}

func TestProxyInitCodeHash(t *testing.T) {
	want := types.MustHashFromString("21c35dbe1b344a2488cf3321d6ce542f8e9f305544ff09e4993a62319a497c1f")
	if ProxyInitCodeHash != want {
		t.Fatalf("proxy init code hash = %s, want %s", ProxyInitCodeHash, want)
	}
}

func TestCreate3Structure(t *testing.T) {
	deployer := address.MustFromString("0xba5Ed099633D3B313e4D5F7bdc1305d3c28ba5Ed")
	salt := crypto.Keccak256([]byte("salt"))

	proxy := Create2(deployer, salt, ProxyInitCodeHash)

	rlp := make([]byte, 0, 23)
	rlp = append(rlp, 0xd6, 0x94)
	rlp = append(rlp, proxy[:]...)
	rlp = append(rlp, 0x01)
	want := address.FromDigest(crypto.Keccak256(rlp))

	if got := Create3(deployer, salt); got != want {
		t.Fatalf("create3 address = %s, want %s", got, want)
	}
}

func TestGuardedSalt(t *testing.T) {
	salt := types.SaltFromNonce64(0xdeadbeef)
	caller := address.MustFromString("0x5aaeb6053f3e94c9b9a09f33669435e7ef1beaed")
	var chainID types.Hash
	chainID[types.HashSize-1] = 1

	random := Guard{}.Salt(salt)
	if want := crypto.Keccak256(salt[:]); random != want {
		t.Fatalf("random guard: %s, want %s", random, want)
	}

	sender := Guard{Variant: Sender, Caller: caller}.Salt(salt)
	var padded [32]byte
	copy(padded[12:], caller[:])
	if want := crypto.Keccak256Var(padded[:], salt[:]); sender != want {
		t.Fatalf("sender guard: %s, want %s", sender, want)
	}

	crosschain := Guard{Variant: Crosschain, ChainID: chainID}.Salt(salt)
	if want := crypto.Keccak256Var(chainID[:], salt[:]); crosschain != want {
		t.Fatalf("crosschain guard: %s, want %s", crosschain, want)
	}

	both := Guard{Variant: CrosschainSender, Caller: caller, ChainID: chainID}.Salt(salt)
	if want := crypto.Keccak256Var(padded[:], chainID[:], salt[:]); both != want {
		t.Fatalf("crosschain sender guard: %s, want %s", both, want)
	}

	// Distinct variants must never collide on the same inputs.
	guards := []types.Hash{random, sender, crosschain, both}
	for i := range guards {
		for j := i + 1; j < len(guards); j++ {
			if guards[i] == guards[j] {
				t.Fatalf("guard variants %d and %d collide", i, j)
			}
		}
	}
}
