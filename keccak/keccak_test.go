package keccak

import (
	"crypto/rand"
	"encoding/binary"
	"math/bits"
	"testing"
)

func randomState(t *testing.T) (st [StateWords]uint32) {
	t.Helper()
	var buf [StateWords * 4]byte
	if _, err := rand.Read(buf[:]); err != nil {
		t.Fatal(err)
	}
	for i := range st {
		st[i] = binary.LittleEndian.Uint32(buf[i*4:])
	}
	return
}

func toNative(st *[StateWords]uint32) (a [25]uint64) {
	for l := 0; l < 25; l++ {
		a[l] = uint64(st[2*l]) | uint64(st[2*l+1])<<32
	}
	return
}

func TestRotl(t *testing.T) {
	var buf [8]byte
	for iter := 0; iter < 64; iter++ {
		if _, err := rand.Read(buf[:]); err != nil {
			t.Fatal(err)
		}
		v := binary.LittleEndian.Uint64(buf[:])
		for n := uint(0); n < 64; n++ {
			hi, lo := rotl(uint32(v>>32), uint32(v), n)
			got := uint64(lo) | uint64(hi)<<32
			want := bits.RotateLeft64(v, int(n))
			if got != want {
				t.Fatalf("rotl(%016x, %d) = %016x, want %016x", v, n, got, want)
			}
		}
	}
}

func TestRhoPiTable(t *testing.T) {
	var seen [25]bool
	for i := 0; i < 24; i++ {
		rot := rhoPi[2*i]
		target := rhoPi[2*i+1]
		if rot < 1 || rot > 63 {
			t.Fatalf("step %d: rotation %d outside [1,63]", i, rot)
		}
		if target == 0 || target > 24 {
			t.Fatalf("step %d: target lane %d outside [1,24]", i, target)
		}
		if seen[target] {
			t.Fatalf("step %d: target lane %d visited twice", i, target)
		}
		seen[target] = true
	}
}

func TestF1600ZeroState(t *testing.T) {
	var st [StateWords]uint32
	F1600(&st)

	// Published Keccak-f[1600] vector: first lane after permuting the
	// all-zero state.
	if got := toNative(&st)[0]; got != 0xF1258F7940E1DDE7 {
		t.Fatalf("lane 0 after zero-state permutation: %016x", got)
	}

	var native [25]uint64
	f1600Native(&native)
	if toNative(&st) != native {
		t.Fatalf("split permutation diverges from native on zero state")
	}
}

func TestF1600Random(t *testing.T) {
	for iter := 0; iter < 128; iter++ {
		st := randomState(t)
		native := toNative(&st)

		F1600(&st)
		f1600Native(&native)

		if toNative(&st) != native {
			t.Fatalf("iteration %d: split permutation diverges from native", iter)
		}
	}
}

func TestF1600Repeated(t *testing.T) {
	// Chained permutations stay in lockstep with the native form.
	st := randomState(t)
	native := toNative(&st)
	for i := 0; i < 24; i++ {
		F1600(&st)
		f1600Native(&native)
	}
	if toNative(&st) != native {
		t.Fatal("chained permutations diverge from native")
	}
}

func BenchmarkF1600(b *testing.B) {
	var st [StateWords]uint32
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		F1600(&st)
	}
}
