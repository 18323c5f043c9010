package kernel

import (
	"crypto/rand"
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ethvanity/crunch/keccak"
	"github.com/ethvanity/crunch/types"
)

func TestNonceCarry(t *testing.T) {
	cfg := BatchConfig{
		BaseNonceLow:  0xFFFFFFFF,
		BaseNonceHigh: 0x00000000,
		LaneCount:     2,
	}

	lo, hi := cfg.Nonce(0)
	assert.EqualValues(t, 0xFFFFFFFF, lo)
	assert.EqualValues(t, 0x00000000, hi)

	lo, hi = cfg.Nonce(1)
	assert.EqualValues(t, 0x00000000, lo)
	assert.EqualValues(t, 0x00000001, hi)
}

func TestNonceInjectivity(t *testing.T) {
	// Straddle the 32-bit wrap so carries are part of the covered range.
	cfg := BatchConfig{
		BaseNonceLow:  0xFFFFF000,
		BaseNonceHigh: 0x00000007,
		LaneCount:     1 << 13,
	}

	seen := make(map[uint64]uint32, cfg.LaneCount)
	for lane := uint32(0); lane < cfg.LaneCount; lane++ {
		lo, hi := cfg.Nonce(lane)
		nonce := uint64(hi)<<32 | uint64(lo)
		if prev, ok := seen[nonce]; ok {
			t.Fatalf("lanes %d and %d derive the same nonce %016x", prev, lane, nonce)
		}
		seen[nonce] = lane
	}
}

func TestDispatchDeterminism(t *testing.T) {
	cfg := BatchConfig{
		BaseNonceLow: 12345,
		LaneCount:    3000,
	}

	a := make([]uint32, ResultsSize(cfg.LaneCount))
	b := make([]uint32, ResultsSize(cfg.LaneCount))

	require.NoError(t, cfg.Dispatch(4, a))
	require.NoError(t, cfg.Dispatch(7, b))
	require.Equal(t, a, b)
}

func TestDispatchMatchesReference(t *testing.T) {
	var seed [8]byte
	_, err := rand.Read(seed[:])
	require.NoError(t, err)

	cfg := BatchConfig{
		BaseNonceLow:  binary.LittleEndian.Uint32(seed[0:]),
		BaseNonceHigh: binary.LittleEndian.Uint32(seed[4:]),
		LaneCount:     257,
	}

	results := make([]uint32, ResultsSize(cfg.LaneCount))
	require.NoError(t, cfg.Dispatch(0, results))

	for lane := uint32(0); lane < cfg.LaneCount; lane++ {
		slot := results[int(lane)*SlotWords : int(lane+1)*SlotWords]

		wantLo, wantHi := cfg.Nonce(lane)
		require.Equal(t, wantLo, slot[0], "lane %d nonce low", lane)
		require.Equal(t, wantHi, slot[1], "lane %d nonce high", lane)

		candidate := types.SaltFromNonce(wantLo, wantHi)
		want := keccak.Sum256((*[32]byte)(&candidate))

		var words [keccak.DigestWords]uint32
		copy(words[:], slot[2:])
		got := types.HashFromWords(words)
		require.EqualValues(t, want, got, "lane %d digest", lane)
	}
}

func TestOverDispatchGuard(t *testing.T) {
	cfg := BatchConfig{
		BaseNonceLow: 99,
		LaneCount:    4,
	}

	// Room for 8 lanes, primed with a sentinel. Lanes past the configured
	// count must leave their slots untouched.
	results := make([]uint32, ResultsSize(8))
	for i := range results {
		results[i] = 0xCAFEBABE
	}

	var st laneState
	for lane := uint32(0); lane < 8; lane++ {
		cfg.computeLane(lane, &st, results)
	}

	for i := ResultsSize(cfg.LaneCount); i < len(results); i++ {
		require.EqualValues(t, 0xCAFEBABE, results[i], "word %d of a guarded slot was written", i)
	}
	for lane := uint32(0); lane < cfg.LaneCount; lane++ {
		require.EqualValues(t, cfg.BaseNonceLow+lane, results[int(lane)*SlotWords])
	}
}

func TestDispatchErrors(t *testing.T) {
	var cfg BatchConfig
	require.Error(t, cfg.Dispatch(1, nil))

	cfg.LaneCount = 16
	require.Error(t, cfg.Dispatch(1, make([]uint32, ResultsSize(15))))
}

func BenchmarkDispatch(b *testing.B) {
	cfg := BatchConfig{LaneCount: 1 << 16}
	results := make([]uint32, ResultsSize(cfg.LaneCount))
	b.ReportAllocs()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cfg.BaseNonceLow = uint32(i)
		_ = cfg.Dispatch(0, results)
	}
	b.SetBytes(int64(cfg.LaneCount) * 32)
}
