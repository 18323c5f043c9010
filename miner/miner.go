package miner

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/dolthub/swiss"
	"github.com/ethvanity/crunch/address"
	"github.com/ethvanity/crunch/derive"
	"github.com/ethvanity/crunch/kernel"
	"github.com/ethvanity/crunch/match"
	"github.com/ethvanity/crunch/types"
	"github.com/ethvanity/crunch/utils"
)

// DeployMode selects the derivation applied on top of the raw salt digest.
type DeployMode int

const (
	// DigestOnly searches the plain keccak256(salt) address with no factory
	// in the picture.
	DigestOnly DeployMode = iota
	// ModeCreate2 derives the CREATE2 address of Factory deploying
	// InitCodeHash with the guarded salt.
	ModeCreate2
	// ModeCreate3 derives the CREATE3 child of the proxy Factory deploys at
	// the guarded salt.
	ModeCreate3
)

// Derivation describes how a candidate salt turns into a deployment address.
type Derivation struct {
	Mode         DeployMode
	Guard        derive.Guard
	Factory      address.Address
	InitCodeHash types.Hash
}

// Address resolves the deployment address for a raw salt.
func (d *Derivation) Address(salt types.Salt) address.Address {
	guarded := d.Guard.Salt(salt)
	switch d.Mode {
	case ModeCreate2:
		return derive.Create2(d.Factory, guarded, d.InitCodeHash)
	case ModeCreate3:
		return derive.Create3(d.Factory, guarded)
	default:
		return address.Address{}
	}
}

// Config carries everything a search session needs.
type Config struct {
	Matcher *match.Matcher

	// LaneCount is the number of candidates hashed per dispatch.
	LaneCount uint32

	// Routines is the worker pool size, NumCPU when zero or below.
	Routines int

	// StartNonce is the 64-bit nonce of the first candidate. Searches can be
	// resumed by recording the nonce reached and starting there.
	StartNonce uint64

	// MaxCycles stops the session after this many dispatches. Zero runs
	// until the context is cancelled.
	MaxCycles uint64

	// Derivation, when set, maps matched salts to deployment addresses.
	Derivation *Derivation

	// MatchDerived applies the pattern to the derived deployment address
	// instead of the raw salt digest. Costs extra host hashing per lane.
	MatchDerived bool

	Sinks []Sink
}

const defaultLaneCount = 1 << 20

// Session is one running search over the 64-bit nonce space.
type Session struct {
	cfg     Config
	results []uint32
	seen    *swiss.Map[address.Address, types.Salt]

	baseNonce uint64
	cycles    uint64
	found     uint64
	started   time.Time
}

// NewSession validates a configuration and allocates the session buffers.
func NewSession(cfg Config) (*Session, error) {
	if cfg.Matcher == nil {
		return nil, errors.New("no matcher")
	}
	if cfg.LaneCount == 0 {
		cfg.LaneCount = defaultLaneCount
	}
	if cfg.MatchDerived && cfg.Derivation == nil {
		return nil, errors.New("match on derived address needs a derivation")
	}
	if cfg.Derivation != nil && cfg.Derivation.Mode == DigestOnly {
		return nil, errors.New("derivation with no deploy mode")
	}
	return &Session{
		cfg:       cfg,
		results:   make([]uint32, kernel.ResultsSize(cfg.LaneCount)),
		seen:      swiss.NewMap[address.Address, types.Salt](1 << 10),
		baseNonce: cfg.StartNonce,
	}, nil
}

// Hashes returns the number of candidates hashed so far.
func (s *Session) Hashes() uint64 {
	return s.cycles * uint64(s.cfg.LaneCount)
}

// Found returns the number of distinct matches reported so far.
func (s *Session) Found() uint64 {
	return s.found
}

// Nonce returns the base nonce the next dispatch will start from.
func (s *Session) Nonce() uint64 {
	return s.baseNonce
}

// Run dispatches batches until the context is cancelled or MaxCycles is
// reached. Matches are pushed to the configured sinks as they are found.
func (s *Session) Run(ctx context.Context) error {
	s.started = time.Now()
	lastStatus := s.started

	utils.Logf("Miner", "Searching %s, %d candidates per dispatch, difficulty %s",
		s.cfg.Matcher.String(), s.cfg.LaneCount, s.cfg.Matcher.Difficulty().String())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		batch := kernel.BatchConfig{
			BaseNonceLow:  uint32(s.baseNonce),
			BaseNonceHigh: uint32(s.baseNonce >> 32),
			LaneCount:     s.cfg.LaneCount,
			Pattern:       s.cfg.Matcher.Config(),
		}
		cycleStart := time.Now()
		if err := batch.Dispatch(s.cfg.Routines, s.results); err != nil {
			return err
		}
		dispatchElapsed := time.Since(cycleStart)
		if err := s.scan(&batch); err != nil {
			return err
		}
		if utils.IsLogLevelDebug() {
			utils.Debugf("Miner", "cycle %d: base nonce %d, dispatch %s, scan %s",
				s.cycles, s.baseNonce, dispatchElapsed, time.Since(cycleStart)-dispatchElapsed)
		}

		s.baseNonce += uint64(s.cfg.LaneCount)
		s.cycles++

		if now := time.Now(); now.Sub(lastStatus) >= time.Second {
			lastStatus = now
			utils.Noticef("Miner", "%s, %d found, %d hashes, nonce %d, uptime %s",
				utils.HashRate(s.Hashes(), now.Sub(s.started)), s.found, s.Hashes(),
				s.baseNonce, utils.Uptime(now.Sub(s.started)))
		}

		if s.cfg.MaxCycles > 0 && s.cycles >= s.cfg.MaxCycles {
			return nil
		}
	}
}

// scan walks the results buffer of one dispatch, applies the pattern and
// pushes fresh matches to the sinks.
func (s *Session) scan(batch *kernel.BatchConfig) error {
	var mu sync.Mutex
	var matched []Found

	err := utils.SplitWorkChunks(s.cfg.Routines, uint64(batch.LaneCount), 1<<14,
		func(start, count uint64, _ int) error {
			for lane := uint32(start); lane < uint32(start+count); lane++ {
				slot := s.results[int(lane)*kernel.SlotWords : (int(lane)+1)*kernel.SlotWords]

				var words [8]uint32
				copy(words[:], slot[2:])
				candidate := address.FromDigest(types.HashFromWords(words))

				f := Found{
					Nonce:   uint64(slot[0]) | uint64(slot[1])<<32,
					Salt:    types.SaltFromNonce(slot[0], slot[1]),
					Address: candidate,
				}

				target := candidate
				if s.cfg.MatchDerived {
					deployed := s.cfg.Derivation.Address(f.Salt)
					f.Deployment = &deployed
					target = deployed
				}
				if !s.cfg.Matcher.Match(target) {
					continue
				}
				if s.cfg.Derivation != nil && f.Deployment == nil {
					deployed := s.cfg.Derivation.Address(f.Salt)
					f.Deployment = &deployed
				}
				mu.Lock()
				matched = append(matched, f)
				mu.Unlock()
			}
			return nil
		}, nil)
	if err != nil {
		return err
	}

	for _, f := range matched {
		key := f.Address
		if f.Deployment != nil {
			key = *f.Deployment
		}
		if s.seen.Has(key) {
			continue
		}
		s.seen.Put(key, f.Salt)
		s.found++
		for _, sink := range s.cfg.Sinks {
			if err := sink.Report(f); err != nil {
				return err
			}
		}
	}
	return nil
}
