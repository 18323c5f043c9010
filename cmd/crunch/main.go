package main

import (
	"context"
	"encoding/binary"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/ethvanity/crunch/address"
	"github.com/ethvanity/crunch/derive"
	"github.com/ethvanity/crunch/match"
	"github.com/ethvanity/crunch/miner"
	"github.com/ethvanity/crunch/types"
	"github.com/ethvanity/crunch/utils"
)

var Version = "0.3"

func buildMatcher(pattern string, zeros, total uint, either bool) (*match.Matcher, error) {
	switch {
	case pattern != "":
		if zeros != 0 || total != 0 {
			return nil, fmt.Errorf("-pattern cannot be combined with zero thresholds")
		}
		return match.Compile(pattern)
	case zeros != 0 && total != 0 && either:
		return match.LeadingOrTotalZeros(uint8(zeros), uint8(total))
	case zeros != 0 && total != 0:
		return match.LeadingAndTotalZeros(uint8(zeros), uint8(total))
	case zeros != 0:
		return match.LeadingZeros(uint8(zeros))
	case total != 0:
		return match.TotalZeros(uint8(total))
	default:
		return nil, fmt.Errorf("no search target, pass -pattern, -zeros or -total")
	}
}

func buildGuard(caller string, chainId uint64) (g derive.Guard, err error) {
	if caller != "" {
		if g.Caller, err = address.FromString(caller); err != nil {
			return g, fmt.Errorf("bad -caller: %w", err)
		}
	}
	if chainId != 0 {
		binary.BigEndian.PutUint64(g.ChainID[types.HashSize-8:], chainId)
	}

	switch {
	case caller != "" && chainId != 0:
		g.Variant = derive.CrosschainSender
	case caller != "":
		g.Variant = derive.Sender
	case chainId != 0:
		g.Variant = derive.Crosschain
	default:
		g.Variant = derive.Random
	}
	return g, nil
}

func buildDerivation(mode, factory, caller, initCodeHash string, chainId uint64) (*miner.Derivation, error) {
	if mode == "digest" {
		return nil, nil
	}

	d := &miner.Derivation{}
	switch mode {
	case "create2":
		d.Mode = miner.ModeCreate2
		if initCodeHash == "" {
			return nil, fmt.Errorf("create2 needs -init-code-hash")
		}
		var err error
		if d.InitCodeHash, err = types.HashFromString(initCodeHash); err != nil {
			return nil, fmt.Errorf("bad -init-code-hash: %w", err)
		}
	case "create3":
		d.Mode = miner.ModeCreate3
		if initCodeHash != "" {
			return nil, fmt.Errorf("-init-code-hash has no effect on create3, the proxy is fixed")
		}
	default:
		return nil, fmt.Errorf("unknown -mode %q, want create3, create2 or digest", mode)
	}

	var err error
	if d.Factory, err = address.FromString(factory); err != nil {
		return nil, fmt.Errorf("bad -factory: %w", err)
	}
	if d.Guard, err = buildGuard(caller, chainId); err != nil {
		return nil, err
	}
	return d, nil
}

func main() {
	printVersion := flag.Bool("v", false, "Show version and exit")
	mode := flag.String("mode", "create3", "Deployment mode, create3, create2 or digest")
	pattern := flag.String("pattern", "", "Hex pattern, e.g. `baba`, `c0ffee...`, `...dead` or `fe...ef`")
	zeros := flag.Uint("zeros", 0, "Minimum leading zero bytes")
	total := flag.Uint("total", 0, "Minimum zero bytes anywhere in the address")
	either := flag.Bool("either", false, "With both -zeros and -total, match when either threshold holds")
	factory := flag.String("factory", "0xba5Ed099633D3B313e4D5F7bdc1305d3c28ba5Ed", "Deployer factory address")
	caller := flag.String("caller", "", "Caller address baked into the guarded salt, empty for unprotected salts")
	chainId := flag.Uint64("chain-id", 0, "Chain id baked into the guarded salt, 0 for cross-chain deploys")
	initCodeHash := flag.String("init-code-hash", "", "keccak256 of the init code, create2 only")
	matchDerived := flag.Bool("match-derived", false, "Match the pattern against the deployment address instead of the salt digest")
	start := flag.Uint64("start", 0, "Nonce to resume the search from")
	batch := flag.Uint("batch", 1<<20, "Candidates per dispatch")
	workers := flag.Int("workers", 0, "Worker goroutines, 0 for all CPUs")
	cycles := flag.Uint64("cycles", 0, "Stop after this many dispatches, 0 to run until interrupted")
	output := flag.String("output", "results.txt", "Results file, matches are appended as salt -> address lines")
	zmqEndpoint := flag.String("zmq", "", "ZeroMQ PUB endpoint announcing matches, e.g. tcp://127.0.0.1:18083, empty to disable")
	logFile := flag.String("log-file", "", "Append log output to this file instead of stdout")
	debugLog := flag.Bool("debug", false, "Debug logging")
	flag.Parse()

	if *printVersion {
		fmt.Println("crunch version", Version)
		os.Exit(0)
	}

	utils.GlobalLogLevel |= utils.LogLevelNotice
	if *debugLog {
		utils.GlobalLogLevel |= utils.LogLevelDebug
		utils.LogFile = true
	}
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
		if err != nil {
			utils.Fatalf("log file: %s", err)
		}
		defer f.Close()
		utils.LogWriter = f
	}

	matcher, err := buildMatcher(*pattern, *zeros, *total, *either)
	if err != nil {
		utils.Fatalf("%s", err)
	}

	derivation, err := buildDerivation(*mode, *factory, *caller, *initCodeHash, *chainId)
	if err != nil {
		utils.Fatalf("%s", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var sinks []miner.Sink

	fileSink, err := miner.NewFileSink(*output, matcher.String())
	if err != nil {
		utils.Fatalf("%s", err)
	}
	defer fileSink.Close()
	sinks = append(sinks, fileSink)

	if *zmqEndpoint != "" {
		announcer, err := miner.NewAnnouncer(ctx, *zmqEndpoint, 0)
		if err != nil {
			utils.Fatalf("announcer: %s", err)
		}
		defer announcer.Close()
		sinks = append(sinks, announcer)
	}

	sinks = append(sinks, miner.SinkFunc(func(f miner.Found) error {
		utils.Noticef("Miner", "FOUND %s nonce %d salt %s", f.Target().Checksum(), f.Nonce, f.Salt.String())
		return nil
	}))

	session, err := miner.NewSession(miner.Config{
		Matcher:      matcher,
		LaneCount:    uint32(*batch),
		Routines:     *workers,
		StartNonce:   *start,
		MaxCycles:    *cycles,
		Derivation:   derivation,
		MatchDerived: *matchDerived,
		Sinks:        sinks,
	})
	if err != nil {
		utils.Fatalf("%s", err)
	}

	err = session.Run(ctx)
	utils.Logf("Miner", "Stopped at nonce %d, %d found, resume with -start %d", session.Nonce(), session.Found(), session.Nonce())
	if err != nil && err != context.Canceled {
		utils.Fatalf("%s", err)
	}
}
