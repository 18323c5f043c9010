package utils

import (
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// SplitWork distributes workSize independent work items over routines.
// Each item is claimed exactly once via a shared counter; do must be safe to
// call concurrently for distinct workIndex values.
func SplitWork(routines int, workSize uint64, do func(workIndex uint64, routineIndex int) error, init func(routines, routineIndex int) error) error {
	if routines <= 0 {
		routines = max(runtime.NumCPU()-routines, 4)
	}

	if workSize < uint64(routines) {
		routines = int(workSize)
	}

	var counter atomic.Uint64

	if init != nil {
		for routineIndex := 0; routineIndex < routines; routineIndex++ {
			if err := init(routines, routineIndex); err != nil {
				return err
			}
		}
	}

	var eg errgroup.Group

	for routineIndex := 0; routineIndex < routines; routineIndex++ {
		innerRoutineIndex := routineIndex
		eg.Go(func() error {
			var err error

			for {
				workIndex := counter.Add(1)
				if workIndex > workSize {
					return nil
				}

				if err = do(workIndex-1, innerRoutineIndex); err != nil {
					return err
				}
			}
		})
	}
	return eg.Wait()
}

// SplitWorkChunks is SplitWork over [0, workSize) in contiguous chunks of
// chunkSize, claimed whole. The last chunk may be short.
func SplitWorkChunks(routines int, workSize, chunkSize uint64, do func(start, count uint64, routineIndex int) error, init func(routines, routineIndex int) error) error {
	if chunkSize == 0 {
		chunkSize = 1
	}
	chunks := (workSize + chunkSize - 1) / chunkSize
	return SplitWork(routines, chunks, func(chunk uint64, routineIndex int) error {
		start := chunk * chunkSize
		return do(start, min(chunkSize, workSize-start), routineIndex)
	}, init)
}
