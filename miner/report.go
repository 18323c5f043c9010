package miner

import (
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/ethvanity/crunch/address"
	"github.com/ethvanity/crunch/types"
	"github.com/gofrs/flock"
)

// Found is one matched candidate.
type Found struct {
	// Nonce is the candidate index in the search space.
	Nonce uint64 `json:"nonce"`
	// Salt is the 32-byte salt, the nonce in its first eight bytes.
	Salt types.Salt `json:"salt"`
	// Address is the raw salt digest address, keccak256(salt)[12:].
	Address address.Address `json:"address"`
	// Deployment is the factory deployment address, when a derivation is
	// configured.
	Deployment *address.Address `json:"deployment,omitempty"`
}

// Target returns the address the search was actually after.
func (f Found) Target() address.Address {
	if f.Deployment != nil {
		return *f.Deployment
	}
	return f.Address
}

// Sink receives matches as the session finds them.
type Sink interface {
	Report(f Found) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(f Found) error

func (fn SinkFunc) Report(f Found) error {
	return fn(f)
}

// FileSink appends matches to a results file, one "salt -> address" line
// per match. A sibling lock file keeps concurrent sessions from
// interleaving writes.
type FileSink struct {
	mu   sync.Mutex
	file *os.File
	lock *flock.Flock
}

// NewFileSink opens or creates the results file at path. description goes
// in the header of a freshly created file.
func NewFileSink(path, description string) (*FileSink, error) {
	lock := flock.New(path + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return nil, err
	}
	if !locked {
		return nil, fmt.Errorf("results file %s is in use by another session", path)
	}

	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		_ = lock.Unlock()
		return nil, err
	}

	if info, err := file.Stat(); err == nil && info.Size() == 0 {
		_, _ = fmt.Fprintf(file, "# %s\n# Format: salt -> address\n# Started: %d\n", description, time.Now().Unix())
	}

	return &FileSink{file: file, lock: lock}, nil
}

func (s *FileSink) Report(f Found) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := fmt.Fprintf(s.file, "%s -> %s\n", f.Salt.String(), f.Target().Checksum())
	return err
}

func (s *FileSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	err := s.file.Close()
	if lockErr := s.lock.Unlock(); err == nil {
		err = lockErr
	}
	return err
}
