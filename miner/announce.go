package miner

import (
	"context"

	"github.com/ethvanity/crunch/address"
	"github.com/ethvanity/crunch/utils"
	"github.com/floatdrop/lru"
	"github.com/go-zeromq/zmq4"
)

// TopicFound is the frame subscribers filter on.
const TopicFound = "found"

const defaultAnnounceCache = 1024

// Announcer publishes matches over a ZeroMQ PUB socket as two-frame
// messages, topic then JSON payload. Addresses already announced recently
// are skipped so restarted subscribers replaying a resumed search do not
// drown in duplicates.
type Announcer struct {
	sock   zmq4.Socket
	recent *lru.LRU[address.Address, struct{}]
}

// NewAnnouncer binds a PUB socket on endpoint, e.g. "tcp://127.0.0.1:18083".
// cacheSize bounds the recently-announced set, defaulted when zero.
func NewAnnouncer(ctx context.Context, endpoint string, cacheSize int) (*Announcer, error) {
	if cacheSize <= 0 {
		cacheSize = defaultAnnounceCache
	}
	sock := zmq4.NewPub(ctx)
	if err := sock.Listen(endpoint); err != nil {
		return nil, err
	}
	return &Announcer{
		sock:   sock,
		recent: lru.New[address.Address, struct{}](cacheSize),
	}, nil
}

func (a *Announcer) Report(f Found) error {
	key := f.Target()
	if a.recent.Get(key) != nil {
		return nil
	}
	a.recent.Set(key, struct{}{})

	payload, err := utils.MarshalJSON(f)
	if err != nil {
		return err
	}
	return a.sock.Send(zmq4.NewMsgFrom([]byte(TopicFound), payload))
}

func (a *Announcer) Close() error {
	return a.sock.Close()
}
