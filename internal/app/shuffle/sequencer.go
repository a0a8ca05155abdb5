// Package shuffle chooses the next track to play without immediate repeats.
package shuffle

import (
	cryptoRand "crypto/rand"
	"encoding/binary"
	"math/rand"
	"time"

	"github.com/cockroachdb/errors"

	"github.com/osa030/negativespace/internal/domain/track"
)

// Policy names accepted by New.
const (
	PolicyPool   = "pool"
	PolicyRandom = "random"
)

// Sequencer picks the track that follows current.
type Sequencer interface {
	// Name returns the policy name.
	Name() string
	// Next returns the id to play after current. It never returns current
	// unless ids holds a single track. ok is false only when ids is empty.
	Next(ids []track.ID, current track.ID) (next track.ID, ok bool)
}

// New creates a sequencer for the named policy. A nil rng is replaced by a
// crypto-seeded source.
func New(policy string, rng *rand.Rand) (Sequencer, error) {
	if rng == nil {
		rng = NewRand()
	}

	switch policy {
	case PolicyPool, "":
		return NewPool(rng), nil
	case PolicyRandom:
		return NewRejection(rng), nil
	default:
		return nil, errors.Newf("unsupported shuffle policy: %s", policy)
	}
}

// NewRand returns a math/rand source seeded from crypto/rand, falling back
// to the wall clock.
func NewRand() *rand.Rand {
	var seed int64
	var buf [8]byte
	if _, err := cryptoRand.Read(buf[:]); err == nil {
		seed = int64(binary.LittleEndian.Uint64(buf[:]))
	} else {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed))
}
