package shuffle

import (
	"math/rand"
	"sync"

	"github.com/osa030/negativespace/internal/domain/track"
)

// Rejection draws uniformly from the catalog until the draw differs from
// the current track. It only rules out immediate repeats.
type Rejection struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRejection creates a rejection-sampling sequencer.
func NewRejection(rng *rand.Rand) *Rejection {
	return &Rejection{rng: rng}
}

// Name returns the policy name.
func (r *Rejection) Name() string {
	return PolicyRandom
}

// Next returns a random id other than current.
func (r *Rejection) Next(ids []track.ID, current track.ID) (track.ID, bool) {
	if len(ids) == 0 {
		return track.NoID, false
	}
	if len(ids) == 1 {
		return ids[0], true
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for {
		next := ids[r.rng.Intn(len(ids))]
		if next != current {
			return next, true
		}
	}
}
