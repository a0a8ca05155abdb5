package shuffle

import (
	"math/rand"
	"sync"

	zlog "github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/osa030/negativespace/internal/domain/track"
)

// Pool plays every track once per pass before any repeats.
//
// The queue holds the ids not yet played in the current pass. It is
// refilled with every id except the current one when it runs dry, so a
// pass boundary never repeats the track that just finished.
type Pool struct {
	mu     sync.Mutex
	rng    *rand.Rand
	queue  []track.ID
	passes int
}

// NewPool creates an empty pooled sequencer.
func NewPool(rng *rand.Rand) *Pool {
	return &Pool{
		rng:   rng,
		queue: make([]track.ID, 0),
	}
}

// Name returns the policy name.
func (p *Pool) Name() string {
	return PolicyPool
}

// Next removes and returns a random id from the current pass.
func (p *Pool) Next(ids []track.ID, current track.ID) (track.ID, bool) {
	if len(ids) == 0 {
		return track.NoID, false
	}
	if len(ids) == 1 {
		return ids[0], true
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// The current track counts as played in this pass, even when it was
	// picked by hand rather than drawn from the queue.
	p.queue = lo.Without(p.queue, current)

	if len(p.queue) == 0 {
		p.queue = lo.Without(ids, current)
		p.passes++
		zlog.Debug().Msgf("shuffle: pool refilled: pass=%d size=%d excluded=%s", p.passes, len(p.queue), current)
	}

	i := p.rng.Intn(len(p.queue))
	next := p.queue[i]
	p.queue = append(p.queue[:i], p.queue[i+1:]...)

	zlog.Debug().Msgf("shuffle: picked %s, remaining in pass: %d", next, len(p.queue))
	return next, true
}

// Remaining returns a copy of the ids left in the current pass.
func (p *Pool) Remaining() []track.ID {
	p.mu.Lock()
	defer p.mu.Unlock()

	result := make([]track.ID, len(p.queue))
	copy(result, p.queue)
	return result
}

// Passes returns how many times the queue has been refilled.
func (p *Pool) Passes() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.passes
}
