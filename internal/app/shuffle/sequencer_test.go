package shuffle

import (
	"math/rand"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osa030/negativespace/internal/domain/track"
)

func seeded(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

func catalogIDs(n int) []track.ID {
	ids := make([]track.ID, n)
	for i := range ids {
		ids[i] = track.ID(i + 1)
	}
	return ids
}

func TestNew(t *testing.T) {
	tests := []struct {
		name     string
		policy   string
		wantName string
		wantErr  bool
	}{
		{name: "pool", policy: PolicyPool, wantName: PolicyPool},
		{name: "default is pool", policy: "", wantName: PolicyPool},
		{name: "random", policy: PolicyRandom, wantName: PolicyRandom},
		{name: "unknown", policy: "round-robin", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seq, err := New(tt.policy, nil)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantName, seq.Name())
		})
	}
}

func TestSequencers_NoImmediateRepeat(t *testing.T) {
	factories := map[string]func(*rand.Rand) Sequencer{
		PolicyPool:   func(r *rand.Rand) Sequencer { return NewPool(r) },
		PolicyRandom: func(r *rand.Rand) Sequencer { return NewRejection(r) },
	}

	for name, factory := range factories {
		t.Run(name, func(t *testing.T) {
			for size := 2; size <= 6; size++ {
				for seed := int64(0); seed < 20; seed++ {
					seq := factory(seeded(seed))
					ids := catalogIDs(size)
					current := ids[int(seed)%size]

					for step := 0; step < 50; step++ {
						next, ok := seq.Next(ids, current)
						require.True(t, ok)
						require.NotEqual(t, current, next, "size=%d seed=%d step=%d", size, seed, step)
						require.Contains(t, ids, next)
						current = next
					}
				}
			}
		})
	}
}

func TestSequencers_SingleTrack(t *testing.T) {
	for _, seq := range []Sequencer{NewPool(seeded(1)), NewRejection(seeded(1))} {
		t.Run(seq.Name(), func(t *testing.T) {
			ids := []track.ID{7}
			for i := 0; i < 5; i++ {
				next, ok := seq.Next(ids, 7)
				assert.True(t, ok)
				assert.Equal(t, track.ID(7), next)
			}
		})
	}
}

func TestSequencers_EmptyCatalog(t *testing.T) {
	for _, seq := range []Sequencer{NewPool(seeded(1)), NewRejection(seeded(1))} {
		t.Run(seq.Name(), func(t *testing.T) {
			next, ok := seq.Next(nil, track.NoID)
			assert.False(t, ok)
			assert.Equal(t, track.NoID, next)
		})
	}
}

func TestPool_FirstRefillExcludesCurrent(t *testing.T) {
	pool := NewPool(seeded(3))
	ids := []track.ID{1, 2, 3}

	assert.Empty(t, pool.Remaining())

	next, ok := pool.Next(ids, 1)
	require.True(t, ok)
	assert.Contains(t, []track.ID{2, 3}, next)
	assert.Equal(t, 1, pool.Passes())

	// The refill was exactly {2,3}; one was drawn, the other remains.
	remaining := pool.Remaining()
	require.Len(t, remaining, 1)
	assert.ElementsMatch(t, []track.ID{2, 3}, append(remaining, next))
}

func TestPool_PassCoverage(t *testing.T) {
	ids := []track.ID{1, 2, 3}

	for seed := int64(0); seed < 50; seed++ {
		pool := NewPool(seeded(seed))
		current := track.ID(1)

		first, _ := pool.Next(ids, current)
		second, _ := pool.Next(ids, first)
		assert.ElementsMatch(t, []track.ID{2, 3}, []track.ID{first, second}, "seed=%d", seed)
		assert.Empty(t, pool.Remaining())

		// Second pass excludes the track now playing.
		third, _ := pool.Next(ids, second)
		assert.NotEqual(t, second, third)
		assert.Equal(t, 2, pool.Passes())
		assert.ElementsMatch(t, lo.Without(ids, second, third), pool.Remaining(), "seed=%d", seed)
	}
}

func TestPool_EveryTrackOncePerPass(t *testing.T) {
	ids := catalogIDs(8)

	for seed := int64(0); seed < 20; seed++ {
		pool := NewPool(seeded(seed))
		current := track.NoID

		// The first pass has nothing to exclude.
		seen := make(map[track.ID]int)
		for i := 0; i < len(ids); i++ {
			next, _ := pool.Next(ids, current)
			seen[next]++
			current = next
		}
		assert.Len(t, seen, len(ids))
		for id, n := range seen {
			assert.Equal(t, 1, n, "id %d repeated within a pass", id)
		}

		// Later passes cover every id except the one current at refill time.
		for pass := 0; pass < 5; pass++ {
			excluded := current
			seen = make(map[track.ID]int)
			for i := 0; i < len(ids)-1; i++ {
				next, _ := pool.Next(ids, current)
				seen[next]++
				current = next
			}
			assert.Len(t, seen, len(ids)-1)
			assert.NotContains(t, seen, excluded)
		}
	}
}

func TestPool_HandPickedTrackLeavesPass(t *testing.T) {
	pool := NewPool(seeded(11))
	ids := []track.ID{1, 2, 3}

	first, _ := pool.Next(ids, 1)
	left := pool.Remaining()[0]

	// The listener picks the remaining track by hand; the pool must not
	// hand it back immediately.
	next, ok := pool.Next(ids, left)
	require.True(t, ok)
	assert.NotEqual(t, left, next)
	assert.NotEqual(t, track.NoID, first)
}

func TestPool_EndToEndScenario(t *testing.T) {
	ids := []track.ID{1, 2, 3}

	for seed := int64(0); seed < 30; seed++ {
		pool := NewPool(seeded(seed))
		played := []track.ID{1}
		current := track.ID(1)

		for i := 0; i < 3; i++ {
			next, ok := pool.Next(ids, current)
			require.True(t, ok)
			played = append(played, next)
			current = next
		}

		assert.Equal(t, 2, pool.Passes(), "seed=%d", seed)
		assert.Subset(t, played, ids)
		for i := 1; i < len(played); i++ {
			assert.NotEqual(t, played[i-1], played[i], "seed=%d played=%v", seed, played)
		}
	}
}
