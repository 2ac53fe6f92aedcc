// SPDX-License-Identifier: MIT

package shapley

import (
	"math/rand"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/IDEAL-Lab/shapley-value-simple-game/owner"
)

// utilityCache memoizes subset utility queries keyed by their canonical
// owner.Set.String() form. Reads may race with writes from other samples;
// the characteristic function is pure, so a torn write is merely a wasted
// recomputation, never an incorrect one.
type utilityCache struct {
	mu sync.RWMutex
	m  map[string]float64
}

func newUtilityCache() *utilityCache { return &utilityCache{m: make(map[string]float64)} }

func (c *utilityCache) get(game Game, subset owner.Set) float64 {
	key := subset.String()
	c.mu.RLock()
	u, ok := c.m[key]
	c.mu.RUnlock()
	if ok {
		return u
	}

	u = subsetUtility(game, subset)
	c.mu.Lock()
	c.m[key] = u
	c.mu.Unlock()
	return u
}

// PermutationMethod estimates Shapley values by Monte Carlo sampling over
// random owner permutations: for each of sampleSize permutations, it
// walks prefixes and accumulates each owner's marginal utility delta, then
// averages over all samples. rng drives every permutation's shuffle and
// must not be shared with a concurrently running sampler (math/rand.Rand is
// not safe for concurrent use); PermutationMethod seeds one private source
// per goroutine from rng instead of sharing it.
func PermutationMethod(game Game, sampleSize int, rng *rand.Rand) Values {
	cache := newUtilityCache()
	owners := game.OwnerSet.Slice()

	seeds := make([]int64, sampleSize)
	for i := range seeds {
		seeds[i] = rng.Int63()
	}

	parts := make([]Values, sampleSize)
	var g errgroup.Group
	for i := 0; i < sampleSize; i++ {
		i := i
		g.Go(func() error {
			local := rand.New(rand.NewSource(seeds[i]))
			shuffled := append([]owner.ID(nil), owners...)
			local.Shuffle(len(shuffled), func(a, b int) { shuffled[a], shuffled[b] = shuffled[b], shuffled[a] })

			lastUtility := 0.0
			set := owner.NewSet()
			sample := Values{}
			for _, o := range shuffled {
				set = set.Add(o)
				u := cache.get(game, set)
				sample[o] = u - lastUtility
				lastUtility = u
			}
			parts[i] = sample
			return nil
		})
	}
	_ = g.Wait()

	ans := reduceValues(parts)
	for k := range ans {
		ans[k] /= float64(sampleSize)
	}
	return ans
}
