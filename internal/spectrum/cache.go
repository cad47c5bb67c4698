// SPDX-License-Identifier: MIT
package spectrum

import (
	"sort"
	"sync"
)

// maxIdlePerLength bounds how many idle plans are retained for one signal
// length. Concurrent calls at the same length can check out more than this
// many plans; the surplus is dropped on release instead of pooled.
const maxIdlePerLength = 4

// CacheInfo is a read-only snapshot of the cache state, for monitoring and
// tests.
type CacheInfo struct {
	Count   int   `json:"cached_signal_lengths"`
	Lengths []int `json:"signal_lengths"`
}

// planCache pools execution plans by signal length. Plans own mutable
// buffers, so a plan is checked out for exclusive use and returned when the
// analysis is done; a fresh plan is built when no idle one is available.
//
// The number of distinct cached lengths is bounded by maxEntries. When a new
// length would exceed the bound the whole cache is cleared first. Entries
// are cheap to rebuild and request patterns tend to reuse a small set of
// lengths, so batch eviction is preferred over per-entry bookkeeping.
//
// The generation counter makes clears atomic with respect to in-flight
// checkouts: a plan checked out before a clear carries a stale generation
// and is discarded on release rather than re-inserted into the new state.
type planCache struct {
	mu         sync.Mutex
	maxEntries int
	gen        uint64
	idle       map[int][]*plan
	lengths    map[int]struct{}
}

func newPlanCache(maxEntries int) *planCache {
	return &planCache{
		maxEntries: maxEntries,
		idle:       make(map[int][]*plan),
		lengths:    make(map[int]struct{}),
	}
}

// acquire checks out a plan for signals of length n, building one if no idle
// plan exists. The expensive plan construction happens outside the lock.
func (c *planCache) acquire(n int) *plan {
	c.mu.Lock()
	if pool := c.idle[n]; len(pool) > 0 {
		p := pool[len(pool)-1]
		c.idle[n] = pool[:len(pool)-1]
		p.gen = c.gen
		c.mu.Unlock()
		return p
	}

	// New length at capacity clears the whole cache before inserting.
	if _, known := c.lengths[n]; !known && len(c.lengths) >= c.maxEntries {
		c.clearLocked()
	}
	c.lengths[n] = struct{}{}
	gen := c.gen
	c.mu.Unlock()

	p := newPlan(n)
	p.gen = gen
	return p
}

// release returns a checked-out plan to the pool. Plans from a generation
// that has since been cleared, and plans beyond the idle cap, are dropped.
func (c *planCache) release(p *plan) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if p.gen != c.gen {
		return
	}
	if pool := c.idle[p.length]; len(pool) < maxIdlePerLength {
		c.idle[p.length] = append(pool, p)
	}
}

// clear discards all cached plans and buffers.
func (c *planCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
}

func (c *planCache) clearLocked() {
	c.gen++
	c.idle = make(map[int][]*plan)
	c.lengths = make(map[int]struct{})
}

// info reports the distinct signal lengths currently cached, in ascending
// order.
func (c *planCache) info() CacheInfo {
	c.mu.Lock()
	defer c.mu.Unlock()

	lengths := make([]int, 0, len(c.lengths))
	for n := range c.lengths {
		lengths = append(lengths, n)
	}
	sort.Ints(lengths)

	return CacheInfo{Count: len(c.lengths), Lengths: lengths}
}
