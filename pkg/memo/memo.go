// Package memo provides the caller-side memoization boundary around the
// schedule engine: a single-entry cache keyed by the structural identity of
// the full input tuple. Any change in any input recomputes the whole
// schedule; there is no partial or incremental recalculation.
package memo

import (
	"encoding/json"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/finance-tools/loan-schedule/pkg/cpiseries"
	"github.com/finance-tools/loan-schedule/pkg/schedule"
)

// hashable mirrors the structural identity of one engine invocation. The
// label function itself cannot be hashed; callers pass an identity token for
// it (e.g. a translation table version) as labelTag.
type hashable struct {
	Plans         []schedule.Plan
	RateChanges   []schedule.RateChange
	GracePeriods  []schedule.GracePeriod
	ExtraPayments []schedule.ExtraPayment
	Currency      string
	CPI           []cpiseries.Point
	LabelTag      string
}

// Key computes the structural hash of an input tuple.
func Key(in schedule.Input, labelTag string) (uint64, error) {
	raw, err := json.Marshal(hashable{
		Plans:         in.Plans,
		RateChanges:   in.RateChanges,
		GracePeriods:  in.GracePeriods,
		ExtraPayments: in.ExtraPayments,
		Currency:      in.Currency,
		CPI:           in.CPI.Points(),
		LabelTag:      labelTag,
	})
	if err != nil {
		return 0, err
	}
	return xxhash.Sum64(raw), nil
}

// Cache is a single-entry memoization cache holding the latest computation
// only. The zero value is ready to use and safe for concurrent callers.
type Cache struct {
	mu     sync.Mutex
	valid  bool
	key    uint64
	result *schedule.Result
}

// Compute returns the cached result when the input hash matches the stored
// entry, otherwise invokes compute and replaces the entry. If the input
// cannot be hashed the computation runs uncached.
func (c *Cache) Compute(in schedule.Input, labelTag string, compute func() *schedule.Result) *schedule.Result {
	key, err := Key(in, labelTag)
	if err != nil {
		return compute()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.valid && c.key == key {
		return c.result
	}

	result := compute()
	c.valid = true
	c.key = key
	c.result = result
	return result
}

// Invalidate drops the stored entry.
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.valid = false
	c.result = nil
}
