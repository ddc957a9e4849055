package match

import "sync/atomic"

// FetchBudget caps the number of article-body downloads in one run. It is
// initialized once per run, decremented on each fetch attempt regardless of
// outcome, and never replenished. The counter never goes below zero and
// TryAcquire never blocks: when the budget is gone, escalation tiers simply
// degrade to a title/summary-only decision.
type FetchBudget struct {
	n atomic.Int64
}

// NewFetchBudget returns a budget allowing n body fetches.
func NewFetchBudget(n int) *FetchBudget {
	b := &FetchBudget{}
	if n > 0 {
		b.n.Store(int64(n))
	}
	return b
}

// TryAcquire consumes one unit of budget. It returns false, without blocking,
// when the budget is exhausted.
func (b *FetchBudget) TryAcquire() bool {
	for {
		cur := b.n.Load()
		if cur <= 0 {
			return false
		}
		if b.n.CompareAndSwap(cur, cur-1) {
			return true
		}
	}
}

// Remaining reports the unused budget.
func (b *FetchBudget) Remaining() int {
	return int(b.n.Load())
}
