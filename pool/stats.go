package pool

// Stats holds usage accounting for a pool. All counters are zero unless
// the pool was constructed with Config.TrackStats set.
type Stats struct {
	// Used is the number of data bytes currently granted, rounded up to
	// step granularity.
	Used int

	// Peak is the high-water mark of Used.
	Peak int

	// Need is the total number of bytes callers asked for.
	Need int

	// Real is the total number of bytes actually granted (Need rounded up
	// to step granularity per request). Real - Need is internal waste.
	Real int

	// Fails counts failed allocation attempts.
	Fails int

	// Allocs counts allocation attempts, successful or not.
	Allocs int

	// PredHits counts allocations served from the chunk prediction hint.
	// The hint is recorded but not consulted by the scanner, since any
	// shortcut would break the strict first-fit ordering; the counter
	// stays zero.
	PredHits int
}

// Stats returns a copy of the pool's usage counters.
func (p *Pool) Stats() Stats {
	return p.stats
}

// wastePct returns the internal waste percentage (real vs. need), or 0
// when nothing was granted.
func (s Stats) wastePct() int {
	if s.Real == 0 {
		return 0
	}
	return (s.Real - s.Need) * 100 / s.Real
}

// predPct returns the prediction hit percentage over all attempts.
func (s Stats) predPct() int {
	if s.Allocs == 0 {
		return 0
	}
	return s.PredHits * 100 / s.Allocs
}
