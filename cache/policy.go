package cache

// Policy decides which unsuccessful lookups become negative entries.
// Successful lookups are always cached.
type Policy struct {
	// CacheNotFound remembers names the catalog has no record for.
	CacheNotFound bool

	// CacheFailures remembers names whose lookup failed in transport or
	// decoding. Caller cancellation and rejected fetches are never cached
	// regardless.
	CacheFailures bool
}

// DefaultPolicy remembers every outcome, so a name costs at most one
// remote fetch per session even when the catalog is failing.
func DefaultPolicy() Policy {
	return Policy{
		CacheNotFound: true,
		CacheFailures: true,
	}
}

// StrictPolicy remembers not-found results only; failed lookups are
// attempted again on the next resolution.
func StrictPolicy() Policy {
	return Policy{
		CacheNotFound: true,
		CacheFailures: false,
	}
}

// ShouldStore reports whether a lookup with the given outcome is cached.
func (p Policy) ShouldStore(o Outcome) bool {
	switch o {
	case OutcomeFetched:
		return true
	case OutcomeNotFound:
		return p.CacheNotFound
	case OutcomeFailed:
		return p.CacheFailures
	default:
		return false
	}
}
