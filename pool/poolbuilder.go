package pool

import "time"

// PoolBuilder stages the engine-internal tuning knobs that are not part of
// the Configuration contract. An engine populates one with its own
// defaults, passes it to the configured Customizer exactly once, and reads
// the (possibly adjusted) values back before finalizing construction.
type PoolBuilder struct {
	// RetryAttempts is how many times an acquire retries after finding
	// the pool exhausted before giving up.
	RetryAttempts int

	// RetryDelay is the wait between acquire retries.
	RetryDelay time.Duration

	// EvictInterval is how often the idle eviction sweep runs.
	EvictInterval time.Duration
}

// Customizer is a synchronous extension hook invoked by the pool engine
// while it constructs its internal builder. It runs exactly once per pool
// construction, on the engine's calling goroutine.
type Customizer func(*PoolBuilder)
