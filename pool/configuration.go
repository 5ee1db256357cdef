// Package pool defines the validated, immutable configuration contract
// between a caller and a database-connection-pool engine. The Builder
// stages and validates sizing, timeout, validation, and customization
// parameters; Build commits them to a Configuration the engine consumes.
// The engine itself (acquisition, warm-up, idle eviction) lives elsewhere
// and is addressed here only through the boundary types Connection,
// ConnectionFactory, and PoolBuilder.
package pool

import (
	"reflect"
	"time"
)

// Configuration is an immutable snapshot of pool parameters produced by
// Builder.Build. Every field is fixed at build time and every accessor
// returns the captured value unchanged, so a Configuration is safe for
// unsynchronized concurrent reads.
type Configuration struct {
	connectionFactory       ConnectionFactory
	initialSize             int
	maxSize                 int
	maxIdleTime             time.Duration
	maxCreateConnectionTime time.Duration
	maxAcquireTime          time.Duration
	validationQuery         string
	hasValidationQuery      bool
	customizer              Customizer
}

// ConnectionFactory returns the factory the engine must use, exclusively,
// to create new connections.
func (c *Configuration) ConnectionFactory() ConnectionFactory {
	return c.connectionFactory
}

// InitialSize returns the warm-up count: connections the engine
// establishes eagerly before the pool is considered ready.
func (c *Configuration) InitialSize() int {
	return c.initialSize
}

// MaxSize returns the upper bound on simultaneously live connections.
func (c *Configuration) MaxSize() int {
	return c.maxSize
}

// MaxIdleTime returns the idle eviction threshold; zero means idle
// eviction is disabled.
func (c *Configuration) MaxIdleTime() time.Duration {
	return c.maxIdleTime
}

// MaxCreateConnectionTime returns the per-creation timeout; zero means no
// timeout.
func (c *Configuration) MaxCreateConnectionTime() time.Duration {
	return c.maxCreateConnectionTime
}

// MaxAcquireTime returns the per-acquire timeout, covering any creation
// the acquire triggers; zero means no timeout.
func (c *Configuration) MaxAcquireTime() time.Duration {
	return c.maxAcquireTime
}

// ValidationQuery returns the health-check statement and whether one was
// configured. When ok is false no validation query is ever executed.
func (c *Configuration) ValidationQuery() (query string, ok bool) {
	return c.validationQuery, c.hasValidationQuery
}

// Customizer returns the hook the engine must invoke exactly once with its
// internal PoolBuilder. Never nil.
func (c *Configuration) Customizer() Customizer {
	return c.customizer
}

// Equal reports whether two Configurations are observably identical: all
// scalar fields compare by value, the factory by identity, and the
// customizer by function identity. Two Builds of an unchanged Builder are
// always Equal; a pool only needs reconfiguring when Equal is false.
func (c *Configuration) Equal(other *Configuration) bool {
	if c == nil || other == nil {
		return c == other
	}
	return sameFactory(c.connectionFactory, other.connectionFactory) &&
		c.initialSize == other.initialSize &&
		c.maxSize == other.maxSize &&
		c.maxIdleTime == other.maxIdleTime &&
		c.maxCreateConnectionTime == other.maxCreateConnectionTime &&
		c.maxAcquireTime == other.maxAcquireTime &&
		c.validationQuery == other.validationQuery &&
		c.hasValidationQuery == other.hasValidationQuery &&
		reflect.ValueOf(c.customizer).Pointer() == reflect.ValueOf(other.customizer).Pointer()
}

// sameFactory compares factory identity without tripping over dynamic
// types that do not support ==. Comparable types use ==, pointer-like
// kinds compare by identity, and uncomparable value types (a struct
// carrying a slice or map) fall back to deep equality.
func sameFactory(a, b ConnectionFactory) bool {
	if a == nil || b == nil {
		return a == b
	}
	ra := reflect.ValueOf(a)
	rb := reflect.ValueOf(b)
	if ra.Type() != rb.Type() {
		return false
	}
	if ra.Type().Comparable() {
		return a == b
	}
	switch ra.Kind() {
	case reflect.Func, reflect.Map, reflect.Slice:
		return ra.Pointer() == rb.Pointer()
	default:
		return reflect.DeepEqual(a, b)
	}
}
