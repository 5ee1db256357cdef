package pool

import (
	"errors"
	"fmt"
	"sort"
	"time"
)

// Defaults applied to every new Builder. Timeouts default to zero, which
// is the disabled sentinel: no creation timeout and no acquire timeout.
const (
	DefaultInitialSize = 10
	DefaultMaxSize     = 10
	DefaultMaxIdleTime = 30 * time.Minute
)

// Builder stages and validates a pool Configuration before it is committed
// to an immutable value with Build.
//
// Every setter validates its argument at call time. A setter given an
// invalid argument leaves the staged value untouched and records a
// violation for that field; the violation is reported by Err and by Build,
// and is cleared by calling the same setter again with a valid argument.
// A Builder whose setters were only ever given valid arguments never fails
// Build.
//
// A Builder is reusable: Build does not consume it, and each Build
// snapshots the state at call time with no aliasing between the produced
// Configurations. A Builder is not safe for concurrent use by multiple
// goroutines; guarding it is the caller's responsibility.
type Builder struct {
	factory ConnectionFactory

	initialSize             int
	maxSize                 int
	maxIdleTime             time.Duration
	maxCreateConnectionTime time.Duration
	maxAcquireTime          time.Duration
	validationQuery         string
	hasValidationQuery      bool
	customizer              Customizer

	violations map[string]error
}

// NewBuilder returns a Builder for a pool backed by the given factory.
// The factory is fixed for the lifetime of the Builder. A nil factory is
// rejected with ErrInvalidConfiguration.
func NewBuilder(factory ConnectionFactory) (*Builder, error) {
	if factory == nil {
		return nil, fmt.Errorf("%w: connection factory must not be nil", ErrInvalidConfiguration)
	}
	return &Builder{
		factory:     factory,
		initialSize: DefaultInitialSize,
		maxSize:     DefaultMaxSize,
		maxIdleTime: DefaultMaxIdleTime,
		customizer:  func(*PoolBuilder) {},
		violations:  make(map[string]error),
	}, nil
}

// InitialSize sets how many connections the engine establishes eagerly
// during warm-up, bounded by the maximum size. Must not be negative.
func (b *Builder) InitialSize(n int) *Builder {
	if n < 0 {
		return b.reject("initialSize", fmt.Errorf("%w: initialSize must not be negative, got %d", ErrInvalidConfiguration, n))
	}
	b.clear("initialSize")
	b.initialSize = n
	return b
}

// MaxSize sets the upper bound on simultaneously live connections. Must be
// at least 1.
func (b *Builder) MaxSize(n int) *Builder {
	if n < 1 {
		return b.reject("maxSize", fmt.Errorf("%w: maxSize must be at least 1, got %d", ErrInvalidConfiguration, n))
	}
	b.clear("maxSize")
	b.maxSize = n
	return b
}

// MaxIdleTime sets how long a pooled connection may sit unused before the
// engine evicts it. Zero disables idle eviction. Must not be negative.
func (b *Builder) MaxIdleTime(d time.Duration) *Builder {
	if d < 0 {
		return b.reject("maxIdleTime", fmt.Errorf("%w: maxIdleTime must not be negative, got %v", ErrInvalidConfiguration, d))
	}
	b.clear("maxIdleTime")
	b.maxIdleTime = d
	return b
}

// MaxCreateConnectionTime bounds a single connection-creation call by the
// engine. Zero disables the timeout. Must not be negative.
func (b *Builder) MaxCreateConnectionTime(d time.Duration) *Builder {
	if d < 0 {
		return b.reject("maxCreateConnectionTime", fmt.Errorf("%w: maxCreateConnectionTime must not be negative, got %v", ErrInvalidConfiguration, d))
	}
	b.clear("maxCreateConnectionTime")
	b.maxCreateConnectionTime = d
	return b
}

// MaxAcquireTime bounds a single acquire call, including any connection
// creation the acquire triggers. Zero disables the timeout. Must not be
// negative.
func (b *Builder) MaxAcquireTime(d time.Duration) *Builder {
	if d < 0 {
		return b.reject("maxAcquireTime", fmt.Errorf("%w: maxAcquireTime must not be negative, got %v", ErrInvalidConfiguration, d))
	}
	b.clear("maxAcquireTime")
	b.maxAcquireTime = d
	return b
}

// ValidationQuery sets the health-check statement the engine runs against
// a candidate connection before handing it out. Leaving it unset disables
// validation entirely. The empty string cannot name a statement and is
// rejected.
func (b *Builder) ValidationQuery(query string) *Builder {
	if query == "" {
		return b.reject("validationQuery", fmt.Errorf("%w: validationQuery must not be empty", ErrInvalidConfiguration))
	}
	b.clear("validationQuery")
	b.validationQuery = query
	b.hasValidationQuery = true
	return b
}

// Customizer registers a hook the engine invokes exactly once with its
// internal PoolBuilder before finalizing construction. Must not be nil;
// the default is a no-op.
func (b *Builder) Customizer(fn Customizer) *Builder {
	if fn == nil {
		return b.reject("customizer", fmt.Errorf("%w: customizer must not be nil", ErrInvalidConfiguration))
	}
	b.clear("customizer")
	b.customizer = fn
	return b
}

// Err reports the outstanding violations recorded by earlier setter calls,
// or nil if every field holds a valid value. Violations are joined in
// field-name order.
func (b *Builder) Err() error {
	if len(b.violations) == 0 {
		return nil
	}
	fields := make([]string, 0, len(b.violations))
	for field := range b.violations {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	errs := make([]error, 0, len(fields))
	for _, field := range fields {
		errs = append(errs, b.violations[field])
	}
	return errors.Join(errs...)
}

// Build returns an immutable Configuration snapshot of the current staged
// state. If any violation is outstanding, Build returns it and no
// Configuration is produced.
func (b *Builder) Build() (*Configuration, error) {
	if err := b.Err(); err != nil {
		return nil, err
	}
	return &Configuration{
		connectionFactory:       b.factory,
		initialSize:             b.initialSize,
		maxSize:                 b.maxSize,
		maxIdleTime:             b.maxIdleTime,
		maxCreateConnectionTime: b.maxCreateConnectionTime,
		maxAcquireTime:          b.maxAcquireTime,
		validationQuery:         b.validationQuery,
		hasValidationQuery:      b.hasValidationQuery,
		customizer:              b.customizer,
	}, nil
}

// String renders the staged state for diagnostics. The customizer is
// omitted.
func (b *Builder) String() string {
	query := "<none>"
	if b.hasValidationQuery {
		query = b.validationQuery
	}
	return fmt.Sprintf("Builder{connectionFactory=%v, initialSize=%d, maxSize=%d, maxIdleTime=%v, maxCreateConnectionTime=%v, maxAcquireTime=%v, validationQuery=%s}",
		b.factory, b.initialSize, b.maxSize, b.maxIdleTime, b.maxCreateConnectionTime, b.maxAcquireTime, query)
}

func (b *Builder) reject(field string, err error) *Builder {
	b.violations[field] = err
	return b
}

func (b *Builder) clear(field string) {
	delete(b.violations, field)
}
