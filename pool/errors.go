package pool

import "errors"

// ErrInvalidConfiguration is the root of every validation failure reported
// by this package. Wrapped errors name the offending field and value, so
// callers can branch with errors.Is and still log something useful.
var ErrInvalidConfiguration = errors.New("invalid pool configuration")
