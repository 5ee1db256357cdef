package pool

import "context"

// Connection is a single live handle produced by a ConnectionFactory.
//
// The configuration layer never touches a Connection; the interface exists
// so the engine contract (validation queries, release) can be expressed in
// types rather than prose.
type Connection interface {
	// Exec runs a statement against the connection and discards the
	// result. Engines use it to run the configured validation query.
	Exec(ctx context.Context, statement string) error

	// Close releases the connection.
	Close(ctx context.Context) error
}

// ConnectionFactory creates connections on behalf of a pool engine. It is
// supplied by the caller at Builder creation time; a Configuration holds
// the factory but never invokes it.
type ConnectionFactory interface {
	CreateConnection(ctx context.Context) (Connection, error)
}
