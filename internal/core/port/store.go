package port

import "context"

// KeyValueStore is the persistence contract: opaque string keys, byte values.
// Get returns domain.ErrNotFound for a missing key and Delete of a missing key
// is not an error.
type KeyValueStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context, prefix string) ([]string, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}
