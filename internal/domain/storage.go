package domain

import "context"

// DefaultStorageKey is the key the cart blob is persisted under.
const DefaultStorageKey = "simple_shop_cart_v1"

// Storage is a durable key/value store holding opaque blobs. It plays the
// role of browser local storage: one writer at a time, last write wins.
type Storage interface {
	// Get returns the stored value and whether the key exists.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
}

// Settings carries what the cart store and pricing need instead of globals.
type Settings struct {
	StorageKey string
	Catalog    *Catalog
}
