// Package store is the key-value entry store that journal records live in.
package store

import (
	"context"
	"errors"
)

// ErrClosed is returned by operations on a store whose context is done.
var ErrClosed = errors.New("store: closed")

// Pair is one result of a MultiGet. Value is nil when the key is absent.
type Pair struct {
	Key   string
	Value []byte
}

// Store maps string keys to serialized records.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	Keys(ctx context.Context) ([]string, error)
	MultiGet(ctx context.Context, keys []string) ([]Pair, error)
}

// Watcher is implemented by stores that can stream change notifications.
type Watcher interface {
	Watch(ctx context.Context) (<-chan Event, error)
}
