// Package db defines the storage facade the discovery engine and the
// seed tooling consume. Drivers live in subpackages (redis, postgres).
package db

import (
	"context"
	"time"
)

// Store is the full facade a driver implements. Consumers depend on the
// narrow sub-interfaces instead.
type Store interface {
	Pinger
	IndexManager
	ShopSearcher
	ShopWriter
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// IndexManager provides composite index lifecycle operations.
type IndexManager interface {
	EnsureIndex(ctx context.Context, def *IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// ShopSearcher executes bounded shop lookups through a named index.
type ShopSearcher interface {
	SearchShops(ctx context.Context, q *ShopQuery) (*SearchResult, error)
}

// ShopDoc is one shop payload for ingestion, keyed by ID with flat
// string fields matching the index schema.
type ShopDoc struct {
	ID     string
	Fields map[string]string
}

// ShopWriter ingests shop documents. Used by seeding, not by discovery.
type ShopWriter interface {
	UpsertShops(ctx context.Context, docs []ShopDoc) error
}
