package domain

import (
	"context"
	"time"
)

// CacheRepository defines the interface for caching serialized payloads
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// CatalogFeed fetches the reference catalog from a remote source
type CatalogFeed interface {
	FetchCatalog(ctx context.Context) (*CatalogDocument, error)
}

// SavedFoundationRepository persists user bookmarks.
// Save is idempotent per (userID, brand, shadeName).
type SavedFoundationRepository interface {
	Save(ctx context.Context, userID, brand, shadeName string) (*SavedFoundation, error)
	Remove(ctx context.Context, userID, brand, shadeName string) error
	List(ctx context.Context, userID string) ([]SavedFoundation, error)
}
