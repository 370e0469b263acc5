// Package metadata is a small key/value table for client state that is not a
// record or a catalog: the cached access identity, the last successful sync
// time and the bearer token.
package metadata

import (
	"context"
)

// Well-known keys.
const (
	KeyAccessEmail     = "access_email"
	KeyAccessApproved  = "access_approved"
	KeyAccessCheckedAt = "access_checked_at"
	KeyLastSyncAt      = "last_sync_at"
	KeyAccessToken     = "access_token"
)

type Repository interface {
	// Get returns (nil, nil) when the key is absent.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	List(ctx context.Context) (map[string][]byte, error)
}
