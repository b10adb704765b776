// Package credentials persists the session material between runs: the
// access token and a JSON snapshot of the logged-in user.
package credentials

import "context"

// Keys used in the store. Nothing else is persisted here.
const (
	KeyAccessToken = "access_token"
	KeyCurrentUser = "current_user"
)

// Repository is an opaque key-value store. Get returns (nil, nil) for a
// missing key; Delete of a missing key is a no-op.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
