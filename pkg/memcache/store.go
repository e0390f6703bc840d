// Package mem holds the short-lived key/value stores used to cache LLM
// query expansions.
package mem

import (
	"context"
	"time"
)

// Store is a string cache with per-key expiry. Get reports a miss with
// ok == false and a nil error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
}
