// Package redis wires a Redis-backed Store into flowexpr.
package redis

import (
	goredis "github.com/redis/go-redis/v9"

	corestore "github.com/flowexpr-go/flowexpr/internal/store"
	rstore "github.com/flowexpr-go/flowexpr/redis/internal/store"
)

// NewStore returns a Store that persists run records in Redis under the
// given key prefix.
func NewStore(client *goredis.Client, prefix string) corestore.Store {
	return rstore.New(client, prefix)
}
