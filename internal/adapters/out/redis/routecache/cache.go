// Package routecache implements the route stop cache on Redis. Route stop
// lists are reference data that change rarely but are joined into every
// candidate query, so they are kept in Redis with a TTL and re-read from the
// database on a miss.
package routecache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"dispatch/internal/core/domain/model/kernel"
	"dispatch/internal/pkg/errs"

	"github.com/redis/go-redis/v9"
)

// stopSeparator joins stop names in the cached value. Stop names never
// contain newlines.
const stopSeparator = "\n"

// defaultTTL bounds staleness after a fleet-registry route edit.
const defaultTTL = time.Hour

// Cache is a Redis-backed implementation of queries.RouteStopCache.
type Cache struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a route stop cache over an existing Redis client.
func New(client *redis.Client) *Cache {
	return &Cache{
		client: client,
		ttl:    defaultTTL,
	}
}

// GetStops returns the cached stop list for a route.
// Returns errs.ErrObjectNotFound on a cache miss.
func (c *Cache) GetStops(ctx context.Context, kind string, routeID kernel.UUID) ([]string, error) {
	value, err := c.client.Get(ctx, key(kind, routeID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, errs.NewObjectNotFoundError("route stops", routeID.String())
		}
		return nil, err
	}

	if value == "" {
		return []string{}, nil
	}

	return strings.Split(value, stopSeparator), nil
}

// SetStops stores the stop list for a route with the cache TTL.
func (c *Cache) SetStops(ctx context.Context, kind string, routeID kernel.UUID, stops []string) error {
	return c.client.Set(ctx, key(kind, routeID), strings.Join(stops, stopSeparator), c.ttl).Err()
}

func key(kind string, routeID kernel.UUID) string {
	return fmt.Sprintf("dispatch:route-stops:%s:%s", kind, routeID)
}
