// Package redis owns the connection to the Redis instance backing the
// admission-control window counters. The service holds no rate-limit state
// of its own; if this connection is down the admission gate fails closed.
package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultPingTimeout = 5 * time.Second

// Config captures the settings for establishing the Redis connection.
type Config struct {
	Addr     string
	Password string
	DB       int
	// PingTimeout bounds the startup connectivity check. Defaults to
	// defaultPingTimeout when zero.
	PingTimeout time.Duration
}

// Connect initialises the Redis client and validates connectivity with a
// ping, so a misconfigured counter backend is caught at startup rather than
// on the first admission check.
func Connect(ctx context.Context, cfg Config) (*redis.Client, error) {
	timeout := cfg.PingTimeout
	if timeout <= 0 {
		timeout = defaultPingTimeout
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return client, nil
}
