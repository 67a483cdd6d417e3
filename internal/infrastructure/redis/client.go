package redis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const dialTimeout = 3 * time.Second

// NewClient creates a Redis client and verifies the connection. redisURL is
// either a redis:// or rediss:// URL or a bare host:port.
func NewClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := parseOptions(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, opts.DialTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to ping redis at %s: %w", opts.Addr, err)
	}

	log.Info().Str("addr", opts.Addr).Int("db", opts.DB).Msg("connected to redis")

	return client, nil
}

func parseOptions(redisURL string) (*redis.Options, error) {
	var opts *redis.Options
	if strings.Contains(redisURL, "://") {
		parsed, err := redis.ParseURL(redisURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse redis URL: %w", err)
		}
		opts = parsed
	} else {
		if redisURL == "" {
			return nil, fmt.Errorf("failed to parse redis URL: empty address")
		}
		opts = &redis.Options{Addr: redisURL}
	}

	if opts.DialTimeout == 0 || opts.DialTimeout > dialTimeout {
		opts.DialTimeout = dialTimeout
	}
	return opts, nil
}
