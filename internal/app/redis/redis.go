package redis

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"shopfront/internal/app/config"

	"github.com/go-redis/redis/v8"
	"github.com/sirupsen/logrus"
)

const jwtPrefix = "jwt."

type Client struct {
	cfg    config.RedisConfig
	client *redis.Client
}

func New(ctx context.Context, cfg config.RedisConfig) (*Client, error) {
	client := &Client{cfg: cfg}

	redisClient := redis.NewClient(&redis.Options{
		Addr:        cfg.Host + ":" + strconv.Itoa(cfg.Port),
		Username:    cfg.User,
		Password:    cfg.Password,
		DB:          0,
		DialTimeout: cfg.DialTimeout,
		ReadTimeout: cfg.ReadTimeout,
	})

	client.client = redisClient

	if _, err := redisClient.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("cant ping redis: %w", err)
	}

	logrus.Info("redis connected")
	return client, nil
}

func (c *Client) Close() error {
	return c.client.Close()
}

func getJWTKey(tokenID string) string {
	return jwtPrefix + tokenID
}

// WriteJWTToBlacklist revokes a session token id until it would have expired anyway.
func (c *Client) WriteJWTToBlacklist(ctx context.Context, tokenID string, ttl time.Duration) error {
	return c.client.Set(ctx, getJWTKey(tokenID), true, ttl).Err()
}

// IsJWTBlacklisted reports whether the token id has been revoked.
func (c *Client) IsJWTBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	n, err := c.client.Exists(ctx, getJWTKey(tokenID)).Result()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
