package checkers

import (
	"context"
	"time"

	goredis "github.com/redis/go-redis/v9"
)

type RedisChecker struct {
	client *goredis.Client
}

func NewRedisChecker(client *goredis.Client) *RedisChecker {
	return &RedisChecker{client: client}
}

func (c *RedisChecker) Name() string { return "redis" }

func (c *RedisChecker) Check(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, time.Second)
	defer cancel()
	return c.client.Ping(ctx).Err()
}
