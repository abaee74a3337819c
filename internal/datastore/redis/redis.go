package redisClient

import (
	"fmt"
	"net"

	"github.com/go-redis/redis"
)

// NewRedis connects to host:port and pings it once.
func NewRedis(host, port string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: net.JoinHostPort(host, port),
		DB:   0,
	})

	if err := client.Ping().Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}
