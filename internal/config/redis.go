package config

import (
	"context"
	"crypto/tls"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a Redis client from REDIS_* environment variables
// and verifies the connection with a short ping.  Redis backs the login
// rate limiter and the dashboard cache, both of which degrade to
// pass-through without it, so a failed connection returns nil rather than
// an error.
//
// Recognized variables:
//
//	REDIS_HOST, REDIS_PORT – server host and port; wins over REDIS_ADDR
//	REDIS_ADDR             – host:port shorthand
//	REDIS_PASSWORD         – optional password
//	REDIS_DB               – database number, default 0
//	REDIS_TLS              – "true" or "1" enables TLS
func NewRedisClient() *redis.Client {
	opts := &redis.Options{
		Addr:     redisAddr(),
		Password: os.Getenv("REDIS_PASSWORD"),
	}
	if n, err := strconv.Atoi(os.Getenv("REDIS_DB")); err == nil {
		opts.DB = n
	}
	if v := os.Getenv("REDIS_TLS"); v == "1" || strings.EqualFold(v, "true") {
		opts.TLSConfig = &tls.Config{InsecureSkipVerify: true}
	}
	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}

func redisAddr() string {
	if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
		return host + ":" + port
	}
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}
