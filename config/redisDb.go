package config

import (
	"log"
	"os"

	"github.com/bsm/redislock"
	"github.com/redis/go-redis/v9"
)

var (
	rdb    *redis.Client
	locker *redislock.Client
)

func GetRedisDB() *redis.Client {
	return rdb
}

// GetRedisLock returns the distributed lock client, nil when Redis is
// not configured. Callers must handle the nil case.
func GetRedisLock() *redislock.Client {
	return locker
}

// ConnectRedis dials Redis when REDIS_HOST is set. The lock client
// guards payment allocation; without Redis the database row locks are
// the only isolation, which is fine for a single instance.
func ConnectRedis() {
	host := os.Getenv("REDIS_HOST")
	if host == "" {
		log.Printf("REDIS_HOST not set; skipping redis")
		return
	}
	port := os.Getenv("REDIS_PORT")
	if port == "" {
		port = "6379"
	}

	rdb = redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	locker = redislock.New(rdb)
	log.Printf("redis client configured (%s:%s)", host, port)
}
