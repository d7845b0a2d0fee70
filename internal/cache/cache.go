// Package cache is a thin redis layer in front of the read-heavy listing
// queries. A missing or unreachable redis degrades to direct database reads;
// no caller treats a cache miss as an error.
package cache

import (
	"context"
	"encoding/json"
	"strconv"
	"time"

	"github.com/21f1006580/quiz-master/config"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	KeySubjectList = "subjects:list"
	KeyQuizList    = "quiz:list"
	KeyQuizDetails = "quiz:details"
)

const (
	ExpiryShort  = time.Minute
	ExpiryMedium = 5 * time.Minute
	ExpiryLong   = 30 * time.Minute
)

type Cache struct {
	client *redis.Client
}

func NewCache(cfg *config.Config) *Cache {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Warn().Err(err).Str("addr", cfg.Redis.Addr).Msg("Redis cache not reachable, falling back to direct reads")
	} else {
		log.Info().Str("addr", cfg.Redis.Addr).Msg("Redis cache initialized")
	}

	return &Cache{client: client}
}

// Get unmarshals the cached value into dest, reporting whether it was found.
func (c *Cache) Get(key string, dest interface{}) bool {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			log.Debug().Err(err).Str("key", key).Msg("cache get failed")
		}
		return false
	}
	if err := json.Unmarshal(raw, dest); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("cache value unmarshal failed")
		return false
	}
	return true
}

func (c *Cache) Set(key string, value interface{}, expiry time.Duration) {
	raw, err := json.Marshal(value)
	if err != nil {
		log.Debug().Err(err).Str("key", key).Msg("cache value marshal failed")
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := c.client.Set(ctx, key, raw, expiry).Err(); err != nil {
		log.Debug().Err(err).Str("key", key).Msg("cache set failed")
	}
}

// DeletePattern removes every key matching the glob pattern.
func (c *Cache) DeletePattern(pattern string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	iter := c.client.Scan(ctx, 0, pattern, 0).Iterator()
	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		log.Debug().Err(err).Str("pattern", pattern).Msg("cache scan failed")
		return
	}
	if len(keys) > 0 {
		if err := c.client.Del(ctx, keys...).Err(); err != nil {
			log.Debug().Err(err).Str("pattern", pattern).Msg("cache delete failed")
		}
	}
}

// InvalidateSubjects drops the cached subject listings.
func (c *Cache) InvalidateSubjects() {
	c.DeletePattern(KeySubjectList + "*")
}

// InvalidateQuizzes drops cached quiz listings and details. With a zero
// quizID everything quiz-related is cleared.
func (c *Cache) InvalidateQuizzes(quizID uint) {
	c.DeletePattern(KeyQuizList + "*")
	if quizID != 0 {
		c.DeletePattern(KeyQuizDetails + ":" + strconv.FormatUint(uint64(quizID), 10))
	} else {
		c.DeletePattern(KeyQuizDetails + "*")
	}
}
