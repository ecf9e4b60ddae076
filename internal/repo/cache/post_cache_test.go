package cache

import (
	"testing"
	"time"

	"board/internal/entity"
	"board/pkg/logger"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestPostKey(t *testing.T) {
	assert.Equal(t, "board:post:17", postKey(17))
}

func TestPostCache_NilClientIsDisabled(t *testing.T) {
	cache := NewPostCache(nil, logger.New())

	cache.Set(&entity.Post{ID: 1, Title: "t"})
	cache.Invalidate(1)
	post, ok := cache.Get(1)

	assert.Nil(t, post)
	assert.False(t, ok)
}

func TestPostCache_UnreachableRedisDegradesToMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	cache := NewPostCache(client, logger.New())

	assert.NotPanics(t, func() {
		cache.Set(&entity.Post{ID: 3, Title: "t", Content: "c"})
		cache.Invalidate(3)
	})
	post, ok := cache.Get(3)
	assert.Nil(t, post)
	assert.False(t, ok)
}
