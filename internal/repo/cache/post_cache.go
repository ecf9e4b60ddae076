package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"board/internal/entity"
	"board/pkg/logger"

	"github.com/redis/go-redis/v9"
)

// Bounds how long a copy written back after a racing invalidation survives.
const postTTL = 5 * time.Minute

// PostCache keeps post hashes in redis under board:post:<id>. Every failure
// is logged and reported as a miss so callers fall back to the database.
type PostCache struct {
	client *redis.Client
	logger *logger.Logger
}

func NewPostCache(client *redis.Client, logger *logger.Logger) *PostCache {
	return &PostCache{client: client, logger: logger}
}

func postKey(id int) string {
	return fmt.Sprintf("board:post:%d", id)
}

func (c *PostCache) Get(id int) (*entity.Post, bool) {
	if c.client == nil {
		return nil, false
	}

	ctx := context.Background()
	values, err := c.client.HGetAll(ctx, postKey(id)).Result()
	if err != nil {
		c.logger.Warn("Failed to read post %d from cache: %v", id, err)
		return nil, false
	}
	if len(values) == 0 {
		return nil, false
	}

	cachedID, err := strconv.Atoi(values["id"])
	if err != nil || cachedID != id {
		return nil, false
	}

	return &entity.Post{
		ID:       cachedID,
		Title:    values["title"],
		Content:  values["content"],
		Filename: values["filename"],
		Filepath: values["filepath"],
	}, true
}

func (c *PostCache) Set(post *entity.Post) {
	if c.client == nil || post == nil {
		return
	}

	ctx := context.Background()
	key := postKey(post.ID)
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, key, map[string]interface{}{
			"id":       post.ID,
			"title":    post.Title,
			"content":  post.Content,
			"filename": post.Filename,
			"filepath": post.Filepath,
		})
		pipe.Expire(ctx, key, postTTL)
		return nil
	})
	if err != nil {
		c.logger.Warn("Failed to cache post %d: %v", post.ID, err)
	}
}

func (c *PostCache) Invalidate(id int) {
	if c.client == nil {
		return
	}

	if err := c.client.Del(context.Background(), postKey(id)).Err(); err != nil {
		c.logger.Warn("Failed to invalidate cached post %d: %v", id, err)
	}
}
