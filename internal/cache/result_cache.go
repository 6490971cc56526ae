package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"gayish/internal/model"
)

// ResultCache handles Redis operations for analysis results keyed by image
// hash, so re-uploading the same screenshot skips the upstream call.
type ResultCache interface {
	Get(ctx context.Context, imageHash string) (*model.AnalysisRecord, error)
	Set(ctx context.Context, imageHash string, record *model.AnalysisRecord) error
}

type resultCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewResultCache creates a new result cache
func NewResultCache(client *redis.Client) ResultCache {
	return &resultCache{
		client: client,
		ttl:    24 * time.Hour, // Same screenshot within a day hits the cache
	}
}

func (c *resultCache) key(imageHash string) string {
	return fmt.Sprintf("analysis:%s", imageHash)
}

func (c *resultCache) Get(ctx context.Context, imageHash string) (*model.AnalysisRecord, error) {
	data, err := c.client.Get(ctx, c.key(imageHash)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var record model.AnalysisRecord
	if err := json.Unmarshal([]byte(data), &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (c *resultCache) Set(ctx context.Context, imageHash string, record *model.AnalysisRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(imageHash), data, c.ttl).Err()
}
