package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const scoreboardKey = "scoreboard:best"

// ScoreboardCache handles Redis ZSET operations for the global best-score
// board.
type ScoreboardCache interface {
	UpdateBest(ctx context.Context, deviceID string, score int) error
	GetTop(ctx context.Context, limit int) ([]ScoreboardEntry, error)
	GetRank(ctx context.Context, deviceID string) (int64, error)
}

// ScoreboardEntry represents a single scoreboard entry
type ScoreboardEntry struct {
	DeviceID string `json:"deviceId"`
	Score    int    `json:"score"`
	Rank     int    `json:"rank"`
}

type scoreboardCache struct {
	client *redis.Client
}

// NewScoreboardCache creates a new scoreboard cache
func NewScoreboardCache(client *redis.Client) ScoreboardCache {
	return &scoreboardCache{
		client: client,
	}
}

func (c *scoreboardCache) UpdateBest(ctx context.Context, deviceID string, score int) error {
	// GT keeps the member's highest score ever
	return c.client.ZAddGT(ctx, scoreboardKey, redis.Z{
		Score:  float64(score),
		Member: deviceID,
	}).Err()
}

func (c *scoreboardCache) GetTop(ctx context.Context, limit int) ([]ScoreboardEntry, error) {
	results, err := c.client.ZRevRangeWithScores(ctx, scoreboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]ScoreboardEntry, len(results))
	for i, z := range results {
		entries[i] = ScoreboardEntry{
			DeviceID: z.Member.(string),
			Score:    int(z.Score),
			Rank:     i + 1,
		}
	}
	return entries, nil
}

func (c *scoreboardCache) GetRank(ctx context.Context, deviceID string) (int64, error) {
	rank, err := c.client.ZRevRank(ctx, scoreboardKey, deviceID).Result()
	if err == redis.Nil {
		return -1, nil
	}
	return rank + 1, err // 1-indexed
}
