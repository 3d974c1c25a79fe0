package store

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

func ConnectRedis() (*redis.Client, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
		Protocol: 2,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("could not connect to redis: %w", err)
	}

	return client, nil
}

// ViewTracker keeps a rolling window of per-video view counts in a Redis
// sorted set, one set per day. Trending scoring uses the windowed delta
// instead of lifetime views when a tracker is configured.
type ViewTracker struct {
	client *redis.Client
	window int // days
}

func NewViewTracker(client *redis.Client) *ViewTracker {
	return &ViewTracker{client: client, window: 7}
}

func dayKey(t time.Time) string {
	return "views:" + t.Format("2006-01-02")
}

func (vt *ViewTracker) RecordView(videoID int64) error {
	key := dayKey(time.Now())
	pipe := vt.client.Pipeline()
	pipe.ZIncrBy(context.Background(), key, 1, fmt.Sprintf("%d", videoID))
	pipe.Expire(context.Background(), key, time.Duration(vt.window+1)*24*time.Hour)
	if _, err := pipe.Exec(context.Background()); err != nil {
		return fmt.Errorf("failed to record view: %w", err)
	}
	return nil
}

// ViewDelta sums the video's views over the tracker window.
func (vt *ViewTracker) ViewDelta(videoID int64) (float64, error) {
	member := fmt.Sprintf("%d", videoID)
	var total float64

	for i := 0; i < vt.window; i++ {
		key := dayKey(time.Now().AddDate(0, 0, -i))
		score, err := vt.client.ZScore(context.Background(), key, member).Result()
		if err == redis.Nil {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("failed to read view delta: %w", err)
		}
		total += score
	}
	return total, nil
}
