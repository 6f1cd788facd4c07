package sink

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/go-redis/redis/v8"
)

const (
	// Every event goes out twice: once on the channel scoped to the source and
	// once on the firehose channel all dashboard clients subscribe to.
	sourceChannelPrefix = "source_status."
	allSourcesChannel   = "source_status.all"
)

var ctx = context.Background()

// RedisSink publishes status events over redis pub/sub.
type RedisSink struct {
	inner *redis.Client
}

func NewRedisSink() (*RedisSink, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT")),
		Password: os.Getenv("REDIS_PASSWD"),
		DB:       0, // use default DB
	})
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, err
	}
	return &RedisSink{inner: client}, nil
}

func (s *RedisSink) Push(event *StatusEvent) error {
	if event == nil {
		return nil
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}
	if err := s.inner.Publish(ctx, sourceChannelPrefix+event.SourceId, payload).Err(); err != nil {
		return err
	}
	return s.inner.Publish(ctx, allSourcesChannel, payload).Err()
}
