// Package livestate mirrors the latest reading of every box into Redis and
// republishes stored readings on a per box channel.
package livestate

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/diwise/smartbox-telemetry/internal/pkg/infrastructure/messaging"
	"github.com/diwise/smartbox-telemetry/pkg/types"
)

const ReadingStoredTopic string = "telemetry.readingStored"

const stateTTL = 24 * time.Hour

type Mirror interface {
	messaging.Publisher
	Ping(ctx context.Context) error
	Close() error
}

type Config struct {
	Addr     string
	Password string
	DB       int
}

type redisMirror struct {
	client *redis.Client
}

func New(ctx context.Context, cfg Config) (Mirror, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.Addr,
		Password:     cfg.Password,
		DB:           cfg.DB,
		PoolSize:     10,
		MinIdleConns: 2,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &redisMirror{client: client}, nil
}

func (m *redisMirror) Ping(ctx context.Context) error {
	return m.client.Ping(ctx).Err()
}

func (m *redisMirror) Close() error {
	return m.client.Close()
}

// PublishOnTopic only reacts to stored readings; other topics are ignored.
func (m *redisMirror) PublishOnTopic(ctx context.Context, message messaging.TopicMessage) error {
	if message.TopicName() != ReadingStoredTopic {
		return nil
	}

	reading := types.Reading{}
	if err := json.Unmarshal(message.Body(), &reading); err != nil {
		return fmt.Errorf("failed to unmarshal reading: %w", err)
	}

	pipe := m.client.Pipeline()

	key := StateKey(reading.BoxID)
	pipe.HSet(ctx, key, StateFields(reading))
	pipe.Expire(ctx, key, stateTTL)

	if reading.Location != nil {
		pipe.GeoAdd(ctx, GeoKey, &redis.GeoLocation{
			Name:      reading.BoxID,
			Longitude: reading.Location.Longitude,
			Latitude:  reading.Location.Latitude,
		})
	}

	pipe.Publish(ctx, ChannelName(reading.BoxID), message.Body())

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("redis pipeline failed: %w", err)
	}

	return nil
}

const GeoKey string = "smartbox:geo"

func StateKey(boxID string) string {
	return fmt.Sprintf("smartbox:%s:state", boxID)
}

func ChannelName(boxID string) string {
	return fmt.Sprintf("smartbox:%s:readings", boxID)
}

// StateFields flattens a reading into the hash stored under StateKey. Unknown
// values are stored as empty strings.
func StateFields(r types.Reading) map[string]any {
	fields := map[string]any{
		"box_id":      r.BoxID,
		"reading_id":  r.ID,
		"seq":         r.Seq,
		"verdict":     r.Verdict,
		"temperature": "",
		"humidity":    "",
		"timestamp":   r.Timestamp.Unix(),
		"received_at": r.ReceivedAt.Unix(),
	}

	if r.Temperature != nil {
		fields["temperature"] = *r.Temperature
	}
	if r.Humidity != nil {
		fields["humidity"] = *r.Humidity
	}
	if r.Location != nil {
		fields["lat"] = r.Location.Latitude
		fields["lng"] = r.Location.Longitude
	}

	return fields
}
