package batch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
)

// ProgressUpdate is what the runner reports as games finish.
type ProgressUpdate struct {
	RunID     string    `json:"run_id"`
	Completed int       `json:"completed"`
	Total     int       `json:"total"`
	Failed    int       `json:"failed"`
	Timestamp time.Time `json:"timestamp"`
}

// Publisher pushes run progress somewhere observers can see it.
type Publisher interface {
	Publish(ctx context.Context, update ProgressUpdate) error
	Close() error
}

// RedisPublisher publishes progress to a Redis channel, throttled so a
// fast run does not flood subscribers. Dropped updates are fine; the
// final one always goes out.
type RedisPublisher struct {
	client  *redis.Client
	channel string
	limiter *rate.Limiter
	log     *logrus.Logger
}

// NewRedisPublisher connects to Redis and verifies the connection.
func NewRedisPublisher(addr, password, channel string, log *logrus.Logger) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return &RedisPublisher{
		client:  client,
		channel: channel,
		limiter: rate.NewLimiter(rate.Every(250*time.Millisecond), 1),
		log:     log,
	}, nil
}

// Publish sends the update if the rate limiter allows it. Final updates
// (completed+failed == total) bypass the throttle.
func (p *RedisPublisher) Publish(ctx context.Context, update ProgressUpdate) error {
	final := update.Completed+update.Failed >= update.Total
	if !final && !p.limiter.Allow() {
		return nil
	}

	payload, err := json.Marshal(update)
	if err != nil {
		return fmt.Errorf("failed to marshal progress update: %w", err)
	}
	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("failed to publish progress: %w", err)
	}
	return nil
}

func (p *RedisPublisher) Close() error {
	return p.client.Close()
}
