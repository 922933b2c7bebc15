// Package redis publishes committed notifications over Redis pub/sub.
package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/heartmarshall/taskscope-backend/internal/domain"
)

// Event is the JSON message published for each notification.
type Event struct {
	ID                string    `json:"id"`
	RecipientUserID   string    `json:"recipientUserId"`
	TriggeredByUserID *string   `json:"triggeredByUserId,omitempty"`
	Type              string    `json:"type"`
	Message           string    `json:"message"`
	TaskID            *string   `json:"taskId,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

// Publisher sends notification events to one channel.
type Publisher struct {
	client  *goredis.Client
	channel string
	timeout time.Duration
}

// NewPublisher connects to redisURL and verifies the connection.
func NewPublisher(ctx context.Context, redisURL, channel string, timeout time.Duration) (*Publisher, error) {
	opts, err := goredis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := goredis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("connect to redis: %w", err)
	}

	return NewPublisherWithClient(client, channel, timeout), nil
}

// NewPublisherWithClient wraps an existing client.
func NewPublisherWithClient(client *goredis.Client, channel string, timeout time.Duration) *Publisher {
	return &Publisher{client: client, channel: channel, timeout: timeout}
}

// Publish sends one event per notification in a single pipeline.
func (p *Publisher) Publish(ctx context.Context, items []domain.Notification) error {
	if len(items) == 0 {
		return nil
	}
	if p.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	pipe := p.client.Pipeline()
	for _, n := range items {
		payload, err := json.Marshal(toEvent(n))
		if err != nil {
			return fmt.Errorf("marshal notification %s: %w", n.ID, err)
		}
		pipe.Publish(ctx, p.channel, payload)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("publish %d notifications: %w", len(items), err)
	}
	return nil
}

// Ping checks the connection.
func (p *Publisher) Ping(ctx context.Context) error {
	return p.client.Ping(ctx).Err()
}

// Close releases the client.
func (p *Publisher) Close() error {
	return p.client.Close()
}

func toEvent(n domain.Notification) Event {
	return Event{
		ID:                n.ID.String(),
		RecipientUserID:   n.RecipientUserID.String(),
		TriggeredByUserID: uuidString(n.TriggeredByUserID),
		Type:              n.Type.String(),
		Message:           n.Message,
		TaskID:            uuidString(n.TaskID),
		CreatedAt:         n.CreatedAt,
	}
}

func uuidString(id *uuid.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
