// Package notify pushes change events to subscribers after a mutation has been stored.
package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

type EventType string

const (
	BookingCreated       EventType = "booking.created"
	BookingStatusChanged EventType = "booking.status_changed"
	ListingAvailability  EventType = "listing.availability_changed"
	ListingDeleted       EventType = "listing.deleted"
)

type Event struct {
	Type       EventType `json:"type"`
	Kind       string    `json:"kind"`
	ID         string    `json:"id"`
	Status     string    `json:"status,omitempty"`
	Recipients []string  `json:"recipients,omitempty"`
	At         time.Time `json:"at"`
}

type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Noop drops every event.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

type redisPublisher struct {
	rdb     *redis.Client
	channel string
}

func NewRedis(rdb *redis.Client, channel string) Publisher {
	return &redisPublisher{rdb: rdb, channel: channel}
}

func (p *redisPublisher) Publish(ctx context.Context, ev Event) error {
	if ev.At.IsZero() {
		ev.At = time.Now().UTC()
	}
	b, err := json.Marshal(ev)
	if err != nil {
		return err
	}
	if err := p.rdb.Publish(ctx, p.channel, b).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", ev.Type, err)
	}
	return nil
}

// Emit publishes and logs failures. A lost notification never fails the caller,
// subscribers can always fall back to re-reading.
func Emit(ctx context.Context, p Publisher, log *slog.Logger, ev Event) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, ev); err != nil && log != nil {
		log.Warn("notify failed", "type", ev.Type, "id", ev.ID, "err", err)
	}
}
