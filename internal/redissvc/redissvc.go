package redissvc

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ChangesChannel is the pub/sub channel carrying product change events.
const ChangesChannel = "products:changed"

// ChangeEvent tells other instances that the products table changed.
type ChangeEvent struct {
	Origin string    `json:"origin"`
	Op     string    `json:"op"`
	Name   string    `json:"name"`
	At     time.Time `json:"at"`
}

type RedisService struct {
	rdb      *redis.Client
	instance string
}

func NewRedisService(rdb *redis.Client) *RedisService {
	return &RedisService{
		rdb:      rdb,
		instance: uuid.NewString(),
	}
}

// Instance identifies this process in published events.
func (s *RedisService) Instance() string {
	return s.instance
}

// Publish broadcasts e, stamped with this instance as origin.
func (s *RedisService) Publish(ctx context.Context, e ChangeEvent) error {
	e.Origin = s.instance
	if e.At.IsZero() {
		e.At = time.Now().UTC()
	}
	data, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("encode change event: %w", err)
	}
	return s.rdb.Publish(ctx, ChangesChannel, data).Err()
}

// Subscribe calls fn for every event published by another instance until ctx
// is done. It returns once the subscription is confirmed by the server.
func (s *RedisService) Subscribe(ctx context.Context, fn func(ChangeEvent)) error {
	sub := s.rdb.Subscribe(ctx, ChangesChannel)
	if _, err := sub.Receive(ctx); err != nil {
		sub.Close()
		return fmt.Errorf("subscribe %s: %w", ChangesChannel, err)
	}

	go func() {
		defer sub.Close()
		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					return
				}
				var e ChangeEvent
				if err := json.Unmarshal([]byte(msg.Payload), &e); err != nil {
					log.Printf("ignoring malformed change event: %v", err)
					continue
				}
				if e.Origin == s.instance {
					continue
				}
				fn(e)
			}
		}
	}()
	return nil
}
