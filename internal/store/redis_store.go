package store

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// keyPrefix namespaces collection keys per profile so one Redis
// instance can hold state for many clients.
const keyPrefix = "trackside:state:"

// RedisStore implements Store on Redis. Values persist without TTL.
type RedisStore struct {
	client *redis.Client
	owner  string // profile ID or device ID owning this state
}

// NewRedisStore creates a store scoped to the given owner.
func NewRedisStore(client *redis.Client, owner string) *RedisStore {
	return &RedisStore{
		client: client,
		owner:  owner,
	}
}

func (s *RedisStore) key(collection string) string {
	return keyPrefix + s.owner + ":" + collection
}

// Load reads and unmarshals the collection stored under key.
func (s *RedisStore) Load(ctx context.Context, key string, dest interface{}) error {
	tracer := otel.Tracer("store")
	ctx, span := tracer.Start(ctx, "store.Load",
		trace.WithAttributes(attribute.String("store.key", key)),
	)
	defer span.End()

	data, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err != nil {
		if err == redis.Nil {
			span.SetAttributes(attribute.String("store.result", "absent"))
			return ErrNoRecord
		}
		span.RecordError(err)
		return fmt.Errorf("redis get error: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		span.RecordError(err)
		return fmt.Errorf("malformed stored value for %q: %w", key, err)
	}

	span.SetAttributes(attribute.String("store.result", "hit"))
	return nil
}

// Save marshals value and writes it through under key.
func (s *RedisStore) Save(ctx context.Context, key string, value interface{}) error {
	tracer := otel.Tracer("store")
	ctx, span := tracer.Start(ctx, "store.Save",
		trace.WithAttributes(attribute.String("store.key", key)),
	)
	defer span.End()

	data, err := json.Marshal(value)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("marshal error: %w", err)
	}

	if err := s.client.Set(ctx, s.key(key), data, 0).Err(); err != nil {
		span.RecordError(err)
		return fmt.Errorf("redis set error: %w", err)
	}
	return nil
}
