package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"newsletter-go/internal/domain"
	"newsletter-go/internal/models"
)

const subscriptionIndexKey = "subscriptions"

// RedisSubscriberRepository stores each subscription as a hash and indexes its id
// in a set, both in a single MULTI/EXEC.
type RedisSubscriberRepository struct {
	client *redis.Client
	tracer trace.Tracer
}

func NewRedisSubscriberRepository(client *redis.Client) *RedisSubscriberRepository {
	return &RedisSubscriberRepository{
		client: client,
		tracer: otel.Tracer("redis.repository"),
	}
}

func SubscriptionKey(id string) string {
	return "subscription:" + id
}

func (r *RedisSubscriberRepository) Insert(ctx context.Context, subscriber domain.NewSubscriber) (models.Subscription, error) {
	record := models.NewSubscription(subscriber.Email().String(), subscriber.Name().String())

	ctx, span := startInsertSpan(ctx, r.tracer, record, attribute.String("db.system", "redis"))
	defer span.End()

	id := record.ID.String()
	_, err := r.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, SubscriptionKey(id),
			"id", id,
			"email", record.Email,
			"name", record.Name,
			"subscribed_at", record.SubscribedAt.Format(time.RFC3339Nano),
		)
		pipe.SAdd(ctx, subscriptionIndexKey, id)
		return nil
	})
	if err != nil {
		span.RecordError(err)
		return models.Subscription{}, fmt.Errorf("failed to save subscription to redis: %w", err)
	}

	span.SetAttributes(attribute.Bool("success", true))
	return record, nil
}
