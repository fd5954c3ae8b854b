package repository

import (
	"context"
	"errors"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"newsletter-go/internal/domain"
	"newsletter-go/internal/models"
)

// ErrDuplicateSubscription is returned when the backend refuses a record because
// a uniqueness rule added outside this service already holds the email.
var ErrDuplicateSubscription = errors.New("subscription already stored")

// SubscriberRepository persists validated subscribers. Insert assigns the id and
// subscription time; implementations must be safe for concurrent use and must not
// deduplicate by email.
type SubscriberRepository interface {
	Insert(ctx context.Context, subscriber domain.NewSubscriber) (models.Subscription, error)
}

func startInsertSpan(ctx context.Context, tracer trace.Tracer, record models.Subscription, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	attrs = append([]attribute.KeyValue{
		attribute.String("subscriber.id", record.ID.String()),
		attribute.String("subscriber.email", record.Email),
		attribute.String("operation", "database.write"),
	}, attrs...)
	return tracer.Start(ctx, "subscriber.repository.insert", trace.WithAttributes(attrs...))
}

type InMemorySubscriberRepository struct {
	mu            sync.RWMutex
	subscriptions []models.Subscription
	tracer        trace.Tracer
	failWith      error
}

func NewInMemorySubscriberRepository() *InMemorySubscriberRepository {
	return &InMemorySubscriberRepository{
		tracer: otel.Tracer("subscriber-repository"),
	}
}

func (r *InMemorySubscriberRepository) Insert(ctx context.Context, subscriber domain.NewSubscriber) (models.Subscription, error) {
	record := models.NewSubscription(subscriber.Email().String(), subscriber.Name().String())

	_, span := startInsertSpan(ctx, r.tracer, record, attribute.String("db.system", "memory"))
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.failWith != nil {
		span.RecordError(r.failWith)
		return models.Subscription{}, r.failWith
	}

	r.subscriptions = append(r.subscriptions, record)
	span.SetAttributes(attribute.Bool("success", true))
	return record, nil
}

// All returns a copy of every stored subscription in insertion order.
func (r *InMemorySubscriberRepository) All() []models.Subscription {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Subscription, len(r.subscriptions))
	copy(result, r.subscriptions)
	return result
}

// FailWith makes every following Insert return err. A nil err restores normal behaviour.
func (r *InMemorySubscriberRepository) FailWith(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.failWith = err
}
