package repository

import (
	"context"
	"encoding/json"
	"fmt"

	dapr "github.com/dapr/go-sdk/client"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"newsletter-go/internal/domain"
	"newsletter-go/internal/models"
)

// DaprStateSaver is the part of the Dapr client the repository needs.
type DaprStateSaver interface {
	SaveState(ctx context.Context, storeName, key string, data []byte, meta map[string]string, so ...dapr.StateOption) error
}

type DaprSubscriberRepository struct {
	client    DaprStateSaver
	tracer    trace.Tracer
	storeName string
}

func NewDaprSubscriberRepository(client DaprStateSaver, storeName string) *DaprSubscriberRepository {
	return &DaprSubscriberRepository{
		client:    client,
		tracer:    otel.Tracer("dapr.repository"),
		storeName: storeName,
	}
}

func (r *DaprSubscriberRepository) Insert(ctx context.Context, subscriber domain.NewSubscriber) (models.Subscription, error) {
	record := models.NewSubscription(subscriber.Email().String(), subscriber.Name().String())

	ctx, span := startInsertSpan(ctx, r.tracer, record,
		attribute.String("db.system", "dapr"),
		attribute.String("dapr.store", r.storeName),
	)
	defer span.End()

	data, err := json.Marshal(record)
	if err != nil {
		span.RecordError(err)
		return models.Subscription{}, fmt.Errorf("failed to marshal subscription: %w", err)
	}

	// The first-write concurrency option makes the save fail instead of
	// overwriting should an id ever collide.
	err = r.client.SaveState(ctx, r.storeName, SubscriptionKey(record.ID.String()), data, nil,
		dapr.WithConcurrency(dapr.StateConcurrencyFirstWrite))
	if err != nil {
		span.RecordError(err)
		return models.Subscription{}, fmt.Errorf("failed to save subscription to dapr state store: %w", err)
	}

	span.SetAttributes(attribute.Bool("success", true))
	return record, nil
}
