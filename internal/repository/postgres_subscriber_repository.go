package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"newsletter-go/internal/domain"
	"newsletter-go/internal/models"
	"newsletter-go/internal/pg"
)

const insertSubscriptionQuery = `INSERT INTO subscriptions (id, email, name, subscribed_at) VALUES ($1, $2, $3, $4)`

type PostgresSubscriberRepository struct {
	db      *sql.DB
	timeout time.Duration
	tracer  trace.Tracer
}

// NewPostgresSubscriberRepository uses db's connection pool. A positive timeout
// bounds each insert, including the wait for a pooled connection.
func NewPostgresSubscriberRepository(db *sql.DB, timeout time.Duration) *PostgresSubscriberRepository {
	return &PostgresSubscriberRepository{
		db:      db,
		timeout: timeout,
		tracer:  otel.Tracer("postgres.repository"),
	}
}

func (r *PostgresSubscriberRepository) Insert(ctx context.Context, subscriber domain.NewSubscriber) (models.Subscription, error) {
	record := models.NewSubscription(subscriber.Email().String(), subscriber.Name().String())

	ctx, span := startInsertSpan(ctx, r.tracer, record,
		attribute.String("db.system", "postgresql"),
		attribute.String("db.sql.table", "subscriptions"),
	)
	defer span.End()

	if r.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	_, err := r.db.ExecContext(ctx, insertSubscriptionQuery,
		record.ID,
		record.Email,
		record.Name,
		record.SubscribedAt,
	)
	if err != nil {
		span.RecordError(err)
		if pg.IsDuplicateKeyError(err) {
			span.SetAttributes(attribute.Bool("duplicate", true))
			return models.Subscription{}, errors.Join(ErrDuplicateSubscription, err)
		}
		return models.Subscription{}, fmt.Errorf("failed to insert subscription: %w", err)
	}

	span.SetAttributes(attribute.Bool("success", true))
	return record, nil
}
