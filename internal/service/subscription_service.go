package service

import (
	"context"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"newsletter-go/internal/apperr"
	"newsletter-go/internal/domain"
	"newsletter-go/internal/logging"
	"newsletter-go/internal/models"
	"newsletter-go/internal/repository"
)

const saveFailedMessage = "Failed to save subscriber details"

type SubscriptionService struct {
	repo   repository.SubscriberRepository
	logger *logging.ContextLogger
	tracer trace.Tracer
}

func NewSubscriptionService(repo repository.SubscriberRepository, logger *logging.ContextLogger) *SubscriptionService {
	return &SubscriptionService{
		repo:   repo,
		logger: logger,
		tracer: otel.Tracer("subscription-service"),
	}
}

// Subscribe validates form and stores the subscriber with a single insert attempt.
// Invalid input yields a bad-request *apperr.AppError; a storage failure yields an
// internal one whose message does not reveal the cause.
func (s *SubscriptionService) Subscribe(ctx context.Context, form domain.SubscriptionFormData) (models.Subscription, error) {
	ctx = logging.WithFields(ctx, logrus.Fields{
		"subscriber_email": form.Email,
		"subscriber_name":  form.Name,
	})
	ctx, span := s.tracer.Start(ctx, "subscription.service.subscribe",
		trace.WithAttributes(
			attribute.String("subscriber.email", form.Email),
			attribute.String("subscriber.name", form.Name),
		))
	defer span.End()

	s.logger.InfoWithTracing(ctx, "Adding a new subscriber", nil)

	subscriber, err := domain.ParseNewSubscriber(form)
	if err != nil {
		s.logger.WarnWithTracing(ctx, "Rejected subscriber details", logrus.Fields{
			"reason": err.Error(),
		})
		span.SetAttributes(attribute.String("error.type", "validation_error"))
		span.SetStatus(codes.Error, err.Error())
		return models.Subscription{}, apperr.BadRequest(err.Error())
	}

	record, err := s.repo.Insert(ctx, subscriber)
	if err != nil {
		s.logger.ErrorWithTracing(ctx, saveFailedMessage, err, nil)
		span.RecordError(err)
		span.SetAttributes(attribute.String("error.type", "storage_error"))
		span.SetStatus(codes.Error, saveFailedMessage)
		return models.Subscription{}, apperr.Internal(saveFailedMessage, err)
	}

	s.logger.InfoWithTracing(ctx, "New subscriber details has been saved", logrus.Fields{
		"subscriber_id": record.ID.String(),
	})
	span.SetAttributes(
		attribute.String("subscriber.id", record.ID.String()),
		attribute.Bool("success", true),
	)

	return record, nil
}
