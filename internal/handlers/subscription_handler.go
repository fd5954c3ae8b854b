package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"newsletter-go/internal/apperr"
	"newsletter-go/internal/domain"
	"newsletter-go/internal/logging"
	"newsletter-go/internal/service"
)

const subscribedMessage = "New subscriber details has been saved"

// subscriptionForm tells an absent field (nil) apart from an empty one.
type subscriptionForm struct {
	Name  *string `form:"name" binding:"required"`
	Email *string `form:"email" binding:"required"`
}

type SubscriptionHandler struct {
	service *service.SubscriptionService
	logger  *logging.ContextLogger
	tracer  trace.Tracer
}

func NewSubscriptionHandler(service *service.SubscriptionService, logger *logging.ContextLogger) *SubscriptionHandler {
	return &SubscriptionHandler{
		service: service,
		logger:  logger,
		tracer:  otel.Tracer("subscription-handler"),
	}
}

func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	ctx, span := h.tracer.Start(c.Request.Context(), "subscription.handler.subscribe")
	defer span.End()

	form, err := decodeSubscriptionForm(c)
	if err != nil {
		h.logger.WarnWithTracing(ctx, "Invalid subscription form", logrus.Fields{
			"endpoint": "POST /subscriptions",
			"error":    err.Error(),
		})
		span.RecordError(err)
		respondError(c, err)
		return
	}
	h.logger.DebugWithTracing(ctx, "Decoded subscription form", logrus.Fields{
		"endpoint":     "POST /subscriptions",
		"content_type": c.ContentType(),
	})

	record, err := h.service.Subscribe(ctx, form)
	if err != nil {
		span.RecordError(err)
		respondError(c, err)
		return
	}

	span.SetAttributes(
		attribute.String("subscriber.id", record.ID.String()),
		attribute.Bool("success", true),
	)

	c.String(http.StatusOK, subscribedMessage)
}

// decodeSubscriptionForm reads the url-encoded body. Both fields must be present,
// but their values are left for domain validation.
func decodeSubscriptionForm(c *gin.Context) (domain.SubscriptionFormData, error) {
	var form subscriptionForm
	if err := c.ShouldBindWith(&form, binding.FormPost); err != nil {
		return domain.SubscriptionFormData{}, apperr.Unprocessable(decodeErrorMessage(err), err)
	}

	return domain.SubscriptionFormData{
		Name:  *form.Name,
		Email: *form.Email,
	}, nil
}

func decodeErrorMessage(err error) string {
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return "Failed to deserialize form body"
	}

	missing := make([]string, 0, len(validationErrs))
	for _, fe := range validationErrs {
		missing = append(missing, strings.ToLower(fe.Field()))
	}
	return "Failed to deserialize form body: missing field " + strings.Join(missing, ", ")
}
