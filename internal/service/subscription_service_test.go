package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsletter-go/internal/apperr"
	"newsletter-go/internal/domain"
	"newsletter-go/internal/logging"
	"newsletter-go/internal/models"
	"newsletter-go/internal/repository"
)

type countingRepository struct {
	calls int
	err   error
}

func (r *countingRepository) Insert(ctx context.Context, subscriber domain.NewSubscriber) (models.Subscription, error) {
	r.calls++
	if r.err != nil {
		return models.Subscription{}, r.err
	}
	return models.NewSubscription(subscriber.Email().String(), subscriber.Name().String()), nil
}

func newTestService(repo repository.SubscriberRepository) (*SubscriptionService, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := logging.NewLoggerWithOutput(logrus.DebugLevel, &buf)
	return NewSubscriptionService(repo, logger), &buf
}

func logRecords(t *testing.T, buf *bytes.Buffer) []map[string]interface{} {
	t.Helper()
	var records []map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var record map[string]interface{}
		require.NoError(t, json.Unmarshal([]byte(line), &record))
		records = append(records, record)
	}
	return records
}

func TestSubscribe_StoresValidSubscriber(t *testing.T) {
	repo := repository.NewInMemorySubscriberRepository()
	svc, buf := newTestService(repo)

	record, err := svc.Subscribe(context.Background(), domain.SubscriptionFormData{
		Name:  "le guin",
		Email: "ursula_le_guin@gmail.com",
	})
	require.NoError(t, err)

	stored := repo.All()
	require.Len(t, stored, 1)
	assert.Equal(t, record, stored[0])
	assert.Equal(t, "le guin", stored[0].Name)

	records := logRecords(t, buf)
	require.Len(t, records, 2)
	for _, r := range records {
		assert.Equal(t, "ursula_le_guin@gmail.com", r["subscriber_email"])
		assert.Equal(t, "le guin", r["subscriber_name"])
	}
	assert.Equal(t, "New subscriber details has been saved", records[1]["message"])
}

func TestSubscribe_InvalidInputIsBadRequest(t *testing.T) {
	repo := &countingRepository{}
	svc, buf := newTestService(repo)

	_, err := svc.Subscribe(context.Background(), domain.SubscriptionFormData{
		Name:  "",
		Email: "ursula_le_guin@gmail.com",
	})

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindBadRequest, appErr.Kind)
	assert.Equal(t, "subscriber name must not be empty", appErr.Message)
	assert.Zero(t, repo.calls)

	records := logRecords(t, buf)
	require.Len(t, records, 2)
	assert.Equal(t, "warning", records[1]["level"])
}

func TestSubscribe_StorageFailureIsOpaque(t *testing.T) {
	repo := &countingRepository{err: errors.New("dial tcp 10.0.0.3:5432: connection refused")}
	svc, buf := newTestService(repo)

	_, err := svc.Subscribe(context.Background(), domain.SubscriptionFormData{
		Name:  "le guin",
		Email: "ursula_le_guin@gmail.com",
	})

	var appErr *apperr.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperr.KindInternal, appErr.Kind)
	assert.Equal(t, "Failed to save subscriber details", appErr.Message)
	assert.Equal(t, 1, repo.calls, "storage must be attempted exactly once")

	records := logRecords(t, buf)
	require.Len(t, records, 2)
	assert.Equal(t, "error", records[1]["level"])
	assert.Contains(t, records[1]["error"], "connection refused")
}
