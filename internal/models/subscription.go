package models

import (
	"time"

	"github.com/google/uuid"
)

// Subscription is a persisted subscriber.
type Subscription struct {
	ID           uuid.UUID `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

func NewSubscription(email, name string) Subscription {
	return Subscription{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		SubscribedAt: time.Now().UTC(),
	}
}
