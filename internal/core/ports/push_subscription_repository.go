package ports

import (
	"context"
	"time"

	"foodloop/internal/core/domain/model/kernel"
)

// PushSubscription is a browser push endpoint registered by a user.
type PushSubscription struct {
	UserID    kernel.UUID
	Endpoint  string
	P256dh    string
	Auth      string
	CreatedAt time.Time
}

// PushSubscriptionRepository stores push endpoints. Save is an upsert keyed
// by endpoint; Delete of an unknown endpoint is not an error.
type PushSubscriptionRepository interface {
	Save(ctx context.Context, s PushSubscription) error
	FindByUser(ctx context.Context, userID kernel.UUID) ([]PushSubscription, error)
	Delete(ctx context.Context, endpoint string) error
}
