package badgerstore

import (
	"context"
	"encoding/json"
	"strings"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/core/ports"
	"foodloop/internal/pkg/errs"

	"github.com/dgraph-io/badger/v4"
)

// SubscriptionRepository implements ports.PushSubscriptionRepository.
type SubscriptionRepository struct {
	db *badger.DB
}

func NewSubscriptionRepository(db *badger.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) Save(_ context.Context, s ports.PushSubscription) error {
	if err := s.UserID.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(s.Endpoint) == "" {
		return errs.NewValueIsRequiredError("endpoint")
	}

	data, err := json.Marshal(subscriptionRecord{
		UserID:    s.UserID.Bytes(),
		Endpoint:  s.Endpoint,
		P256dh:    s.P256dh,
		Auth:      s.Auth,
		CreatedAt: s.CreatedAt,
	})
	if err != nil {
		return err
	}

	return translate(r.db.Update(func(txn *badger.Txn) error {
		return txn.Set(pushKey(s.Endpoint), data)
	}))
}

func (r *SubscriptionRepository) FindByUser(
	_ context.Context,
	userID kernel.UUID,
) ([]ports.PushSubscription, error) {
	var subs []ports.PushSubscription
	err := r.db.View(func(txn *badger.Txn) error {
		return scan(txn, pushPrefix, func(value []byte) error {
			var rec subscriptionRecord
			if err := json.Unmarshal(value, &rec); err != nil {
				return err
			}
			if rec.UserID != userID.Bytes() {
				return nil
			}
			subs = append(subs, ports.PushSubscription{
				UserID:    userID,
				Endpoint:  rec.Endpoint,
				P256dh:    rec.P256dh,
				Auth:      rec.Auth,
				CreatedAt: rec.CreatedAt,
			})
			return nil
		})
	})
	return subs, err
}

func (r *SubscriptionRepository) Delete(_ context.Context, endpoint string) error {
	return translate(r.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(pushKey(endpoint))
	}))
}
