// Package subscriptionrepo stores browser push endpoints per user.
package subscriptionrepo

import (
	"context"
	"strings"
	"time"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/core/ports"
	"foodloop/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type SubscriptionDTO struct {
	Endpoint  string    `gorm:"type:varchar(1024);primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index"`
	P256dh    string    `gorm:"type:varchar(255);not null"`
	Auth      string    `gorm:"type:varchar(255);not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
}

func (SubscriptionDTO) TableName() string {
	return "push_subscriptions"
}

type GormSubscriptionRepository struct {
	db *gorm.DB
}

func NewGormSubscriptionRepository(db *gorm.DB) *GormSubscriptionRepository {
	return &GormSubscriptionRepository{db: db}
}

// Save inserts the endpoint or moves it to the new owner and keys.
func (r *GormSubscriptionRepository) Save(ctx context.Context, s ports.PushSubscription) error {
	if err := s.UserID.Validate(); err != nil {
		return err
	}
	if strings.TrimSpace(s.Endpoint) == "" {
		return errs.NewValueIsRequiredError("endpoint")
	}

	dto := SubscriptionDTO{
		Endpoint:  s.Endpoint,
		UserID:    s.UserID.Bytes(),
		P256dh:    s.P256dh,
		Auth:      s.Auth,
		CreatedAt: s.CreatedAt.UTC(),
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "endpoint"}},
			DoUpdates: clause.AssignmentColumns([]string{"user_id", "p256dh", "auth"}),
		}).
		Create(&dto).Error
}

func (r *GormSubscriptionRepository) FindByUser(
	ctx context.Context,
	userID kernel.UUID,
) ([]ports.PushSubscription, error) {
	var dtos []SubscriptionDTO
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID.Bytes()).
		Order("created_at").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	subs := make([]ports.PushSubscription, 0, len(dtos))
	for _, dto := range dtos {
		subs = append(subs, ports.PushSubscription{
			UserID:    userID,
			Endpoint:  dto.Endpoint,
			P256dh:    dto.P256dh,
			Auth:      dto.Auth,
			CreatedAt: dto.CreatedAt,
		})
	}
	return subs, nil
}

func (r *GormSubscriptionRepository) Delete(ctx context.Context, endpoint string) error {
	return r.db.WithContext(ctx).Delete(&SubscriptionDTO{}, "endpoint = ?", endpoint).Error
}
