package donationrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"foodloop/internal/core/domain/model/donation"
	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/pkg/errs"

	"gorm.io/gorm"
)

// nextSequenceSQL increments the day's counter in one statement. Both
// postgres and sqlite 3.35+ accept the upsert and RETURNING forms.
const nextSequenceSQL = `
	INSERT INTO tracking_sequences (day, value) VALUES (?, 1)
	ON CONFLICT (day) DO UPDATE SET value = tracking_sequences.value + 1
	RETURNING value`

// GormDonationRepository implements ports.DonationRepository using GORM.
type GormDonationRepository struct {
	db *gorm.DB
}

func NewGormDonationRepository(db *gorm.DB) *GormDonationRepository {
	return &GormDonationRepository{db: db}
}

// Add inserts a new donation. A duplicate id or tracking id means another
// writer won the tracking sequence and is reported as a version conflict.
func (r *GormDonationRepository) Add(ctx context.Context, d *donation.Donation) error {
	if err := d.Validate(); err != nil {
		return err
	}

	dto := fromDomain(d)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if isDuplicate(err) {
			return errs.NewVersionIsInvalidError("donation", err)
		}
		return err
	}

	return nil
}

func (r *GormDonationRepository) Get(ctx context.Context, id kernel.UUID) (*donation.Donation, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto DonationDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("donation", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// UpdateIf issues a single UPDATE whose WHERE clause carries the expected
// status and assignees. Only the columns a transition can change are
// written. Zero affected rows means the record moved on, or is gone.
func (r *GormDonationRepository) UpdateIf(
	ctx context.Context,
	d *donation.Donation,
	expected donation.Precondition,
) error {
	if err := d.Validate(); err != nil {
		return err
	}

	dto := fromDomain(d)
	query := r.db.WithContext(ctx).
		Model(&DonationDTO{}).
		Where("id = ? AND status = ?", dto.ID, int(expected.Status))
	query = whereAssignee(query, "receiver_id", expected.ReceiverID)
	query = whereAssignee(query, "driver_id", expected.DriverID)

	result := query.Updates(map[string]any{
		"status":           dto.Status,
		"receiver_id":      dto.ReceiverID,
		"driver_id":        dto.DriverID,
		"actual_pickup_at": dto.ActualPickupAt,
		"donor_latitude":   dto.DonorLocation.Latitude,
		"donor_longitude":  dto.DonorLocation.Longitude,
		"updated_at":       dto.UpdatedAt,
	})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewVersionIsInvalidError("donation",
			fmt.Errorf("%s is no longer %s", d.ID(), expected.Status))
	}

	return nil
}

func (r *GormDonationRepository) FindAvailable(ctx context.Context, now time.Time) ([]*donation.Donation, error) {
	return r.find(r.db.WithContext(ctx).
		Where("status IN ? AND receiver_id IS NULL AND expires_at > ?",
			[]int{int(donation.Pending), int(donation.Approved)}, now.UTC()).
		Order("created_at DESC"))
}

func (r *GormDonationRepository) FindInTransitByDriver(
	ctx context.Context,
	driverID kernel.UUID,
) ([]*donation.Donation, error) {
	if err := driverID.Validate(); err != nil {
		return nil, err
	}

	return r.find(r.db.WithContext(ctx).
		Where("driver_id = ? AND status IN ?",
			driverID.Bytes(), []int{int(donation.Assigned), int(donation.PickedUp)}).
		Order("created_at"))
}

func (r *GormDonationRepository) FindAwaitingDriver(ctx context.Context, now time.Time) ([]*donation.Donation, error) {
	return r.find(r.db.WithContext(ctx).
		Where("status = ? AND driver_id IS NULL AND expires_at > ?", int(donation.Assigned), now.UTC()).
		Order("created_at"))
}

func (r *GormDonationRepository) FindOpen(ctx context.Context, limit int) ([]*donation.Donation, error) {
	return r.find(r.db.WithContext(ctx).
		Where("status NOT IN ?", []int{int(donation.Delivered), int(donation.Cancelled)}).
		Order("created_at").
		Limit(limit))
}

func (r *GormDonationRepository) NextTrackingSequence(ctx context.Context, day string) (int, error) {
	var value int
	if err := r.db.WithContext(ctx).Raw(nextSequenceSQL, day).Scan(&value).Error; err != nil {
		return 0, err
	}
	if value < 1 {
		return 0, fmt.Errorf("tracking sequence for %s returned %d", day, value)
	}
	return value, nil
}

func (r *GormDonationRepository) find(query *gorm.DB) ([]*donation.Donation, error) {
	var dtos []DonationDTO
	if err := query.Find(&dtos).Error; err != nil {
		return nil, err
	}

	donations := make([]*donation.Donation, 0, len(dtos))
	for _, dto := range dtos {
		d, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		donations = append(donations, d)
	}

	return donations, nil
}

func whereAssignee(query *gorm.DB, column string, id *kernel.UUID) *gorm.DB {
	if id == nil {
		return query.Where(column + " IS NULL")
	}
	return query.Where(column+" = ?", id.Bytes())
}

// isDuplicate recognises unique violations. The sqlite dialector predates
// gorm's error translation, so its message is matched directly.
func isDuplicate(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}
