package donationrepo_test

import (
	"fmt"
	"log/slog"
	"testing"
	"time"

	"foodloop/internal/adapters/out/postgres"
	"foodloop/internal/core/domain/model/donation"
	"foodloop/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var createdAt = time.Date(2026, 3, 14, 8, 0, 0, 0, time.UTC)

// openSQLite returns a private in-memory database with the schema applied.
func openSQLite(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := postgres.Open(postgres.DriverSQLite, dsn, slog.New(slog.DiscardHandler))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, postgres.Migrate(db))
	return db
}

func newDonation(t *testing.T, seq int, at time.Time, location *kernel.GeoPoint) *donation.Donation {
	t.Helper()

	confidence, quality := 0.92, 0.8
	assessment, err := donation.NewAssessment(&confidence, &quality, donation.Fresh, []string{"rice", "dhal"})
	require.NoError(t, err)

	trackingID, err := donation.NewTrackingID(at, seq)
	require.NoError(t, err)

	d, err := donation.NewDonation(donation.Draft{
		ID:             kernel.NewUUID(),
		DonorID:        kernel.NewUUID(),
		Category:       donation.CookedMeals,
		ItemName:       "Rice and curry",
		Quantity:       12,
		Storage:        donation.Hot,
		Assessment:     assessment,
		DonorAddress:   "12 Galle Road, Colombo 03",
		DonorLocation:  location,
		PickupWindow:   donation.Today,
		PickupTimeSlot: "14:00-16:00",
	}, trackingID, at)
	require.NoError(t, err)
	return d
}

func colombo(t *testing.T) *kernel.GeoPoint {
	t.Helper()
	p, err := kernel.NewGeoPoint(6.9271, 79.8612)
	require.NoError(t, err)
	return &p
}
