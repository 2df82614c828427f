package commands

import (
	"context"
	"sync"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/core/ports"

	"github.com/cespare/xxhash/v2"
)

// driverLockStripes bounds the lock set; drivers sharing a stripe serialise
// with each other as well.
const driverLockStripes = 64

// ReportDriverLocationCommandHandler persists a driver's position and
// publishes it on the topic of every donation the driver is servicing.
//
// Calls for the same driver are serialised, so each donation's observers see
// positions in the order they were reported. Different drivers mostly
// proceed in parallel.
type ReportDriverLocationCommandHandler struct {
	uowFactory UoWFactory
	publisher  ports.LocationPublisher
	area       kernel.BoundingBox
	clock      Clock

	driverLocks [driverLockStripes]sync.Mutex
}

func NewReportDriverLocationCommandHandler(
	uowFactory UoWFactory,
	publisher ports.LocationPublisher,
	area kernel.BoundingBox,
	clock Clock,
) *ReportDriverLocationCommandHandler {
	return &ReportDriverLocationCommandHandler{
		uowFactory: uowFactory,
		publisher:  publisher,
		area:       area,
		clock:      clock,
	}
}

// Handle returns the ids of the donations the position was published to.
func (h *ReportDriverLocationCommandHandler) Handle(
	ctx context.Context,
	cmd ReportDriverLocationCommand,
) ([]kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}
	if err := h.area.Require(cmd.Location()); err != nil {
		return nil, err
	}

	lock := h.lockFor(cmd.DriverID())
	lock.Lock()
	defer lock.Unlock()

	uow := h.uowFactory.Create()
	users := uow.UserRepository()

	driver, err := users.Get(ctx, cmd.DriverID())
	if err != nil {
		return nil, err
	}

	now := h.clock()
	if err = driver.MoveTo(cmd.Location(), now); err != nil {
		return nil, err
	}
	if err = users.Update(ctx, driver); err != nil {
		return nil, err
	}

	donations, err := uow.DonationRepository().FindInTransitByDriver(ctx, cmd.DriverID())
	if err != nil {
		return nil, err
	}

	published := make([]kernel.UUID, 0, len(donations))
	for _, d := range donations {
		if !d.IsInTransit() {
			continue
		}
		h.publisher.Publish(ctx, ports.LocationEvent{
			DonationID: d.ID(),
			DriverID:   cmd.DriverID(),
			Location:   cmd.Location(),
			ReportedAt: now,
		})
		published = append(published, d.ID())
	}

	return published, nil
}

func (h *ReportDriverLocationCommandHandler) lockFor(driverID kernel.UUID) *sync.Mutex {
	id := driverID.Bytes()
	return &h.driverLocks[xxhash.Sum64(id[:])%driverLockStripes]
}
