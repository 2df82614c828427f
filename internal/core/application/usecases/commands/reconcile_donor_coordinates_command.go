package commands

import (
	"errors"

	"foodloop/internal/pkg/errs"
	"foodloop/internal/pkg/guard"
)

// DefaultReconcileBatchSize is how many open donations one pass inspects.
const DefaultReconcileBatchSize = 200

var ErrReconcileDonorCoordinatesCommandIsNotConstructed = errors.New(
	"ReconcileDonorCoordinatesCommand must be created via NewReconcileDonorCoordinatesCommand constructor",
)

// ReconcileDonorCoordinatesCommand asks for one reconciliation pass.
type ReconcileDonorCoordinatesCommand struct {
	batchSize int

	guard guard.ConstructorGuard
}

func NewReconcileDonorCoordinatesCommand(batchSize int) (ReconcileDonorCoordinatesCommand, error) {
	if batchSize < 1 {
		return ReconcileDonorCoordinatesCommand{}, errs.NewValueIsOutOfRangeError("batch size", batchSize, 1, "unbounded")
	}

	return ReconcileDonorCoordinatesCommand{
		batchSize: batchSize,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c ReconcileDonorCoordinatesCommand) Validate() error {
	return c.guard.Validate(ErrReconcileDonorCoordinatesCommandIsNotConstructed)
}

func (c ReconcileDonorCoordinatesCommand) BatchSize() int {
	return c.batchSize
}
