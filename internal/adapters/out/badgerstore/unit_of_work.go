package badgerstore

import (
	"context"
	"errors"

	"foodloop/internal/core/ports"
	"foodloop/internal/pkg/errs"

	"github.com/dgraph-io/badger/v4"
)

// ErrNoTransaction is returned by Commit and Rollback without a Begin.
var ErrNoTransaction = errors.New("no active badger transaction")

type UnitOfWorkFactory struct {
	db *badger.DB
}

func NewUnitOfWorkFactory(db *badger.DB) *UnitOfWorkFactory {
	return &UnitOfWorkFactory{db: db}
}

func (f *UnitOfWorkFactory) Create() ports.UnitOfWork {
	return &UnitOfWork{db: f.db}
}

// UnitOfWork wraps one read-write badger transaction. Badger records every
// key the transaction reads; Commit fails with a version conflict when
// another transaction committed a write to any of them first.
type UnitOfWork struct {
	db  *badger.DB
	txn *badger.Txn
}

func (uow *UnitOfWork) Begin(_ context.Context) error {
	if uow.txn == nil {
		uow.txn = uow.db.NewTransaction(true)
	}
	return nil
}

func (uow *UnitOfWork) Commit(_ context.Context) error {
	if uow.txn == nil {
		return ErrNoTransaction
	}

	err := uow.txn.Commit()
	uow.txn = nil
	return translate(err)
}

func (uow *UnitOfWork) Rollback(_ context.Context) error {
	if uow.txn == nil {
		return ErrNoTransaction
	}

	uow.txn.Discard()
	uow.txn = nil
	return nil
}

func (uow *UnitOfWork) DonationRepository() ports.DonationRepository {
	return &DonationRepository{tx: runner{db: uow.db, txn: uow.txn}}
}

func (uow *UnitOfWork) UserRepository() ports.UserRepository {
	return &UserRepository{tx: runner{db: uow.db, txn: uow.txn}}
}

// runner executes a function inside the unit of work's transaction, or in a
// transaction of its own when there is none.
type runner struct {
	db  *badger.DB
	txn *badger.Txn
}

func (r runner) update(fn func(txn *badger.Txn) error) error {
	if r.txn != nil {
		return translate(fn(r.txn))
	}
	return translate(r.db.Update(fn))
}

func (r runner) view(fn func(txn *badger.Txn) error) error {
	if r.txn != nil {
		return fn(r.txn)
	}
	return r.db.View(fn)
}

func translate(err error) error {
	if errors.Is(err, badger.ErrConflict) {
		return errs.NewVersionIsInvalidError("transaction", err)
	}
	return err
}

func exists(txn *badger.Txn, key []byte) (bool, error) {
	_, err := txn.Get(key)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, badger.ErrKeyNotFound):
		return false, nil
	default:
		return false, err
	}
}

// scan calls fn with the value of every key under prefix.
func scan(txn *badger.Txn, prefix string, fn func(value []byte) error) error {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = []byte(prefix)
	it := txn.NewIterator(opts)
	defer it.Close()

	for it.Rewind(); it.Valid(); it.Next() {
		if err := it.Item().Value(fn); err != nil {
			return err
		}
	}
	return nil
}
