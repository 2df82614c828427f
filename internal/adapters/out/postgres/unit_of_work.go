// Package postgres is the relational store: GORM repositories for donations,
// users and push subscriptions bound together by a unit of work.
//
// Repositories obtained from a unit of work run inside its transaction once
// Begin has been called, and directly on the pool otherwise.
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	if err := uow.DonationRepository().UpdateIf(ctx, d, expected); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
package postgres

import (
	"context"
	"errors"

	"foodloop/internal/adapters/out/postgres/donationrepo"
	"foodloop/internal/adapters/out/postgres/userrepo"
	"foodloop/internal/core/ports"
	"foodloop/internal/pkg/errs"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates a fresh unit of work per business operation.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork wraps a single GORM transaction. It is not safe for
// concurrent use; every goroutine creates its own.
type GormUnitOfWork struct {
	db *gorm.DB
	tx *gorm.DB
}

// Begin starts the transaction. Calling it twice keeps the first one.
// A sqlite write lock still held by another writer after the busy timeout
// surfaces as a version conflict.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	tx := uow.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		if isLockContention(tx.Error) {
			return errs.NewVersionIsInvalidError("transaction", tx.Error)
		}
		return tx.Error
	}
	uow.tx = tx

	return nil
}

// Commit ends the transaction. A serialization failure or a lock the
// database could not acquire surfaces as a version conflict.
func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil && (isSerializationFailure(err) || isLockContention(err)) {
		return errs.NewVersionIsInvalidError("transaction", err)
	}
	return err
}

// Rollback discards the transaction. Without one it returns
// gorm.ErrInvalidTransaction, which deferred callers ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) DonationRepository() ports.DonationRepository {
	return donationrepo.NewGormDonationRepository(uow.conn())
}

func (uow *GormUnitOfWork) UserRepository() ports.UserRepository {
	return userrepo.NewGormUserRepository(uow.conn())
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// serializationFailure is SQLSTATE 40001, returned by postgres when a
// serializable transaction lost to a concurrent writer.
const serializationFailure = "40001"

type sqlStateError interface {
	SQLState() string
}

func isSerializationFailure(err error) bool {
	var stateErr sqlStateError
	return errors.As(err, &stateErr) && stateErr.SQLState() == serializationFailure
}

// isLockContention reports SQLITE_BUSY and SQLITE_LOCKED.
func isLockContention(err error) bool {
	var sqliteErr sqlite3.Error
	if !errors.As(err, &sqliteErr) {
		return false
	}
	return sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked
}
