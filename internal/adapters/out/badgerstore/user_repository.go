package badgerstore

import (
	"context"
	"errors"
	"fmt"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/core/domain/model/user"
	"foodloop/internal/pkg/errs"

	"github.com/dgraph-io/badger/v4"
)

type UserRepository struct {
	tx runner
}

func (r *UserRepository) Add(_ context.Context, u *user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	data, err := encodeUser(u)
	if err != nil {
		return err
	}

	return r.tx.update(func(txn *badger.Txn) error {
		taken, err := exists(txn, userKey(u.ID()))
		if err != nil {
			return err
		}
		if taken {
			return errs.NewValueIsInvalidErrorWithCause("user id", fmt.Errorf("%s is already registered", u.ID()))
		}
		return txn.Set(userKey(u.ID()), data)
	})
}

func (r *UserRepository) Get(_ context.Context, id kernel.UUID) (*user.User, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var u *user.User
	err := r.tx.view(func(txn *badger.Txn) error {
		item, err := txn.Get(userKey(id))
		if err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return errs.NewObjectNotFoundError("user", id.String())
			}
			return err
		}
		return item.Value(func(val []byte) error {
			u, err = decodeUser(val)
			return err
		})
	})
	return u, err
}

// Update replaces the stored profile.
func (r *UserRepository) Update(_ context.Context, u *user.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	data, err := encodeUser(u)
	if err != nil {
		return err
	}

	return r.tx.update(func(txn *badger.Txn) error {
		if _, err := txn.Get(userKey(u.ID())); err != nil {
			if errors.Is(err, badger.ErrKeyNotFound) {
				return errs.NewObjectNotFoundError("user", u.ID().String())
			}
			return err
		}
		return txn.Set(userKey(u.ID()), data)
	})
}
