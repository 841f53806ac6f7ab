package commands

import (
	"context"
	"log/slog"

	"github.com/ilya-afanasev/avr-lab-reservation/internal/domain/user"
	"github.com/ilya-afanasev/avr-lab-reservation/internal/usecase/shared"
)

// UserInput leaves a field unchanged on update when it is nil.
type UserInput struct {
	Email      *string
	ExternalID *int64
}

type UserCommands interface {
	Create(ctx context.Context, in UserInput) (int64, error)
	Update(ctx context.Context, id int64, in UserInput) error
	Delete(ctx context.Context, id int64) error
}

type userUseCaseImpl struct {
	uow shared.UnitOfWork
}

func NewUserUseCase(uow shared.UnitOfWork) UserCommands {
	return &userUseCaseImpl{uow: uow}
}

func (uc *userUseCaseImpl) Create(ctx context.Context, in UserInput) (int64, error) {
	identity, err := user.NewIdentity(in.Email, in.ExternalID)
	if err != nil {
		return 0, err
	}

	var id int64
	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Locks().Lock(ctx, identity.LockKey()); err != nil {
			return err
		}
		id, err = tx.Users().Create(ctx, identity)
		return err
	})
	if err != nil {
		return 0, translateStoreErr(err, "")
	}

	slog.Info("user created", "user_id", id)
	return id, nil
}

// Update takes only the user lock; taking the identity lock after it would
// invert the order reservation creation uses.
func (uc *userUseCaseImpl) Update(ctx context.Context, id int64, in UserInput) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Locks().Lock(ctx, shared.UserLockKey(id)); err != nil {
			return err
		}
		current, err := tx.Users().FindByID(ctx, id)
		if err != nil {
			return notFound(err, "User", id)
		}

		email, externalID := current.Email(), current.ExternalID()
		if in.Email != nil {
			email = in.Email
		}
		if in.ExternalID != nil {
			externalID = in.ExternalID
		}
		identity, err := user.NewIdentity(email, externalID)
		if err != nil {
			return err
		}
		return notFound(tx.Users().Update(ctx, id, identity), "User", id)
	})
	if err != nil {
		return translateStoreErr(err, "")
	}

	slog.Info("user updated", "user_id", id)
	return nil
}

// Delete removes the user and every reservation it holds.
func (uc *userUseCaseImpl) Delete(ctx context.Context, id int64) error {
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Locks().Lock(ctx, shared.UserLockKey(id)); err != nil {
			return err
		}
		return notFound(tx.Users().Delete(ctx, id), "User", id)
	})
	if err != nil {
		return translateStoreErr(err, "")
	}

	slog.Info("user deleted", "user_id", id)
	return nil
}
