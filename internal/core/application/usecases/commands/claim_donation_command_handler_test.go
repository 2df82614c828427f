package commands_test

import (
	"errors"
	"testing"
	"time"

	"foodloop/internal/core/application/usecases/commands"
	"foodloop/internal/core/domain/model/donation"
	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/core/domain/model/user"
	"foodloop/internal/core/ports"
	"foodloop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestClaimDonationCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()

	donor := newUser(t, user.Donor, nil)
	receiver := newUser(t, user.Receiver, nil)
	testDonation := pendingDonation(t, donor.ID())

	cmd, err := commands.NewClaimDonationCommand(testDonation.ID(), receiver.ID())
	require.NoError(t, err)

	repo := new(MockDonationRepository)
	users := new(MockUserRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	notifier := new(MockNotifier)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DonationRepository").Return(repo).Once(),
		repo.On("Get", ctx, testDonation.ID()).Return(testDonation, nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("Get", ctx, receiver.ID()).Return(receiver, nil).Once(),
		repo.On("UpdateIf", ctx, testDonation, donation.Precondition{Status: donation.Pending}).Return(nil).Once(),
		uow.On("Commit", ctx).Return(nil).Once(),
		notifier.On("Notify", ctx, mock.MatchedBy(func(e ports.TransitionEvent) bool {
			return e.Kind == ports.DonationClaimed &&
				e.Status == "assigned" &&
				len(e.Recipients) == 2 &&
				e.Recipients[0].IsEqual(donor.ID()) &&
				e.Recipients[1].IsEqual(receiver.ID())
		})).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewClaimDonationCommandHandler(factory, notifier, fixedClock)
	claimed, err := handler.Handle(ctx, cmd)

	require.NoError(t, err)
	assert.Equal(t, donation.Assigned, claimed.Status())
	require.NotNil(t, claimed.ReceiverID())
	assert.True(t, claimed.ReceiverID().IsEqual(receiver.ID()))
	repo.AssertExpectations(t)
	users.AssertExpectations(t)
	uow.AssertExpectations(t)
	factory.AssertExpectations(t)
	notifier.AssertExpectations(t)
}

func TestClaimDonationCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory)
	notifier := new(MockNotifier)

	handler := commands.NewClaimDonationCommandHandler(factory, notifier, fixedClock)
	_, err := handler.Handle(t.Context(), commands.ClaimDonationCommand{})

	require.ErrorIs(t, err, commands.ErrClaimDonationCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestClaimDonationCommandHandler_Handle_LostRace(t *testing.T) {
	ctx := t.Context()

	receiver := newUser(t, user.Receiver, nil)
	testDonation := pendingDonation(t, kernel.NewUUID())
	winner := assignedDonation(t, kernel.NewUUID())

	cmd, err := commands.NewClaimDonationCommand(testDonation.ID(), receiver.ID())
	require.NoError(t, err)

	repo := new(MockDonationRepository)
	users := new(MockUserRepository)
	uow := new(MockUoW)
	freshRepo := new(MockDonationRepository)
	freshUoW := new(MockUoW)
	factory := new(MockUoWFactory)
	notifier := new(MockNotifier)

	conflict := errs.NewVersionIsInvalidErrorWithCause("donation")

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(nil).Once(),
		uow.On("DonationRepository").Return(repo).Once(),
		repo.On("Get", ctx, testDonation.ID()).Return(testDonation, nil).Once(),
		uow.On("UserRepository").Return(users).Once(),
		users.On("Get", ctx, receiver.ID()).Return(receiver, nil).Once(),
		repo.On("UpdateIf", ctx, testDonation, mock.Anything).Return(conflict).Once(),
		factory.On("Create").Return(freshUoW).Once(),
		freshUoW.On("DonationRepository").Return(freshRepo).Once(),
		freshRepo.On("Get", ctx, testDonation.ID()).Return(winner, nil).Once(),
		uow.On("Rollback", ctx).Return(nil).Once(),
	)

	handler := commands.NewClaimDonationCommandHandler(factory, notifier, fixedClock)
	claimed, err := handler.Handle(ctx, cmd)

	require.Error(t, err)
	assert.Nil(t, claimed)
	rejection, ok := errs.RejectionOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.ReasonAlreadyClaimed, rejection.Reason)
	assert.Equal(t, "assigned", rejection.Status)
	require.ErrorIs(t, rejection.Cause, errs.ErrVersionIsInvalid)
	uow.AssertNotCalled(t, "Commit", mock.Anything)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
	factory.AssertExpectations(t)
	freshRepo.AssertExpectations(t)
}

func TestClaimDonationCommandHandler_Handle_CommitConflict(t *testing.T) {
	ctx := t.Context()

	receiver := newUser(t, user.Receiver, nil)
	testDonation := pendingDonation(t, kernel.NewUUID())

	cmd, err := commands.NewClaimDonationCommand(testDonation.ID(), receiver.ID())
	require.NoError(t, err)

	repo := new(MockDonationRepository)
	users := new(MockUserRepository)
	uow := new(MockUoW)
	freshRepo := new(MockDonationRepository)
	freshUoW := new(MockUoW)
	factory := new(MockUoWFactory)
	notifier := new(MockNotifier)

	factory.On("Create").Return(uow).Once()
	factory.On("Create").Return(freshUoW).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DonationRepository").Return(repo).Once()
	uow.On("UserRepository").Return(users).Once()
	uow.On("Commit", ctx).Return(errs.NewVersionIsInvalidErrorWithCause("donation")).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", ctx, testDonation.ID()).Return(testDonation, nil).Once()
	repo.On("UpdateIf", ctx, testDonation, mock.Anything).Return(nil).Once()
	users.On("Get", ctx, receiver.ID()).Return(receiver, nil).Once()
	freshUoW.On("DonationRepository").Return(freshRepo).Once()
	freshRepo.On("Get", ctx, testDonation.ID()).Return(nil, errors.New("store unavailable")).Once()

	handler := commands.NewClaimDonationCommandHandler(factory, notifier, fixedClock)
	_, err = handler.Handle(ctx, cmd)

	rejection, ok := errs.RejectionOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.ReasonAlreadyClaimed, rejection.Reason)
	// the fresh read failed, so the status read before the attempt is reported
	assert.Equal(t, "pending", rejection.Status)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestClaimDonationCommandHandler_Handle_WrongActor(t *testing.T) {
	ctx := t.Context()

	driver := newUser(t, user.Driver, nil)
	testDonation := pendingDonation(t, kernel.NewUUID())

	cmd, err := commands.NewClaimDonationCommand(testDonation.ID(), driver.ID())
	require.NoError(t, err)

	repo := new(MockDonationRepository)
	users := new(MockUserRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	notifier := new(MockNotifier)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DonationRepository").Return(repo).Once()
	uow.On("UserRepository").Return(users).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", ctx, testDonation.ID()).Return(testDonation, nil).Once()
	users.On("Get", ctx, driver.ID()).Return(driver, nil).Once()

	handler := commands.NewClaimDonationCommandHandler(factory, notifier, fixedClock)
	_, err = handler.Handle(ctx, cmd)

	rejection, ok := errs.RejectionOf(err)
	require.True(t, ok)
	assert.Equal(t, errs.ReasonWrongActor, rejection.Reason)
	assert.Equal(t, donation.Pending, testDonation.Status())
	repo.AssertNotCalled(t, "UpdateIf", mock.Anything, mock.Anything, mock.Anything)
	uow.AssertExpectations(t)
}

func TestClaimDonationCommandHandler_Handle_Expired(t *testing.T) {
	ctx := t.Context()

	receiver := newUser(t, user.Receiver, nil)
	testDonation := pendingDonation(t, kernel.NewUUID())

	cmd, err := commands.NewClaimDonationCommand(testDonation.ID(), receiver.ID())
	require.NoError(t, err)

	repo := new(MockDonationRepository)
	users := new(MockUserRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)
	notifier := new(MockNotifier)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DonationRepository").Return(repo).Once()
	uow.On("UserRepository").Return(users).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", ctx, testDonation.ID()).Return(testDonation, nil).Once()
	users.On("Get", ctx, receiver.ID()).Return(receiver, nil).Once()

	afterExpiry := func() time.Time { return testDonation.ExpiresAt() }
	handler := commands.NewClaimDonationCommandHandler(factory, notifier, afterExpiry)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrExpired)
	require.ErrorIs(t, err, errs.ErrTransitionRejected)
	repo.AssertNotCalled(t, "UpdateIf", mock.Anything, mock.Anything, mock.Anything)
	notifier.AssertNotCalled(t, "Notify", mock.Anything, mock.Anything)
}

func TestClaimDonationCommandHandler_Handle_NotFound(t *testing.T) {
	ctx := t.Context()
	id := kernel.NewUUID()

	cmd, err := commands.NewClaimDonationCommand(id, kernel.NewUUID())
	require.NoError(t, err)

	repo := new(MockDonationRepository)
	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	factory.On("Create").Return(uow).Once()
	uow.On("Begin", ctx).Return(nil).Once()
	uow.On("DonationRepository").Return(repo).Once()
	uow.On("Rollback", ctx).Return(nil).Once()
	repo.On("Get", ctx, id).Return(nil, errs.NewObjectNotFoundError("donation", id)).Once()

	handler := commands.NewClaimDonationCommandHandler(factory, new(MockNotifier), fixedClock)
	_, err = handler.Handle(ctx, cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}

func TestClaimDonationCommandHandler_Handle_BeginError(t *testing.T) {
	ctx := t.Context()

	cmd, err := commands.NewClaimDonationCommand(kernel.NewUUID(), kernel.NewUUID())
	require.NoError(t, err)

	uow := new(MockUoW)
	factory := new(MockUoWFactory)

	mock.InOrder(
		factory.On("Create").Return(uow).Once(),
		uow.On("Begin", ctx).Return(errors.New("begin error")).Once(),
	)

	handler := commands.NewClaimDonationCommandHandler(factory, new(MockNotifier), fixedClock)
	_, err = handler.Handle(ctx, cmd)

	require.EqualError(t, err, "begin error")
	uow.AssertNotCalled(t, "Rollback", mock.Anything)
}
