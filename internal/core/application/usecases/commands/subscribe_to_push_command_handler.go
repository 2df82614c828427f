package commands

import (
	"context"

	"foodloop/internal/core/ports"
)

// SubscribeToPushCommandHandler stores a push endpoint after checking that
// its owner exists. Re-subscribing an endpoint moves it to the caller.
type SubscribeToPushCommandHandler struct {
	uowFactory    UserUoWFactory
	subscriptions ports.PushSubscriptionRepository
	clock         Clock
}

func NewSubscribeToPushCommandHandler(
	uowFactory UserUoWFactory,
	subscriptions ports.PushSubscriptionRepository,
	clock Clock,
) SubscribeToPushCommandHandler {
	return SubscribeToPushCommandHandler{
		uowFactory:    uowFactory,
		subscriptions: subscriptions,
		clock:         clock,
	}
}

func (h SubscribeToPushCommandHandler) Handle(ctx context.Context, cmd SubscribeToPushCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}

	if _, err := h.uowFactory.Create().UserRepository().Get(ctx, cmd.userID); err != nil {
		return err
	}

	return h.subscriptions.Save(ctx, ports.PushSubscription{
		UserID:    cmd.userID,
		Endpoint:  cmd.endpoint,
		P256dh:    cmd.p256dh,
		Auth:      cmd.auth,
		CreatedAt: h.clock(),
	})
}
