package commands

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"foodloop/internal/core/domain/model/kernel"
	"foodloop/internal/pkg/errs"
	"foodloop/internal/pkg/guard"
)

var ErrSubscribeToPushCommandIsNotConstructed = errors.New(
	"SubscribeToPushCommand must be created via NewSubscribeToPushCommand constructor",
)

// SubscribeToPushCommand registers a browser push endpoint for a user.
type SubscribeToPushCommand struct {
	userID   kernel.UUID
	endpoint string
	p256dh   string
	auth     string

	guard guard.ConstructorGuard
}

func NewSubscribeToPushCommand(userID kernel.UUID, endpoint, p256dh, auth string) (SubscribeToPushCommand, error) {
	endpoint = strings.TrimSpace(endpoint)
	p256dh = strings.TrimSpace(p256dh)
	auth = strings.TrimSpace(auth)

	if err := errors.Join(
		requireID("user id", userID),
		validateEndpoint(endpoint),
		requireText("p256dh", p256dh),
		requireText("auth", auth),
	); err != nil {
		return SubscribeToPushCommand{}, err
	}

	return SubscribeToPushCommand{
		userID:   userID,
		endpoint: endpoint,
		p256dh:   p256dh,
		auth:     auth,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c SubscribeToPushCommand) Validate() error {
	return c.guard.Validate(ErrSubscribeToPushCommandIsNotConstructed)
}

func (c SubscribeToPushCommand) UserID() kernel.UUID {
	return c.userID
}

func (c SubscribeToPushCommand) Endpoint() string {
	return c.endpoint
}

func validateEndpoint(endpoint string) error {
	if endpoint == "" {
		return errs.NewValueIsRequiredError("endpoint")
	}
	u, err := url.Parse(endpoint)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("endpoint", err)
	}
	if u.Scheme != "https" || u.Host == "" {
		return errs.NewValueIsInvalidErrorWithCause("endpoint", fmt.Errorf("%q is not an https URL", endpoint))
	}
	return nil
}

func requireText(param, value string) error {
	if value == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}
