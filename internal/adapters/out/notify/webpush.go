package notify

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"foodloop/internal/core/ports"

	"github.com/SherClockHolmes/webpush-go"
)

// PushSender sends one web push request.
type PushSender interface {
	Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error)
}

// WebPushSender is the PushSender backed by webpush-go.
type WebPushSender struct{}

func (WebPushSender) Send(payload []byte, sub *webpush.Subscription, options *webpush.Options) (*http.Response, error) {
	return webpush.SendNotification(payload, sub, options)
}

// VAPIDConfig holds the application server keys.
type VAPIDConfig struct {
	PublicKey  string
	PrivateKey string
	Subject    string
	TTL        int
}

// Enabled reports whether both keys are present.
func (c VAPIDConfig) Enabled() bool {
	return c.PublicKey != "" && c.PrivateKey != ""
}

// WebPushDeliverer pushes a delivery to every browser the recipient has
// subscribed. Endpoints the push service reports as gone are deleted.
type WebPushDeliverer struct {
	subscriptions ports.PushSubscriptionRepository
	sender        PushSender
	options       webpush.Options
	log           *slog.Logger
}

func NewWebPushDeliverer(
	subscriptions ports.PushSubscriptionRepository,
	sender PushSender,
	vapid VAPIDConfig,
	log *slog.Logger,
) *WebPushDeliverer {
	ttl := vapid.TTL
	if ttl <= 0 {
		ttl = 3600
	}
	return &WebPushDeliverer{
		subscriptions: subscriptions,
		sender:        sender,
		options: webpush.Options{
			Subscriber:      vapid.Subject,
			VAPIDPublicKey:  vapid.PublicKey,
			VAPIDPrivateKey: vapid.PrivateKey,
			TTL:             ttl,
		},
		log: log.With("component", "notify_webpush"),
	}
}

func (w *WebPushDeliverer) Deliver(ctx context.Context, d Delivery) error {
	subs, err := w.subscriptions.FindByUser(ctx, d.Recipient)
	if err != nil {
		return fmt.Errorf("load push subscriptions: %w", err)
	}
	if len(subs) == 0 {
		return nil
	}

	payload, err := json.Marshal(d.Message)
	if err != nil {
		return fmt.Errorf("encode push message: %w", err)
	}

	var failures []error
	for _, sub := range subs {
		if err := w.send(ctx, sub, payload); err != nil {
			failures = append(failures, err)
		}
	}
	return errors.Join(failures...)
}

func (w *WebPushDeliverer) send(ctx context.Context, sub ports.PushSubscription, payload []byte) error {
	options := w.options
	resp, err := w.sender.Send(payload, &webpush.Subscription{
		Endpoint: sub.Endpoint,
		Keys:     webpush.Keys{P256dh: sub.P256dh, Auth: sub.Auth},
	}, &options)
	if err != nil {
		return fmt.Errorf("push to %s: %w", sub.Endpoint, err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	switch {
	case resp.StatusCode == http.StatusGone || resp.StatusCode == http.StatusNotFound:
		w.log.InfoContext(ctx, "push subscription expired, deleting", "endpoint", sub.Endpoint)
		if err := w.subscriptions.Delete(ctx, sub.Endpoint); err != nil {
			return fmt.Errorf("delete expired subscription: %w", err)
		}
		return nil
	case resp.StatusCode >= http.StatusBadRequest:
		return fmt.Errorf("push to %s: status %d", sub.Endpoint, resp.StatusCode)
	}
	return nil
}
