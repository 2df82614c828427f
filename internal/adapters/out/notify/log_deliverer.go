package notify

import (
	"context"
	"log/slog"
)

// LogDeliverer writes deliveries to the log. It is used when no push or
// queue backend is configured.
type LogDeliverer struct {
	log *slog.Logger
}

func NewLogDeliverer(log *slog.Logger) LogDeliverer {
	return LogDeliverer{log: log.With("component", "notify_log")}
}

func (l LogDeliverer) Deliver(ctx context.Context, d Delivery) error {
	l.log.InfoContext(ctx, d.Message.Title,
		"recipient", d.Recipient.String(),
		"kind", d.Message.Kind,
		"donation_id", d.Message.DonationID,
		"status", d.Message.Status)
	return nil
}
