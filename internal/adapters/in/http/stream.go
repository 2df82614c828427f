package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"foodloop/internal/adapters/out/pubsub"

	"github.com/labstack/echo/v4"
)

const (
	locationEvent     = "driver_location"
	heartbeatInterval = 15 * time.Second
)

// StreamDriverLocation handles GET /api/v1/donations/:id/location-stream.
// Each driver position for the donation is sent as a server-sent event; the
// subscription ends when the client goes away or the donation is finished.
func (s *Server) StreamDriverLocation(c echo.Context) error {
	donationID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	sub := s.hub.Subscribe(donationID)
	defer sub.Unsubscribe()

	w := c.Response()
	w.Header().Set(echo.HeaderContentType, "text/event-stream")
	w.Header().Set(echo.HeaderCacheControl, "no-cache")
	w.Header().Set(echo.HeaderConnection, "keep-alive")
	w.Header().Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)
	if _, err = fmt.Fprintf(w, ": subscribed to %s\n\n", pubsub.TopicName(donationID)); err != nil {
		return nil
	}
	w.Flush()

	ctx := c.Request().Context()
	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-heartbeat.C:
			if _, err = fmt.Fprint(w, ": keep-alive\n\n"); err != nil {
				return nil
			}
			w.Flush()
		case event, open := <-sub.C:
			if !open {
				_, _ = fmt.Fprint(w, "event: end\ndata: {}\n\n")
				w.Flush()
				return nil
			}
			if err = writeLocationEvent(w, event); err != nil {
				s.logger.DebugContext(ctx, "location stream closed", "error", err)
				return nil
			}
			w.Flush()
		}
	}
}

func writeLocationEvent(w *echo.Response, event pubsub.Event) error {
	data, err := json.Marshal(LocationMessage{
		Seq:        event.Seq,
		DonationID: event.DonationID.Bytes(),
		DriverID:   event.DriverID.Bytes(),
		DriverLocation: Coordinates{
			Latitude:  event.Latitude,
			Longitude: event.Longitude,
		},
		ReportedAt: event.ReportedAt,
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "id: %d\nevent: %s\ndata: %s\n\n", event.Seq, locationEvent, data)
	return err
}
