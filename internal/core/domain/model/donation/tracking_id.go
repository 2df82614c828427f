package donation

import (
	"fmt"
	"regexp"
	"time"

	"foodloop/internal/pkg/errs"
)

const trackingIDPrefix = "FL"

var trackingIDPattern = regexp.MustCompile(`^FL-\d{8}-\d{2,}$`)

// TrackingDay is the per-day sequence key for createdAt: its UTC date as
// YYYYMMDD.
func TrackingDay(createdAt time.Time) string {
	return createdAt.UTC().Format("20060102")
}

// NewTrackingID renders the human tracking code FL-YYYYMMDD-NN from the
// creation time and the 1-based position of the donation within that day.
func NewTrackingID(createdAt time.Time, seq int) (string, error) {
	if seq < 1 {
		return "", errs.NewValueIsOutOfRangeError("tracking sequence", seq, 1, "unbounded")
	}
	return fmt.Sprintf("%s-%s-%02d", trackingIDPrefix, TrackingDay(createdAt), seq), nil
}

// ValidateTrackingID checks the shape of a stored tracking code.
func ValidateTrackingID(id string) error {
	if !trackingIDPattern.MatchString(id) {
		return errs.NewValueIsInvalidErrorWithCause("tracking id", fmt.Errorf("%q is malformed", id))
	}
	return nil
}
