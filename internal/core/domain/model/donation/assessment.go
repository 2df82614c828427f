package donation

import (
	"errors"
	"math"
	"slices"
	"strings"

	"foodloop/internal/pkg/errs"
)

// Assessment carries the scores an image classifier attached to the
// donation. Every field is optional.
type Assessment struct {
	confidence    *float64
	quality       *float64
	freshness     Freshness
	detectedItems []string
}

// NewAssessment validates scores against [0, 1]. Blank detected items are
// dropped.
func NewAssessment(confidence, quality *float64, freshness Freshness, detectedItems []string) (Assessment, error) {
	if err := errors.Join(
		validateScore("confidence score", confidence),
		validateScore("quality score", quality),
		freshness.Validate(),
	); err != nil {
		return Assessment{}, err
	}

	items := make([]string, 0, len(detectedItems))
	for _, item := range detectedItems {
		if trimmed := strings.TrimSpace(item); trimmed != "" {
			items = append(items, trimmed)
		}
	}

	return Assessment{
		confidence:    copyFloat(confidence),
		quality:       copyFloat(quality),
		freshness:     freshness,
		detectedItems: items,
	}, nil
}

func (a Assessment) Confidence() *float64 {
	return copyFloat(a.confidence)
}

func (a Assessment) Quality() *float64 {
	return copyFloat(a.quality)
}

func (a Assessment) Freshness() Freshness {
	return a.freshness
}

func (a Assessment) DetectedItems() []string {
	return slices.Clone(a.detectedItems)
}

func validateScore(param string, score *float64) error {
	if score == nil {
		return nil
	}
	if math.IsNaN(*score) || *score < 0 || *score > 1 {
		return errs.NewValueIsOutOfRangeError(param, *score, 0, 1)
	}
	return nil
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}
