package donation_test

import (
	"testing"

	"foodloop/internal/core/domain/model/donation"
	"foodloop/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_String(t *testing.T) {
	assert.Equal(t, "pending", donation.Pending.String())
	assert.Equal(t, "picked_up", donation.PickedUp.String())
	assert.Equal(t, "cancelled", donation.Cancelled.String())
	assert.Equal(t, "unknown", donation.Status(42).String())
}

func TestParseStatus(t *testing.T) {
	s, err := donation.ParseStatus(" Picked_Up ")
	require.NoError(t, err)
	assert.Equal(t, donation.PickedUp, s)

	_, err = donation.ParseStatus("unknown")
	require.ErrorIs(t, err, errs.ErrValidationFailed)

	_, err = donation.ParseStatus("lost")
	require.ErrorIs(t, err, errs.ErrValidationFailed)
}

func TestStatus_Validate(t *testing.T) {
	require.NoError(t, donation.Delivered.Validate())
	require.Error(t, donation.Unknown.Validate())
	require.Error(t, donation.Status(99).Validate())
}

func TestStatus_Predicates(t *testing.T) {
	testCases := []struct {
		status    donation.Status
		open      bool
		inTransit bool
		terminal  bool
	}{
		{donation.Pending, true, false, false},
		{donation.Approved, true, false, false},
		{donation.Assigned, false, true, false},
		{donation.PickedUp, false, true, false},
		{donation.Delivered, false, false, true},
		{donation.Cancelled, false, false, true},
	}

	for _, tc := range testCases {
		t.Run(tc.status.String(), func(t *testing.T) {
			assert.Equal(t, tc.open, tc.status.IsOpen())
			assert.Equal(t, tc.inTransit, tc.status.IsInTransit())
			assert.Equal(t, tc.terminal, tc.status.IsTerminal())
		})
	}
}

func TestStatus_ValidateAssignments(t *testing.T) {
	testCases := []struct {
		name     string
		status   donation.Status
		receiver bool
		driver   bool
		pickedUp bool
		valid    bool
	}{
		{"pending without assignments", donation.Pending, false, false, false, true},
		{"pending with receiver", donation.Pending, true, false, false, false},
		{"assigned with receiver", donation.Assigned, true, false, false, true},
		{"assigned without receiver", donation.Assigned, false, false, false, false},
		{"assigned with driver", donation.Assigned, true, true, true, false},
		{"picked up fully assigned", donation.PickedUp, true, true, true, true},
		{"picked up without pickup time", donation.PickedUp, true, true, false, false},
		{"delivered without driver", donation.Delivered, true, false, false, false},
		{"cancelled keeps receiver", donation.Cancelled, true, false, false, true},
		{"cancelled keeps both", donation.Cancelled, true, true, true, true},
		{"cancelled driver without receiver", donation.Cancelled, false, true, true, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.status.ValidateAssignments(tc.receiver, tc.driver, tc.pickedUp)
			if tc.valid {
				require.NoError(t, err)
				return
			}
			require.ErrorIs(t, err, errs.ErrValidationFailed)
		})
	}
}
