package timecard

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTimecard_Submit_FromDraft(t *testing.T) {
	tc := New("E1", NewDate(2024, 6, 3))

	err := tc.Submit()
	require.NoError(t, err)
	require.Equal(t, StatusSubmitted, tc.Status)
}

func TestTimecard_Submit_Illegal(t *testing.T) {
	for _, status := range []Status{StatusSubmitted, StatusApproved} {
		tc := New("E1", NewDate(2024, 6, 3))
		tc.Status = status

		err := tc.Submit()
		require.ErrorIs(t, err, ErrInvalidState)
		require.Contains(t, err.Error(), "DRAFT")
		require.Equal(t, status, tc.Status, "status must not change on a rejected transition")
	}
}

func TestTimecard_Approve_FromSubmitted(t *testing.T) {
	tc := New("E1", NewDate(2024, 6, 3))
	tc.Status = StatusSubmitted

	err := tc.Approve()
	require.NoError(t, err)
	require.Equal(t, StatusApproved, tc.Status)
}

func TestTimecard_Approve_Illegal(t *testing.T) {
	for _, status := range []Status{StatusDraft, StatusApproved} {
		tc := New("E1", NewDate(2024, 6, 3))
		tc.Status = status

		err := tc.Approve()
		require.ErrorIs(t, err, ErrInvalidState)
		require.Contains(t, err.Error(), "SUBMITTED")
		require.Equal(t, status, tc.Status)
	}
}

func TestTimecard_NoBackwardTransitions(t *testing.T) {
	tc := New("E1", NewDate(2024, 6, 3))
	require.NoError(t, tc.Submit())
	require.NoError(t, tc.Approve())

	require.ErrorIs(t, tc.Submit(), ErrInvalidState)
	require.ErrorIs(t, tc.Approve(), ErrInvalidState)
	require.Equal(t, StatusApproved, tc.Status)
}
