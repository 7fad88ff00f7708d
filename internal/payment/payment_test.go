package payment

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryGate_HasActivePayment(t *testing.T) {
	t.Parallel()

	gate := NewMemoryGate()
	gate.RecordPayment("user1", "listing1")

	tests := []struct {
		name      string
		userID    string
		listingID string
		want      bool
	}{
		{name: "active_record", userID: "user1", listingID: "listing1", want: true},
		{name: "no_record", userID: "user2", listingID: "listing1", want: false},
		{name: "wrong_listing", userID: "user1", listingID: "listing2", want: false},
		{name: "empty_user", userID: "", listingID: "listing1", want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got, err := gate.HasActivePayment(tc.userID, tc.listingID)
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

// payment state can change between page load and submission
func TestMemoryGate_DeactivatePayment(t *testing.T) {
	t.Parallel()

	gate := NewMemoryGate()
	gate.RecordPayment("user1", "listing1")

	eligible, err := gate.HasActivePayment("user1", "listing1")
	require.NoError(t, err)
	require.True(t, eligible)

	gate.DeactivatePayment("user1", "listing1")

	eligible, err = gate.HasActivePayment("user1", "listing1")
	require.NoError(t, err)
	require.False(t, eligible)
}
