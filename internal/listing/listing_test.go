package listing

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"
)

func TestMemoryStore_GetListing(t *testing.T) {
	t.Parallel()

	store := NewMemoryStore()
	store.AddListing(model.Listing{
		ListingID: "listing1",
		Title:     "title1",
		BasePrice: decimal.NewFromInt(100),
		Active:    true,
		EndTime:   time.Now().Add(24 * time.Hour),
	})

	t.Run("existing_listing", func(t *testing.T) {
		l, err := store.GetListing("listing1")
		require.NoError(t, err)
		require.Equal(t, "listing1", l.ListingID)
	})

	t.Run("unknown_listing", func(t *testing.T) {
		_, err := store.GetListing("listingX")
		require.Error(t, err)
		require.True(t, errors.Is(err, auctionerrors.ErrListingNotFound))
	})
}

func TestListing_OpenForBidding(t *testing.T) {
	t.Parallel()

	now := time.Now()

	tests := []struct {
		name    string
		active  bool
		endTime time.Time
		want    bool
	}{
		{name: "active_before_end", active: true, endTime: now.Add(time.Hour), want: true},
		{name: "inactive", active: false, endTime: now.Add(time.Hour), want: false},
		{name: "past_end_time", active: true, endTime: now.Add(-time.Minute), want: false},
		{name: "exactly_at_end_time", active: true, endTime: now, want: false},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			l := model.Listing{Active: tc.active, EndTime: tc.endTime}
			require.Equal(t, tc.want, l.OpenForBidding(now))
		})
	}
}
