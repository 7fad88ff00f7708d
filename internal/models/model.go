package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// User represents a registered auction participant
type User struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}

// Listing represents an item open for bidding. It is owned by the external
// listing-management service; the engine only reads it.
type Listing struct {
	ListingID   string          `json:"listing_id"`
	Title       string          `json:"title"`
	Description string          `json:"description"`
	BasePrice   decimal.Decimal `json:"base_price"`
	Active      bool            `json:"active"`
	EndTime     time.Time       `json:"end_time"`
}

// OpenForBidding reports whether the listing accepts bids at the given instant.
func (l Listing) OpenForBidding(now time.Time) bool {
	return l.Active && now.Before(l.EndTime)
}

// PaymentRecord is proof that a user may bid on a listing. Owned by the
// external payment service; read-only to the engine.
type PaymentRecord struct {
	UserID    string `json:"user_id"`
	ListingID string `json:"listing_id"`
	Active    bool   `json:"active"`
}

// Bid is a committed bid on a listing. Once admitted it is never deleted;
// amendment raises Amount and PlacedAt in place, withdrawal sets the flag.
type Bid struct {
	BidID     string          `json:"bid_id"`
	ListingID string          `json:"listing_id"`
	UserID    string          `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	PlacedAt  time.Time       `json:"placed_at"`
	Withdrawn bool            `json:"withdrawn"`
}
