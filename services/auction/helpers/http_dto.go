package helpers

import (
	"time"

	"github.com/shopspring/decimal"

	model "auction-engine/internal/models"
)

// Request/Response DTOs
type PlaceBidRequest struct {
	ListingID string          `json:"listing_id" binding:"required"`
	UserID    string          `json:"user_id" binding:"required"`
	Amount    decimal.Decimal `json:"amount" binding:"required"`
}

type AmendBidRequest struct {
	UserID string          `json:"user_id" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
}

type AutoRaiseRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

type WithdrawBidRequest struct {
	UserID string `json:"user_id" binding:"required"`
}

type BidResponse struct {
	BidID     string `json:"bid_id"`
	ListingID string `json:"listing_id"`
	UserID    string `json:"user_id"`
	Amount    string `json:"amount"`
	PlacedAt  string `json:"placed_at"`
	Withdrawn bool   `json:"withdrawn,omitempty"`
}

// ToBidResponse maps a committed bid onto the wire shape. Amounts travel as
// strings to keep decimal precision out of float hands.
func ToBidResponse(bid model.Bid) BidResponse {
	return BidResponse{
		BidID:     bid.BidID,
		ListingID: bid.ListingID,
		UserID:    bid.UserID,
		Amount:    bid.Amount.String(),
		PlacedAt:  bid.PlacedAt.UTC().Format(time.RFC3339),
		Withdrawn: bid.Withdrawn,
	}
}

// ToBidResponses maps a bid sequence preserving order.
func ToBidResponses(bids []model.Bid) []BidResponse {
	out := make([]BidResponse, 0, len(bids))
	for _, b := range bids {
		out = append(out, ToBidResponse(b))
	}
	return out
}
