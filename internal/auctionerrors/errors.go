package auctionerrors

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Not-found errors
var (
	ErrListingNotFound = errors.New("listing not found")
	ErrBidNotFound     = errors.New("bid not found")
	ErrNoBids          = errors.New("no bids found for listing")
)

// Business rejections. Expected, user-facing, non-fatal.
var (
	ErrInvalidBid            = errors.New("invalid bid")
	ErrPaymentRequired       = errors.New("active payment required before bidding")
	ErrListingClosed         = errors.New("listing is not open for bidding")
	ErrBelowBasePrice        = errors.New("bid does not exceed the base price")
	ErrBelowMinimumIncrement = errors.New("bid does not meet the minimum increment")
	ErrMustIncreaseAmount    = errors.New("amended amount must exceed the current amount")
	ErrNoActiveBid           = errors.New("no active bid to raise against")
	ErrNotBidOwner           = errors.New("only the original bidder may modify a bid")
)

// Concurrency errors
var (
	// ErrStaleVersion is returned by the ledger when the listing changed
	// between the caller's read and its conditional write.
	ErrStaleVersion = errors.New("listing version is stale")
	// ErrConflict surfaces once the engine has exhausted its append retries.
	ErrConflict = errors.New("bid conflicts with concurrent submissions, please resubmit")
)

// BelowBasePriceError carries the base price the bid must exceed.
type BelowBasePriceError struct {
	BasePrice decimal.Decimal
}

func (e *BelowBasePriceError) Error() string {
	return fmt.Sprintf("bid must exceed the base price %s", e.BasePrice)
}

func (e *BelowBasePriceError) Unwrap() error { return ErrBelowBasePrice }

// BelowMinimumIncrementError carries the minimum admissible amount so the
// caller can self-correct without another round trip.
type BelowMinimumIncrementError struct {
	RequiredMinimum decimal.Decimal
}

func (e *BelowMinimumIncrementError) Error() string {
	return fmt.Sprintf("bid must be at least %s", e.RequiredMinimum)
}

func (e *BelowMinimumIncrementError) Unwrap() error { return ErrBelowMinimumIncrement }

// MustIncreaseAmountError carries the bid's current amount.
type MustIncreaseAmountError struct {
	CurrentAmount decimal.Decimal
}

func (e *MustIncreaseAmountError) Error() string {
	return fmt.Sprintf("amended amount must exceed the current amount %s", e.CurrentAmount)
}

func (e *MustIncreaseAmountError) Unwrap() error { return ErrMustIncreaseAmount }
