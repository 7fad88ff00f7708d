package helpers

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"auction-engine/internal/auctionerrors"
	"auction-engine/utils"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload", nil)
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps engine errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, auctionerrors.ErrListingNotFound):
		return http.StatusNotFound, "listing not found"
	case errors.Is(err, auctionerrors.ErrBidNotFound):
		return http.StatusNotFound, "bid not found"
	case errors.Is(err, auctionerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, auctionerrors.ErrPaymentRequired):
		return http.StatusPaymentRequired, "active payment required before bidding"
	case errors.Is(err, auctionerrors.ErrListingClosed):
		return http.StatusConflict, "listing is not open for bidding"
	case errors.Is(err, auctionerrors.ErrBelowBasePrice):
		return http.StatusConflict, "bid must exceed the base price"
	case errors.Is(err, auctionerrors.ErrBelowMinimumIncrement):
		return http.StatusConflict, "bid does not meet the minimum increment"
	case errors.Is(err, auctionerrors.ErrMustIncreaseAmount):
		return http.StatusConflict, "amended amount must exceed the current amount"
	case errors.Is(err, auctionerrors.ErrNoActiveBid):
		return http.StatusConflict, "no active bid to raise against"
	case errors.Is(err, auctionerrors.ErrNotBidOwner):
		return http.StatusForbidden, "only the original bidder may modify a bid"
	case errors.Is(err, auctionerrors.ErrConflict):
		return http.StatusConflict, "bid conflicts with concurrent submissions"
	case errors.Is(err, auctionerrors.ErrNoBids):
		return http.StatusOK, "no bids found for listing"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// RejectionDetails extracts the structured payload of a business rejection,
// when the error carries one.
func RejectionDetails(err error) map[string]any {
	var belowBase *auctionerrors.BelowBasePriceError
	if errors.As(err, &belowBase) {
		return map[string]any{"base_price": belowBase.BasePrice.String()}
	}
	var belowMin *auctionerrors.BelowMinimumIncrementError
	if errors.As(err, &belowMin) {
		return map[string]any{"required_minimum": belowMin.RequiredMinimum.String()}
	}
	var mustIncrease *auctionerrors.MustIncreaseAmountError
	if errors.As(err, &mustIncrease) {
		return map[string]any{"current_amount": mustIncrease.CurrentAmount.String()}
	}
	return nil
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}
