package handler

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"
	"auction-engine/services/auction/helpers"
	"auction-engine/utils"
)

type AdmissionEngineInterface interface {
	PlaceBid(userID, listingID string, amount decimal.Decimal) (model.Bid, error)
	AmendBid(bidID, userID string, newAmount decimal.Decimal) (model.Bid, error)
	AutoRaise(userID, listingID string) (model.Bid, error)
	WithdrawBid(bidID, userID string) (model.Bid, error)
	GetBid(bidID string) (model.Bid, error)
	GetBidsForListing(listingID string) ([]model.Bid, error)
	GetHighestBid(listingID string) (model.Bid, error)
}

type AuctionHandler struct {
	engine AdmissionEngineInterface
}

func NewAuctionHandler(engine AdmissionEngineInterface) *AuctionHandler {
	return &AuctionHandler{engine: engine}
}

// PlaceBidHandler handles POST /bids
func (h *AuctionHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	bid, err := h.engine.PlaceBid(req.UserID, req.ListingID, req.Amount)
	if err != nil {
		h.rejectBid(c, "PlaceBidHandler", err, map[string]any{
			"listing_id": req.ListingID,
			"user_id":    req.UserID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToBidResponse(bid), "bid admitted successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid admitted successfully", map[string]any{
		"bid_id":     bid.BidID,
		"listing_id": bid.ListingID,
		"user_id":    bid.UserID,
		"amount":     bid.Amount.String(),
	})
}

// AmendBidHandler handles PUT /bids/:bid_id
func (h *AuctionHandler) AmendBidHandler(c *gin.Context) {
	bidID := c.Param("bid_id")

	var req helpers.AmendBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AmendBidHandler", err)
		return
	}

	bid, err := h.engine.AmendBid(bidID, req.UserID, req.Amount)
	if err != nil {
		h.rejectBid(c, "AmendBidHandler", err, map[string]any{
			"bid_id":  bidID,
			"user_id": req.UserID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToBidResponse(bid), "bid amended successfully")
	helpers.LogSuccess("AmendBidHandler", "bid amended successfully", map[string]any{
		"bid_id":     bid.BidID,
		"listing_id": bid.ListingID,
		"amount":     bid.Amount.String(),
	})
}

// AutoRaiseHandler handles POST /listings/:listing_id/auto-raise
func (h *AuctionHandler) AutoRaiseHandler(c *gin.Context) {
	listingID := c.Param("listing_id")

	var req helpers.AutoRaiseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "AutoRaiseHandler", err)
		return
	}

	bid, err := h.engine.AutoRaise(req.UserID, listingID)
	if err != nil {
		h.rejectBid(c, "AutoRaiseHandler", err, map[string]any{
			"listing_id": listingID,
			"user_id":    req.UserID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.ToBidResponse(bid), "proxy bid admitted successfully")
	helpers.LogSuccess("AutoRaiseHandler", "proxy bid admitted successfully", map[string]any{
		"bid_id":     bid.BidID,
		"listing_id": bid.ListingID,
		"user_id":    bid.UserID,
		"amount":     bid.Amount.String(),
	})
}

// WithdrawBidHandler handles POST /bids/:bid_id/withdraw
func (h *AuctionHandler) WithdrawBidHandler(c *gin.Context) {
	bidID := c.Param("bid_id")

	var req helpers.WithdrawBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "WithdrawBidHandler", err)
		return
	}

	bid, err := h.engine.WithdrawBid(bidID, req.UserID)
	if err != nil {
		h.rejectBid(c, "WithdrawBidHandler", err, map[string]any{
			"bid_id":  bidID,
			"user_id": req.UserID,
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToBidResponse(bid), "bid withdrawn successfully")
	helpers.LogSuccess("WithdrawBidHandler", "bid withdrawn successfully", map[string]any{
		"bid_id":     bid.BidID,
		"listing_id": bid.ListingID,
	})
}

// GetBidHandler handles GET /bids/:bid_id
func (h *AuctionHandler) GetBidHandler(c *gin.Context) {
	bidID := c.Param("bid_id")

	bid, err := h.engine.GetBid(bidID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message, nil)
		utils.Warn("GetBidHandler: error retrieving bid", map[string]any{"bid_id": bidID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToBidResponse(bid), "bid retrieved successfully")
	helpers.LogSuccess("GetBidHandler", "bid retrieved successfully", map[string]any{
		"bid_id": bid.BidID,
	})
}

// GetBidsByListingHandler handles GET /listings/:listing_id/bids
func (h *AuctionHandler) GetBidsByListingHandler(c *gin.Context) {
	listingID := c.Param("listing_id")

	bids, err := h.engine.GetBidsForListing(listingID)
	if err != nil && !errors.Is(err, auctionerrors.ErrNoBids) {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message, nil)
		utils.Warn("GetBidsByListingHandler: error retrieving bids", map[string]any{"listing_id": listingID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToBidResponses(bids), "bids retrieved successfully")
	helpers.LogSuccess("GetBidsByListingHandler", "bids retrieved successfully", map[string]any{
		"listing_id": listingID,
		"count":      len(bids),
	})
}

// GetHighestBidHandler handles GET /listings/:listing_id/highest
func (h *AuctionHandler) GetHighestBidHandler(c *gin.Context) {
	listingID := c.Param("listing_id")

	bid, err := h.engine.GetHighestBid(listingID)
	if err != nil {
		if errors.Is(err, auctionerrors.ErrNoBids) {
			utils.JSONError(c, http.StatusNotFound, err, "no bids placed on listing yet", nil)
			utils.Info("GetHighestBidHandler: no bids on listing", map[string]any{"listing_id": listingID})
			return
		}
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message, nil)
		utils.Warn("GetHighestBidHandler: highest bid error", map[string]any{"listing_id": listingID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.ToBidResponse(bid), "highest bid retrieved successfully")
	helpers.LogSuccess("GetHighestBidHandler", "highest bid retrieved successfully", map[string]any{
		"bid_id":     bid.BidID,
		"listing_id": bid.ListingID,
		"amount":     bid.Amount.String(),
	})
}

// rejectBid maps an admission failure to its HTTP shape, attaching the
// structured rejection payload when one exists. Business rejections are
// logged as warnings, not errors.
func (h *AuctionHandler) rejectBid(c *gin.Context, handlerName string, err error, ctx map[string]any) {
	status, message := helpers.MapErrorToHTTP(err)
	utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message, helpers.RejectionDetails(err))

	ctx["error"] = err.Error()
	if status == http.StatusInternalServerError {
		utils.Error(handlerName+": bid admission failed", ctx)
		return
	}
	utils.Warn(handlerName+": bid rejected", ctx)
}
