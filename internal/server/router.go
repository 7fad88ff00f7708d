package server

import (
	"github.com/gin-gonic/gin"

	"auction-engine/internal/engine"
	handler "auction-engine/services/auction/handler"
)

// SetupRouter configures all Gin routes for the application
func SetupRouter(admissionEngine *engine.AdmissionEngine) *gin.Engine {
	router := gin.New() // New router without default middleware for full control over middleware and logging

	router.Use(gin.Recovery())          // recover from panics
	router.Use(RequestLoggerMiddleware) // custom request logging

	auctionHandler := handler.NewAuctionHandler(admissionEngine)

	bids := router.Group("/bids")
	{
		bids.POST("", auctionHandler.PlaceBidHandler)
		bids.GET("/:bid_id", auctionHandler.GetBidHandler)
		bids.PUT("/:bid_id", auctionHandler.AmendBidHandler)
		bids.POST("/:bid_id/withdraw", auctionHandler.WithdrawBidHandler)
	}

	listings := router.Group("/listings")
	{
		listings.GET("/:listing_id/bids", auctionHandler.GetBidsByListingHandler)
		listings.GET("/:listing_id/highest", auctionHandler.GetHighestBidHandler)
		listings.POST("/:listing_id/auto-raise", auctionHandler.AutoRaiseHandler)
	}

	return router
}
