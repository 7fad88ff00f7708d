package handler

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"
	"auction-engine/services/auction/helpers"
)

func newTestRouter(t *testing.T) (*gin.Engine, *MockAdmissionEngineInterface) {
	t.Helper()
	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mockEngine := NewMockAdmissionEngineInterface(ctrl)
	h := NewAuctionHandler(mockEngine)

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/bids", h.PlaceBidHandler)
	router.GET("/bids/:bid_id", h.GetBidHandler)
	router.PUT("/bids/:bid_id", h.AmendBidHandler)
	router.POST("/bids/:bid_id/withdraw", h.WithdrawBidHandler)
	router.GET("/listings/:listing_id/bids", h.GetBidsByListingHandler)
	router.GET("/listings/:listing_id/highest", h.GetHighestBidHandler)
	router.POST("/listings/:listing_id/auto-raise", h.AutoRaiseHandler)
	return router, mockEngine
}

func performJSON(t *testing.T, router *gin.Engine, method, url string, body any) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	var payload []byte
	switch v := body.(type) {
	case nil:
	case string:
		payload = []byte(v)
	default:
		var err error
		payload, err = json.Marshal(v)
		require.NoError(t, err)
	}

	req := httptest.NewRequest(method, url, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	}
	return w, resp
}

// Test PlaceBidHandler
func TestPlaceBidHandler(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name           string
		requestBody    any
		mockSetup      func(m *MockAdmissionEngineInterface)
		expectedStatus int
		expectedMsg    string
		validateData   func(t *testing.T, data map[string]any)
		validateError  func(t *testing.T, resp map[string]any)
	}{
		{
			name: "success_valid_bid",
			requestBody: helpers.PlaceBidRequest{
				ListingID: "listing1",
				UserID:    "user1",
				Amount:    decimal.NewFromInt(150),
			},
			mockSetup: func(m *MockAdmissionEngineInterface) {
				m.EXPECT().
					PlaceBid("user1", "listing1", gomock.Any()).
					Return(model.Bid{
						BidID:     uuid.NewString(),
						ListingID: "listing1",
						UserID:    "user1",
						Amount:    decimal.NewFromInt(150),
						PlacedAt:  now,
					}, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedMsg:    "bid admitted successfully",
			validateData: func(t *testing.T, data map[string]any) {
				bidID := data["bid_id"].(string)
				require.NotEmpty(t, bidID)
				_, parseErr := uuid.Parse(bidID)
				require.NoError(t, parseErr, "BidID should be a valid UUID")
				require.Equal(t, "listing1", data["listing_id"])
				require.Equal(t, "user1", data["user_id"])
				require.Equal(t, "150", data["amount"])
			},
		},
		{
			name:           "invalid_json",
			requestBody:    `{invalid json}`,
			mockSetup:      func(m *MockAdmissionEngineInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name: "missing_listing_id",
			requestBody: helpers.PlaceBidRequest{
				ListingID: "",
				UserID:    "user1",
				Amount:    decimal.NewFromInt(150),
			},
			mockSetup:      func(m *MockAdmissionEngineInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name: "missing_user_id",
			requestBody: helpers.PlaceBidRequest{
				ListingID: "listing1",
				UserID:    "",
				Amount:    decimal.NewFromInt(150),
			},
			mockSetup:      func(m *MockAdmissionEngineInterface) {},
			expectedStatus: http.StatusBadRequest,
			expectedMsg:    "invalid request payload",
		},
		{
			name: "payment_required",
			requestBody: helpers.PlaceBidRequest{
				ListingID: "listing1",
				UserID:    "user1",
				Amount:    decimal.NewFromInt(150),
			},
			mockSetup: func(m *MockAdmissionEngineInterface) {
				m.EXPECT().
					PlaceBid("user1", "listing1", gomock.Any()).
					Return(model.Bid{}, auctionerrors.ErrPaymentRequired)
			},
			expectedStatus: http.StatusPaymentRequired,
			expectedMsg:    "active payment required before bidding",
		},
		{
			name: "listing_closed",
			requestBody: helpers.PlaceBidRequest{
				ListingID: "listing1",
				UserID:    "user1",
				Amount:    decimal.NewFromInt(150),
			},
			mockSetup: func(m *MockAdmissionEngineInterface) {
				m.EXPECT().
					PlaceBid("user1", "listing1", gomock.Any()).
					Return(model.Bid{}, auctionerrors.ErrListingClosed)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "listing is not open for bidding",
		},
		{
			name: "below_minimum_increment_carries_required_minimum",
			requestBody: helpers.PlaceBidRequest{
				ListingID: "listing1",
				UserID:    "user1",
				Amount:    decimal.NewFromInt(1050),
			},
			mockSetup: func(m *MockAdmissionEngineInterface) {
				m.EXPECT().
					PlaceBid("user1", "listing1", gomock.Any()).
					Return(model.Bid{}, fmt.Errorf("engine: %w",
						&auctionerrors.BelowMinimumIncrementError{RequiredMinimum: decimal.NewFromInt(1100)}))
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "bid does not meet the minimum increment",
			validateError: func(t *testing.T, resp map[string]any) {
				details := resp["details"].(map[string]any)
				require.Equal(t, "1100", details["required_minimum"])
			},
		},
		{
			name: "listing_not_found",
			requestBody: helpers.PlaceBidRequest{
				ListingID: "listingX",
				UserID:    "user1",
				Amount:    decimal.NewFromInt(150),
			},
			mockSetup: func(m *MockAdmissionEngineInterface) {
				m.EXPECT().
					PlaceBid("user1", "listingX", gomock.Any()).
					Return(model.Bid{}, auctionerrors.ErrListingNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedMsg:    "listing not found",
		},
		{
			name: "conflict_after_retries",
			requestBody: helpers.PlaceBidRequest{
				ListingID: "listing1",
				UserID:    "user1",
				Amount:    decimal.NewFromInt(150),
			},
			mockSetup: func(m *MockAdmissionEngineInterface) {
				m.EXPECT().
					PlaceBid("user1", "listing1", gomock.Any()).
					Return(model.Bid{}, auctionerrors.ErrConflict)
			},
			expectedStatus: http.StatusConflict,
			expectedMsg:    "bid conflicts with concurrent submissions",
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			router, mockEngine := newTestRouter(t)
			tc.mockSetup(mockEngine)

			w, resp := performJSON(t, router, http.MethodPost, "/bids", tc.requestBody)

			require.Equal(t, tc.expectedStatus, w.Code)
			require.Equal(t, tc.expectedMsg, resp["message"])

			if tc.validateData != nil {
				tc.validateData(t, resp["data"].(map[string]any))
			}
			if tc.validateError != nil {
				tc.validateError(t, resp)
			}
		})
	}
}

// Test AmendBidHandler
func TestAmendBidHandler(t *testing.T) {
	now := time.Now().UTC()

	t.Run("success", func(t *testing.T) {
		router, mockEngine := newTestRouter(t)
		mockEngine.EXPECT().
			AmendBid("bid1", "user1", gomock.Any()).
			Return(model.Bid{
				BidID:     "bid1",
				ListingID: "listing1",
				UserID:    "user1",
				Amount:    decimal.NewFromInt(600),
				PlacedAt:  now,
			}, nil)

		w, resp := performJSON(t, router, http.MethodPut, "/bids/bid1", helpers.AmendBidRequest{
			UserID: "user1",
			Amount: decimal.NewFromInt(600),
		})

		require.Equal(t, http.StatusOK, w.Code)
		data := resp["data"].(map[string]any)
		require.Equal(t, "bid1", data["bid_id"])
		require.Equal(t, "600", data["amount"])
	})

	t.Run("not_owner", func(t *testing.T) {
		router, mockEngine := newTestRouter(t)
		mockEngine.EXPECT().
			AmendBid("bid1", "user2", gomock.Any()).
			Return(model.Bid{}, auctionerrors.ErrNotBidOwner)

		w, resp := performJSON(t, router, http.MethodPut, "/bids/bid1", helpers.AmendBidRequest{
			UserID: "user2",
			Amount: decimal.NewFromInt(9000),
		})

		require.Equal(t, http.StatusForbidden, w.Code)
		require.Equal(t, "only the original bidder may modify a bid", resp["message"])
	})

	t.Run("must_increase_carries_current_amount", func(t *testing.T) {
		router, mockEngine := newTestRouter(t)
		mockEngine.EXPECT().
			AmendBid("bid1", "user1", gomock.Any()).
			Return(model.Bid{}, fmt.Errorf("engine: %w",
				&auctionerrors.MustIncreaseAmountError{CurrentAmount: decimal.NewFromInt(500)}))

		w, resp := performJSON(t, router, http.MethodPut, "/bids/bid1", helpers.AmendBidRequest{
			UserID: "user1",
			Amount: decimal.NewFromInt(400),
		})

		require.Equal(t, http.StatusConflict, w.Code)
		details := resp["details"].(map[string]any)
		require.Equal(t, "500", details["current_amount"])
	})

	t.Run("invalid_payload", func(t *testing.T) {
		router, _ := newTestRouter(t)
		w, _ := performJSON(t, router, http.MethodPut, "/bids/bid1", `{bad json}`)
		require.Equal(t, http.StatusBadRequest, w.Code)
	})
}

// Test AutoRaiseHandler
func TestAutoRaiseHandler(t *testing.T) {
	now := time.Now().UTC()

	t.Run("success", func(t *testing.T) {
		router, mockEngine := newTestRouter(t)
		mockEngine.EXPECT().
			AutoRaise("user1", "listing1").
			Return(model.Bid{
				BidID:     uuid.NewString(),
				ListingID: "listing1",
				UserID:    "user1",
				Amount:    decimal.NewFromInt(1100),
				PlacedAt:  now,
			}, nil)

		w, resp := performJSON(t, router, http.MethodPost, "/listings/listing1/auto-raise", helpers.AutoRaiseRequest{UserID: "user1"})

		require.Equal(t, http.StatusCreated, w.Code)
		data := resp["data"].(map[string]any)
		require.Equal(t, "1100", data["amount"])
	})

	t.Run("no_active_bid", func(t *testing.T) {
		router, mockEngine := newTestRouter(t)
		mockEngine.EXPECT().
			AutoRaise("user1", "listing1").
			Return(model.Bid{}, auctionerrors.ErrNoActiveBid)

		w, resp := performJSON(t, router, http.MethodPost, "/listings/listing1/auto-raise", helpers.AutoRaiseRequest{UserID: "user1"})

		require.Equal(t, http.StatusConflict, w.Code)
		require.Equal(t, "no active bid to raise against", resp["message"])
	})
}

// Test WithdrawBidHandler
func TestWithdrawBidHandler(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		router, mockEngine := newTestRouter(t)
		mockEngine.EXPECT().
			WithdrawBid("bid1", "user1").
			Return(model.Bid{
				BidID:     "bid1",
				ListingID: "listing1",
				UserID:    "user1",
				Amount:    decimal.NewFromInt(500),
				PlacedAt:  time.Now().UTC(),
				Withdrawn: true,
			}, nil)

		w, resp := performJSON(t, router, http.MethodPost, "/bids/bid1/withdraw", helpers.WithdrawBidRequest{UserID: "user1"})

		require.Equal(t, http.StatusOK, w.Code)
		data := resp["data"].(map[string]any)
		require.Equal(t, true, data["withdrawn"])
	})

	t.Run("not_owner", func(t *testing.T) {
		router, mockEngine := newTestRouter(t)
		mockEngine.EXPECT().
			WithdrawBid("bid1", "user2").
			Return(model.Bid{}, auctionerrors.ErrNotBidOwner)

		w, _ := performJSON(t, router, http.MethodPost, "/bids/bid1/withdraw", helpers.WithdrawBidRequest{UserID: "user2"})
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}

// Test read handlers
func TestReadHandlers(t *testing.T) {
	now := time.Now().UTC()
	bids := []model.Bid{
		{BidID: "bid2", ListingID: "listing1", UserID: "user2", Amount: decimal.NewFromInt(150), PlacedAt: now.Add(time.Second)},
		{BidID: "bid1", ListingID: "listing1", UserID: "user1", Amount: decimal.NewFromInt(100), PlacedAt: now},
	}

	t.Run("get_bid_found", func(t *testing.T) {
		router, mockEngine := newTestRouter(t)
		mockEngine.EXPECT().GetBid("bid1").Return(bids[1], nil)

		w, resp := performJSON(t, router, http.MethodGet, "/bids/bid1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := resp["data"].(map[string]any)
		require.Equal(t, "bid1", data["bid_id"])
	})

	t.Run("get_bid_not_found", func(t *testing.T) {
		router, mockEngine := newTestRouter(t)
		mockEngine.EXPECT().GetBid("bidX").Return(model.Bid{}, auctionerrors.ErrBidNotFound)

		w, _ := performJSON(t, router, http.MethodGet, "/bids/bidX", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	t.Run("get_bids_by_listing_ordered", func(t *testing.T) {
		router, mockEngine := newTestRouter(t)
		mockEngine.EXPECT().GetBidsForListing("listing1").Return(bids, nil)

		w, resp := performJSON(t, router, http.MethodGet, "/listings/listing1/bids", nil)
		require.Equal(t, http.StatusOK, w.Code)

		data := resp["data"].([]any)
		require.Len(t, data, 2)
		first := data[0].(map[string]any)
		require.Equal(t, "bid2", first["bid_id"])
	})

	t.Run("get_bids_by_listing_empty", func(t *testing.T) {
		router, mockEngine := newTestRouter(t)
		mockEngine.EXPECT().GetBidsForListing("listing2").Return(nil, auctionerrors.ErrNoBids)

		w, resp := performJSON(t, router, http.MethodGet, "/listings/listing2/bids", nil)
		require.Equal(t, http.StatusOK, w.Code)
		require.Len(t, resp["data"].([]any), 0)
	})

	t.Run("get_highest_bid", func(t *testing.T) {
		router, mockEngine := newTestRouter(t)
		mockEngine.EXPECT().GetHighestBid("listing1").Return(bids[0], nil)

		w, resp := performJSON(t, router, http.MethodGet, "/listings/listing1/highest", nil)
		require.Equal(t, http.StatusOK, w.Code)
		data := resp["data"].(map[string]any)
		require.Equal(t, "bid2", data["bid_id"])
	})

	t.Run("get_highest_bid_none", func(t *testing.T) {
		router, mockEngine := newTestRouter(t)
		mockEngine.EXPECT().GetHighestBid("listing2").Return(model.Bid{}, auctionerrors.ErrNoBids)

		w, _ := performJSON(t, router, http.MethodGet, "/listings/listing2/highest", nil)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}
