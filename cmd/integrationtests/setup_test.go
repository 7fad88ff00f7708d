package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"auction-engine/internal/engine"
	"auction-engine/internal/ledger"
	"auction-engine/internal/listing"
	model "auction-engine/internal/models"
	"auction-engine/internal/notify"
	"auction-engine/internal/payment"
	"auction-engine/internal/server"
)

// testFixture wires the full stack on in-memory backends so the API tests
// exercise the real admission path end to end.
type testFixture struct {
	router   *gin.Engine
	listings *listing.MemoryStore
	payments *payment.MemoryGate
}

// SetupTestRouter initializes the router with in-memory backends for
// integration testing. The increment fraction is fixed at 10%.
func SetupTestRouter() *testFixture {
	gin.SetMode(gin.TestMode)

	listings := listing.NewMemoryStore()
	payments := payment.NewMemoryGate()
	bidLedger := ledger.NewMemoryLedger()

	admissionEngine := engine.NewAdmissionEngine(payments, listings, bidLedger, notify.NewLogNotifier(), engine.Options{
		IncrementFraction: decimal.NewFromFloat(0.10),
		MaxAppendRetries:  3,
	})

	return &testFixture{
		router:   server.SetupRouter(admissionEngine),
		listings: listings,
		payments: payments,
	}
}

// openListing registers an active listing ending well in the future.
func (f *testFixture) openListing(listingID string, basePrice int64) {
	f.listings.AddListing(model.Listing{
		ListingID: listingID,
		Title:     "listing " + listingID,
		BasePrice: decimal.NewFromInt(basePrice),
		Active:    true,
		EndTime:   time.Now().Add(time.Hour),
	})
}

// closedListing registers a listing that no longer accepts bids.
func (f *testFixture) closedListing(listingID string, basePrice int64) {
	f.listings.AddListing(model.Listing{
		ListingID: listingID,
		Title:     "listing " + listingID,
		BasePrice: decimal.NewFromInt(basePrice),
		Active:    false,
		EndTime:   time.Now().Add(time.Hour),
	})
}

// payUp records an active payment so the user clears the admission gate.
func (f *testFixture) payUp(userID, listingID string) {
	f.payments.RecordPayment(userID, listingID)
}

// ExecuteRequestAndParse executes an HTTP request on the fixture's router and
// parses the JSON envelope.
func ExecuteRequestAndParse(t *testing.T, f *testFixture, method, url string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()

	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	case string:
		reqBody = []byte(v)
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	f.router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}

	return resp, w
}
