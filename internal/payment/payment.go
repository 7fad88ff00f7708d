package payment

import (
	"sync"

	model "auction-engine/internal/models"
)

// Gate answers whether a user has an active payment toward a listing. Pure
// read; payment state is owned by the external payment service. Because it can
// change between a page load and a submission, the engine re-checks it on
// every admission attempt.
type Gate interface {
	HasActivePayment(userID, listingID string) (bool, error)
}

// MemoryGate is a concurrency-safe in-memory implementation of Gate
type MemoryGate struct {
	mu      sync.RWMutex
	records map[string]model.PaymentRecord // key: userID + "|" + listingID
}

// NewMemoryGate creates a new in-memory payment gate instance
func NewMemoryGate() *MemoryGate {
	return &MemoryGate{
		records: make(map[string]model.PaymentRecord),
	}
}

// HasActivePayment reports whether an active payment record exists. Absence
// is the common case, not an error.
func (g *MemoryGate) HasActivePayment(userID, listingID string) (bool, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()

	rec, ok := g.records[paymentKey(userID, listingID)]
	return ok && rec.Active, nil
}

// RecordPayment marks a user as paid for a listing
func (g *MemoryGate) RecordPayment(userID, listingID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.records[paymentKey(userID, listingID)] = model.PaymentRecord{
		UserID:    userID,
		ListingID: listingID,
		Active:    true,
	}
}

// DeactivatePayment flips an existing payment record inactive
func (g *MemoryGate) DeactivatePayment(userID, listingID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if rec, ok := g.records[paymentKey(userID, listingID)]; ok {
		rec.Active = false
		g.records[paymentKey(userID, listingID)] = rec
	}
}

func paymentKey(userID, listingID string) string {
	return userID + "|" + listingID
}
