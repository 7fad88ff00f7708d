package listing

import (
	"fmt"
	"sync"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"
)

// SnapshotReader gives the engine read access to listing state owned by the
// external listing-management service.
type SnapshotReader interface {
	GetListing(listingID string) (model.Listing, error)
}

// MemoryStore is a concurrency-safe in-memory implementation of SnapshotReader
type MemoryStore struct {
	mu       sync.RWMutex
	listings map[string]model.Listing
}

// NewMemoryStore creates a new in-memory listing store instance
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		listings: make(map[string]model.Listing),
	}
}

// GetListing returns the listing snapshot or ErrListingNotFound
func (s *MemoryStore) GetListing(listingID string) (model.Listing, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	l, ok := s.listings[listingID]
	if !ok {
		return model.Listing{}, fmt.Errorf("get listing %s: %w", listingID, auctionerrors.ErrListingNotFound)
	}
	return l, nil
}

// AddListing stores or replaces a listing snapshot
func (s *MemoryStore) AddListing(l model.Listing) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listings[l.ListingID] = l
}
