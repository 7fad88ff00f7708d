package ledger

import (
	"fmt"
	"sort"
	"sync"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"
)

// BidLedger is the ordered, append-only bid history for each listing.
//
// Every listing carries a monotonic version counter that is bumped on each
// mutation. Writers read the current highest together with that version and
// condition their write on the version still holding; a mismatch returns
// auctionerrors.ErrStaleVersion and the caller must re-read and retry. This
// is what prevents two bids admitted against the same stale maximum.
type BidLedger interface {
	// CurrentHighest returns the highest non-withdrawn bid for a listing and
	// the listing's current version. When the listing has no admissible bids
	// it returns auctionerrors.ErrNoBids together with a still-valid version,
	// so the first bid can be appended conditionally too.
	CurrentHighest(listingID string) (model.Bid, uint64, error)

	// AppendBid commits a new bid if the listing version is still expectedVersion.
	AppendBid(listingID string, expectedVersion uint64, bid model.Bid) error

	// UpdateBid replaces the amount and timestamp of an existing bid in place
	// if the listing version is still expectedVersion.
	UpdateBid(listingID string, expectedVersion uint64, bid model.Bid) error

	// WithdrawBid marks an existing bid withdrawn if the listing version is
	// still expectedVersion. Withdrawn bids stay in the history but are
	// excluded from the current-highest computation.
	WithdrawBid(listingID string, expectedVersion uint64, bidID string) error

	GetBid(bidID string) (model.Bid, error)

	// GetBidsByListing returns all bids for a listing ordered by amount
	// descending, ties broken by placed-at ascending.
	GetBidsByListing(listingID string) ([]model.Bid, error)
}

// MemoryLedger is a concurrency-safe in-memory implementation of BidLedger
type MemoryLedger struct {
	mu        sync.RWMutex
	bids      map[string][]model.Bid // key: listingID -> value: committed bids in admission order
	bidOwner  map[string]string      // key: bidID -> value: listingID
	versions  map[string]uint64      // key: listingID -> value: mutation counter
}

// NewMemoryLedger creates a new in-memory ledger instance
func NewMemoryLedger() *MemoryLedger {
	return &MemoryLedger{
		bids:     make(map[string][]model.Bid),
		bidOwner: make(map[string]string),
		versions: make(map[string]uint64),
	}
}

// CurrentHighest returns the highest non-withdrawn bid and the listing version
func (l *MemoryLedger) CurrentHighest(listingID string) (model.Bid, uint64, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	version := l.versions[listingID]
	highest, found := highestOf(l.bids[listingID])
	if !found {
		return model.Bid{}, version, fmt.Errorf("current highest for listing %s: %w", listingID, auctionerrors.ErrNoBids)
	}
	return highest, version, nil
}

// AppendBid commits a new bid under the optimistic version check
func (l *MemoryLedger) AppendBid(listingID string, expectedVersion uint64, bid model.Bid) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.versions[listingID] != expectedVersion {
		return fmt.Errorf("append bid for listing %s: %w", listingID, auctionerrors.ErrStaleVersion)
	}

	l.bids[listingID] = append(l.bids[listingID], bid)
	l.bidOwner[bid.BidID] = listingID
	l.versions[listingID]++
	return nil
}

// UpdateBid amends an existing bid in place under the optimistic version check
func (l *MemoryLedger) UpdateBid(listingID string, expectedVersion uint64, bid model.Bid) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.versions[listingID] != expectedVersion {
		return fmt.Errorf("update bid %s: %w", bid.BidID, auctionerrors.ErrStaleVersion)
	}

	bids := l.bids[listingID]
	for i := range bids {
		if bids[i].BidID == bid.BidID {
			bids[i].Amount = bid.Amount
			bids[i].PlacedAt = bid.PlacedAt
			l.versions[listingID]++
			return nil
		}
	}
	return fmt.Errorf("update bid %s: %w", bid.BidID, auctionerrors.ErrBidNotFound)
}

// WithdrawBid marks a bid withdrawn under the optimistic version check
func (l *MemoryLedger) WithdrawBid(listingID string, expectedVersion uint64, bidID string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.versions[listingID] != expectedVersion {
		return fmt.Errorf("withdraw bid %s: %w", bidID, auctionerrors.ErrStaleVersion)
	}

	bids := l.bids[listingID]
	for i := range bids {
		if bids[i].BidID == bidID {
			bids[i].Withdrawn = true
			l.versions[listingID]++
			return nil
		}
	}
	return fmt.Errorf("withdraw bid %s: %w", bidID, auctionerrors.ErrBidNotFound)
}

// GetBid returns a single bid by ID
func (l *MemoryLedger) GetBid(bidID string) (model.Bid, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	listingID, ok := l.bidOwner[bidID]
	if !ok {
		return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, auctionerrors.ErrBidNotFound)
	}
	for _, b := range l.bids[listingID] {
		if b.BidID == bidID {
			return b, nil
		}
	}
	return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, auctionerrors.ErrBidNotFound)
}

// GetBidsByListing returns all bids for a listing, highest amount first
func (l *MemoryLedger) GetBidsByListing(listingID string) ([]model.Bid, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	bids, ok := l.bids[listingID]
	if !ok || len(bids) == 0 {
		return nil, fmt.Errorf("get bids for listing %s: %w", listingID, auctionerrors.ErrNoBids)
	}

	out := append([]model.Bid(nil), bids...)
	sortBids(out)
	return out, nil
}

// highestOf scans for the maximum-amount non-withdrawn bid, earliest wins ties.
func highestOf(bids []model.Bid) (model.Bid, bool) {
	var highest model.Bid
	found := false
	for _, b := range bids {
		if b.Withdrawn {
			continue
		}
		if !found || b.Amount.GreaterThan(highest.Amount) ||
			(b.Amount.Equal(highest.Amount) && b.PlacedAt.Before(highest.PlacedAt)) {
			highest = b
			found = true
		}
	}
	return highest, found
}

// sortBids orders by amount descending, ties by placed-at ascending.
func sortBids(bids []model.Bid) {
	sort.SliceStable(bids, func(i, j int) bool {
		if !bids[i].Amount.Equal(bids[j].Amount) {
			return bids[i].Amount.GreaterThan(bids[j].Amount)
		}
		return bids[i].PlacedAt.Before(bids[j].PlacedAt)
	})
}
