package ledger

import (
	"encoding/binary"
	"encoding/json"
	"fmt"
	"time"

	bolt "github.com/boltdb/bolt"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"
)

const (
	bidsBucket     = "bids"     // bidID -> bid JSON
	listingsBucket = "listings" // listingID -> JSON list of bidIDs in admission order
	versionsBucket = "versions" // listingID -> uint64 big-endian
)

// BoltLedger is a durable single-file implementation of BidLedger. The
// conditional-write check runs inside a bolt write transaction, so the
// version comparison and the mutation are atomic.
type BoltLedger struct {
	db *bolt.DB
}

// NewBoltLedger opens (or creates) the database file and ensures buckets exist.
func NewBoltLedger(path string) (*BoltLedger, error) {
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: 1 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("open bolt ledger: %w", err)
	}

	err = db.Update(func(tx *bolt.Tx) error {
		for _, name := range []string{bidsBucket, listingsBucket, versionsBucket} {
			if _, err := tx.CreateBucketIfNotExists([]byte(name)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("init bolt ledger buckets: %w", err)
	}

	return &BoltLedger{db: db}, nil
}

// Close releases the database file lock.
func (l *BoltLedger) Close() error {
	return l.db.Close()
}

// CurrentHighest returns the highest non-withdrawn bid and the listing version
func (l *BoltLedger) CurrentHighest(listingID string) (model.Bid, uint64, error) {
	var highest model.Bid
	var version uint64
	found := false

	err := l.db.View(func(tx *bolt.Tx) error {
		version = readVersion(tx, listingID)
		bids, err := listingBids(tx, listingID)
		if err != nil {
			return err
		}
		highest, found = highestOf(bids)
		return nil
	})
	if err != nil {
		return model.Bid{}, 0, fmt.Errorf("current highest for listing %s: %w", listingID, err)
	}
	if !found {
		return model.Bid{}, version, fmt.Errorf("current highest for listing %s: %w", listingID, auctionerrors.ErrNoBids)
	}
	return highest, version, nil
}

// AppendBid commits a new bid under the optimistic version check
func (l *BoltLedger) AppendBid(listingID string, expectedVersion uint64, bid model.Bid) error {
	err := l.db.Update(func(tx *bolt.Tx) error {
		if readVersion(tx, listingID) != expectedVersion {
			return auctionerrors.ErrStaleVersion
		}

		data, err := json.Marshal(bid)
		if err != nil {
			return err
		}
		if err := tx.Bucket([]byte(bidsBucket)).Put([]byte(bid.BidID), data); err != nil {
			return err
		}

		ids, err := listingBidIDs(tx, listingID)
		if err != nil {
			return err
		}
		ids = append(ids, bid.BidID)
		if err := putListingBidIDs(tx, listingID, ids); err != nil {
			return err
		}
		return bumpVersion(tx, listingID, expectedVersion)
	})
	if err != nil {
		return fmt.Errorf("append bid for listing %s: %w", listingID, err)
	}
	return nil
}

// UpdateBid amends an existing bid in place under the optimistic version check
func (l *BoltLedger) UpdateBid(listingID string, expectedVersion uint64, bid model.Bid) error {
	err := l.mutateBid(listingID, expectedVersion, bid.BidID, func(stored *model.Bid) {
		stored.Amount = bid.Amount
		stored.PlacedAt = bid.PlacedAt
	})
	if err != nil {
		return fmt.Errorf("update bid %s: %w", bid.BidID, err)
	}
	return nil
}

// WithdrawBid marks a bid withdrawn under the optimistic version check
func (l *BoltLedger) WithdrawBid(listingID string, expectedVersion uint64, bidID string) error {
	err := l.mutateBid(listingID, expectedVersion, bidID, func(stored *model.Bid) {
		stored.Withdrawn = true
	})
	if err != nil {
		return fmt.Errorf("withdraw bid %s: %w", bidID, err)
	}
	return nil
}

// GetBid returns a single bid by ID
func (l *BoltLedger) GetBid(bidID string) (model.Bid, error) {
	var bid model.Bid
	err := l.db.View(func(tx *bolt.Tx) error {
		v := tx.Bucket([]byte(bidsBucket)).Get([]byte(bidID))
		if v == nil {
			return auctionerrors.ErrBidNotFound
		}
		return json.Unmarshal(v, &bid)
	})
	if err != nil {
		return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, err)
	}
	return bid, nil
}

// GetBidsByListing returns all bids for a listing, highest amount first
func (l *BoltLedger) GetBidsByListing(listingID string) ([]model.Bid, error) {
	var bids []model.Bid
	err := l.db.View(func(tx *bolt.Tx) error {
		var err error
		bids, err = listingBids(tx, listingID)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("get bids for listing %s: %w", listingID, err)
	}
	if len(bids) == 0 {
		return nil, fmt.Errorf("get bids for listing %s: %w", listingID, auctionerrors.ErrNoBids)
	}
	sortBids(bids)
	return bids, nil
}

func (l *BoltLedger) mutateBid(listingID string, expectedVersion uint64, bidID string, mutate func(*model.Bid)) error {
	return l.db.Update(func(tx *bolt.Tx) error {
		if readVersion(tx, listingID) != expectedVersion {
			return auctionerrors.ErrStaleVersion
		}

		bucket := tx.Bucket([]byte(bidsBucket))
		v := bucket.Get([]byte(bidID))
		if v == nil {
			return auctionerrors.ErrBidNotFound
		}
		var stored model.Bid
		if err := json.Unmarshal(v, &stored); err != nil {
			return err
		}
		if stored.ListingID != listingID {
			return auctionerrors.ErrBidNotFound
		}

		mutate(&stored)

		data, err := json.Marshal(stored)
		if err != nil {
			return err
		}
		if err := bucket.Put([]byte(bidID), data); err != nil {
			return err
		}
		return bumpVersion(tx, listingID, expectedVersion)
	})
}

func readVersion(tx *bolt.Tx, listingID string) uint64 {
	v := tx.Bucket([]byte(versionsBucket)).Get([]byte(listingID))
	if v == nil {
		return 0
	}
	return binary.BigEndian.Uint64(v)
}

func bumpVersion(tx *bolt.Tx, listingID string, current uint64) error {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, current+1)
	return tx.Bucket([]byte(versionsBucket)).Put([]byte(listingID), buf)
}

func listingBidIDs(tx *bolt.Tx, listingID string) ([]string, error) {
	v := tx.Bucket([]byte(listingsBucket)).Get([]byte(listingID))
	if v == nil {
		return nil, nil
	}
	var ids []string
	if err := json.Unmarshal(v, &ids); err != nil {
		return nil, err
	}
	return ids, nil
}

func putListingBidIDs(tx *bolt.Tx, listingID string, ids []string) error {
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return tx.Bucket([]byte(listingsBucket)).Put([]byte(listingID), data)
}

func listingBids(tx *bolt.Tx, listingID string) ([]model.Bid, error) {
	ids, err := listingBidIDs(tx, listingID)
	if err != nil {
		return nil, err
	}
	bucket := tx.Bucket([]byte(bidsBucket))
	bids := make([]model.Bid, 0, len(ids))
	for _, id := range ids {
		v := bucket.Get([]byte(id))
		if v == nil {
			continue
		}
		var b model.Bid
		if err := json.Unmarshal(v, &b); err != nil {
			return nil, err
		}
		bids = append(bids, b)
	}
	return bids, nil
}
