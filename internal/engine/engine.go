package engine

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"auction-engine/internal/auctionerrors"
	"auction-engine/internal/ledger"
	"auction-engine/internal/listing"
	"auction-engine/internal/metrics"
	model "auction-engine/internal/models"
	"auction-engine/internal/notify"
	"auction-engine/internal/payment"
	"auction-engine/utils"
)

// Options tunes the admission policy. Both bidding paths (manual and
// auto-raise) share the single increment fraction.
type Options struct {
	// IncrementFraction f: a new bid must reach at least highest*(1+f).
	IncrementFraction decimal.Decimal
	// MaxAppendRetries bounds silent re-validation after a stale append
	// before the caller sees a conflict.
	MaxAppendRetries int
}

// AdmissionEngine decides, for each incoming bid, whether it is admissible
// against current auction state and commits the decision through the ledger's
// versioned append protocol.
type AdmissionEngine struct {
	payments payment.Gate
	listings listing.SnapshotReader
	ledger   ledger.BidLedger
	notifier notify.Notifier
	opts     Options
}

// NewAdmissionEngine creates a new AdmissionEngine instance
func NewAdmissionEngine(payments payment.Gate, listings listing.SnapshotReader, bidLedger ledger.BidLedger, notifier notify.Notifier, opts Options) *AdmissionEngine {
	if opts.MaxAppendRetries < 0 {
		opts.MaxAppendRetries = 0
	}
	return &AdmissionEngine{
		payments: payments,
		listings: listings,
		ledger:   bidLedger,
		notifier: notifier,
		opts:     opts,
	}
}

// PlaceBid validates and commits a manual bid for a user on a listing.
//
// Validation short-circuits on the first failure: input validity, payment
// eligibility, listing openness, base-price floor, minimum increment against
// the current highest, then the conditional append. A stale append re-reads
// the new highest and re-validates the same amount before retrying.
func (e *AdmissionEngine) PlaceBid(userID, listingID string, amount decimal.Decimal) (model.Bid, error) {
	if userID == "" || listingID == "" {
		return model.Bid{}, fmt.Errorf("engine: %w - missing userID or listingID", auctionerrors.ErrInvalidBid)
	}
	if !amount.IsPositive() {
		return model.Bid{}, fmt.Errorf("engine: %w - non-positive bid amount", auctionerrors.ErrInvalidBid)
	}

	snapshot, err := e.admissionGate(userID, listingID)
	if err != nil {
		return model.Bid{}, err
	}

	if amount.LessThanOrEqual(snapshot.BasePrice) {
		metrics.BidsRejected.WithLabelValues("below_base_price").Inc()
		return model.Bid{}, fmt.Errorf("engine: place bid for listing %s: %w",
			listingID, &auctionerrors.BelowBasePriceError{BasePrice: snapshot.BasePrice})
	}

	bid, err := e.commit("place", listingID, func(highest model.Bid, hasHighest bool) (decimal.Decimal, error) {
		if hasHighest {
			required := e.requiredMinimum(highest.Amount)
			if amount.LessThan(required) {
				return decimal.Decimal{}, fmt.Errorf("engine: place bid for listing %s: %w",
					listingID, &auctionerrors.BelowMinimumIncrementError{RequiredMinimum: required})
			}
		}
		return amount, nil
	}, func(amount decimal.Decimal) model.Bid {
		return model.Bid{
			BidID:     utils.GenerateID(),
			ListingID: listingID,
			UserID:    userID,
			Amount:    amount,
			PlacedAt:  time.Now().UTC(),
		}
	})
	if err != nil {
		return model.Bid{}, err
	}

	e.notifyAccepted(bid)
	return bid, nil
}

// AutoRaise places a proxy bid computed as highest*(1+f) using the same
// increment policy as manual admission. It requires an existing highest bid;
// with nothing to raise against it rejects with ErrNoActiveBid. The amount is
// recomputed from the fresh highest on every retry.
func (e *AdmissionEngine) AutoRaise(userID, listingID string) (model.Bid, error) {
	if userID == "" || listingID == "" {
		return model.Bid{}, fmt.Errorf("engine: %w - missing userID or listingID", auctionerrors.ErrInvalidBid)
	}

	if _, err := e.admissionGate(userID, listingID); err != nil {
		return model.Bid{}, err
	}

	bid, err := e.commit("auto_raise", listingID, func(highest model.Bid, hasHighest bool) (decimal.Decimal, error) {
		if !hasHighest {
			metrics.BidsRejected.WithLabelValues("no_active_bid").Inc()
			return decimal.Decimal{}, fmt.Errorf("engine: auto raise for listing %s: %w", listingID, auctionerrors.ErrNoActiveBid)
		}
		return e.requiredMinimum(highest.Amount), nil
	}, func(amount decimal.Decimal) model.Bid {
		return model.Bid{
			BidID:     utils.GenerateID(),
			ListingID: listingID,
			UserID:    userID,
			Amount:    amount,
			PlacedAt:  time.Now().UTC(),
		}
	})
	if err != nil {
		return model.Bid{}, err
	}

	e.notifyAccepted(bid)
	return bid, nil
}

// AmendBid raises the amount of an existing bid in place. Only the original
// bidder may amend, only strictly upward, and payment eligibility is
// re-checked exactly as for a new bid. The update runs through the same
// versioned protocol as placement.
func (e *AdmissionEngine) AmendBid(bidID, userID string, newAmount decimal.Decimal) (model.Bid, error) {
	if bidID == "" || userID == "" {
		return model.Bid{}, fmt.Errorf("engine: %w - missing bidID or userID", auctionerrors.ErrInvalidBid)
	}
	if !newAmount.IsPositive() {
		return model.Bid{}, fmt.Errorf("engine: %w - non-positive bid amount", auctionerrors.ErrInvalidBid)
	}

	for attempt := 0; ; attempt++ {
		existing, err := e.ledger.GetBid(bidID)
		if err != nil {
			return model.Bid{}, fmt.Errorf("engine: amend bid %s: %w", bidID, err)
		}

		if existing.UserID != userID {
			metrics.BidsRejected.WithLabelValues("not_bid_owner").Inc()
			return model.Bid{}, fmt.Errorf("engine: amend bid %s: %w", bidID, auctionerrors.ErrNotBidOwner)
		}

		eligible, err := e.payments.HasActivePayment(userID, existing.ListingID)
		if err != nil {
			return model.Bid{}, fmt.Errorf("engine: failed eligibility check for user %s: %w", userID, err)
		}
		if !eligible {
			metrics.BidsRejected.WithLabelValues("payment_required").Inc()
			return model.Bid{}, fmt.Errorf("engine: amend bid %s: %w", bidID, auctionerrors.ErrPaymentRequired)
		}

		if newAmount.LessThanOrEqual(existing.Amount) {
			metrics.BidsRejected.WithLabelValues("must_increase_amount").Inc()
			return model.Bid{}, fmt.Errorf("engine: amend bid %s: %w",
				bidID, &auctionerrors.MustIncreaseAmountError{CurrentAmount: existing.Amount})
		}

		_, version, err := e.ledger.CurrentHighest(existing.ListingID)
		if err != nil && !errors.Is(err, auctionerrors.ErrNoBids) {
			return model.Bid{}, fmt.Errorf("engine: amend bid %s: %w", bidID, err)
		}

		amended := existing
		amended.Amount = newAmount
		amended.PlacedAt = time.Now().UTC()

		err = e.ledger.UpdateBid(existing.ListingID, version, amended)
		if errors.Is(err, auctionerrors.ErrStaleVersion) {
			metrics.AppendConflicts.Inc()
			if attempt >= e.opts.MaxAppendRetries {
				return model.Bid{}, fmt.Errorf("engine: amend bid %s: %w", bidID, auctionerrors.ErrConflict)
			}
			continue
		}
		if err != nil {
			return model.Bid{}, fmt.Errorf("engine: failed to amend bid %s: %w", bidID, err)
		}

		metrics.BidsAdmitted.WithLabelValues("amend").Inc()
		e.notifyAccepted(amended)
		return amended, nil
	}
}

// WithdrawBid marks a bid logically withdrawn. Only the original bidder may
// withdraw. History is never deleted; the current-highest computation simply
// stops seeing the bid.
func (e *AdmissionEngine) WithdrawBid(bidID, userID string) (model.Bid, error) {
	if bidID == "" || userID == "" {
		return model.Bid{}, fmt.Errorf("engine: %w - missing bidID or userID", auctionerrors.ErrInvalidBid)
	}

	for attempt := 0; ; attempt++ {
		existing, err := e.ledger.GetBid(bidID)
		if err != nil {
			return model.Bid{}, fmt.Errorf("engine: withdraw bid %s: %w", bidID, err)
		}
		if existing.UserID != userID {
			metrics.BidsRejected.WithLabelValues("not_bid_owner").Inc()
			return model.Bid{}, fmt.Errorf("engine: withdraw bid %s: %w", bidID, auctionerrors.ErrNotBidOwner)
		}

		_, version, err := e.ledger.CurrentHighest(existing.ListingID)
		if err != nil && !errors.Is(err, auctionerrors.ErrNoBids) {
			return model.Bid{}, fmt.Errorf("engine: withdraw bid %s: %w", bidID, err)
		}

		err = e.ledger.WithdrawBid(existing.ListingID, version, bidID)
		if errors.Is(err, auctionerrors.ErrStaleVersion) {
			metrics.AppendConflicts.Inc()
			if attempt >= e.opts.MaxAppendRetries {
				return model.Bid{}, fmt.Errorf("engine: withdraw bid %s: %w", bidID, auctionerrors.ErrConflict)
			}
			continue
		}
		if err != nil {
			return model.Bid{}, fmt.Errorf("engine: failed to withdraw bid %s: %w", bidID, err)
		}

		existing.Withdrawn = true
		return existing, nil
	}
}

// GetBid returns a single bid by ID
func (e *AdmissionEngine) GetBid(bidID string) (model.Bid, error) {
	if bidID == "" {
		return model.Bid{}, fmt.Errorf("engine: %w - empty bid ID", auctionerrors.ErrInvalidBid)
	}
	bid, err := e.ledger.GetBid(bidID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("engine: failed to get bid %s: %w", bidID, err)
	}
	return bid, nil
}

// GetBidsForListing returns all bids for a listing ordered by amount
// descending, ties by placed-at ascending
func (e *AdmissionEngine) GetBidsForListing(listingID string) ([]model.Bid, error) {
	if listingID == "" {
		return nil, fmt.Errorf("engine: %w - empty listing ID", auctionerrors.ErrInvalidBid)
	}
	bids, err := e.ledger.GetBidsByListing(listingID)
	if err != nil {
		return nil, fmt.Errorf("engine: failed to get bids for listing %s: %w", listingID, err)
	}
	return bids, nil
}

// GetHighestBid returns the current highest non-withdrawn bid for a listing
func (e *AdmissionEngine) GetHighestBid(listingID string) (model.Bid, error) {
	if listingID == "" {
		return model.Bid{}, fmt.Errorf("engine: %w - empty listing ID", auctionerrors.ErrInvalidBid)
	}
	bid, _, err := e.ledger.CurrentHighest(listingID)
	if err != nil {
		return model.Bid{}, fmt.Errorf("engine: failed to get highest bid for listing %s: %w", listingID, err)
	}
	return bid, nil
}

// admissionGate runs the checks shared by both bidding paths: payment
// eligibility first, then listing openness. Eligibility is never cached
// across attempts.
func (e *AdmissionEngine) admissionGate(userID, listingID string) (model.Listing, error) {
	eligible, err := e.payments.HasActivePayment(userID, listingID)
	if err != nil {
		return model.Listing{}, fmt.Errorf("engine: failed eligibility check for user %s: %w", userID, err)
	}
	if !eligible {
		metrics.BidsRejected.WithLabelValues("payment_required").Inc()
		return model.Listing{}, fmt.Errorf("engine: user %s on listing %s: %w", userID, listingID, auctionerrors.ErrPaymentRequired)
	}

	snapshot, err := e.listings.GetListing(listingID)
	if err != nil {
		return model.Listing{}, fmt.Errorf("engine: %w", err)
	}
	if !snapshot.OpenForBidding(time.Now().UTC()) {
		metrics.BidsRejected.WithLabelValues("listing_closed").Inc()
		return model.Listing{}, fmt.Errorf("engine: listing %s: %w", listingID, auctionerrors.ErrListingClosed)
	}
	return snapshot, nil
}

// commit runs the conditional-append loop. computeAmount sees the fresh
// highest (and whether one exists) on every attempt and either returns the
// amount to commit or a rejection; build constructs the bid to append.
func (e *AdmissionEngine) commit(path, listingID string, computeAmount func(model.Bid, bool) (decimal.Decimal, error), build func(decimal.Decimal) model.Bid) (model.Bid, error) {
	for attempt := 0; ; attempt++ {
		highest, version, err := e.ledger.CurrentHighest(listingID)
		hasHighest := true
		if errors.Is(err, auctionerrors.ErrNoBids) {
			hasHighest = false
		} else if err != nil {
			return model.Bid{}, fmt.Errorf("engine: failed to read current highest for listing %s: %w", listingID, err)
		}

		amount, err := computeAmount(highest, hasHighest)
		if err != nil {
			if errors.Is(err, auctionerrors.ErrBelowMinimumIncrement) {
				metrics.BidsRejected.WithLabelValues("below_minimum_increment").Inc()
			}
			return model.Bid{}, err
		}

		bid := build(amount)
		err = e.ledger.AppendBid(listingID, version, bid)
		if errors.Is(err, auctionerrors.ErrStaleVersion) {
			metrics.AppendConflicts.Inc()
			if attempt >= e.opts.MaxAppendRetries {
				return model.Bid{}, fmt.Errorf("engine: bid for listing %s: %w", listingID, auctionerrors.ErrConflict)
			}
			continue
		}
		if err != nil {
			return model.Bid{}, fmt.Errorf("engine: failed to record bid for listing %s: %w", listingID, err)
		}

		metrics.BidsAdmitted.WithLabelValues(path).Inc()
		return bid, nil
	}
}

// requiredMinimum is the admission threshold against a given highest amount.
func (e *AdmissionEngine) requiredMinimum(highest decimal.Decimal) decimal.Decimal {
	return highest.Add(highest.Mul(e.opts.IncrementFraction))
}

// notifyAccepted dispatches the best-effort acceptance notification without
// blocking the caller. A delivery failure is logged and counted, never rolled
// back into the committed bid.
func (e *AdmissionEngine) notifyAccepted(bid model.Bid) {
	if e.notifier == nil {
		return
	}
	go func() {
		if err := e.notifier.NotifyBidAccepted(bid.UserID, bid.ListingID, bid.Amount); err != nil {
			metrics.NotifyFailures.Inc()
			utils.Warn("bid accepted notification failed", map[string]any{
				"bid_id":     bid.BidID,
				"listing_id": bid.ListingID,
				"user_id":    bid.UserID,
				"error":      err.Error(),
			})
		}
	}()
}
