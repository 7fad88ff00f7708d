package ledger

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/lib/pq"
	"github.com/shopspring/decimal"

	"auction-engine/internal/auctionerrors"
	model "auction-engine/internal/models"
)

// PostgresLedger implements BidLedger on Postgres. The per-listing version row
// is locked FOR UPDATE inside the write transaction, so the version comparison
// and the mutation commit atomically.
//
// Expected schema:
//
//	CREATE TABLE bids (
//	    bid_id     TEXT PRIMARY KEY,
//	    listing_id TEXT NOT NULL,
//	    user_id    TEXT NOT NULL,
//	    amount     NUMERIC NOT NULL,
//	    placed_at  TIMESTAMPTZ NOT NULL,
//	    withdrawn  BOOLEAN NOT NULL DEFAULT FALSE
//	);
//	CREATE INDEX bids_listing_idx ON bids (listing_id);
//	CREATE TABLE listing_versions (
//	    listing_id TEXT PRIMARY KEY,
//	    version    BIGINT NOT NULL DEFAULT 0
//	);
type PostgresLedger struct {
	db *sql.DB
}

// NewPostgresLedger connects to Postgres and verifies the connection.
func NewPostgresLedger(dsn string) (*PostgresLedger, error) {
	db, err := sql.Open("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("open postgres ledger: %w", err)
	}
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping postgres ledger: %w", err)
	}
	return &PostgresLedger{db: db}, nil
}

// Close releases the connection pool.
func (l *PostgresLedger) Close() error {
	return l.db.Close()
}

// CurrentHighest returns the highest non-withdrawn bid and the listing version
func (l *PostgresLedger) CurrentHighest(listingID string) (model.Bid, uint64, error) {
	var version uint64
	err := l.db.QueryRow(
		`SELECT version FROM listing_versions WHERE listing_id = $1`, listingID,
	).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		version = 0
	} else if err != nil {
		return model.Bid{}, 0, fmt.Errorf("current highest for listing %s: %w", listingID, err)
	}

	bid, err := scanBid(l.db.QueryRow(`
		SELECT bid_id, listing_id, user_id, amount, placed_at, withdrawn
		FROM bids
		WHERE listing_id = $1 AND NOT withdrawn
		ORDER BY amount DESC, placed_at ASC
		LIMIT 1`, listingID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Bid{}, version, fmt.Errorf("current highest for listing %s: %w", listingID, auctionerrors.ErrNoBids)
	}
	if err != nil {
		return model.Bid{}, 0, fmt.Errorf("current highest for listing %s: %w", listingID, err)
	}
	return bid, version, nil
}

// AppendBid commits a new bid under the optimistic version check
func (l *PostgresLedger) AppendBid(listingID string, expectedVersion uint64, bid model.Bid) error {
	err := l.withVersionCheck(listingID, expectedVersion, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO bids (bid_id, listing_id, user_id, amount, placed_at, withdrawn)
			VALUES ($1, $2, $3, $4, $5, FALSE)`,
			bid.BidID, bid.ListingID, bid.UserID, bid.Amount.String(), bid.PlacedAt,
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("append bid for listing %s: %w", listingID, err)
	}
	return nil
}

// UpdateBid amends an existing bid in place under the optimistic version check
func (l *PostgresLedger) UpdateBid(listingID string, expectedVersion uint64, bid model.Bid) error {
	err := l.withVersionCheck(listingID, expectedVersion, func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			UPDATE bids SET amount = $1, placed_at = $2
			WHERE bid_id = $3 AND listing_id = $4`,
			bid.Amount.String(), bid.PlacedAt, bid.BidID, bid.ListingID,
		)
		if err != nil {
			return err
		}
		return requireRow(res)
	})
	if err != nil {
		return fmt.Errorf("update bid %s: %w", bid.BidID, err)
	}
	return nil
}

// WithdrawBid marks a bid withdrawn under the optimistic version check
func (l *PostgresLedger) WithdrawBid(listingID string, expectedVersion uint64, bidID string) error {
	err := l.withVersionCheck(listingID, expectedVersion, func(tx *sql.Tx) error {
		res, err := tx.Exec(`
			UPDATE bids SET withdrawn = TRUE
			WHERE bid_id = $1 AND listing_id = $2`,
			bidID, listingID,
		)
		if err != nil {
			return err
		}
		return requireRow(res)
	})
	if err != nil {
		return fmt.Errorf("withdraw bid %s: %w", bidID, err)
	}
	return nil
}

// GetBid returns a single bid by ID
func (l *PostgresLedger) GetBid(bidID string) (model.Bid, error) {
	bid, err := scanBid(l.db.QueryRow(`
		SELECT bid_id, listing_id, user_id, amount, placed_at, withdrawn
		FROM bids WHERE bid_id = $1`, bidID))
	if errors.Is(err, sql.ErrNoRows) {
		return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, auctionerrors.ErrBidNotFound)
	}
	if err != nil {
		return model.Bid{}, fmt.Errorf("get bid %s: %w", bidID, err)
	}
	return bid, nil
}

// GetBidsByListing returns all bids for a listing, highest amount first
func (l *PostgresLedger) GetBidsByListing(listingID string) ([]model.Bid, error) {
	rows, err := l.db.Query(`
		SELECT bid_id, listing_id, user_id, amount, placed_at, withdrawn
		FROM bids
		WHERE listing_id = $1
		ORDER BY amount DESC, placed_at ASC`, listingID)
	if err != nil {
		return nil, fmt.Errorf("get bids for listing %s: %w", listingID, err)
	}
	defer rows.Close()

	var bids []model.Bid
	for rows.Next() {
		bid, err := scanBid(rows)
		if err != nil {
			return nil, fmt.Errorf("get bids for listing %s: %w", listingID, err)
		}
		bids = append(bids, bid)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("get bids for listing %s: %w", listingID, err)
	}
	if len(bids) == 0 {
		return nil, fmt.Errorf("get bids for listing %s: %w", listingID, auctionerrors.ErrNoBids)
	}
	return bids, nil
}

// withVersionCheck runs fn inside a transaction holding the listing's version
// row lock, then bumps the version. A version mismatch maps to ErrStaleVersion.
func (l *PostgresLedger) withVersionCheck(listingID string, expectedVersion uint64, fn func(*sql.Tx) error) error {
	tx, err := l.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`
		INSERT INTO listing_versions (listing_id, version) VALUES ($1, 0)
		ON CONFLICT (listing_id) DO NOTHING`, listingID); err != nil {
		return err
	}

	var current uint64
	if err := tx.QueryRow(
		`SELECT version FROM listing_versions WHERE listing_id = $1 FOR UPDATE`, listingID,
	).Scan(&current); err != nil {
		return err
	}
	if current != expectedVersion {
		return auctionerrors.ErrStaleVersion
	}

	if err := fn(tx); err != nil {
		return err
	}

	if _, err := tx.Exec(
		`UPDATE listing_versions SET version = version + 1 WHERE listing_id = $1`, listingID,
	); err != nil {
		return err
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBid(row rowScanner) (model.Bid, error) {
	var bid model.Bid
	var amount string
	if err := row.Scan(&bid.BidID, &bid.ListingID, &bid.UserID, &amount, &bid.PlacedAt, &bid.Withdrawn); err != nil {
		return model.Bid{}, err
	}
	parsed, err := decimal.NewFromString(amount)
	if err != nil {
		return model.Bid{}, fmt.Errorf("parse stored amount %q: %w", amount, err)
	}
	bid.Amount = parsed
	return bid, nil
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return auctionerrors.ErrBidNotFound
	}
	return nil
}
