package notify

import (
	"github.com/shopspring/decimal"

	"auction-engine/utils"
)

// Notifier informs a bidder that their bid was accepted. Best effort: the
// engine invokes it after the commit and a failure never reverses the bid.
type Notifier interface {
	NotifyBidAccepted(userID, listingID string, amount decimal.Decimal) error
}

// LogNotifier records accepted-bid notifications in the application log. It
// stands in for a real delivery channel in local and test setups.
type LogNotifier struct{}

// NewLogNotifier creates a new log-backed notifier instance
func NewLogNotifier() *LogNotifier {
	return &LogNotifier{}
}

// NotifyBidAccepted logs the acceptance; it never fails
func (n *LogNotifier) NotifyBidAccepted(userID, listingID string, amount decimal.Decimal) error {
	utils.Info("bid accepted notification", map[string]any{
		"user_id":    userID,
		"listing_id": listingID,
		"amount":     amount.String(),
	})
	return nil
}
