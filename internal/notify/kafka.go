package notify

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
)

// BidAcceptedEvent is the JSON payload published for downstream delivery
// (mail, push, etc.). At-least-once: consumers must tolerate duplicates.
type BidAcceptedEvent struct {
	UserID    string `json:"user_id"`
	ListingID string `json:"listing_id"`
	Amount    string `json:"amount"`
	TsUnixMs  int64  `json:"ts_unix_ms"`
}

// KafkaNotifier publishes accepted-bid events to a Kafka topic.
type KafkaNotifier struct {
	writer *kafka.Writer
}

// NewKafkaNotifier creates a notifier writing to the given brokers and topic.
func NewKafkaNotifier(brokers, topic string) *KafkaNotifier {
	return &KafkaNotifier{
		writer: &kafka.Writer{
			Addr:         kafka.TCP(strings.Split(brokers, ",")...),
			Topic:        topic,
			Balancer:     &kafka.LeastBytes{},
			RequiredAcks: kafka.RequireOne,
		},
	}
}

// NotifyBidAccepted publishes a BidAcceptedEvent keyed by listing.
func (n *KafkaNotifier) NotifyBidAccepted(userID, listingID string, amount decimal.Decimal) error {
	event := BidAcceptedEvent{
		UserID:    userID,
		ListingID: listingID,
		Amount:    amount.String(),
		TsUnixMs:  time.Now().UnixMilli(),
	}
	payload, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return n.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(listingID),
		Value: payload,
	})
}

// Close flushes and closes the underlying writer.
func (n *KafkaNotifier) Close() error {
	return n.writer.Close()
}
