package main

import (
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"auction-engine/internal/config"
	"auction-engine/internal/engine"
	"auction-engine/internal/ledger"
	"auction-engine/internal/listing"
	"auction-engine/internal/metrics"
	model "auction-engine/internal/models"
	"auction-engine/internal/notify"
	"auction-engine/internal/payment"
	"auction-engine/internal/server"
	"auction-engine/utils"
)

func main() {
	cfg := config.Load()

	bidLedger, cleanup, err := buildLedger(cfg)
	if err != nil {
		utils.Fatal("failed to initialize bid ledger", map[string]any{"backend": cfg.LedgerBackend, "error": err.Error()})
	}
	defer cleanup()

	listings := listing.NewMemoryStore()
	payments := payment.NewMemoryGate()
	seedDemoData(listings, payments)

	admissionEngine := engine.NewAdmissionEngine(payments, listings, bidLedger, buildNotifier(cfg), engine.Options{
		IncrementFraction: cfg.IncrementFraction,
		MaxAppendRetries:  cfg.MaxAppendRetries,
	})

	metrics.StartServer(cfg.MetricsPort)

	router := server.SetupRouter(admissionEngine)

	addr := ":" + cfg.HTTPPort
	fmt.Printf("Starting auction server on %s...\n", addr)
	if err := router.Run(addr); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start server: %v\n", err)
		os.Exit(1)
	}
}

// buildLedger selects the ledger backend from configuration.
func buildLedger(cfg config.Config) (ledger.BidLedger, func(), error) {
	switch cfg.LedgerBackend {
	case "bolt":
		l, err := ledger.NewBoltLedger(cfg.BoltPath)
		if err != nil {
			return nil, nil, err
		}
		return l, func() { l.Close() }, nil
	case "postgres":
		l, err := ledger.NewPostgresLedger(cfg.PostgresDSN)
		if err != nil {
			return nil, nil, err
		}
		return l, func() { l.Close() }, nil
	default:
		return ledger.NewMemoryLedger(), func() {}, nil
	}
}

// buildNotifier selects the notification channel from configuration.
func buildNotifier(cfg config.Config) notify.Notifier {
	if cfg.Notifier == "kafka" {
		return notify.NewKafkaNotifier(cfg.KafkaBrokers, cfg.KafkaBidAcceptedTopic)
	}
	return notify.NewLogNotifier()
}

// seedDemoData adds sample listings and payment records for local runs
func seedDemoData(listings *listing.MemoryStore, payments *payment.MemoryGate) {
	sample := []model.Listing{
		{ListingID: "listing1", Title: "title1", Description: "description1", BasePrice: decimal.NewFromInt(100), Active: true, EndTime: time.Now().Add(48 * time.Hour)},
		{ListingID: "listing2", Title: "title2", Description: "description2", BasePrice: decimal.NewFromInt(200), Active: true, EndTime: time.Now().Add(72 * time.Hour)},
		{ListingID: "listing3", Title: "title3", Description: "description3", BasePrice: decimal.NewFromInt(150), Active: false, EndTime: time.Now().Add(24 * time.Hour)},
	}
	for _, l := range sample {
		listings.AddListing(l)
	}

	payments.RecordPayment("user1", "listing1")
	payments.RecordPayment("user2", "listing1")
	payments.RecordPayment("user1", "listing2")
}
