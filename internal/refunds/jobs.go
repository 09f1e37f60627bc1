package refunds

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"yatra/internal/ledger"
	"yatra/internal/notifications"
)

// JobProcessor handles background jobs for refund operations
type JobProcessor struct {
	repo     Repository
	producer notifications.Producer
	config   *JobConfig
	done     chan struct{}
}

// JobConfig contains configuration for background jobs
type JobConfig struct {
	OverdueCheckInterval time.Duration
}

// DefaultJobConfig returns default job configuration
func DefaultJobConfig() *JobConfig {
	return &JobConfig{
		OverdueCheckInterval: 1 * time.Hour,
	}
}

// NewJobProcessor creates a new job processor
func NewJobProcessor(repo Repository, producer notifications.Producer, config *JobConfig) *JobProcessor {
	if config == nil {
		config = DefaultJobConfig()
	}

	return &JobProcessor{
		repo:     repo,
		producer: producer,
		config:   config,
		done:     make(chan struct{}),
	}
}

// Start starts all background jobs
func (jp *JobProcessor) Start(ctx context.Context) {
	log.Println("Starting refund background jobs...")

	go jp.startOverdueScanner(ctx)

	log.Println("Refund background jobs started")
}

// Stop stops all background jobs
func (jp *JobProcessor) Stop() {
	log.Println("Stopping refund background jobs...")
	close(jp.done)
	log.Println("Refund background jobs stopped")
}

// startOverdueScanner periodically flags processing refunds that have blown
// past their estimated completion window. Flagging is notification-only: the
// refund stays in processing until an agent completes or fails it.
func (jp *JobProcessor) startOverdueScanner(ctx context.Context) {
	ticker := time.NewTicker(jp.config.OverdueCheckInterval)
	defer ticker.Stop()

	log.Printf("Started overdue refund scanner with %v interval", jp.config.OverdueCheckInterval)

	for {
		select {
		case <-ticker.C:
			jp.scanOverdueRefunds(ctx)
		case <-jp.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

// scanOverdueRefunds publishes an overdue event for every processing refund
// older than its estimated-days window.
func (jp *JobProcessor) scanOverdueRefunds(ctx context.Context) {
	refunds, err := jp.repo.GetProcessing(ctx)
	if err != nil {
		log.Printf("Error scanning for overdue refunds: %v", err)
		return
	}

	now := time.Now()
	flagged := 0
	for i := range refunds {
		refund := &refunds[i]
		if !isOverdue(refund, now) {
			continue
		}
		flagged++
		jp.publishOverdue(ctx, refund)
	}

	if flagged > 0 {
		log.Printf("Flagged %d overdue refunds", flagged)
	}
}

func isOverdue(refund *ledger.RefundTransaction, now time.Time) bool {
	deadline := refund.UpdatedAt.Add(time.Duration(refund.EstimatedDays) * 24 * time.Hour)
	return now.After(deadline)
}

func (jp *JobProcessor) publishOverdue(ctx context.Context, refund *ledger.RefundTransaction) {
	if jp.producer == nil {
		return
	}
	event := notifications.NewEvent(notifications.EventTypeRefundOverdue, refund.BookingID, uuid.Nil).
		WithRefund(refund.ID, refund.Amount).
		WithData(map[string]interface{}{
			"method":           string(refund.RefundMethod),
			"estimated_days":   refund.EstimatedDays,
			"processing_since": refund.UpdatedAt,
		})
	if err := jp.producer.Publish(ctx, event); err != nil {
		log.Printf("Error publishing overdue event for refund %s: %v", refund.ID, err)
	}
}

// GetJobStatus returns the status of background jobs
func (jp *JobProcessor) GetJobStatus() map[string]interface{} {
	return map[string]interface{}{
		"overdue_check_interval": jp.config.OverdueCheckInterval.String(),
		"status":                 "running",
	}
}
