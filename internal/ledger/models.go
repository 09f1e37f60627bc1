package ledger

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// PaymentTransaction is one entry in a booking's append-only payment ledger.
// A completed transaction is immutable.
type PaymentTransaction struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID   uuid.UUID     `gorm:"type:uuid;index;not null" json:"booking_id"`
	Amount      float64       `gorm:"not null" json:"amount"`
	Date        time.Time     `gorm:"not null" json:"date"`
	Method      PaymentMethod `gorm:"type:varchar(20);not null" json:"method"`
	Status      PaymentStatus `gorm:"type:varchar(20);not null;default:'pending'" json:"status"`
	Reference   string        `gorm:"type:varchar(100)" json:"reference"`
	Description string        `json:"description"`
	CreatedAt   time.Time     `json:"created_at"`
}

func (PaymentTransaction) TableName() string {
	return "payment_transactions"
}

// NewCompletedPayment builds a completed ledger entry for a successful payment.
func NewCompletedPayment(bookingID uuid.UUID, amount float64, method PaymentMethod, reference, description string, now time.Time) *PaymentTransaction {
	return &PaymentTransaction{
		ID:          uuid.New(),
		BookingID:   bookingID,
		Amount:      amount,
		Date:        now,
		Method:      method,
		Status:      PaymentStatusCompleted,
		Reference:   reference,
		Description: description,
	}
}

// BankDetails holds the payout destination for bank-account refunds. All four
// fields are required when the refund method is bank_account.
type BankDetails struct {
	AccountHolder string `gorm:"type:varchar(100)" json:"account_holder" validate:"required"`
	AccountNumber string `gorm:"type:varchar(30)" json:"account_number" validate:"required"`
	IFSCCode      string `gorm:"type:varchar(20)" json:"ifsc_code" validate:"required"`
	BankName      string `gorm:"type:varchar(100)" json:"bank_name" validate:"required"`
}

// RefundTransaction tracks a monetary return triggered by a cancellation. It
// advances through its own small state machine, independent of the booking.
type RefundTransaction struct {
	ID                   uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID            uuid.UUID    `gorm:"type:uuid;index;not null" json:"booking_id"`
	Amount               float64      `gorm:"not null" json:"amount"`
	Date                 time.Time    `gorm:"not null" json:"date"`
	Status               RefundStatus `gorm:"type:varchar(20);not null;default:'initiated'" json:"status"`
	Reason               string       `json:"reason"`
	EstimatedDays        int          `json:"estimated_days"`
	PilgrimIDs           []uuid.UUID  `gorm:"serializer:json" json:"pilgrim_ids,omitempty"`
	RefundMethod         RefundMethod `gorm:"type:varchar(20)" json:"refund_method,omitempty"`
	BankDetails          *BankDetails `gorm:"embedded;embeddedPrefix:bank_" json:"bank_details,omitempty"`
	FailureReason        string       `json:"failure_reason,omitempty"`
	ActualCompletionDate *time.Time   `json:"actual_completion_date,omitempty"`
	CreatedAt            time.Time    `json:"created_at"`
	UpdatedAt            time.Time    `json:"updated_at"`
}

func (RefundTransaction) TableName() string {
	return "refund_transactions"
}

// NewInitiatedRefund builds a refund in its initial state. pilgrimIDs is set
// only for partial cancellations.
func NewInitiatedRefund(bookingID uuid.UUID, amount float64, reason string, pilgrimIDs []uuid.UUID, now time.Time) *RefundTransaction {
	return &RefundTransaction{
		ID:         uuid.New(),
		BookingID:  bookingID,
		Amount:     amount,
		Date:       now,
		Status:     RefundStatusInitiated,
		Reason:     reason,
		PilgrimIDs: pilgrimIDs,
	}
}

func (r *RefundTransaction) IsOpen() bool {
	return r.Status.IsOpen()
}

// MarkProcessing records the chosen payout method and advances the refund to
// processing. The estimated completion window is advisory only.
func (r *RefundTransaction) MarkProcessing(method RefundMethod, details *BankDetails, now time.Time) {
	r.Status = RefundStatusProcessing
	r.RefundMethod = method
	r.BankDetails = details
	_, r.EstimatedDays = method.EstimatedDays()
	r.UpdatedAt = now
}

// MarkCompleted finishes the refund and stamps the completion date.
func (r *RefundTransaction) MarkCompleted(now time.Time) {
	r.Status = RefundStatusCompleted
	r.ActualCompletionDate = &now
	r.UpdatedAt = now
}

// MarkFailed terminates the refund. Failed refunds are not retried; a new
// refund cycle has to be raised manually.
func (r *RefundTransaction) MarkFailed(reason string, now time.Time) {
	r.Status = RefundStatusFailed
	r.FailureReason = reason
	r.UpdatedAt = now
}

// RoundMoney rounds to the smallest currency unit, half-up.
func RoundMoney(v float64) float64 {
	return math.Floor(v + 0.5)
}
