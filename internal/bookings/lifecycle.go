package bookings

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"yatra/internal/ledger"
	"yatra/internal/policy"
	"yatra/internal/shared/errs"
)

// NewBooking builds a pending booking with zero payments. The total amount is
// fixed at creation: price per person times traveler count.
func NewBooking(userID, packageID uuid.UUID, pricePerPerson float64, departureDate time.Time, pilgrims []Pilgrim, now time.Time) (*Booking, error) {
	if len(pilgrims) == 0 {
		return nil, errs.Validation(errs.CodeNoTravelers, "booking requires at least one traveler")
	}
	if pricePerPerson <= 0 {
		return nil, errs.Validation(errs.CodeValidation, "package price must be positive")
	}

	booking := &Booking{
		ID:            uuid.New(),
		UserID:        userID,
		PackageID:     packageID,
		TravelerCount: len(pilgrims),
		TotalAmt:      pricePerPerson * float64(len(pilgrims)),
		BookingStatus: StatusPending,
		PaymentStatus: PaymentStatePending,
		BookingDate:   now,
		DepartureDate: departureDate,
	}
	for i := range pilgrims {
		pilgrims[i].ID = uuid.New()
		pilgrims[i].BookingID = booking.ID
		pilgrims[i].Status = PilgrimStatusActive
	}
	booking.Pilgrims = pilgrims
	return booking, nil
}

// TotalPaid sums the completed entries of the payment ledger.
func (b *Booking) TotalPaid() float64 {
	var paid float64
	for _, p := range b.Payments {
		if p.Status == ledger.PaymentStatusCompleted {
			paid += p.Amount
		}
	}
	return paid
}

// Remaining is the unpaid balance.
func (b *Booking) Remaining() float64 {
	return b.TotalAmt - b.TotalPaid()
}

// ActiveCount returns the number of not-yet-cancelled pilgrims.
func (b *Booking) ActiveCount() int {
	count := 0
	for i := range b.Pilgrims {
		if b.Pilgrims[i].IsActive() {
			count++
		}
	}
	return count
}

// OpenRefund returns the refund currently in initiated or processing state,
// if any. At most one can exist per booking.
func (b *Booking) OpenRefund() *ledger.RefundTransaction {
	for i := range b.Refunds {
		if b.Refunds[i].IsOpen() {
			return &b.Refunds[i]
		}
	}
	return nil
}

// DerivePaymentState recomputes the booking-level payment status from the
// ledger and the cancellation state alone. No hidden state: calling this at
// any point yields the value PaymentStatus must hold.
func (b *Booking) DerivePaymentState() PaymentState {
	paid := b.TotalPaid()

	cancelled := 0
	for i := range b.Pilgrims {
		if !b.Pilgrims[i].IsActive() {
			cancelled++
		}
	}
	if cancelled > 0 && paid > 0 {
		if cancelled == len(b.Pilgrims) {
			return PaymentStateRefunded
		}
		return PaymentStatePartiallyRefunded
	}

	switch {
	case paid == 0:
		return PaymentStatePending
	case paid < b.TotalAmt:
		return PaymentStatePartial
	default:
		return PaymentStateCompleted
	}
}

// RecordPayment appends a completed transaction to the ledger and recomputes
// the payment status. A pending booking is promoted to confirmed once fully
// paid. Either the whole effect applies or none of it does.
func (b *Booking) RecordPayment(amount float64, method ledger.PaymentMethod, reference, description string, now time.Time) (*ledger.PaymentTransaction, error) {
	if b.BookingStatus.IsTerminal() {
		return nil, errs.StateConflict(errs.CodeBookingClosed,
			fmt.Sprintf("cannot record a payment on a %s booking", b.BookingStatus))
	}
	if !method.IsValid() {
		return nil, errs.Validation(errs.CodeValidation, fmt.Sprintf("unknown payment method: %s", method))
	}
	if amount <= 0 {
		return nil, errs.Validation(errs.CodeInvalidAmount, "payment amount must be positive")
	}
	if remaining := b.Remaining(); amount > remaining {
		return nil, errs.Validation(errs.CodeInvalidAmount,
			fmt.Sprintf("payment of %.2f exceeds remaining balance of %.2f", amount, remaining))
	}

	txn := ledger.NewCompletedPayment(b.ID, amount, method, reference, description, now)
	b.Payments = append(b.Payments, *txn)
	b.PaymentStatus = b.DerivePaymentState()
	if b.BookingStatus == StatusPending && b.PaymentStatus == PaymentStateCompleted {
		b.BookingStatus = StatusConfirmed
	}
	b.UpdatedAt = now
	return txn, nil
}

// CancelScope selects which pilgrims a cancellation applies to.
type CancelScope struct {
	All        bool
	PilgrimIDs []uuid.UUID
}

// CancelAll targets every remaining active pilgrim.
func CancelAll() CancelScope {
	return CancelScope{All: true}
}

// CancelPilgrims targets a subset of the booking's active pilgrims.
func CancelPilgrims(ids []uuid.UUID) CancelScope {
	return CancelScope{PilgrimIDs: ids}
}

// Cancel cancels the targeted pilgrims, moves the booking to cancelled or
// partially_cancelled, and — when the policy yields a non-zero amount — spawns
// an initiated refund transaction. All validation happens before any mutation.
//
// The refund base splits the amount paid to date evenly across all pilgrims;
// see policy.ComputeRefund.
func (b *Booking) Cancel(scope CancelScope, reason string, rules []policy.Rule, now time.Time) (*ledger.RefundTransaction, *policy.RefundQuote, error) {
	if reason == "" {
		return nil, nil, errs.Validation(errs.CodeValidation, "cancellation reason is required")
	}
	if b.BookingStatus == StatusCancelled {
		return nil, nil, errs.StateConflict(errs.CodeAlreadyCancelled, "booking is already cancelled")
	}
	if b.BookingStatus.IsTerminal() {
		return nil, nil, errs.StateConflict(errs.CodeBookingClosed,
			fmt.Sprintf("cannot cancel a %s booking", b.BookingStatus))
	}
	if b.ActiveCount() == 0 {
		return nil, nil, errs.StateConflict(errs.CodeAlreadyCancelled, "no active travelers remain to cancel")
	}
	if b.OpenRefund() != nil {
		return nil, nil, errs.StateConflict(errs.CodeRefundInFlight,
			"a refund is already in progress for this booking")
	}

	targets, err := b.resolveScope(scope)
	if err != nil {
		return nil, nil, err
	}

	// Quote before mutating so a policy failure leaves the aggregate intact.
	quote, err := policy.ComputeRefund(now, b.DepartureDate, rules, b.TotalPaid(), len(b.Pilgrims), len(targets))
	if err != nil {
		return nil, nil, err
	}

	for _, p := range targets {
		p.cancel(reason, now)
	}

	b.CancellationDate = &now
	b.CancellationReason = reason
	if b.ActiveCount() == 0 {
		b.BookingStatus = StatusCancelled
	} else {
		b.BookingStatus = StatusPartiallyCancelled
	}
	b.PaymentStatus = b.DerivePaymentState()
	b.UpdatedAt = now

	// A zero-value refund is not recorded; the payment status above already
	// reflects the cancellation.
	if quote.RefundAmount <= 0 {
		return nil, quote, nil
	}

	var pilgrimIDs []uuid.UUID
	if !scope.All {
		for _, p := range targets {
			pilgrimIDs = append(pilgrimIDs, p.ID)
		}
	}
	refund := ledger.NewInitiatedRefund(b.ID, quote.RefundAmount, reason, pilgrimIDs, now)
	b.Refunds = append(b.Refunds, *refund)
	return refund, quote, nil
}

// resolveScope maps a cancellation scope to concrete active pilgrims, without
// mutating anything.
func (b *Booking) resolveScope(scope CancelScope) ([]*Pilgrim, error) {
	if scope.All {
		var targets []*Pilgrim
		for i := range b.Pilgrims {
			if b.Pilgrims[i].IsActive() {
				targets = append(targets, &b.Pilgrims[i])
			}
		}
		return targets, nil
	}

	if len(scope.PilgrimIDs) == 0 {
		return nil, errs.Validation(errs.CodeInvalidSelection, "no travelers selected for cancellation")
	}

	byID := make(map[uuid.UUID]*Pilgrim, len(b.Pilgrims))
	for i := range b.Pilgrims {
		byID[b.Pilgrims[i].ID] = &b.Pilgrims[i]
	}

	seen := make(map[uuid.UUID]bool, len(scope.PilgrimIDs))
	var targets []*Pilgrim
	for _, id := range scope.PilgrimIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		p, ok := byID[id]
		if !ok {
			return nil, errs.Validation(errs.CodeInvalidSelection,
				fmt.Sprintf("traveler %s does not belong to this booking", id))
		}
		if !p.IsActive() {
			return nil, errs.Validation(errs.CodeInvalidSelection,
				fmt.Sprintf("traveler %s is already cancelled", id))
		}
		targets = append(targets, p)
	}
	return targets, nil
}

// Reject records an external rejection decision. Only a pending booking can
// be rejected.
func (b *Booking) Reject(now time.Time) error {
	if b.BookingStatus != StatusPending {
		return errs.StateConflict(errs.CodeInvalidState,
			fmt.Sprintf("only a pending booking can be rejected, current status: %s", b.BookingStatus))
	}
	b.BookingStatus = StatusRejected
	b.UpdatedAt = now
	return nil
}

// Complete marks the trip as done, post-departure. External decision, never
// derived.
func (b *Booking) Complete(now time.Time) error {
	if b.BookingStatus != StatusConfirmed && b.BookingStatus != StatusPartiallyCancelled {
		return errs.StateConflict(errs.CodeInvalidState,
			fmt.Sprintf("only a confirmed or partially cancelled booking can be completed, current status: %s", b.BookingStatus))
	}
	b.BookingStatus = StatusCompleted
	b.UpdatedAt = now
	return nil
}
