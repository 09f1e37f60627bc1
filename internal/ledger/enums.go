package ledger

// PaymentMethod enumerates the accepted ways of paying towards a booking.
type PaymentMethod string

const (
	PaymentMethodCreditCard PaymentMethod = "credit_card"
	PaymentMethodDebitCard  PaymentMethod = "debit_card"
	PaymentMethodUPI        PaymentMethod = "upi"
	PaymentMethodNetBanking PaymentMethod = "net_banking"
	PaymentMethodCash       PaymentMethod = "cash"
)

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCreditCard, PaymentMethodDebitCard, PaymentMethodUPI,
		PaymentMethodNetBanking, PaymentMethodCash:
		return true
	}
	return false
}

func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentStatus enumerates the states of a payment transaction.
type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusFailed    PaymentStatus = "failed"
)

func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusCompleted, PaymentStatusPending, PaymentStatusFailed:
		return true
	}
	return false
}

// RefundStatus enumerates the states of a refund transaction.
type RefundStatus string

const (
	RefundStatusInitiated  RefundStatus = "initiated"
	RefundStatusProcessing RefundStatus = "processing"
	RefundStatusCompleted  RefundStatus = "completed"
	RefundStatusFailed     RefundStatus = "failed"
)

func (s RefundStatus) IsValid() bool {
	switch s {
	case RefundStatusInitiated, RefundStatusProcessing, RefundStatusCompleted, RefundStatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether the refund can no longer change state.
func (s RefundStatus) IsTerminal() bool {
	return s == RefundStatusCompleted || s == RefundStatusFailed
}

// IsOpen reports whether the refund still counts against the one-in-flight
// limit per booking.
func (s RefundStatus) IsOpen() bool {
	return s == RefundStatusInitiated || s == RefundStatusProcessing
}

// CanTransitionTo reports whether the refund state machine permits moving from
// s to next.
func (s RefundStatus) CanTransitionTo(next RefundStatus) bool {
	switch s {
	case RefundStatusInitiated:
		return next == RefundStatusProcessing || next == RefundStatusFailed
	case RefundStatusProcessing:
		return next == RefundStatusCompleted || next == RefundStatusFailed
	}
	return false
}

// RefundMethod enumerates the channels a refund can be paid out through.
type RefundMethod string

const (
	RefundMethodBankAccount     RefundMethod = "bank_account"
	RefundMethodOriginalPayment RefundMethod = "original_payment"
	RefundMethodWallet          RefundMethod = "wallet"
)

func (m RefundMethod) IsValid() bool {
	switch m {
	case RefundMethodBankAccount, RefundMethodOriginalPayment, RefundMethodWallet:
		return true
	}
	return false
}

// EstimatedDays returns the advisory completion window for the method. It is
// informational metadata and never gates a state transition.
func (m RefundMethod) EstimatedDays() (min, max int) {
	switch m {
	case RefundMethodOriginalPayment:
		return 1, 2
	case RefundMethodBankAccount:
		return 3, 5
	case RefundMethodWallet:
		return 0, 1
	}
	return 0, 0
}
