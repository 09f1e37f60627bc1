package bookings

// Status is the booking lifecycle state.
type Status string

const (
	StatusPending            Status = "pending"
	StatusConfirmed          Status = "confirmed"
	StatusRejected           Status = "rejected"
	StatusCancelled          Status = "cancelled"
	StatusPartiallyCancelled Status = "partially_cancelled"
	StatusCompleted          Status = "completed"
)

// IsValid checks if the booking status is valid
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusRejected, StatusCancelled,
		StatusPartiallyCancelled, StatusCompleted:
		return true
	}
	return false
}

// String returns the string representation of Status
func (s Status) String() string {
	return string(s)
}

// IsTerminal reports whether the booking can no longer change state.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusCancelled, StatusRejected, StatusCompleted:
		return true
	}
	return false
}

// CanBeCancelled checks if a booking with this status can be cancelled
func (s Status) CanBeCancelled() bool {
	switch s {
	case StatusPending, StatusConfirmed, StatusPartiallyCancelled:
		return true
	}
	return false
}

// PaymentState is the booking-level payment status, derived from the ledger
// and the cancellation state.
type PaymentState string

const (
	PaymentStatePending           PaymentState = "pending"
	PaymentStatePartial           PaymentState = "partial"
	PaymentStateCompleted         PaymentState = "completed"
	PaymentStateRefunded          PaymentState = "refunded"
	PaymentStatePartiallyRefunded PaymentState = "partially_refunded"
)

func (s PaymentState) IsValid() bool {
	switch s {
	case PaymentStatePending, PaymentStatePartial, PaymentStateCompleted,
		PaymentStateRefunded, PaymentStatePartiallyRefunded:
		return true
	}
	return false
}

func (s PaymentState) String() string {
	return string(s)
}

// PilgrimStatus is the per-traveler state. Transitions are monotonic:
// active -> cancelled, never back.
type PilgrimStatus string

const (
	PilgrimStatusActive    PilgrimStatus = "active"
	PilgrimStatusCancelled PilgrimStatus = "cancelled"
)

func (s PilgrimStatus) IsValid() bool {
	return s == PilgrimStatusActive || s == PilgrimStatusCancelled
}
