package bookings

import "time"

// CreateBookingRequest is the traveler submission that opens a booking.
type CreateBookingRequest struct {
	PackageID string           `json:"package_id" binding:"required,uuid"`
	Pilgrims  []PilgrimRequest `json:"pilgrims" binding:"required,min=1,dive"`
}

// PilgrimRequest carries one traveler's personal and passport details.
type PilgrimRequest struct {
	FirstName      string    `json:"first_name" binding:"required,min=2,max=100"`
	LastName       string    `json:"last_name" binding:"required,min=2,max=100"`
	DateOfBirth    time.Time `json:"date_of_birth" binding:"required"`
	Gender         string    `json:"gender" binding:"omitempty,oneof=male female other"`
	Nationality    string    `json:"nationality" binding:"required"`
	PassportNumber string    `json:"passport_number" binding:"required,min=6,max=20"`
	PassportExpiry time.Time `json:"passport_expiry" binding:"required"`
}

// RecordPaymentRequest records a payment against the booking.
type RecordPaymentRequest struct {
	Amount      float64 `json:"amount" binding:"required,gt=0"`
	Method      string  `json:"method" binding:"required,oneof=credit_card debit_card upi net_banking cash"`
	Reference   string  `json:"reference" binding:"omitempty,max=100"`
	Description string  `json:"description" binding:"omitempty,max=500"`
}

// CancelBookingRequest cancels the whole booking or a subset of its pilgrims.
type CancelBookingRequest struct {
	Scope      string   `json:"scope" binding:"required,oneof=all pilgrims"`
	PilgrimIDs []string `json:"pilgrim_ids" binding:"omitempty,dive,uuid"`
	Reason     string   `json:"reason" binding:"required,min=5,max=500"`
}

// RejectBookingRequest records an agent's rejection decision.
type RejectBookingRequest struct {
	Reason string `json:"reason" binding:"omitempty,max=500"`
}
