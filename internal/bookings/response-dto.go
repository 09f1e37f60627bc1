package bookings

import (
	"yatra/internal/ledger"
	"yatra/internal/policy"
)

// CancellationResponse is the result of a cancel call: the new booking state,
// the policy quote, and the spawned refund (absent when the quote was zero).
type CancellationResponse struct {
	Booking *Booking                  `json:"booking"`
	Quote   *policy.RefundQuote       `json:"quote"`
	Refund  *ledger.RefundTransaction `json:"refund,omitempty"`
}

// PilgrimReadiness is one traveler's document-verification progress.
type PilgrimReadiness struct {
	PilgrimID string  `json:"pilgrim_id"`
	Name      string  `json:"name"`
	Status    string  `json:"status"`
	Progress  float64 `json:"progress"`
}

// ReadinessResponse is the derived readiness view of a booking. It is purely
// informational and gates no booking transition.
type ReadinessResponse struct {
	BookingID       string             `json:"booking_id"`
	OverallProgress float64            `json:"overall_progress"`
	Pilgrims        []PilgrimReadiness `json:"pilgrims"`
}

// BookingListResponse is a paginated listing.
type BookingListResponse struct {
	Bookings   []Booking `json:"bookings"`
	TotalCount int64     `json:"total_count"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}
