package bookings

import (
	"time"

	"github.com/google/uuid"

	"yatra/internal/ledger"
)

// Booking is the aggregate root for a pilgrimage package purchase. It owns its
// pilgrims and its payment/refund ledgers; every mutation goes through the
// lifecycle methods and is persisted with a compare-and-set on Version.
type Booking struct {
	ID                 uuid.UUID    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID             uuid.UUID    `gorm:"type:uuid;index;not null" json:"user_id"`
	PackageID          uuid.UUID    `gorm:"type:uuid;index;not null" json:"package_id"`
	TravelerCount      int          `gorm:"not null" json:"traveler_count"`
	TotalAmt           float64      `gorm:"not null" json:"total_amt"`
	BookingStatus      Status       `gorm:"type:varchar(25);not null;default:'pending'" json:"booking_status"`
	PaymentStatus      PaymentState `gorm:"type:varchar(25);not null;default:'pending'" json:"payment_status"`
	BookingDate        time.Time    `gorm:"not null" json:"booking_date"`
	DepartureDate      time.Time    `gorm:"not null" json:"departure_date"`
	CancellationDate   *time.Time   `json:"cancellation_date,omitempty"`
	CancellationReason string       `json:"cancellation_reason,omitempty"`
	Version            int          `gorm:"not null;default:0" json:"version"`
	CreatedAt          time.Time    `json:"created_at"`
	UpdatedAt          time.Time    `json:"updated_at"`

	// Relationships
	Pilgrims []Pilgrim                   `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE;" json:"pilgrims,omitempty"`
	Payments []ledger.PaymentTransaction `gorm:"foreignKey:BookingID;constraint:OnDelete:RESTRICT;" json:"payments,omitempty"`
	Refunds  []ledger.RefundTransaction  `gorm:"foreignKey:BookingID;constraint:OnDelete:RESTRICT;" json:"refunds,omitempty"`
}

// Pilgrim is one traveler covered by a booking, with independent cancellation
// state. Status only ever moves active -> cancelled.
type Pilgrim struct {
	ID                 uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	BookingID          uuid.UUID     `gorm:"type:uuid;index;not null" json:"booking_id"`
	FirstName          string        `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName           string        `gorm:"type:varchar(100);not null" json:"last_name"`
	DateOfBirth        time.Time     `json:"date_of_birth"`
	Gender             string        `gorm:"type:varchar(10)" json:"gender"`
	Nationality        string        `gorm:"type:varchar(50)" json:"nationality"`
	PassportNumber     string        `gorm:"type:varchar(20)" json:"passport_number"`
	PassportExpiry     time.Time     `json:"passport_expiry"`
	Status             PilgrimStatus `gorm:"type:varchar(15);not null;default:'active'" json:"status"`
	CancellationDate   *time.Time    `json:"cancellation_date,omitempty"`
	CancellationReason string        `json:"cancellation_reason,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

func (Booking) TableName() string {
	return "bookings"
}

func (Pilgrim) TableName() string {
	return "pilgrims"
}

func (p *Pilgrim) IsActive() bool {
	return p.Status == PilgrimStatusActive
}

// cancel marks the pilgrim cancelled. Irreversible.
func (p *Pilgrim) cancel(reason string, now time.Time) {
	p.Status = PilgrimStatusCancelled
	p.CancellationDate = &now
	p.CancellationReason = reason
	p.UpdatedAt = now
}
