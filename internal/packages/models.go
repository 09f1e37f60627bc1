package packages

import (
	"time"

	"github.com/google/uuid"
)

// Status is the publication state of a travel package.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPublished Status = "published"
	StatusArchived  Status = "archived"
)

func (s Status) IsBookable() bool {
	return s == StatusPublished
}

// TravelPackage is the pilgrimage package a booking is made against. Package
// management (itineraries, hotels, flights) lives in another service; this is
// the read-side surface the booking core needs: price, departure, status.
type TravelPackage struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name           string    `gorm:"type:varchar(200);not null" json:"name"`
	Destination    string    `gorm:"type:varchar(100)" json:"destination"`
	DurationDays   int       `json:"duration_days"`
	PricePerPerson float64   `gorm:"not null" json:"price_per_person"`
	DepartureDate  time.Time `gorm:"not null" json:"departure_date"`
	ReturnDate     time.Time `json:"return_date"`
	Status         Status    `gorm:"type:varchar(15);not null;default:'draft'" json:"status"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (TravelPackage) TableName() string {
	return "travel_packages"
}
