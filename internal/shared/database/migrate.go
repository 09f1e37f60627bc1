package database

import (
	"yatra/internal/bookings"
	"yatra/internal/documents"
	"yatra/internal/ledger"
	"yatra/internal/packages"
	"yatra/internal/policy"
	"yatra/internal/users"

	"gorm.io/gorm"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&users.User{},
		&packages.TravelPackage{},
		&bookings.Booking{},
		&bookings.Pilgrim{},
		&ledger.PaymentTransaction{},
		&ledger.RefundTransaction{},
		&policy.CancellationPolicy{},
		&policy.Rule{},
		&documents.Document{},
	)
}
