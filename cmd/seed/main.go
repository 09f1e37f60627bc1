package main

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"yatra/internal/packages"
	"yatra/internal/policy"
	"yatra/internal/shared/config"
	"yatra/internal/shared/database"
	"yatra/internal/users"
)

type Seeder struct {
	db *database.DB
}

func main() {
	fmt.Println("🌱 Starting Yatra Database Seeder...")

	cfg := config.Load()

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	seeder := &Seeder{db: db}

	fmt.Println("\n🧹 Cleaning database...")
	if err := seeder.CleanDatabase(); err != nil {
		log.Fatalf("Failed to clean database: %v", err)
	}
	fmt.Println("✅ Database cleaned successfully")

	fmt.Println("\n🌱 Seeding database...")
	if err := seeder.SeedAll(); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}
	fmt.Println("✅ Database seeded successfully")

	fmt.Println("\n🎉 Seeding completed! Database is ready for testing.")
}

// CleanDatabase truncates all tables in reverse dependency order.
func (s *Seeder) CleanDatabase() error {
	tables := []string{
		"documents",
		"refund_transactions",
		"payment_transactions",
		"pilgrims",
		"bookings",
		"cancellation_policy_rules",
		"cancellation_policies",
		"travel_packages",
		"users",
	}

	tx := s.db.PostgreSQL.Begin()
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
		}
	}()

	if err := tx.Exec("SET CONSTRAINTS ALL DEFERRED").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to defer constraints: %w", err)
	}

	for _, table := range tables {
		fmt.Printf("  Truncating table: %s\n", table)
		if err := tx.Exec(fmt.Sprintf("TRUNCATE TABLE %s RESTART IDENTITY CASCADE", table)).Error; err != nil {
			tx.Rollback()
			return fmt.Errorf("failed to truncate table %s: %w", table, err)
		}
	}

	if err := tx.Exec("SET CONSTRAINTS ALL IMMEDIATE").Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("failed to restore constraints: %w", err)
	}

	return tx.Commit().Error
}

// SeedAll seeds users, packages and cancellation policies.
func (s *Seeder) SeedAll() error {
	if err := s.SeedUsers(); err != nil {
		return fmt.Errorf("failed to seed users: %w", err)
	}

	packageIDs, err := s.SeedPackages()
	if err != nil {
		return fmt.Errorf("failed to seed packages: %w", err)
	}

	if err := s.SeedPolicies(packageIDs); err != nil {
		return fmt.Errorf("failed to seed policies: %w", err)
	}

	return nil
}

// SeedUsers creates one account per role.
func (s *Seeder) SeedUsers() error {
	fmt.Println("  Seeding users...")

	seedUsers := []struct {
		firstName string
		lastName  string
		email     string
		role      users.Role
	}{
		{"Admin", "Yatra", "admin@yatra.com", users.RoleAdmin},
		{"Asha", "Iyer", "agent@yatra.com", users.RoleAgent},
		{"Ravi", "Sharma", "ravi@example.com", users.RoleUser},
		{"Meera", "Patel", "meera@example.com", users.RoleUser},
	}

	for _, u := range seedUsers {
		hashed, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.DefaultCost)
		if err != nil {
			return err
		}

		user := users.User{
			ID:        uuid.New(),
			FirstName: u.firstName,
			LastName:  u.lastName,
			Email:     u.email,
			Password:  string(hashed),
			Role:      u.role,
		}
		if err := s.db.PostgreSQL.Create(&user).Error; err != nil {
			return err
		}
		fmt.Printf("    Created %s (%s)\n", u.email, u.role)
	}

	return nil
}

// SeedPackages creates a few published pilgrimage packages.
func (s *Seeder) SeedPackages() ([]uuid.UUID, error) {
	fmt.Println("  Seeding travel packages...")

	now := time.Now()
	seedPackages := []packages.TravelPackage{
		{
			ID:             uuid.New(),
			Name:           "Char Dham Yatra",
			Destination:    "Uttarakhand",
			DurationDays:   12,
			PricePerPerson: 185000,
			DepartureDate:  now.AddDate(0, 3, 0),
			ReturnDate:     now.AddDate(0, 3, 12),
			Status:         packages.StatusPublished,
		},
		{
			ID:             uuid.New(),
			Name:           "Kailash Mansarovar",
			Destination:    "Tibet",
			DurationDays:   14,
			PricePerPerson: 240000,
			DepartureDate:  now.AddDate(0, 4, 0),
			ReturnDate:     now.AddDate(0, 4, 14),
			Status:         packages.StatusPublished,
		},
		{
			ID:             uuid.New(),
			Name:           "Varanasi & Prayagraj",
			Destination:    "Uttar Pradesh",
			DurationDays:   6,
			PricePerPerson: 48000,
			DepartureDate:  now.AddDate(0, 1, 15),
			ReturnDate:     now.AddDate(0, 1, 21),
			Status:         packages.StatusPublished,
		},
	}

	ids := make([]uuid.UUID, 0, len(seedPackages))
	for _, pkg := range seedPackages {
		if err := s.db.PostgreSQL.Create(&pkg).Error; err != nil {
			return nil, err
		}
		ids = append(ids, pkg.ID)
		fmt.Printf("    Created package %s\n", pkg.Name)
	}

	return ids, nil
}

// SeedPolicies attaches the standard tiered cancellation policy to every
// package.
func (s *Seeder) SeedPolicies(packageIDs []uuid.UUID) error {
	fmt.Println("  Seeding cancellation policies...")

	tiers := []struct {
		days int
		pct  int
	}{
		{90, 100},
		{60, 75},
		{30, 50},
		{15, 25},
		{0, 0},
	}

	for _, packageID := range packageIDs {
		p := policy.CancellationPolicy{
			ID:        uuid.New(),
			PackageID: packageID,
		}
		for _, tier := range tiers {
			p.Rules = append(p.Rules, policy.Rule{
				ID:                  uuid.New(),
				PolicyID:            p.ID,
				DaysBeforeDeparture: tier.days,
				RefundPercentage:    tier.pct,
			})
		}
		if err := p.Validate(); err != nil {
			return err
		}
		if err := s.db.PostgreSQL.Create(&p).Error; err != nil {
			return err
		}
		fmt.Printf("    Created policy for package %s\n", packageID)
	}

	return nil
}
