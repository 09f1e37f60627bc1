package analytics

import (
	"context"

	"gorm.io/gorm"
)

type Repository interface {
	GetBookingStats(ctx context.Context) (*BookingStats, error)
	GetRefundStats(ctx context.Context) (*RefundStats, error)
	GetTopPackages(ctx context.Context, limit int) ([]PackagePerformance, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetBookingStats(ctx context.Context) (*BookingStats, error) {
	var stats BookingStats

	row := r.db.WithContext(ctx).
		Table("bookings").
		Select(`COUNT(*) AS total_bookings,
			COUNT(*) FILTER (WHERE booking_status = 'confirmed') AS confirmed_bookings,
			COUNT(*) FILTER (WHERE booking_status = 'cancelled') AS cancelled_bookings,
			COUNT(*) FILTER (WHERE booking_status = 'completed') AS completed_bookings`).
		Row()
	if err := row.Scan(&stats.TotalBookings, &stats.ConfirmedBookings,
		&stats.CancelledBookings, &stats.CompletedBookings); err != nil {
		return nil, err
	}

	err := r.db.WithContext(ctx).
		Table("payment_transactions").
		Select("COALESCE(SUM(amount), 0)").
		Where("status = ?", "completed").
		Scan(&stats.TotalRevenue).Error
	if err != nil {
		return nil, err
	}

	if stats.TotalBookings > 0 {
		stats.CancellationRate = float64(stats.CancelledBookings) / float64(stats.TotalBookings) * 100
	}
	return &stats, nil
}

func (r *repository) GetRefundStats(ctx context.Context) (*RefundStats, error) {
	var stats RefundStats

	row := r.db.WithContext(ctx).
		Table("refund_transactions").
		Select(`COUNT(*) AS total_refunds,
			COUNT(*) FILTER (WHERE status IN ('initiated', 'processing')) AS pending_refunds,
			COUNT(*) FILTER (WHERE status = 'completed') AS completed_refunds,
			COUNT(*) FILTER (WHERE status = 'failed') AS failed_refunds,
			COALESCE(SUM(amount) FILTER (WHERE status = 'completed'), 0) AS total_refunded`).
		Row()
	if err := row.Scan(&stats.TotalRefunds, &stats.PendingRefunds,
		&stats.CompletedRefunds, &stats.FailedRefunds, &stats.TotalRefunded); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (r *repository) GetTopPackages(ctx context.Context, limit int) ([]PackagePerformance, error) {
	var rows []PackagePerformance
	err := r.db.WithContext(ctx).
		Table("bookings").
		Select(`bookings.package_id::text AS package_id,
			travel_packages.name AS package_name,
			COUNT(*) AS booking_count,
			COALESCE(SUM(bookings.total_amt), 0) AS revenue`).
		Joins("JOIN travel_packages ON travel_packages.id = bookings.package_id").
		Where("bookings.booking_status NOT IN ('cancelled', 'rejected')").
		Group("bookings.package_id, travel_packages.name").
		Order("booking_count DESC").
		Limit(limit).
		Scan(&rows).Error
	return rows, err
}
