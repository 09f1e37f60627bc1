package bookings

import (
	"context"
	"errors"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"yatra/internal/ledger"
	"yatra/internal/shared/errs"
)

// BookingListQuery carries pagination and filters for booking listings.
type BookingListQuery struct {
	Page   int
	Limit  int
	Status string
}

// Mutation captures the outcome of one lifecycle operation so the repository
// can persist it atomically: the booking row is updated with a compare-and-set
// on its version, and the rows the operation touched or appended commit in the
// same transaction or not at all.
type Mutation struct {
	Booking    *Booking
	Pilgrims   []*Pilgrim
	NewPayment *ledger.PaymentTransaction
	NewRefund  *ledger.RefundTransaction
}

type Repository interface {
	Create(ctx context.Context, booking *Booking) error
	GetByID(ctx context.Context, id uuid.UUID) (*Booking, error)
	GetByUserID(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error)
	GetAll(ctx context.Context, query BookingListQuery) ([]Booking, int64, error)
	Apply(ctx context.Context, m Mutation) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, booking *Booking) error {
	return r.db.WithContext(ctx).Create(booking).Error
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Booking, error) {
	var booking Booking
	err := r.db.WithContext(ctx).
		Preload("Pilgrims").
		Preload("Payments").
		Preload("Refunds").
		Where("id = ?", id).
		First(&booking).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("booking not found")
		}
		return nil, err
	}
	return &booking, nil
}

func (r *repository) GetByUserID(ctx context.Context, userID uuid.UUID, query BookingListQuery) ([]Booking, int64, error) {
	base := r.db.WithContext(ctx).Model(&Booking{}).Where("user_id = ?", userID)
	return r.list(base, query)
}

func (r *repository) GetAll(ctx context.Context, query BookingListQuery) ([]Booking, int64, error) {
	base := r.db.WithContext(ctx).Model(&Booking{})
	return r.list(base, query)
}

func (r *repository) list(base *gorm.DB, query BookingListQuery) ([]Booking, int64, error) {
	if query.Page <= 0 {
		query.Page = 1
	}
	if query.Limit <= 0 {
		query.Limit = 10
	}

	if query.Status != "" {
		base = base.Where("booking_status = ?", query.Status)
	}

	var totalCount int64
	if err := base.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var bookings []Booking
	offset := (query.Page - 1) * query.Limit
	err := base.
		Preload("Pilgrims").
		Preload("Payments").
		Preload("Refunds").
		Order("created_at DESC").
		Offset(offset).
		Limit(query.Limit).
		Find(&bookings).Error

	return bookings, totalCount, err
}

// Apply persists a lifecycle mutation. The booking row is guarded by a
// compare-and-set on the version column: a concurrent writer that got there
// first makes this call fail with a version conflict, and nothing — pilgrim
// updates, ledger appends — is committed.
func (r *repository) Apply(ctx context.Context, m Mutation) error {
	b := m.Booking
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&Booking{}).
			Where("id = ? AND version = ?", b.ID, b.Version).
			Updates(map[string]interface{}{
				"booking_status":      b.BookingStatus,
				"payment_status":      b.PaymentStatus,
				"cancellation_date":   b.CancellationDate,
				"cancellation_reason": b.CancellationReason,
				"version":             b.Version + 1,
				"updated_at":          time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return errs.Consistency(errs.CodeVersionConflict,
				"booking was modified concurrently, please retry")
		}

		for _, p := range m.Pilgrims {
			if err := tx.Save(p).Error; err != nil {
				return err
			}
		}
		if m.NewPayment != nil {
			if err := tx.Create(m.NewPayment).Error; err != nil {
				return err
			}
		}
		if m.NewRefund != nil {
			if err := tx.Create(m.NewRefund).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	b.Version++
	return nil
}

// CalculateTotalPages is a helper for paginated responses.
func CalculateTotalPages(totalCount int64, limit int) int {
	if limit <= 0 {
		return 0
	}
	return int(math.Ceil(float64(totalCount) / float64(limit)))
}
