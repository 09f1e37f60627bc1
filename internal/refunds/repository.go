package refunds

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"yatra/internal/ledger"
	"yatra/internal/shared/errs"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ledger.RefundTransaction, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]ledger.RefundTransaction, error)
	GetProcessing(ctx context.Context) ([]ledger.RefundTransaction, error)
	Update(ctx context.Context, refund *ledger.RefundTransaction) error

	// GetBookingOwner resolves the user owning the booking a refund belongs
	// to, for ownership checks without importing the bookings package.
	GetBookingOwner(ctx context.Context, bookingID uuid.UUID) (uuid.UUID, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*ledger.RefundTransaction, error) {
	var refund ledger.RefundTransaction
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&refund).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("refund not found")
		}
		return nil, err
	}
	return &refund, nil
}

func (r *repository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]ledger.RefundTransaction, error) {
	var refunds []ledger.RefundTransaction
	err := r.db.WithContext(ctx).
		Joins("JOIN bookings ON bookings.id = refund_transactions.booking_id").
		Where("bookings.user_id = ?", userID).
		Order("refund_transactions.created_at DESC").
		Find(&refunds).Error
	return refunds, err
}

func (r *repository) GetProcessing(ctx context.Context) ([]ledger.RefundTransaction, error) {
	var refunds []ledger.RefundTransaction
	err := r.db.WithContext(ctx).
		Where("status = ?", ledger.RefundStatusProcessing).
		Find(&refunds).Error
	return refunds, err
}

func (r *repository) Update(ctx context.Context, refund *ledger.RefundTransaction) error {
	return r.db.WithContext(ctx).Save(refund).Error
}

func (r *repository) GetBookingOwner(ctx context.Context, bookingID uuid.UUID) (uuid.UUID, error) {
	var row struct {
		UserID uuid.UUID `gorm:"column:user_id"`
	}
	err := r.db.WithContext(ctx).
		Table("bookings").
		Select("user_id").
		Where("id = ?", bookingID).
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, errs.NotFound("booking not found")
		}
		return uuid.Nil, err
	}
	return row.UserID, nil
}
