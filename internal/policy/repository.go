package policy

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"yatra/internal/shared/errs"
)

type Repository interface {
	Create(ctx context.Context, policy *CancellationPolicy) error
	GetByPackageID(ctx context.Context, packageID uuid.UUID) (*CancellationPolicy, error)
	Update(ctx context.Context, policy *CancellationPolicy) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, policy *CancellationPolicy) error {
	return r.db.WithContext(ctx).Create(policy).Error
}

func (r *repository) GetByPackageID(ctx context.Context, packageID uuid.UUID) (*CancellationPolicy, error) {
	var policy CancellationPolicy
	err := r.db.WithContext(ctx).
		Preload("Rules", func(db *gorm.DB) *gorm.DB {
			return db.Order("days_before_departure DESC")
		}).
		Where("package_id = ?", packageID).
		First(&policy).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("no cancellation policy found for this package")
		}
		return nil, err
	}
	return &policy, nil
}

// Update replaces the policy's rule set atomically.
func (r *repository) Update(ctx context.Context, policy *CancellationPolicy) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("policy_id = ?", policy.ID).Delete(&Rule{}).Error; err != nil {
			return err
		}
		return tx.Save(policy).Error
	})
}
