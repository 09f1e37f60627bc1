package packages

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"yatra/internal/shared/errs"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*TravelPackage, error)
	ListPublished(ctx context.Context, page, limit int) ([]TravelPackage, int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*TravelPackage, error) {
	var pkg TravelPackage
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&pkg).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("travel package not found")
		}
		return nil, err
	}
	return &pkg, nil
}

func (r *repository) ListPublished(ctx context.Context, page, limit int) ([]TravelPackage, int64, error) {
	if page <= 0 {
		page = 1
	}
	if limit <= 0 {
		limit = 10
	}

	base := r.db.WithContext(ctx).Model(&TravelPackage{}).Where("status = ?", StatusPublished)

	var totalCount int64
	if err := base.Count(&totalCount).Error; err != nil {
		return nil, 0, err
	}

	var pkgs []TravelPackage
	err := base.
		Order("departure_date ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&pkgs).Error

	return pkgs, totalCount, err
}
