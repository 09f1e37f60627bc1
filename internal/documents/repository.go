package documents

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"yatra/internal/shared/errs"
)

type Repository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*Document, error)
	GetByPilgrimAndType(ctx context.Context, pilgrimID uuid.UUID, docType DocumentType) (*Document, error)
	GetByPilgrimID(ctx context.Context, pilgrimID uuid.UUID) ([]Document, error)
	GetByPilgrimIDs(ctx context.Context, pilgrimIDs []uuid.UUID) ([]Document, error)
	Create(ctx context.Context, doc *Document) error
	Update(ctx context.Context, doc *Document) error

	// PilgrimExists checks the pilgrim row directly, avoiding an import of
	// the bookings package.
	PilgrimExists(ctx context.Context, pilgrimID uuid.UUID) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByID(ctx context.Context, id uuid.UUID) (*Document, error) {
	var doc Document
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("document not found")
		}
		return nil, err
	}
	return &doc, nil
}

func (r *repository) GetByPilgrimAndType(ctx context.Context, pilgrimID uuid.UUID, docType DocumentType) (*Document, error) {
	var doc Document
	err := r.db.WithContext(ctx).
		Where("pilgrim_id = ? AND type = ?", pilgrimID, docType).
		First(&doc).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NotFound("document not found")
		}
		return nil, err
	}
	return &doc, nil
}

func (r *repository) GetByPilgrimID(ctx context.Context, pilgrimID uuid.UUID) ([]Document, error) {
	var docs []Document
	err := r.db.WithContext(ctx).
		Where("pilgrim_id = ?", pilgrimID).
		Order("type ASC").
		Find(&docs).Error
	return docs, err
}

func (r *repository) GetByPilgrimIDs(ctx context.Context, pilgrimIDs []uuid.UUID) ([]Document, error) {
	if len(pilgrimIDs) == 0 {
		return nil, nil
	}
	var docs []Document
	err := r.db.WithContext(ctx).
		Where("pilgrim_id IN ?", pilgrimIDs).
		Find(&docs).Error
	return docs, err
}

func (r *repository) Create(ctx context.Context, doc *Document) error {
	return r.db.WithContext(ctx).Create(doc).Error
}

func (r *repository) Update(ctx context.Context, doc *Document) error {
	return r.db.WithContext(ctx).Save(doc).Error
}

func (r *repository) PilgrimExists(ctx context.Context, pilgrimID uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Table("pilgrims").
		Where("id = ?", pilgrimID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
