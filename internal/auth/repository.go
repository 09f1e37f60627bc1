package auth

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"yatra/internal/users"
)

// Repository is the account store behind the auth service. Accounts live in
// the users table; this surface only covers what authentication needs.
type Repository interface {
	Create(ctx context.Context, user *users.User) error
	ByEmail(ctx context.Context, email string) (*users.User, error)
	ByID(ctx context.Context, id string) (*users.User, error)
	UpdatePassword(ctx context.Context, userID string, hashedPassword string) error
	EmailTaken(ctx context.Context, email string) (bool, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, user *users.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *repository) ByEmail(ctx context.Context, email string) (*users.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *repository) ByID(ctx context.Context, id string) (*users.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *repository) findOne(ctx context.Context, cond string, arg interface{}) (*users.User, error) {
	var user users.User
	err := r.db.WithContext(ctx).Where(cond, arg).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (r *repository) UpdatePassword(ctx context.Context, userID string, hashedPassword string) error {
	result := r.db.WithContext(ctx).Model(&users.User{}).
		Where("id = ?", userID).
		Update("password", hashedPassword)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

func (r *repository) EmailTaken(ctx context.Context, email string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&users.User{}).
		Where("email = ?", email).
		Count(&count).Error
	return count > 0, err
}
