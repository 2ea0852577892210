package repository

import (
	"context"
	"errors"
	"time"

	"coffeeshop/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrDuplicateEmail = errors.New("duplicate email")

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	SetVerificationCode(ctx context.Context, userID uuid.UUID, codeHash string, expiresAt time.Time) error
	MarkVerified(ctx context.Context, userID uuid.UUID) error
	List(ctx context.Context, limit, offset int) ([]entity.User, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteUnverifiedCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	err := r.db.WithContext(ctx).Create(user).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrDuplicateEmail
	}
	return err
}

func (r *userRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	err := r.db.WithContext(ctx).
		Where("email = ?", email).
		First(&user).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &user, err
}

func (r *userRepository) Update(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Save(user).Error
}

func (r *userRepository) SetVerificationCode(ctx context.Context, userID uuid.UUID, codeHash string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"verification_code_hash":       codeHash,
			"verification_code_expires_at": expiresAt,
		}).
		Error
}

// MarkVerified flips is_verified and clears the pending code in one update,
// so the code cannot outlive a successful verification.
func (r *userRepository) MarkVerified(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Model(&entity.User{}).
		Where("id = ?", userID).
		Updates(map[string]any{
			"is_verified":                  true,
			"verification_code_hash":       nil,
			"verification_code_expires_at": nil,
		}).
		Error
}

func (r *userRepository) List(ctx context.Context, limit, offset int) ([]entity.User, error) {
	var users []entity.User
	query := r.db.WithContext(ctx).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepository) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&entity.User{})
	return result.RowsAffected > 0, result.Error
}

// DeleteUnverifiedCreatedBefore is the cleanup sweep's single batch delete.
// is_verified is part of the delete predicate itself, so a verification that
// lands concurrently can never have its row swept.
func (r *userRepository) DeleteUnverifiedCreatedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Where("is_verified = false AND created_at <= ?", cutoff).
		Delete(&entity.User{})
	return result.RowsAffected, result.Error
}
