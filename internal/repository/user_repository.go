package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"friend-service/internal/models"

	"gorm.io/gorm"
)

var ErrEmailExists = errors.New("email already exists")

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByID(ctx context.Context, userID uint) (*models.User, error)
	SearchByEmail(ctx context.Context, email string, limit int) ([]models.User, error)
	SearchByName(ctx context.Context, fragment string, limit int) ([]models.User, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// Create inserts the user unless the (normalized) email is taken. The unique
// index on email backs the pre-check when two signups race.
func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	user.Email = models.NormalizeEmail(user.Email)

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var count int64
		if err := tx.Model(&models.User{}).Where("email = ?", user.Email).Count(&count).Error; err != nil {
			return fmt.Errorf("failed to check email existence: %w", err)
		}
		if count > 0 {
			return ErrEmailExists
		}

		if err := tx.Create(user).Error; err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrEmailExists
			}
			return fmt.Errorf("failed to create user: %w", err)
		}
		return nil
	})
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("email = ?", models.NormalizeEmail(email)).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) FindByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) SearchByEmail(ctx context.Context, email string, limit int) ([]models.User, error) {
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("email = ?", models.NormalizeEmail(email)).
		Order("id").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search users by email: %w", err)
	}
	return users, nil
}

// SearchByName matches a case-insensitive substring of the name.
func (r *userRepository) SearchByName(ctx context.Context, fragment string, limit int) ([]models.User, error) {
	var users []models.User
	pattern := "%" + escapeLike(strings.ToLower(fragment)) + "%"
	err := r.db.WithContext(ctx).
		Where("LOWER(name) LIKE ? ESCAPE '!'", pattern).
		Order("id").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("failed to search users by name: %w", err)
	}
	return users, nil
}

// escapeLike quotes LIKE wildcards with '!', which needs no escaping in any
// of the supported SQL dialects.
func escapeLike(s string) string {
	return strings.NewReplacer("!", "!!", "%", "!%", "_", "!_").Replace(s)
}
