package users

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/massfitdev/massfit-bot/pkg/db/models"
	pkgerrors "github.com/massfitdev/massfit-bot/pkg/errors"
)

// Repository exposes user-related persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a users repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new user and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreateUserDTO) (*models.User, error) {
	user := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return nil, err
	}
	return user, nil
}

// FindByTgID retrieves the user matching the Telegram account ID.
func (r *Repository) FindByTgID(ctx context.Context, tgID int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).Where("tg_id = ?", tgID).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return nil, err
	}
	return &user, nil
}

// FindByID loads a user by their row ID.
func (r *Repository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "user not found")
		}
		return nil, err
	}
	return &user, nil
}

// UpdatePhone stores the user's phone number.
func (r *Repository) UpdatePhone(ctx context.Context, id int64, phone string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		UpdateColumn("phone_number", phone).Error
}

// All lists every known user, oldest first. Used by broadcast and statistics.
func (r *Repository) All(ctx context.Context) ([]models.User, error) {
	var users []models.User
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}
