package basket

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/massfitdev/massfit-bot/pkg/db/models"
)

// Repository exposes basket persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a basket repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the transaction handle.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// ItemsWithProducts loads the user's basket lines with product rows attached,
// oldest line first.
func (r *Repository) ItemsWithProducts(ctx context.Context, userID int64) ([]models.BasketItem, error) {
	var items []models.BasketItem
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("user_id = ?", userID).
		Order("created_at asc").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Find loads a single (user, product) line, nil when absent.
func (r *Repository) Find(ctx context.Context, userID, productID int64) (*models.BasketItem, error) {
	var item models.BasketItem
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Upsert writes the (user, product) line, replacing any stored quantity.
func (r *Repository) Upsert(ctx context.Context, userID, productID int64, quantity int) error {
	item := models.BasketItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  quantity,
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]any{"quantity": quantity}),
		}).
		Create(&item).Error
}

// UpdateQuantity replaces the stored quantity for an existing line.
func (r *Repository) UpdateQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	return r.db.WithContext(ctx).
		Model(&models.BasketItem{}).
		Where("user_id = ? AND product_id = ?", userID, productID).
		UpdateColumn("quantity", quantity).Error
}

// Remove deletes the (user, product) line.
func (r *Repository) Remove(ctx context.Context, userID, productID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		Delete(&models.BasketItem{}).Error
}

// Clear deletes every line of the user's basket.
func (r *Repository) Clear(ctx context.Context, userID int64) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&models.BasketItem{}).Error
}
