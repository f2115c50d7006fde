package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/massfitdev/massfit-bot/pkg/db/models"
	"github.com/massfitdev/massfit-bot/pkg/enums"
	pkgerrors "github.com/massfitdev/massfit-bot/pkg/errors"
)

// ProductRepository exposes product persistence operations.
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository constructs a product repo bound to the provided GORM DB.
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// Create inserts a product.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) (*models.Product, error) {
	if err := r.db.WithContext(ctx).Create(product).Error; err != nil {
		return nil, err
	}
	return product, nil
}

// FindByID loads a product by ID.
func (r *ProductRepository) FindByID(ctx context.Context, id int64) (*models.Product, error) {
	var product models.Product
	if err := r.db.WithContext(ctx).First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "product not found")
		}
		return nil, err
	}
	return &product, nil
}

// ListByCategory returns the category's products in insertion order.
func (r *ProductRepository) ListByCategory(ctx context.Context, category enums.ProductCategory) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Where("category = ?", category).
		Order("created_at asc").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

// ListAll returns every product in insertion order.
func (r *ProductRepository) ListAll(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := r.db.WithContext(ctx).Order("created_at asc").Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// UpdateColumns applies a partial column update to a product.
func (r *ProductRepository) UpdateColumns(ctx context.Context, id int64, values map[string]any) error {
	res := r.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Updates(values)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}

// Delete removes a product. Basket rows referencing it cascade in SQL.
func (r *ProductRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&models.Product{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
	}
	return nil
}
