package basket

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/massfitdev/massfit-bot/pkg/db/models"
	pkgerrors "github.com/massfitdev/massfit-bot/pkg/errors"
)

// Service exposes the per-user basket operations.
type Service interface {
	Items(ctx context.Context, userID int64) ([]models.BasketItem, error)
	Save(ctx context.Context, userID, productID int64, quantity int) error
	SetQuantity(ctx context.Context, userID, productID int64, quantity int) error
	Remove(ctx context.Context, userID, productID int64) error
	Clear(ctx context.Context, userID int64) error
}

type productReader interface {
	FindByID(ctx context.Context, id int64) (*models.Product, error)
}

type service struct {
	repo     *Repository
	products productReader
}

// NewService constructs the basket service.
func NewService(repo *Repository, products productReader) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("basket repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product reader required")
	}
	return &service{repo: repo, products: products}, nil
}

func (s *service) Items(ctx context.Context, userID int64) ([]models.BasketItem, error) {
	return s.repo.ItemsWithProducts(ctx, userID)
}

// Save writes the line with the given quantity, replacing any stored value.
func (s *service) Save(ctx context.Context, userID, productID int64, quantity int) error {
	if quantity < 1 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1")
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		return err
	}
	return s.repo.Upsert(ctx, userID, productID, quantity)
}

// SetQuantity adjusts an existing line. Anything below 1 removes the line.
func (s *service) SetQuantity(ctx context.Context, userID, productID int64, quantity int) error {
	if quantity < 1 {
		return s.repo.Remove(ctx, userID, productID)
	}
	item, err := s.repo.Find(ctx, userID, productID)
	if err != nil {
		return err
	}
	if item == nil {
		return pkgerrors.New(pkgerrors.CodeNotFound, "basket line not found")
	}
	return s.repo.UpdateQuantity(ctx, userID, productID, quantity)
}

func (s *service) Remove(ctx context.Context, userID, productID int64) error {
	return s.repo.Remove(ctx, userID, productID)
}

// Clear empties the basket. Clearing an empty basket is a no-op.
func (s *service) Clear(ctx context.Context, userID int64) error {
	return s.repo.Clear(ctx, userID)
}

// Total sums price x quantity across the given lines.
func Total(items []models.BasketItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if item.Product == nil {
			continue
		}
		total = total.Add(item.Product.Price.Mul(decimal.NewFromInt(int64(item.Quantity))))
	}
	return total
}
