package catalog

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/massfitdev/massfit-bot/pkg/db/models"
	"github.com/massfitdev/massfit-bot/pkg/enums"
	pkgerrors "github.com/massfitdev/massfit-bot/pkg/errors"
)

// Service exposes admin catalog management plus the read paths the
// storefront uses.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (*models.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	GetProduct(ctx context.Context, id int64) (*models.Product, error)
	ListProductsByCategory(ctx context.Context, category enums.ProductCategory) ([]models.Product, error)
	ListAllProducts(ctx context.Context) ([]models.Product, error)

	CreateBranch(ctx context.Context, input CreateBranchInput) (*models.Branch, error)
	UpdateBranch(ctx context.Context, id int64, input UpdateBranchInput) (*models.Branch, error)
	DeleteBranch(ctx context.Context, id int64) error
	GetBranch(ctx context.Context, id int64) (*models.Branch, error)
	ListBranches(ctx context.Context) ([]models.Branch, error)
}

type service struct {
	products *ProductRepository
	branches *BranchRepository
	validate *validator.Validate
}

// NewService constructs the catalog service.
func NewService(products *ProductRepository, branches *BranchRepository) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product repository required")
	}
	if branches == nil {
		return nil, fmt.Errorf("branch repository required")
	}
	return &service{
		products: products,
		branches: branches,
		validate: validator.New(),
	}, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product input")
	}
	if err := validatePrice(input.Price); err != nil {
		return nil, err
	}
	if !input.Category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product category")
	}

	product := &models.Product{
		Name:        input.Name,
		Price:       input.Price,
		Category:    input.Category,
		Description: input.Description,
		ImageFileID: input.ImageFileID,
	}
	return s.products.Create(ctx, product)
}

func (s *service) UpdateProduct(ctx context.Context, id int64, input UpdateProductInput) (*models.Product, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product input")
	}

	values := map[string]any{}
	if input.Name != nil {
		values["name"] = *input.Name
	}
	if input.Price != nil {
		if err := validatePrice(*input.Price); err != nil {
			return nil, err
		}
		values["price"] = *input.Price
	}
	if input.Category != nil {
		if !input.Category.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product category")
		}
		values["category"] = *input.Category
	}
	if input.Description != nil {
		values["description"] = *input.Description
	}
	if input.ImageFileID != nil {
		values["image_file_id"] = *input.ImageFileID
	}
	if len(values) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if err := s.products.UpdateColumns(ctx, id, values); err != nil {
		return nil, err
	}
	return s.products.FindByID(ctx, id)
}

func (s *service) DeleteProduct(ctx context.Context, id int64) error {
	return s.products.Delete(ctx, id)
}

func (s *service) GetProduct(ctx context.Context, id int64) (*models.Product, error) {
	return s.products.FindByID(ctx, id)
}

func (s *service) ListProductsByCategory(ctx context.Context, category enums.ProductCategory) ([]models.Product, error) {
	if !category.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown product category")
	}
	return s.products.ListByCategory(ctx, category)
}

func (s *service) ListAllProducts(ctx context.Context) ([]models.Product, error) {
	return s.products.ListAll(ctx)
}

func (s *service) CreateBranch(ctx context.Context, input CreateBranchInput) (*models.Branch, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid branch input")
	}

	branch := &models.Branch{
		Name:        input.Name,
		Location:    input.Location,
		Description: input.Description,
		ImageFileID: input.ImageFileID,
	}
	return s.branches.Create(ctx, branch)
}

func (s *service) UpdateBranch(ctx context.Context, id int64, input UpdateBranchInput) (*models.Branch, error) {
	if err := s.validate.Struct(input); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid branch input")
	}

	values := map[string]any{}
	if input.Name != nil {
		values["name"] = *input.Name
	}
	if input.Location != nil {
		values["location"] = *input.Location
	}
	if input.Description != nil {
		values["description"] = *input.Description
	}
	if input.ImageFileID != nil {
		values["image_file_id"] = *input.ImageFileID
	}
	if len(values) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "no fields to update")
	}

	if err := s.branches.UpdateColumns(ctx, id, values); err != nil {
		return nil, err
	}
	return s.branches.FindByID(ctx, id)
}

func (s *service) DeleteBranch(ctx context.Context, id int64) error {
	return s.branches.Delete(ctx, id)
}

func (s *service) GetBranch(ctx context.Context, id int64) (*models.Branch, error) {
	return s.branches.FindByID(ctx, id)
}

func (s *service) ListBranches(ctx context.Context) ([]models.Branch, error) {
	return s.branches.ListAll(ctx)
}

func validatePrice(price decimal.Decimal) error {
	if price.LessThanOrEqual(decimal.Zero) {
		return pkgerrors.New(pkgerrors.CodeValidation, "price must be positive")
	}
	return nil
}
