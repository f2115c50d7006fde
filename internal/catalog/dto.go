package catalog

import (
	"github.com/shopspring/decimal"

	"github.com/massfitdev/massfit-bot/pkg/enums"
)

// CreateProductInput holds the payload captured by the product-create flow.
type CreateProductInput struct {
	Name        string                `validate:"required,min=2,max=255"`
	Price       decimal.Decimal       `validate:"-"`
	Category    enums.ProductCategory `validate:"required"`
	Description *string               `validate:"omitempty,max=4000"`
	ImageFileID *string               `validate:"omitempty,max=255"`
}

// UpdateProductInput holds optional mutation values for a product.
// Nil fields are untouched.
type UpdateProductInput struct {
	Name        *string                `validate:"omitempty,min=2,max=255"`
	Price       *decimal.Decimal       `validate:"-"`
	Category    *enums.ProductCategory `validate:"-"`
	Description *string                `validate:"omitempty,max=4000"`
	ImageFileID *string                `validate:"omitempty,max=255"`
}

// CreateBranchInput holds the payload captured by the branch-create flow.
type CreateBranchInput struct {
	Name        string  `validate:"required,min=2,max=255"`
	Location    string  `validate:"required,min=2,max=500"`
	Description *string `validate:"omitempty,max=4000"`
	ImageFileID *string `validate:"omitempty,max=255"`
}

// UpdateBranchInput holds optional mutation values for a branch.
type UpdateBranchInput struct {
	Name        *string `validate:"omitempty,min=2,max=255"`
	Location    *string `validate:"omitempty,min=2,max=500"`
	Description *string `validate:"omitempty,max=4000"`
	ImageFileID *string `validate:"omitempty,max=255"`
}
