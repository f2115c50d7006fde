package enums

import "fmt"

// ProductCategory represents the fixed set of storefront category tags.
type ProductCategory string

const (
	ProductCategoryWeightLoss  ProductCategory = "weight_loss"
	ProductCategoryWeightGain  ProductCategory = "weight_gain"
	ProductCategoryBreakfast   ProductCategory = "nonushta"
	ProductCategoryDetox       ProductCategory = "detox"
	ProductCategoryLunch       ProductCategory = "tushliklar"
	ProductCategoryFruitMix    ProductCategory = "fruitmix"
	ProductCategoryDinner      ProductCategory = "kechki_ovqat"
)

var validProductCategories = []ProductCategory{
	ProductCategoryWeightLoss,
	ProductCategoryWeightGain,
	ProductCategoryBreakfast,
	ProductCategoryDetox,
	ProductCategoryLunch,
	ProductCategoryFruitMix,
	ProductCategoryDinner,
}

// Categories returns the known tags in display order.
func Categories() []ProductCategory {
	out := make([]ProductCategory, len(validProductCategories))
	copy(out, validProductCategories)
	return out
}

// String implements fmt.Stringer.
func (c ProductCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known ProductCategory.
func (c ProductCategory) IsValid() bool {
	for _, candidate := range validProductCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseProductCategory converts raw input into a ProductCategory.
func ParseProductCategory(value string) (ProductCategory, error) {
	for _, candidate := range validProductCategories {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid product category %q", value)
}
