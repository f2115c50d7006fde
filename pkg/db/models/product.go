package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/massfitdev/massfit-bot/pkg/enums"
)

// Product is a storefront listing managed through the admin panel.
type Product struct {
	ID          int64                 `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string                `gorm:"column:name;size:255;not null"`
	Price       decimal.Decimal       `gorm:"column:price;type:numeric(10,2);not null"`
	Category    enums.ProductCategory `gorm:"column:category;size:50;not null"`
	Description *string               `gorm:"column:description;type:text"`
	ImageFileID *string               `gorm:"column:image_file_id;size:255"`
	CreatedAt   time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string { return "products" }
