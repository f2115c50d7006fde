package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItem is one basket line frozen into an order. Name and price are
// snapshots, independent of later product edits.
type OrderItem struct {
	ID           int64           `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID      int64           `gorm:"column:order_id;not null;index"`
	ProductID    int64           `gorm:"column:product_id;not null"`
	ProductName  string          `gorm:"column:product_name;size:255;not null"`
	ProductPrice decimal.Decimal `gorm:"column:product_price;type:numeric(10,2);not null"`
	Quantity     int             `gorm:"column:quantity;not null"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}

func (OrderItem) TableName() string { return "order_items" }

// LineTotal is the snapshot price multiplied by the quantity.
func (i OrderItem) LineTotal() decimal.Decimal {
	return i.ProductPrice.Mul(decimal.NewFromInt(int64(i.Quantity)))
}
