package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/massfitdev/massfit-bot/pkg/enums"
)

// Order is a placed order. TotalPrice is a snapshot taken at checkout and is
// never recomputed from current product prices.
type Order struct {
	ID                int64              `gorm:"column:id;primaryKey;autoIncrement"`
	UserID            int64              `gorm:"column:user_id;not null;index"`
	TotalPrice        decimal.Decimal    `gorm:"column:total_price;type:numeric(10,2);not null"`
	Status            enums.OrderStatus  `gorm:"column:status;size:50;not null;default:waiting"`
	DeliveryType      enums.DeliveryType `gorm:"column:delivery_type;size:50"`
	BranchID          *int64             `gorm:"column:branch_id"`
	DeliveryLatitude  *float64           `gorm:"column:delivery_latitude;type:numeric(10,7)"`
	DeliveryLongitude *float64           `gorm:"column:delivery_longitude;type:numeric(10,7)"`
	DeliveryAddress   *string            `gorm:"column:delivery_address;size:500"`
	GroupMessageID    *int               `gorm:"column:group_message_id"`
	CreatedAt         time.Time          `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time          `gorm:"column:updated_at;autoUpdateTime"`

	Branch *Branch     `gorm:"foreignKey:BranchID;constraint:OnDelete:SET NULL"`
	Items  []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

func (Order) TableName() string { return "orders" }
